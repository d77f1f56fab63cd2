// Package config loads walletctl configuration from a YAML file and the
// environment.
package config

import (
	stdErrors "errors"
	"fmt"
	"net/url"
	"path/filepath"
	"reflect"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/go-playground/validator/v10"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"

	"github.com/reglet-dev/wallet-sdk/domain/entities"
	"github.com/reglet-dev/wallet-sdk/domain/errors"
)

// EnvPrefix prefixes environment overrides, e.g. WALLETCTL_RPC_URL.
const EnvPrefix = "WALLETCTL"

// Config is the walletctl configuration.
type Config struct {
	RPC     RPCConfig     `mapstructure:"rpc"`
	Chain   ChainConfig   `mapstructure:"chain"`
	Account AccountConfig `mapstructure:"account"`
	Log     LogConfig     `mapstructure:"log"`
	Store   StoreConfig   `mapstructure:"store"`
}

// RPCConfig selects the wallet endpoint.
type RPCConfig struct {
	Headers map[string]string `mapstructure:"headers"`
	URL     string            `mapstructure:"url"     validate:"omitempty,rpc_url"`
	Timeout time.Duration     `mapstructure:"timeout"`
}

// ChainConfig binds the client to a chain. An ID of zero leaves it unbound.
type ChainConfig struct {
	Name string `mapstructure:"name"`
	ID   uint64 `mapstructure:"id"`
}

// AccountConfig selects the account permissions are requested for.
type AccountConfig struct {
	Address string `mapstructure:"address" validate:"omitempty,eth_addr"`
	Type    string `mapstructure:"type"    validate:"oneof=json-rpc local"`
}

// LogConfig configures the logger.
type LogConfig struct {
	Level  string `mapstructure:"level"  validate:"oneof=debug info warn error"`
	Format string `mapstructure:"format" validate:"oneof=text json"`
}

// StoreConfig locates the permission store. Empty means the default path.
type StoreConfig struct {
	Path string `mapstructure:"path"`
}

// Load reads the configuration at path. With an empty path, walletctl.yaml is
// looked up in the working directory and then in ~/.walletctl; a missing file
// is not an error. Environment variables override file values.
func Load(path string) (*Config, error) {
	vip := viper.New()
	if path != "" {
		vip.SetConfigFile(path)
	} else {
		vip.SetConfigName("walletctl")
		vip.AddConfigPath(".")
		if home, err := homedir.Dir(); err == nil {
			vip.AddConfigPath(filepath.Join(home, ".walletctl"))
		}
	}

	vip.SetConfigType("yaml")
	vip.SetEnvPrefix(EnvPrefix)
	vip.AutomaticEnv()
	vip.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	vip.SetDefault("rpc.url", "")
	vip.SetDefault("rpc.timeout", "30s")
	vip.SetDefault("chain.id", 0)
	vip.SetDefault("chain.name", "")
	vip.SetDefault("account.address", "")
	vip.SetDefault("account.type", string(entities.AccountTypeJSONRPC))
	vip.SetDefault("log.level", "info")
	vip.SetDefault("log.format", "text")
	vip.SetDefault("store.path", "")

	if err := vip.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !stdErrors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := vip.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks field formats. It returns a *errors.ConfigError naming the
// first invalid field.
func (c *Config) Validate() error {
	validate := newValidator()
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if stdErrors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		field := strings.TrimPrefix(fe.Namespace(), "Config.")
		return &errors.ConfigError{
			Field: field,
			Err:   fmt.Errorf("value %v failed %q validation", fe.Value(), fe.Tag()),
		}
	}
	return &errors.ConfigError{Err: err}
}

// RequireRPC reports a *errors.ConfigError when no RPC URL is configured.
func (c *Config) RequireRPC() error {
	if c.RPC.URL == "" {
		return &errors.ConfigError{
			Field: "rpc.url",
			Err:   fmt.Errorf("required (set it in the config file or %s_RPC_URL)", EnvPrefix),
		}
	}
	return nil
}

// ChainEntity returns the configured chain, or nil when none is set.
func (c *Config) ChainEntity() *entities.Chain {
	if c.Chain.ID == 0 {
		return nil
	}
	for _, known := range []entities.Chain{entities.Mainnet, entities.Sepolia} {
		if known.ID == c.Chain.ID && c.Chain.Name == "" {
			chain := known
			return &chain
		}
	}
	return &entities.Chain{ID: c.Chain.ID, Name: c.Chain.Name}
}

// AccountEntity returns the configured account, or nil when no address is set.
func (c *Config) AccountEntity() *entities.Account {
	if c.Account.Address == "" {
		return nil
	}
	return &entities.Account{
		Type:    entities.AccountType(c.Account.Type),
		Address: common.HexToAddress(c.Account.Address),
	}
}

func newValidator() *validator.Validate {
	validate := validator.New()
	validate.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("mapstructure"), ",", 2)[0]
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	_ = validate.RegisterValidation("rpc_url", isRPCURL)
	return validate
}

// isRPCURL accepts absolute http, https, ws and wss URLs.
func isRPCURL(fl validator.FieldLevel) bool {
	u, err := url.Parse(fl.Field().String())
	if err != nil || u.Host == "" {
		return false
	}
	switch u.Scheme {
	case "http", "https", "ws", "wss":
		return true
	default:
		return false
	}
}
