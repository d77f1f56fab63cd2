// Package cli implements the walletctl command tree.
package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/reglet-dev/wallet-sdk/application/config"
	"github.com/reglet-dev/wallet-sdk/domain/errors"
	"github.com/reglet-dev/wallet-sdk/domain/ports"
	"github.com/reglet-dev/wallet-sdk/infrastructure/permissionstore"
	"github.com/reglet-dev/wallet-sdk/infrastructure/prompter"
	"github.com/reglet-dev/wallet-sdk/infrastructure/transport"
	sdklog "github.com/reglet-dev/wallet-sdk/log"
)

// DialFunc opens the transport described by cfg.
type DialFunc func(ctx context.Context, cfg *config.Config, logger *slog.Logger) (ports.Transport, error)

// Env holds the process resources commands run against.
type Env struct {
	In       io.Reader
	Out      io.Writer
	Err      io.Writer
	Prompter ports.Prompter
	Dial     DialFunc
	Now      func() time.Time
}

// DefaultEnv returns an Env bound to the standard streams and a real transport.
func DefaultEnv() Env {
	return Env{
		In:       os.Stdin,
		Out:      os.Stdout,
		Err:      os.Stderr,
		Prompter: prompter.NewCliPrompter(os.Stdin, os.Stderr),
		Dial:     DialConfigured,
		Now:      time.Now,
	}
}

// DialConfigured dials cfg.RPC with logging and panic recovery middleware.
func DialConfigured(ctx context.Context, cfg *config.Config, logger *slog.Logger) (ports.Transport, error) {
	opts := []transport.Option{
		transport.WithTimeout(cfg.RPC.Timeout),
		transport.WithMiddleware(
			transport.PanicRecoveryMiddleware(),
			transport.LoggingMiddleware(logger),
		),
	}
	for key, value := range cfg.RPC.Headers {
		opts = append(opts, transport.WithHeader(key, value))
	}

	tr, err := transport.Dial(ctx, cfg.RPC.URL, opts...)
	if err != nil {
		return nil, err
	}
	return tr, nil
}

// app is the state shared by commands after the root pre-run.
type app struct {
	env        Env
	cfg        *config.Config
	logger     *slog.Logger
	configPath string
	logLevel   string
	logFormat  string
}

// NewRootCommand builds the walletctl command tree.
func NewRootCommand(env Env) *cobra.Command {
	a := &app{env: env}

	root := &cobra.Command{
		Use:               "walletctl",
		Short:             "Request ERC-7715 permissions from a wallet",
		Long:              "walletctl asks a wallet for scoped on-chain permissions (ERC-7715) and keeps track of what was granted.",
		PersistentPreRunE: a.preRun,
		SilenceErrors:     true,
		SilenceUsage:      true,
	}
	root.SetIn(env.In)
	root.SetOut(env.Out)
	root.SetErr(env.Err)

	root.PersistentFlags().StringVar(&a.configPath, "config", "", "config file (default ./walletctl.yaml or ~/.walletctl/walletctl.yaml)")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level: debug, info, warn or error (overrides config)")
	root.PersistentFlags().StringVar(&a.logFormat, "log-format", "", "log format: text or json (overrides config)")

	root.AddCommand(
		a.newIssuePermissionsCommand(),
		a.newPermissionsCommand(),
		a.newSchemaCommand(),
	)
	return root
}

func (a *app) preRun(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}

	if a.logLevel != "" {
		cfg.Log.Level = a.logLevel
	}
	if a.logFormat != "" {
		cfg.Log.Format = a.logFormat
	}
	level, err := sdklog.ParseLevel(cfg.Log.Level)
	if err != nil {
		return &errors.ConfigError{Field: "log.level", Err: err}
	}

	a.cfg = cfg
	a.logger = sdklog.New(
		sdklog.WithLevel(level),
		sdklog.WithFormat(sdklog.Format(cfg.Log.Format)),
		sdklog.WithWriter(a.env.Err),
	)
	a.logger.Debug("configuration loaded", "command", cmd.Name(), "rpc", cfg.RPC.URL)
	return nil
}

func (a *app) store() *permissionstore.FileStore {
	return permissionstore.NewFileStore(permissionstore.WithPath(a.cfg.Store.Path))
}

// Execute runs walletctl with args and reports failures on env.Err.
func Execute(ctx context.Context, args []string, env Env) error {
	root := NewRootCommand(env)
	root.SetArgs(args)

	err := root.ExecuteContext(ctx)
	if err != nil {
		detail := errors.ToErrorDetail(err)
		_, _ = fmt.Fprintf(env.Err, "Error: %s\n", err)
		if detail.IsUserRejection {
			_, _ = fmt.Fprintln(env.Err, "The request was rejected in the wallet.")
		}
	}
	return err
}
