package entities

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// PermissionType is the ERC-7715 discriminator of a permission request.
// Any value not listed below is treated as a custom type.
type PermissionType string

const (
	PermissionNativeTokenLimit PermissionType = "native-token-limit"
	PermissionERC20TokenLimit  PermissionType = "erc20-token-limit"
	PermissionGasLimit         PermissionType = "gas-limit"
	PermissionRateLimit        PermissionType = "rate-limit"
	PermissionContractCall     PermissionType = "contract-call"
)

// IsKnown reports whether t is one of the built-in permission types.
func (t PermissionType) IsKnown() bool {
	switch t {
	case PermissionNativeTokenLimit, PermissionERC20TokenLimit, PermissionGasLimit,
		PermissionRateLimit, PermissionContractCall:
		return true
	}
	return false
}

// NativeTokenLimit allows spending up to Amount of the chain's native token.
type NativeTokenLimit struct {
	Amount *big.Int `json:"amount"`
}

// ERC20TokenLimit allows spending up to Amount of the token at Address.
type ERC20TokenLimit struct {
	Amount  *big.Int       `json:"amount"`
	Address common.Address `json:"address"`
}

// GasLimit caps the gas the grantee may spend.
type GasLimit struct {
	Amount *big.Int `json:"amount"`
}

// RateLimit allows Count calls every Interval seconds.
type RateLimit struct {
	Count    uint64 `json:"count"`
	Interval uint64 `json:"interval"`
}

// ContractCall allows calling the contract at Address.
// Calls optionally narrows the allowed function selectors.
type ContractCall struct {
	Calls   []string       `json:"calls,omitempty"`
	Address common.Address `json:"address"`
}

// Permission is a single permission request or grant.
//
// Data holds one of NativeTokenLimit, ERC20TokenLimit, GasLimit, RateLimit or
// ContractCall for known types, and arbitrary JSON-encodable data otherwise.
type Permission struct {
	Data     any            `json:"data" yaml:"data"`
	Required *bool          `json:"required,omitempty" yaml:"required,omitempty"`
	Type     PermissionType `json:"type" yaml:"type"`
}

// ErrMissingAmount is returned when an amount-carrying permission has no amount.
var ErrMissingAmount = errors.New("amount is required")

// CheckData reports data that must not reach a wallet: a missing amount on
// native-token-limit, erc20-token-limit or gas-limit data.
func (p Permission) CheckData() error {
	var amount *big.Int
	switch d := p.Data.(type) {
	case NativeTokenLimit:
		amount = d.Amount
	case *NativeTokenLimit:
		if d != nil {
			amount = d.Amount
		}
	case ERC20TokenLimit:
		amount = d.Amount
	case *ERC20TokenLimit:
		if d != nil {
			amount = d.Amount
		}
	case GasLimit:
		amount = d.Amount
	case *GasLimit:
		if d != nil {
			amount = d.Amount
		}
	default:
		return nil
	}

	if amount == nil {
		return fmt.Errorf("%s data: %w", p.Type, ErrMissingAmount)
	}
	return nil
}

// IsRequired reports whether the wallet must grant p for the request to succeed.
func (p Permission) IsRequired() bool {
	return p.Required != nil && *p.Required
}

// UnmarshalJSON decodes Data into the typed struct matching Type.
// Custom types keep their data as json.RawMessage.
func (p *Permission) UnmarshalJSON(data []byte) error {
	var raw struct {
		Data     json.RawMessage `json:"data"`
		Required *bool           `json:"required,omitempty"`
		Type     PermissionType  `json:"type"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw.Type == "" {
		return fmt.Errorf("permission type is required")
	}

	decoded, err := decodePermissionData(raw.Type, raw.Data)
	if err != nil {
		return fmt.Errorf("failed to decode %s data: %w", raw.Type, err)
	}

	p.Type = raw.Type
	p.Required = raw.Required
	p.Data = decoded
	return nil
}

func decodePermissionData(t PermissionType, data json.RawMessage) (any, error) {
	target := newPermissionData(t)
	if target == nil {
		return data, nil
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("missing data")
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(target); err != nil {
		return nil, err
	}
	return derefPermissionData(target), nil
}

// newPermissionData returns a pointer to the typed data struct for t, or nil
// for custom types.
func newPermissionData(t PermissionType) any {
	switch t {
	case PermissionNativeTokenLimit:
		return &NativeTokenLimit{}
	case PermissionERC20TokenLimit:
		return &ERC20TokenLimit{}
	case PermissionGasLimit:
		return &GasLimit{}
	case PermissionRateLimit:
		return &RateLimit{}
	case PermissionContractCall:
		return &ContractCall{}
	}
	return nil
}

// derefPermissionData returns values, not pointers, so callers can type-switch
// on a single form.
func derefPermissionData(target any) any {
	switch v := target.(type) {
	case *NativeTokenLimit:
		return *v
	case *ERC20TokenLimit:
		return *v
	case *GasLimit:
		return *v
	case *RateLimit:
		return *v
	case *ContractCall:
		return *v
	}
	return target
}

// SignerType identifies who will sign on behalf of the granted permissions.
type SignerType string

const (
	SignerWallet  SignerType = "wallet"
	SignerKey     SignerType = "key"
	SignerKeys    SignerType = "keys"
	SignerAccount SignerType = "account"
)

// Signer is the ERC-7715 signer the permissions are issued to.
type Signer struct {
	Data any        `json:"data,omitempty" yaml:"data,omitempty"`
	Type SignerType `json:"type" yaml:"type"`
}

// KeySignerData identifies a single key signer.
type KeySignerData struct {
	ID string `json:"id"`
}

// KeysSignerData identifies a multi-key signer.
type KeysSignerData struct {
	IDs []string `json:"ids"`
}

// AccountSignerData identifies an account signer.
type AccountSignerData struct {
	ID common.Address `json:"id"`
}

// IssuePermissionsParameters is the input of an ERC-7715 permission request.
type IssuePermissionsParameters struct {
	// Signer is the explicit signer. Ignored when Account is set.
	Signer *Signer `json:"signer,omitempty" yaml:"signer,omitempty"`

	// Account, when set, derives the signer from the account type.
	Account *Account `json:"account,omitempty" yaml:"account,omitempty"`

	// Permissions are the requested permissions, in order.
	Permissions []Permission `json:"permissions" yaml:"permissions"`

	// Expiry is the timestamp at which the permissions lapse.
	Expiry int64 `json:"expiry" yaml:"expiry"`
}

// SignerData carries the wallet's instructions for using the granted permissions.
type SignerData struct {
	UserOpBuilder   *common.Address `json:"userOpBuilder,omitempty" yaml:"user_op_builder,omitempty"`
	SubmitToAddress *common.Address `json:"submitToAddress,omitempty" yaml:"submit_to_address,omitempty"`
}

// IssuePermissionsReturnType is the result of an ERC-7715 permission request.
type IssuePermissionsReturnType struct {
	Factory            *common.Address `json:"factory,omitempty"`
	SignerData         *SignerData     `json:"signerData,omitempty"`
	FactoryData        string          `json:"factoryData,omitempty"`
	PermissionsContext string          `json:"permissionsContext"`
	GrantedPermissions []Permission    `json:"grantedPermissions"`
	Expiry             int64           `json:"expiry"`
}
