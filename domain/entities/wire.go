package entities

import (
	"encoding/json"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

// MethodIssuePermissions is the JSON-RPC method of an ERC-7715 permission request.
const MethodIssuePermissions = "wallet_issuePermissions"

// IssuePermissionsRequest is the JSON wire format sent to the wallet.
type IssuePermissionsRequest struct {
	Signer      *Signer          `json:"signer,omitempty" jsonschema:"description=Signer the permissions are issued to"`
	Permissions []PermissionWire `json:"permissions" jsonschema:"required,minItems=1"`
	Expiry      int64            `json:"expiry" jsonschema:"required,description=Expiry timestamp"`
}

// PermissionWire is the JSON wire format of a single permission.
// Required is always present on the wire.
type PermissionWire struct {
	Data     any    `json:"data" jsonschema:"description=Type-specific payload"`
	Type     string `json:"type" jsonschema:"required,example=native-token-limit,example=contract-call"`
	Required bool   `json:"required"`
}

// AmountWire is the wire form of amount-carrying permissions (hex quantity).
type AmountWire struct {
	Amount *hexutil.Big `json:"amount"`
}

// ERC20TokenLimitWire is the wire form of ERC20TokenLimit.
type ERC20TokenLimitWire struct {
	Amount  *hexutil.Big   `json:"amount"`
	Address common.Address `json:"address"`
}

// IssuePermissionsResponse is the JSON wire format returned by the wallet.
type IssuePermissionsResponse struct {
	Factory            *common.Address `json:"factory,omitempty"`
	SignerData         *SignerData     `json:"signerData,omitempty"`
	FactoryData        string          `json:"factoryData,omitempty"`
	PermissionsContext string          `json:"permissionsContext"`
	Permissions        []GrantedWire   `json:"permissions"`
	Expiry             int64           `json:"expiry"`
}

// GrantedWire is a granted permission as returned by the wallet.
type GrantedWire struct {
	Data     json.RawMessage `json:"data"`
	Required *bool           `json:"required,omitempty"`
	Type     string          `json:"type"`
}

// RequestArguments is an EIP-1193 request.
type RequestArguments struct {
	Method string `json:"method"`
	Params []any  `json:"params,omitempty"`
}
