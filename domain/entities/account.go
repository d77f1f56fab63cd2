package entities

import (
	"github.com/ethereum/go-ethereum/common"
)

// AccountType distinguishes who holds an account's keys.
type AccountType string

const (
	// AccountTypeJSONRPC is an account managed by the wallet behind the transport.
	AccountTypeJSONRPC AccountType = "json-rpc"
	// AccountTypeLocal is an account whose keys are held by the caller.
	AccountTypeLocal AccountType = "local"
)

// Account identifies the address a client acts for.
type Account struct {
	Type    AccountType    `json:"type" yaml:"type"`
	Address common.Address `json:"address" yaml:"address"`
}

// JSONRPCAccount returns a wallet-managed account for addr.
func JSONRPCAccount(addr common.Address) *Account {
	return &Account{Type: AccountTypeJSONRPC, Address: addr}
}

// LocalAccount returns a caller-managed account for addr.
func LocalAccount(addr common.Address) *Account {
	return &Account{Type: AccountTypeLocal, Address: addr}
}
