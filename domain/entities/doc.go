// Package entities provides the core domain types of the wallet SDK.
// Chains, accounts, ERC-7715 permission requests and their wire forms live here;
// nothing in this package performs I/O.
package entities
