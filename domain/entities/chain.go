package entities

import "fmt"

// Chain describes the network a client is bound to.
type Chain struct {
	// NativeCurrency is the chain's gas token.
	NativeCurrency NativeCurrency `json:"nativeCurrency" yaml:"native_currency"`

	// Name is a human-readable chain name (e.g., "Ethereum").
	Name string `json:"name" yaml:"name"`

	// RPCURLs lists default JSON-RPC endpoints for the chain.
	RPCURLs []string `json:"rpcUrls,omitempty" yaml:"rpc_urls,omitempty"`

	// ID is the EIP-155 chain id.
	ID uint64 `json:"id" yaml:"id"`
}

// NativeCurrency describes a chain's native token.
type NativeCurrency struct {
	Name     string `json:"name" yaml:"name"`
	Symbol   string `json:"symbol" yaml:"symbol"`
	Decimals uint8  `json:"decimals" yaml:"decimals"`
}

// String returns "name (id)".
func (c *Chain) String() string {
	if c == nil {
		return "<no chain>"
	}
	if c.Name == "" {
		return fmt.Sprintf("chain %d", c.ID)
	}
	return fmt.Sprintf("%s (%d)", c.Name, c.ID)
}

// Mainnet is Ethereum mainnet.
var Mainnet = Chain{
	ID:             1,
	Name:           "Ethereum",
	NativeCurrency: NativeCurrency{Name: "Ether", Symbol: "ETH", Decimals: 18},
	RPCURLs:        []string{"https://cloudflare-eth.com"},
}

// Sepolia is the Sepolia test network.
var Sepolia = Chain{
	ID:             11155111,
	Name:           "Sepolia",
	NativeCurrency: NativeCurrency{Name: "Sepolia Ether", Symbol: "ETH", Decimals: 18},
	RPCURLs:        []string{"https://rpc.sepolia.org"},
}
