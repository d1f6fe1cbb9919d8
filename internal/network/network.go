// Package network maps EVM chain ids to display names.
package network

import "fmt"

var names = map[uint64]string{
	1:        "Ethereum Mainnet",
	10:       "Optimism",
	100:      "Gnosis",
	137:      "Polygon",
	8453:     "Base",
	17000:    "Holesky Testnet",
	42161:    "Arbitrum One",
	11155111: "Sepolia Testnet",
}

// Name returns the display name for chainID, or "Unknown (chain ID n)".
func Name(chainID uint64) string {
	if name, ok := names[chainID]; ok {
		return name
	}
	return fmt.Sprintf("Unknown (chain ID %d)", chainID)
}

// Known reports whether chainID has a display name.
func Known(chainID uint64) bool {
	_, ok := names[chainID]
	return ok
}
