// Package rpc is a minimal Ethereum JSON-RPC client covering the calls needed
// to read and pin a storage slot: eth_chainId, eth_getStorageAt,
// eth_blockNumber and eth_getBlockByNumber.
package rpc

import "encoding/json"

// Request is a JSON-RPC 2.0 request envelope.
type Request struct {
	JSONRPC string        `json:"jsonrpc"`
	Method  string        `json:"method"`
	Params  []interface{} `json:"params"`
	ID      int           `json:"id"`
}

// Response is a JSON-RPC 2.0 response envelope. Result is kept raw and
// decoded by the method that issued the call.
type Response struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      int             `json:"id"`
	Result  json.RawMessage `json:"result"`
	Error   *Error          `json:"error,omitempty"`
}

// Error is the JSON-RPC error object.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// blockHeader is the subset of eth_getBlockByNumber needed to pin a tag.
type blockHeader struct {
	Number string `json:"number"`
	Hash   string `json:"hash"`
}
