package rpc

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/dando385/slotcommit/internal/commitment"
)

// ChainID calls eth_chainId.
func (c *Client) ChainID(ctx context.Context) (uint64, error) {
	return c.callQuantity(ctx, "eth_chainId")
}

// BlockNumber calls eth_blockNumber and returns the current head.
func (c *Client) BlockNumber(ctx context.Context) (uint64, error) {
	return c.callQuantity(ctx, "eth_blockNumber")
}

// BlockNumberOf calls eth_getBlockByNumber(block, false) and returns the
// number of the block served. A null result (unknown block, or a tag the
// node does not support) is an RPC error.
func (c *Client) BlockNumberOf(ctx context.Context, block commitment.BlockID) (uint64, error) {
	const method = "eth_getBlockByNumber"

	raw, _, err := c.Call(ctx, method, block.String(), false)
	if err != nil {
		return 0, err
	}
	if isNull(raw) {
		return 0, c.rpcError(method, fmt.Sprintf("block %s not found", block.Display()))
	}

	var header blockHeader
	if err := json.Unmarshal(raw, &header); err != nil {
		return 0, c.rpcError(method, fmt.Sprintf("failed to parse block: %v", err))
	}
	n, err := ParseQuantity(header.Number)
	if err != nil {
		return 0, c.rpcError(method, fmt.Sprintf("failed to parse block number: %v", err))
	}
	return n, nil
}

// ResolveBlockNumber returns literal block numbers unchanged, the head for
// "latest", and the number of the tagged block otherwise.
func (c *Client) ResolveBlockNumber(ctx context.Context, block commitment.BlockID) (uint64, error) {
	switch {
	case !block.IsTag():
		return block.Number(), nil
	case block.Tag() == commitment.TagLatest:
		return c.BlockNumber(ctx)
	default:
		return c.BlockNumberOf(ctx, block)
	}
}

// StorageAt calls eth_getStorageAt. Results shorter than 32 bytes are
// left-padded; longer or non-hex results are RPC errors.
func (c *Client) StorageAt(ctx context.Context, addr commitment.Address, slot commitment.Word, block commitment.BlockID) (commitment.Word, error) {
	const method = "eth_getStorageAt"

	raw, _, err := c.Call(ctx, method, addr.Hex(), slot.Quantity(), block.String())
	if err != nil {
		return commitment.Word{}, err
	}

	var data string
	if err := json.Unmarshal(raw, &data); err != nil {
		return commitment.Word{}, c.rpcError(method, fmt.Sprintf("failed to parse storage value: %v", err))
	}
	w, err := DecodeWord(data)
	if err != nil {
		return commitment.Word{}, c.rpcError(method, fmt.Sprintf("malformed storage value: %v", err))
	}
	return w, nil
}

func (c *Client) callQuantity(ctx context.Context, method string) (uint64, error) {
	raw, _, err := c.Call(ctx, method)
	if err != nil {
		return 0, err
	}

	var hexStr string
	if err := json.Unmarshal(raw, &hexStr); err != nil {
		return 0, c.rpcError(method, fmt.Sprintf("failed to parse result: %v", err))
	}
	n, err := ParseQuantity(hexStr)
	if err != nil {
		return 0, c.rpcError(method, err.Error())
	}
	return n, nil
}

func isNull(raw json.RawMessage) bool {
	return len(raw) == 0 || string(raw) == "null"
}
