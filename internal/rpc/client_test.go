package rpc

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/dando385/slotcommit/internal/commitment"
	"github.com/dando385/slotcommit/internal/rpc/rpctest"
)

const depositContract = "0x00000000219ab540356cBB839Cbe05303d7705Fa"

func newTestClient(t *testing.T, url string) *Client {
	t.Helper()
	return NewClient("test", url, 2*time.Second, zerolog.Nop())
}

func TestClientChainIDAndBlockNumber(t *testing.T) {
	node := rpctest.NewNode(t)
	node.ChainID = 11155111
	c := newTestClient(t, node.URL())

	id, err := c.ChainID(context.Background())
	require.NoError(t, err)
	require.Equal(t, uint64(11155111), id)

	head, err := c.BlockNumber(context.Background())
	require.NoError(t, err)
	require.Equal(t, uint64(18000000), head)

	require.Equal(t, []string{"eth_chainId", "eth_blockNumber"}, node.Calls())
}

func TestClientStorageAt(t *testing.T) {
	node := rpctest.NewNode(t)
	node.Values[18000000] = "0x00000000000000000000000000000000000000000000000000000000000001a4"
	node.Values[17999999] = "0x0"
	c := newTestClient(t, node.URL())

	addr, err := commitment.ParseAddress(depositContract)
	require.NoError(t, err)
	slot := commitment.WordFromUint64(5)

	v, err := c.StorageAt(context.Background(), addr, slot, commitment.BlockNumber(18000000))
	require.NoError(t, err)
	require.Equal(t, commitment.WordFromUint64(0x1a4), v)

	v, err = c.StorageAt(context.Background(), addr, slot, commitment.BlockNumber(17999999))
	require.NoError(t, err)
	require.Equal(t, commitment.Word{}, v)
}

func TestClientStorageAtArchiveMissing(t *testing.T) {
	node := rpctest.NewNode(t)
	c := newTestClient(t, node.URL())

	addr, err := commitment.ParseAddress(depositContract)
	require.NoError(t, err)

	_, err = c.StorageAt(context.Background(), addr, commitment.Word{}, commitment.BlockNumber(1))
	var rpcErr *commitment.RPCError
	require.ErrorAs(t, err, &rpcErr)
	require.Equal(t, "eth_getStorageAt", rpcErr.Method)
	require.Equal(t, -32000, rpcErr.Code)
	require.Contains(t, rpcErr.Message, rpctest.MissingTrieNode)
}

func TestClientStorageAtMalformed(t *testing.T) {
	tests := []struct {
		name  string
		value string
	}{
		{"too long", "0x" + "00000000000000000000000000000000000000000000000000000000000001a4" + "00"},
		{"not hex", "0xzz"},
		{"no prefix", "01a4"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			node := rpctest.NewNode(t)
			node.Values[node.Head] = tt.value
			c := newTestClient(t, node.URL())

			_, err := c.StorageAt(context.Background(), commitment.Address{}, commitment.Word{}, commitment.Latest())
			var rpcErr *commitment.RPCError
			require.ErrorAs(t, err, &rpcErr)
			require.Contains(t, rpcErr.Message, "malformed storage value")
		})
	}
}

func TestClientResolveBlockNumber(t *testing.T) {
	node := rpctest.NewNode(t)
	node.Tags["finalized"] = 17999936
	node.Tags["safe"] = 17999968
	c := newTestClient(t, node.URL())
	ctx := context.Background()

	n, err := c.ResolveBlockNumber(ctx, commitment.BlockNumber(42))
	require.NoError(t, err)
	require.Equal(t, uint64(42), n)
	require.Empty(t, node.Calls(), "literal numbers need no RPC")

	n, err = c.ResolveBlockNumber(ctx, commitment.Latest())
	require.NoError(t, err)
	require.Equal(t, uint64(18000000), n)

	finalized, err := commitment.ParseBlockID("finalized")
	require.NoError(t, err)
	n, err = c.ResolveBlockNumber(ctx, finalized)
	require.NoError(t, err)
	require.Equal(t, uint64(17999936), n)

	safe, err := commitment.ParseBlockID("safe")
	require.NoError(t, err)
	n, err = c.ResolveBlockNumber(ctx, safe)
	require.NoError(t, err)
	require.Equal(t, uint64(17999968), n)

	require.Equal(t, []string{"eth_blockNumber", "eth_getBlockByNumber", "eth_getBlockByNumber"}, node.Calls())
}

func TestClientResolveUnknownTag(t *testing.T) {
	node := rpctest.NewNode(t)
	c := newTestClient(t, node.URL())

	pending, err := commitment.ParseBlockID("pending")
	require.NoError(t, err)

	_, err = c.ResolveBlockNumber(context.Background(), pending)
	var rpcErr *commitment.RPCError
	require.ErrorAs(t, err, &rpcErr)
	require.Contains(t, rpcErr.Message, "block pending not found")
}

func TestClientRPCErrorObject(t *testing.T) {
	node := rpctest.NewNode(t)
	node.Fail["eth_chainId"] = &rpctest.Error{Code: -32005, Message: "rate limited"}
	c := newTestClient(t, node.URL())

	_, err := c.ChainID(context.Background())
	var rpcErr *commitment.RPCError
	require.ErrorAs(t, err, &rpcErr)
	require.Equal(t, -32005, rpcErr.Code)
	require.Equal(t, "test: eth_chainId failed: RPC error -32005: rate limited", err.Error())
}

func TestClientHTTPStatus(t *testing.T) {
	node := rpctest.NewNode(t)
	node.Status = http.StatusServiceUnavailable
	c := newTestClient(t, node.URL())

	_, err := c.ChainID(context.Background())
	var rpcErr *commitment.RPCError
	require.ErrorAs(t, err, &rpcErr)
	require.Equal(t, "HTTP 503", rpcErr.Message)
}

func TestClientHTTPStatusWithErrorBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"jsonrpc":"2.0","id":1,"error":{"code":-32000,"message":"missing trie node"}}`))
	}))
	t.Cleanup(srv.Close)

	addr, err := commitment.ParseAddress(depositContract)
	require.NoError(t, err)

	_, err = newTestClient(t, srv.URL).StorageAt(context.Background(), addr, commitment.Word{}, commitment.BlockNumber(1))
	var rpcErr *commitment.RPCError
	require.ErrorAs(t, err, &rpcErr)
	require.Equal(t, -32000, rpcErr.Code)
	require.Equal(t, "missing trie node (HTTP 400)", rpcErr.Message)
	require.Equal(t, "test: eth_getStorageAt failed: RPC error -32000: missing trie node (HTTP 400)", err.Error())
}

func TestClientInvalidJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html>not json</html>"))
	}))
	t.Cleanup(srv.Close)

	_, err := newTestClient(t, srv.URL).ChainID(context.Background())
	var rpcErr *commitment.RPCError
	require.ErrorAs(t, err, &rpcErr)
	require.Contains(t, rpcErr.Message, "invalid JSON response")
}

func TestClientMalformedQuantity(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"jsonrpc":"2.0","id":1,"result":"1"}`))
	}))
	t.Cleanup(srv.Close)

	_, err := newTestClient(t, srv.URL).ChainID(context.Background())
	var rpcErr *commitment.RPCError
	require.ErrorAs(t, err, &rpcErr)
}

func TestClientUnreachable(t *testing.T) {
	node := rpctest.NewNode(t)
	url := node.URL()
	node.Close()

	_, err := newTestClient(t, url).ChainID(context.Background())
	var connErr *commitment.ConnectionError
	require.ErrorAs(t, err, &connErr)
	require.Equal(t, "test", connErr.Endpoint)
	require.NotContains(t, connErr.Host, "http://")
}

func TestClientTimeout(t *testing.T) {
	node := rpctest.NewNode(t)
	node.Delay = time.Second
	c := NewClient("slow", node.URL(), 50*time.Millisecond, zerolog.Nop())

	_, err := c.ChainID(context.Background())
	var connErr *commitment.ConnectionError
	require.ErrorAs(t, err, &connErr)
	require.Equal(t, "slow", connErr.Endpoint)
}

func TestClientHostHidesPath(t *testing.T) {
	c := NewClient("infura", "https://mainnet.infura.io/v3/secret-key", time.Second, zerolog.Nop())
	require.Equal(t, "mainnet.infura.io", c.Host())
	require.Equal(t, "infura", c.Name())
}
