// Package rpctest provides an in-process Ethereum JSON-RPC node for tests.
// It serves a single storage value per block number, regardless of address
// and slot, which is enough to exercise the commitment fetch end to end.
package rpctest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"
)

// MissingTrieNode is the message geth returns for pruned historical state.
const MissingTrieNode = "missing trie node"

// Node is a fake JSON-RPC node backed by httptest.Server.
type Node struct {
	mu sync.Mutex

	ChainID uint64
	Head    uint64
	// Tags maps safe, finalized and pending to block numbers.
	Tags map[string]uint64
	// Values maps a block number to the hex storage value served at it.
	// Blocks without an entry answer eth_getStorageAt with MissingTrieNode.
	Values map[uint64]string
	// Fail forces a JSON-RPC error for a method.
	Fail map[string]*Error
	// Status, when non-zero, is returned as the HTTP status of every request.
	Status int
	// Delay is slept before every response.
	Delay time.Duration

	calls  []string
	server *httptest.Server
}

// Error is a JSON-RPC error object.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type request struct {
	Method string            `json:"method"`
	Params []json.RawMessage `json:"params"`
	ID     json.RawMessage   `json:"id"`
}

type response struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id"`
	Result  interface{}     `json:"result,omitempty"`
	Error   *Error          `json:"error,omitempty"`
}

// NewNode starts a node with chain id 1 and head 18000000. The server is
// closed when the test ends.
func NewNode(t testing.TB) *Node {
	t.Helper()
	n := &Node{
		ChainID: 1,
		Head:    18000000,
		Tags:    map[string]uint64{},
		Values:  map[uint64]string{},
		Fail:    map[string]*Error{},
	}
	n.server = httptest.NewServer(http.HandlerFunc(n.serveHTTP))
	t.Cleanup(n.server.Close)
	return n
}

func (n *Node) URL() string { return n.server.URL }

// Close stops the server early, making the node unreachable.
func (n *Node) Close() { n.server.Close() }

// Calls returns the methods received so far, in order.
func (n *Node) Calls() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.calls...)
}

func (n *Node) serveHTTP(w http.ResponseWriter, r *http.Request) {
	var req request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	n.mu.Lock()
	n.calls = append(n.calls, req.Method)
	delay, status := n.Delay, n.Status
	n.mu.Unlock()

	if delay > 0 {
		select {
		case <-time.After(delay):
		case <-r.Context().Done():
			return
		}
	}
	if status != 0 && status != http.StatusOK {
		http.Error(w, http.StatusText(status), status)
		return
	}

	n.mu.Lock()
	result, rpcErr := n.dispatch(req)
	n.mu.Unlock()

	resp := response{JSONRPC: "2.0", ID: req.ID, Error: rpcErr}
	if rpcErr == nil {
		resp.Result = result
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resp)
}

func (n *Node) dispatch(req request) (interface{}, *Error) {
	if e, ok := n.Fail[req.Method]; ok {
		return nil, e
	}

	switch req.Method {
	case "eth_chainId":
		return quantity(n.ChainID), nil
	case "eth_blockNumber":
		return quantity(n.Head), nil
	case "eth_getBlockByNumber":
		num, ok := n.resolve(param(req, 0))
		if !ok {
			return json.RawMessage("null"), nil
		}
		return map[string]string{
			"number": quantity(num),
			"hash":   fmt.Sprintf("0x%064x", num),
		}, nil
	case "eth_getStorageAt":
		num, ok := n.resolve(param(req, 2))
		if !ok {
			return nil, &Error{Code: -32000, Message: "header not found"}
		}
		v, ok := n.Values[num]
		if !ok {
			return nil, &Error{Code: -32000, Message: MissingTrieNode}
		}
		return v, nil
	default:
		return nil, &Error{Code: -32601, Message: "the method " + req.Method + " does not exist/is not available"}
	}
}

func (n *Node) resolve(block string) (uint64, bool) {
	if block == "latest" {
		return n.Head, true
	}
	if num, ok := n.Tags[block]; ok {
		return num, true
	}
	if !strings.HasPrefix(block, "0x") {
		return 0, false
	}
	num, err := strconv.ParseUint(block[2:], 16, 64)
	if err != nil || num > n.Head+1 {
		return 0, false
	}
	return num, true
}

func param(req request, i int) string {
	if i >= len(req.Params) {
		return ""
	}
	var s string
	_ = json.Unmarshal(req.Params[i], &s)
	return s
}

func quantity(v uint64) string { return "0x" + strconv.FormatUint(v, 16) }
