package rpc

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog"

	"github.com/dando385/slotcommit/internal/commitment"
)

// Client is a JSON-RPC 2.0 client for a single HTTP endpoint. Every call is
// a single attempt bounded by the client timeout.
type Client struct {
	name       string
	url        string
	host       string
	httpClient *http.Client
	logger     zerolog.Logger
	nextID     int
}

var _ commitment.Endpoint = (*Client)(nil)

func NewClient(name, rawURL string, timeout time.Duration, logger zerolog.Logger) *Client {
	host := rawURL
	if u, err := url.Parse(rawURL); err == nil && u.Host != "" {
		host = u.Host
	}
	return &Client{
		name:       name,
		url:        rawURL,
		host:       host,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger.With().Str("endpoint", name).Str("host", host).Logger(),
	}
}

func (c *Client) Name() string { return c.name }

// Host returns the endpoint host without path or query, safe to print.
func (c *Client) Host() string { return c.host }

// Call executes a JSON-RPC request and returns the raw "result" payload.
// Transport failures are returned as *commitment.ConnectionError; HTTP
// status, decoding and JSON-RPC errors as *commitment.RPCError.
func (c *Client) Call(ctx context.Context, method string, params ...interface{}) (json.RawMessage, time.Duration, error) {
	if params == nil {
		params = []interface{}{}
	}

	c.nextID++
	body, err := json.Marshal(Request{
		JSONRPC: "2.0",
		Method:  method,
		Params:  params,
		ID:      c.nextID,
	})
	if err != nil {
		return nil, 0, fmt.Errorf("encode %s request: %w", method, err)
	}

	start := time.Now()
	resp, err := c.doRequest(ctx, method, body)
	latency := time.Since(start)

	c.logger.Debug().
		Str("method", method).
		Dur("latency", latency).
		Err(err).
		Msg("rpc call")

	if err != nil {
		return nil, latency, err
	}
	return resp.Result, latency, nil
}

func (c *Client) doRequest(ctx context.Context, method string, body []byte) (*Response, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return nil, c.connectionError(err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, c.connectionError(err)
	}
	defer httpResp.Body.Close()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, c.connectionError(err)
	}

	// Providers often send a JSON-RPC error object with a 4xx/5xx status.
	var resp Response
	decodeErr := json.Unmarshal(respBody, &resp)

	if resp.Error != nil {
		msg := resp.Error.Message
		if httpResp.StatusCode != http.StatusOK {
			msg = fmt.Sprintf("%s (HTTP %d)", msg, httpResp.StatusCode)
		}
		return nil, &commitment.RPCError{
			Endpoint: c.name,
			Method:   method,
			Code:     resp.Error.Code,
			Message:  msg,
		}
	}

	if httpResp.StatusCode != http.StatusOK {
		return nil, c.rpcError(method, fmt.Sprintf("HTTP %d", httpResp.StatusCode))
	}
	if decodeErr != nil {
		return nil, c.rpcError(method, fmt.Sprintf("invalid JSON response: %v", decodeErr))
	}

	return &resp, nil
}

func (c *Client) connectionError(err error) error {
	return &commitment.ConnectionError{Endpoint: c.name, Host: c.host, Err: err}
}

func (c *Client) rpcError(method, msg string) error {
	return &commitment.RPCError{Endpoint: c.name, Method: method, Message: msg}
}
