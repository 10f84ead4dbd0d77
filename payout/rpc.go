package payout

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync/atomic"
	"time"
)

// RPCBroadcaster submits raw payout transactions to a BSV node over
// JSON-RPC 1.0, with optional HTTP Basic Auth. It implements Broadcaster.
type RPCBroadcaster struct {
	url    string
	user   string
	pass   string
	client *http.Client
	nextID atomic.Int64
}

// Compile-time interface check.
var _ Broadcaster = (*RPCBroadcaster)(nil)

// NewRPCBroadcaster creates a broadcaster talking to the node at url.
// user may be empty to disable authentication.
func NewRPCBroadcaster(url, user, pass string) *RPCBroadcaster {
	return &RPCBroadcaster{
		url:  url,
		user: user,
		pass: pass,
		client: &http.Client{
			Timeout: 30 * time.Second,
			Transport: &http.Transport{
				MaxIdleConns:        10,
				IdleConnTimeout:     90 * time.Second,
				MaxIdleConnsPerHost: 10,
			},
		},
	}
}

type rpcRequest struct {
	JSONRPC string        `json:"jsonrpc"`
	ID      int64         `json:"id"`
	Method  string        `json:"method"`
	Params  []interface{} `json:"params"`
}

type rpcResponse struct {
	ID     int64           `json:"id"`
	Result json.RawMessage `json:"result"`
	Error  *rpcError       `json:"error"`
}

type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// BroadcastTx submits a raw transaction hex via sendrawtransaction and
// returns the txid. Node-side rejections come back as ErrBroadcastRejected.
func (b *RPCBroadcaster) BroadcastTx(ctx context.Context, rawTxHex string) (string, error) {
	var txid string
	if err := b.call(ctx, "sendrawtransaction", []interface{}{rawTxHex}, &txid); err != nil {
		return "", err
	}
	return txid, nil
}

func (b *RPCBroadcaster) call(ctx context.Context, method string, params []interface{}, result interface{}) error {
	reqBody := rpcRequest{
		JSONRPC: "1.0",
		ID:      b.nextID.Add(1),
		Method:  method,
		Params:  params,
	}
	body, err := json.Marshal(reqBody)
	if err != nil {
		return fmt.Errorf("payout: marshal rpc request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, b.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("payout: create rpc request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if b.user != "" {
		req.SetBasicAuth(b.user, b.pass)
	}

	resp, err := b.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrNodeUnreachable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("%w: HTTP %d: %s", ErrNodeUnreachable, resp.StatusCode, string(respBody))
	}

	var rpcResp rpcResponse
	if err := json.NewDecoder(resp.Body).Decode(&rpcResp); err != nil {
		return fmt.Errorf("%w: decode response: %w", ErrInvalidNodeResponse, err)
	}
	if rpcResp.ID != reqBody.ID {
		return fmt.Errorf("%w: response ID mismatch: expected %d, got %d",
			ErrInvalidNodeResponse, reqBody.ID, rpcResp.ID)
	}
	if rpcResp.Error != nil {
		return fmt.Errorf("%w: rpc error %d: %s", ErrBroadcastRejected, rpcResp.Error.Code, rpcResp.Error.Message)
	}

	if result != nil && rpcResp.Result != nil {
		if err := json.Unmarshal(rpcResp.Result, result); err != nil {
			return fmt.Errorf("%w: unmarshal result: %w", ErrInvalidNodeResponse, err)
		}
	}
	return nil
}
