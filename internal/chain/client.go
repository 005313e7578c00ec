package chain

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/custodia-tech/settlement-backend/internal/ledger"
	"go.uber.org/ratelimit"
)

const defaultRequestsPerSecond = 10

// Client is an HTTP JSON implementation of Provider. Each payment source
// carries its own credential, so one Client exists per source. Calls are
// throttled so a large backlog cannot hammer the provider.
type Client struct {
	baseURL    string
	credential string
	httpClient *http.Client
	rl         ratelimit.Limiter
}

// NewClient constructs a provider client. rps <= 0 applies the default
// request throttle.
func NewClient(baseURL, credential string, httpClient *http.Client, rps int) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if rps <= 0 {
		rps = defaultRequestsPerSecond
	}
	return &Client{
		baseURL:    baseURL,
		credential: credential,
		httpClient: httpClient,
		rl:         ratelimit.New(rps),
	}
}

// UTXOsAtAddress returns the unspent outputs currently held by an address.
func (c *Client) UTXOsAtAddress(ctx context.Context, address string) ([]ledger.UTXO, error) {
	var utxos []ledger.UTXO
	path := fmt.Sprintf("/addresses/%s/utxos", url.PathEscape(address))
	if err := c.get(ctx, path, &utxos); err != nil {
		return nil, fmt.Errorf("utxos at address: %w", err)
	}
	return utxos, nil
}

// UTXOsByTransaction returns the outputs produced by a transaction.
func (c *Client) UTXOsByTransaction(ctx context.Context, txHash string) ([]ledger.UTXO, error) {
	var utxos []ledger.UTXO
	path := fmt.Sprintf("/txs/%s/utxos", url.PathEscape(txHash))
	if err := c.get(ctx, path, &utxos); err != nil {
		return nil, fmt.Errorf("utxos by transaction: %w", err)
	}
	return utxos, nil
}

// Evaluate asks the provider to run the draft's scripts and report the
// execution units they actually need.
func (c *Client) Evaluate(ctx context.Context, txBytes []byte) (ledger.ExUnits, error) {
	var units ledger.ExUnits
	if err := c.post(ctx, "/utils/txs/evaluate", txBytes, &units); err != nil {
		return ledger.ExUnits{}, fmt.Errorf("evaluate draft: %w", err)
	}
	return units, nil
}

// Submit broadcasts a signed transaction and returns its hash.
func (c *Client) Submit(ctx context.Context, txBytes []byte) (string, error) {
	var res struct {
		TxHash string `json:"tx_hash"`
	}
	if err := c.post(ctx, "/tx/submit", txBytes, &res); err != nil {
		return "", fmt.Errorf("submit transaction: %w", err)
	}
	return res.TxHash, nil
}

// Tip returns the provider's view of the chain head.
func (c *Client) Tip(ctx context.Context) (ledger.Tip, error) {
	var tip ledger.Tip
	if err := c.get(ctx, "/blocks/latest", &tip); err != nil {
		return ledger.Tip{}, fmt.Errorf("chain tip: %w", err)
	}
	return tip, nil
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

func (c *Client) post(ctx context.Context, path string, body []byte, out any) error {
	return c.do(ctx, http.MethodPost, path, body, out)
}

func (c *Client) do(ctx context.Context, method, path string, body []byte, out any) error {
	c.rl.Take()

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/cbor")
	}
	if c.credential != "" {
		req.Header.Set("project_id", c.credential)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("%s %s: status %d: %s", method, path, resp.StatusCode, payload)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%s %s: decode response: %w", method, path, err)
	}
	return nil
}
