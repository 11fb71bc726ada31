package ledger

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"math/big"
	"net/http"
	"strings"

	"assetrates/internal/domain"
)

const ownerKeyHeader = "X-Owner-Key"

// Client talks to a single-value ledger node. Values travel as decimal
// strings because the node stores 256-bit integers.
type Client struct {
	http      *http.Client
	baseURL   string
	accessKey string
}

func NewClient(httpClient *http.Client, baseURL, accessKey string) *Client {
	return &Client{
		http:      httpClient,
		baseURL:   strings.TrimSuffix(baseURL, "/"),
		accessKey: accessKey,
	}
}

type Receipt struct {
	TxHash      string `json:"tx_hash"`
	BlockNumber uint64 `json:"block_number"`
	GasUsed     uint64 `json:"gas_used"`
	Status      int    `json:"status"`
}

type updateRateRequest struct {
	Rate      string `json:"rate"`
	Timestamp string `json:"timestamp"`
}

type currentRateResponse struct {
	Rate      string `json:"rate"`
	Timestamp string `json:"timestamp"`
}

type nodeError struct {
	Error string `json:"error"`
}

// UpdateRate submits a write and returns the node's receipt. The node's owner
// guard and monotonicity rejections come back as domain.ErrWriteDenied and
// domain.ErrStaleWrite.
func (c *Client) UpdateRate(ctx context.Context, rate, timestamp *big.Int) (Receipt, error) {
	payload, err := json.Marshal(updateRateRequest{
		Rate:      rate.String(),
		Timestamp: timestamp.String(),
	})
	if err != nil {
		return Receipt{}, fmt.Errorf("failed to marshal update request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/contract/rate", bytes.NewReader(payload))
	if err != nil {
		return Receipt{}, fmt.Errorf("failed to create update request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(ownerKeyHeader, c.accessKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return Receipt{}, fmt.Errorf("failed to execute update request: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusUnauthorized, http.StatusForbidden:
		return Receipt{}, fmt.Errorf("%w: %s", domain.ErrWriteDenied, readNodeError(resp))
	case http.StatusConflict:
		return Receipt{}, fmt.Errorf("%w: %s", domain.ErrStaleWrite, readNodeError(resp))
	default:
		return Receipt{}, fmt.Errorf("unexpected status %d from ledger node: %s", resp.StatusCode, readNodeError(resp))
	}

	var receipt Receipt
	if err = json.NewDecoder(resp.Body).Decode(&receipt); err != nil {
		return Receipt{}, fmt.Errorf("failed to decode receipt: %w", err)
	}
	if receipt.Status != 1 {
		return Receipt{}, fmt.Errorf("ledger transaction %s failed with status %d", receipt.TxHash, receipt.Status)
	}
	return receipt, nil
}

// CurrentRate reads the stored pair. domain.ErrRateNotFound means the ledger
// was never written.
func (c *Client) CurrentRate(ctx context.Context) (rate, timestamp *big.Int, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/contract/rate", nil)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create read request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to execute read request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, nil, domain.ErrRateNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return nil, nil, fmt.Errorf("unexpected status %d from ledger node: %s", resp.StatusCode, readNodeError(resp))
	}

	var body currentRateResponse
	if err = json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, nil, fmt.Errorf("failed to decode current rate: %w", err)
	}

	rate, ok := new(big.Int).SetString(body.Rate, 10)
	if !ok {
		return nil, nil, fmt.Errorf("ledger node returned invalid rate %q", body.Rate)
	}
	timestamp, ok = new(big.Int).SetString(body.Timestamp, 10)
	if !ok {
		return nil, nil, fmt.Errorf("ledger node returned invalid timestamp %q", body.Timestamp)
	}
	return rate, timestamp, nil
}

func readNodeError(resp *http.Response) string {
	var ne nodeError
	if err := json.NewDecoder(resp.Body).Decode(&ne); err != nil || ne.Error == "" {
		return resp.Status
	}
	return ne.Error
}
