package explorer

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"strconv"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	httpClient "github.com/opus-finance/opus-api/libs/go/client/http"
	"github.com/opus-finance/opus-api/libs/go/logger"
	"go.uber.org/zap"
)

const (
	defaultBaseURL = "https://api.scan.pulsechain.com"
	defaultTimeout = 10 * time.Second
)

// ErrNoValue is returned when the explorer answered without the field asked for.
var ErrNoValue = errors.New("explorer response has no value")

// Client reads token aggregates from a Blockscout-style block explorer API.
// The explorer is best-effort; no schema is guaranteed, so numeric fields
// are decoded leniently.
type Client struct {
	httpClient *httpClient.HTTPClient
	baseURL    string
	apiKey     string
}

// NewClient creates an explorer client. Extra options are applied after the
// defaults so callers can attach metrics or change the timeout.
func NewClient(baseURL string, options ...httpClient.ClientOption) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	opts := append([]httpClient.ClientOption{
		httpClient.WithBaseURL(baseURL),
		httpClient.WithTimeout(defaultTimeout),
		httpClient.WithRetryConfig(&httpClient.RetryConfig{
			MaxRetries:           1,
			InitialInterval:      200 * time.Millisecond,
			MaxInterval:          time.Second,
			Multiplier:           2,
			MaxElapsedTime:       5 * time.Second,
			RetryableStatusCodes: []int{429, 502, 503, 504},
		}),
	}, options...)

	return &Client{
		httpClient: httpClient.NewHTTPClient(opts...),
		baseURL:    baseURL,
	}
}

// WithAPIKey sends key as the apikey query parameter on every request.
func (c *Client) WithAPIKey(key string) *Client {
	c.apiKey = key
	return c
}

func (c *Client) get(ctx context.Context, path string, target interface{}) error {
	var opts []httpClient.RequestOption
	if c.apiKey != "" {
		opts = append(opts, httpClient.WithQueryParam("apikey", c.apiKey))
	}
	return c.httpClient.GetJSON(ctx, path, target, opts...)
}

// Number decodes a JSON number or a numeric string, which Blockscout uses
// for large values.
type Number struct {
	raw string
}

// UnmarshalJSON implements json.Unmarshaler.
func (n *Number) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		n.raw = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		n.raw = strings.TrimSpace(s)
		return nil
	}
	n.raw = string(data)
	return nil
}

// IsSet reports whether the field was present and non-null.
func (n Number) IsSet() bool { return n.raw != "" }

// Int returns the value as a big integer.
func (n Number) Int() (*big.Int, bool) {
	if n.raw == "" {
		return nil, false
	}
	v, ok := new(big.Int).SetString(n.raw, 10)
	return v, ok
}

// Int64 returns the value as an int64.
func (n Number) Int64() (int64, bool) {
	v, err := strconv.ParseInt(n.raw, 10, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// Float returns the value as a float64. Subgraphs report BigDecimal fields
// as decimal strings.
func (n Number) Float() (float64, bool) {
	if n.raw == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(n.raw, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// TokenDetails is the subset of /api/v2/tokens/{address} used here.
type TokenDetails struct {
	Address     string `json:"address"`
	Name        string `json:"name"`
	Symbol      string `json:"symbol"`
	Decimals    Number `json:"decimals"`
	TotalSupply Number `json:"total_supply"`
	Holders     Number `json:"holders"`
	// Newer Blockscout releases renamed holders.
	HoldersCount Number `json:"holders_count"`
}

// TokenCounters is /api/v2/tokens/{address}/counters.
type TokenCounters struct {
	TokenHoldersCount Number `json:"token_holders_count"`
	TransfersCount    Number `json:"transfers_count"`
}

// Holder is one entry of the holders listing.
type Holder struct {
	Address struct {
		Hash string `json:"hash"`
	} `json:"address"`
	Value Number `json:"value"`
}

// HoldersPage is one page of the holders listing.
type HoldersPage struct {
	Items          []Holder               `json:"items"`
	NextPageParams map[string]interface{} `json:"next_page_params"`
}

type holderCountResponse struct {
	Count        Number `json:"count"`
	HolderCount  Number `json:"holder_count"`
	HoldersCount Number `json:"holders_count"`
}

type tokenBalance struct {
	Token struct {
		Address     string `json:"address"`
		AddressHash string `json:"address_hash"`
	} `json:"token"`
	Value Number `json:"value"`
}

func tokenPath(token common.Address, suffix string) string {
	return fmt.Sprintf("/api/v2/tokens/%s%s", token.Hex(), suffix)
}

// HolderCount returns the number of holders of token. It asks the dedicated
// counter endpoint first and the token counters endpoint second.
func (c *Client) HolderCount(ctx context.Context, token common.Address) (int64, error) {
	var direct holderCountResponse
	err := c.get(ctx, tokenPath(token, "/token-holders-count"), &direct)
	if err == nil {
		for _, n := range []Number{direct.Count, direct.HolderCount, direct.HoldersCount} {
			if v, ok := n.Int64(); ok {
				return v, nil
			}
		}
	}
	logger.Debug("Explorer holder count endpoint gave no value, trying counters",
		zap.String("token", token.Hex()), zap.Error(err))

	counters, err := c.TokenCounters(ctx, token)
	if err != nil {
		return 0, err
	}
	if v, ok := counters.TokenHoldersCount.Int64(); ok {
		return v, nil
	}
	return 0, fmt.Errorf("holder count: %w", ErrNoValue)
}

// TokenCounters fetches holder and transfer counters.
func (c *Client) TokenCounters(ctx context.Context, token common.Address) (*TokenCounters, error) {
	var out TokenCounters
	if err := c.get(ctx, tokenPath(token, "/counters"), &out); err != nil {
		return nil, fmt.Errorf("failed to fetch token counters: %w", err)
	}
	return &out, nil
}

// TokenDetails fetches token metadata including total supply.
func (c *Client) TokenDetails(ctx context.Context, token common.Address) (*TokenDetails, error) {
	var out TokenDetails
	if err := c.get(ctx, tokenPath(token, ""), &out); err != nil {
		return nil, fmt.Errorf("failed to fetch token details: %w", err)
	}
	return &out, nil
}

// TokenHolders fetches the first page of holders.
func (c *Client) TokenHolders(ctx context.Context, token common.Address) (*HoldersPage, error) {
	var out HoldersPage
	if err := c.get(ctx, tokenPath(token, "/token-holders"), &out); err != nil {
		return nil, fmt.Errorf("failed to fetch token holders: %w", err)
	}
	return &out, nil
}

// TokenBalance returns the raw balance of token held by holder.
func (c *Client) TokenBalance(ctx context.Context, holder, token common.Address) (*big.Int, error) {
	var balances []tokenBalance
	path := fmt.Sprintf("/api/v2/addresses/%s/token-balances", holder.Hex())
	if err := c.get(ctx, path, &balances); err != nil {
		return nil, fmt.Errorf("failed to fetch token balances: %w", err)
	}
	for _, b := range balances {
		addr := b.Token.Address
		if addr == "" {
			addr = b.Token.AddressHash
		}
		if strings.EqualFold(addr, token.Hex()) {
			if v, ok := b.Value.Int(); ok {
				return v, nil
			}
		}
	}
	return nil, fmt.Errorf("token balance: %w", ErrNoValue)
}
