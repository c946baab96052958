package subgraph

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/opus-finance/opus-api/libs/go/client/explorer"
	httpClient "github.com/opus-finance/opus-api/libs/go/client/http"
)

const defaultTimeout = 10 * time.Second

// ErrNotConfigured is returned by a client with no endpoint.
var ErrNotConfigured = errors.New("subgraph endpoint not configured")

const tokenStatsQuery = `query TokenStats($token: ID!) {
  token(id: $token) { totalSupply holderCount }
  stakingStat(id: "global") { totalStaked stakerCount }
}`

// Client queries a GraphQL subgraph indexing the token and staking contract.
type Client struct {
	httpClient *httpClient.HTTPClient
	endpoint   string
	apiKey     string
}

// NewClient creates a subgraph client. An empty endpoint yields a client
// whose calls fail with ErrNotConfigured.
func NewClient(endpoint string, options ...httpClient.ClientOption) *Client {
	opts := append([]httpClient.ClientOption{
		httpClient.WithTimeout(defaultTimeout),
		httpClient.WithRetryConfig(nil),
	}, options...)
	return &Client{
		httpClient: httpClient.NewHTTPClient(opts...),
		endpoint:   endpoint,
	}
}

// WithAPIKey authenticates queries with a bearer token, as hosted gateways
// require.
func (c *Client) WithAPIKey(key string) *Client {
	c.apiKey = key
	return c
}

type graphQLRequest struct {
	Query     string                 `json:"query"`
	Variables map[string]interface{} `json:"variables,omitempty"`
}

type graphQLError struct {
	Message string `json:"message"`
}

// TokenStats is the aggregate view exposed by the subgraph. Fields the
// subgraph did not return are left unset.
type TokenStats struct {
	TotalSupply explorer.Number
	HolderCount explorer.Number
	TotalStaked explorer.Number
	StakerCount explorer.Number
}

type tokenStatsResponse struct {
	Data *struct {
		Token *struct {
			TotalSupply explorer.Number `json:"totalSupply"`
			HolderCount explorer.Number `json:"holderCount"`
		} `json:"token"`
		StakingStat *struct {
			TotalStaked explorer.Number `json:"totalStaked"`
			StakerCount explorer.Number `json:"stakerCount"`
		} `json:"stakingStat"`
	} `json:"data"`
	Errors []graphQLError `json:"errors"`
}

// TokenStats runs the aggregate query for token.
func (c *Client) TokenStats(ctx context.Context, token common.Address) (*TokenStats, error) {
	if c.endpoint == "" {
		return nil, ErrNotConfigured
	}

	var resp tokenStatsResponse
	req := graphQLRequest{
		Query:     tokenStatsQuery,
		Variables: map[string]interface{}{"token": strings.ToLower(token.Hex())},
	}
	var opts []httpClient.RequestOption
	if c.apiKey != "" {
		opts = append(opts, httpClient.WithBearerToken(c.apiKey))
	}
	if err := c.httpClient.PostJSON(ctx, c.endpoint, req, &resp, opts...); err != nil {
		return nil, fmt.Errorf("failed to query subgraph: %w", err)
	}
	if len(resp.Errors) > 0 {
		msgs := make([]string, 0, len(resp.Errors))
		for _, e := range resp.Errors {
			msgs = append(msgs, e.Message)
		}
		return nil, fmt.Errorf("subgraph returned errors: %s", strings.Join(msgs, "; "))
	}
	if resp.Data == nil {
		return nil, errors.New("subgraph returned no data")
	}

	stats := &TokenStats{}
	if t := resp.Data.Token; t != nil {
		stats.TotalSupply = t.TotalSupply
		stats.HolderCount = t.HolderCount
	}
	if s := resp.Data.StakingStat; s != nil {
		stats.TotalStaked = s.TotalStaked
		stats.StakerCount = s.StakerCount
	}
	return stats, nil
}
