package testutil

import (
	"math/big"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gin-gonic/gin"
)

// Well-known addresses used across tests.
var (
	TokenAddress   = common.HexToAddress("0x1111111111111111111111111111111111111111")
	StakingAddress = common.HexToAddress("0x2222222222222222222222222222222222222222")
	UserAddress    = common.HexToAddress("0x742d35Cc6634C0532925a3b8D12c67d8B12b9873")
)

// Tokens returns n whole tokens at 18 decimals.
func Tokens(n int64) *big.Int {
	return new(big.Int).Mul(big.NewInt(n), new(big.Int).Exp(big.NewInt(10), big.NewInt(18), nil))
}

// TestServer creates a test HTTP server with Gin
func TestServer(t *testing.T, handler http.Handler) *httptest.Server {
	t.Helper()

	gin.SetMode(gin.TestMode)

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return server
}

// SetupTestEnvironment sets up common test environment variables
func SetupTestEnvironment(t *testing.T) {
	t.Helper()

	t.Setenv("STAGE", "local")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("RPC_URLS", "http://127.0.0.1:8545")
	t.Setenv("TOKEN_ADDRESS", TokenAddress.Hex())
	t.Setenv("STAKING_ADDRESS", StakingAddress.Hex())
}

// AssertStatusCode checks HTTP status code
func AssertStatusCode(t *testing.T, recorder *httptest.ResponseRecorder, expected int) {
	t.Helper()

	if recorder.Code != expected {
		t.Errorf("Expected status code %d, got %d. Response body: %s",
			expected, recorder.Code, recorder.Body.String())
	}
}
