package services

import (
	"errors"

	"github.com/opus-finance/opus-api/libs/go/client/rpc"
	"github.com/opus-finance/opus-api/libs/go/client/wallet"
)

var (
	// ErrNoWallet is returned when connecting without a provider or account.
	ErrNoWallet = wallet.ErrNoWallet
	// ErrUserRejected is returned when the wallet owner declines to connect.
	ErrUserRejected = wallet.ErrUserRejected
	// ErrWatchAssetUnsupported is returned when the session's wallet cannot register tokens.
	ErrWatchAssetUnsupported = wallet.ErrWatchAssetUnsupported
	// ErrNotConnected is returned by session operations that need an account.
	ErrNotConnected = errors.New("wallet not connected")
	// ErrMethodUnavailable marks a probe candidate that is absent or reverted.
	ErrMethodUnavailable = errors.New("method unavailable")
	// ErrNoLockData is returned when every lock discovery strategy is exhausted.
	ErrNoLockData = errors.New("no data found")
	// ErrAllEndpointsFailed is returned when no RPC endpoint answers.
	ErrAllEndpointsFailed = rpc.ErrAllEndpointsFailed
	// ErrSessionNotFound is returned for unknown session IDs.
	ErrSessionNotFound = errors.New("session not found")
	// ErrPageNotFound is returned for unknown content slugs.
	ErrPageNotFound = errors.New("page not found")
	// ErrInvalidScanConfig is returned for unknown presets and empty bounds.
	ErrInvalidScanConfig = errors.New("invalid scan config")
)
