package handlers

import (
	"context"
	"math/big"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/opus-finance/opus-api/apps/api/constants"
	"github.com/opus-finance/opus-api/libs/go/interfaces"
	"github.com/opus-finance/opus-api/libs/go/mocks"
	"github.com/opus-finance/opus-api/libs/go/services"
	"github.com/opus-finance/opus-api/libs/go/testutil"
	"github.com/opus-finance/opus-api/libs/go/types/business"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var quickScan = business.ScanConfig{Ceiling: 100, EmptyRunLimit: 5}

type debugMocks struct {
	detector *mocks.MockCapabilityDetector
	scanner  *mocks.MockLockScanner
	sessions *mocks.MockSessionService
	handler  *DebugHandler
}

func newDebugMocks(t *testing.T) debugMocks {
	ctrl := gomock.NewController(t)
	m := debugMocks{
		detector: mocks.NewMockCapabilityDetector(ctrl),
		scanner:  mocks.NewMockLockScanner(ctrl),
		sessions: mocks.NewMockSessionService(ctrl),
	}
	m.handler = NewDebugHandler(NewCommonServices(nil), m.detector, m.scanner, m.sessions, quickScan)
	return m
}

func scanHits(ids ...int64) *business.ScanResult {
	result := &business.ScanResult{StoppedBy: business.ScanStoppedEmptyRun}
	for _, id := range ids {
		result.Locks = append(result.Locks, business.Lock{ID: big.NewInt(id), Amount: testutil.Tokens(id)})
		result.LastIndex = uint64(id)
	}
	result.Reads = int(result.LastIndex) + 6
	return result
}

func TestDebugHandler_GetCapabilities(t *testing.T) {
	m := newDebugMocks(t)
	m.detector.EXPECT().Detect(gomock.Any()).Return(&business.Capabilities{
		Contract:   testutil.StakingAddress.Hex(),
		CodeSize:   4096,
		Present:    map[string]bool{"getLocks": true, "getUserLocks": false},
		Preferred:  "getLocks",
		DetectedAt: time.Unix(1_700_000_000, 0),
	}, nil)

	w, c := newTestContext(http.MethodGet, "/api/v1/debug/capabilities", nil)
	m.handler.GetCapabilities(c)

	require.Equal(t, http.StatusOK, w.Code)
	resp := decodeBody[CapabilitiesResponse](t, w)
	assert.Equal(t, "getLocks", resp.Preferred)
	assert.True(t, resp.Present["getLocks"])
	assert.Equal(t, int64(1_700_000_000), resp.DetectedAt)
}

func TestDebugHandler_ScanLocks(t *testing.T) {
	address := testutil.UserAddress.Hex()

	tests := []struct {
		name    string
		request ScanLocksRequest
		want    business.ScanConfig
	}{
		{
			name:    "default bounds",
			request: ScanLocksRequest{Address: address},
			want:    quickScan,
		},
		{
			name:    "deep preset",
			request: ScanLocksRequest{Address: address, Preset: "deep"},
			want:    business.ScanConfig{Ceiling: 1000, EmptyRunLimit: 20},
		},
		{
			name:    "explicit bounds override preset",
			request: ScanLocksRequest{Address: address, Preset: "deep", StartIndex: 3, Ceiling: 50, EmptyRunLimit: 2},
			want:    business.ScanConfig{StartIndex: 3, Ceiling: 50, EmptyRunLimit: 2},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newDebugMocks(t)
			m.scanner.EXPECT().Scan(gomock.Any(), testutil.UserAddress, tt.want).Return(scanHits(2, 5, 9), nil)

			w, c := newTestContext(http.MethodPost, "/api/v1/debug/scan", tt.request)
			m.handler.ScanLocks(c)

			require.Equal(t, http.StatusOK, w.Code)
			resp := decodeBody[LockScanResponse](t, w)
			assert.Len(t, resp.Locks, 3)
			assert.Equal(t, "16", resp.TotalLocked)
			assert.Equal(t, business.ScanStoppedEmptyRun, resp.StoppedBy)
			assert.Empty(t, resp.SessionID)
		})
	}
}

func TestDebugHandler_ScanLocksRejects(t *testing.T) {
	tests := []struct {
		name    string
		request interface{}
		message string
	}{
		{name: "missing address", request: map[string]string{"preset": "quick"}, message: constants.InvalidRequestBody},
		{name: "bad address", request: ScanLocksRequest{Address: "0xnope"}, message: constants.InvalidAddress},
		{name: "bad session id", request: ScanLocksRequest{Address: testutil.UserAddress.Hex(), SessionID: "abc"}, message: constants.InvalidSessionID},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newDebugMocks(t)
			w, c := newTestContext(http.MethodPost, "/api/v1/debug/scan", tt.request)
			m.handler.ScanLocks(c)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, tt.message, decodeError(t, w).Error)
		})
	}

	t.Run("unknown preset", func(t *testing.T) {
		m := newDebugMocks(t)
		w, c := newTestContext(http.MethodPost, "/api/v1/debug/scan",
			ScanLocksRequest{Address: testutil.UserAddress.Hex(), Preset: "forever"})
		m.handler.ScanLocks(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, decodeError(t, w).Error, "forever")
	})

	t.Run("ceiling below start", func(t *testing.T) {
		m := newDebugMocks(t)
		scanner := services.NewLockScanner(testutil.NewStubChain(), testutil.StakingAddress, nil)
		handler := NewDebugHandler(NewCommonServices(nil), m.detector, scanner, m.sessions, quickScan)

		w, c := newTestContext(http.MethodPost, "/api/v1/debug/scan",
			ScanLocksRequest{Address: testutil.UserAddress.Hex(), StartIndex: 10, Ceiling: 5})
		handler.ScanLocks(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestDebugHandler_ScanInstallsSessionLockSource(t *testing.T) {
	m := newDebugMocks(t)
	id := uuid.New()

	m.sessions.EXPECT().Get(id).Return(&business.SessionSnapshot{ID: id.String()}, nil)
	m.scanner.EXPECT().Scan(gomock.Any(), testutil.UserAddress, quickScan).Return(scanHits(1, 4), nil)
	m.sessions.EXPECT().SetLockSource(id, ScanLockSourceName, gomock.Any()).
		DoAndReturn(func(_ uuid.UUID, _ string, source interfaces.LockSource) error {
			locks, err := source.Locks(context.Background(), testutil.UserAddress)
			require.NoError(t, err)
			assert.Len(t, locks, 2)
			return nil
		})
	m.sessions.EXPECT().Refresh(gomock.Any(), id).Return(&business.SessionSnapshot{ID: id.String()}, nil)

	w, c := newTestContext(http.MethodPost, "/api/v1/debug/scan",
		ScanLocksRequest{Address: testutil.UserAddress.Hex(), SessionID: id.String()})
	m.handler.ScanLocks(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, id.String(), decodeBody[LockScanResponse](t, w).SessionID)
}

func TestDebugHandler_ScanUnknownSession(t *testing.T) {
	m := newDebugMocks(t)
	id := uuid.New()
	m.sessions.EXPECT().Get(id).Return(nil, services.ErrSessionNotFound)

	w, c := newTestContext(http.MethodPost, "/api/v1/debug/scan",
		ScanLocksRequest{Address: testutil.UserAddress.Hex(), SessionID: id.String()})
	m.handler.ScanLocks(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDebugHandler_ScanCancelledReturnsPartial(t *testing.T) {
	m := newDebugMocks(t)
	partial := scanHits(2)
	partial.StoppedBy = business.ScanStoppedCancelled
	m.scanner.EXPECT().Scan(gomock.Any(), testutil.UserAddress, quickScan).Return(partial, context.Canceled)

	w, c := newTestContext(http.MethodPost, "/api/v1/debug/scan", ScanLocksRequest{Address: testutil.UserAddress.Hex()})
	m.handler.ScanLocks(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, business.ScanStoppedCancelled, decodeBody[LockScanResponse](t, w).StoppedBy)
}

func TestDebugHandler_ScanCancelledKeepsSessionLockSource(t *testing.T) {
	m := newDebugMocks(t)
	id := uuid.New()
	partial := scanHits(2)
	partial.StoppedBy = business.ScanStoppedCancelled

	m.sessions.EXPECT().Get(id).Return(&business.SessionSnapshot{ID: id.String()}, nil)
	m.scanner.EXPECT().Scan(gomock.Any(), testutil.UserAddress, quickScan).Return(partial, context.Canceled)
	m.sessions.EXPECT().SetLockSource(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
	m.sessions.EXPECT().Refresh(gomock.Any(), gomock.Any()).Times(0)

	w, c := newTestContext(http.MethodPost, "/api/v1/debug/scan",
		ScanLocksRequest{Address: testutil.UserAddress.Hex(), SessionID: id.String()})
	m.handler.ScanLocks(c)

	require.Equal(t, http.StatusOK, w.Code)
	resp := decodeBody[LockScanResponse](t, w)
	assert.Equal(t, business.ScanStoppedCancelled, resp.StoppedBy)
	assert.Empty(t, resp.SessionID)
}
