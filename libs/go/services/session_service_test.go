package services_test

import (
	"context"
	"errors"
	"math/big"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/opus-finance/opus-api/libs/go/client/wallet"
	"github.com/opus-finance/opus-api/libs/go/services"
	"github.com/opus-finance/opus-api/libs/go/testutil"
	"github.com/opus-finance/opus-api/libs/go/types/business"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionService_Lifecycle(t *testing.T) {
	svc := services.NewSessionService(dashboardConfig(dashboardChain(20, 1000)))
	ctx := context.Background()

	snap, err := svc.Connect(ctx, wallet.NewStaticProvider(testutil.UserAddress))
	require.NoError(t, err)
	id, err := uuid.Parse(snap.ID)
	require.NoError(t, err)
	assert.Equal(t, business.SessionStatusConnected, snap.Status)
	assert.Equal(t, "1000", snap.Balances.Staked)
	assert.Equal(t, "Total: 1,020 OPUS", snap.Summary[3])
	assert.Equal(t, 1, svc.Count())

	got, err := svc.Get(id)
	require.NoError(t, err)
	assert.Equal(t, snap.Account, got.Account)

	require.NoError(t, svc.SetLockSource(id, "scan", services.NewStaticLockSource([]business.Lock{
		{ID: big.NewInt(1), Amount: testutil.Tokens(5)},
	})))
	refreshed, err := svc.Refresh(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "5", refreshed.Balances.Locked)
	assert.Equal(t, "scan", refreshed.LockSource)
	assert.Len(t, refreshed.Locks, 1)

	_, err = svc.WatchAsset(ctx, id)
	assert.True(t, errors.Is(err, services.ErrWatchAssetUnsupported))

	require.NoError(t, svc.Disconnect(id))
	assert.Equal(t, 0, svc.Count())
	_, err = svc.Get(id)
	assert.True(t, errors.Is(err, services.ErrSessionNotFound))
}

func TestSessionService_UnknownSession(t *testing.T) {
	svc := services.NewSessionService(services.BlockchainContextConfig{})
	id := uuid.New()

	_, err := svc.Get(id)
	assert.True(t, errors.Is(err, services.ErrSessionNotFound))
	_, err = svc.Refresh(context.Background(), id)
	assert.True(t, errors.Is(err, services.ErrSessionNotFound))
	assert.True(t, errors.Is(svc.Disconnect(id), services.ErrSessionNotFound))
	assert.True(t, errors.Is(svc.SetLockSource(id, "scan", nil), services.ErrSessionNotFound))
	_, err = svc.WatchAsset(context.Background(), id)
	assert.True(t, errors.Is(err, services.ErrSessionNotFound))
}

func TestSessionService_ConnectWithoutWallet(t *testing.T) {
	svc := services.NewSessionService(services.BlockchainContextConfig{})
	_, err := svc.Connect(context.Background(), wallet.NewStaticProvider())
	assert.True(t, errors.Is(err, services.ErrNoWallet))
	assert.Equal(t, 0, svc.Count())
}

func TestSessionService_IdleExpiry(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }
	svc := services.NewSessionService(dashboardConfig(dashboardChain(1, 0)),
		services.WithSessionIdleTTL(time.Minute), services.WithSessionClock(clock))
	ctx := context.Background()

	idle, err := svc.Connect(ctx, wallet.NewStaticProvider(testutil.UserAddress))
	require.NoError(t, err)
	busy, err := svc.Connect(ctx, wallet.NewStaticProvider(testutil.UserAddress))
	require.NoError(t, err)
	idleID, busyID := uuid.MustParse(idle.ID), uuid.MustParse(busy.ID)

	now = now.Add(40 * time.Second)
	_, err = svc.Get(busyID)
	require.NoError(t, err)

	now = now.Add(40 * time.Second)
	_, err = svc.Get(idleID)
	assert.True(t, errors.Is(err, services.ErrSessionNotFound))
	_, err = svc.Refresh(ctx, busyID)
	require.NoError(t, err)
	assert.Equal(t, 1, svc.Count())

	now = now.Add(2 * time.Minute)
	assert.Equal(t, 0, svc.Count())
	assert.True(t, errors.Is(svc.Disconnect(busyID), services.ErrSessionNotFound))
}

func TestSessionService_DefaultIdleTTL(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	svc := services.NewSessionService(dashboardConfig(dashboardChain(1, 0)),
		services.WithSessionIdleTTL(0), services.WithSessionClock(func() time.Time { return now }))

	snap, err := svc.Connect(context.Background(), wallet.NewStaticProvider(testutil.UserAddress))
	require.NoError(t, err)

	now = now.Add(services.DefaultSessionIdleTTL - time.Second)
	_, err = svc.Get(uuid.MustParse(snap.ID))
	require.NoError(t, err)
}
