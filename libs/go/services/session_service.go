package services

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/opus-finance/opus-api/libs/go/client/wallet"
	"github.com/opus-finance/opus-api/libs/go/interfaces"
	"github.com/opus-finance/opus-api/libs/go/logger"
	"github.com/opus-finance/opus-api/libs/go/types/business"
)

// DefaultSessionIdleTTL is how long a session may go unused before it is dropped.
const DefaultSessionIdleTTL = 30 * time.Minute

// SessionService keeps one BlockchainContext per connected API client.
// Sessions idle for longer than the idle TTL are closed and forgotten.
type SessionService struct {
	cfg     BlockchainContextConfig
	log     *logger.StructuredLogger
	idleTTL time.Duration
	now     func() time.Time

	mu       sync.Mutex
	sessions map[uuid.UUID]*session
}

type session struct {
	bc       *BlockchainContext
	lastSeen time.Time
}

// SessionOption configures a SessionService.
type SessionOption func(*SessionService)

// WithSessionIdleTTL overrides DefaultSessionIdleTTL. A non-positive ttl is ignored.
func WithSessionIdleTTL(ttl time.Duration) SessionOption {
	return func(s *SessionService) {
		if ttl > 0 {
			s.idleTTL = ttl
		}
	}
}

// WithSessionClock replaces time.Now.
func WithSessionClock(now func() time.Time) SessionOption {
	return func(s *SessionService) { s.now = now }
}

// NewSessionService creates a session registry whose contexts share cfg's sources
func NewSessionService(cfg BlockchainContextConfig, opts ...SessionOption) *SessionService {
	s := &SessionService{
		cfg:      cfg,
		log:      logger.NewStructuredLogger(logger.ComponentSession),
		idleTTL:  DefaultSessionIdleTTL,
		now:      time.Now,
		sessions: make(map[uuid.UUID]*session),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Connect opens a session for provider and performs the first balance refresh
func (s *SessionService) Connect(ctx context.Context, provider wallet.Provider) (*business.SessionSnapshot, error) {
	bc := NewBlockchainContext(s.cfg)
	if _, err := bc.Connect(ctx, provider); err != nil {
		return nil, err
	}
	if err := bc.RefreshBalances(ctx); err != nil {
		return nil, err
	}

	id := uuid.New()
	s.mu.Lock()
	expired := s.sweepLocked()
	s.sessions[id] = &session{bc: bc, lastSeen: s.now()}
	s.mu.Unlock()
	s.closeExpired(expired)

	s.log.WithSessionID(id.String()).WithAccount(snapshotAccount(bc)).Info("Session opened")
	return s.snapshot(id, bc), nil
}

// Get returns the current snapshot of a session
func (s *SessionService) Get(id uuid.UUID) (*business.SessionSnapshot, error) {
	bc, err := s.lookup(id)
	if err != nil {
		return nil, err
	}
	return s.snapshot(id, bc), nil
}

// Refresh re-reads a session's balances
func (s *SessionService) Refresh(ctx context.Context, id uuid.UUID) (*business.SessionSnapshot, error) {
	bc, err := s.lookup(id)
	if err != nil {
		return nil, err
	}
	if err := bc.RefreshBalances(ctx); err != nil {
		return nil, err
	}
	return s.snapshot(id, bc), nil
}

// Disconnect closes a session and forgets it
func (s *SessionService) Disconnect(id uuid.UUID) error {
	s.mu.Lock()
	expired := s.sweepLocked()
	sess, ok := s.sessions[id]
	delete(s.sessions, id)
	s.mu.Unlock()
	s.closeExpired(expired)
	if !ok {
		return ErrSessionNotFound
	}

	sess.bc.Disconnect()
	s.log.WithSessionID(id.String()).Info("Session closed")
	return nil
}

// SetLockSource swaps the lock source of one session
func (s *SessionService) SetLockSource(id uuid.UUID, name string, source interfaces.LockSource) error {
	bc, err := s.lookup(id)
	if err != nil {
		return err
	}
	bc.SetLockSource(name, source)
	return nil
}

// WatchAsset asks the session's wallet to track the token
func (s *SessionService) WatchAsset(ctx context.Context, id uuid.UUID) (bool, error) {
	bc, err := s.lookup(id)
	if err != nil {
		return false, err
	}
	return bc.WatchAsset(ctx)
}

// Count returns the number of open sessions
func (s *SessionService) Count() int {
	s.mu.Lock()
	expired := s.sweepLocked()
	n := len(s.sessions)
	s.mu.Unlock()
	s.closeExpired(expired)
	return n
}

// lookup returns a live session and marks it used.
func (s *SessionService) lookup(id uuid.UUID) (*BlockchainContext, error) {
	s.mu.Lock()
	expired := s.sweepLocked()
	sess, ok := s.sessions[id]
	if ok {
		sess.lastSeen = s.now()
	}
	s.mu.Unlock()
	s.closeExpired(expired)
	if !ok {
		return nil, ErrSessionNotFound
	}
	return sess.bc, nil
}

// sweepLocked removes idle sessions and returns them. s.mu must be held.
func (s *SessionService) sweepLocked() map[uuid.UUID]*BlockchainContext {
	cutoff := s.now().Add(-s.idleTTL)
	var expired map[uuid.UUID]*BlockchainContext
	for id, sess := range s.sessions {
		if sess.lastSeen.Before(cutoff) {
			if expired == nil {
				expired = make(map[uuid.UUID]*BlockchainContext)
			}
			expired[id] = sess.bc
			delete(s.sessions, id)
		}
	}
	return expired
}

func (s *SessionService) closeExpired(expired map[uuid.UUID]*BlockchainContext) {
	for id, bc := range expired {
		bc.Disconnect()
		s.log.WithSessionID(id.String()).Info("Session expired")
	}
}

func (s *SessionService) snapshot(id uuid.UUID, bc *BlockchainContext) *business.SessionSnapshot {
	snap := bc.Snapshot()
	snap.ID = id.String()
	return &snap
}

func snapshotAccount(bc *BlockchainContext) string {
	account, _ := bc.Account()
	return account.Hex()
}
