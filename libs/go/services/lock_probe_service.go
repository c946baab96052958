package services

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"github.com/opus-finance/opus-api/libs/go/contracts"
	"github.com/opus-finance/opus-api/libs/go/interfaces"
	"github.com/opus-finance/opus-api/libs/go/logger"
	"github.com/opus-finance/opus-api/libs/go/metrics"
	"github.com/opus-finance/opus-api/libs/go/types/business"
	"golang.org/x/sync/errgroup"
)

const (
	// ProbeMethodRaw names the last-resort undecoded eth_call stage.
	ProbeMethodRaw = "raw"

	defaultLookupParallelism = 4
)

// LockProbeConfig configures a LockProbeService.
type LockProbeConfig struct {
	Staking common.Address
	// PinnedMethod, when set, is the only stage tried.
	PinnedMethod string
	// Detector seeds the preferred method before any probe has succeeded.
	Detector interfaces.CapabilityDetector
	// LookupParallelism bounds concurrent getLockInfo calls.
	LookupParallelism int
	Metrics           *metrics.Metrics
}

// LockProbeService discovers an account's locks on a staking contract whose
// interface is not known in advance. Candidate accessors are tried one at a
// time; the first that yields at least one lock wins and later candidates
// are not called.
type LockProbeService struct {
	staking     *contracts.Contract
	pinned      string
	detector    interfaces.CapabilityDetector
	parallelism int
	metrics     *metrics.Metrics
	log         *logger.StructuredLogger

	mu   sync.Mutex
	memo string
}

// NewLockProbeService creates a probe service over caller.
func NewLockProbeService(caller contracts.Caller, cfg LockProbeConfig) *LockProbeService {
	parallelism := cfg.LookupParallelism
	if parallelism <= 0 {
		parallelism = defaultLookupParallelism
	}
	return &LockProbeService{
		staking:     contracts.NewStakingContract(cfg.Staking, caller),
		pinned:      cfg.PinnedMethod,
		detector:    cfg.Detector,
		parallelism: parallelism,
		metrics:     cfg.Metrics,
		log:         logger.NewStructuredLogger(logger.ComponentProbe).WithContract(cfg.Staking.Hex()),
	}
}

// ProbeStrategies lists the probing stages in default order, excluding the
// raw stage which always runs last.
func ProbeStrategies() []string {
	out := append([]string(nil), contracts.LockMethodCandidates...)
	return append(out, contracts.MethodGetUserLockIds)
}

// PreferredMethod returns the pinned method, else the last winning one.
func (s *LockProbeService) PreferredMethod() string {
	if s.pinned != "" {
		return s.pinned
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.memo
}

// Probe runs the waterfall for account. When every stage fails it returns
// the attempts made together with ErrNoLockData.
func (s *LockProbeService) Probe(ctx context.Context, account common.Address) (*business.ProbeResult, error) {
	log := s.log.WithAccount(account.Hex())
	result := &business.ProbeResult{}
	// The raw stage re-issues getUserLocks, so it only makes sense when
	// that call failed to answer or decode.
	rawWorthTrying := false

	for _, method := range s.order(ctx) {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		var (
			locks []business.Lock
			err   error
		)
		if method == contracts.MethodGetUserLockIds {
			locks, err = s.lookupByIDs(ctx, account)
		} else {
			locks, err = s.callCandidate(ctx, method, account)
		}

		outcome := business.ProbeOutcomeFound
		switch {
		case err != nil:
			outcome = business.ProbeOutcomeUnavailable
		case len(locks) == 0:
			outcome = business.ProbeOutcomeEmpty
		}
		s.record(result, method, outcome, err)
		if method == contracts.MethodGetUserLocks && outcome == business.ProbeOutcomeUnavailable {
			rawWorthTrying = true
		}

		if errors.Is(err, ErrAllEndpointsFailed) {
			return result, err
		}
		if outcome == business.ProbeOutcomeFound {
			result.Method = method
			result.Locks = locks
			s.remember(method)
			log.WithField("method", method).WithField("locks", len(locks)).Debug("Lock probe succeeded")
			return result, nil
		}
	}

	if !rawWorthTrying {
		log.Debug("No lock accessor returned locks")
		return result, ErrNoLockData
	}

	raw, err := s.callRaw(ctx, account)
	if err == nil {
		s.record(result, ProbeMethodRaw, business.ProbeOutcomeFound, nil)
		result.Method = ProbeMethodRaw
		result.Raw = raw
		log.Info("Only the raw lock call answered; returning undecoded bytes")
		return result, nil
	}
	s.record(result, ProbeMethodRaw, business.ProbeOutcomeUnavailable, err)

	log.Debug("No lock accessor answered")
	return result, ErrNoLockData
}

// Locks implements interfaces.LockSource. A raw-only answer carries no
// decodable locks and is reported as ErrNoLockData.
func (s *LockProbeService) Locks(ctx context.Context, account common.Address) ([]business.Lock, error) {
	result, err := s.Probe(ctx, account)
	if err != nil {
		return nil, err
	}
	if result.Method == ProbeMethodRaw {
		return nil, ErrNoLockData
	}
	return result.Locks, nil
}

func (s *LockProbeService) order(ctx context.Context) []string {
	if s.pinned != "" {
		return []string{s.pinned}
	}
	preferred := s.PreferredMethod()
	if preferred == "" && s.detector != nil {
		caps, err := s.detector.Detect(ctx)
		if err != nil {
			s.log.Warn("Capability detection failed, using default probe order", err)
		} else {
			preferred = caps.Preferred
		}
	}
	return preferFirst(ProbeStrategies(), preferred)
}

func (s *LockProbeService) remember(method string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.memo = method
}

func (s *LockProbeService) record(result *business.ProbeResult, method, outcome string, err error) {
	attempt := business.ProbeAttempt{Method: method, Outcome: outcome}
	if err != nil {
		attempt.Error = err.Error()
	}
	result.Attempts = append(result.Attempts, attempt)
	s.metrics.ObserveProbeAttempt(method, outcome)
	s.log.LogProbeAttempt(method, outcome, err)
}

func (s *LockProbeService) callCandidate(ctx context.Context, method string, account common.Address) ([]business.Lock, error) {
	abiMethod, ok := s.staking.Method(method)
	if !ok {
		return nil, fmt.Errorf("%w: %s not in staking ABI", ErrMethodUnavailable, method)
	}
	values, err := s.staking.Call(ctx, method, account)
	if err != nil {
		return nil, unavailable(err)
	}
	return contracts.DecodeLocks(abiMethod, values), nil
}

// lookupByIDs lists lock IDs and fetches each one concurrently. IDs whose
// lookup fails or belongs to another owner are skipped.
func (s *LockProbeService) lookupByIDs(ctx context.Context, account common.Address) ([]business.Lock, error) {
	values, err := s.staking.Call(ctx, contracts.MethodGetUserLockIds, account)
	if err != nil {
		return nil, unavailable(err)
	}
	ids, ok := values[0].([]*big.Int)
	if !ok {
		return nil, fmt.Errorf("%w: unexpected lock id type %T", ErrMethodUnavailable, values[0])
	}
	if len(ids) == 0 {
		return nil, nil
	}

	infoMethod, _ := s.staking.Method(contracts.MethodGetLockInfo)
	found := make([]*business.Lock, len(ids))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.parallelism)
	for i, id := range ids {
		g.Go(func() error {
			info, err := s.staking.Call(gctx, contracts.MethodGetLockInfo, id)
			if err != nil {
				s.log.WithField("lock_id", id.String()).Debug("Lock lookup failed, skipping")
				return nil
			}
			if owner, ok := info[0].(common.Address); ok && owner != account {
				return nil
			}
			lock := contracts.DecodeLock(infoMethod, info)
			if lock.IsEmpty() {
				return nil
			}
			lock.ID = new(big.Int).Set(id)
			found[i] = &lock
			return nil
		})
	}
	_ = g.Wait()
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	locks := make([]business.Lock, 0, len(ids))
	for _, l := range found {
		if l != nil {
			locks = append(locks, *l)
		}
	}
	return locks, nil
}

// callRaw issues getUserLocks(address) as a plain eth_call and returns the
// bytes without decoding.
func (s *LockProbeService) callRaw(ctx context.Context, account common.Address) ([]byte, error) {
	data, err := s.staking.ABI().Pack(contracts.MethodGetUserLocks, account)
	if err != nil {
		return nil, fmt.Errorf("failed to encode raw lock call: %w", err)
	}
	out, err := s.staking.CallRaw(ctx, data)
	if err != nil {
		return nil, unavailable(err)
	}
	if len(out) == 0 {
		return nil, unavailable(contracts.ErrEmptyResult)
	}
	return out, nil
}

// unavailable marks a call failure as a benign missing method, unless every
// RPC endpoint is down, which is not the contract's fault.
func unavailable(err error) error {
	if errors.Is(err, ErrAllEndpointsFailed) {
		return err
	}
	return fmt.Errorf("%w: %v", ErrMethodUnavailable, err)
}
