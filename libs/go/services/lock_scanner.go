package services

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/opus-finance/opus-api/libs/go/constants"
	"github.com/opus-finance/opus-api/libs/go/contracts"
	"github.com/opus-finance/opus-api/libs/go/logger"
	"github.com/opus-finance/opus-api/libs/go/metrics"
	"github.com/opus-finance/opus-api/libs/go/types/business"
)

// Scan read outcomes, as counted in metrics.
const (
	scanReadHit   = "hit"
	scanReadEmpty = "empty"
	scanReadError = "error"
)

var scanPresets = map[string]business.ScanConfig{
	constants.ScanPresetQuick: {Ceiling: 100, EmptyRunLimit: 5},
	constants.ScanPresetDeep:  {Ceiling: 1000, EmptyRunLimit: 20},
}

// ScanPreset returns the named scan bounds.
func ScanPreset(name string) (business.ScanConfig, error) {
	cfg, ok := scanPresets[name]
	if !ok {
		return business.ScanConfig{}, fmt.Errorf("%w: unknown preset %q", ErrInvalidScanConfig, name)
	}
	return cfg, nil
}

// LockScanner enumerates locks by reading mapUserInfoLock(account, i) for
// increasing i. Reads are strictly sequential.
type LockScanner struct {
	staking *contracts.Contract
	metrics *metrics.Metrics
	log     *logger.StructuredLogger
}

// NewLockScanner creates a scanner over caller.
func NewLockScanner(caller contracts.Caller, staking common.Address, m *metrics.Metrics) *LockScanner {
	return &LockScanner{
		staking: contracts.NewStakingContract(staking, caller),
		metrics: m,
		log:     logger.NewStructuredLogger(logger.ComponentScanner).WithContract(staking.Hex()),
	}
}

// Scan reads slots StartIndex..Ceiling-1 and stops early once EmptyRunLimit
// consecutive slots are empty or fail. A cancelled context aborts the scan
// and returns what was found so far with the context error.
func (s *LockScanner) Scan(ctx context.Context, account common.Address, cfg business.ScanConfig) (*business.ScanResult, error) {
	if cfg.Ceiling <= cfg.StartIndex {
		return nil, fmt.Errorf("%w: ceiling %d must exceed start index %d", ErrInvalidScanConfig, cfg.Ceiling, cfg.StartIndex)
	}
	if cfg.EmptyRunLimit <= 0 {
		return nil, fmt.Errorf("%w: empty run limit must be positive, got %d", ErrInvalidScanConfig, cfg.EmptyRunLimit)
	}

	method, _ := s.staking.Method(contracts.MethodMapUserInfoLock)
	log := s.log.WithAccount(account.Hex())
	timer := log.NewTimer("lock scan")
	result := &business.ScanResult{Locks: []business.Lock{}}
	emptyRun := 0

	for i := cfg.StartIndex; i < cfg.Ceiling; i++ {
		if err := ctx.Err(); err != nil {
			result.StoppedBy = business.ScanStoppedCancelled
			log.WithField("reads", result.Reads).Info("Lock scan cancelled")
			timer.StopWithResult(false, err)
			return result, err
		}

		values, err := s.staking.Call(ctx, contracts.MethodMapUserInfoLock, account, new(big.Int).SetUint64(i))
		result.Reads++
		result.LastIndex = i

		switch {
		case err != nil:
			result.Errors++
			emptyRun++
			s.metrics.ObserveScanRead(scanReadError)
		default:
			lock := contracts.DecodeLock(method, values)
			if lock.IsEmpty() {
				emptyRun++
				s.metrics.ObserveScanRead(scanReadEmpty)
				break
			}
			lock.ID = new(big.Int).SetUint64(i)
			result.Locks = append(result.Locks, lock)
			emptyRun = 0
			s.metrics.ObserveScanRead(scanReadHit)
		}

		if emptyRun >= cfg.EmptyRunLimit {
			result.StoppedBy = business.ScanStoppedEmptyRun
			break
		}
	}
	if result.StoppedBy == "" {
		result.StoppedBy = business.ScanStoppedCeiling
	}

	log.WithFields(map[string]interface{}{
		"reads":      result.Reads,
		"locks":      len(result.Locks),
		"errors":     result.Errors,
		"stopped_by": result.StoppedBy,
	}).Debug("Lock scan finished")
	timer.StopWithResult(true, nil)
	return result, nil
}

// ScannerLockSource runs a scan with fixed bounds on every Locks call.
type ScannerLockSource struct {
	scanner *LockScanner
	cfg     business.ScanConfig
}

// NewScannerLockSource adapts scanner to interfaces.LockSource.
func NewScannerLockSource(scanner *LockScanner, cfg business.ScanConfig) *ScannerLockSource {
	return &ScannerLockSource{scanner: scanner, cfg: cfg}
}

// Locks implements interfaces.LockSource.
func (s *ScannerLockSource) Locks(ctx context.Context, account common.Address) ([]business.Lock, error) {
	result, err := s.scanner.Scan(ctx, account, s.cfg)
	if err != nil {
		return nil, err
	}
	return result.Locks, nil
}

// StaticLockSource serves a fixed lock list, such as the output of an
// earlier scan.
type StaticLockSource struct {
	locks []business.Lock
}

// NewStaticLockSource creates a source that always returns locks.
func NewStaticLockSource(locks []business.Lock) *StaticLockSource {
	return &StaticLockSource{locks: append([]business.Lock(nil), locks...)}
}

// Locks implements interfaces.LockSource.
func (s *StaticLockSource) Locks(ctx context.Context, account common.Address) ([]business.Lock, error) {
	return append([]business.Lock(nil), s.locks...), nil
}
