package services

import (
	"bytes"
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/opus-finance/opus-api/libs/go/cache"
	"github.com/opus-finance/opus-api/libs/go/contracts"
	"github.com/opus-finance/opus-api/libs/go/logger"
	"github.com/opus-finance/opus-api/libs/go/types/business"
)

const (
	opDelegateCall = 0xf4
	// Proxies that forward every call are tiny; EIP-1167 clones are 45 bytes.
	maxProxyCodeSize = 1024
)

// CapabilityDetector reads the staking bytecode once and reports which lock
// accessors its dispatcher knows. Results are kept in memory and, when a
// cache store is configured, shared across instances.
type CapabilityDetector struct {
	staking *contracts.Contract
	store   cache.Store
	ttl     time.Duration
	now     func() time.Time
	log     *logger.StructuredLogger

	mu     sync.Mutex
	cached *business.Capabilities
}

// NewCapabilityDetector creates a detector for the staking contract. store
// may be nil.
func NewCapabilityDetector(caller contracts.Caller, staking common.Address, store cache.Store, ttl time.Duration) *CapabilityDetector {
	return &CapabilityDetector{
		staking: contracts.NewStakingContract(staking, caller),
		store:   store,
		ttl:     ttl,
		now:     time.Now,
		log:     logger.NewStructuredLogger(logger.ComponentProbe).WithContract(staking.Hex()),
	}
}

// DetectableMethods lists every staking accessor the detector looks for.
func DetectableMethods() []string {
	out := ProbeStrategies()
	return append(out,
		contracts.MethodGetLockInfo,
		contracts.MethodMapUserInfoLock,
		contracts.MethodTotalStaked,
	)
}

func (d *CapabilityDetector) cacheKey() string {
	return "capabilities:" + d.staking.Address().Hex()
}

// Detect returns the capabilities of the staking contract.
func (d *CapabilityDetector) Detect(ctx context.Context) (*business.Capabilities, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.cached != nil {
		return copyCapabilities(d.cached), nil
	}

	if d.store != nil {
		var caps business.Capabilities
		found, err := cache.GetJSON(ctx, d.store, d.cacheKey(), &caps)
		if err != nil {
			d.log.Warn("Failed to read cached capabilities", err)
		} else if found {
			d.cached = &caps
			return copyCapabilities(d.cached), nil
		}
	}

	var code []byte
	err := d.log.LogOperation("read staking bytecode", func() error {
		var err error
		code, err = d.staking.Code(ctx)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to inspect staking contract: %w", err)
	}

	caps := inspectCode(code)
	caps.Contract = d.staking.Address().Hex()
	caps.DetectedAt = d.now()
	d.cached = caps

	if d.store != nil {
		if err := cache.SetJSON(ctx, d.store, d.cacheKey(), caps, d.ttl); err != nil {
			d.log.Warn("Failed to cache capabilities", err)
		}
	}

	d.log.WithFields(map[string]interface{}{
		"preferred": caps.Preferred,
		"proxy":     caps.Proxy,
		"code_size": caps.CodeSize,
	}).Info("Staking capabilities detected")
	return copyCapabilities(caps), nil
}

// Preferred returns the first detected lock accessor in waterfall order.
func (d *CapabilityDetector) Preferred(ctx context.Context) (string, error) {
	caps, err := d.Detect(ctx)
	if err != nil {
		return "", err
	}
	return caps.Preferred, nil
}

// Reset drops the in-memory result so the next Detect reads the chain or
// the shared cache again.
func (d *CapabilityDetector) Reset() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.cached = nil
}

func inspectCode(code []byte) *business.Capabilities {
	caps := &business.Capabilities{
		CodeSize: len(code),
		Present:  make(map[string]bool),
	}
	staking := contracts.Staking()

	anyPresent := false
	for _, name := range DetectableMethods() {
		m, ok := staking.Methods[name]
		if !ok {
			continue
		}
		present := contracts.HasSelector(code, m.ID)
		caps.Present[name] = present
		anyPresent = anyPresent || present
	}

	for _, name := range ProbeStrategies() {
		if caps.Present[name] {
			caps.Preferred = name
			break
		}
	}

	caps.Proxy = !anyPresent && len(code) <= maxProxyCodeSize && bytes.IndexByte(code, opDelegateCall) >= 0
	return caps
}

func copyCapabilities(c *business.Capabilities) *business.Capabilities {
	out := *c
	out.Present = make(map[string]bool, len(c.Present))
	for k, v := range c.Present {
		out.Present[k] = v
	}
	return &out
}
