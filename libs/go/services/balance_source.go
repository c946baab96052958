package services

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"github.com/opus-finance/opus-api/libs/go/contracts"
	"github.com/opus-finance/opus-api/libs/go/logger"
)

// ChainBalanceSource reads wallet balances from the token contract and
// staked balances from whichever staking accessor answers.
type ChainBalanceSource struct {
	token   *contracts.Token
	staking *contracts.Contract
	log     *logger.StructuredLogger

	mu             sync.Mutex
	stakedAccessor string
}

// NewChainBalanceSource creates a balance source over caller.
func NewChainBalanceSource(caller contracts.Caller, tokenAddress, stakingAddress common.Address) *ChainBalanceSource {
	return &ChainBalanceSource{
		token:   contracts.NewToken(tokenAddress, caller),
		staking: contracts.NewStakingContract(stakingAddress, caller),
		log:     logger.NewStructuredLogger(logger.ComponentSession).WithContract(stakingAddress.Hex()),
	}
}

// WalletBalance returns the raw token balance of account.
func (s *ChainBalanceSource) WalletBalance(ctx context.Context, account common.Address) (*big.Int, error) {
	balance, err := s.token.BalanceOf(ctx, account)
	if err != nil {
		return nil, fmt.Errorf("failed to read wallet balance: %w", err)
	}
	return balance, nil
}

// StakedBalance returns the raw staked balance of account. The accessor that
// answers first is remembered and tried first on later calls.
func (s *ChainBalanceSource) StakedBalance(ctx context.Context, account common.Address) (*big.Int, error) {
	var errs []error
	for _, method := range s.stakedOrder() {
		values, err := s.staking.Call(ctx, method, account)
		if err != nil {
			s.log.LogProbeAttempt(method, "unavailable", err)
			errs = append(errs, err)
			continue
		}
		// userInfo returns (amount, rewardDebt); the others a single uint.
		amount, ok := contracts.ToBigInt(values[0])
		if !ok {
			errs = append(errs, fmt.Errorf("%s: unexpected output type %T", method, values[0]))
			continue
		}
		s.mu.Lock()
		s.stakedAccessor = method
		s.mu.Unlock()
		return amount, nil
	}
	return nil, fmt.Errorf("failed to read staked balance: %w", errors.Join(errs...))
}

func (s *ChainBalanceSource) stakedOrder() []string {
	s.mu.Lock()
	preferred := s.stakedAccessor
	s.mu.Unlock()
	return preferFirst(contracts.StakedBalanceCandidates, preferred)
}

// preferFirst returns candidates with preferred moved to the front. An
// unknown or empty preferred leaves the order unchanged.
func preferFirst(candidates []string, preferred string) []string {
	out := make([]string, 0, len(candidates))
	found := false
	for _, c := range candidates {
		if c == preferred {
			found = true
		}
	}
	if found {
		out = append(out, preferred)
	}
	for _, c := range candidates {
		if c != preferred || !found {
			out = append(out, c)
		}
	}
	return out
}
