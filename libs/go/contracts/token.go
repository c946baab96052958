package contracts

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// Token is an ERC-20 read binding.
type Token struct {
	*Contract
}

// NewToken binds the ERC-20 ABI at address.
func NewToken(address common.Address, caller Caller) *Token {
	return &Token{Contract: NewContract(address, erc20ABI, caller)}
}

// BalanceOf returns the raw token balance of account.
func (t *Token) BalanceOf(ctx context.Context, account common.Address) (*big.Int, error) {
	return t.CallBigInt(ctx, "balanceOf", account)
}

// TotalSupply returns the raw total supply.
func (t *Token) TotalSupply(ctx context.Context) (*big.Int, error) {
	return t.CallBigInt(ctx, "totalSupply")
}

// Decimals returns the token decimals.
func (t *Token) Decimals(ctx context.Context) (uint8, error) {
	values, err := t.Call(ctx, "decimals")
	if err != nil {
		return 0, err
	}
	d, ok := values[0].(uint8)
	if !ok {
		return 0, fmt.Errorf("unexpected decimals output type %T", values[0])
	}
	return d, nil
}

// Name returns the token name.
func (t *Token) Name(ctx context.Context) (string, error) {
	return t.callString(ctx, "name")
}

// Symbol returns the token symbol.
func (t *Token) Symbol(ctx context.Context) (string, error) {
	return t.callString(ctx, "symbol")
}

func (t *Token) callString(ctx context.Context, method string) (string, error) {
	values, err := t.Call(ctx, method)
	if err != nil {
		return "", err
	}
	s, ok := values[0].(string)
	if !ok {
		return "", fmt.Errorf("unexpected %s output type %T", method, values[0])
	}
	return s, nil
}
