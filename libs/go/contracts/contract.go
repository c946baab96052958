package contracts

import (
	"context"
	"errors"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
)

//go:generate mockgen -destination=../mocks/mock_caller.go -package=mocks github.com/opus-finance/opus-api/libs/go/contracts Caller

// Caller is the read-only chain surface the contract wrappers need.
// *ethclient.Client satisfies it.
type Caller interface {
	CodeAt(ctx context.Context, contract common.Address, blockNumber *big.Int) ([]byte, error)
	CallContract(ctx context.Context, call ethereum.CallMsg, blockNumber *big.Int) ([]byte, error)
}

var (
	// ErrEmptyResult is returned when a call succeeds at transport level but
	// returns no bytes, which is what a missing method on a contract without
	// a fallback looks like on some nodes.
	ErrEmptyResult = errors.New("contract returned no data")
	// ErrNoCode is returned when the target address has no bytecode.
	ErrNoCode = errors.New("no contract code at address")
)

// Contract binds an ABI to an address and a Caller.
type Contract struct {
	address common.Address
	abi     abi.ABI
	caller  Caller
}

// NewContract creates a contract binding.
func NewContract(address common.Address, contractABI abi.ABI, caller Caller) *Contract {
	return &Contract{
		address: address,
		abi:     contractABI,
		caller:  caller,
	}
}

// NewStakingContract binds the staking superset ABI.
func NewStakingContract(address common.Address, caller Caller) *Contract {
	return NewContract(address, stakingABI, caller)
}

// Address returns the bound address.
func (c *Contract) Address() common.Address {
	return c.address
}

// ABI returns the bound ABI.
func (c *Contract) ABI() abi.ABI {
	return c.abi
}

// Method returns the ABI method by name.
func (c *Contract) Method(name string) (abi.Method, bool) {
	m, ok := c.abi.Methods[name]
	return m, ok
}

// Call packs, executes and unpacks a view method.
func (c *Contract) Call(ctx context.Context, method string, args ...interface{}) ([]interface{}, error) {
	data, err := c.abi.Pack(method, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to pack %s: %w", method, err)
	}

	out, err := c.CallRaw(ctx, data)
	if err != nil {
		return nil, fmt.Errorf("call %s: %w", method, err)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("call %s: %w", method, ErrEmptyResult)
	}

	values, err := c.abi.Unpack(method, out)
	if err != nil {
		return nil, fmt.Errorf("failed to unpack %s: %w", method, err)
	}
	return values, nil
}

// CallRaw executes an eth_call with pre-encoded calldata against the latest block.
func (c *Contract) CallRaw(ctx context.Context, data []byte) ([]byte, error) {
	to := c.address
	return c.caller.CallContract(ctx, ethereum.CallMsg{To: &to, Data: data}, nil)
}

// CallBigInt calls a method whose first output is a uint.
func (c *Contract) CallBigInt(ctx context.Context, method string, args ...interface{}) (*big.Int, error) {
	values, err := c.Call(ctx, method, args...)
	if err != nil {
		return nil, err
	}
	v, ok := ToBigInt(values[0])
	if !ok {
		return nil, fmt.Errorf("unexpected %s output type %T", method, values[0])
	}
	return v, nil
}

// Code returns the bytecode at the bound address.
func (c *Contract) Code(ctx context.Context) ([]byte, error) {
	code, err := c.caller.CodeAt(ctx, c.address, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to read code: %w", err)
	}
	if len(code) == 0 {
		return nil, ErrNoCode
	}
	return code, nil
}
