package testutil

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"math/big"
	"sync"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// ErrReverted is what the stub returns for methods with no handler.
var ErrReverted = errors.New("execution reverted")

// MethodHandler answers one decoded call. Returned values are ABI-packed
// with the method's outputs.
type MethodHandler func(args []interface{}) ([]interface{}, error)

// RawHandler answers a call before ABI dispatch. Returning handled=false
// falls through to the method handlers.
type RawHandler func(data []byte) (out []byte, handled bool, err error)

type stubContract struct {
	abi      abi.ABI
	handlers map[string]MethodHandler
	code     []byte
}

// StubChain is an in-process chain backend. It decodes the selector of each
// eth_call against the ABI registered for the target address, dispatches to
// a handler and ABI-encodes the answer. It records the order of calls.
type StubChain struct {
	mu        sync.Mutex
	contracts map[common.Address]*stubContract
	raw       map[common.Address]RawHandler
	calls     []string
	logs      []types.Log
	head      uint64
	chainID   *big.Int
}

// NewStubChain creates an empty stub chain.
func NewStubChain() *StubChain {
	return &StubChain{
		contracts: make(map[common.Address]*stubContract),
		raw:       make(map[common.Address]RawHandler),
		chainID:   big.NewInt(369),
	}
}

// Deploy registers an ABI at address. Deployed code is synthesized from the
// selectors of the methods passed, so bytecode inspection sees them.
func (s *StubChain) Deploy(address common.Address, contractABI abi.ABI, methods ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	code := []byte{0x60, 0x80, 0x60, 0x40, 0x52}
	for _, name := range methods {
		if m, ok := contractABI.Methods[name]; ok {
			code = append(code, 0x63)
			code = append(code, m.ID...)
			code = append(code, 0x14)
		}
	}
	s.contracts[address] = &stubContract{
		abi:      contractABI,
		handlers: make(map[string]MethodHandler),
		code:     code,
	}
}

// On installs a handler for a method of the contract at address.
func (s *StubChain) On(address common.Address, method string, handler MethodHandler) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.contracts[address]
	if !ok {
		panic(fmt.Sprintf("stub chain: no contract deployed at %s", address.Hex()))
	}
	c.handlers[method] = handler
}

// Returns installs a handler that always answers with values.
func (s *StubChain) Returns(address common.Address, method string, values ...interface{}) {
	s.On(address, method, func([]interface{}) ([]interface{}, error) {
		return values, nil
	})
}

// OnRaw installs a pre-dispatch handler for the contract at address.
func (s *StubChain) OnRaw(address common.Address, handler RawHandler) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.raw[address] = handler
}

// SetCode overrides the deployed bytecode at address.
func (s *StubChain) SetCode(address common.Address, code []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c, ok := s.contracts[address]; ok {
		c.code = code
		return
	}
	s.contracts[address] = &stubContract{handlers: make(map[string]MethodHandler), code: code}
}

// AddLogs appends event logs and advances the head block past them.
func (s *StubChain) AddLogs(logs ...types.Log) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, l := range logs {
		s.logs = append(s.logs, l)
		if l.BlockNumber > s.head {
			s.head = l.BlockNumber
		}
	}
}

// SetHead sets the latest block number.
func (s *StubChain) SetHead(block uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.head = block
}

// Calls returns the method names called so far, in order.
func (s *StubChain) Calls() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.calls))
	copy(out, s.calls)
	return out
}

// CallCount returns how many times method was called.
func (s *StubChain) CallCount(method string) int {
	n := 0
	for _, c := range s.Calls() {
		if c == method {
			n++
		}
	}
	return n
}

// ResetCalls clears the call log.
func (s *StubChain) ResetCalls() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = nil
}

// CodeAt implements contracts.Caller.
func (s *StubChain) CodeAt(ctx context.Context, contract common.Address, blockNumber *big.Int) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if c, ok := s.contracts[contract]; ok {
		return c.code, nil
	}
	return nil, nil
}

// CallContract implements contracts.Caller.
func (s *StubChain) CallContract(ctx context.Context, call ethereum.CallMsg, blockNumber *big.Int) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if call.To == nil {
		return nil, errors.New("stub chain: contract creation not supported")
	}
	if len(call.Data) < 4 {
		return nil, ErrReverted
	}

	s.mu.Lock()
	c, ok := s.contracts[*call.To]
	raw := s.raw[*call.To]
	var method *abi.Method
	if ok && c.abi.Methods != nil {
		method, _ = c.abi.MethodById(call.Data[:4])
	}
	name := fmt.Sprintf("0x%x", call.Data[:4])
	if method != nil {
		name = method.Name
	}
	s.calls = append(s.calls, name)
	var handler MethodHandler
	if ok && method != nil {
		handler = c.handlers[method.Name]
	}
	s.mu.Unlock()

	if raw != nil {
		out, handled, err := raw(call.Data)
		if handled {
			return out, err
		}
	}
	if !ok {
		// Calling an address without code returns empty data.
		return nil, nil
	}
	if handler == nil {
		return nil, ErrReverted
	}

	args, err := method.Inputs.Unpack(call.Data[4:])
	if err != nil {
		return nil, fmt.Errorf("stub chain: failed to unpack %s inputs: %w", method.Name, err)
	}
	values, err := handler(args)
	if err != nil {
		return nil, err
	}
	return method.Outputs.Pack(values...)
}

// BlockNumber returns the head block.
func (s *StubChain) BlockNumber(ctx context.Context) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.head, nil
}

// ChainID returns the configured chain id.
func (s *StubChain) ChainID(ctx context.Context) (*big.Int, error) {
	return new(big.Int).Set(s.chainID), nil
}

// FilterLogs matches stored logs on address, block range and topics.
func (s *StubChain) FilterLogs(ctx context.Context, q ethereum.FilterQuery) ([]types.Log, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []types.Log
	for _, l := range s.logs {
		if q.FromBlock != nil && l.BlockNumber < q.FromBlock.Uint64() {
			continue
		}
		if q.ToBlock != nil && l.BlockNumber > q.ToBlock.Uint64() {
			continue
		}
		if len(q.Addresses) > 0 && !containsAddress(q.Addresses, l.Address) {
			continue
		}
		if !matchTopics(q.Topics, l.Topics) {
			continue
		}
		out = append(out, l)
	}
	return out, nil
}

func containsAddress(list []common.Address, a common.Address) bool {
	for _, x := range list {
		if x == a {
			return true
		}
	}
	return false
}

func matchTopics(filter [][]common.Hash, topics []common.Hash) bool {
	if len(filter) > len(topics) {
		return false
	}
	for i, alternatives := range filter {
		if len(alternatives) == 0 {
			continue
		}
		matched := false
		for _, h := range alternatives {
			if bytes.Equal(h.Bytes(), topics[i].Bytes()) {
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}
	return true
}
