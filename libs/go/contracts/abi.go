package contracts

import (
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
)

// ERC20ABI is the read side of the ERC-20 interface plus decimals/name/symbol.
const ERC20ABI = `[
	{"type":"function","name":"name","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"string"}]},
	{"type":"function","name":"symbol","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"string"}]},
	{"type":"function","name":"decimals","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"uint8"}]},
	{"type":"function","name":"totalSupply","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"uint256"}]},
	{"type":"function","name":"balanceOf","stateMutability":"view","inputs":[{"name":"account","type":"address"}],"outputs":[{"name":"","type":"uint256"}]}
]`

// StakingABI is a superset of the accessors the staking contract has been
// seen or guessed to expose. Several entries are alternatives for the same
// capability; only the ones actually deployed will answer.
const StakingABI = `[
	{"type":"function","name":"getUserLocks","stateMutability":"view",
	 "inputs":[{"name":"user","type":"address"}],
	 "outputs":[{"name":"","type":"tuple[]","components":[
		{"name":"id","type":"uint256"},
		{"name":"amount","type":"uint256"},
		{"name":"startTime","type":"uint256"},
		{"name":"endTime","type":"uint256"},
		{"name":"rewardDebt","type":"uint256"}]}]},
	{"type":"function","name":"getLockPositions","stateMutability":"view",
	 "inputs":[{"name":"user","type":"address"}],
	 "outputs":[
		{"name":"amounts","type":"uint256[]"},
		{"name":"startTimes","type":"uint256[]"},
		{"name":"endTimes","type":"uint256[]"}]},
	{"type":"function","name":"getLocks","stateMutability":"view",
	 "inputs":[{"name":"user","type":"address"}],
	 "outputs":[{"name":"","type":"tuple[]","components":[
		{"name":"amount","type":"uint256"},
		{"name":"startTime","type":"uint256"},
		{"name":"endTime","type":"uint256"},
		{"name":"lockPeriod","type":"uint256"}]}]},
	{"type":"function","name":"mapUserLocks","stateMutability":"view",
	 "inputs":[{"name":"user","type":"address"}],
	 "outputs":[{"name":"","type":"tuple[]","components":[
		{"name":"amount","type":"uint256"},
		{"name":"unlockTime","type":"uint256"},
		{"name":"rewardDebt","type":"uint256"}]}]},
	{"type":"function","name":"getUserLockInfo","stateMutability":"view",
	 "inputs":[{"name":"user","type":"address"}],
	 "outputs":[
		{"name":"amount","type":"uint256"},
		{"name":"startTime","type":"uint256"},
		{"name":"endTime","type":"uint256"},
		{"name":"lockPeriod","type":"uint256"}]},
	{"type":"function","name":"getUserLockIds","stateMutability":"view",
	 "inputs":[{"name":"user","type":"address"}],
	 "outputs":[{"name":"","type":"uint256[]"}]},
	{"type":"function","name":"getLockInfo","stateMutability":"view",
	 "inputs":[{"name":"lockId","type":"uint256"}],
	 "outputs":[
		{"name":"owner","type":"address"},
		{"name":"amount","type":"uint256"},
		{"name":"startTime","type":"uint256"},
		{"name":"endTime","type":"uint256"},
		{"name":"rewardDebt","type":"uint256"}]},
	{"type":"function","name":"mapUserInfoLock","stateMutability":"view",
	 "inputs":[{"name":"user","type":"address"},{"name":"index","type":"uint256"}],
	 "outputs":[
		{"name":"amount","type":"uint256"},
		{"name":"startTime","type":"uint256"},
		{"name":"endTime","type":"uint256"},
		{"name":"rewardDebt","type":"uint256"}]},
	{"type":"function","name":"stakedBalance","stateMutability":"view",
	 "inputs":[{"name":"user","type":"address"}],
	 "outputs":[{"name":"","type":"uint256"}]},
	{"type":"function","name":"balanceOf","stateMutability":"view",
	 "inputs":[{"name":"user","type":"address"}],
	 "outputs":[{"name":"","type":"uint256"}]},
	{"type":"function","name":"userInfo","stateMutability":"view",
	 "inputs":[{"name":"user","type":"address"}],
	 "outputs":[{"name":"amount","type":"uint256"},{"name":"rewardDebt","type":"uint256"}]},
	{"type":"function","name":"totalStaked","stateMutability":"view",
	 "inputs":[],
	 "outputs":[{"name":"","type":"uint256"}]},
	{"type":"event","name":"LockCreated","anonymous":false,
	 "inputs":[
		{"name":"user","type":"address","indexed":true},
		{"name":"lockId","type":"uint256","indexed":true},
		{"name":"amount","type":"uint256","indexed":false},
		{"name":"startTime","type":"uint256","indexed":false},
		{"name":"endTime","type":"uint256","indexed":false}]},
	{"type":"event","name":"LockReleased","anonymous":false,
	 "inputs":[
		{"name":"user","type":"address","indexed":true},
		{"name":"lockId","type":"uint256","indexed":true}]}
]`

// Lock accessor names in the order the probing waterfall tries them.
var LockMethodCandidates = []string{
	"getUserLocks",
	"getLockPositions",
	"getLocks",
	"mapUserLocks",
	"getUserLockInfo",
}

// Staked balance accessor names, tried in order.
var StakedBalanceCandidates = []string{
	"stakedBalance",
	"balanceOf",
	"userInfo",
}

const (
	MethodGetUserLocks    = "getUserLocks"
	MethodGetUserLockIds  = "getUserLockIds"
	MethodGetLockInfo     = "getLockInfo"
	MethodMapUserInfoLock = "mapUserInfoLock"
	MethodTotalStaked     = "totalStaked"

	EventLockCreated  = "LockCreated"
	EventLockReleased = "LockReleased"
)

var (
	erc20ABI   abi.ABI
	stakingABI abi.ABI
)

func init() {
	erc20ABI = mustParseABI("erc20", ERC20ABI)
	stakingABI = mustParseABI("staking", StakingABI)
}

func mustParseABI(name, definition string) abi.ABI {
	parsed, err := abi.JSON(strings.NewReader(definition))
	if err != nil {
		panic(fmt.Sprintf("failed to parse %s ABI: %v", name, err))
	}
	return parsed
}

// ERC20 returns the parsed ERC-20 ABI.
func ERC20() abi.ABI { return erc20ABI }

// Staking returns the parsed staking superset ABI.
func Staking() abi.ABI { return stakingABI }

// Selector returns the 4-byte selector of a staking method.
func Selector(method string) ([]byte, error) {
	m, ok := stakingABI.Methods[method]
	if !ok {
		return nil, fmt.Errorf("unknown staking method %q", method)
	}
	return m.ID, nil
}
