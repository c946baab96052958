package contracts

import (
	"math/big"
	"reflect"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/opus-finance/opus-api/libs/go/types/business"
)

// Field aliases seen across the staking ABIs in circulation. Keys are
// normalized (lowercase, no underscores, singular).
var lockFieldAliases = map[string]string{
	"id":            "id",
	"lockid":        "id",
	"index":         "id",
	"amount":        "amount",
	"amountlocked":  "amount",
	"lockedamount":  "amount",
	"value":         "amount",
	"starttime":     "start",
	"start":         "start",
	"lockstart":     "start",
	"locktime":      "start",
	"endtime":       "end",
	"end":           "end",
	"unlocktime":    "end",
	"lockend":       "end",
	"expiry":        "end",
	"rewarddebt":    "rewardDebt",
	"reward":        "rewardDebt",
	"pendingreward": "rewardDebt",
	"lockperiod":    "lockPeriod",
	"duration":      "lockPeriod",
	"period":        "lockPeriod",
}

func normalizeFieldName(name string) string {
	n := strings.ToLower(strings.ReplaceAll(name, "_", ""))
	if _, ok := lockFieldAliases[n]; ok {
		return n
	}
	return strings.TrimSuffix(n, "s")
}

// DecodeLocks maps the unpacked outputs of a lock accessor onto Lock records.
// It understands three shapes: a tuple array, parallel scalar arrays, and a
// single flat record. Records with a zero amount are dropped.
func DecodeLocks(method abi.Method, values []interface{}) []business.Lock {
	if len(values) == 0 {
		return nil
	}

	// Tuple array: one output holding a slice of structs.
	if len(values) == 1 {
		rv := reflect.ValueOf(values[0])
		if rv.Kind() == reflect.Slice && rv.Type().Elem().Kind() == reflect.Struct {
			locks := make([]business.Lock, 0, rv.Len())
			for i := 0; i < rv.Len(); i++ {
				lock := lockFromFields(structFields(rv.Index(i)), method.Name)
				if lock.ID == nil {
					lock.ID = big.NewInt(int64(i))
				}
				if !lock.IsEmpty() {
					locks = append(locks, lock)
				}
			}
			return locks
		}
	}

	// Parallel arrays: every output is a slice of the same length.
	if allSlices(values) {
		n := reflect.ValueOf(values[0]).Len()
		locks := make([]business.Lock, 0, n)
		for i := 0; i < n; i++ {
			fields := make(map[string]interface{}, len(values))
			for j, v := range values {
				rv := reflect.ValueOf(v)
				if rv.Len() != n {
					return nil
				}
				fields[outputName(method, j)] = rv.Index(i).Interface()
			}
			lock := lockFromFields(fields, method.Name)
			if lock.ID == nil {
				lock.ID = big.NewInt(int64(i))
			}
			if !lock.IsEmpty() {
				locks = append(locks, lock)
			}
		}
		return locks
	}

	// Flat record.
	fields := make(map[string]interface{}, len(values))
	for j, v := range values {
		fields[outputName(method, j)] = v
	}
	lock := lockFromFields(fields, method.Name)
	if lock.IsEmpty() {
		return nil
	}
	return []business.Lock{lock}
}

// DecodeLock maps a single flat record, keeping it even when empty.
func DecodeLock(method abi.Method, values []interface{}) business.Lock {
	fields := make(map[string]interface{}, len(values))
	for j, v := range values {
		fields[outputName(method, j)] = v
	}
	return lockFromFields(fields, method.Name)
}

func outputName(method abi.Method, i int) string {
	if i < len(method.Outputs) && method.Outputs[i].Name != "" {
		return normalizeFieldName(method.Outputs[i].Name)
	}
	// Unnamed single outputs are assumed to be the amount.
	if i == 0 {
		return "amount"
	}
	return ""
}

func allSlices(values []interface{}) bool {
	for _, v := range values {
		rv := reflect.ValueOf(v)
		if rv.Kind() != reflect.Slice || rv.Type().Elem().Kind() == reflect.Uint8 {
			return false
		}
	}
	return true
}

func structFields(v reflect.Value) map[string]interface{} {
	fields := make(map[string]interface{}, v.NumField())
	t := v.Type()
	for i := 0; i < v.NumField(); i++ {
		if !t.Field(i).IsExported() {
			continue
		}
		fields[normalizeFieldName(t.Field(i).Name)] = v.Field(i).Interface()
	}
	return fields
}

func lockFromFields(fields map[string]interface{}, source string) business.Lock {
	lock := business.Lock{Source: source}
	for name, raw := range fields {
		target, ok := lockFieldAliases[name]
		if !ok {
			continue
		}
		v, ok := ToBigInt(raw)
		if !ok {
			continue
		}
		switch target {
		case "id":
			lock.ID = v
		case "amount":
			lock.Amount = v
		case "start":
			lock.StartTime = clampUint64(v)
		case "end":
			lock.EndTime = clampUint64(v)
		case "rewardDebt":
			lock.RewardDebt = v
		case "lockPeriod":
			lock.LockPeriod = clampUint64(v)
		}
	}
	return lock
}

func clampUint64(v *big.Int) uint64 {
	if v.Sign() < 0 {
		return 0
	}
	if !v.IsUint64() {
		return ^uint64(0)
	}
	return v.Uint64()
}

// ToBigInt converts the integer types go-ethereum unpacks into *big.Int.
func ToBigInt(v interface{}) (*big.Int, bool) {
	switch n := v.(type) {
	case *big.Int:
		if n == nil {
			return nil, false
		}
		return new(big.Int).Set(n), true
	case big.Int:
		return new(big.Int).Set(&n), true
	case uint8:
		return new(big.Int).SetUint64(uint64(n)), true
	case uint16:
		return new(big.Int).SetUint64(uint64(n)), true
	case uint32:
		return new(big.Int).SetUint64(uint64(n)), true
	case uint64:
		return new(big.Int).SetUint64(n), true
	case int8:
		return big.NewInt(int64(n)), true
	case int16:
		return big.NewInt(int64(n)), true
	case int32:
		return big.NewInt(int64(n)), true
	case int64:
		return big.NewInt(n), true
	default:
		return nil, false
	}
}
