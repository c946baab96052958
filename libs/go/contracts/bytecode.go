package contracts

import "bytes"

const opPush4 = 0x63

// HasSelector reports whether runtime bytecode pushes the given 4-byte
// selector, which is how solidity dispatchers compare against calldata.
// A hit is strong evidence the function exists; a miss on a proxy contract
// proves nothing, since the logic lives elsewhere.
func HasSelector(code, selector []byte) bool {
	if len(selector) != 4 {
		return false
	}
	needle := append([]byte{opPush4}, selector...)
	return bytes.Contains(code, needle)
}
