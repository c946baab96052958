package helpers

import (
	"fmt"
	"math"
	"math/big"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/opus-finance/opus-api/libs/go/constants"
)

// FormatUnits renders an integer amount of base units as a decimal string
// with the given number of decimals. Trailing fractional zeros are dropped,
// so 1000 * 10^18 at 18 decimals renders as "1000".
func FormatUnits(amount *big.Int, decimals int) string {
	if amount == nil {
		return "0"
	}
	if decimals <= 0 {
		return amount.String()
	}

	negative := amount.Sign() < 0
	abs := new(big.Int).Abs(amount)

	base := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(decimals)), nil)
	whole, frac := new(big.Int).QuoRem(abs, base, new(big.Int))

	out := whole.String()
	if frac.Sign() != 0 {
		fracStr := frac.String()
		fracStr = strings.Repeat("0", decimals-len(fracStr)) + fracStr
		fracStr = strings.TrimRight(fracStr, "0")
		out += "." + fracStr
	}
	if negative {
		out = "-" + out
	}
	return out
}

// ParseUnits converts a decimal string into an integer amount of base units.
// It rejects inputs with more fractional digits than decimals.
func ParseUnits(value string, decimals int) (*big.Int, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, fmt.Errorf("empty amount")
	}

	negative := false
	switch value[0] {
	case '-':
		negative = true
		value = value[1:]
	case '+':
		value = value[1:]
	}

	whole, frac, hasDot := strings.Cut(value, ".")
	if whole == "" && (!hasDot || frac == "") {
		return nil, fmt.Errorf("invalid amount %q", value)
	}
	if whole == "" {
		whole = "0"
	}
	if !isDigits(whole) || (hasDot && frac != "" && !isDigits(frac)) {
		return nil, fmt.Errorf("invalid amount %q", value)
	}
	if len(frac) > decimals {
		return nil, fmt.Errorf("amount %q has more than %d decimals", value, decimals)
	}

	digits := whole + frac + strings.Repeat("0", decimals-len(frac))
	result, ok := new(big.Int).SetString(digits, 10)
	if !ok {
		return nil, fmt.Errorf("invalid amount %q", value)
	}
	if negative {
		result.Neg(result)
	}
	return result, nil
}

func isDigits(s string) bool {
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return s != ""
}

// FormatBalance renders a decimal token amount for display: "0" for zero,
// "<0.01" for positive dust, otherwise thousands-grouped with at most two
// decimals ("1,000", "1,234.57").
func FormatBalance(amount string) string {
	v, err := strconv.ParseFloat(strings.TrimSpace(amount), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v == 0 {
		return "0"
	}
	if v > 0 && v < 0.01 {
		return "<0.01"
	}
	return humanize.Commaf(math.Round(v*100) / 100)
}

// FormatWei formats a base-unit amount at the token's decimals.
func FormatWei(amount *big.Int) string {
	return FormatUnits(amount, constants.TokenDecimals)
}

// FormatTokenAmount renders a labelled display line such as "Staked: 1,000 OPUS".
func FormatTokenAmount(label, amount string) string {
	return fmt.Sprintf("%s: %s %s", label, FormatBalance(amount), constants.TokenSymbol)
}

// WeiToFloat converts a base-unit amount to a float of whole tokens. Precision
// loss is acceptable for statistics.
func WeiToFloat(amount *big.Int, decimals int) float64 {
	if amount == nil {
		return 0
	}
	f, _ := new(big.Float).Quo(
		new(big.Float).SetInt(amount),
		new(big.Float).SetInt(new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(decimals)), nil)),
	).Float64()
	return f
}
