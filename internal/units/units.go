// Package units converts between a currency's human-facing decimal unit and
// its indivisible integer subunit (ether and wei for the native token).
package units

import (
	"math/big"
	"strings"

	"github.com/cockroachdb/errors"
)

// ErrInvalidAmount is returned for decimal input that cannot be converted.
var ErrInvalidAmount = errors.New("invalid amount format")

// ToSmallest parses a non-negative decimal string in the main unit and returns
// the equivalent integer amount in the smallest unit (value * 10^decimals).
//
// Examples (decimals=18):
//
//	"0.5" -> 500000000000000000
//	"1"   -> 1000000000000000000
//	".25" -> 250000000000000000
//
// Input with more fractional digits than the unit supports is rejected rather
// than rounded.
func ToSmallest(amount string, decimals uint8) (*big.Int, error) {
	s := strings.TrimSpace(amount)
	if s == "" {
		return nil, errors.Wrap(ErrInvalidAmount, "empty amount")
	}
	if strings.HasPrefix(s, "-") {
		return nil, errors.Wrapf(ErrInvalidAmount, "negative amount %q", amount)
	}
	s = strings.TrimPrefix(s, "+")

	intPart, fracPart, _ := strings.Cut(s, ".")
	if intPart == "" && fracPart == "" {
		return nil, errors.Wrapf(ErrInvalidAmount, "%q", amount)
	}
	if !isDigits(intPart) || !isDigits(fracPart) {
		return nil, errors.Wrapf(ErrInvalidAmount, "%q", amount)
	}
	if len(fracPart) > int(decimals) {
		return nil, errors.Wrapf(ErrInvalidAmount, "%q has more than %d decimal places", amount, decimals)
	}

	// Right-pad the fraction to `decimals` and parse the concatenation.
	digits := intPart + fracPart + strings.Repeat("0", int(decimals)-len(fracPart))
	digits = strings.TrimLeft(digits, "0")
	if digits == "" {
		return new(big.Int), nil
	}

	out, ok := new(big.Int).SetString(digits, 10)
	if !ok {
		return nil, errors.Wrapf(ErrInvalidAmount, "%q", amount)
	}
	return out, nil
}

// Format renders a smallest-unit amount in the main unit at full precision,
// trimming trailing zeros.
func Format(amount *big.Int, decimals uint8) string {
	return FormatTrim(amount, decimals, int(decimals))
}

// FormatTrim converts a token balance to a human string:
// - divides by 10^decimals
// - trims to maxFrac decimal places
// - removes trailing zeros
//
// Examples:
//
//	balance=1234500000000000000, decimals=18 -> "1.2345"
//	balance=1000000000000000000, decimals=18 -> "1"
//	balance=1, decimals=18 -> "0.000000000000000001"
func FormatTrim(amount *big.Int, decimals uint8, maxFrac int) string {
	if amount == nil || amount.Sign() == 0 {
		return "0"
	}

	sign := ""
	abs := new(big.Int).Set(amount)
	if abs.Sign() < 0 {
		sign = "-"
		abs.Neg(abs)
	}

	base := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(decimals)), nil)

	intPart := new(big.Int).Div(abs, base)
	fracPart := new(big.Int).Mod(abs, base)

	if fracPart.Sign() == 0 || maxFrac <= 0 {
		return sign + intPart.String()
	}

	// Left-pad fractional part to `decimals`
	fracStr := fracPart.String()
	if len(fracStr) < int(decimals) {
		fracStr = strings.Repeat("0", int(decimals)-len(fracStr)) + fracStr
	}

	if len(fracStr) > maxFrac {
		fracStr = fracStr[:maxFrac]
	}

	fracStr = strings.TrimRight(fracStr, "0")
	if fracStr == "" {
		return sign + intPart.String()
	}

	return sign + intPart.String() + "." + fracStr
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
