package cash

import (
	"math/big"

	"github.com/iov-one/safelite/errors"
	"github.com/shopspring/decimal"
)

// Decimals is the number of fractional digits of a human readable amount.
// One unit ("1.0") is 10^18 base units.
const Decimals = 18

// MaxAmount is the largest amount that can be held, 2^256 - 1.
var MaxAmount = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 256), big.NewInt(1))

// ValidateAmount ensures the amount is within the uint256 range.
func ValidateAmount(amount *big.Int) error {
	if amount == nil {
		return errors.Wrap(errors.ErrAmount, "missing amount")
	}
	if amount.Sign() < 0 {
		return errors.Wrap(errors.ErrAmount, "negative amount")
	}
	if amount.Cmp(MaxAmount) > 0 {
		return errors.Wrap(errors.ErrOverflow, "amount exceeds 256 bits")
	}
	return nil
}

// ParseAmount converts a decimal string like "1.5" into base units. At most
// Decimals fractional digits are allowed.
func ParseAmount(s string) (*big.Int, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrAmount, "cannot parse %q", s)
	}
	base := d.Shift(Decimals)
	if !base.IsInteger() {
		return nil, errors.Wrapf(errors.ErrAmount, "%q has more than %d decimals", s, Decimals)
	}
	amount := base.BigInt()
	if err := ValidateAmount(amount); err != nil {
		return nil, errors.Wrapf(err, "amount %q", s)
	}
	return amount, nil
}

// MustParseAmount is like ParseAmount, but panics instead of returning
// errors. Only use for constants.
func MustParseAmount(s string) *big.Int {
	a, err := ParseAmount(s)
	if err != nil {
		panic(err)
	}
	return a
}

// FormatAmount returns the decimal representation of base units.
func FormatAmount(amount *big.Int) string {
	return decimal.NewFromBigInt(amount, -Decimals).String()
}
