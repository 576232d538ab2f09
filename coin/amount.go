package coin

import (
	"math"
	"strconv"
	"strings"

	"github.com/iov-one/remit/errors"
)

// MaxAmount is the largest value an Amount can hold.
const MaxAmount Amount = math.MaxUint64

// Amount is a non-negative quantity of the native currency, expressed in
// its smallest indivisible unit.
type Amount uint64

// NewAmount creates a new amount.
func NewAmount(v uint64) Amount {
	return Amount(v)
}

// ParseAmount reads a base-10 amount. Underscores may be used to group
// digits ("1_000_000").
func ParseAmount(s string) (Amount, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), "_", "")
	if s == "" {
		return 0, errors.Wrap(errors.ErrAmount, "empty amount")
	}
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		if ne, ok := err.(*strconv.NumError); ok && ne.Err == strconv.ErrRange {
			return 0, errors.Wrapf(errors.ErrOverflow, "amount %q", s)
		}
		return 0, errors.Wrapf(errors.ErrAmount, "amount %q", s)
	}
	return Amount(v), nil
}

// Add combines two amounts. It fails if the result would overflow.
func (a Amount) Add(o Amount) (Amount, error) {
	sum := a + o
	if sum < a {
		return 0, errors.Wrapf(errors.ErrOverflow, "adding %d to %d", o, a)
	}
	return sum, nil
}

// Subtract given amount. It fails if o is larger than a, as amounts can
// never be negative.
func (a Amount) Subtract(o Amount) (Amount, error) {
	if o > a {
		return 0, errors.Wrapf(errors.ErrInsufficientAmount, "subtracting %d from %d", o, a)
	}
	return a - o, nil
}

// Compare returns 1 if a is larger, -1 if o is larger, 0 if equal
func (a Amount) Compare(o Amount) int {
	switch {
	case a > o:
		return 1
	case a < o:
		return -1
	default:
		return 0
	}
}

// IsZero returns true amounts are 0
func (a Amount) IsZero() bool {
	return a == 0
}

// IsPositive returns true if the value is greater than 0
func (a Amount) IsPositive() bool {
	return a > 0
}

// IsGTE returns true if a is at least as large as o.
func (a Amount) IsGTE(o Amount) bool {
	return a >= o
}

// Uint64 returns the raw value.
func (a Amount) Uint64() uint64 {
	return uint64(a)
}

func (a Amount) String() string {
	return strconv.FormatUint(uint64(a), 10)
}
