package biguint

import (
	"math"
	"strconv"

	"fortio.org/safecast"
)

// Int is a non-negative integer of unbounded magnitude.
type Int struct {
	// d holds decimal digits, least significant first. It is normalized and
	// never written after the Int is built; an empty slice means 0.
	d []uint8
}

// zeroDigits backs every zero value. It must never be written.
var zeroDigits = []uint8{0}

// New returns the Int with value n.
func New(n uint64) Int {
	if n == 0 {
		return Int{d: zeroDigits}
	}
	d := make([]uint8, 0, 20)
	for n > 0 {
		d = append(d, uint8(n%10))
		n /= 10
	}
	return Int{d: d}
}

// FromInt64 returns the Int with value n. A negative n cannot be represented
// and fails with ErrUnderflow.
func FromInt64(n int64) (Int, error) {
	u, err := safecast.Conv[uint64](n)
	if err != nil {
		e := newError(opConvert, ErrUnderflow)
		e.Input = strconv.FormatInt(n, 10)
		return Int{}, e
	}
	return New(u), nil
}

// Parse interprets s as a base-10 number. Every byte of s must be an ASCII
// digit: signs, spaces, separators and exponents are rejected with
// ErrInvalidFormat, as is the empty string. Leading zeros are accepted and
// dropped.
func Parse(s string) (Int, error) {
	if s == "" {
		return Int{}, parseError(s, -1)
	}
	d := make([]uint8, len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c < '0' || c > '9' {
			return Int{}, parseError(s, i)
		}
		d[len(s)-1-i] = c - '0'
	}
	return Int{d: normalize(d)}, nil
}

// MustParse is like Parse but panics if s is not a valid decimal number.
// It simplifies the initialization of constants and test tables.
func MustParse(s string) Int {
	x, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return x
}

// normalize drops most-significant zero digits, keeping at least one digit.
func normalize(d []uint8) []uint8 {
	n := len(d)
	for n > 1 && d[n-1] == 0 {
		n--
	}
	if n == 0 {
		return zeroDigits
	}
	return d[:n]
}

func (x Int) digits() []uint8 {
	if len(x.d) == 0 {
		return zeroDigits
	}
	return x.d
}

// Digit returns the decimal digit of x at position i, where position 0 is
// the least significant digit. Positions outside [0, Len) read as 0, which
// is how shorter operands are padded during arithmetic.
func (x Int) Digit(i int) uint8 {
	d := x.digits()
	if i < 0 || i >= len(d) {
		return 0
	}
	return d[i]
}

// Len returns the number of decimal digits of x. Len of 0 is 1.
func (x Int) Len() int {
	return len(x.digits())
}

// IsZero reports whether x == 0.
func (x Int) IsZero() bool {
	d := x.digits()
	return len(d) == 1 && d[0] == 0
}

// Uint64 returns x as a uint64 and reports whether it fit.
func (x Int) Uint64() (uint64, bool) {
	d := x.digits()
	var v uint64
	for i := len(d) - 1; i >= 0; i-- {
		digit := uint64(d[i])
		if v > (math.MaxUint64-digit)/10 {
			return 0, false
		}
		v = v*10 + digit
	}
	return v, true
}

// String returns the canonical decimal form of x: no sign, no leading
// zeros, and "0" for zero.
func (x Int) String() string {
	d := x.digits()
	buf := make([]byte, len(d))
	for i, digit := range d {
		buf[len(d)-1-i] = '0' + digit
	}
	return string(buf)
}

// MarshalText implements encoding.TextMarshaler using the decimal form.
func (x Int) MarshalText() ([]byte, error) {
	return []byte(x.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. It accepts exactly the
// inputs accepted by Parse; on error *x is left unchanged.
func (x *Int) UnmarshalText(text []byte) error {
	v, err := Parse(string(text))
	if err != nil {
		return err
	}
	*x = v
	return nil
}
