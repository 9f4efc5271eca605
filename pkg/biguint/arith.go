package biguint

// Add returns x + y.
func (x Int) Add(y Int) Int {
	n := max(x.Len(), y.Len())
	d := make([]uint8, 0, n+1)
	var carry uint8
	for i := 0; i < n || carry != 0; i++ {
		sum := carry + x.Digit(i) + y.Digit(i)
		d = append(d, sum%10)
		carry = sum / 10
	}
	return Int{d: d}
}

// Sub returns x - y. It fails with ErrUnderflow when x < y.
func (x Int) Sub(y Int) (Int, error) {
	if x.Less(y) {
		return Int{}, newError(opSub, ErrUnderflow)
	}
	xd := x.digits()
	d := make([]uint8, len(xd))
	borrow := 0
	for i, digit := range xd {
		diff := int(digit) - borrow - int(y.Digit(i))
		if diff < 0 {
			diff += 10
			borrow = 1
		} else {
			borrow = 0
		}
		d[i] = uint8(diff)
	}
	return Int{d: normalize(d)}, nil
}

// Mul returns x * y using schoolbook long multiplication.
func (x Int) Mul(y Int) Int {
	if x.IsZero() || y.IsZero() {
		return Int{d: zeroDigits}
	}
	xd, yd := x.digits(), y.digits()
	acc := make([]uint8, len(xd)+len(yd))
	for i, a := range xd {
		if a == 0 {
			continue
		}
		carry := 0
		// The carry may run past the last digit of y but never past the
		// end of acc: the partial product always fits.
		for j := 0; j < len(yd) || carry != 0; j++ {
			cur := int(acc[i+j]) + int(a)*int(y.Digit(j)) + carry
			acc[i+j] = uint8(cur % 10)
			carry = cur / 10
		}
	}
	return Int{d: normalize(acc)}
}

// Div returns the floor of x / y. It fails with ErrDivisionByZero when
// y == 0. The remainder is discarded.
func (x Int) Div(y Int) (Int, error) {
	if y.IsZero() {
		return Int{}, newError(opDiv, ErrDivisionByZero)
	}
	return quo(x, y), nil
}

// quo computes x / y for y != 0 by restoring long division, one dividend
// digit at a time from the most significant end.
func quo(x, y Int) Int {
	if x.Less(y) {
		return Int{d: zeroDigits}
	}
	multiples := multiplesOf(y)
	xd := x.digits()
	q := make([]uint8, len(xd))
	rem := Int{d: zeroDigits}
	for i := len(xd) - 1; i >= 0; i-- {
		rem = rem.shiftIn(xd[i])
		digit := quotientDigit(&multiples, rem)
		q[i] = digit
		if digit != 0 {
			// multiples[digit] <= rem, so this cannot underflow.
			rem, _ = rem.Sub(multiples[digit])
		}
	}
	return Int{d: normalize(q)}
}

// multiplesOf returns y*0, y*1, ..., y*9.
func multiplesOf(y Int) [10]Int {
	var m [10]Int
	m[0] = Int{d: zeroDigits}
	for k := 1; k < len(m); k++ {
		m[k] = m[k-1].Add(y)
	}
	return m
}

// quotientDigit binary-searches the largest k in [0, 9] such that
// multiples[k] <= rem.
func quotientDigit(multiples *[10]Int, rem Int) uint8 {
	lo, hi, k := 0, 9, 0
	for lo <= hi {
		mid := (lo + hi) / 2
		if multiples[mid].LessOrEqual(rem) {
			k = mid
			lo = mid + 1
		} else {
			hi = mid - 1
		}
	}
	return uint8(k)
}

// shiftIn returns x*10 + digit.
func (x Int) shiftIn(digit uint8) Int {
	xd := x.digits()
	d := make([]uint8, len(xd)+1)
	d[0] = digit
	copy(d[1:], xd)
	return Int{d: normalize(d)}
}
