package biguint

// Cmp compares x and y and returns -1 if x < y, 0 if x == y and +1 if x > y.
// Normalized values with more digits are larger; equal lengths are decided
// by the most significant differing digit.
func (x Int) Cmp(y Int) int {
	xd, yd := x.digits(), y.digits()
	if len(xd) != len(yd) {
		if len(xd) < len(yd) {
			return -1
		}
		return 1
	}
	for i := len(xd) - 1; i >= 0; i-- {
		if xd[i] != yd[i] {
			if xd[i] < yd[i] {
				return -1
			}
			return 1
		}
	}
	return 0
}

// Compare returns x.Cmp(y). It has the signature expected by slices.SortFunc.
func Compare(x, y Int) int { return x.Cmp(y) }

// Equal reports whether x == y.
func (x Int) Equal(y Int) bool {
	xd, yd := x.digits(), y.digits()
	if len(xd) != len(yd) {
		return false
	}
	for i := range xd {
		if xd[i] != yd[i] {
			return false
		}
	}
	return true
}

// Less reports whether x < y.
func (x Int) Less(y Int) bool { return x.Cmp(y) < 0 }

// LessOrEqual reports whether x <= y.
func (x Int) LessOrEqual(y Int) bool { return !y.Less(x) }

// Greater reports whether x > y.
func (x Int) Greater(y Int) bool { return y.Less(x) }

// GreaterOrEqual reports whether x >= y.
func (x Int) GreaterOrEqual(y Int) bool { return !x.Less(y) }
