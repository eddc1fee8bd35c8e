package stats

import "math"

// Combinations returns the binomial coefficient C(n, k) using the
// multiplicative identity on the smaller of k and n-k. It returns 0 when k is
// negative or exceeds n, and saturates at math.MaxInt64 on overflow.
func Combinations(n, k int) int64 {
	if k < 0 || n < 0 || k > n {
		return 0
	}
	k = min(k, n-k)
	var c int64 = 1
	for i := 1; i <= k; i++ {
		// c = C(n-k+i-1, i-1), so c*(n-k+i) is divisible by i.
		num := int64(n - k + i)
		g := gcd(c, int64(i))
		c /= g
		num /= int64(i) / g
		if c > math.MaxInt64/num {
			return math.MaxInt64
		}
		c *= num
	}
	return c
}

func gcd(a, b int64) int64 {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

// Normalization returns C(columns-1, rows), the constant printed alongside
// the feasible count.
func Normalization(columns, rows int) int64 {
	return Combinations(columns-1, rows)
}
