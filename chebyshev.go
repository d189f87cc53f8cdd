// ./chebyshev.go
package spk

/*
Package spk provides Clenshaw evaluation of the three-component Chebyshev
polynomials SPK segments are encoded with.

This program is free software; you can redistribute it and/or
modify it under the terms of the GNU General Public License
as published by the Free Software Foundation; either version 2
of the License, or (at your option) any later version.

This program is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with this program; if not, write to the Free Software
Foundation, Inc., 51 Franklin Street, Fifth Floor, Boston, MA
02110-1301, USA.
*/

// The two routines below are the hot path of every evaluation and are
// deliberately written as plain unfused expressions: reference output is
// defined bit for bit by the `2t*b1 - b2 + c` evaluation order, and the Go
// compiler never contracts separate float64 operations into an FMA.

// chebyshevEval evaluates a three-component Chebyshev series at the
// normalized time t in [-1, 1] using the Clenshaw recurrence. coeffs is
// term-major: coeffs[k] holds the x, y, z coefficients of T_k.
func chebyshevEval(coeffs [][3]float64, t float64) [3]float64 {
	var b1, b2 [3]float64
	t2 := 2.0 * t
	for k := len(coeffs) - 1; k > 0; k-- {
		for c := 0; c < 3; c++ {
			tmp := t2*b1[c] - b2[c] + coeffs[k][c]
			b2[c] = b1[c]
			b1[c] = tmp
		}
	}
	var out [3]float64
	for c := 0; c < 3; c++ {
		out[c] = t*b1[c] - b2[c] + coeffs[0][c]
	}
	return out
}

// chebyshevEvalDerivative evaluates the time derivative of the series at
// the normalized time t, scaled from per-half-interval units to per-day
// units by 86400 / (2 * radius), radius in seconds. A series with fewer
// than two terms is constant and differentiates to zero.
func chebyshevEvalDerivative(coeffs [][3]float64, t, radius float64) [3]float64 {
	var out [3]float64
	if len(coeffs) < 2 {
		return out
	}
	var d1, d2 [3]float64
	t2 := 2.0 * t
	for k := len(coeffs) - 1; k > 0; k-- {
		k2 := 2.0 * float64(k)
		for c := 0; c < 3; c++ {
			tmp := t2*d1[c] - d2[c] + k2*coeffs[k][c]
			d2[c] = d1[c]
			d1[c] = tmp
		}
	}
	scale := SecondsPerDay / (2.0 * radius)
	for c := 0; c < 3; c++ {
		out[c] = d1[c] * scale
	}
	return out
}
