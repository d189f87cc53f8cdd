// ./vector.go
package spk

/*
Package spk provides the position, velocity, and state value types
returned by segment evaluation.

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

import (
	"fmt"
	"math"
)

// Vector is a 3-component vector. Positions are kilometers, velocities
// kilometers per day, matching the units SPK segments are fitted in.
type Vector struct {
	X float64
	Y float64
	Z float64
}

// vectorFrom builds a Vector from an evaluation result.
func vectorFrom(v [3]float64) Vector {
	return Vector{X: v[0], Y: v[1], Z: v[2]}
}

// Add returns v + o.
func (v Vector) Add(o Vector) Vector {
	return Vector{v.X + o.X, v.Y + o.Y, v.Z + o.Z}
}

// Sub returns v - o.
func (v Vector) Sub(o Vector) Vector {
	return Vector{v.X - o.X, v.Y - o.Y, v.Z - o.Z}
}

// Scale returns v scaled by f.
func (v Vector) Scale(f float64) Vector {
	return Vector{v.X * f, v.Y * f, v.Z * f}
}

// Norm returns the Euclidean length of v.
func (v Vector) Norm() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// String implements fmt.Stringer.
func (v Vector) String() string {
	return fmt.Sprintf("[%.6f %.6f %.6f]", v.X, v.Y, v.Z)
}

// State is an immutable position and velocity pair returned by
// ComputeAndDifferentiate.
type State struct {
	Position Vector
	Velocity Vector
}
