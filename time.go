// ./time.go
package spk

/*
Package spk provides conversions between Julian Dates and the TDB seconds
past J2000 that SPK segments are indexed by.

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

// JDToSeconds converts a Julian Date to TDB seconds past the J2000 epoch.
func JDToSeconds(jd float64) float64 {
	return (jd - J2000Epoch) * SecondsPerDay
}

// JDPairToSeconds converts a two-part Julian Date to TDB seconds past
// J2000. Splitting the date into a whole part and a small offset preserves
// precision for dates far from the epoch; callers with a single date pass
// offset 0.
func JDPairToSeconds(jd, offset float64) float64 {
	return (jd-J2000Epoch)*SecondsPerDay + offset*SecondsPerDay
}

// SecondsToJD converts TDB seconds past J2000 back to a Julian Date.
func SecondsToJD(seconds float64) float64 {
	return J2000Epoch + seconds/SecondsPerDay
}
