// Package floodfill fills the missing (NaN) cells of a sparse scalar field
// sampled on a regular 3D grid, so that regions of missing data take the
// value, and therefore the sign, of nearby numbered data.
//
// The fill runs forward over the whole field in storage order. It does not
// reproduce libigl's igl::flood_fill, which floods each numbered value
// backward over the NaN gap before it on the same x row and seeds each row
// from the first cell of the previous row. Results agree with libigl only
// when every gap is bounded by cells of equal sign.
package floodfill

import (
	"fmt"
	"math"
)

// Fill replaces the NaN entries of S in place. S holds res[0]*res[1]*res[2]
// values with x varying fastest, then y, then z. Cells are visited in that
// storage order and each NaN takes the value of the most recently visited
// numbered cell. NaNs ahead of the first numbered cell take that first value.
// A field without any numbered cell is left unchanged.
func Fill(res [3]int, S []float64) error {
	n := 1
	for d, r := range res {
		if r < 1 {
			return fmt.Errorf("floodfill: dimension %d must be positive, got %d", d, r)
		}
		n *= r
	}
	if len(S) != n {
		return fmt.Errorf("floodfill: grid %v needs %d values, got %d", res, n, len(S))
	}

	first := -1
	for i, s := range S {
		if !math.IsNaN(s) {
			first = i
			break
		}
	}
	if first == -1 {
		return nil
	}
	last := S[first]
	for i := 0; i < first; i++ {
		S[i] = last
	}
	for i := first; i < n; i++ {
		if math.IsNaN(S[i]) {
			S[i] = last
		} else {
			last = S[i]
		}
	}
	return nil
}

// Index returns the storage offset of cell (xi,yi,zi) in a field of size res.
func Index(res [3]int, xi, yi, zi int) int {
	return xi + res[0]*(yi+res[1]*zi)
}
