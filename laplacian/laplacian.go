// Package laplacian assembles the global sparse cotangent Laplacian of a
// simplicial mesh from per-element cotangent weights.
package laplacian

import (
	"context"
	"fmt"

	"github.com/james-bowman/sparse"

	"github.com/notargets/cotangent/cotangent"
)

// Assemble scatters the weights C of the elements F into an nVerts x nVerts
// matrix. Every weight w of edge (i,j) adds w to L(i,j) and L(j,i) and
// subtracts it from L(i,i) and L(j,j), so rows of L sum to zero.
func Assemble(nVerts int, F [][]int, C [][]float64) (L *sparse.CSR, err error) {
	if nVerts < 1 {
		return nil, fmt.Errorf("laplacian: need at least one vertex, got %d", nVerts)
	}
	if len(F) != len(C) {
		return nil, fmt.Errorf("laplacian: %d elements but %d weight rows", len(F), len(C))
	}
	dok := sparse.NewDOK(nVerts, nVerts)
	add := func(i, j int, w float64) {
		dok.Set(i, j, dok.At(i, j)+w)
	}
	for k, elem := range F {
		var edges [][2]int
		if edges, err = cotangent.Edges(len(elem)); err != nil {
			return nil, fmt.Errorf("laplacian: element %d: %w", k, err)
		}
		if len(C[k]) != len(edges) {
			return nil, fmt.Errorf("laplacian: element %d has %d weights, expected %d",
				k, len(C[k]), len(edges))
		}
		for _, vi := range elem {
			if vi < 0 || vi >= nVerts {
				return nil, fmt.Errorf("laplacian: element %d: %w: %d",
					k, cotangent.ErrIndexOutOfRange, vi)
			}
		}
		for col, edge := range edges {
			var (
				i, j = elem[edge[0]], elem[edge[1]]
				w    = C[k][col]
			)
			add(i, j, w)
			add(j, i, w)
			add(i, i, -w)
			add(j, j, -w)
		}
	}
	L = dok.ToCSR()
	return
}

// Cotmatrix computes the cotangent weights of F and assembles them.
func Cotmatrix(ctx context.Context, V [][]float64, F [][]int, opts ...cotangent.Option) (*sparse.CSR, error) {
	C, err := cotangent.Weights(ctx, V, F, opts...)
	if err != nil {
		return nil, err
	}
	return Assemble(len(V), F, C)
}

// Triplet is one stored entry of an assembled matrix.
type Triplet struct {
	I, J int
	V    float64
}

// Triplets lists the stored entries of L in row major order.
func Triplets(L *sparse.CSR) (t []Triplet) {
	t = make([]Triplet, 0, L.NNZ())
	L.DoNonZero(func(i, j int, v float64) {
		t = append(t, Triplet{I: i, J: j, V: v})
	})
	return
}
