// Package cotangent computes per-element cotangent weights of triangle and
// tetrahedral meshes, the entries used to assemble discrete Laplace-Beltrami
// and stiffness matrices.
//
// Triangle rows hold three weights, column k for the edge opposite local
// vertex k. Tetrahedron rows hold six weights ordered as TetrahedronEdges.
//
// Degenerate elements are not rejected. A triangle of zero area, or one whose
// Heron radicand rounds negative, yields non-finite weights. A tetrahedron
// yields a row of NaN when |det J| is at most DegenerateTolerance times the
// cube of its largest Jacobian entry, or when gonum reports the Jacobian
// solve as ill conditioned (mat.ConditionTolerance). A NaN row also counts as
// a failed diagonal check, so it suppresses the batch sign flip.
// DegenerateRows reports these rows.
package cotangent

import (
	"context"
	"errors"
	"fmt"
	"math"

	"cdr.dev/slog"

	"github.com/notargets/cotangent/log"
	"github.com/notargets/cotangent/utils"
)

var (
	ErrUnsupportedSimplexSize = errors.New("cotangent: simplex size not supported")
	ErrRaggedElements         = errors.New("cotangent: elements have differing vertex counts")
	ErrVertexDimension        = errors.New("cotangent: vertex must have 3 coordinates")
	ErrIndexOutOfRange        = errors.New("cotangent: vertex index out of range")
)

type options struct {
	parallelDegree int
}

type Option func(*options)

// WithParallelDegree sets the number of goroutines the element loop is split
// across. Values below one run the loop on a single goroutine.
func WithParallelDegree(n int) Option {
	return func(o *options) {
		o.parallelDegree = n
	}
}

// Weights computes the cotangent weights of every element of F, whose rows
// index into the vertex positions V. The logger carried by ctx receives the
// advisory emitted when tetrahedron weights are sign flipped.
func Weights(ctx context.Context, V [][]float64, F [][]int, opts ...Option) (C [][]float64, err error) {
	o := options{parallelDegree: utils.DefaultParallelDegree()}
	for _, opt := range opts {
		opt(&o)
	}
	if len(F) == 0 {
		return [][]float64{}, nil
	}
	simplexSize := len(F[0])
	var nc int
	if nc, err = Columns(simplexSize); err != nil {
		return nil, err
	}
	if err = validate(V, F); err != nil {
		return nil, err
	}

	C = make([][]float64, len(F))
	data := make([]float64, len(F)*nc)
	for i := range C {
		C[i] = data[i*nc : (i+1)*nc : (i+1)*nc]
	}

	pm := utils.NewPartitionMap(o.parallelDegree, len(F))
	switch simplexSize {
	case TriangleSize:
		pm.ForEachBucket(func(bn, kMin, kMax int) {
			for k := kMin; k < kMax; k++ {
				triangleWeights(V, F[k], C[k])
			}
		})
	case TetrahedronSize:
		// Each bucket reduces its own flag; the flip waits for all of them
		diagPos := make([]bool, pm.ParallelDegree)
		for bn := range diagPos {
			diagPos[bn] = true
		}
		pm.ForEachBucket(func(bn, kMin, kMax int) {
			allPos := true
			for k := kMin; k < kMax; k++ {
				allPos = tetrahedronWeights(V, F[k], C[k]) && allPos
			}
			diagPos[bn] = allPos
		})
		diagAllPos := true
		for _, pos := range diagPos {
			diagAllPos = diagAllPos && pos
		}
		if diagAllPos {
			log.Info(ctx, "flipping sign of cotangent weights so that cotangents are positive",
				slog.F("elements", len(F)))
			for i := range data {
				data[i] = -data[i]
			}
		}
	}

	if bad := DegenerateRows(C); len(bad) != 0 {
		log.Warn(ctx, "degenerate elements produced non-finite cotangent weights",
			slog.F("count", len(bad)), slog.F("first", bad[0]))
	}
	return C, nil
}

func validate(V [][]float64, F [][]int) error {
	for i, v := range V {
		if len(v) != 3 {
			return fmt.Errorf("%w: vertex %d has %d", ErrVertexDimension, i, len(v))
		}
	}
	simplexSize := len(F[0])
	for k, elem := range F {
		if len(elem) != simplexSize {
			return fmt.Errorf("%w: element %d has %d vertices, element 0 has %d",
				ErrRaggedElements, k, len(elem), simplexSize)
		}
		for _, vi := range elem {
			if vi < 0 || vi >= len(V) {
				return fmt.Errorf("%w: element %d references vertex %d, have %d vertices",
					ErrIndexOutOfRange, k, vi, len(V))
			}
		}
	}
	return nil
}

// DegenerateRows returns the indices of the rows of C holding a NaN or
// infinite weight.
func DegenerateRows(C [][]float64) (rows []int) {
	for i, row := range C {
		for _, w := range row {
			if math.IsNaN(w) || math.IsInf(w, 0) {
				rows = append(rows, i)
				break
			}
		}
	}
	return
}
