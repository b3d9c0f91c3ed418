package laplacian

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notargets/cotangent/cotangent"
	"github.com/notargets/cotangent/log"
)

const tol = 1.e-12

func rowSums(t *testing.T, nv int, get func(i, j int) float64) {
	t.Helper()
	for i := 0; i < nv; i++ {
		var sum float64
		for j := 0; j < nv; j++ {
			sum += get(i, j)
			assert.InDelta(t, get(i, j), get(j, i), tol, "symmetry at %d,%d", i, j)
		}
		assert.InDelta(t, 0., sum, tol, "row %d", i)
	}
}

func TestCotmatrixSquare(t *testing.T) {
	ctx := log.WithTB(context.Background(), t, nil)
	V := [][]float64{{0, 0, 0}, {1, 0, 0}, {1, 1, 0}, {0, 1, 0}}
	F := [][]int{{0, 1, 2}, {0, 2, 3}}
	L, err := Cotmatrix(ctx, V, F)
	require.NoError(t, err)
	nr, nc := L.Dims()
	assert.Equal(t, 4, nr)
	assert.Equal(t, 4, nc)

	// The diagonal is opposite two right angles, the sides opposite 45 degrees
	assert.InDelta(t, 0., L.At(0, 2), tol)
	assert.InDelta(t, 0.5, L.At(0, 1), tol)
	assert.InDelta(t, 0.5, L.At(1, 2), tol)
	assert.InDelta(t, 0.5, L.At(2, 3), tol)
	assert.InDelta(t, 0.5, L.At(3, 0), tol)
	assert.InDelta(t, 0., L.At(1, 3), tol)
	assert.InDelta(t, -1., L.At(0, 0), tol)
	assert.InDelta(t, -1., L.At(1, 1), tol)
	rowSums(t, 4, L.At)
}

func TestCotmatrixTetrahedra(t *testing.T) {
	ctx := log.WithTB(context.Background(), t, nil)
	V := [][]float64{
		{0, 0, 0},
		{1, 0, 0},
		{0.5, math.Sqrt(3) / 2, 0},
		{0.5, math.Sqrt(3) / 6, math.Sqrt(2. / 3.)},
		{0.5, math.Sqrt(3) / 6, -math.Sqrt(2. / 3.)},
	}
	F := [][]int{{0, 1, 2, 3}, {0, 2, 1, 4}}
	L, err := Cotmatrix(ctx, V, F)
	require.NoError(t, err)
	w := 1. / (12. * math.Sqrt(2))
	// Edges of the shared face collect weight from both tets
	assert.InDelta(t, 2*w, L.At(0, 1), tol)
	assert.InDelta(t, 2*w, L.At(1, 2), tol)
	assert.InDelta(t, w, L.At(0, 3), tol)
	assert.InDelta(t, w, L.At(2, 4), tol)
	assert.InDelta(t, 0., L.At(3, 4), tol)
	rowSums(t, 5, L.At)

	trips := Triplets(L)
	assert.Equal(t, L.NNZ(), len(trips))
	for _, tr := range trips {
		assert.Equal(t, L.At(tr.I, tr.J), tr.V)
	}
}

func TestAssembleErrors(t *testing.T) {
	F := [][]int{{0, 1, 2}}
	_, err := Assemble(0, F, [][]float64{{1, 1, 1}})
	assert.Error(t, err)
	_, err = Assemble(3, F, nil)
	assert.Error(t, err)
	_, err = Assemble(3, F, [][]float64{{1, 1}})
	assert.Error(t, err)
	_, err = Assemble(3, [][]int{{0, 1}}, [][]float64{{1}})
	assert.ErrorIs(t, err, cotangent.ErrUnsupportedSimplexSize)
	_, err = Assemble(2, F, [][]float64{{1, 1, 1}})
	assert.ErrorIs(t, err, cotangent.ErrIndexOutOfRange)

	ctx := log.WithTB(context.Background(), t, nil)
	_, err = Cotmatrix(ctx, [][]float64{{0, 0, 0}}, [][]int{{0, 0, 0, 0, 0}})
	assert.ErrorIs(t, err, cotangent.ErrUnsupportedSimplexSize)
}
