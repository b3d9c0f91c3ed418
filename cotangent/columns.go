package cotangent

import "fmt"

// TriangleEdges gives the local vertex pair of the edge stored in each
// triangle weight column. Column k holds the edge opposite local vertex k.
var TriangleEdges = [3][2]int{
	{1, 2},
	{2, 0},
	{0, 1},
}

// TetrahedronEdges gives the local vertex pair (a=0, b=1, c=2, d=3) of the
// edge stored in each tetrahedron weight column.
var TetrahedronEdges = [6][2]int{
	{1, 2}, // b,c
	{2, 0}, // c,a
	{0, 1}, // a,b
	{3, 0}, // d,a
	{3, 1}, // d,b
	{3, 2}, // d,c
}

const (
	TriangleSize    = 3
	TetrahedronSize = 4
)

// Columns returns the number of weight columns produced for elements with
// simplexSize vertices.
func Columns(simplexSize int) (int, error) {
	switch simplexSize {
	case TriangleSize:
		return len(TriangleEdges), nil
	case TetrahedronSize:
		return len(TetrahedronEdges), nil
	default:
		return 0, fmt.Errorf("%w: %d", ErrUnsupportedSimplexSize, simplexSize)
	}
}

// Edges returns the column to local edge table for elements with
// simplexSize vertices.
func Edges(simplexSize int) ([][2]int, error) {
	switch simplexSize {
	case TriangleSize:
		return TriangleEdges[:], nil
	case TetrahedronSize:
		return TetrahedronEdges[:], nil
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedSimplexSize, simplexSize)
	}
}
