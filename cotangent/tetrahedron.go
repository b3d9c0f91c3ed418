package cotangent

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// DegenerateTolerance is the smallest |det J| / h^3, with h the largest
// absolute Jacobian entry, of a tetrahedron that is not treated as flat.
const DegenerateTolerance = 1e-12

// barycentricRHS holds the gradient directions of the reference
// tetrahedron, with the fourth barycentric coordinate implied by d.
var barycentricRHS = mat.NewDense(3, 4, []float64{
	1, 0, 0, -1,
	0, 1, 0, -1,
	0, 0, 1, -1,
})

// jacobianTranspose returns the matrix with rows a-d, b-d, c-d.
func jacobianTranspose(pa, pb, pc, pd []float64) (JT *mat.Dense) {
	JT = mat.NewDense(3, 3, nil)
	for j := 0; j < 3; j++ {
		JT.Set(0, j, pa[j]-pd[j])
		JT.Set(1, j, pb[j]-pd[j])
		JT.Set(2, j, pc[j]-pd[j])
	}
	return
}

// TetrahedronVolume returns the unsigned volume of the tetrahedron abcd.
func TetrahedronVolume(pa, pb, pc, pd []float64) float64 {
	return math.Abs(mat.Det(jacobianTranspose(pa, pb, pc, pd))) / 6.
}

// tetrahedronWeights writes the six off diagonal entries of the element
// stiffness matrix K = volume * E^T E into c and reports whether all four
// diagonal entries of K are positive. A flat or ill conditioned Jacobian
// fills c with NaN and reports false.
func tetrahedronWeights(V [][]float64, tet []int, c []float64) (diagPos bool) {
	var (
		pa, pb, pc, pd = V[tet[0]], V[tet[1]], V[tet[2]], V[tet[3]]
		JT             = jacobianTranspose(pa, pb, pc, pd)
		det            = mat.Det(JT)
	)
	if math.IsNaN(det) || math.IsInf(det, 0) || math.Abs(det) <= DegenerateTolerance*cube(maxAbs(JT)) {
		fillNaN(c)
		return false
	}
	volume := math.Abs(det) / 6.

	// Solve JT * E = rhs for the barycentric gradients E, one column per vertex.
	// gonum reports a Condition error once the condition number passes
	// mat.ConditionTolerance.
	var E mat.Dense
	if err := E.Solve(JT, barycentricRHS); err != nil {
		fillNaN(c)
		return false
	}
	var K mat.Dense
	K.Mul(E.T(), &E)
	K.Scale(volume, &K)

	diagPos = K.At(0, 0) > 0 && K.At(1, 1) > 0 && K.At(2, 2) > 0 && K.At(3, 3) > 0
	for col, edge := range TetrahedronEdges {
		c[col] = K.At(edge[0], edge[1])
	}
	return
}

func maxAbs(A *mat.Dense) (h float64) {
	r, c := A.Dims()
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			h = math.Max(h, math.Abs(A.At(i, j)))
		}
	}
	return
}

func cube(x float64) float64 { return x * x * x }

func fillNaN(c []float64) {
	for i := range c {
		c[i] = math.NaN()
	}
}
