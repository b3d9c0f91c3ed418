package cotangent

import "math"

func dist(a, b []float64) float64 {
	var (
		dx = a[0] - b[0]
		dy = a[1] - b[1]
		dz = a[2] - b[2]
	)
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

// triangleWeights writes half the cotangent of each angle of the triangle
// into c, expressed through the law of cosines and Heron's area.
func triangleWeights(V [][]float64, tri []int, c []float64) {
	var (
		v0, v1, v2 = V[tri[0]], V[tri[1]], V[tri[2]]
		// edge lengths numbered same as opposite vertices
		l0 = dist(v1, v2)
		l1 = dist(v2, v0)
		l2 = dist(v0, v1)
		s  = 0.5 * (l0 + l1 + l2)
	)
	// A radicand rounded below zero is not clamped, the row becomes NaN
	dblA := 2. * math.Sqrt(s*(s-l0)*(s-l1)*(s-l2))
	l0s, l1s, l2s := l0*l0, l1*l1, l2*l2
	c[0] = (l1s + l2s - l0s) / dblA / 4.
	c[1] = (l2s + l0s - l1s) / dblA / 4.
	c[2] = (l0s + l1s - l2s) / dblA / 4.
}
