package mesh

import (
	"fmt"
	"io"
	"sort"
)

// ElementType represents the element shapes the readers understand
type ElementType int

const (
	Unknown ElementType = iota
	Point
	Line
	Triangle
	Quad
	Tet
	Hex
	Prism
	Pyramid
)

func (e ElementType) String() string {
	names := []string{"Unknown", "Point", "Line", "Triangle", "Quad", "Tet", "Hex", "Prism", "Pyramid"}
	if int(e) >= 0 && int(e) < len(names) {
		return names[e]
	}
	return "Invalid"
}

// GetDimension returns the spatial dimension of the element
func (e ElementType) GetDimension() int {
	switch e {
	case Point:
		return 0
	case Line:
		return 1
	case Triangle, Quad:
		return 2
	case Tet, Hex, Prism, Pyramid:
		return 3
	default:
		return -1
	}
}

// GetNumNodes returns the number of vertices of the element
func (e ElementType) GetNumNodes() int {
	switch e {
	case Point:
		return 1
	case Line:
		return 2
	case Triangle:
		return 3
	case Quad, Tet:
		return 4
	case Pyramid:
		return 5
	case Prism:
		return 6
	case Hex:
		return 8
	default:
		return 0
	}
}

// IsSimplex reports whether the element is a triangle or a tetrahedron
func (e ElementType) IsSimplex() bool {
	return e == Triangle || e == Tet
}

// Mesh is an unstructured mesh with vertex coordinates and element to
// vertex connectivity indexed from zero.
type Mesh struct {
	Vertices     [][]float64   // Vertex coordinates [nvertices][3]
	EtoV         [][]int       // Element to vertex connectivity [nelems][nverts_per_elem]
	ElementTypes []ElementType // Element type for each element
	ElementTags  [][]int       // Tags for each element as found in the file

	// NodeIDMap maps node tags from the file to indices into Vertices
	NodeIDMap map[int]int
	Markers   []string // Boundary marker names, in file order

	FormatVersion string
	NumElements   int
	NumVertices   int
}

func NewMesh() *Mesh {
	return &Mesh{
		NodeIDMap: make(map[int]int),
	}
}

// AddNode appends a vertex under the node tag used by the file.
// Coordinates are padded to three.
func (m *Mesh) AddNode(tag int, coords []float64) {
	c := make([]float64, 3)
	copy(c, coords)
	m.NodeIDMap[tag] = len(m.Vertices)
	m.Vertices = append(m.Vertices, c)
	m.NumVertices = len(m.Vertices)
}

func (m *Mesh) GetNodeIndex(tag int) (idx int, ok bool) {
	idx, ok = m.NodeIDMap[tag]
	return
}

// AddElement appends an element whose vertices are given as file node tags.
func (m *Mesh) AddElement(etype ElementType, tags []int, nodeTags []int) error {
	if len(nodeTags) != etype.GetNumNodes() {
		return fmt.Errorf("element type %v expects %d nodes, got %d",
			etype, etype.GetNumNodes(), len(nodeTags))
	}
	verts := make([]int, len(nodeTags))
	for i, tag := range nodeTags {
		idx, ok := m.GetNodeIndex(tag)
		if !ok {
			return fmt.Errorf("element %d references unknown node %d", len(m.EtoV), tag)
		}
		verts[i] = idx
	}
	m.EtoV = append(m.EtoV, verts)
	m.ElementTypes = append(m.ElementTypes, etype)
	m.ElementTags = append(m.ElementTags, tags)
	m.NumElements = len(m.EtoV)
	return nil
}

// GetMeshDimension returns the largest element dimension in the mesh
func (m *Mesh) GetMeshDimension() (dim int) {
	dim = -1
	for _, e := range m.ElementTypes {
		if d := e.GetDimension(); d > dim {
			dim = d
		}
	}
	return
}

// dropLowerDimension removes elements below the mesh dimension, which are
// the boundary entities Gmsh stores alongside the volume.
func (m *Mesh) dropLowerDimension() {
	dim := m.GetMeshDimension()
	var (
		etov  = m.EtoV[:0]
		types = m.ElementTypes[:0]
		tags  = m.ElementTags[:0]
	)
	for k, e := range m.ElementTypes {
		if e.GetDimension() == dim {
			etov = append(etov, m.EtoV[k])
			types = append(types, e)
			tags = append(tags, m.ElementTags[k])
		}
	}
	m.EtoV, m.ElementTypes, m.ElementTags = etov, types, tags
	m.NumElements = len(m.EtoV)
}

// Simplices splits the simplex elements of the mesh into triangle and
// tetrahedron element arrays. Other element types are ignored.
func (m *Mesh) Simplices() (tris, tets [][]int) {
	for k, e := range m.ElementTypes {
		if !e.IsSimplex() {
			continue
		}
		if e == Triangle {
			tris = append(tris, m.EtoV[k])
		} else {
			tets = append(tets, m.EtoV[k])
		}
	}
	return
}

// PrintStatistics writes a mesh summary to w
func (m *Mesh) PrintStatistics(w io.Writer) {
	fmt.Fprintf(w, "Mesh Statistics:\n")
	fmt.Fprintf(w, "  Vertices: %d\n", m.NumVertices)
	fmt.Fprintf(w, "  Elements: %d\n", m.NumElements)

	typeCounts := make(map[ElementType]int)
	for _, t := range m.ElementTypes {
		typeCounts[t]++
	}
	types := make([]int, 0, len(typeCounts))
	for t := range typeCounts {
		types = append(types, int(t))
	}
	sort.Ints(types)
	fmt.Fprintf(w, "  Element types:\n")
	for _, t := range types {
		fmt.Fprintf(w, "    %s: %d\n", ElementType(t), typeCounts[ElementType(t)])
	}
}
