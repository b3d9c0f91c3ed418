package mesh

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Helper function to create temporary test files
func createTempMeshFile(t *testing.T, name, content string) string {
	t.Helper()
	tmpFile := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(tmpFile, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to create temp file: %v", err)
	}
	return tmpFile
}

const twoTetGmsh = `$MeshFormat
2.2 0 8
$EndMeshFormat
$PhysicalNames
2
2 1 "wall"
3 2 "fluid"
$EndPhysicalNames
$Nodes
5
10 0 0 0
20 1 0 0
30 0 1 0
40 0 0 1
50 1 1 1
$EndNodes
$Elements
4
1 15 2 0 1 10
2 2 2 1 1 10 20 30
3 4 2 2 1 10 20 30 40
4 4 2 2 1 20 30 40 50
$EndElements
`

const mixedSU2 = `% two triangles and a quad
NDIME= 2
NELEM= 3
5 0 1 2 0
5 0 2 3 1
9 1 4 5 2 2
NPOIN= 6
0.0 0.0 0
1.0 0.0 1
1.0 1.0 2
0.0 1.0 3
2.0 0.0 4
2.0 1.0 5
NMARK= 1
MARKER_TAG= bottom
MARKER_ELEMS= 2
3 0 1
3 1 4
`

func TestReadGmsh22(t *testing.T) {
	msh, err := ReadGmsh22(strings.NewReader(twoTetGmsh))
	require.NoError(t, err)
	assert.Equal(t, "2.2", msh.FormatVersion)
	assert.Equal(t, 5, msh.NumVertices)
	// The point and the boundary triangle are dropped
	assert.Equal(t, 2, msh.NumElements)
	assert.Equal(t, []ElementType{Tet, Tet}, msh.ElementTypes)
	assert.Equal(t, [][]int{{0, 1, 2, 3}, {1, 2, 3, 4}}, msh.EtoV)
	assert.Equal(t, []float64{1, 1, 1}, msh.Vertices[4])
	assert.Equal(t, 3, msh.GetMeshDimension())

	tris, tets := msh.Simplices()
	assert.Empty(t, tris)
	assert.Len(t, tets, 2)
}

func TestReadGmsh22Errors(t *testing.T) {
	const threeNodes = "$MeshFormat\n2.2 0 8\n$EndMeshFormat\n$Nodes\n3\n1 0 0 0\n2 1 0 0\n3 0 1 0\n$EndNodes\n"
	tests := map[string]string{
		"NoFormat":       "$Nodes\n0\n$EndNodes\n",
		"Binary":         "$MeshFormat\n2.2 1 8\n$EndMeshFormat\n",
		"Version4":       "$MeshFormat\n4.1 0 8\n$EndMeshFormat\n",
		"UnknownNode":    "$MeshFormat\n2.2 0 8\n$EndMeshFormat\n$Nodes\n1\n1 0 0 0\n$EndNodes\n$Elements\n1\n1 2 0 1 2 3\n$EndElements\n",
		"Truncated":      "$MeshFormat\n2.2 0 8\n$EndMeshFormat\n$Nodes\n3\n1 0 0 0\n",
		"BadElementType": threeNodes + "$Elements\n1\n1 tri 0 1 2 3\n$EndElements\n",
		"BadElementTag":  threeNodes + "$Elements\n1\n1 2 1 x 1 2 3\n$EndElements\n",
	}
	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := ReadGmsh22(strings.NewReader(content))
			assert.Error(t, err)
		})
	}
}

func TestReadSU2(t *testing.T) {
	msh, err := ReadSU2(strings.NewReader(mixedSU2))
	require.NoError(t, err)
	assert.Equal(t, 6, msh.NumVertices)
	assert.Equal(t, 3, msh.NumElements)
	assert.Equal(t, []ElementType{Triangle, Triangle, Quad}, msh.ElementTypes)
	assert.Equal(t, []string{"bottom"}, msh.Markers)
	// Two dimensional coordinates are padded with z = 0
	assert.Equal(t, []float64{2, 1, 0}, msh.Vertices[5])

	tris, tets := msh.Simplices()
	assert.Equal(t, [][]int{{0, 1, 2}, {0, 2, 3}}, tris)
	assert.Empty(t, tets)
}

func TestReadSU2Errors(t *testing.T) {
	tests := map[string]string{
		"MissingNDIME": "NPOIN= 1\n0 0 0\n",
		"MissingNPOIN": "NDIME= 3\nNELEM= 0\n",
		"BadDimension": "NDIME= 4\n",
		"BadType":      "NDIME= 2\nNPOIN= 3\n0 0\n1 0\n0 1\nNELEM= 1\n7 0 1 2\n",
		"OutOfRange":   "NDIME= 2\nNPOIN= 3\n0 0\n1 0\n0 1\nNELEM= 1\n5 0 1 3\n",
		"ShortElement": "NDIME= 2\nNPOIN= 3\n0 0\n1 0\n0 1\nNELEM= 1\n5 0 1\n",
		"TruncatedPts": "NDIME= 3\nNPOIN= 2\n0 0 0\n",
	}
	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := ReadSU2(strings.NewReader(content))
			assert.Error(t, err)
		})
	}
}

func TestReadMeshFile(t *testing.T) {
	msh, err := ReadMeshFile(createTempMeshFile(t, "tets.msh", twoTetGmsh))
	require.NoError(t, err)
	assert.Equal(t, 2, msh.NumElements)

	msh, err = ReadMeshFile(createTempMeshFile(t, "mixed.SU2", mixedSU2))
	require.NoError(t, err)
	assert.Equal(t, 3, msh.NumElements)

	_, err = ReadMeshFile(createTempMeshFile(t, "mesh.neu", ""))
	assert.Error(t, err)
	_, err = ReadMeshFile(filepath.Join(t.TempDir(), "missing.su2"))
	assert.Error(t, err)
}

func TestElementType(t *testing.T) {
	assert.Equal(t, "Tet", Tet.String())
	assert.Equal(t, "Invalid", ElementType(42).String())
	assert.Equal(t, 4, Tet.GetNumNodes())
	assert.True(t, Triangle.IsSimplex())
	assert.False(t, Quad.IsSimplex())
	assert.Equal(t, 2, Quad.GetDimension())
}

func TestPrintStatistics(t *testing.T) {
	msh, err := ReadSU2(strings.NewReader(mixedSU2))
	require.NoError(t, err)
	var buf bytes.Buffer
	msh.PrintStatistics(&buf)
	out := buf.String()
	assert.Contains(t, out, "Vertices: 6")
	assert.Contains(t, out, "Triangle: 2")
	assert.Contains(t, out, "Quad: 1")
}
