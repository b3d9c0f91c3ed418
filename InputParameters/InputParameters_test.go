package InputParameters

import (
	"bytes"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInputParameters(t *testing.T) {
	fileInput := []byte(`
Title: Test Case
MeshFile: cube.su2
Format: yaml # Can be text or yaml
Simplex: tetrahedron
ParallelDegree: 4
`)
	ip := NewInputParameters()
	require.NoError(t, ip.Parse(fileInput))
	assert.Equal(t, "Test Case", ip.Title)
	assert.Equal(t, "cube.su2", ip.MeshFile)
	assert.Equal(t, FormatYAML, ip.Format)
	assert.Equal(t, SimplexTetrahedron, ip.Simplex)
	assert.Equal(t, 4, ip.ParallelDegree)
	assert.NoError(t, ip.Validate())

	var buf bytes.Buffer
	ip.Print(&buf)
	assert.Contains(t, buf.String(), "cube.su2")

	// Omitted fields keep their defaults
	ip = NewInputParameters()
	require.NoError(t, ip.Parse([]byte("MeshFile: a.msh\n")))
	assert.Equal(t, FormatText, ip.Format)
	assert.Equal(t, SimplexAuto, ip.Simplex)
}

func TestInputParametersValidate(t *testing.T) {
	ip := NewInputParameters()
	assert.Error(t, ip.Validate()) // no mesh
	ip.MeshFile = "a.su2"
	ip.Format = "csv"
	assert.Error(t, ip.Validate())
	ip.Format = FormatText
	ip.Simplex = "hex"
	assert.Error(t, ip.Validate())
}

func TestGrid(t *testing.T) {
	var g Grid
	require.NoError(t, g.Parse([]byte(`
Resolution: [3, 1, 1]
Values: [null, -1.5, null]
`)))
	assert.Equal(t, [3]int{3, 1, 1}, g.Resolution)
	S := g.Field()
	require.Len(t, S, 3)
	assert.True(t, math.IsNaN(S[0]))
	assert.Equal(t, -1.5, S[1])

	S[0], S[2] = 2, math.Inf(1)
	g.SetField(S)
	data, err := g.Marshal()
	require.NoError(t, err)
	var back Grid
	require.NoError(t, back.Parse(data))
	require.Len(t, back.Values, 3)
	assert.Equal(t, 2., *back.Values[0])
	assert.Nil(t, back.Values[2])
}
