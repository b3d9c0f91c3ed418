package InputParameters

import (
	"fmt"
	"io"
	"math"

	"github.com/ghodss/yaml"
)

// Simplex selects which elements of a mixed mesh are processed
const (
	SimplexAuto        = "auto"
	SimplexTriangle    = "triangle"
	SimplexTetrahedron = "tetrahedron"
)

// Output formats for computed weights
const (
	FormatText = "text"
	FormatYAML = "yaml"
)

// Parameters obtained from the YAML input file
type InputParameters struct {
	Title          string `json:"Title"`
	MeshFile       string `json:"MeshFile"`
	OutputFile     string `json:"OutputFile"`
	Format         string `json:"Format"`
	Simplex        string `json:"Simplex"`
	ParallelDegree int    `json:"ParallelDegree"` // Zero picks the configured default
}

func NewInputParameters() *InputParameters {
	return &InputParameters{
		Format:  FormatText,
		Simplex: SimplexAuto,
	}
}

func (ip *InputParameters) Parse(data []byte) error {
	return yaml.Unmarshal(data, ip)
}

// Validate checks the enumerated fields
func (ip *InputParameters) Validate() error {
	switch ip.Format {
	case FormatText, FormatYAML:
	default:
		return fmt.Errorf("unknown output format %q, want %s or %s", ip.Format, FormatText, FormatYAML)
	}
	switch ip.Simplex {
	case SimplexAuto, SimplexTriangle, SimplexTetrahedron:
	default:
		return fmt.Errorf("unknown simplex %q, want %s, %s or %s",
			ip.Simplex, SimplexAuto, SimplexTriangle, SimplexTetrahedron)
	}
	if len(ip.MeshFile) == 0 {
		return fmt.Errorf("must supply a mesh file (-F, --gridFile) in .su2 or .msh format")
	}
	return nil
}

func (ip *InputParameters) Print(w io.Writer) {
	fmt.Fprintf(w, "\"%s\"\t\t= Title\n", ip.Title)
	fmt.Fprintf(w, "[%s]\t\t= Mesh File\n", ip.MeshFile)
	fmt.Fprintf(w, "[%s]\t\t= Output File\n", ip.OutputFile)
	fmt.Fprintf(w, "[%s]\t\t\t= Format\n", ip.Format)
	fmt.Fprintf(w, "[%s]\t\t\t= Simplex\n", ip.Simplex)
	fmt.Fprintf(w, "[%d]\t\t\t\t= Parallel Degree\n", ip.ParallelDegree)
}

// Grid is a scalar field on a regular grid as stored in YAML. Missing
// samples are written as null.
type Grid struct {
	Resolution [3]int     `json:"Resolution"`
	Values     []*float64 `json:"Values"`
}

func (g *Grid) Parse(data []byte) error {
	return yaml.Unmarshal(data, g)
}

// Field returns the values with missing samples as NaN
func (g *Grid) Field() (S []float64) {
	S = make([]float64, len(g.Values))
	for i, v := range g.Values {
		if v == nil {
			S[i] = math.NaN()
		} else {
			S[i] = *v
		}
	}
	return
}

// SetField stores S, writing non-finite values as missing samples
func (g *Grid) SetField(S []float64) {
	g.Values = NullableValues(S)
}

func (g *Grid) Marshal() ([]byte, error) {
	return yaml.Marshal(g)
}

// NullableValues maps NaN and infinite entries to nil, which YAML encodes as null.
func NullableValues(S []float64) (v []*float64) {
	v = make([]*float64, len(S))
	for i := range S {
		if math.IsNaN(S[i]) || math.IsInf(S[i], 0) {
			continue
		}
		val := S[i]
		v[i] = &val
	}
	return
}
