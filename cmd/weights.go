/*
Copyright © 2020 NAME HERE <EMAIL ADDRESS>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strconv"

	"cdr.dev/slog"
	"github.com/ghodss/yaml"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/notargets/cotangent/InputParameters"
	"github.com/notargets/cotangent/cotangent"
	"github.com/notargets/cotangent/log"
	"github.com/notargets/cotangent/mesh"
	"github.com/notargets/cotangent/utils"
)

// WeightsCmd represents the weights command
var WeightsCmd = &cobra.Command{
	Use:   "weights",
	Short: "Compute per-element cotangent weights of a mesh",
	Long: `
Reads a triangle or tetrahedral mesh and writes one row of cotangent weights
per element: three per triangle, column k for the edge opposite vertex k, and
six per tetrahedron for the edges bc, ca, ab, da, db, dc.

cotangent weights -F mesh.su2 -o weights.txt`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ip, err := processInput(cmd)
		if err != nil {
			return err
		}
		ctx := commandContext(cmd)
		defer log.Sync(ctx)
		return RunWeights(ctx, ip, cmd.OutOrStdout(), verboseWriter(cmd))
	},
}

func init() {
	rootCmd.AddCommand(WeightsCmd)
	addMeshFlags(WeightsCmd)
	WeightsCmd.Flags().String("format", InputParameters.FormatText, "output format: text or yaml")
}

func addMeshFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("gridFile", "F", "", "Mesh file to read in SU2 (.su2) or Gmsh 2.2 (.msh) format")
	cmd.Flags().StringP("inputParametersFile", "I", "", "YAML file for run parameters like:\n\t- MeshFile\n\t- Simplex\n\t- Format")
	cmd.Flags().StringP("output", "o", "", "output file, default is stdout")
	cmd.Flags().String("simplex", InputParameters.SimplexAuto, "elements to use: auto, triangle or tetrahedron")
}

// processInput builds the run parameters from the optional YAML file, with
// explicitly set flags taking precedence.
func processInput(cmd *cobra.Command) (ip *InputParameters.InputParameters, err error) {
	ip = InputParameters.NewInputParameters()
	var ipFile string
	if ipFile, err = cmd.Flags().GetString("inputParametersFile"); err != nil {
		return
	}
	if len(ipFile) != 0 {
		var data []byte
		if data, err = os.ReadFile(ipFile); err != nil {
			return
		}
		if err = ip.Parse(data); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", ipFile, err)
		}
	}
	flags := cmd.Flags()
	override := func(name string, dst *string) {
		if flags.Lookup(name) == nil {
			return
		}
		if flags.Changed(name) || len(*dst) == 0 {
			*dst, _ = flags.GetString(name)
		}
	}
	override("gridFile", &ip.MeshFile)
	override("output", &ip.OutputFile)
	override("simplex", &ip.Simplex)
	override("format", &ip.Format)
	// Persistent flags are merged into Flags once cobra parses the command line
	if f := flags.Lookup("parallel"); f != nil && f.Changed {
		if ip.ParallelDegree, err = flags.GetInt("parallel"); err != nil {
			return nil, err
		}
	} else if ip.ParallelDegree == 0 {
		ip.ParallelDegree = viper.GetInt("parallel")
	}
	if err = ip.Validate(); err != nil {
		return nil, err
	}
	return
}

// selectElements picks the element array of the mesh to process
func selectElements(msh *mesh.Mesh, simplex string) (F [][]int, err error) {
	tris, tets := msh.Simplices()
	switch simplex {
	case InputParameters.SimplexTriangle:
		F = tris
	case InputParameters.SimplexTetrahedron:
		F = tets
	default:
		F = tets
		if len(F) == 0 {
			F = tris
		}
	}
	if len(F) == 0 {
		if simplex == InputParameters.SimplexAuto {
			return nil, fmt.Errorf("mesh has no triangle or tetrahedron elements")
		}
		return nil, fmt.Errorf("mesh has no %s elements", simplex)
	}
	return
}

// verboseWriter returns stderr when --verbose is set, nil otherwise
func verboseWriter(cmd *cobra.Command) io.Writer {
	if viper.GetBool("verbose") {
		return cmd.ErrOrStderr()
	}
	return nil
}

// loadMesh reads the mesh and selects its elements. A non nil diag receives
// the run parameters and the mesh statistics.
func loadMesh(ctx context.Context, ip *InputParameters.InputParameters, diag io.Writer) (msh *mesh.Mesh, F [][]int, err error) {
	if diag != nil {
		ip.Print(diag)
	}
	if msh, err = mesh.ReadMeshFile(ip.MeshFile); err != nil {
		return
	}
	if diag != nil {
		msh.PrintStatistics(diag)
	}
	if F, err = selectElements(msh, ip.Simplex); err != nil {
		return nil, nil, fmt.Errorf("%s: %w", ip.MeshFile, err)
	}
	log.Debug(ctx, "read mesh",
		slog.F("file", ip.MeshFile),
		slog.F("vertices", msh.NumVertices),
		slog.F("elements", msh.NumElements),
		slog.F("selected", len(F)))
	return
}

// openOutput returns the file named by path, or stdout when path is empty
func openOutput(path string, stdout io.Writer) (w io.Writer, closeFn func() error, err error) {
	if len(path) == 0 {
		return stdout, func() error { return nil }, nil
	}
	var f *os.File
	if f, err = os.Create(path); err != nil {
		return
	}
	return f, f.Close, nil
}

// WeightsDocument is the YAML form of a weight array. Non-finite weights of
// degenerate elements are written as null.
type WeightsDocument struct {
	SimplexSize int          `json:"SimplexSize"`
	Edges       [][2]int     `json:"Edges"`
	Weights     [][]*float64 `json:"Weights"`
	Degenerate  []int        `json:"Degenerate,omitempty"`
}

func RunWeights(ctx context.Context, ip *InputParameters.InputParameters, stdout, diag io.Writer) (err error) {
	var F [][]int
	var msh *mesh.Mesh
	if msh, F, err = loadMesh(ctx, ip, diag); err != nil {
		return
	}
	var C [][]float64
	if C, err = cotangent.Weights(ctx, msh.Vertices, F,
		cotangent.WithParallelDegree(ip.ParallelDegree)); err != nil {
		return
	}
	log.Info(ctx, "computed cotangent weights",
		slog.F("elements", len(C)),
		slog.F("parallel", ip.ParallelDegree),
		slog.F("blas", utils.BLASImplementation))

	w, closeFn, err := openOutput(ip.OutputFile, stdout)
	if err != nil {
		return
	}
	defer func() {
		if cerr := closeFn(); err == nil {
			err = cerr
		}
	}()
	switch ip.Format {
	case InputParameters.FormatYAML:
		doc := WeightsDocument{
			SimplexSize: len(F[0]),
			Weights:     make([][]*float64, len(C)),
			Degenerate:  cotangent.DegenerateRows(C),
		}
		doc.Edges, _ = cotangent.Edges(len(F[0]))
		for i, row := range C {
			doc.Weights[i] = InputParameters.NullableValues(row)
		}
		var data []byte
		if data, err = yaml.Marshal(doc); err != nil {
			return
		}
		_, err = w.Write(data)
	default:
		err = writeWeightsText(w, C)
	}
	return
}

func writeWeightsText(w io.Writer, C [][]float64) error {
	bw := bufio.NewWriter(w)
	var buf []byte
	for _, row := range C {
		buf = buf[:0]
		for j, val := range row {
			if j != 0 {
				buf = append(buf, ' ')
			}
			buf = strconv.AppendFloat(buf, val, 'g', -1, 64)
		}
		buf = append(buf, '\n')
		if _, err := bw.Write(buf); err != nil {
			return err
		}
	}
	return bw.Flush()
}
