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

	"cdr.dev/slog"
	"github.com/spf13/cobra"

	"github.com/notargets/cotangent/InputParameters"
	"github.com/notargets/cotangent/cotangent"
	"github.com/notargets/cotangent/laplacian"
	"github.com/notargets/cotangent/log"
)

// LaplacianCmd represents the laplacian command
var LaplacianCmd = &cobra.Command{
	Use:   "laplacian",
	Short: "Assemble the sparse cotangent Laplacian of a mesh",
	Long: `
Assembles the cotangent Laplacian of a triangle or tetrahedral mesh and writes
it as a header line "rows cols nnz" followed by one "i j value" triplet per
stored entry.

cotangent laplacian -F mesh.msh`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ip, err := processInput(cmd)
		if err != nil {
			return err
		}
		ctx := commandContext(cmd)
		defer log.Sync(ctx)
		return RunLaplacian(ctx, ip, cmd.OutOrStdout(), verboseWriter(cmd))
	},
}

func init() {
	rootCmd.AddCommand(LaplacianCmd)
	addMeshFlags(LaplacianCmd)
}

func RunLaplacian(ctx context.Context, ip *InputParameters.InputParameters, stdout, diag io.Writer) (err error) {
	msh, F, err := loadMesh(ctx, ip, diag)
	if err != nil {
		return
	}
	L, err := laplacian.Cotmatrix(ctx, msh.Vertices, F, cotangent.WithParallelDegree(ip.ParallelDegree))
	if err != nil {
		return
	}
	nr, nc := L.Dims()
	log.Info(ctx, "assembled cotangent laplacian",
		slog.F("rows", nr), slog.F("nnz", L.NNZ()))

	w, closeFn, err := openOutput(ip.OutputFile, stdout)
	if err != nil {
		return
	}
	defer func() {
		if cerr := closeFn(); err == nil {
			err = cerr
		}
	}()
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "%d %d %d\n", nr, nc, L.NNZ())
	for _, t := range laplacian.Triplets(L) {
		fmt.Fprintf(bw, "%d %d %.17g\n", t.I, t.J, t.V)
	}
	return bw.Flush()
}
