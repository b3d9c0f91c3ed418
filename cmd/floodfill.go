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
	"context"
	"fmt"
	"io"
	"math"
	"os"

	"cdr.dev/slog"
	"github.com/spf13/cobra"
	"oss.terrastruct.com/xdefer"

	"github.com/notargets/cotangent/InputParameters"
	"github.com/notargets/cotangent/floodfill"
	"github.com/notargets/cotangent/log"
)

// FloodFillCmd represents the floodfill command
var FloodFillCmd = &cobra.Command{
	Use:   "floodfill",
	Short: "Fill missing samples of a regular scalar grid",
	Long: `
Reads a YAML grid with a Resolution [nx, ny, nz] and nx*ny*nz Values, x fastest,
where missing samples are null, and writes it back with every missing sample
replaced by the nearest defined value before it in scan order.

cotangent floodfill -I grid.yaml -o filled.yaml`,
	RunE: func(cmd *cobra.Command, args []string) error {
		inFile, _ := cmd.Flags().GetString("inputParametersFile")
		if len(inFile) == 0 {
			return fmt.Errorf("must supply a grid file (-I, --inputParametersFile)")
		}
		outFile, _ := cmd.Flags().GetString("output")
		ctx := commandContext(cmd)
		defer log.Sync(ctx)
		return RunFloodFill(ctx, inFile, outFile, cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(FloodFillCmd)
	FloodFillCmd.Flags().StringP("inputParametersFile", "I", "", "YAML grid file with Resolution and Values")
	FloodFillCmd.Flags().StringP("output", "o", "", "output file, default is stdout")
}

func RunFloodFill(ctx context.Context, inFile, outFile string, stdout io.Writer) (err error) {
	defer xdefer.Errorf(&err, "failed to fill %q", inFile)
	var data []byte
	if data, err = os.ReadFile(inFile); err != nil {
		return
	}
	var g InputParameters.Grid
	if err = g.Parse(data); err != nil {
		return
	}
	S := g.Field()
	var missing int
	for _, v := range S {
		if math.IsNaN(v) {
			missing++
		}
	}
	if err = floodfill.Fill(g.Resolution, S); err != nil {
		return
	}
	log.Info(ctx, "filled grid",
		slog.F("resolution", g.Resolution), slog.F("missing", missing))
	g.SetField(S)
	if data, err = g.Marshal(); err != nil {
		return
	}

	w, closeFn, err := openOutput(outFile, stdout)
	if err != nil {
		return
	}
	defer func() {
		if cerr := closeFn(); err == nil {
			err = cerr
		}
	}()
	_, err = w.Write(data)
	return
}
