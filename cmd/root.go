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
	"os"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/pkg/profile"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/notargets/cotangent/log"
	"github.com/notargets/cotangent/utils"
)

var (
	cfgFile  string
	profiler interface{ Stop() }
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "cotangent",
	Short: "Cotangent weights and Laplacians of triangle and tetrahedral meshes",
	Long: `
Computes the cotangent weights of every triangle or tetrahedron of a mesh,
assembles the cotangent Laplacian and fills sparse scalar grids.

cotangent weights -F mesh.su2`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		switch mode := viper.GetString("profile"); mode {
		case "":
		case "cpu":
			profiler = profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.Quiet)
		case "mem":
			profiler = profile.Start(profile.MemProfile, profile.ProfilePath("."), profile.Quiet)
		default:
			return fmt.Errorf("unknown profile mode %q, want cpu or mem", mode)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if profiler != nil {
			profiler.Stop()
			profiler = nil
		}
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.cotangent.yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "log advisories and progress to stderr")
	rootCmd.PersistentFlags().String("profile", "", "write a cpu or mem profile to the current directory")
	rootCmd.PersistentFlags().IntP("parallel", "p", utils.DefaultParallelDegree(), "number of goroutines for the element loop")
	for _, name := range []string{"verbose", "profile", "parallel"} {
		if err := viper.BindPFlag(name, rootCmd.PersistentFlags().Lookup(name)); err != nil {
			panic(err)
		}
	}
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := homedir.Dir()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		viper.AddConfigPath(home)
		viper.SetConfigName(".cotangent")
	}
	viper.SetEnvPrefix("cotangent")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func commandContext(cmd *cobra.Command) context.Context {
	return log.Named(log.Human(context.Background(), cmd.ErrOrStderr(), viper.GetBool("verbose")), cmd.Name())
}
