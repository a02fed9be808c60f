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
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/surfgeo/gosurf/param"
	"github.com/surfgeo/gosurf/readfiles"
)

type ModelParam struct {
	MeshFile   string
	Method     string
	OutputFile string
}

// ParameterizeCmd represents the parameterize command
var ParameterizeCmd = &cobra.Command{
	Use:   "parameterize",
	Short: "Planar parameterization of a 3D surface mesh with boundary",
	Long: `
Reads a 3D surface mesh in OFF format and computes per-vertex (u, v)
parameter coordinates, one line per vertex. The boundary is pinned to its
own XY projection; interior vertices are solved with the chosen weights:

  xy         trivial projection, u = x and v = y
  authalic   area-preserving weights (default)
  conformal  angle-preserving (cotangent) weights

gosurf parameterize -F surface.off --method conformal -o uv.txt`,
	Run: func(cmd *cobra.Command, args []string) {
		var (
			err error
		)
		mp := &ModelParam{}
		if mp.MeshFile, err = cmd.Flags().GetString("meshFile"); err != nil {
			panic(err)
		}
		mp.Method, _ = cmd.Flags().GetString("method")
		mp.OutputFile, _ = cmd.Flags().GetString("outputFile")
		if len(mp.MeshFile) == 0 {
			fmt.Println("error: must supply a mesh file (-F, --meshFile) in OFF format")
			os.Exit(1)
		}
		RunParameterize(mp)
	},
}

func init() {
	rootCmd.AddCommand(ParameterizeCmd)
	ParameterizeCmd.Flags().StringP("meshFile", "F", "", "surface mesh in OFF format")
	ParameterizeCmd.Flags().StringP("method", "m", "authalic", "weights: xy, authalic or conformal")
	ParameterizeCmd.Flags().StringP("outputFile", "o", "uv.txt", "output file, one \"u v\" line per vertex")
}

func RunParameterize(mp *ModelParam) {
	m, err := readfiles.ReadOFFMesh(mp.MeshFile, 3)
	if err != nil {
		log.Fatal("reading mesh", zap.Error(err))
	}
	m.SetLogger(log)

	var uv []float64
	switch mp.Method {
	case "xy":
		uv = m.ParameterizeXY()
	case "conformal":
		uv, err = param.Parameterize(m, param.Conformal)
	case "authalic":
		uv, err = param.Parameterize(m, param.Authalic)
	default:
		fmt.Printf("error: unknown method %q, want xy, authalic or conformal\n", mp.Method)
		os.Exit(1)
	}
	if err != nil {
		log.Fatal("parameterization", zap.Error(err))
	}

	file, err := os.Create(mp.OutputFile)
	if err != nil {
		log.Fatal("creating output", zap.Error(err))
	}
	defer file.Close()
	w := bufio.NewWriter(file)
	defer w.Flush()
	for i := 0; i < len(uv); i += 2 {
		fmt.Fprintf(w, "%g %g\n", uv[i], uv[i+1])
	}
	log.Info("wrote parameterization", zap.String("file", mp.OutputFile),
		zap.String("method", mp.Method), zap.Int("vertices", m.NumVertices()))
}
