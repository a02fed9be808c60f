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
	"fmt"
	"io/ioutil"
	"os"

	"github.com/ghodss/yaml"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/surfgeo/gosurf/delaunay"
	"github.com/surfgeo/gosurf/readfiles"
	"github.com/surfgeo/gosurf/trimesh"
)

type ModelTri struct {
	PointsFile string
	ParamsFile string
	OutputFile string
}

type TriangulationParameters struct {
	Title    string    `yaml:"Title"`
	Periodic bool      `yaml:"Periodic"`
	Box      []float64 `yaml:"Box"` // (x0, y0, x1, y1), or (width, height) anchored at the origin
}

func (tp *TriangulationParameters) Parse(data []byte) error {
	return yaml.Unmarshal(data, tp)
}

func (tp *TriangulationParameters) Print() {
	fmt.Printf("\"%s\"\t\t= Title\n", tp.Title)
	fmt.Printf("[%v]\t\t\t= Periodic\n", tp.Periodic)
	if tp.Periodic {
		fmt.Printf("%v\t= Box\n", tp.Box)
	}
}

// TriangulateCmd represents the triangulate command
var TriangulateCmd = &cobra.Command{
	Use:   "triangulate",
	Short: "Delaunay triangulation of a 2D point set, free or fully periodic",
	Long: `
Reads a point set from an OFF file, computes its planar Delaunay
triangulation (optionally under periodic boundary conditions on a
rectangular domain) and writes the resulting mesh as OFF.

gosurf triangulate -F points.off -I params.yaml -o mesh.off`,
	Run: func(cmd *cobra.Command, args []string) {
		var (
			err error
		)
		mt := &ModelTri{}
		if mt.PointsFile, err = cmd.Flags().GetString("pointsFile"); err != nil {
			panic(err)
		}
		if mt.ParamsFile, err = cmd.Flags().GetString("inputParametersFile"); err != nil {
			panic(err)
		}
		mt.OutputFile, _ = cmd.Flags().GetString("outputFile")
		tp := processTriInput(mt)
		RunTriangulate(mt, tp)
	},
}

func processTriInput(mt *ModelTri) (tp *TriangulationParameters) {
	var (
		err      error
		willExit bool
	)
	if len(mt.PointsFile) == 0 {
		err := fmt.Errorf("must supply a points file (-F, --pointsFile) in OFF format")
		fmt.Printf("error: %s\n", err.Error())
		willExit = true
	}
	if len(mt.ParamsFile) == 0 {
		err := fmt.Errorf("must supply an input parameters file (-I, --inputParametersFile) in YAML format")
		fmt.Printf("error: %s\n", err.Error())
		exampleFile := `
########################################
Title: "Test Case"
Periodic: true
Box: [0., 0., 1., 1.]
########################################
`
		fmt.Printf("Example File:%s\n", exampleFile)
		willExit = true
	}
	if willExit {
		os.Exit(1)
	}
	var data []byte
	if data, err = ioutil.ReadFile(mt.ParamsFile); err != nil {
		panic(err)
	}
	tp = &TriangulationParameters{}
	if err = tp.Parse(data); err != nil {
		panic(err)
	}
	return
}

func init() {
	rootCmd.AddCommand(TriangulateCmd)
	TriangulateCmd.Flags().StringP("pointsFile", "F", "", "point set to triangulate, in OFF format (faces ignored)")
	TriangulateCmd.Flags().StringP("inputParametersFile", "I", "", "YAML file for input parameters like:\n\t- Periodic\n\t- Box (fundamental domain)")
	TriangulateCmd.Flags().StringP("outputFile", "o", "mesh.off", "output mesh file in OFF format")
}

func RunTriangulate(mt *ModelTri, tp *TriangulationParameters) {
	var (
		err error
	)
	tp.Print()
	vertices, _, err := readfiles.ReadOFF(mt.PointsFile)
	if err != nil {
		log.Fatal("reading points", zap.Error(err))
	}

	var m *trimesh.Mesh
	if tp.Periodic {
		pm, perr := trimesh.NewPeriodicMesh(2)
		if perr != nil {
			log.Fatal("creating mesh", zap.Error(perr))
		}
		pm.SetLogger(log)
		pm.SetVertices(vertices)
		if err = pm.SetBox(tp.Box...); err != nil {
			log.Fatal("setting periodic box", zap.Error(err))
		}
		kernel := delaunay.NineSheetKernel{Planar: delaunay.TriangleKernel{}}
		if _, err = delaunay.TriangulatePeriodic(pm, kernel); err != nil {
			log.Fatal("periodic triangulation", zap.Error(err))
		}
		m = pm.Mesh
	} else {
		if m, err = trimesh.NewMesh(2); err != nil {
			log.Fatal("creating mesh", zap.Error(err))
		}
		m.SetLogger(log)
		m.SetVertices(vertices)
		if _, err = delaunay.Triangulate(m, delaunay.TriangleKernel{}); err != nil {
			log.Fatal("triangulation", zap.Error(err))
		}
	}

	if err = readfiles.WriteOFF(mt.OutputFile, m); err != nil {
		log.Fatal("writing mesh", zap.Error(err))
	}
	log.Info("wrote mesh", zap.String("file", mt.OutputFile),
		zap.Int("vertices", m.NumVertices()), zap.Int("faces", m.NumFaces()))
}
