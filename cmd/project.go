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

	"github.com/surfgeo/gosurf/readfiles"
	"github.com/surfgeo/gosurf/spatial"
)

type ModelProject struct {
	MeshFile   string
	PointsFile string
	OutputFile string
}

// ProjectCmd represents the project command
var ProjectCmd = &cobra.Command{
	Use:   "project",
	Short: "Project query points onto the nearest point of a surface mesh",
	Long: `
Reads a 3D surface mesh and a set of query points (both OFF format),
projects each point onto the nearest point of the surface and writes one
line per point: the owning face index followed by the three barycentric
coordinates of the projection within that face.

gosurf project -F surface.off -P points.off -o projected.txt`,
	Run: func(cmd *cobra.Command, args []string) {
		var (
			err error
		)
		mp := &ModelProject{}
		if mp.MeshFile, err = cmd.Flags().GetString("meshFile"); err != nil {
			panic(err)
		}
		if mp.PointsFile, err = cmd.Flags().GetString("pointsFile"); err != nil {
			panic(err)
		}
		mp.OutputFile, _ = cmd.Flags().GetString("outputFile")
		if len(mp.MeshFile) == 0 || len(mp.PointsFile) == 0 {
			fmt.Println("error: must supply a mesh file (-F) and a points file (-P), both in OFF format")
			os.Exit(1)
		}
		RunProject(mp)
	},
}

func init() {
	rootCmd.AddCommand(ProjectCmd)
	ProjectCmd.Flags().StringP("meshFile", "F", "", "surface mesh in OFF format")
	ProjectCmd.Flags().StringP("pointsFile", "P", "", "query points in OFF format (faces ignored)")
	ProjectCmd.Flags().StringP("outputFile", "o", "projected.txt", "output file, one \"face u v w\" line per point")
}

func RunProject(mp *ModelProject) {
	m, err := readfiles.ReadOFFMesh(mp.MeshFile, 3)
	if err != nil {
		log.Fatal("reading mesh", zap.Error(err))
	}
	m.SetLogger(log)
	queries, _, err := readfiles.ReadOFF(mp.PointsFile)
	if err != nil {
		log.Fatal("reading points", zap.Error(err))
	}

	points := make([]float64, 0, 3*len(queries))
	for _, q := range queries {
		points = append(points, q[0], q[1], q[2])
	}
	result, err := spatial.ProjectOnSurface(m, points)
	if err != nil {
		log.Fatal("projection", zap.Error(err))
	}

	file, err := os.Create(mp.OutputFile)
	if err != nil {
		log.Fatal("creating output", zap.Error(err))
	}
	defer file.Close()
	w := bufio.NewWriter(file)
	defer w.Flush()
	for i := 0; i < len(result); i += 4 {
		fmt.Fprintf(w, "%d %g %g %g\n", int(result[i]), result[i+1], result[i+2], result[i+3])
	}
	log.Info("wrote projections", zap.String("file", mp.OutputFile),
		zap.Int("points", len(queries)))
}
