package main

import "github.com/surfgeo/gosurf/cmd"

func main() {
	cmd.Execute()
}
