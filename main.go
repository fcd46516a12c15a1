package main

import "github.com/sidecarr/sidecarr/internal/cmd"

func main() {
	cmd.Execute()
}
