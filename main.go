package main

import "github.com/inkwell-labs/grainforge/internal/cmd"

func main() {
	cmd.Execute()
}
