package main

import (
	"os"

	"github.com/hashicorp-forge/vectara-examples/internal/cmd"
)

func main() {
	os.Exit(cmd.Main(os.Args))
}
