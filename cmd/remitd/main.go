package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/iov-one/remit/commands"
)

func main() {
	defaultHome := filepath.Join(os.ExpandEnv("$HOME"), ".remit")
	if err := commands.NewRootCmd(defaultHome).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
