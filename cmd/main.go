package main

import (
	"os"

	"docscript/cmd/bootstrap"
)

func main() {
	if err := bootstrap.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
