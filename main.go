package main

import (
	"os"

	"github.com/BenedictTTM/qualipro/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
