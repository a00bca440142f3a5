package main

import (
	"os"

	"github.com/cristianoliveira/order-sync-tracker/cmd"
	"github.com/cristianoliveira/order-sync-tracker/internal/colors"
)

func main() {
	os.Exit(run(cmd.Execute))
}

func run(execute func() error) int {
	colors.Debug("startup: started")
	if err := execute(); err != nil {
		colors.Debug("startup: failed:", err.Error())
		return 1
	}
	colors.Debug("startup: completed")
	return 0
}
