package main

import (
	"os"

	"github.com/theographic/theodb/cmd"
	"github.com/theographic/theodb/cmd/generate"
	"github.com/theographic/theodb/cmd/run"
	"github.com/theographic/theodb/cmd/validate"
)

func main() {
	rootCmd := cmd.NewRootCommand()

	runCmd := run.NewRunCommand()
	rootCmd.AddCommand(runCmd)

	generateCmd := generate.NewGenerateCommand()
	rootCmd.AddCommand(generateCmd)

	validateCmd := validate.NewValidateCommand()
	rootCmd.AddCommand(validateCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
