// Package generate contains the command that describes the served entities.
package generate

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/theographic/theodb/internal/schema"
	gen "github.com/theographic/theodb/tools/generate"
)

func NewGenerateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Describe the served entities as GraphQL SDL, TypeScript or JSON",
		Args:  cobra.NoArgs,
		RunE:  generate,
	}

	flags := cmd.Flags()
	flags.String("lang", "graphql", "output language. Options: graphql, typescript, json")
	flags.String("out", "", "output file. Defaults to stdout")
	return cmd
}

func generate(cmd *cobra.Command, _ []string) error {
	lang, _ := cmd.Flags().GetString("lang")
	out, _ := cmd.Flags().GetString("out")

	data, err := gen.SchemaToLang(schema.Entities, lang)
	if err != nil {
		return err
	}

	if out == "" {
		_, err := cmd.OutOrStdout().Write(data)
		return err
	}
	return os.WriteFile(out, data, 0o644)
}
