// Package cmd contains all the commands included in the binary file.
package cmd

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// NewRootCommand enables all children commands to read flags from CLI flags, environment variables prefixed with THEODB, or config.yaml (in that order).
func NewRootCommand() *cobra.Command {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	viper.SetEnvPrefix("THEODB")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	viper.AutomaticEnv()

	configPaths := []string{"/etc/theodb", "$HOME/.theodb", "."}
	for _, path := range configPaths {
		viper.AddConfigPath(path)
	}

	return &cobra.Command{
		Use:   "theodb",
		Short: "A read-only GraphQL and websocket query server for biblical metadata",
		Long: `A read-only query server for biblical metadata.

theodb loads books, chapters, verses, people, places, events, people groups and
Easton's dictionary entries from JSON files and serves them over GraphQL and a
websocket protocol, with filtering, pagination, relationship resolution and
free-text search.`,
		SilenceUsage: true,
	}
}
