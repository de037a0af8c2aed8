// Package validate contains the command that checks a data directory.
package validate

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/theographic/theodb/internal/builder"
	"github.com/theographic/theodb/internal/query"
	"github.com/theographic/theodb/internal/schema"
)

type Report struct {
	Collections map[string]int          `json:"collections"`
	References  []query.ReferenceReport `json:"references"`
	Dangling    int                     `json:"dangling"`
}

func NewValidateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate [data-dir]",
		Short: "Load a data directory and report record counts and dangling references",
		Args:  cobra.MaximumNArgs(1),
		RunE:  validate,
	}

	flags := cmd.Flags()
	flags.Bool("json", false, "print the report as JSON")
	flags.Bool("strict", false, "fail when any reference is dangling")
	return cmd
}

// Validate loads dir and checks every declared relation.
func Validate(dir string) (*Report, error) {
	if err := schema.Entities.Check(); err != nil {
		return nil, err
	}

	store := builder.LoadStore(dir, schema.Entities.CollectionSpecs())
	report := &Report{Collections: map[string]int{}, References: query.CheckReferences(store, schema.Entities)}
	for _, c := range store.Collections.Values() {
		report.Collections[c.Name] = c.Len()
	}
	for _, r := range report.References {
		report.Dangling += r.Dangling
	}
	return report, nil
}

func validate(cmd *cobra.Command, args []string) error {
	dir := "./json"
	if len(args) > 0 {
		dir = args[0]
	}
	asJSON, _ := cmd.Flags().GetBool("json")
	strict, _ := cmd.Flags().GetBool("strict")

	report, err := Validate(dir)
	if err != nil {
		return err
	}

	if asJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		if err := enc.Encode(report); err != nil {
			return err
		}
	} else {
		printReport(cmd.OutOrStdout(), dir, report)
	}

	if strict && report.Dangling > 0 {
		return fmt.Errorf("%d dangling references", report.Dangling)
	}
	return nil
}

func printReport(out io.Writer, dir string, report *Report) {
	fmt.Fprintf(out, "Checked %s\n\n", dir)

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "COLLECTION\tRECORDS")
	for _, e := range schema.Entities.All() {
		fmt.Fprintf(w, "%s\t%d\n", e.Collection, report.Collections[e.Collection])
	}
	w.Flush()

	fmt.Fprintln(out)
	w = tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "FIELD\tTARGET\tREFS\tDANGLING")
	for _, r := range report.References {
		fmt.Fprintf(w, "%s.%s\t%s\t%d\t%d\n", r.Entity, r.Field, r.Target, r.Refs, r.Dangling)
	}
	w.Flush()

	fmt.Fprintf(out, "\n%d dangling references\n", report.Dangling)
}
