package cli

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"csv2json/internal/schema"
)

func newSchemasCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "schemas [dir...]",
		Short: "List schema files",
		Long: `List the schema files convert can resolve by root name, searching the given
directories or the configured schema directories.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			dirs := args
			if len(dirs) == 0 {
				dirs = e.cfg.SchemaDirs
			}

			entries, err := schema.Discover(dirs...)
			if err != nil {
				return err
			}

			t := table.NewWriter()
			t.SetOutputMirror(cmd.OutOrStdout())
			t.SetStyle(table.StyleLight)
			t.AppendHeader(table.Row{"Name", "Display name", "Root", "Fields", "Path", "Error"})

			for _, entry := range entries {
				errText := ""
				if entry.Err != nil {
					errText = entry.Err.Error()
				}

				t.AppendRow(table.Row{entry.Name, entry.DisplayName, entry.Root, entry.Fields, entry.Path, errText})
			}

			t.Render()

			return nil
		},
	}
}
