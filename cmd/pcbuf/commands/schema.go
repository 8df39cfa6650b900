package commands

import (
	"github.com/spf13/cobra"

	"github.com/haivivi/pcbuf/pkg/cli"
)

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the JSON Schema of run files",
	Long: `Print the JSON Schema accepted by 'pcbuf run -f' and 'pcbuf profile add -f'.

Point an editor's YAML or JSON language server at it to get completion
and catch misspelled keys before running.

Examples:
  pcbuf schema -o pcbuf-run.schema.json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := cli.RunFileSchema()
		if err != nil {
			return err
		}
		return cli.Output(s, cli.OutputOptions{Format: cli.FormatJSON, File: outputFile})
	},
}

func init() {
	rootCmd.AddCommand(schemaCmd)
}
