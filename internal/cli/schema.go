package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/optdoc/optdoc/internal/config"
)

// schemaCmd prints the JSON schema for .optdoc.yaml configuration files.
var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the JSON schema for the configuration file",
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := config.GenerateSchema()
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(schemaCmd)
}
