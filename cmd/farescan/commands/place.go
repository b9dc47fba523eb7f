package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(placeCmd)
}

var placeCmd = &cobra.Command{
	Use:   "place <query>",
	Short: "Resolves a place name to the id used in searches.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient("")
		if err != nil {
			return err
		}
		id, err := client.ResolvePlace(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), id)
		return nil
	},
}
