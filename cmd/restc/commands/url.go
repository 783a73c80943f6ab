package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewURLCommand creates the url command, which prints the URL an operation
// would target without contacting the server.
func NewURLCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "url RESOURCE [KEY]",
		Short: "Print a collection or item URL",
		Long:  "Print the collection URL of RESOURCE, or the item URL when KEY is given",
		Args:  cobra.RangeArgs(1, 2), //nolint:mnd // resource and optional key
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			driver := client.Resource(args[0])
			target := driver.CollectionURL()

			if len(args) == 2 { //nolint:mnd // key given
				target, err = driver.ItemURL(args[1])
				if err != nil {
					return err
				}
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), target)
			if err != nil {
				return fmt.Errorf("writing output: %w", err)
			}

			return nil
		},
	}
}
