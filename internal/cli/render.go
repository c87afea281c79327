package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mchmarny/navd/pkg/menu"
)

func newRenderCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "render FILE NAME",
		Short: "Print the compiled markup of a menu from a definition file",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			defs, err := menu.LoadFile(args[0])
			if err != nil {
				return err
			}

			nav := menu.New()
			if err := nav.Apply(defs); err != nil {
				return err
			}

			markup := nav.GetMenu(args[1])
			if markup == "" {
				return fmt.Errorf("menu %q not found in %s", args[1], args[0])
			}

			fmt.Fprintln(cmd.OutOrStdout(), markup)
			return nil
		},
	}
}
