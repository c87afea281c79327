package cli

import (
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/mchmarny/navd/pkg/menu"
)

// ErrInvalidDefinitions is returned by validate when any menu is invalid.
var ErrInvalidDefinitions = errors.New("invalid menu definitions")

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate FILE...",
		Short: "Check menu definition files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ok := color.New(color.FgGreen).SprintFunc()
			fail := color.New(color.FgRed, color.Bold).SprintFunc()
			out := cmd.OutOrStdout()

			invalid := 0
			for _, f := range args {
				defs, err := menu.LoadFile(f)
				if err != nil {
					return err
				}

				for _, d := range defs {
					if menu.ValidForest(d.Items) {
						fmt.Fprintf(out, "%s %s: %s (%d items)\n", ok("OK  "), f, d.Name, len(menu.ItemAliases(d.Items...)))
						continue
					}
					invalid++
					fmt.Fprintf(out, "%s %s: %s\n", fail("FAIL"), f, d.Name)
				}
			}

			if invalid > 0 {
				return fmt.Errorf("%w: %d menu(s)", ErrInvalidDefinitions, invalid)
			}
			return nil
		},
	}
}
