package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nazgul72/xclock/internal/hittest"
	"github.com/nazgul72/xclock/internal/locator"
	"github.com/nazgul72/xclock/internal/winsys"
)

func newLocateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "locate",
		Short: "Print the discovered clock windows and their hit-test regions",
		RunE: func(cmd *cobra.Command, args []string) error {
			sys, err := winsys.New()
			if err != nil {
				return err
			}

			targets := locator.Locate(sys)
			if len(targets) == 0 {
				fmt.Println("no clock windows found")
				return nil
			}

			for i, t := range targets {
				rule := hittest.RuleFor(t.Class)
				bounds, ok := sys.WindowRect(t.Handle)
				if !ok {
					fmt.Printf("%d: %s hwnd=0x%X rule=%s (rect unavailable)\n", i, t.Class, uintptr(t.Handle), rule)
					continue
				}
				region := hittest.Region(bounds, rule)
				fmt.Printf("%d: %s hwnd=0x%X rect=(%d,%d)-(%d,%d) rule=%s region=(%d,%d)-(%d,%d)\n",
					i, t.Class, uintptr(t.Handle),
					bounds.Left, bounds.Top, bounds.Right, bounds.Bottom, rule,
					region.Left, region.Top, region.Right, region.Bottom)
			}
			return nil
		},
	}
}
