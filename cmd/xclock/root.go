package main

import (
	"github.com/spf13/cobra"

	"github.com/nazgul72/xclock/internal/version"
)

var (
	flagConfig   string
	flagMode     string
	flagStrict   bool
	flagLogLevel string
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "xclock",
		Short: "Extend the taskbar clock tooltip with uptime and week number",
		Long: `xclock hooks into the desktop shell and enriches the taskbar clock
tooltip with the system uptime and the ISO week number. Run it in the
background; hover over the clock to see the extra lines.`,
		Version:       version.String(),
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runHook,
	}

	root.PersistentFlags().StringVarP(&flagConfig, "config", "c", "", "config file (default: platform config dir)")
	root.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "log level: debug, info, warn, error")
	root.PersistentFlags().StringVar(&flagMode, "mode", "", "tooltip mode: mutate or overlay")
	root.PersistentFlags().BoolVar(&flagStrict, "strict", false, "fail startup when no clock window is found")

	root.AddCommand(newRunCmd(), newLocateCmd())
	return root
}
