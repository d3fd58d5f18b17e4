package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	root := newRootCmd()
	if err := root.Execute(); err != nil {
		if !errors.Is(err, errClashesFound) {
			fmt.Fprintln(os.Stderr, red("error:"), err)
		}
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "timetablectl",
		Short: "Generate, check and export weekly timetables offline",
		Long: `timetablectl runs the timetable generator against a YAML or JSON input
file without the HTTP service, checks edited timetables for clashes, and
renders results as xlsx, pdf or csv documents.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "disable colored output")
	root.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		applyColorSetting()
	}

	root.AddCommand(newGenerateCmd(), newValidateCmd(), newExportCmd())
	return root
}
