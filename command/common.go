package command

import (
	"fmt"
	"os"
	"runtime"
	"strings"

	"github.com/frantjc/seed"
	"github.com/frantjc/seed/internal/seederr"
	xslice "github.com/frantjc/x/slice"
	"github.com/spf13/cobra"
)

// SetCommon sets the flags, logger, error handling and version that
// every seed command shares.
func SetCommon(cmd *cobra.Command, version string) *cobra.Command {
	var verbosity int
	cmd.PersistentFlags().CountVarP(&verbosity, "verbose", "V", fmt.Sprintf("Verbosity for %s.", cmd.Name()))
	cmd.PersistentPreRun = func(cmd *cobra.Command, _ []string) {
		if verbose := os.Getenv("SEED_VERBOSE"); verbose != "" && xslice.Some([]string{"1", "y", "yes", "true", "t"}, func(s string, _ int) bool {
			return strings.EqualFold(s, verbose)
		}) {
			verbosity = max(verbosity, 2)
		}

		cmd.SetContext(seed.WithLogger(cmd.Context(), seed.NewLogger(cmd.ErrOrStderr(), verbosity)))
	}

	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return seederr.Usage(err)
	})

	cmd.SilenceErrors = true
	cmd.SilenceUsage = true

	cmd.Version = version
	cmd.SetVersionTemplate("{{ .Name }}{{ .Version }} " + runtime.Version() + "\n")

	return cmd
}

func setProjectFlags(cmd *cobra.Command, opts *projectFlags) *cobra.Command {
	cmd.Flags().StringVarP(&opts.ProjectRoot, "project", "p", ".", "Root of the React Native project.")
	cmd.Flags().StringVarP(&opts.ConfigPath, "config", "c", "", "Path to "+seed.ConfigName+" (default <project>/"+seed.ConfigName+").")
	return cmd
}

type projectFlags struct {
	ProjectRoot string
	ConfigPath  string
}
