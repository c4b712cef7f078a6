package command

import (
	"context"
	"fmt"

	"github.com/frantjc/seed"
	"github.com/frantjc/seed/internal/seederr"
	"github.com/frantjc/seed/setup"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// NewSeed returns the root command for
// seed which acts as its CLI entrypoint.
func NewSeed() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Configure the native projects of an Apptile app from " + seed.ConfigName,
		Args:  noArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return seederr.Usage(fmt.Errorf("%s requires a subcommand", cmd.Name()))
		},
	}

	cmd.AddCommand(
		newPlatform("android", "Configure the Android project", setup.RunAndroid),
		newPlatform("ios", "Configure the iOS project", setup.RunIOS),
		newStatus(),
	)

	return SetCommon(cmd, seed.SemVer())
}

func newPlatform(use, short string, run func(context.Context, *setup.Options) error) *cobra.Command {
	var (
		flags         = &projectFlags{}
		iconsetScript string
		cmd           = &cobra.Command{
			Use:   use,
			Short: short,
			Args:  noArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return run(cmd.Context(), &setup.Options{
					ProjectRoot:   flags.ProjectRoot,
					ConfigPath:    flags.ConfigPath,
					IconsetScript: iconsetScript,
				})
			},
		}
	)

	cmd.Flags().StringVar(&iconsetScript, "iconset-script", "", "Icon set generator to run instead of the one under SDK_PATH.")

	return setProjectFlags(cmd, flags)
}

func newStatus() *cobra.Command {
	var (
		flags = &projectFlags{}
		cmd   = &cobra.Command{
			Use:   "status",
			Short: "Compare the feature flags with what is autolinked",
			Args:  noArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				statuses, err := setup.Status(cmd.Context(), &setup.Options{
					ProjectRoot: flags.ProjectRoot,
					ConfigPath:  flags.ConfigPath,
				})
				if err != nil {
					return err
				}

				enc := yaml.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent(2)
				defer enc.Close()

				return enc.Encode(statuses)
			},
		}
	)

	return setProjectFlags(cmd, flags)
}

func noArgs(cmd *cobra.Command, args []string) error {
	return seederr.Usage(cobra.NoArgs(cmd, args))
}
