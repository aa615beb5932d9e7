package cmd

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/scribble-notes/scribble/internal/config"
	"github.com/scribble-notes/scribble/internal/config/autoconfig"
	"github.com/scribble-notes/scribble/internal/log"
)

var (
	fConfigDir string
	fNotesDir  string
	fVerbose   bool
	fLogPath   string

	// builder and cfg are set up before any command runs.
	builder *autoconfig.Builder
	cfg     *config.Config
)

func Root() *cobra.Command {
	cmd := cobra.Command{
		Use:           "scribble",
		Short:         "Keep sticky notes as plain Markdown files",
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			builder = autoconfig.NewBuilder()
			if err := builder.Decorate(func() *config.Loader {
				return autoconfig.NewLoader(fConfigDir)
			}); err != nil {
				return err
			}
			if err := builder.Decorate(applyFlags); err != nil {
				return err
			}
			return builder.Invoke(func(c *config.Config, logger *zap.Logger) {
				cfg = c
				logger.Debug("final configuration", zap.Any("config", cfg))
			})
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			log.Flush()
		},
	}

	pflags := cmd.PersistentFlags()

	pflags.StringVar(&fConfigDir, "config-dir", config.DefaultConfigDir(), "Directory with the scribble.yaml configuration file.")
	pflags.StringVar(&fNotesDir, "notes-dir", "", "Directory with note files. Overrides the configuration.")
	pflags.BoolVar(&fVerbose, "verbose", false, "Enable debug logging.")
	pflags.StringVar(&fLogPath, "log", "", "Write logs to this file. Use \"stderr\" to log to the terminal.")

	cmd.AddCommand(fmtCmd())
	cmd.AddCommand(htmlCmd())
	cmd.AddCommand(markdownCmd())
	cmd.AddCommand(convertCmd())
	cmd.AddCommand(metaCmd())
	cmd.AddCommand(treeCmd())
	cmd.AddCommand(previewCmd())
	cmd.AddCommand(listCmd())
	cmd.AddCommand(newCmd())
	cmd.AddCommand(rmCmd())
	cmd.AddCommand(watchCmd())
	cmd.AddCommand(exportCmd())

	return &cmd
}

// applyFlags lets command-line flags take precedence over the
// configuration file.
func applyFlags(c *config.Config) *config.Config {
	if fNotesDir != "" {
		c.Notes.Dir = fNotesDir
	}
	if fLogPath != "" {
		c.Log.Path = fLogPath
		c.Log.Enabled = true
	}
	if fVerbose {
		c.Log.Verbose = true
		c.Log.Enabled = true
	}
	return c
}
