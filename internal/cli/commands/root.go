package commands

import (
	"runtime"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	// Version information - set at build time
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
	GoVersion = "unknown"
)

// NewRootCommand creates the root command
func NewRootCommand() *cobra.Command {
	return newRootCommand(newEnv())
}

func newRootCommand(e *env) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "sugar",
		Short: "Inspect declared workflow and activity metadata",
		Long: color.CyanString(`sugar - declarative metadata for workflow option builders

Types, their supertypes and their attributes (task queues, retry policies) are
declared in YAML or TOML files. sugar resolves which attributes apply to a type
through its superclasses and interfaces, and shows the workflow and activity
options built from them.`),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return e.setup(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			e.sync()
		},
	}

	e.bindFlags(rootCmd)

	// Add subcommands
	rootCmd.AddCommand(NewVersionCommand())
	rootCmd.AddCommand(newResolveCommand(e))
	rootCmd.AddCommand(newOptionsCommand(e))
	rootCmd.AddCommand(newTypesCommand(e))
	rootCmd.AddCommand(NewCompletionCommand())

	return rootCmd
}

// NewVersionCommand creates the version command
func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  "Display the sugar version, Git commit, build date, and Go version",
		// Version needs no configuration
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
		Run: func(cmd *cobra.Command, args []string) {
			goVer := GoVersion
			if goVer == "unknown" {
				goVer = runtime.Version()
			}

			w := cmd.OutOrStdout()
			noColor, _ := cmd.Flags().GetBool("no-color")
			title := color.New(color.FgCyan, color.Bold)
			value := color.New(color.FgWhite)
			if noColor {
				title.DisableColor()
				value.DisableColor()
			}
			for _, line := range [][2]string{
				{"sugar version: ", Version},
				{"Git commit: ", GitCommit},
				{"Build date: ", BuildDate},
				{"Go version: ", goVer},
			} {
				title.Fprint(w, line[0])
				value.Fprintln(w, line[1])
			}
		},
	}
}

// Execute runs the root command
func Execute() error {
	e := newEnv()
	rootCmd := newRootCommand(e)
	if err := rootCmd.Execute(); err != nil {
		renderError(rootCmd.ErrOrStderr(), err, e.noColor())
		return err
	}
	return nil
}
