package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Version information (set by build flags)
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var (
	interactive bool
	runTests    bool
	sourcePath  string
)

var rootCmd = &cobra.Command{
	Use:   "jsvm [path]",
	Short: "A small JavaScript execution engine",
	Long: `jsvm lexes, parses, and evaluates a JavaScript-subset program:
a tree-walking engine with a prototype-chain object model and a small
standard library (console, Math, JSON, Object, Array, URI codecs, ...).

Examples:
  # Run a script file
  jsvm script.js

  # Same, via the explicit flag
  jsvm -s script.js

  # Drop into an interactive REPL
  jsvm -i

  # Run every *.js file under a tests directory, reporting pass/fail
  jsvm -t`,
	Version: Version,
	Args:    cobra.MaximumNArgs(1),
	RunE:    runRoot,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
Built:  %s
`, GitCommit, BuildDate))

	rootCmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "start an interactive REPL")
	rootCmd.Flags().BoolVarP(&runTests, "tests", "t", false, "run every *.js file under a tests directory and report results")
	rootCmd.Flags().StringVarP(&sourcePath, "source-code", "s", "", "path to a script file to run")
}

func runRoot(_ *cobra.Command, args []string) error {
	switch {
	case interactive:
		return runInteractive(os.Stdin, os.Stdout)
	case runTests:
		return runTestsMode(os.Stdout)
	default:
		path := sourcePath
		if path == "" && len(args) == 1 {
			path = args[0]
		}
		if path == "" {
			return fmt.Errorf("provide a script path, or use -i for a REPL or -t to run tests")
		}
		return runSource(path, os.Stdout)
	}
}

