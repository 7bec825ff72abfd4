package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/tsbuildhq/tsbuild/cmd/order"
	"github.com/tsbuildhq/tsbuild/compiler"
	"github.com/tsbuildhq/tsbuild/solution"
)

// version is set via build-time ldflags
var version = "dev"

var (
	verbose bool
	dry     bool
	force   bool
	clean   bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "tsbuild [projects...]",
	Short: "Incremental build orchestrator for referenced projects",
	Long: `tsbuild builds solutions: sets of projects related by explicit
references in their tsconfig.json manifests. Given one or more root
projects it walks the reference graph, decides per project whether it
is up to date, needs rebuilding, can be fast-stamped, or is blocked by
an upstream failure, and executes the plan in dependency order.

With no arguments the current directory is built.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(cmd.OutOrStdout(), args)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(order.OrderCmd)

	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Report the status of every project")
	rootCmd.Flags().BoolVarP(&dry, "dry", "d", false, "Report what would be built without writing anything")
	rootCmd.Flags().BoolVarP(&force, "force", "f", false, "Rebuild every project regardless of status")
	rootCmd.Flags().BoolVar(&clean, "clean", false, "Delete the outputs of the given projects instead of building")
}

func run(out io.Writer, args []string) error {
	report, errorCount := newCountingReporter(out)
	builder := solution.NewBuilder(
		compiler.NewSystemHost(),
		report,
		compiler.PassthroughFactory,
		solution.BuildOptions{Dry: dry, Force: force, Verbose: verbose},
	)

	var err error
	if clean {
		err = builder.CleanProjects(args)
	} else {
		err = builder.BuildProjects(args)
	}
	if err != nil {
		return err
	}
	if *errorCount > 0 {
		return fmt.Errorf("completed with %d error(s)", *errorCount)
	}
	return nil
}

// newCountingReporter prints diagnostics to out and counts the
// error-category ones; the count decides the process exit status.
func newCountingReporter(out io.Writer) (compiler.DiagnosticReporter, *int) {
	count := new(int)
	return func(d compiler.Diagnostic) {
		if d.Category == compiler.CategoryError {
			*count++
		}
		fmt.Fprintf(out, "%s: %s\n", d.Category, d.Message)
	}, count
}
