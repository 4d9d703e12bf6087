package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vibelang/vbl/internal/errors"
	"github.com/vibelang/vbl/internal/optimizer"
	"github.com/vibelang/vbl/pkg/printer"
	"github.com/vibelang/vbl/pkg/vbl"
)

var (
	optimizeEvalExpr string
	optimizeColor    bool
)

var optimizeCmd = &cobra.Command{
	Use:   "optimize [file]",
	Short: "Run the optimizer and print the rewritten source",
	Long: `Parse and type-check a VibeLang program, run the constant-folding
and dead-branch-elimination optimizer to a fixpoint, and print the
rewritten program in canonical form.

Examples:
  vbl optimize program.vbl
  vbl optimize -v program.vbl   # also report the rewrite count`,
	Args: cobra.MaximumNArgs(1),
	RunE: runOptimize,
}

func init() {
	rootCmd.AddCommand(optimizeCmd)
	optimizeCmd.Flags().StringVarP(&optimizeEvalExpr, "eval", "e", "", "optimize inline code instead of reading from a file")
	optimizeCmd.Flags().BoolVar(&optimizeColor, "color", false, "colorize diagnostic output")
}

func runOptimize(cmd *cobra.Command, args []string) error {
	source, label, err := readInput(optimizeEvalExpr, args)
	if err != nil {
		return err
	}

	program, diags, perr := vbl.Check(source)
	if perr != nil {
		diag := errors.Diagnostic{Severity: errors.SeverityError, Kind: errors.KindSyntactic, Message: perr.Message, Pos: perr.Pos}
		fmt.Print(diag.FormatWithSource(source, optimizeColor))
		return fmt.Errorf("parsing %s failed", label)
	}
	if diags.HasErrors() {
		fmt.Print(errors.FormatAll(*diags, source, optimizeColor))
		return fmt.Errorf("type checking %s found %d error(s)", label, diags.ErrorCount())
	}

	result := optimizer.Optimize(program)
	out := printer.New(printer.Options{}).Print(result.Program)
	fmt.Print(out)

	verbose, _ := cmd.Flags().GetBool("verbose")
	if verbose {
		fmt.Printf("-- %d rewrite(s) applied\n", result.Rewrites)
	}
	return nil
}
