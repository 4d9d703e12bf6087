package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vibelang/vbl/internal/errors"
	"github.com/vibelang/vbl/internal/lexer"
	"github.com/vibelang/vbl/internal/parser"
	"github.com/vibelang/vbl/internal/semantic"
)

var (
	checkEvalExpr string
	checkColor    bool
)

var checkCmd = &cobra.Command{
	Use:   "check [file]",
	Short: "Type-check a VibeLang file and report diagnostics",
	Long: `Parse and type-check a VibeLang program, printing each diagnostic
with its source line and a caret, and exiting non-zero if any diagnostic
is error severity.

Examples:
  vbl check program.vbl
  vbl check --color program.vbl`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
	checkCmd.Flags().StringVarP(&checkEvalExpr, "eval", "e", "", "check inline code instead of reading from a file")
	checkCmd.Flags().BoolVar(&checkColor, "color", false, "colorize diagnostic output")
}

func runCheck(cmd *cobra.Command, args []string) error {
	source, label, err := readInput(checkEvalExpr, args)
	if err != nil {
		return err
	}

	program, perr := parser.ParseProgram(lexer.New(source))
	if perr != nil {
		diag := errors.Diagnostic{Severity: errors.SeverityError, Kind: errors.KindSyntactic, Message: perr.Message, Pos: perr.Pos}
		fmt.Fprintln(os.Stderr, diag.FormatWithSource(source, checkColor))
		return fmt.Errorf("parsing %s failed", label)
	}

	ctx := semantic.NewContext()
	pm := semantic.NewPassManager(
		semantic.NewDeclarationPass(),
		semantic.NewValidationPass(),
		semantic.NewContractPass(),
	)
	if err := pm.RunAll(program, ctx); err != nil {
		return err
	}

	fmt.Print(errors.FormatAll(*ctx.Diagnostics, source, checkColor))
	if ctx.Diagnostics.HasErrors() {
		return fmt.Errorf("type checking %s found %d error(s)", label, ctx.Diagnostics.ErrorCount())
	}
	return nil
}
