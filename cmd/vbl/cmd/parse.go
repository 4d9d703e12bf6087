package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vibelang/vbl/internal/errors"
	"github.com/vibelang/vbl/internal/lexer"
	"github.com/vibelang/vbl/internal/parser"
)

var parseEvalExpr string

var parseCmd = &cobra.Command{
	Use:   "parse [file]",
	Short: "Parse a VibeLang file and print an AST summary",
	Long: `Parse (lex + parse) a VibeLang program and print an indented,
s-expression-like summary of the resulting AST.

Examples:
  vbl parse program.vbl
  vbl parse -e "let x = 1"`,
	Args: cobra.MaximumNArgs(1),
	RunE: runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)
	parseCmd.Flags().StringVarP(&parseEvalExpr, "eval", "e", "", "parse inline code instead of reading from a file")
}

func runParse(cmd *cobra.Command, args []string) error {
	source, label, err := readInput(parseEvalExpr, args)
	if err != nil {
		return err
	}

	program, perr := parser.ParseProgram(lexer.New(source))
	if perr != nil {
		diag := errors.Diagnostic{Severity: errors.SeverityError, Kind: errors.KindSyntactic, Message: perr.Message, Pos: perr.Pos}
		fmt.Fprintln(os.Stderr, diag.FormatWithSource(source, false))
		return fmt.Errorf("parsing %s failed", label)
	}

	fmt.Print(dumpProgram(program))
	return nil
}
