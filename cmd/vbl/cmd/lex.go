package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vibelang/vbl/internal/lexer"
)

var (
	lexEvalExpr string
	lexShowPos  bool
)

var lexCmd = &cobra.Command{
	Use:   "lex [file]",
	Short: "Tokenize a VibeLang file or expression",
	Long: `Tokenize (lex) a VibeLang program and print the resulting tokens,
one per line, in the form KIND("literal")@line:col.

Examples:
  # Tokenize a source file
  vbl lex program.vbl

  # Tokenize an inline expression
  vbl lex -e "let x = 1"

  # Read from stdin
  cat program.vbl | vbl lex`,
	Args: cobra.MaximumNArgs(1),
	RunE: runLex,
}

func init() {
	rootCmd.AddCommand(lexCmd)
	lexCmd.Flags().StringVarP(&lexEvalExpr, "eval", "e", "", "tokenize inline code instead of reading from a file")
	lexCmd.Flags().BoolVar(&lexShowPos, "show-pos", true, "show token positions (line:column)")
}

func runLex(cmd *cobra.Command, args []string) error {
	source, label, err := readInput(lexEvalExpr, args)
	if err != nil {
		return err
	}

	verbose, _ := cmd.Flags().GetBool("verbose")
	if verbose {
		fmt.Fprintf(os.Stderr, "Tokenizing: %s (%d bytes)\n", label, len(source))
	}

	tokens, lexErrs := lexer.Tokenize(source)
	for _, tok := range tokens {
		printToken(tok)
	}

	if len(lexErrs) > 0 {
		for _, e := range lexErrs {
			fmt.Fprintf(os.Stderr, "%s: %s\n", e.Pos, e.Message)
		}
		return fmt.Errorf("found %d lexical error(s)", len(lexErrs))
	}
	return nil
}

func printToken(tok lexer.Token) {
	if lexShowPos {
		fmt.Println(tok.String())
		return
	}
	fmt.Printf("%s(%q)\n", tok.Kind, tok.Literal)
}
