package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vibelang/vbl/internal/errors"
	"github.com/vibelang/vbl/internal/verifier"
	"github.com/vibelang/vbl/pkg/vbl"
)

var (
	compileOutputFile string
	compileLevel      string
	compileColor      bool
)

var compileCmd = &cobra.Command{
	Use:   "compile [file]",
	Short: "Run the full pipeline and emit target source",
	Long: `Compile a VibeLang program: lex, parse, type-check, verify,
optimize, and emit target source text.

Preconditions and postconditions that the verifier could not prove are
lowered to runtime assertions; any refuted contract is a compile error.

Examples:
  vbl compile program.vbl
  vbl compile program.vbl -o program.out
  vbl compile --level full program.vbl`,
	Args: cobra.ExactArgs(1),
	RunE: runCompile,
}

func init() {
	rootCmd.AddCommand(compileCmd)
	compileCmd.Flags().StringVarP(&compileOutputFile, "output", "o", "", "output file (default: stdout)")
	compileCmd.Flags().StringVar(&compileLevel, "level", "hybrid", "verification level: none, runtime, hybrid, or full")
	compileCmd.Flags().BoolVar(&compileColor, "color", false, "colorize diagnostic output")
}

func runCompile(cmd *cobra.Command, args []string) error {
	filename := args[0]
	content, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	source := string(content)

	level, err := verifier.ParseLevel(compileLevel)
	if err != nil {
		return err
	}

	verbose, _ := cmd.Flags().GetBool("verbose")
	if verbose {
		fmt.Fprintf(os.Stderr, "Compiling %s...\n", filename)
	}

	result := vbl.Compile(source, vbl.Options{Level: level})
	if len(result.Diagnostics) > 0 {
		fmt.Fprint(os.Stderr, errors.FormatAll(result.Diagnostics, source, compileColor))
	}
	if result.HasErrors() {
		return fmt.Errorf("compiling %s failed with %d error(s)", filename, result.Diagnostics.ErrorCount())
	}

	if compileOutputFile == "" {
		fmt.Print(result.Output)
		return nil
	}
	if err := os.WriteFile(compileOutputFile, []byte(result.Output), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", compileOutputFile, err)
	}
	return nil
}
