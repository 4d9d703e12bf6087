package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Version information (set by build flags)
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "vbl",
	Short: "VibeLang compiler front-end",
	Long: `vbl is the reference front-end for VibeLang: a small, statically
typed language with design-by-contract preconditions and postconditions.

It runs the pipeline lex -> parse -> type-check -> verify -> optimize ->
emit, and exposes each stage as its own subcommand so the pipeline can be
inspected one step at a time:

  vbl lex FILE       tokenize and print the token stream
  vbl parse FILE      parse and print an AST summary
  vbl check FILE      type-check and report diagnostics
  vbl verify FILE      discharge contracts and report their status
  vbl optimize FILE    run the optimizer and print the rewritten source
  vbl fmt FILE       canonically reformat source
  vbl compile FILE    run the full pipeline and emit target source`,
	Version: Version,
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

	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output")
}

func exitWithError(msg string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+msg+"\n", args...)
	os.Exit(1)
}

// readInput returns source text from the -e/--eval flag if set, from the
// named file if one argument is given, or from stdin otherwise.
func readInput(evalExpr string, args []string) (source, label string, err error) {
	if evalExpr != "" {
		return evalExpr, "<eval>", nil
	}
	if len(args) == 1 {
		content, readErr := os.ReadFile(args[0])
		if readErr != nil {
			return "", "", fmt.Errorf("failed to read file %s: %w", args[0], readErr)
		}
		return string(content), args[0], nil
	}
	content, readErr := readStdin()
	if readErr != nil {
		return "", "", readErr
	}
	return content, "<stdin>", nil
}

func readStdin() (string, error) {
	content, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", fmt.Errorf("failed to read stdin: %w", err)
	}
	return string(content), nil
}
