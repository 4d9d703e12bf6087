package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vibelang/vbl/internal/lexer"
	"github.com/vibelang/vbl/internal/parser"
	"github.com/vibelang/vbl/pkg/printer"
)

var (
	fmtWrite     bool // -w: write result to (source) file instead of stdout
	fmtList      bool // -l: list files whose formatting differs
	fmtDiff      bool // -d: display diffs instead of rewriting files
	fmtRecursive bool // -r: process directories recursively
	fmtIndent    int  // --indent: number of spaces per indentation level
)

var fmtCmd = &cobra.Command{
	Use:   "fmt [files or directories...]",
	Short: "Canonically reformat VibeLang source files",
	Long: `Format VibeLang source files using the AST-driven canonical
printer: parses each file and pretty-prints it back with consistent,
idempotent formatting.

By default, fmt formats the named files and writes the result to
standard output. If no path is given, it reads from standard input.

Examples:
  vbl fmt program.vbl            # format to stdout
  vbl fmt -w program.vbl          # overwrite the file with its formatted form
  vbl fmt -l -r src/              # list files under src/ that need formatting
  vbl fmt -d program.vbl          # show a diff of the changes`,
	RunE: runFmt,
}

func init() {
	rootCmd.AddCommand(fmtCmd)

	fmtCmd.Flags().BoolVarP(&fmtWrite, "write", "w", false, "write result to (source) file instead of stdout")
	fmtCmd.Flags().BoolVarP(&fmtList, "list", "l", false, "list files whose formatting differs")
	fmtCmd.Flags().BoolVarP(&fmtDiff, "diff", "d", false, "display diffs instead of rewriting files")
	fmtCmd.Flags().BoolVarP(&fmtRecursive, "recursive", "r", false, "process directories recursively")
	fmtCmd.Flags().IntVar(&fmtIndent, "indent", 2, "number of spaces per indentation level")
}

func runFmt(cmd *cobra.Command, args []string) error {
	if fmtWrite && fmtList {
		return fmt.Errorf("cannot use -w and -l together")
	}
	if fmtWrite && fmtDiff {
		return fmt.Errorf("cannot use -w and -d together")
	}

	opts := printer.Options{IndentWidth: fmtIndent}

	if len(args) == 0 {
		return formatStdin(opts)
	}

	hasErrors := false
	for _, path := range args {
		if err := processPath(path, opts); err != nil {
			fmt.Fprintf(os.Stderr, "Error processing %s: %v\n", path, err)
			hasErrors = true
		}
	}
	if hasErrors {
		return fmt.Errorf("formatting failed for one or more files")
	}
	return nil
}

func processPath(path string, opts printer.Options) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if info.IsDir() {
		if fmtRecursive {
			return processDirectory(path, opts)
		}
		return fmt.Errorf("%s is a directory (use -r to format recursively)", path)
	}
	return formatFile(path, opts)
}

func processDirectory(dir string, opts printer.Options) error {
	return filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() || filepath.Ext(path) != ".vbl" {
			return nil
		}
		return formatFile(path, opts)
	})
}

func formatStdin(opts printer.Options) error {
	content, err := readStdin()
	if err != nil {
		return err
	}
	formatted, err := formatSource(content, opts)
	if err != nil {
		return err
	}
	fmt.Print(formatted)
	return nil
}

func formatFile(filename string, opts printer.Options) error {
	src, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("error reading file: %w", err)
	}
	original := string(src)

	formatted, err := formatSource(original, opts)
	if err != nil {
		return err
	}
	changed := original != formatted

	switch {
	case fmtList:
		if changed {
			fmt.Println(filename)
		}
	case fmtDiff:
		if changed {
			fmt.Printf("--- %s (original)\n", filename)
			fmt.Printf("+++ %s (formatted)\n", filename)
			showDiff(original, formatted)
		}
	case fmtWrite:
		if changed {
			if err := os.WriteFile(filename, []byte(formatted), 0o644); err != nil {
				return fmt.Errorf("error writing file: %w", err)
			}
		}
	default:
		fmt.Print(formatted)
	}
	return nil
}

// formatSource parses and formats source code.
func formatSource(source string, opts printer.Options) (string, error) {
	program, perr := parser.ParseProgram(lexer.New(source))
	if perr != nil {
		return "", fmt.Errorf("parse error: %s at %s", perr.Message, perr.Pos)
	}
	return printer.New(opts).Print(program), nil
}

// showDiff shows a simple line-by-line diff.
func showDiff(original, formatted string) {
	origLines := strings.Split(original, "\n")
	fmtLines := strings.Split(formatted, "\n")

	maxLines := len(origLines)
	if len(fmtLines) > maxLines {
		maxLines = len(fmtLines)
	}
	for i := 0; i < maxLines; i++ {
		var origLine, fmtLine string
		if i < len(origLines) {
			origLine = origLines[i]
		}
		if i < len(fmtLines) {
			fmtLine = fmtLines[i]
		}
		if origLine != fmtLine {
			if origLine != "" {
				fmt.Printf("- %s\n", origLine)
			}
			if fmtLine != "" {
				fmt.Printf("+ %s\n", fmtLine)
			}
		}
	}
}

// FormatBytes formats source code provided as bytes, for host programs
// embedding this package.
func FormatBytes(src []byte, opts printer.Options) ([]byte, error) {
	formatted, err := formatSource(string(src), opts)
	if err != nil {
		return nil, err
	}
	return []byte(formatted), nil
}
