package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vibelang/vbl/internal/ast"
	"github.com/vibelang/vbl/internal/errors"
	"github.com/vibelang/vbl/internal/verifier"
	"github.com/vibelang/vbl/pkg/vbl"
)

var (
	verifyEvalExpr string
	verifyLevel    string
	verifyColor    bool
)

var verifyCmd = &cobra.Command{
	Use:   "verify [file]",
	Short: "Discharge contracts and report their verification status",
	Long: `Parse, type-check, and verify a VibeLang program, printing one
status line per precondition/postcondition/invariant (proven, unproven,
or refuted) and exiting non-zero if any contract is refuted, or unproven
under --level full.

Examples:
  vbl verify program.vbl
  vbl verify --level full program.vbl`,
	Args: cobra.MaximumNArgs(1),
	RunE: runVerify,
}

func init() {
	rootCmd.AddCommand(verifyCmd)
	verifyCmd.Flags().StringVarP(&verifyEvalExpr, "eval", "e", "", "verify inline code instead of reading from a file")
	verifyCmd.Flags().StringVar(&verifyLevel, "level", "hybrid", "verification level: none, runtime, hybrid, or full")
	verifyCmd.Flags().BoolVar(&verifyColor, "color", false, "colorize diagnostic output")
}

func runVerify(cmd *cobra.Command, args []string) error {
	source, label, err := readInput(verifyEvalExpr, args)
	if err != nil {
		return err
	}

	level, err := verifier.ParseLevel(verifyLevel)
	if err != nil {
		return err
	}

	program, diags, perr := vbl.Check(source)
	if perr != nil {
		diag := errors.Diagnostic{Severity: errors.SeverityError, Kind: errors.KindSyntactic, Message: perr.Message, Pos: perr.Pos}
		fmt.Print(diag.FormatWithSource(source, verifyColor))
		return fmt.Errorf("parsing %s failed", label)
	}
	if diags.HasErrors() {
		fmt.Print(errors.FormatAll(*diags, source, verifyColor))
		return fmt.Errorf("type checking %s found %d error(s)", label, diags.ErrorCount())
	}

	verifyDiags := &errors.Diagnostics{}
	v := verifier.New(level, 0, verifyDiags)
	v.VerifyProgram(program)

	count := reportContracts(program)
	if len(*verifyDiags) > 0 {
		fmt.Print(errors.FormatAll(*verifyDiags, source, verifyColor))
	}
	if verifyDiags.HasErrors() {
		return fmt.Errorf("verification of %s failed", label)
	}
	if count == 0 {
		fmt.Println("no contracts")
	}
	return nil
}

// reportContracts prints one "status: owner kind expr -- line:col" line
// per contract found in program (a refuted contract's line also carries
// its witness) and returns how many were printed.
func reportContracts(program *ast.Program) int {
	count := 0
	for _, decl := range program.Declarations {
		switch d := decl.(type) {
		case *ast.FunctionDecl:
			for _, c := range d.Preconditions {
				printContractLine(d.Name, "expect", c)
				count++
			}
			for _, c := range d.Postconditions {
				printContractLine(d.Name, "ensure", c)
				count++
			}
		case *ast.TypeDecl:
			for _, c := range d.Invariants {
				printContractLine(d.Name, "invariant", c)
				count++
			}
		}
	}
	return count
}

func printContractLine(owner, kind string, c *ast.Contract) {
	status := c.Status.String()
	if c.Status == ast.StatusRefuted && c.Witness != "" {
		fmt.Printf("%s: %s %s %s -- %s (witness: %s)\n", status, owner, kind, c.Expr.String(), c.Pos(), c.Witness)
		return
	}
	fmt.Printf("%s: %s %s %s -- %s\n", status, owner, kind, c.Expr.String(), c.Pos())
}
