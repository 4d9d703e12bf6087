// Package vbl is VibeLang's embeddable pipeline entry point: one call
// runs lex→parse→type-check→verify→optimize→emit and returns every
// stage's diagnostics in source order, for host programs that don't want
// to wire the pipeline themselves.
package vbl

import (
	"github.com/vibelang/vbl/internal/ast"
	"github.com/vibelang/vbl/internal/emitter"
	"github.com/vibelang/vbl/internal/errors"
	"github.com/vibelang/vbl/internal/lexer"
	"github.com/vibelang/vbl/internal/optimizer"
	"github.com/vibelang/vbl/internal/parser"
	"github.com/vibelang/vbl/internal/semantic"
	"github.com/vibelang/vbl/internal/verifier"
)

// Options configures a Compile (or any narrower stage) run. The zero
// value has Level LevelNone, so it runs no verification; DefaultOptions
// gives hybrid verification with no oracle timeout, matching
// internal/config.Default().
type Options struct {
	Level     verifier.Level
	TimeoutMS int
}

// DefaultOptions returns the pipeline's documented default: hybrid
// verification, no oracle timeout.
func DefaultOptions() Options {
	return Options{Level: verifier.LevelHybrid}
}

// Result aggregates every stage a Compile run reached. Program is the
// final (optimized, verified) tree; Output is the emitted target text,
// populated only if every earlier stage succeeded. Diagnostics carries
// every error and warning accumulated across all stages that ran, in the
// order they were produced.
type Result struct {
	Tokens      []lexer.Token
	Program     *ast.Program
	Rewrites    int
	Output      string
	Diagnostics errors.Diagnostics
}

// HasErrors reports whether any stage that ran left an error-severity
// diagnostic.
func (r Result) HasErrors() bool {
	return r.Diagnostics.HasErrors()
}

// Lex tokenizes source and returns its token stream plus any lexical
// errors, without parsing.
func Lex(source string) ([]lexer.Token, []lexer.LexError) {
	return lexer.Tokenize(source)
}

// Parse lexes and parses source, stopping at the first syntax error.
func Parse(source string) (*ast.Program, *parser.ParserError) {
	return parser.ParseProgram(lexer.New(source))
}

// Check parses source and runs the full semantic pass pipeline
// (declaration, validation, contract), returning the annotated program
// and every diagnostic the passes produced. It does not verify or
// optimize.
func Check(source string) (*ast.Program, *errors.Diagnostics, *parser.ParserError) {
	program, perr := Parse(source)
	if perr != nil {
		return nil, nil, perr
	}

	ctx := semantic.NewContext()
	pm := semantic.NewPassManager(
		semantic.NewDeclarationPass(),
		semantic.NewValidationPass(),
		semantic.NewContractPass(),
	)
	_ = pm.RunAll(program, ctx)
	return program, ctx.Diagnostics, nil
}

// Compile runs the full pipeline: lex, parse, check, verify, optimize,
// emit. It stops (leaving Output empty) as soon as a stage leaves
// error-severity diagnostics, mirroring halt-on-error propagation policy.
func Compile(source string, opts Options) Result {
	var result Result

	tokens, lexErrs := lexer.Tokenize(source)
	result.Tokens = tokens
	for _, le := range lexErrs {
		result.Diagnostics.Errorf(errors.KindLexical, le.Pos, "%s", le.Message)
	}
	if result.Diagnostics.HasErrors() {
		return result
	}

	program, perr := parser.ParseProgram(lexer.New(source))
	if perr != nil {
		result.Diagnostics.Errorf(errors.KindSyntactic, perr.Pos, "%s", perr.Message)
		return result
	}
	result.Program = program

	ctx := semantic.NewContext()
	pm := semantic.NewPassManager(
		semantic.NewDeclarationPass(),
		semantic.NewValidationPass(),
		semantic.NewContractPass(),
	)
	if err := pm.RunAll(program, ctx); err != nil {
		result.Diagnostics.Errorf(errors.KindInternal, lexer.Position{}, "%s", err.Error())
		return result
	}
	result.Diagnostics = append(result.Diagnostics, *ctx.Diagnostics...)
	if ctx.Diagnostics.HasErrors() {
		return result
	}

	level := opts.Level
	verifyDiags := &errors.Diagnostics{}
	v := verifier.New(level, opts.TimeoutMS, verifyDiags)
	v.VerifyProgram(program)
	result.Diagnostics = append(result.Diagnostics, *verifyDiags...)
	if verifyDiags.HasErrors() {
		return result
	}

	opt := optimizer.Optimize(program)
	result.Program = opt.Program
	result.Rewrites = opt.Rewrites

	emitDiags := &errors.Diagnostics{}
	em := emitter.New(level, emitDiags)
	output := em.Emit(opt.Program)
	result.Diagnostics = append(result.Diagnostics, *emitDiags...)
	if emitDiags.HasErrors() {
		return result
	}
	result.Output = output
	return result
}
