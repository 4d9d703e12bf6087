package cmd

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runCLI executes rootCmd with args, capturing whatever the subcommand
// wrote to the real os.Stdout (the subcommands print directly with
// fmt.Print, so stdout must be redirected at the file-descriptor level
// rather than via cobra's SetOut).
func runCLI(t *testing.T, args ...string) (stdout string, err error) {
	t.Helper()

	r, w, pipeErr := os.Pipe()
	require.NoError(t, pipeErr)
	orig := os.Stdout
	os.Stdout = w

	rootCmd.SetArgs(args)
	err = rootCmd.Execute()

	w.Close()
	os.Stdout = orig

	out, readErr := io.ReadAll(r)
	require.NoError(t, readErr)
	return string(out), err
}

const sampleProgram = `define add(a: Int, b: Int) -> Int
  expect a >= 0
  expect b >= 0
  ensure result >= 0
given
  a + b
`

func writeSample(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sample.vbl")
	require.NoError(t, os.WriteFile(path, []byte(sampleProgram), 0o644))
	return path
}

func TestLexCommandTokenizesFile(t *testing.T) {
	path := writeSample(t)
	out, err := runCLI(t, "lex", path)
	require.NoError(t, err)
	assert.Contains(t, out, "DEFINE")
	assert.Contains(t, out, "IDENT")
}

func TestLexCommandEvalExpression(t *testing.T) {
	out, err := runCLI(t, "lex", "-e", "let x = 1")
	require.NoError(t, err)
	assert.Contains(t, out, "LET")
}

func TestParseCommandPrintsAstSummary(t *testing.T) {
	path := writeSample(t)
	out, err := runCLI(t, "parse", path)
	require.NoError(t, err)
	assert.Contains(t, out, "(define add")
	assert.Contains(t, out, "(expect")
	assert.Contains(t, out, "(ensure")
}

func TestCheckCommandReportsNoErrorsOnValidProgram(t *testing.T) {
	path := writeSample(t)
	_, err := runCLI(t, "check", path)
	assert.NoError(t, err)
}

func TestCheckCommandFailsOnTypeError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.vbl")
	require.NoError(t, os.WriteFile(path, []byte("define f() -> Int\ngiven\n  true\n"), 0o644))

	out, err := runCLI(t, "check", path)
	assert.Error(t, err)
	assert.NotEmpty(t, out)
}

func TestVerifyCommandReportsProvenContract(t *testing.T) {
	path := writeSample(t)
	out, err := runCLI(t, "verify", path)
	require.NoError(t, err)
	assert.True(t, strings.Contains("\n"+out, "\nproven: add ensure (result >= 0)"))
}

func TestFmtCommandIsIdempotent(t *testing.T) {
	path := writeSample(t)
	first, err := runCLI(t, "fmt", path)
	require.NoError(t, err)

	formattedPath := filepath.Join(t.TempDir(), "formatted.vbl")
	require.NoError(t, os.WriteFile(formattedPath, []byte(first), 0o644))

	second, err := runCLI(t, "fmt", formattedPath)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestCompileCommandEmitsOutput(t *testing.T) {
	path := writeSample(t)
	out, err := runCLI(t, "compile", path)
	require.NoError(t, err)
	assert.Contains(t, out, "func add")
}

func TestCompileCommandWritesToOutputFile(t *testing.T) {
	path := writeSample(t)
	outPath := filepath.Join(t.TempDir(), "out.txt")
	_, err := runCLI(t, "compile", path, "-o", outPath)
	require.NoError(t, err)

	content, readErr := os.ReadFile(outPath)
	require.NoError(t, readErr)
	assert.Contains(t, string(content), "func add")
}
