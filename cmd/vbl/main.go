// Command vbl is the VibeLang compiler front-end CLI, wiring together
// the lex/parse/check/verify/optimize/fmt/compile subcommands under
// cmd/vbl/cmd.
package main

import (
	"os"

	"github.com/vibelang/vbl/cmd/vbl/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
