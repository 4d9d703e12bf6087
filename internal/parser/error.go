package parser

import (
	"fmt"

	"github.com/vibelang/vbl/internal/lexer"
)

// ParserError is a structured syntax diagnostic carrying a message, a
// stable error code, and the offending token's position.
type ParserError struct {
	Message string
	Code    string
	Pos     lexer.Position
}

func (e *ParserError) Error() string {
	return fmt.Sprintf("%s at %s", e.Message, e.Pos)
}

// Error code constants.
const (
	ErrUnexpectedToken     = "E_UNEXPECTED_TOKEN"
	ErrExpectedArrow       = "E_EXPECTED_ARROW"
	ErrMissingGiven        = "E_MISSING_GIVEN"
	ErrMalformedPattern    = "E_MALFORMED_PATTERN"
	ErrBadContractPlacement = "E_BAD_CONTRACT_PLACEMENT"
	ErrUnimplementedOperator = "E_UNIMPLEMENTED_OPERATOR"
	ErrUnimplementedLoop    = "E_UNIMPLEMENTED_LOOP"
	ErrNoPrefixParse        = "E_NO_PREFIX_PARSE"
)

func newParserError(pos lexer.Position, code, format string, args ...any) *ParserError {
	return &ParserError{Message: fmt.Sprintf(format, args...), Code: code, Pos: pos}
}
