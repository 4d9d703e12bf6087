package parser

import "github.com/vibelang/vbl/internal/lexer"

// TokenCursor wraps a Lexer with the single-token lookahead the parser
// needs. It is a thin, mutable buffer: the grammar never needs
// speculative parsing, so there is nothing to restore.
type TokenCursor struct {
	lexer   *lexer.Lexer
	current lexer.Token
	peeked  lexer.Token
}

// NewTokenCursor creates a cursor positioned at the lexer's first token.
func NewTokenCursor(l *lexer.Lexer) *TokenCursor {
	c := &TokenCursor{lexer: l}
	c.current = l.NextToken()
	c.peeked = l.NextToken()
	return c
}

// Current returns the token at the cursor's position.
func (c *TokenCursor) Current() lexer.Token { return c.current }

// Peek returns the token one position ahead of Current.
func (c *TokenCursor) Peek() lexer.Token { return c.peeked }

// Advance discards Current and shifts Peek into its place, buffering one
// more token from the lexer.
func (c *TokenCursor) Advance() {
	c.current = c.peeked
	if c.current.Kind != lexer.EOF {
		c.peeked = c.lexer.NextToken()
	}
}

// Is reports whether Current matches kind.
func (c *TokenCursor) Is(kind lexer.TokenType) bool { return c.current.Kind == kind }

// PeekIs reports whether Peek matches kind.
func (c *TokenCursor) PeekIs(kind lexer.TokenType) bool { return c.peeked.Kind == kind }
