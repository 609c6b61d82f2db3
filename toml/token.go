package toml

import "fmt"

// kind classifies a lexical token.
type kind uint8

const (
	kindError kind = iota
	kindEOF
	kindNewline
	kindWord   // bare key
	kindString // "quoted"
	kindInt
	kindFloat
	kindBool
	kindEquals
	kindDot
	kindComma
	kindLBracket
	kindRBracket
)

// token is one lexical unit. line points into the source for error
// reporting; text holds the decoded literal (escapes already applied
// for strings).
type token struct {
	kind kind
	text string
	line int
}

func (t token) describe() string {
	switch t.kind {
	case kindEOF:
		return "end of input"
	case kindNewline:
		return "newline"
	case kindError:
		return t.text
	}
	return fmt.Sprintf("%q", t.text)
}
