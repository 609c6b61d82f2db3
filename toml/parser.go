package toml

import (
	"fmt"
	"strconv"
	"strings"
)

// parser assembles tokens into a generic tree: tables become
// map[string]any, inline arrays []any and arrays of tables
// []map[string]any. It pulls tokens on demand with one token of
// lookahead state.
type parser struct {
	sc   *scanner
	tok  token
	root map[string]any
	tbl  map[string]any // table receiving key/value pairs
}

// parse builds the tree for a whole document.
func parse(src []byte) (map[string]any, error) {
	root := make(map[string]any)
	p := &parser{sc: newScanner(src), root: root, tbl: root}
	p.next()

	for p.tok.kind != kindEOF {
		if p.tok.kind == kindNewline {
			p.next()
			continue
		}
		if err := p.statement(); err != nil {
			return nil, err
		}
	}
	return root, nil
}

func (p *parser) next() {
	p.tok = p.sc.scan()
}

func (p *parser) fail(format string, args ...any) error {
	return fmt.Errorf("toml: line %d: %s", p.tok.line, fmt.Sprintf(format, args...))
}

func (p *parser) expect(k kind, what string) error {
	if p.tok.kind == kindError {
		return p.fail("%s", p.tok.text)
	}
	if p.tok.kind != k {
		return p.fail("want %s, got %s", what, p.tok.describe())
	}
	p.next()
	return nil
}

// endOfLine consumes the statement terminator.
func (p *parser) endOfLine() error {
	switch p.tok.kind {
	case kindNewline:
		p.next()
		return nil
	case kindEOF:
		return nil
	case kindError:
		return p.fail("%s", p.tok.text)
	default:
		return p.fail("trailing %s after statement", p.tok.describe())
	}
}

func (p *parser) statement() error {
	switch p.tok.kind {
	case kindLBracket:
		return p.header()
	case kindWord, kindString:
		return p.pair()
	case kindError:
		return p.fail("%s", p.tok.text)
	default:
		return p.fail("unexpected %s", p.tok.describe())
	}
}

// header processes [path] and [[path]] lines and repoints the table
// receiving subsequent pairs. A [[path]] header appends a fresh table
// to the named array.
func (p *parser) header() error {
	p.next() // [
	array := p.tok.kind == kindLBracket
	if array {
		p.next()
	}

	path, err := p.keyPath()
	if err != nil {
		return err
	}

	if err := p.expect(kindRBracket, "]"); err != nil {
		return err
	}
	if array {
		if err := p.expect(kindRBracket, "]]"); err != nil {
			return err
		}
	}
	if err := p.endOfLine(); err != nil {
		return err
	}
	return p.openTable(path, array)
}

// keyPath reads a dotted sequence of bare or quoted keys.
func (p *parser) keyPath() ([]string, error) {
	var path []string
	for {
		if p.tok.kind != kindWord && p.tok.kind != kindString {
			return nil, p.fail("want key, got %s", p.tok.describe())
		}
		path = append(path, p.tok.text)
		p.next()

		if p.tok.kind != kindDot {
			return path, nil
		}
		p.next()
	}
}

// openTable walks path from the root, creating intermediate tables as
// needed. Reopening a plain table is allowed; colliding with a value
// or crossing an array of tables is not.
func (p *parser) openTable(path []string, array bool) error {
	tbl := p.root
	for _, key := range path[:len(path)-1] {
		switch next := tbl[key].(type) {
		case nil:
			m := make(map[string]any)
			tbl[key] = m
			tbl = m
		case map[string]any:
			tbl = next
		default:
			return fmt.Errorf("toml: key %q is not a table", key)
		}
	}

	last := path[len(path)-1]
	if array {
		entry := make(map[string]any)
		switch prev := tbl[last].(type) {
		case nil:
			tbl[last] = []map[string]any{entry}
		case []map[string]any:
			tbl[last] = append(prev, entry)
		default:
			return fmt.Errorf("toml: key %q is not an array of tables", last)
		}
		p.tbl = entry
		return nil
	}

	switch prev := tbl[last].(type) {
	case nil:
		m := make(map[string]any)
		tbl[last] = m
		p.tbl = m
	case map[string]any:
		p.tbl = prev
	default:
		return fmt.Errorf("toml: key %q is not a table", last)
	}
	return nil
}

// pair processes one key = value line inside the active table.
func (p *parser) pair() error {
	key := p.tok.text
	line := p.tok.line
	p.next()

	if err := p.expect(kindEquals, "="); err != nil {
		return err
	}

	v, err := p.value()
	if err != nil {
		return err
	}

	if _, dup := p.tbl[key]; dup {
		return fmt.Errorf("toml: line %d: duplicate key %q", line, key)
	}
	p.tbl[key] = v
	return p.endOfLine()
}

// value parses one scalar or inline array, leaving the cursor on the
// token after it.
func (p *parser) value() (any, error) {
	switch p.tok.kind {
	case kindString:
		v := p.tok.text
		p.next()
		return v, nil

	case kindBool:
		v := p.tok.text == "true"
		p.next()
		return v, nil

	case kindInt:
		v, err := strconv.ParseInt(strings.ReplaceAll(p.tok.text, "_", ""), 10, 64)
		if err != nil {
			return nil, p.fail("bad integer %q", p.tok.text)
		}
		p.next()
		return v, nil

	case kindFloat:
		v, err := strconv.ParseFloat(strings.ReplaceAll(p.tok.text, "_", ""), 64)
		if err != nil {
			return nil, p.fail("bad float %q", p.tok.text)
		}
		p.next()
		return v, nil

	case kindLBracket:
		return p.array()

	case kindError:
		return nil, p.fail("%s", p.tok.text)
	}
	return nil, p.fail("want value, got %s", p.tok.describe())
}

// array parses [v, v, ...] with newlines permitted around elements and
// a trailing comma tolerated.
func (p *parser) array() ([]any, error) {
	p.next() // [
	arr := make([]any, 0)

	for {
		for p.tok.kind == kindNewline {
			p.next()
		}
		if p.tok.kind == kindRBracket {
			p.next()
			return arr, nil
		}

		v, err := p.value()
		if err != nil {
			return nil, err
		}
		arr = append(arr, v)

		for p.tok.kind == kindNewline {
			p.next()
		}
		switch p.tok.kind {
		case kindComma:
			p.next()
		case kindRBracket:
			// closes on next pass
		default:
			return nil, p.fail("want , or ] in array, got %s", p.tok.describe())
		}
	}
}
