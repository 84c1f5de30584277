// Package kicad imports KiCad schematic files (.kicad_sch) into the
// schematic document model. Only the entities the connectivity and ERC
// engines consume are mapped; graphics, text effects and sheet hierarchy
// metadata are skipped.
package kicad

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"unicode"
)

// node is one S-expression: either an atom or a list
type node struct {
	atom string
	list []node
}

func (n *node) isList() bool {
	return n.list != nil
}

// name returns the leading symbol of a list, or "" for atoms/empty lists
func (n *node) name() string {
	if len(n.list) == 0 || n.list[0].isList() {
		return ""
	}
	return n.list[0].atom
}

// child returns the first sub-list whose leading symbol matches
func (n *node) child(name string) *node {
	for i := range n.list {
		c := &n.list[i]
		if c.isList() && c.name() == name {
			return c
		}
	}
	return nil
}

// children returns all sub-lists whose leading symbol matches
func (n *node) children(name string) []*node {
	var out []*node
	for i := range n.list {
		c := &n.list[i]
		if c.isList() && c.name() == name {
			out = append(out, c)
		}
	}
	return out
}

// str returns the atom at index i of a list ("" if absent or a sub-list)
func (n *node) str(i int) string {
	if i < 0 || i >= len(n.list) || n.list[i].isList() {
		return ""
	}
	return n.list[i].atom
}

// float returns the atom at index i parsed as a float (0 if unparsable)
func (n *node) float(i int) float64 {
	v, _ := strconv.ParseFloat(n.str(i), 64)
	return v
}

// hasAtom reports whether the list contains the given bare symbol
func (n *node) hasAtom(sym string) bool {
	for i := range n.list {
		if !n.list[i].isList() && n.list[i].atom == sym {
			return true
		}
	}
	return false
}

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokOpen
	tokClose
	tokAtom
)

type token struct {
	kind tokenKind
	text string
}

type scanner struct {
	br *bufio.Reader
}

// next returns the next token. Quoted strings are unescaped; symbols and
// strings both become atoms.
func (s *scanner) next() (token, error) {
	for {
		ch, _, err := s.br.ReadRune()
		if err == io.EOF {
			return token{kind: tokEOF}, nil
		}
		if err != nil {
			return token{}, err
		}
		if unicode.IsSpace(ch) {
			continue
		}

		switch ch {
		case '(':
			return token{kind: tokOpen}, nil
		case ')':
			return token{kind: tokClose}, nil
		case '"':
			return s.scanString()
		default:
			s.br.UnreadRune()
			return s.scanSymbol()
		}
	}
}

func (s *scanner) scanString() (token, error) {
	var out []rune
	for {
		ch, _, err := s.br.ReadRune()
		if err != nil {
			return token{}, fmt.Errorf("unterminated string")
		}
		switch ch {
		case '"':
			return token{kind: tokAtom, text: string(out)}, nil
		case '\\':
			esc, _, err := s.br.ReadRune()
			if err != nil {
				return token{}, fmt.Errorf("unterminated escape")
			}
			switch esc {
			case 'n':
				out = append(out, '\n')
			case 't':
				out = append(out, '\t')
			default:
				out = append(out, esc)
			}
		default:
			out = append(out, ch)
		}
	}
}

func (s *scanner) scanSymbol() (token, error) {
	var out []rune
	for {
		ch, _, err := s.br.ReadRune()
		if err == io.EOF {
			break
		}
		if err != nil {
			return token{}, err
		}
		if unicode.IsSpace(ch) || ch == '(' || ch == ')' || ch == '"' {
			s.br.UnreadRune()
			break
		}
		out = append(out, ch)
	}
	return token{kind: tokAtom, text: string(out)}, nil
}

// parseSexp reads all top-level S-expressions from r
func parseSexp(r io.Reader) ([]node, error) {
	s := &scanner{br: bufio.NewReader(r)}
	var out []node
	for {
		tok, err := s.next()
		if err != nil {
			return nil, err
		}
		switch tok.kind {
		case tokEOF:
			return out, nil
		case tokOpen:
			n, err := s.parseList()
			if err != nil {
				return nil, err
			}
			out = append(out, n)
		case tokClose:
			return nil, fmt.Errorf("unexpected ')'")
		case tokAtom:
			out = append(out, node{atom: tok.text})
		}
	}
}

func (s *scanner) parseList() (node, error) {
	n := node{list: []node{}}
	for {
		tok, err := s.next()
		if err != nil {
			return node{}, err
		}
		switch tok.kind {
		case tokEOF:
			return node{}, fmt.Errorf("unexpected EOF in list")
		case tokClose:
			return n, nil
		case tokOpen:
			sub, err := s.parseList()
			if err != nil {
				return node{}, err
			}
			n.list = append(n.list, sub)
		case tokAtom:
			n.list = append(n.list, node{atom: tok.text})
		}
	}
}
