// Package sexp builds and writes the s-expression trees used by KiCad
// footprint files. It is write-only: atoms are typed at construction time,
// so symbols are emitted bare while strings are quoted and escaped.
package sexp

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Node is one element of an s-expression tree.
type Node interface {
	node()
}

// Symbol is a bare token written without quoting. Use only for fixed
// keywords; nothing is escaped.
type Symbol string

// String is a quoted, escaped text atom.
type String string

// Number is a numeric atom written in shortest decimal form.
type Number float64

// List is a parenthesized sequence of nodes.
type List []Node

func (Symbol) node() {}
func (String) node() {}
func (Number) node() {}
func (List) node()   {}

// NewList builds a list from its elements.
func NewList(items ...Node) List {
	return List(items)
}

// Write emits the tree as a single expression followed by a newline.
// Elements are space-separated; each list nested directly under the root is
// followed by a newline so footprint files stay diffable.
func Write(w io.Writer, n Node) error {
	if err := writeNode(w, n, 0); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\n")
	return err
}

// Format renders the tree to a string, as Write would.
func Format(n Node) string {
	var sb strings.Builder
	// strings.Builder never fails
	_ = Write(&sb, n)
	return sb.String()
}

func writeNode(w io.Writer, n Node, depth int) error {
	switch v := n.(type) {
	case List:
		if _, err := io.WriteString(w, "("); err != nil {
			return err
		}
		for i, item := range v {
			if i > 0 {
				if _, err := io.WriteString(w, " "); err != nil {
					return err
				}
			}
			if err := writeNode(w, item, depth+1); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, ")"); err != nil {
			return err
		}
		if depth == 1 {
			if _, err := io.WriteString(w, "\n"); err != nil {
				return err
			}
		}
		return nil

	case Symbol:
		_, err := io.WriteString(w, string(v))
		return err

	case String:
		_, err := io.WriteString(w, quote(string(v)))
		return err

	case Number:
		_, err := io.WriteString(w, strconv.FormatFloat(float64(v), 'g', -1, 64))
		return err

	default:
		return fmt.Errorf("unknown sexp node type %T", n)
	}
}

// quote wraps s in double quotes, backslash-escaping quotes, backslashes,
// and control or non-ASCII characters.
func quote(s string) string {
	var sb strings.Builder
	sb.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			sb.WriteString(`\"`)
		case '\\':
			sb.WriteString(`\\`)
		case '\n':
			sb.WriteString(`\n`)
		case '\t':
			sb.WriteString(`\t`)
		case '\r':
			sb.WriteString(`\r`)
		default:
			switch {
			case r < 0x20 || (r >= 0x7f && r < 0x100):
				fmt.Fprintf(&sb, `\x%02x`, r)
			case r >= 0x100:
				fmt.Fprintf(&sb, `\u%04x`, r)
			default:
				sb.WriteRune(r)
			}
		}
	}
	sb.WriteByte('"')
	return sb.String()
}
