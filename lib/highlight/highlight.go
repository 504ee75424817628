// Package highlight renders Go source as HTML with Prism-compatible token
// classes, so the page stylesheet can colour it without client scripts.
package highlight

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/a-h/templ"
	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/golang"
)

// ErrInvalidContent is returned for source that is not valid UTF-8.
var ErrInvalidContent = errors.New("highlight: content is not valid UTF-8")

// Nodes rendered as a single token even when the grammar gives them children.
var atomic = map[string]string{
	"comment":                    "comment",
	"interpreted_string_literal": "string",
	"raw_string_literal":         "string",
	"rune_literal":               "string",
	"int_literal":                "number",
	"float_literal":              "number",
	"imaginary_literal":          "number",
}

var keywords = map[string]bool{
	"break": true, "case": true, "chan": true, "const": true, "continue": true,
	"default": true, "defer": true, "else": true, "fallthrough": true, "for": true,
	"func": true, "go": true, "goto": true, "if": true, "import": true,
	"interface": true, "map": true, "package": true, "range": true, "return": true,
	"select": true, "struct": true, "switch": true, "type": true, "var": true,
}

// Highlighter renders Go source. It is safe for concurrent use; each call
// builds its own parser.
type Highlighter struct {
	lang *sitter.Language
}

// New returns a Go highlighter.
func New() *Highlighter {
	return &Highlighter{lang: golang.GetLanguage()}
}

// HTML returns src as a <pre><code> block. Text outside recognised tokens is
// escaped and emitted as is, so the output always reproduces src exactly.
func (h *Highlighter) HTML(ctx context.Context, src []byte) (string, error) {
	if !utf8.Valid(src) {
		return "", ErrInvalidContent
	}

	parser := sitter.NewParser()
	parser.SetLanguage(h.lang)

	tree, err := parser.ParseCtx(ctx, nil, src)
	if err != nil {
		return "", fmt.Errorf("highlight: parse: %w", err)
	}
	defer tree.Close()

	var b strings.Builder
	b.Grow(len(src) * 2)
	b.WriteString(`<pre class="language-go"><code class="language-go">`)

	w := &writer{b: &b, src: src}
	w.walk(tree.RootNode())
	w.gap(uint32(len(src)))

	b.WriteString(`</code></pre>`)
	return b.String(), nil
}

type writer struct {
	b   *strings.Builder
	src []byte
	pos uint32
}

func (w *writer) walk(n *sitter.Node) {
	if class, ok := atomic[n.Type()]; ok {
		w.token(n, class)
		return
	}
	count := int(n.ChildCount())
	if count == 0 {
		w.token(n, classify(n, w.src))
		return
	}
	for i := 0; i < count; i++ {
		w.walk(n.Child(i))
	}
}

// gap writes the untokenised text up to end.
func (w *writer) gap(end uint32) {
	if end <= w.pos {
		return
	}
	w.b.WriteString(templ.EscapeString(string(w.src[w.pos:end])))
	w.pos = end
}

func (w *writer) token(n *sitter.Node, class string) {
	start, end := n.StartByte(), n.EndByte()
	if start < w.pos || end <= start {
		return
	}
	w.gap(start)
	text := templ.EscapeString(string(w.src[start:end]))
	if class == "" {
		w.b.WriteString(text)
	} else {
		fmt.Fprintf(w.b, `<span class="token %s">%s</span>`, class, text)
	}
	w.pos = end
}

func classify(n *sitter.Node, src []byte) string {
	t := n.Type()
	if !n.IsNamed() {
		switch {
		case keywords[t]:
			return "keyword"
		case isPunctuation(t):
			return "punctuation"
		case isOperator(t):
			return "operator"
		}
		return ""
	}

	switch t {
	case "true", "false", "nil", "iota":
		return "boolean"
	case "type_identifier":
		return "class-name"
	case "package_identifier":
		return "namespace"
	case "identifier":
		if builtins[n.Content(src)] {
			return "builtin"
		}
		if isCallee(n) || isNameOf(n, "function_declaration") {
			return "function"
		}
	case "field_identifier":
		if isCallee(n) || isNameOf(n, "method_declaration") {
			return "function"
		}
		return "property"
	}
	return ""
}

var builtins = map[string]bool{
	"append": true, "cap": true, "clear": true, "close": true, "copy": true,
	"delete": true, "len": true, "make": true, "max": true, "min": true,
	"new": true, "panic": true, "print": true, "println": true, "recover": true,
}

func same(a, b *sitter.Node) bool {
	return a != nil && b != nil && a.StartByte() == b.StartByte() && a.EndByte() == b.EndByte()
}

func isNameOf(n *sitter.Node, parentType string) bool {
	p := n.Parent()
	return p != nil && p.Type() == parentType && same(p.ChildByFieldName("name"), n)
}

// isCallee reports whether n names the function of a call, directly or as
// the field of a selector.
func isCallee(n *sitter.Node) bool {
	p := n.Parent()
	if p == nil {
		return false
	}
	if p.Type() == "selector_expression" {
		if !same(p.ChildByFieldName("field"), n) {
			return false
		}
		n, p = p, p.Parent()
		if p == nil {
			return false
		}
	}
	return p.Type() == "call_expression" && same(p.ChildByFieldName("function"), n)
}

func isPunctuation(t string) bool {
	switch t {
	case "(", ")", "{", "}", "[", "]", ";", ",", ".", ":":
		return true
	}
	return false
}

func isOperator(t string) bool {
	if t == "" {
		return false
	}
	for _, r := range t {
		if !strings.ContainsRune("+-*/%&|^<>=!:.~", r) {
			return false
		}
	}
	return true
}
