package plaintext

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// blocks start on their own line
var blocks = map[atom.Atom]bool{
	atom.P: true, atom.Div: true, atom.Br: true, atom.Hr: true,
	atom.Li: true, atom.Ul: true, atom.Ol: true, atom.Dl: true, atom.Dt: true, atom.Dd: true,
	atom.H1: true, atom.H2: true, atom.H3: true, atom.H4: true, atom.H5: true, atom.H6: true,
	atom.Blockquote: true, atom.Pre: true, atom.Table: true, atom.Tr: true,
	atom.Section: true, atom.Article: true, atom.Header: true, atom.Footer: true,
	atom.Figure: true, atom.Figcaption: true,
}

// skipped subtrees never render as text
var skipped = map[atom.Atom]bool{
	atom.Script: true, atom.Style: true, atom.Noscript: true, atom.Template: true,
	atom.Head: true, atom.Iframe: true, atom.Object: true,
}

// FromHTML renders an HTML fragment or document to the text a reader sees.
// Entities are decoded, script and style content is dropped, whitespace runs
// collapse as a browser would (except inside pre) and block elements are
// separated by newlines. Absolute link targets that the anchor text does not
// already show are appended after the anchor text so link based checks still see them
func FromHTML(s string) (string, error) {
	doc, err := html.Parse(strings.NewReader(s))
	if err != nil {
		return "", err
	}

	w := &textWriter{}
	w.walk(doc, false)
	return Sanitize(w.String()), nil
}

type textWriter struct {
	b     strings.Builder
	space bool // a collapsed space is pending
}

func (w *textWriter) walk(n *html.Node, pre bool) {
	switch n.Type {
	case html.CommentNode, html.DoctypeNode:
		return
	case html.TextNode:
		w.text(n.Data, pre)
		return
	case html.ElementNode:
		if skipped[n.DataAtom] {
			return
		}
		if n.DataAtom == atom.Pre {
			pre = true
		}
		if blocks[n.DataAtom] {
			w.newline()
		}
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		w.walk(c, pre)
	}

	if n.Type != html.ElementNode {
		return
	}
	switch {
	case n.DataAtom == atom.A:
		w.link(n)
	case n.DataAtom == atom.Td || n.DataAtom == atom.Th:
		w.space = true
	case blocks[n.DataAtom]:
		w.newline()
	}
}

func (w *textWriter) text(s string, pre bool) {
	if pre {
		w.flushSpace()
		w.b.WriteString(s)
		return
	}
	if s != "" && isHTMLSpace(rune(s[0])) {
		w.space = true
	}
	fields := strings.FieldsFunc(s, isHTMLSpace)
	for i, f := range fields {
		if i > 0 {
			w.space = true
		}
		w.flushSpace()
		w.b.WriteString(f)
	}
	if len(fields) > 0 && isHTMLSpace(rune(s[len(s)-1])) {
		w.space = true
	}
}

// link appends an absolute href the visible text does not already contain
func (w *textWriter) link(n *html.Node) {
	for _, a := range n.Attr {
		if a.Namespace != "" || !strings.EqualFold(a.Key, "href") {
			continue
		}
		href := strings.TrimSpace(a.Val)
		lower := strings.ToLower(href)
		if !strings.HasPrefix(lower, "http://") && !strings.HasPrefix(lower, "https://") {
			return
		}
		if strings.Contains(nodeText(n), href) {
			return
		}
		w.space = true
		w.flushSpace()
		w.b.WriteString(href)
		w.space = true
		return
	}
}

func (w *textWriter) flushSpace() {
	if w.space && w.b.Len() > 0 && !w.atLineStart() {
		w.b.WriteByte(' ')
	}
	w.space = false
}

func (w *textWriter) newline() {
	w.space = false
	if w.b.Len() == 0 || w.atLineStart() {
		return
	}
	w.b.WriteByte('\n')
}

func (w *textWriter) atLineStart() bool {
	s := w.b.String()
	return len(s) == 0 || s[len(s)-1] == '\n'
}

func (w *textWriter) String() string {
	return strings.TrimRight(w.b.String(), " \n")
}

func nodeText(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}

// isHTMLSpace matches the HTML ASCII whitespace set
func isHTMLSpace(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\f', '\r':
		return true
	}
	return false
}
