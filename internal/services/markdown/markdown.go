// Package markdown renders the subset of markdown allowed in chat replies:
// bold, inline code, fenced code blocks, bullet lists and line breaks. Raw
// HTML in the source is always escaped.
package markdown

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// Renderer converts reply text to HTML.
type Renderer struct {
	md goldmark.Markdown
}

// New builds a renderer whose parser only knows the allowed constructs.
// Headings, links, images, tables and HTML blocks are not registered, so
// their source text comes out as escaped paragraph text. Ordered lists and
// single-delimiter emphasis are flattened back to plain text.
func New() *Renderer {
	p := parser.NewParser(
		parser.WithBlockParsers(
			util.Prioritized(parser.NewListParser(), 300),
			util.Prioritized(parser.NewListItemParser(), 400),
			util.Prioritized(parser.NewFencedCodeBlockParser(), 700),
			util.Prioritized(parser.NewParagraphParser(), 1000),
		),
		parser.WithInlineParsers(
			util.Prioritized(parser.NewCodeSpanParser(), 100),
			util.Prioritized(parser.NewEmphasisParser(), 500),
		),
		parser.WithASTTransformers(
			util.Prioritized(subset{}, 100),
		),
	)
	return &Renderer{md: goldmark.New(
		goldmark.WithParser(p),
		goldmark.WithRendererOptions(html.WithHardWraps()),
	)}
}

// Render converts src to HTML.
func (r *Renderer) Render(src string) (string, error) {
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(src), &buf); err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	return buf.String(), nil
}

var defaultRenderer = New()

// Render converts src with the shared renderer.
func Render(src string) (string, error) {
	return defaultRenderer.Render(src)
}

// subset removes what the list and emphasis parsers accept beyond bullet
// lists and bold.
type subset struct{}

func (subset) Transform(doc *ast.Document, _ text.Reader, _ parser.Context) {
	var (
		ordered []*ast.List
		italics []*ast.Emphasis
	)
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch v := n.(type) {
		case *ast.List:
			if v.IsOrdered() {
				ordered = append(ordered, v)
			}
		case *ast.Emphasis:
			if v.Level == 1 {
				italics = append(italics, v)
			}
		}
		return ast.WalkContinue, nil
	})

	for _, e := range italics {
		unwrap(e)
	}
	// Innermost first, so nested lists are already flat when their
	// parent item is moved.
	for i := len(ordered) - 1; i >= 0; i-- {
		flattenList(ordered[i])
	}
}

// unwrap replaces n with its children.
func unwrap(n ast.Node) {
	parent := n.Parent()
	for c := n.FirstChild(); c != nil; {
		next := c.NextSibling()
		parent.InsertBefore(parent, n, c)
		c = next
	}
	parent.RemoveChild(parent, n)
}

// flattenList turns every item of an ordered list into a paragraph that
// starts with its number, e.g. "2. second".
func flattenList(l *ast.List) {
	parent := l.Parent()
	anchor := ast.Node(l)
	num := l.Start
	for item := l.FirstChild(); item != nil; {
		next := item.NextSibling()

		var blocks []ast.Node
		for c := item.FirstChild(); c != nil; c = c.NextSibling() {
			blocks = append(blocks, c)
		}

		p := ast.NewParagraph()
		p.AppendChild(p, ast.NewString([]byte(strconv.Itoa(num)+". ")))
		if len(blocks) > 0 {
			switch blocks[0].(type) {
			case *ast.TextBlock, *ast.Paragraph:
				for c := blocks[0].FirstChild(); c != nil; {
					cn := c.NextSibling()
					p.AppendChild(p, c)
					c = cn
				}
				blocks = blocks[1:]
			}
		}
		parent.InsertAfter(parent, anchor, p)
		anchor = p
		for _, b := range blocks {
			parent.InsertAfter(parent, anchor, b)
			anchor = b
		}

		num++
		item = next
	}
	parent.RemoveChild(parent, l)
}
