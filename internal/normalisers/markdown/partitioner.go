// Package markdown splits markdown files into structural elements.
package markdown

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	extast "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"

	"github.com/custodia-labs/docs-dataset/internal/core/domain"
	"github.com/custodia-labs/docs-dataset/internal/core/ports/driven"
)

// Ensure Partitioner implements the interface.
var _ driven.Partitioner = (*Partitioner)(nil)

// frontMatter matches a YAML block delimited by --- at the start of a file.
var frontMatter = regexp.MustCompile(`(?s)\A---[ \t]*\r?\n.*?\r?\n---[ \t]*(\r?\n|\z)`)

// Partitioner turns markdown into titles, paragraphs, list items, code and tables.
type Partitioner struct {
	md goldmark.Markdown
}

// New creates a markdown partitioner with GFM tables and strikethrough.
func New() *Partitioner {
	return &Partitioner{
		md: goldmark.New(
			goldmark.WithExtensions(extension.Table, extension.Strikethrough),
		),
	}
}

// Partition reads path and returns its elements in document order.
func (p *Partitioner) Partition(ctx context.Context, path string) ([]domain.Element, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read markdown: %w", err)
	}

	return p.Elements(src), nil
}

// Elements partitions markdown source.
// HTML blocks, thematic breaks and front matter produce no elements.
func (p *Partitioner) Elements(src []byte) []domain.Element {
	src = frontMatter.ReplaceAll(src, nil)
	doc := p.md.Parser().Parse(text.NewReader(src))

	var elements []domain.Element
	emit := func(category domain.ElementCategory, body string, depth int) {
		if body = strings.TrimSpace(body); body != "" {
			elements = append(elements, domain.Element{Category: category, Text: body, Depth: depth})
		}
	}

	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		switch node := n.(type) {
		case *ast.Heading:
			emit(domain.CategoryTitle, inlineText(node, src), node.Level)
			return ast.WalkSkipChildren, nil

		case *ast.Blockquote:
			emit(domain.CategoryNarrativeText, blockText(node, src), 0)
			return ast.WalkSkipChildren, nil

		case *ast.ListItem:
			emit(domain.CategoryListItem, listItemText(node, src), listDepth(node))
			return ast.WalkContinue, nil

		case *ast.Paragraph, *ast.TextBlock:
			// List item text is emitted with its item.
			if _, ok := node.Parent().(*ast.ListItem); ok {
				return ast.WalkSkipChildren, nil
			}
			emit(domain.CategoryNarrativeText, inlineText(node, src), 0)
			return ast.WalkSkipChildren, nil

		case *ast.FencedCodeBlock, *ast.CodeBlock:
			emit(domain.CategoryCodeSnippet, linesText(node, src), 0)
			return ast.WalkSkipChildren, nil

		case *extast.Table:
			emit(domain.CategoryTable, tableText(node, src), 0)
			return ast.WalkSkipChildren, nil

		case *ast.HTMLBlock, *ast.ThematicBreak:
			return ast.WalkSkipChildren, nil
		}

		return ast.WalkContinue, nil
	})

	return elements
}

// inlineText flattens the inline content of n.
// Soft line breaks become spaces; images and raw HTML are dropped.
func inlineText(n ast.Node, src []byte) string {
	var buf bytes.Buffer
	_ = ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch node := c.(type) {
		case *ast.Text:
			buf.Write(node.Segment.Value(src))
			if node.HardLineBreak() {
				buf.WriteByte('\n')
			} else if node.SoftLineBreak() {
				buf.WriteByte(' ')
			}
		case *ast.String:
			buf.Write(node.Value)
		case *ast.AutoLink:
			buf.Write(node.Label(src))
			return ast.WalkSkipChildren, nil
		case *ast.Image, *ast.RawHTML:
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})
	return buf.String()
}

// blockText joins the paragraphs of a container with newlines.
func blockText(n ast.Node, src []byte) string {
	var parts []string
	_ = ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering || c == n {
			return ast.WalkContinue, nil
		}
		switch c.(type) {
		case *ast.Paragraph, *ast.TextBlock, *ast.Heading:
			parts = append(parts, strings.TrimSpace(inlineText(c, src)))
			return ast.WalkSkipChildren, nil
		case *ast.FencedCodeBlock, *ast.CodeBlock:
			parts = append(parts, strings.TrimSpace(linesText(c, src)))
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})
	return strings.Join(parts, "\n")
}

// listItemText returns the item's own text, excluding nested lists.
func listItemText(item *ast.ListItem, src []byte) string {
	var parts []string
	for c := item.FirstChild(); c != nil; c = c.NextSibling() {
		switch c.(type) {
		case *ast.Paragraph, *ast.TextBlock:
			parts = append(parts, strings.TrimSpace(inlineText(c, src)))
		}
	}
	return strings.Join(parts, " ")
}

// listDepth counts enclosing lists; a top-level item has depth 1.
func listDepth(n ast.Node) int {
	depth := 0
	for p := n.Parent(); p != nil; p = p.Parent() {
		if _, ok := p.(*ast.List); ok {
			depth++
		}
	}
	return depth
}

// linesText returns the raw lines of a code block.
func linesText(n ast.Node, src []byte) string {
	var buf bytes.Buffer
	lines := n.Lines()
	for i := range lines.Len() {
		seg := lines.At(i)
		buf.Write(seg.Value(src))
	}
	return strings.TrimRight(buf.String(), "\n")
}

// tableText renders cells separated by spaces and rows by newlines.
func tableText(table *extast.Table, src []byte) string {
	var rows []string
	for row := table.FirstChild(); row != nil; row = row.NextSibling() {
		var cells []string
		for cell := row.FirstChild(); cell != nil; cell = cell.NextSibling() {
			if t := strings.TrimSpace(inlineText(cell, src)); t != "" {
				cells = append(cells, t)
			}
		}
		if len(cells) > 0 {
			rows = append(rows, strings.Join(cells, " "))
		}
	}
	return strings.Join(rows, "\n")
}
