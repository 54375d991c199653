package domain

import "strings"

// ElementCategory identifies the structural role of an element.
type ElementCategory string

// Element categories produced by partitioners.
const (
	CategoryTitle         ElementCategory = "Title"
	CategoryNarrativeText ElementCategory = "NarrativeText"
	CategoryListItem      ElementCategory = "ListItem"
	CategoryCodeSnippet   ElementCategory = "CodeSnippet"
	CategoryTable         ElementCategory = "Table"
)

// Element is one structural unit of a partitioned document.
type Element struct {
	// Category is the structural role.
	Category ElementCategory

	// Text is the plain text of the element.
	Text string

	// Depth is the heading level for titles and the nesting level for list items.
	Depth int
}

// IsTitle reports whether the element opens a new section.
func (e Element) IsTitle() bool {
	return e.Category == CategoryTitle
}

// IsTable reports whether the element is a table.
func (e Element) IsTable() bool {
	return e.Category == CategoryTable
}

// ChunkSeparator joins element texts inside a chunk.
const ChunkSeparator = "\n\n"

// Chunk is a group of consecutive elements merged into one text span.
type Chunk struct {
	// Elements are the source elements in document order.
	Elements []Element

	// Text is the element texts joined by ChunkSeparator.
	Text string
}

// NewChunk builds a chunk from elements.
func NewChunk(elements []Element) Chunk {
	parts := make([]string, 0, len(elements))
	for _, el := range elements {
		parts = append(parts, el.Text)
	}
	return Chunk{
		Elements: elements,
		Text:     strings.Join(parts, ChunkSeparator),
	}
}

// String returns the plain text representation.
func (c Chunk) String() string {
	return c.Text
}
