// Package chunker merges partitioned elements into size-bounded chunks.
package chunker

import (
	"unicode/utf8"

	"github.com/custodia-labs/docs-dataset/internal/core/domain"
	"github.com/custodia-labs/docs-dataset/internal/core/ports/driven"
)

// Ensure the chunkers implement the interface.
var (
	_ driven.Chunker = (*ByTitle)(nil)
	_ driven.Chunker = (*Basic)(nil)
)

// DefaultMaxCharacters is the default hard limit of a chunk.
const DefaultMaxCharacters = domain.DefaultMaxCharacters

// options holds the size limits shared by both strategies.
// All lengths are counted in runes.
type options struct {
	maxCharacters int
	newAfter      int
	combineUnder  int
}

// Option configures a chunker.
type Option func(*options)

// WithMaxCharacters sets the hard limit of a chunk.
func WithMaxCharacters(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.maxCharacters = n
		}
	}
}

// WithNewAfterNChars sets the soft limit after which no element is added.
func WithNewAfterNChars(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.newAfter = n
		}
	}
}

// WithCombineUnderNChars sets the length under which consecutive sections
// are merged. Zero disables merging.
func WithCombineUnderNChars(n int) Option {
	return func(o *options) {
		if n >= 0 {
			o.combineUnder = n
		}
	}
}

func newOptions(opts []Option) options {
	o := options{
		maxCharacters: DefaultMaxCharacters,
		combineUnder:  -1,
	}
	for _, opt := range opts {
		opt(&o)
	}

	// Soft and combine limits never exceed the hard limit.
	if o.newAfter <= 0 || o.newAfter > o.maxCharacters {
		o.newAfter = o.maxCharacters
	}
	if o.combineUnder < 0 || o.combineUnder > o.maxCharacters {
		o.combineUnder = o.maxCharacters
	}
	return o
}

// ByTitle starts a new chunk at every title and keeps sections apart
// unless they are small enough to combine.
type ByTitle struct {
	opts options
}

// NewByTitle creates a title-aware chunker.
func NewByTitle(opts ...Option) *ByTitle {
	return &ByTitle{opts: newOptions(opts)}
}

// Name returns the strategy name.
func (c *ByTitle) Name() string {
	return domain.ChunkByTitle.String()
}

// Chunk groups elements into chunks in document order.
func (c *ByTitle) Chunk(elements []domain.Element) []domain.Chunk {
	sections := pack(elements, c.opts, true)
	sections = combine(sections, c.opts)
	return toChunks(sections)
}

// Basic packs elements up to the size limits without regard to titles.
type Basic struct {
	opts options
}

// NewBasic creates a size-only chunker.
func NewBasic(opts ...Option) *Basic {
	return &Basic{opts: newOptions(opts)}
}

// Name returns the strategy name.
func (c *Basic) Name() string {
	return domain.ChunkBasic.String()
}

// Chunk groups elements into chunks in document order.
func (c *Basic) Chunk(elements []domain.Element) []domain.Chunk {
	return toChunks(pack(elements, c.opts, false))
}

// section is a run of elements that will become one chunk.
type section struct {
	elements []domain.Element
	length   int
	table    bool
}

func (s *section) empty() bool {
	return len(s.elements) == 0
}

// lengthWith returns the joined length after adding an element of n runes.
func (s *section) lengthWith(n int) int {
	if s.empty() {
		return n
	}
	return s.length + separatorLen + n
}

func (s *section) add(el domain.Element) {
	s.length = s.lengthWith(runeLen(el.Text))
	s.elements = append(s.elements, el)
}

var separatorLen = utf8.RuneCountInString(domain.ChunkSeparator)

// pack fills sections in order. Tables are always alone; oversized
// elements are split first. With titles set, a title closes the section.
func pack(elements []domain.Element, o options, titles bool) []section {
	var (
		out     []section
		current section
	)
	flush := func() {
		if !current.empty() {
			out = append(out, current)
			current = section{}
		}
	}

	for _, el := range elements {
		if el.IsTable() {
			flush()
			for _, piece := range splitElement(el, o.maxCharacters) {
				t := section{table: true}
				t.add(piece)
				out = append(out, t)
			}
			continue
		}

		if titles && el.IsTitle() {
			flush()
		}

		for _, piece := range splitElement(el, o.maxCharacters) {
			if !current.empty() && !fits(&current, piece, o) {
				flush()
			}
			current.add(piece)
		}
	}
	flush()

	return out
}

// fits reports whether el can join s under the soft and hard limits.
func fits(s *section, el domain.Element, o options) bool {
	if s.length >= o.newAfter {
		return false
	}
	return s.lengthWith(runeLen(el.Text)) <= o.maxCharacters
}

// combine merges consecutive small text sections while the result stays
// within the hard limit. Tables are never merged.
func combine(sections []section, o options) []section {
	if o.combineUnder == 0 || len(sections) < 2 {
		return sections
	}

	out := make([]section, 0, len(sections))
	for _, s := range sections {
		if len(out) > 0 {
			last := &out[len(out)-1]
			if !last.table && !s.table &&
				last.length < o.combineUnder &&
				last.length+separatorLen+s.length <= o.maxCharacters {
				last.elements = append(last.elements, s.elements...)
				last.length += separatorLen + s.length
				continue
			}
		}
		out = append(out, s)
	}
	return out
}

func toChunks(sections []section) []domain.Chunk {
	if len(sections) == 0 {
		return nil
	}
	chunks := make([]domain.Chunk, 0, len(sections))
	for _, s := range sections {
		chunks = append(chunks, domain.NewChunk(s.elements))
	}
	return chunks
}

func runeLen(s string) int {
	return utf8.RuneCountInString(s)
}
