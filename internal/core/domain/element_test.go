package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestElement_Predicates(t *testing.T) {
	assert.True(t, Element{Category: CategoryTitle}.IsTitle())
	assert.False(t, Element{Category: CategoryNarrativeText}.IsTitle())
	assert.True(t, Element{Category: CategoryTable}.IsTable())
	assert.False(t, Element{Category: CategoryListItem}.IsTable())
}

func TestNewChunk_JoinsText(t *testing.T) {
	c := NewChunk([]Element{
		{Category: CategoryTitle, Text: "Install"},
		{Category: CategoryNarrativeText, Text: "Run the installer."},
	})

	assert.Equal(t, "Install\n\nRun the installer.", c.Text)
	assert.Equal(t, c.Text, c.String())
	assert.Len(t, c.Elements, 2)
}

func TestNewChunk_Empty(t *testing.T) {
	c := NewChunk(nil)
	assert.Empty(t, c.Text)
}

func TestRemoteFileEntry_IsDir(t *testing.T) {
	assert.True(t, RemoteFileEntry{Path: "docs/sub", Type: EntryTypeDir}.IsDir())
	assert.True(t, RemoteFileEntry{Path: "vendor/lib", Type: EntryTypeSubmodule}.IsDir())
	assert.False(t, RemoteFileEntry{
		Path:        "docs/a.md",
		DownloadURL: "https://raw.example.com/docs/a.md",
	}.IsDir())
}
