package importer

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestFormatOf(t *testing.T) {
	tests := []struct {
		path string
		want Format
	}{
		{"deck.json", JSON},
		{"deck.YAML", YAML},
		{"deck.yml", YAML},
		{"deck.xlsx", XLSX},
		{"deck.csv", CSV},
		{"notes.md", Markdown},
		{"notes.txt", Markdown},
	}
	for _, tt := range tests {
		got, err := FormatOf(tt.path)
		require.NoError(t, err, tt.path)
		assert.Equal(t, tt.want, got, tt.path)
	}

	_, err := FormatOf("deck.pdf")
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestParseJSONExport(t *testing.T) {
	in := `[
		{"id": "01J", "title": "Spanish", "description": "basics", "cards": [
			{"id": "c1", "term": "hola", "definition": "hello", "order": 0, "progress": null},
			{"id": "c2", "term": "adios", "definition": "goodbye", "order": 1, "progress": null}
		]},
		{"title": "French", "cards": [{"term": "oui", "definition": "yes"}]}
	]`
	sets, err := Parse(strings.NewReader(in), JSON, "export.json")
	require.NoError(t, err)
	require.Len(t, sets, 2)
	assert.Equal(t, "Spanish", sets[0].Title)
	assert.Equal(t, "basics", sets[0].Description)
	require.Len(t, sets[0].Cards, 2)
	assert.Equal(t, "adios", sets[0].Cards[1].Term)
	assert.Equal(t, 1, sets[0].Cards[1].Order)
	assert.Equal(t, "French", sets[1].Title)
}

func TestParseJSONSingleSet(t *testing.T) {
	in := `{"title": "One", "cards": [{"term": "a", "definition": "1"}, {"term": "b", "definition": "2"}]}`
	sets, err := Parse(strings.NewReader(in), JSON, "one.json")
	require.NoError(t, err)
	require.Len(t, sets, 1)
	assert.Equal(t, 0, sets[0].Cards[0].Order)
	assert.Equal(t, 1, sets[0].Cards[1].Order)
}

func TestParseJSONInvalid(t *testing.T) {
	_, err := Parse(strings.NewReader(`{"title": `), JSON, "bad.json")
	assert.Error(t, err)
}

func TestParseYAML(t *testing.T) {
	in := `
title: Capitals
description: world capitals
cards:
  - term: France
    definition: Paris
  - term: Japan
    definition: Tokyo
`
	sets, err := Parse(strings.NewReader(in), YAML, "capitals.yaml")
	require.NoError(t, err)
	require.Len(t, sets, 1)
	assert.Equal(t, "Capitals", sets[0].Title)
	require.Len(t, sets[0].Cards, 2)
	assert.Equal(t, "Tokyo", sets[0].Cards[1].Definition)
	assert.Equal(t, 1, sets[0].Cards[1].Order)

	list := `
- title: A
  cards:
    - {term: x, definition: y}
- title: B
  cards:
    - {term: z, definition: w}
`
	sets, err = Parse(strings.NewReader(list), YAML, "many.yml")
	require.NoError(t, err)
	require.Len(t, sets, 2)
	assert.Equal(t, "B", sets[1].Title)
}

func TestParseCSV(t *testing.T) {
	in := "term,definition\nhola,hello\n\n\"adios\", \"goodbye, friend\"\n"
	sets, err := Parse(strings.NewReader(in), CSV, "/tmp/spanish.csv")
	require.NoError(t, err)
	require.Len(t, sets, 1)
	assert.Equal(t, "spanish", sets[0].Title)
	require.Len(t, sets[0].Cards, 2)
	assert.Equal(t, "hola", sets[0].Cards[0].Term)
	assert.Equal(t, "goodbye, friend", sets[0].Cards[1].Definition)
}

func TestParseCSVMissingDefinition(t *testing.T) {
	_, err := Parse(strings.NewReader("hola,hello\nadios\n"), CSV, "spanish.csv")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "row 2")
}

func TestParseXLSX(t *testing.T) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	rows := [][]any{
		{"Term", "Definition"},
		{"perro", "dog"},
		{"", ""},
		{"gato", "cat"},
	}
	for i, row := range rows {
		cellRef, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cellRef, &row))
	}
	path := filepath.Join(t.TempDir(), "animals.xlsx")
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	sets, err := ParseFile(path)
	require.NoError(t, err)
	require.Len(t, sets, 1)
	assert.Equal(t, "animals", sets[0].Title)
	require.Len(t, sets[0].Cards, 2)
	assert.Equal(t, "gato", sets[0].Cards[1].Term)
	assert.Equal(t, "cat", sets[0].Cards[1].Definition)
	assert.Equal(t, 1, sets[0].Cards[1].Order)
}

func TestParseMarkdownWithTitle(t *testing.T) {
	in := `# Go Basics

Core language terms.

## goroutine

A lightweight thread managed by the Go runtime.

## channel
A typed conduit for values.

` + "```go\n# not a heading\nch := make(chan int)\n```\n"

	sets, err := Parse(strings.NewReader(in), Markdown, "go.md")
	require.NoError(t, err)
	require.Len(t, sets, 1)
	set := sets[0]
	assert.Equal(t, "Go Basics", set.Title)
	assert.Equal(t, "Core language terms.", set.Description)
	require.Len(t, set.Cards, 2)
	assert.Equal(t, "goroutine", set.Cards[0].Term)
	assert.Equal(t, "A lightweight thread managed by the Go runtime.", set.Cards[0].Definition)
	assert.Equal(t, "channel", set.Cards[1].Term)
	assert.Contains(t, set.Cards[1].Definition, "# not a heading")
}

func TestParseMarkdownFlat(t *testing.T) {
	in := "intro text ignored\n# one\nfirst\n# two\nsecond\n"
	sets, err := Parse(strings.NewReader(in), Markdown, "flat.md")
	require.NoError(t, err)
	require.Len(t, sets[0].Cards, 2)
	assert.Equal(t, "flat", sets[0].Title)
	assert.Equal(t, "one", sets[0].Cards[0].Term)
	assert.Equal(t, "second", sets[0].Cards[1].Definition)
}

func TestParseMarkdownMissingDefinition(t *testing.T) {
	_, err := Parse(strings.NewReader("# one\nfirst\n# two\n"), Markdown, "bad.md")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 3")
}

func TestHeadingLevel(t *testing.T) {
	assert.Equal(t, 1, headingLevel("# a"))
	assert.Equal(t, 3, headingLevel("### a"))
	assert.Equal(t, 0, headingLevel("#hashtag"))
	assert.Equal(t, 0, headingLevel("#"))
	assert.Equal(t, 0, headingLevel("####### seven"))
	assert.Equal(t, 0, headingLevel("text"))
}

func TestParseFileMissing(t *testing.T) {
	_, err := ParseFile(filepath.Join(t.TempDir(), "none.csv"))
	assert.True(t, os.IsNotExist(err))
}
