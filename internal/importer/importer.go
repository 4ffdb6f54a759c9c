// Package importer reads card decks from JSON, YAML, Excel, CSV and
// markdown files.
package importer

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/rcliao/studycards/internal/store"
)

// Format is a deck file format.
type Format string

const (
	JSON     Format = "json"
	YAML     Format = "yaml"
	XLSX     Format = "xlsx"
	CSV      Format = "csv"
	Markdown Format = "markdown"
)

// ErrUnknownFormat is returned for file extensions no parser handles.
var ErrUnknownFormat = errors.New("unknown deck format")

// FormatOf picks a format from a file extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return JSON, nil
	case ".yaml", ".yml":
		return YAML, nil
	case ".xlsx":
		return XLSX, nil
	case ".csv":
		return CSV, nil
	case ".md", ".markdown", ".txt":
		return Markdown, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, filepath.Ext(path))
}

// ParseFile reads the deck at path.
func ParseFile(path string) ([]store.SetParams, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Parse(f, format, path)
}

// Parse reads a deck in the given format. name is used in error messages
// and, for formats without a title, as the set title.
func Parse(r io.Reader, format Format, name string) ([]store.SetParams, error) {
	var (
		sets []store.SetParams
		err  error
	)
	switch format {
	case JSON:
		sets, err = parseJSON(r)
	case YAML:
		sets, err = parseYAML(r)
	case XLSX:
		sets, err = parseXLSX(r, name)
	case CSV:
		sets, err = parseCSV(r, name)
	case Markdown:
		sets, err = parseMarkdown(r, name)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", name, err)
	}
	for i := range sets {
		numberCards(sets[i].Cards)
	}
	return sets, nil
}

// parseJSON accepts one set or a list of sets, as written by export.
func parseJSON(r io.Reader) ([]store.SetParams, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '[' {
		var sets []store.SetParams
		if err := json.Unmarshal(data, &sets); err != nil {
			return nil, err
		}
		return sets, nil
	}
	var set store.SetParams
	if err := json.Unmarshal(data, &set); err != nil {
		return nil, err
	}
	return []store.SetParams{set}, nil
}

// parseYAML accepts one set or a list of sets.
func parseYAML(r io.Reader) ([]store.SetParams, error) {
	var doc yaml.Node
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, err
	}
	if len(doc.Content) > 0 && doc.Content[0].Kind == yaml.SequenceNode {
		var sets []store.SetParams
		if err := doc.Decode(&sets); err != nil {
			return nil, err
		}
		return sets, nil
	}
	var set store.SetParams
	if err := doc.Decode(&set); err != nil {
		return nil, err
	}
	return []store.SetParams{set}, nil
}

// numberCards gives cards their file order when none was specified.
func numberCards(cards []store.CardParams) {
	for _, c := range cards {
		if c.Order != 0 {
			return
		}
	}
	for i := range cards {
		cards[i].Order = i
	}
}

func titleFromName(name string) string {
	base := filepath.Base(name)
	title := strings.TrimSuffix(base, filepath.Ext(base))
	if title == "" || title == "." {
		return "Imported"
	}
	return title
}
