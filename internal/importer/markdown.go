package importer

import (
	"fmt"
	"io"
	"strings"

	"github.com/rcliao/studycards/internal/store"
)

// section is a heading with the text under it.
type section struct {
	level     int
	heading   string
	body      string
	startLine int
}

// parseMarkdown turns each heading into a card: the heading text is the term
// and the text below it is the definition. A leading level-1 heading above
// deeper headings is the set title instead.
func parseMarkdown(r io.Reader, name string) ([]store.SetParams, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	sections := splitSections(string(data))

	set := store.SetParams{Title: titleFromName(name)}
	if len(sections) > 1 && sections[0].level == 1 && deeperThan(sections[1:], 1) {
		set.Title = sections[0].heading
		set.Description = sections[0].body
		sections = sections[1:]
	}

	for _, s := range sections {
		if s.body == "" {
			return nil, fmt.Errorf("line %d: missing definition for %q", s.startLine, s.heading)
		}
		set.Cards = append(set.Cards, store.CardParams{Term: s.heading, Definition: s.body})
	}
	return []store.SetParams{set}, nil
}

func deeperThan(sections []section, level int) bool {
	for _, s := range sections {
		if s.level <= level {
			return false
		}
	}
	return true
}

// splitSections splits text on heading lines. Text before the first heading is ignored.
func splitSections(text string) []section {
	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	var sections []section
	var current *section
	var body []string

	flush := func() {
		if current == nil {
			return
		}
		current.body = strings.TrimSpace(strings.Join(body, "\n"))
		sections = append(sections, *current)
		body = nil
	}

	inFence := false
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)

		if strings.HasPrefix(trimmed, "```") {
			inFence = !inFence
		}

		if level := headingLevel(trimmed); level > 0 && !inFence {
			flush()
			current = &section{
				level:     level,
				heading:   strings.TrimSpace(trimmed[level:]),
				startLine: i + 1,
			}
			continue
		}
		if current != nil {
			body = append(body, line)
		}
	}
	flush()

	return sections
}

// headingLevel returns the ATX heading level of a trimmed line, or 0.
func headingLevel(line string) int {
	n := 0
	for n < len(line) && line[n] == '#' {
		n++
	}
	if n == 0 || n > 6 {
		return 0
	}
	if n < len(line) && line[n] != ' ' && line[n] != '\t' {
		return 0
	}
	if strings.TrimSpace(line[n:]) == "" {
		return 0
	}
	return n
}
