// Package props parses line-oriented key = value files, optionally grouped
// under bracketed section headers. Gradle properties files are flat; keys
// that appear before any header are placed in the implicit "properties"
// section so both layouts read through the same Document.
package props

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// DefaultSection holds keys that appear before any [section] header.
const DefaultSection = "properties"

var (
	// ErrMissingSection is returned by Get when the section does not exist.
	ErrMissingSection = errors.New("section not found")

	// ErrMissingKey is returned by Get when the key is absent from the section.
	ErrMissingKey = errors.New("key not found")
)

// ParseError reports a line that is neither a key = value pair, a section
// header, a comment, nor blank.
type ParseError struct {
	Line int    // 1-based line number
	Text string // the offending line, trimmed
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: not a key = value pair: %q", e.Line, e.Text)
}

// Document is an ordered mapping from section name to key/value pairs.
type Document struct {
	sections map[string]map[string]string
	order    []string            // section order of first appearance
	keyOrder map[string][]string // key order of first appearance per section
}

// Parse reads a properties document from r.
//
// Accepted lines: blank, comments starting with '#' or '!', "[section]"
// headers, and "key = value" pairs (whitespace around '=' ignored, value
// may be empty). Anything else fails with a *ParseError.
func Parse(r io.Reader) (*Document, error) {
	doc := &Document{
		sections: make(map[string]map[string]string),
		order:    nil,
		keyOrder: make(map[string][]string),
	}

	section := DefaultSection
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())

		switch {
		case line == "":
			continue
		case strings.HasPrefix(line, "#") || strings.HasPrefix(line, "!"):
			continue
		case strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]"):
			name := strings.TrimSpace(line[1 : len(line)-1])
			if name == "" {
				return nil, &ParseError{Line: lineNo, Text: line}
			}
			section = name
			continue
		}

		key, value, ok := strings.Cut(line, "=")
		if !ok {
			return nil, &ParseError{Line: lineNo, Text: line}
		}
		key = strings.TrimSpace(key)
		if key == "" {
			return nil, &ParseError{Line: lineNo, Text: line}
		}
		doc.set(section, key, strings.TrimSpace(value))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading properties: %w", err)
	}

	return doc, nil
}

func (d *Document) set(section, key, value string) {
	kv, ok := d.sections[section]
	if !ok {
		kv = make(map[string]string)
		d.sections[section] = kv
		d.order = append(d.order, section)
	}
	if _, exists := kv[key]; !exists {
		d.keyOrder[section] = append(d.keyOrder[section], key)
	}
	kv[key] = value
}

// Get returns the value for key within section. Every lookup must resolve
// within a named section; a missing section or key is an error.
func (d *Document) Get(section, key string) (string, error) {
	kv, ok := d.sections[section]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrMissingSection, section)
	}
	value, ok := kv[key]
	if !ok {
		return "", fmt.Errorf("%w: %q in section %q", ErrMissingKey, key, section)
	}
	return value, nil
}

// Sections returns section names in order of first appearance.
func (d *Document) Sections() []string {
	out := make([]string, len(d.order))
	copy(out, d.order)
	return out
}

// Keys returns the keys of a section in order of first appearance.
// Returns nil for an unknown section.
func (d *Document) Keys(section string) []string {
	keys := d.keyOrder[section]
	out := make([]string, len(keys))
	copy(out, keys)
	return out
}
