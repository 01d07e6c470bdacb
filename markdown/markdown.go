// Package markdown converts a small subset of markdown (headings, bold,
// italic, inline code and links) into HTML or into plain text.
//
// Conversion is a fixed, ordered series of regular expression substitutions
// over the whole document. There is no parse tree: each rule rewrites the
// output of the rule before it. Patterns are compiled once and are safe for
// concurrent use.
package markdown

import (
	"errors"
	"fmt"
	"strings"
)

type Mode string

const (
	ModeHTML = Mode("html")
	ModeText = Mode("text")
)

var ErrUnknownMode = errors.New("unknown conversion mode")

var (
	htmlRules = newHTMLRules()
	textRules = newTextRules()
)

// ParseMode maps "html" or "text" to its Mode.
func ParseMode(s string) (Mode, error) {
	switch mode := Mode(strings.ToLower(strings.TrimSpace(s))); mode {
	case ModeHTML, ModeText:
		return mode, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownMode, s)
}

// Rules returns a copy of the ordered rules used for mode.
func Rules(mode Mode) (RuleSet, error) {
	switch mode {
	case ModeHTML:
		return append(RuleSet(nil), htmlRules...), nil
	case ModeText:
		return append(RuleSet(nil), textRules...), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownMode, mode)
}

// ToHTML replaces markdown syntax in s with the corresponding HTML tags.
// Text outside of recognised constructs is copied through unescaped.
func ToHTML(s string) string {
	return htmlRules.Apply(s)
}

// ToText strips markdown syntax from s, keeping the content, and collapses
// all whitespace into single spaces.
func ToText(s string) string {
	return strings.Join(strings.FieldsFunc(textRules.Apply(s), IsSpace), " ")
}

// Convert runs the conversion selected by mode.
func Convert(mode Mode, s string) (string, error) {
	switch mode {
	case ModeHTML:
		return ToHTML(s), nil
	case ModeText:
		return ToText(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownMode, mode)
}
