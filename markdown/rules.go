package markdown

import (
	"fmt"
	"regexp"
	"unicode"
)

// space matches one whitespace character, Unicode separators and the
// \x1c-\x1f information separators included. IsSpace agrees with it.
const space = `[\s\x0b\x{85}\p{Z}\x{1c}-\x{1f}]`

// IsSpace reports whether r counts as whitespace for heading markers,
// trimming and whitespace collapse.
func IsSpace(r rune) bool {
	return unicode.IsSpace(r) || unicode.In(r, unicode.Z) || (r >= 0x1c && r <= 0x1f)
}

// Rule rewrites every match of Pattern in a document. Replacement is a
// regexp template and may refer to capture groups as ${1}, ${2}.
type Rule struct {
	Name        string
	Pattern     *regexp.Regexp
	Replacement string
}

// Apply replaces all matches of the rule in s.
func (r Rule) Apply(s string) string {
	return r.Pattern.ReplaceAllString(s, r.Replacement)
}

// RuleSet is an ordered list of rules. Each rule sees the output of the one
// before it.
type RuleSet []Rule

func (rs RuleSet) Apply(s string) string {
	for _, rule := range rs {
		s = rule.Apply(s)
	}
	return s
}

func headingRule(level int) Rule {
	return Rule{
		Name:        fmt.Sprintf("h%d", level),
		Pattern:     regexp.MustCompile(fmt.Sprintf(`(?m)^#{%d}%s+(.*)$`, level, space)),
		Replacement: fmt.Sprintf("<h%d>${1}</h%d>", level, level),
	}
}

func newHTMLRules() RuleSet {
	var rules RuleSet
	// most hashes first; each pattern also anchors to its exact count
	for level := 6; level >= 1; level-- {
		rules = append(rules, headingRule(level))
	}
	return append(rules,
		Rule{"bold-underscore", regexp.MustCompile(`__(.*?)__`), "<strong>${1}</strong>"},
		Rule{"bold-asterisk", regexp.MustCompile(`\*\*(.*?)\*\*`), "<strong>${1}</strong>"},
		Rule{"italic-underscore", regexp.MustCompile(`_(.*?)_`), "<em>${1}</em>"},
		Rule{"italic-asterisk", regexp.MustCompile(`\*(.*?)\*`), "<em>${1}</em>"},
		Rule{"code", regexp.MustCompile("`(.*?)`"), "<code>${1}</code>"},
		Rule{"link", regexp.MustCompile(`\[(.*?)\]\((.*?)\)`), `<a href="${2}">${1}</a>`},
	)
}

func newTextRules() RuleSet {
	return RuleSet{
		{"heading", regexp.MustCompile(`(?m)^#+` + space + `+(.*)$`), "${1}"},
		{"bold-underscore", regexp.MustCompile(`__([^_]+)__`), "${1}"},
		{"bold-asterisk", regexp.MustCompile(`\*\*([^*]+)\*\*`), "${1}"},
		{"italic-underscore", regexp.MustCompile(`_([^_]+)_`), "${1}"},
		{"italic-asterisk", regexp.MustCompile(`\*([^*]+)\*`), "${1}"},
		{"code", regexp.MustCompile("`([^`]+)`"), "${1}"},
		{"link", regexp.MustCompile(`\[([^\]]+)\]\([^)]+\)`), "${1}"},
		// stray markers the paired rules could not match
		{"cleanup", regexp.MustCompile("[*_`#]"), ""},
	}
}
