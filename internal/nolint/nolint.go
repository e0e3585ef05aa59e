// Package nolint handles speclint suppression comments in Ruby sources.
//
// Two forms are recognized:
//
//	# speclint:disable-line [rule ...]   suppress issues on this line
//	# speclint:disable [rule ...]        suppress until speclint:enable or EOF
//
// With no rule names, the comment suppresses every rule.
package nolint

import "strings"

const (
	disableLineDirective = "speclint:disable-line"
	disableDirective     = "speclint:disable"
	enableDirective      = "speclint:enable"
)

// Manager holds the suppression scopes parsed from one source file and
// answers whether an issue at a given line is suppressed.
type Manager struct {
	scopes []scope
}

// scope is an inclusive line range during which a set of rules is
// suppressed. An empty rule set suppresses all rules.
type scope struct {
	rules     map[string]struct{}
	startLine int
	endLine   int
}

// ParseSource scans the source for suppression comments. It only looks at
// comment text, so it works on any buffer the parser accepts.
func ParseSource(src []byte) *Manager {
	m := &Manager{}
	open := map[string]int{} // open disable scopes, keyed by joined rule list

	lines := strings.Split(string(src), "\n")
	for i, line := range lines {
		lineno := i + 1
		comment, ok := trailingComment(line)
		if !ok {
			continue
		}
		directive, rules := splitDirective(comment)
		switch directive {
		case disableLineDirective:
			m.scopes = append(m.scopes, scope{rules: ruleSet(rules), startLine: lineno, endLine: lineno})
		case disableDirective:
			open[rules] = lineno
		case enableDirective:
			if start, ok := open[rules]; ok {
				m.scopes = append(m.scopes, scope{rules: ruleSet(rules), startLine: start, endLine: lineno})
				delete(open, rules)
			}
		}
	}

	// disable scopes never closed run to end of file
	for rules, start := range open {
		m.scopes = append(m.scopes, scope{rules: ruleSet(rules), startLine: start, endLine: len(lines)})
	}
	return m
}

// IsSuppressed reports whether the given rule is suppressed at the given
// 1-based line.
func (m *Manager) IsSuppressed(line int, rule string) bool {
	for _, s := range m.scopes {
		if line < s.startLine || line > s.endLine {
			continue
		}
		if len(s.rules) == 0 {
			return true
		}
		if _, ok := s.rules[rule]; ok {
			return true
		}
	}
	return false
}

// trailingComment extracts the text of a '#' comment on the line, skipping
// '#' bytes inside string literals.
func trailingComment(line string) (string, bool) {
	var quote byte
	for i := 0; i < len(line); i++ {
		c := line[i]
		switch {
		case quote != 0:
			if c == '\\' {
				i++
			} else if c == quote {
				quote = 0
			}
		case c == '"' || c == '\'':
			quote = c
		case c == '#':
			return strings.TrimSpace(line[i+1:]), true
		}
	}
	return "", false
}

// splitDirective splits a comment into the speclint directive and its
// space-separated rule list.
func splitDirective(comment string) (directive, rules string) {
	fields := strings.Fields(comment)
	if len(fields) == 0 || !strings.HasPrefix(fields[0], "speclint:") {
		return "", ""
	}
	return fields[0], strings.Join(fields[1:], " ")
}

func ruleSet(rules string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, name := range strings.Fields(rules) {
		set[name] = struct{}{}
	}
	return set
}
