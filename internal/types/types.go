package types

import "fmt"

// Severity is the priority level of a lint rule or issue.
type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
	SeverityInfo
	SeverityOff
)

var severityNames = map[Severity]string{
	SeverityError:   "error",
	SeverityWarning: "warning",
	SeverityInfo:    "info",
	SeverityOff:     "off",
}

func (s Severity) String() string {
	if name, ok := severityNames[s]; ok {
		return name
	}
	return "unknown"
}

// MarshalYAML implements yaml.Marshaler.
func (s Severity) MarshalYAML() (interface{}, error) {
	return s.String(), nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (s *Severity) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var name string
	if err := unmarshal(&name); err != nil {
		return err
	}
	for sev, n := range severityNames {
		if n == name {
			*s = sev
			return nil
		}
	}
	return fmt.Errorf("unknown severity %q", name)
}

// ConfigRule is the per-rule configuration block of the config file.
type ConfigRule struct {
	Severity Severity `yaml:"severity"`
}

// Position is a location in a source file: a byte offset plus its 1-based
// line and column.
type Position struct {
	Offset int
	Line   int
	Column int
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Fix is the exact byte span to replace and its literal replacement text.
// The span covers precisely the expression being replaced, never more, so
// surrounding formatting survives the patch.
type Fix struct {
	Start       int
	End         int
	Replacement string
}

// Issue represents a lint issue found in the code base.
type Issue struct {
	Rule       string
	Category   string
	Filename   string
	Message    string
	Suggestion string
	Note       string
	Severity   Severity
	Confidence float64
	Start      Position
	End        Position
	// Fix, when present, is the autocorrection for this issue.
	Fix *Fix
}
