package internal

import (
	"github.com/speclint/speclint/internal/lints"
	tt "github.com/speclint/speclint/internal/types"
	"github.com/speclint/speclint/syntax"
)

/*
* Implement each lint rule as a separate struct
 */

// LintRule defines the interface for all lint rules.
type LintRule interface {
	// Check runs the lint rule on a parsed file and returns a slice of Issues.
	Check(filename string, file *syntax.File) ([]tt.Issue, error)

	// Name returns the name of the lint rule.
	Name() string

	Severity() tt.Severity
	SetSeverity(tt.Severity)
}

// FactoryCreateListRule flags N.times { create ... } loops that can be
// replaced by a single create_list call.
type FactoryCreateListRule struct {
	severity tt.Severity
}

func NewFactoryCreateListRule() LintRule {
	return &FactoryCreateListRule{severity: tt.SeverityWarning}
}

func (r *FactoryCreateListRule) Check(filename string, file *syntax.File) ([]tt.Issue, error) {
	return lints.DetectFactoryCreateLoop(filename, file, r.severity)
}

func (r *FactoryCreateListRule) Name() string {
	return "factory-create-list"
}

func (r *FactoryCreateListRule) Severity() tt.Severity { return r.severity }

func (r *FactoryCreateListRule) SetSeverity(s tt.Severity) { r.severity = s }
