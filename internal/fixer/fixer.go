// Package fixer applies autocorrections to source files.
package fixer

import (
	"fmt"
	"os"
	"sort"

	tt "github.com/speclint/speclint/internal/types"
)

type Fixer struct {
	DryRun        bool
	MinConfidence float64 // threshold for fixing issues
}

func New(dryRun bool, threshold float64) *Fixer {
	return &Fixer{
		DryRun:        dryRun,
		MinConfidence: threshold,
	}
}

// Fix applies the fixes attached to the issues to the file in place. Fixes
// are applied from the end of the file backwards so that earlier spans stay
// valid while later ones are spliced.
func (f *Fixer) Fix(filename string, issues []tt.Issue) error {
	fixes := make([]tt.Issue, 0, len(issues))
	for _, issue := range issues {
		if issue.Fix == nil || issue.Confidence < f.MinConfidence {
			continue
		}
		fixes = append(fixes, issue)
	}
	if len(fixes) == 0 {
		return nil
	}

	content, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}

	sort.Slice(fixes, func(i, j int) bool {
		return fixes[i].Fix.End > fixes[j].Fix.End
	})

	prevStart := len(content) + 1
	for _, issue := range fixes {
		fix := issue.Fix
		if fix.Start < 0 || fix.End > len(content) || fix.Start > fix.End {
			return fmt.Errorf("fix span [%d, %d) out of range for %s", fix.Start, fix.End, filename)
		}
		if fix.End > prevStart {
			return fmt.Errorf("overlapping fix spans in %s", filename)
		}
		prevStart = fix.Start

		if f.DryRun {
			fmt.Printf("Would fix issue in %s at line %d: %s\n", filename, issue.Start.Line, issue.Message)
			fmt.Printf("Suggestion:\n%s\n", fix.Replacement)
			continue
		}

		patched := make([]byte, 0, len(content)-(fix.End-fix.Start)+len(fix.Replacement))
		patched = append(patched, content[:fix.Start]...)
		patched = append(patched, fix.Replacement...)
		patched = append(patched, content[fix.End:]...)
		content = patched
	}

	if f.DryRun {
		return nil
	}

	if err := os.WriteFile(filename, content, 0o644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	fmt.Printf("Fixed issues in %s\n", filename)
	return nil
}
