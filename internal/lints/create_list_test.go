package lints

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	tt "github.com/speclint/speclint/internal/types"
	"github.com/speclint/speclint/syntax"
)

func lintSource(t *testing.T, code string) ([]tt.Issue, *syntax.File) {
	t.Helper()
	file, err := syntax.Parse("spec.rb", []byte(code))
	require.NoError(t, err)
	issues, err := DetectFactoryCreateLoop("spec.rb", file, tt.SeverityWarning)
	require.NoError(t, err)
	return issues, file
}

func TestDetectFactoryCreateLoop(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		code       string
		suggestion string // empty means no issue expected
	}{
		{
			name:       "bare create in times loop",
			code:       "3.times { create :user }",
			suggestion: "create_list :user, 3",
		},
		{
			name:       "parenthesized create keeps parentheses",
			code:       "3.times { create(:user, admin: true) }",
			suggestion: "create_list(:user, 3, admin: true)",
		},
		{
			name:       "trailing arguments keep order and text",
			code:       "2.times { create :post, :published, author: bob }",
			suggestion: "create_list :post, 2, :published, author: bob",
		},
		{
			name:       "namespaced receiver is preserved",
			code:       "5.times { Factory.create :widget }",
			suggestion: "Factory.create_list :widget, 5",
		},
		{
			name:       "do end block",
			code:       "4.times do\n  create :user\nend",
			suggestion: "create_list :user, 4",
		},
		{
			name:       "nested create call argument is copied verbatim",
			code:       "2.times { create :post, author: create(:user) }",
			suggestion: "create_list :post, 2, author: create(:user)",
		},
		{
			name: "block parameter disables the rule",
			code: "3.times { |i| create :user }",
		},
		{
			name: "multi statement body disables the rule",
			code: "3.times { create :user; create :post }",
		},
		{
			name: "multi statement body ending in create still fails",
			code: "3.times do\n  setup_account\n  create :user\nend",
		},
		{
			name: "empty block",
			code: "3.times { }",
		},
		{
			name: "non literal count",
			code: "n.times { create :user }",
		},
		{
			name: "times with arguments",
			code: "3.times(2) { create :user }",
		},
		{
			name: "other repetition method",
			code: "3.upto(5) { create :user }",
		},
		{
			name: "other body call",
			code: "3.times { build :user }",
		},
		{
			name: "create without symbol literal",
			code: "3.times { create user }",
		},
		{
			name: "plain create without loop",
			code: "create :user, admin: true",
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			issues, _ := lintSource(t, tc.code)
			if tc.suggestion == "" {
				assert.Empty(t, issues)
				return
			}

			require.Len(t, issues, 1)
			issue := issues[0]
			assert.Equal(t, "factory-create-list", issue.Rule)
			assert.Equal(t, "style", issue.Category)
			assert.Equal(t, tt.SeverityWarning, issue.Severity)
			assert.Equal(t, tc.suggestion, issue.Suggestion)
			require.NotNil(t, issue.Fix)
			assert.Equal(t, tc.suggestion, issue.Fix.Replacement)
		})
	}
}

func TestDetectionReportsTimesCallSpan(t *testing.T) {
	t.Parallel()

	code := "before do\n  setup\nend\n10.times { create :user }\n"
	issues, file := lintSource(t, code)
	require.Len(t, issues, 1)
	issue := issues[0]

	// the report highlights the count receiver call
	reported := string(file.Source[issue.Start.Offset:issue.End.Offset])
	assert.Equal(t, "10.times", reported)
	assert.Equal(t, 4, issue.Start.Line)
	assert.Equal(t, 1, issue.Start.Column)

	// the fix span covers exactly the whole loop expression
	require.NotNil(t, issue.Fix)
	fixed := string(file.Source[issue.Fix.Start:issue.Fix.End])
	assert.Equal(t, "10.times { create :user }", fixed)
}

func TestDetectionIsIndependentPerNode(t *testing.T) {
	t.Parallel()

	code := "3.times { create :user }\nn.times { create :post }\n2.times { create :post, :published }\n"
	issues, _ := lintSource(t, code)

	require.Len(t, issues, 2)
	assert.Equal(t, "create_list :user, 3", issues[0].Suggestion)
	assert.Equal(t, "create_list :post, 2, :published", issues[1].Suggestion)
}

func TestDetectionInsideNestedBlocks(t *testing.T) {
	t.Parallel()

	code := "describe do\n  3.times { create :user }\nend\n"
	issues, _ := lintSource(t, code)

	require.Len(t, issues, 1)
	assert.Equal(t, "create_list :user, 3", issues[0].Suggestion)
}

func TestNonMatchIsRepeatable(t *testing.T) {
	t.Parallel()

	file, err := syntax.Parse("spec.rb", []byte("3.times { |i| create :user }"))
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		issues, err := DetectFactoryCreateLoop("spec.rb", file, tt.SeverityWarning)
		require.NoError(t, err)
		assert.Empty(t, issues)
	}
}
