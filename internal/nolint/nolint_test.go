package nolint

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseSource(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		src        string
		line       int
		rule       string
		suppressed bool
	}{
		{
			name:       "disable-line suppresses its own line",
			src:        "3.times { create :user } # speclint:disable-line\n",
			line:       1,
			rule:       "factory-create-list",
			suppressed: true,
		},
		{
			name:       "disable-line does not leak to other lines",
			src:        "3.times { create :user } # speclint:disable-line\n2.times { create :post }\n",
			line:       2,
			rule:       "factory-create-list",
			suppressed: false,
		},
		{
			name:       "disable-line with matching rule",
			src:        "3.times { create :user } # speclint:disable-line factory-create-list\n",
			line:       1,
			rule:       "factory-create-list",
			suppressed: true,
		},
		{
			name:       "disable-line with other rule",
			src:        "3.times { create :user } # speclint:disable-line some-other-rule\n",
			line:       1,
			rule:       "factory-create-list",
			suppressed: false,
		},
		{
			name:       "region disable reaches following lines",
			src:        "# speclint:disable factory-create-list\n3.times { create :user }\n# speclint:enable factory-create-list\n",
			line:       2,
			rule:       "factory-create-list",
			suppressed: true,
		},
		{
			name:       "region ends at enable",
			src:        "# speclint:disable factory-create-list\n# speclint:enable factory-create-list\n3.times { create :user }\n",
			line:       3,
			rule:       "factory-create-list",
			suppressed: false,
		},
		{
			name:       "unclosed region runs to end of file",
			src:        "# speclint:disable\n\n3.times { create :user }\n",
			line:       3,
			rule:       "factory-create-list",
			suppressed: true,
		},
		{
			name:       "hash inside string is not a comment",
			src:        "create :user, name: \"# speclint:disable-line\"\n",
			line:       1,
			rule:       "factory-create-list",
			suppressed: false,
		},
		{
			name:       "plain comment is ignored",
			src:        "3.times { create :user } # setup users\n",
			line:       1,
			rule:       "factory-create-list",
			suppressed: false,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			m := ParseSource([]byte(tc.src))
			assert.Equal(t, tc.suppressed, m.IsSuppressed(tc.line, tc.rule))
		})
	}
}
