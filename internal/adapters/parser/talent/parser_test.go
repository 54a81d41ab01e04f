package talent

import (
	"testing"

	"github.com/angelalonso/gtr2/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	t.Run("one block", func(t *testing.T) {
		input := "Jane Doe\n{\nNationality=USA\nConsistency=60\n}\n"
		pr, err := New().Parse([]byte(input))
		require.NoError(t, err)
		require.Len(t, pr.Records, 1)
		assert.Equal(t, "Jane Doe", pr.Records[0].Driver)
		assert.Equal(t, domain.Fields{"Nationality": "USA", "Consistency": "60"}, pr.Records[0].Fields)
	})

	t.Run("one record per header", func(t *testing.T) {
		input := `// talent pack
Jane Doe
{
Consistency=60
}
John Roe
{
Consistency=70 // conservative
RaceAbility=85
}
`
		pr, err := New().Parse([]byte(input))
		require.NoError(t, err)
		require.Len(t, pr.Records, 2)
		assert.Equal(t, "Jane Doe", pr.Records[0].Driver)
		assert.Equal(t, "John Roe", pr.Records[1].Driver)
		assert.Equal(t, "70", pr.Records[1].Fields["Consistency"])
		assert.Equal(t, "85", pr.Records[1].Fields["RaceAbility"])
	})

	t.Run("unknown keys are dropped", func(t *testing.T) {
		input := "Jane Doe\n{\nConsistency=60\nFavoriteColor=blue\n}\n"
		pr, err := New().Parse([]byte(input))
		require.NoError(t, err)
		assert.Equal(t, domain.Fields{"Consistency": "60"}, pr.Records[0].Fields)
	})

	t.Run("keys resolve case-insensitively to canonical spelling", func(t *testing.T) {
		input := "Jane Doe\n{\nconsistency=60\n}\n"
		pr, err := New().Parse([]byte(input))
		require.NoError(t, err)
		assert.Equal(t, "60", pr.Records[0].Fields["Consistency"])
	})

	t.Run("fields before any header are skipped", func(t *testing.T) {
		input := "Consistency=60\nJane Doe\n{\nRaceAbility=80\n}\n"
		pr, err := New().Parse([]byte(input))
		require.NoError(t, err)
		require.Len(t, pr.Records, 1)
		assert.Equal(t, domain.Fields{"RaceAbility": "80"}, pr.Records[0].Fields)
	})

	t.Run("fields attach without braces", func(t *testing.T) {
		// The bulk parse path does not require an enclosing block.
		input := "Jane Doe\nConsistency=60\n"
		pr, err := New().Parse([]byte(input))
		require.NoError(t, err)
		assert.Equal(t, "60", pr.Records[0].Fields["Consistency"])
	})

	t.Run("malformed input never fails", func(t *testing.T) {
		pr, err := New().Parse([]byte("}}}{{{\n=\n==\n"))
		require.NoError(t, err)
		assert.Empty(t, pr.Records)
	})
}

func TestHeaders(t *testing.T) {
	input := "// pack\nJane Doe\n{\nConsistency=60\n}\nJohn Roe\n{\n}\n"
	assert.Equal(t, []string{"Jane Doe", "John Roe"}, Headers([]byte(input)))
}
