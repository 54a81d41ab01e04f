package vehicle

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	t.Run("quoted driver", func(t *testing.T) {
		pr, err := New().Parse([]byte(`Driver="Jane Doe"`))
		require.NoError(t, err)
		assert.Equal(t, []string{"Jane Doe"}, pr.Names)
	})

	t.Run("numbered and alternate keys", func(t *testing.T) {
		input := `
Team="Example Racing"
Driver1="Jane Doe"
Driver2="John Roe"
DriverName3="Max Power"
`
		pr, err := New().Parse([]byte(input))
		require.NoError(t, err)
		assert.Equal(t, []string{"Jane Doe", "John Roe", "Max Power"}, pr.Names)
	})

	t.Run("unquoted single token", func(t *testing.T) {
		pr, err := New().Parse([]byte("Driver=Laurence\n"))
		require.NoError(t, err)
		assert.Equal(t, []string{"Laurence"}, pr.Names)
	})

	t.Run("unterminated quote", func(t *testing.T) {
		pr, err := New().Parse([]byte(`Driver="Jane Doe`))
		require.NoError(t, err)
		assert.Equal(t, []string{"Jane Doe"}, pr.Names)
	})

	t.Run("case-insensitive key", func(t *testing.T) {
		pr, err := New().Parse([]byte(`DRIVER="Jane Doe"`))
		require.NoError(t, err)
		assert.Equal(t, []string{"Jane Doe"}, pr.Names)
	})

	t.Run("duplicates collapse", func(t *testing.T) {
		input := "Driver=\"Jane Doe\"\nDriver2=\"Jane Doe\"\n"
		pr, err := New().Parse([]byte(input))
		require.NoError(t, err)
		assert.Equal(t, []string{"Jane Doe"}, pr.Names)
	})

	t.Run("empty values are dropped", func(t *testing.T) {
		pr, err := New().Parse([]byte(`Driver=""`))
		require.NoError(t, err)
		assert.Empty(t, pr.Names)
	})

	t.Run("no drivers", func(t *testing.T) {
		pr, err := New().Parse([]byte("Team=\"Example Racing\"\nEngine=V8\n"))
		require.NoError(t, err)
		assert.Empty(t, pr.Names)
	})
}

func TestCleanName(t *testing.T) {
	assert.Equal(t, "Jane Doe", CleanName(`"Jane Doe"`))
	assert.Equal(t, "Jane Doe", CleanName(`  Jane Doe  `))
	assert.Equal(t, "Jane Doe", CleanName(`"Jane" Doe`))
	assert.Equal(t, "", CleanName(`""`))
}
