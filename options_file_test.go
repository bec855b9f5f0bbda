package sluggable_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/sluggable"
)

const optionsYAML = `
Post:
  sources: [Title]
  separator: "_"
  limit_length: 16
  required: false
  uniqueness:
    scope: [BlogID]
Person:
  sources: [First, Last]
  column: Slug
  generate_on_blank: false
  require_format: "^[a-z-]+$"
`

func TestParseOptions(t *testing.T) {
	set, err := sluggable.ParseOptions(strings.NewReader(optionsYAML))
	require.NoError(t, err)
	require.Len(t, set, 2)

	post := set["Post"]
	assert.Equal(t, []string{"Title"}, post.Sources)
	require.NotNil(t, post.Separator)
	assert.Equal(t, "_", *post.Separator)
	require.NotNil(t, post.LimitLength)
	assert.Equal(t, 16, *post.LimitLength)
	require.NotNil(t, post.Uniqueness)
	assert.Equal(t, []string{"BlogID"}, post.Uniqueness.Scope)
	assert.Nil(t, post.GenerateOnBlank)

	opt, ok := set.For("Post")
	require.True(t, ok)
	cfg, err := sluggable.NewConfig(Post{}, opt)
	require.NoError(t, err)
	assert.Equal(t, "Post", cfg.Kind())
	assert.Equal(t, "_", cfg.Separator())
	assert.Equal(t, 16, cfg.MaxLength())
	assert.False(t, cfg.Required())
	assert.Equal(t, []string{"BlogID"}, cfg.Scope())

	_, ok = set.For("Missing")
	assert.False(t, ok)
}

func TestParseOptions_Errors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"unknown key", "Post:\n  sources: [Title]\n  colum: Slug\n"},
		{"kind mismatch", "Post:\n  kind: Article\n  sources: [Title]\n"},
		{"wrong type", "Post:\n  limit_length: many\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := sluggable.ParseOptions(strings.NewReader(tt.yaml))
			assert.ErrorIs(t, err, sluggable.ErrOptionsFile)
		})
	}

	t.Run("empty input", func(t *testing.T) {
		set, err := sluggable.ParseOptions(strings.NewReader(""))
		require.NoError(t, err)
		assert.Empty(t, set)
	})
}

func TestParseOptions_Conditions(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"mapping", "Post:\n  sources: [Title]\n  uniqueness:\n    conditions:\n      published: true\n"},
		{"null", "Post:\n  sources: [Title]\n  uniqueness:\n    conditions: ~\n"},
		{"empty value", "Post:\n  sources: [Title]\n  uniqueness:\n    scope: [BlogID]\n    conditions:\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			set, err := sluggable.ParseOptions(strings.NewReader(tt.yaml))
			require.NoError(t, err)

			opt, ok := set.For("Post")
			require.True(t, ok)
			_, err = sluggable.NewConfig(Post{}, opt)
			assert.ErrorIs(t, err, sluggable.ErrConfiguration)

			err = set.RegisterAll(sluggable.NewRegistry(), map[string]any{"Post": Post{}})
			assert.ErrorIs(t, err, sluggable.ErrConfiguration)
		})
	}

	t.Run("unknown uniqueness key", func(t *testing.T) {
		_, err := sluggable.ParseOptions(strings.NewReader("Post:\n  uniqueness:\n    scopes: [BlogID]\n"))
		assert.ErrorIs(t, err, sluggable.ErrOptionsFile)
	})
}

func TestLoadOptionsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "slugs.yaml")
	require.NoError(t, os.WriteFile(path, []byte(optionsYAML), 0o600))

	set, err := sluggable.LoadOptionsFile(path)
	require.NoError(t, err)

	reg := sluggable.NewRegistry()
	require.NoError(t, set.RegisterAll(reg, map[string]any{"Post": Post{}, "Person": Person{}}))
	assert.Equal(t, []string{"Person", "Post"}, reg.Kinds())

	cfg, ok := reg.ByKind("Person")
	require.True(t, ok)
	assert.False(t, cfg.GenerateOnBlank())
	assert.Equal(t, "^[a-z-]+$", cfg.Format().String())

	t.Run("missing prototype options", func(t *testing.T) {
		err := set.RegisterAll(sluggable.NewRegistry(), map[string]any{"Page": Page{}})
		assert.ErrorIs(t, err, sluggable.ErrOptionsFile)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := sluggable.LoadOptionsFile(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.ErrorIs(t, err, sluggable.ErrOptionsFile)
	})
}
