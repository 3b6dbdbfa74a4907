package graphql

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestStringList(t *testing.T) {
	var v struct {
		Schema StringList `yaml:"schema"`
	}
	require.NoError(t, yaml.Unmarshal([]byte("schema: a.graphql"), &v))
	assert.Equal(t, StringList{"a.graphql"}, v.Schema)
	require.NoError(t, yaml.Unmarshal([]byte("schema:\n  - a.graphql\n  - b.graphql"), &v))
	assert.Equal(t, StringList{"a.graphql", "b.graphql"}, v.Schema)
	require.Error(t, yaml.Unmarshal([]byte("schema: {a: b}"), &v))

	b, err := yaml.Marshal(v)
	require.NoError(t, err)
	assert.Contains(t, string(b), "- b.graphql")
}

func TestLoadGQLGenConfigMissing(t *testing.T) {
	cfg, err := LoadGQLGenConfig(filepath.Join(t.TempDir(), "gqlgen.yml"))
	require.NoError(t, err)
	assert.NotNil(t, cfg.Models)
	assert.Empty(t, cfg.SchemaFilename)
}

func TestInjectBindings(t *testing.T) {
	path := filepath.Join(t.TempDir(), "api", "gqlgen.yml")
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(`schema: schema.graphql
models:
  Time:
    model: github.com/org/project/scalar.Time
`), 0o644))

	cfg, err := LoadGQLGenConfig(path)
	require.NoError(t, err)
	cfg.InjectBindings("velox.graphql", "github.com/org/project/velox")
	cfg.InjectBindings("velox.graphql", "github.com/org/project/velox")
	require.NoError(t, SaveGQLGenConfig(path, cfg))

	cfg, err = LoadGQLGenConfig(path)
	require.NoError(t, err)
	assert.Equal(t, StringList{"schema.graphql", "velox.graphql"}, cfg.SchemaFilename)
	assert.Equal(t, []string{"github.com/org/project/velox"}, cfg.Autobind)
	assert.Equal(t, StringList{"github.com/org/project/scalar.Time"}, cfg.Models[ScalarTime].Model)
	assert.Equal(t, StringList{"github.com/99designs/gqlgen/graphql.String"}, cfg.Models[ScalarDecimal].Model)
	assert.Contains(t, cfg.Models, ScalarDate)
	assert.Contains(t, cfg.Models, ScalarClock)
}
