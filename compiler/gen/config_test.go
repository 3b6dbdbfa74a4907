package gen

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOutputConfig(t *testing.T) {
	t.Run("returns grouped output settings", func(t *testing.T) {
		c := &Config{
			Target:    "./schema",
			Package:   "models",
			Framework: "github.com/org/velox",
			Header:    "// Custom header",
		}

		output := c.Output()

		assert.Equal(t, "./schema", output.Target)
		assert.Equal(t, "models", output.Package)
		assert.Equal(t, "github.com/org/velox", output.Framework)
		assert.Equal(t, "// Custom header", output.Header)
	})

	t.Run("handles empty config", func(t *testing.T) {
		c := &Config{}

		output := c.Output()

		assert.Empty(t, output.Target)
		assert.Empty(t, output.Package)
		assert.Empty(t, output.Header)
	})
}

func TestConfigDefaults(t *testing.T) {
	t.Run("fills unset settings", func(t *testing.T) {
		c := &Config{}
		c.defaults()

		assert.NotNil(t, c.Metadata)
		assert.Equal(t, slog.Default(), c.Logger)
		assert.Equal(t, DefaultPackage, c.Package)
		assert.Equal(t, DefaultFramework, c.Framework)
		assert.Equal(t, DefaultHeader, c.Header)
		assert.Nil(t, c.Database)
	})

	t.Run("keeps explicit settings", func(t *testing.T) {
		m := NewMetadata("public")
		c := &Config{Metadata: m, Package: "models"}
		c.defaults()

		assert.Same(t, m, c.Metadata)
		assert.Equal(t, "models", c.Package)
	})
}

func TestConfigExcluded(t *testing.T) {
	c := &Config{Exclude: map[string][]string{"User": {"password", "EMAIL"}}}

	assert.True(t, c.Excluded("User", "password"))
	assert.True(t, c.Excluded("User", "EMAIL"))
	assert.False(t, c.Excluded("User", "email"))
	assert.False(t, c.Excluded("Address", "password"))
}

func TestConfigPkg(t *testing.T) {
	c := &Config{Framework: "github.com/org/velox"}

	assert.Equal(t, "github.com/org/velox", c.pkg(""))
	assert.Equal(t, "github.com/org/velox/schema/field", c.pkg("schema/field"))
}
