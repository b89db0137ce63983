package identifiable

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gopkg.in/yaml.v3"
)

func TestDefaultConfiguration(t *testing.T) {
	cfg := DefaultConfiguration()
	assert.True(t, cfg.OverwriteToKey)
	assert.True(t, cfg.OverwriteToParam)
}

func TestConfig(t *testing.T) {
	t.Cleanup(ResetConfiguration)

	t.Run("returns the same configuration on every call", func(t *testing.T) {
		assert.Same(t, Config(), Config())
	})
	t.Run("configure changes persist", func(t *testing.T) {
		Configure(func(c *Configuration) {
			c.OverwriteToKey = false
			c.OverwriteToParam = false
		})
		assert.False(t, Config().OverwriteToKey)
		assert.False(t, Config().OverwriteToParam)
	})
	t.Run("reset restores defaults", func(t *testing.T) {
		ResetConfiguration()
		assert.Equal(t, DefaultConfiguration(), *Config())
	})
}

func TestConfiguration_YAML(t *testing.T) {
	cfg := DefaultConfiguration()
	err := yaml.Unmarshal([]byte("overwrite_to_param: false\n"), &cfg)
	assert.NoError(t, err)
	assert.True(t, cfg.OverwriteToKey)
	assert.False(t, cfg.OverwriteToParam)
}

func TestType_KeyAndParam(t *testing.T) {
	u := &user{ID: "7", PublicID: "12345678", URLID: "abcdEFGH"}

	testCases := []struct {
		name      string
		column    string
		cfg       Configuration
		wantKey   []string
		wantParam string
	}{
		{"defaults", "public_id", DefaultConfiguration(), []string{"12345678"}, "12345678"},
		{"both off", "public_id", Configuration{}, []string{"7"}, "7"},
		{"key only", "public_id", Configuration{OverwriteToKey: true}, []string{"12345678"}, "7"},
		{"param only", "public_id", Configuration{OverwriteToParam: true}, []string{"7"}, "12345678"},
		{"custom column", "url_id", DefaultConfiguration(), []string{"abcdEFGH"}, "abcdEFGH"},
		{"custom column off", "url_id", Configuration{}, []string{"7"}, "7"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			typ := MustRegister(usersSchema, WithColumn(tc.column))
			assert.Equal(t, tc.wantKey, typ.Key(u, u.ID, tc.cfg))
			assert.Equal(t, tc.wantParam, typ.Param(u, u.ID, tc.cfg))
		})
	}
}
