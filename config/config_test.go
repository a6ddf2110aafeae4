package config

import (
	"context"
	"path"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/assertly"
	"github.com/viant/toolbox"
)

func TestNewConfigFromURL(t *testing.T) {
	baseDir := toolbox.CallerDirectory(3)
	cfg, err := NewConfigFromURL(context.Background(), path.Join(baseDir, "test/config.yaml"))
	require.Nil(t, err)

	assert.EqualValues(t, Features{
		{Name: "SORT_MAP_KEYS", Enabled: true},
		{Name: "ESCAPE_HTML", Enabled: false},
		{Name: "INDENT_OUTPUT", Enabled: false},
	}, cfg.SerializationFeatures)
	assert.EqualValues(t, []string{"FAIL_ON_UNKNOWN_PROPERTIES", "USE_NUMBER"}, cfg.DeserializationFeatures.Names())
	assert.EqualValues(t, []string{"parameter-names", "snake-case"}, cfg.Modules)
	assert.False(t, cfg.HasWildcard())
	assert.True(t, cfg.Debug)
	assert.Equal(t, defaultPort, cfg.Endpoint.Port)
	assertly.AssertValues(t, []interface{}{
		map[string]interface{}{"ID": 1, "Encoding": ""},
		map[string]interface{}{"ID": 2, "Encoding": "cbor"},
	}, cfg.Mappers)
}

func TestNewConfigFromURL_Missing(t *testing.T) {
	_, err := NewConfigFromURL(context.Background(), "/tmp/jmapper/does/not/exist.yaml")
	assert.NotNil(t, err)
}

func TestNewConfig(t *testing.T) {
	var testCases = []struct {
		description string
		data        string
		expectErr   bool
		wildcard    bool
		modules     []string
	}{
		{
			description: "empty document",
			data:        ``,
		},
		{
			description: "wildcard modules",
			data:        `jackson-modules: ["*"]`,
			wildcard:    true,
			modules:     []string{"*"},
		},
		{
			description: "empty module name",
			data:        `jackson-modules: ["snake-case", ""]`,
			expectErr:   true,
		},
		{
			description: "toggle set is not a mapping",
			data:        `serialization-features: [SORT_MAP_KEYS]`,
			expectErr:   true,
		},
		{
			description: "toggle without value",
			data:        "deserialization-features:\n  USE_NUMBER:\n",
			expectErr:   true,
		},
		{
			description: "misspelled toggle value",
			data:        "serialization-features:\n  SORT_MAP_KEYS: ture\n",
			expectErr:   true,
		},
		{
			description: "duplicate mapper id",
			data:        "mappers:\n  - id: 3\n  - id: 3\n",
			expectErr:   true,
		},
	}

	for _, testCase := range testCases {
		cfg, err := NewConfig([]byte(testCase.data))
		if testCase.expectErr {
			assert.NotNil(t, err, testCase.description)
			continue
		}
		if !assert.Nil(t, err, testCase.description) {
			continue
		}
		assert.Equal(t, testCase.wildcard, cfg.HasWildcard(), testCase.description)
		assert.EqualValues(t, testCase.modules, cfg.Modules, testCase.description)
	}
}
