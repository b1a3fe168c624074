package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadSchema(t *testing.T) {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("..", "..", "schemas", "review-app-v1.schema.json"))
	require.NoError(t, err, "failed to read schema file")
	SetSchema(data)
}

func TestSaveAndLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultFileName)
	in := &FileConfig{OrgaID: "orga_123", Type: "node", Region: "par", Domain: "pr1.example.com", Alias: "pr-1"}
	require.NoError(t, SaveFile(in, path))

	out, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, in, out)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "cleverCLI", "empty fields are omitted")
}

func TestSaveFile_Nil(t *testing.T) {
	assert.Error(t, SaveFile(nil, filepath.Join(t.TempDir(), "x.yaml")))
}

func TestLoadFile_Errors(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "reading config file")

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("alias: [unterminated"), 0o644))
	_, err = LoadFile(path)
	assert.ErrorContains(t, err, "parsing config YAML")
}

func TestValidateYAML(t *testing.T) {
	loadSchema(t)

	tests := []struct {
		name      string
		yaml      string
		valid     bool
		errsField string
	}{
		{"full", "orgaID: orga_1\ntype: static-apache\nregion: par\ndomain: pr.example.com\nalias: pr-1\n", true, ""},
		{"empty document", "", true, ""},
		{"secret rejected", "alias: pr-1\ntoken: abc\n", false, "(root)"},
		{"unknown key", "aliases: [a]\n", false, "(root)"},
		{"bad region", "region: Paris France\n", false, "region"},
		{"empty alias", "alias: \"\"\n", false, "alias"},
		{"wrong type", "alias: 42\n", false, "alias"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := ValidateYAML([]byte(tt.yaml))
			require.NoError(t, err)
			assert.Equal(t, tt.valid, res.Valid, "errors: %v", res.Errors)
			if !tt.valid {
				require.NotEmpty(t, res.Errors)
				assert.Equal(t, tt.errsField, res.Errors[0].Field)
			}
		})
	}
}

func TestValidateYAML_NoSchema(t *testing.T) {
	prev := GetSchema()
	SetSchema(nil)
	defer SetSchema(prev)

	_, err := ValidateYAML([]byte("alias: a\n"))
	assert.ErrorContains(t, err, "schema not loaded")
}

func TestValidateYAML_Malformed(t *testing.T) {
	loadSchema(t)
	_, err := ValidateYAML([]byte("alias: [oops"))
	assert.ErrorContains(t, err, "parsing YAML")
}
