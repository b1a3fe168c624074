package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFlags() *pflag.FlagSet {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	for _, name := range []string{InputOrgaID, InputType, InputRegion, InputDomain, InputAlias, InputCleverCLI} {
		fs.String(FlagNames[name], "", "")
	}
	return fs
}

func TestInputEnvName(t *testing.T) {
	assert.Equal(t, "INPUT_ORGAID", InputEnvName("orgaID"))
	assert.Equal(t, "INPUT_CLEVERCLI", InputEnvName("cleverCLI"))
	assert.Equal(t, "INPUT_FAILURE_PREFIX", InputEnvName("failure prefix"))
}

func TestViperSource_ReadsCIInputs(t *testing.T) {
	stubResolution(t, "", "/usr/bin/clever")
	t.Setenv(EnvToken, "t1")
	t.Setenv(EnvSecret, "s1")
	t.Setenv("INPUT_ORGAID", "org-1")
	t.Setenv("INPUT_TYPE", "nodejs")
	t.Setenv("INPUT_ALIAS", "pr-42")
	t.Setenv("INPUT_DOMAIN", "pr42.example.com")

	src, err := NewViperSource(viper.New(), nil)
	require.NoError(t, err)

	args, err := Load(src)
	require.NoError(t, err)
	assert.Equal(t, "org-1", args.OrgaID)
	assert.Equal(t, "nodejs", args.Type)
	assert.Equal(t, "pr-42", args.Alias)
	assert.Equal(t, "pr42.example.com", args.Domain)
	assert.Equal(t, "t1", args.Token)
	assert.Equal(t, "s1", args.Secret)
}

func TestViperSource_MissingSecret(t *testing.T) {
	t.Setenv(EnvToken, "t1")
	t.Setenv(EnvSecret, "")

	src, err := NewViperSource(viper.New(), nil)
	require.NoError(t, err)

	_, err = Load(src)
	var missing *MissingEnvError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, EnvSecret, missing.Name)
}

func TestViperSource_Precedence(t *testing.T) {
	stubResolution(t, "", "/usr/bin/clever")
	t.Setenv(EnvToken, "t1")
	t.Setenv(EnvSecret, "s1")
	t.Setenv("INPUT_REGION", "rbx")

	path := filepath.Join(t.TempDir(), DefaultFileName)
	require.NoError(t, os.WriteFile(path, []byte("region: mtl\nalias: from-file\norgaID: org-file\n"), 0o644))

	v := viper.New()
	v.SetConfigFile(path)
	require.NoError(t, v.ReadInConfig())

	flags := newFlags()
	require.NoError(t, flags.Parse([]string{"--alias", "from-flag"}))

	src, err := NewViperSource(v, flags)
	require.NoError(t, err)
	args, err := Load(src)
	require.NoError(t, err)

	assert.Equal(t, "from-flag", args.Alias, "flag beats file")
	assert.Equal(t, "rbx", args.Region, "CI input beats file")
	assert.Equal(t, "org-file", args.OrgaID, "file fills the rest")
}

func TestViperSource_CleverCLIFromEnv(t *testing.T) {
	t.Setenv(EnvToken, "t1")
	t.Setenv(EnvSecret, "s1")
	t.Setenv("CLEVER_CLI", "/opt/clever/bin/clever")

	src, err := NewViperSource(viper.New(), nil)
	require.NoError(t, err)
	args, err := Load(src)
	require.NoError(t, err)
	assert.Equal(t, "/opt/clever/bin/clever", args.CleverCLI)
}
