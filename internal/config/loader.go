package config

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// Source supplies raw configuration values.
type Source interface {
	// Env returns the value of a required environment variable.
	Env(name string) string
	// Input returns the value of an optional CI input.
	Input(name string) string
}

// StaticSource is a Source backed by plain maps.
type StaticSource struct {
	Environ map[string]string
	Inputs  map[string]string
}

func (s StaticSource) Env(name string) string   { return s.Environ[name] }
func (s StaticSource) Input(name string) string { return s.Inputs[name] }

// Load builds the run arguments from src. It fails with *MissingEnvError
// when a required secret is missing, before anything else is read.
func Load(src Source) (*Arguments, error) {
	secrets := make(map[string]string, len(RequiredEnv))
	for _, name := range RequiredEnv {
		v := src.Env(name)
		if v == "" {
			return nil, &MissingEnvError{Name: name}
		}
		secrets[name] = v
	}

	input := func(name string) string {
		return strings.TrimSpace(src.Input(name))
	}

	return &Arguments{
		OrgaID:    input(InputOrgaID),
		Type:      input(InputType),
		Region:    input(InputRegion),
		Domain:    input(InputDomain),
		Token:     secrets[EnvToken],
		Secret:    secrets[EnvSecret],
		Alias:     input(InputAlias),
		CleverCLI: ResolveCLI(input(InputCleverCLI)),
	}, nil
}

// CLIName is the executable name of the Clever Cloud CLI.
const CLIName = "clever"

// Swapped in tests.
var (
	executable = os.Executable
	lookPath   = exec.LookPath
	fileExists = func(path string) bool {
		info, err := os.Stat(path)
		return err == nil && !info.IsDir()
	}
)

// ResolveCLI returns the absolute path of the CLI binary. An explicit path
// wins; then a copy bundled next to the running executable; then PATH.
// When nothing is found it returns the bare name and the first invocation
// fails.
func ResolveCLI(explicit string) string {
	if explicit != "" {
		if abs, err := filepath.Abs(explicit); err == nil {
			return abs
		}
		return explicit
	}

	if exe, err := executable(); err == nil {
		dir := filepath.Dir(exe)
		for _, candidate := range []string{
			filepath.Join(dir, CLIName),
			filepath.Join(dir, "..", "node_modules", ".bin", CLIName),
		} {
			if fileExists(candidate) {
				return filepath.Clean(candidate)
			}
		}
	}

	if path, err := lookPath(CLIName); err == nil {
		if abs, err := filepath.Abs(path); err == nil {
			return abs
		}
		return path
	}
	return CLIName
}
