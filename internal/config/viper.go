package config

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// FlagNames maps CI inputs to their command-line flag.
var FlagNames = map[string]string{
	InputOrgaID:    "orga-id",
	InputType:      "type",
	InputRegion:    "region",
	InputDomain:    "domain",
	InputAlias:     "alias",
	InputCleverCLI: "clever-cli",
}

// InputEnvName returns the variable GitHub Actions uses for a step input:
// INPUT_ followed by the upper-cased name, spaces replaced by underscores.
func InputEnvName(name string) string {
	return "INPUT_" + strings.ToUpper(strings.ReplaceAll(name, " ", "_"))
}

// ViperSource reads secrets and inputs through a viper instance.
type ViperSource struct {
	v *viper.Viper
}

// NewViperSource binds every known key of v to its environment variable
// and, when flags is non-nil, to its flag.
func NewViperSource(v *viper.Viper, flags *pflag.FlagSet) (*ViperSource, error) {
	for _, name := range RequiredEnv {
		if err := v.BindEnv(envKey(name), name); err != nil {
			return nil, fmt.Errorf("binding %s: %w", name, err)
		}
	}
	inputs := append(append([]string(nil), OptionalInputs...), InputCleverCLI)
	for _, name := range inputs {
		envNames := []string{InputEnvName(name)}
		if name == InputCleverCLI {
			envNames = append(envNames, "CLEVER_CLI")
		}
		if err := v.BindEnv(append([]string{name}, envNames...)...); err != nil {
			return nil, fmt.Errorf("binding input %s: %w", name, err)
		}
		if flags == nil {
			continue
		}
		if f := flags.Lookup(FlagNames[name]); f != nil {
			if err := v.BindPFlag(name, f); err != nil {
				return nil, fmt.Errorf("binding flag --%s: %w", f.Name, err)
			}
		}
	}
	return &ViperSource{v: v}, nil
}

// Env implements Source.
func (s *ViperSource) Env(name string) string {
	return s.v.GetString(envKey(name))
}

// Input implements Source.
func (s *ViperSource) Input(name string) string {
	return s.v.GetString(name)
}

// envKey keeps secrets under a prefix no config file key can use.
func envKey(name string) string {
	return "env." + strings.ToLower(name)
}
