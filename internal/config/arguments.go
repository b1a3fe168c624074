// Package config loads the inputs of a review-app deployment.
//
// Secrets come from the process environment only. Everything else comes
// from CI inputs (INPUT_<NAME> variables on GitHub Actions), command-line
// flags or an optional review-app.yaml file, in that order of precedence
// with flags first.
package config

import "fmt"

// Required environment variables.
const (
	EnvToken  = "CLEVER_TOKEN"
	EnvSecret = "CLEVER_SECRET"
)

// Optional CI input names.
const (
	InputOrgaID    = "orgaID"
	InputType      = "type"
	InputRegion    = "region"
	InputDomain    = "domain"
	InputAlias     = "alias"
	InputCleverCLI = "cleverCLI"
)

// DocsURL is linked from configuration errors.
const DocsURL = "https://err.sh/47ng/actions-clever-cloud/env"

// RequiredEnv lists the secrets that must be present, in check order.
var RequiredEnv = []string{EnvToken, EnvSecret}

// OptionalInputs lists the CI inputs read by Load. Unset inputs are "".
var OptionalInputs = []string{InputOrgaID, InputType, InputRegion, InputDomain, InputAlias}

// Arguments is the parameter bag of a single run. It is built once by Load
// and never modified afterwards.
type Arguments struct {
	OrgaID    string `json:"orgaID"`
	Type      string `json:"type"`
	Region    string `json:"region"`
	Domain    string `json:"domain"`
	Token     string `json:"-"`
	Secret    string `json:"-"`
	Alias     string `json:"alias"`
	CleverCLI string `json:"cleverCLI"`
}

// MissingEnvError reports a required environment variable that is unset
// or empty.
type MissingEnvError struct {
	Name string
}

func (e *MissingEnvError) Error() string {
	return fmt.Sprintf("Missing %s environment variable: %s", e.Name, DocsURL)
}
