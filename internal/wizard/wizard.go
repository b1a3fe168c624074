package wizard

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
)

// ErrCancelled is returned when the user aborts the wizard with Ctrl+C.
var ErrCancelled = terminal.InterruptErr

// Regions lists the Clever Cloud deployment zones offered by the wizard.
var Regions = []string{"par", "parhds", "rbx", "rbxhds", "scw", "grahds", "mtl", "sgp", "syd", "wsw"}

// AppTypes lists the instance types offered by the wizard.
var AppTypes = []string{
	"static-apache", "node", "python", "go", "php", "ruby", "rust",
	"docker", "java", "maven", "gradle", "sbt", "dotnet", "elixir", "haskell", "frankenphp",
}

var (
	aliasRegex  = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]*$`)
	domainRegex = regexp.MustCompile(`^[A-Za-z0-9*]([A-Za-z0-9-]*[A-Za-z0-9])?(\.[A-Za-z0-9]([A-Za-z0-9-]*[A-Za-z0-9])?)+(/.*)?$`)
)

// ValidateAlias accepts application names usable as a CLI alias.
func ValidateAlias(value interface{}) error {
	v := strings.TrimSpace(fmt.Sprintf("%v", value))
	if !aliasRegex.MatchString(v) {
		return fmt.Errorf("alias may contain letters, digits, '.', '_' and '-' only")
	}
	return nil
}

// ValidateDomain accepts an empty value or a fully qualified domain with an
// optional path prefix.
func ValidateDomain(value interface{}) error {
	v := strings.TrimSpace(fmt.Sprintf("%v", value))
	if v == "" {
		return nil
	}
	if !domainRegex.MatchString(v) {
		return fmt.Errorf("%q is not a valid domain", v)
	}
	return nil
}

// Prompter abstracts user interaction for testing.
type Prompter interface {
	Input(label, defaultValue string, validator survey.Validator) (string, error)
	Select(label string, options []string, defaultValue string) (string, error)
	Confirm(label string, defaultValue bool) (bool, error)
}

// SurveyPrompter implements Prompter with survey/v2.
type SurveyPrompter struct{}

// NewSurveyPrompter returns a survey-based prompter.
func NewSurveyPrompter() *SurveyPrompter {
	return &SurveyPrompter{}
}

func (p *SurveyPrompter) Input(label, defaultValue string, validator survey.Validator) (string, error) {
	var value string
	opts := []survey.AskOpt{}
	if validator != nil {
		opts = append(opts, survey.WithValidator(validator))
	}
	err := survey.AskOne(&survey.Input{
		Message: label,
		Default: defaultValue,
	}, &value, opts...)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(value), nil
}

func (p *SurveyPrompter) Select(label string, options []string, defaultValue string) (string, error) {
	var value string
	err := survey.AskOne(&survey.Select{
		Message: label,
		Options: options,
		Default: defaultValue,
	}, &value)
	if err != nil {
		return "", err
	}
	return value, nil
}

func (p *SurveyPrompter) Confirm(label string, defaultValue bool) (bool, error) {
	var value bool
	err := survey.AskOne(&survey.Confirm{
		Message: label,
		Default: defaultValue,
	}, &value)
	if err != nil {
		return false, err
	}
	return value, nil
}
