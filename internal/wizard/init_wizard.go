// Package wizard collects review-app.yaml settings interactively.
package wizard

import (
	"errors"
	"fmt"

	"github.com/kjourdan1/clever-review/internal/clever"
	"github.com/kjourdan1/clever-review/internal/config"
)

// Prompt labels, also used as keys by test prompters.
const (
	LabelOrgaID    = "Organisation ID (orga_… or user_…)"
	LabelType      = "Application type"
	LabelRegion    = "Region"
	LabelAlias     = "Application alias"
	LabelDomain    = "Domain (leave empty to skip)"
	LabelOverwrite = "review-app.yaml already exists. Overwrite?"
)

// ErrAborted is returned when the user declines to overwrite an existing file.
var ErrAborted = errors.New("init aborted: existing configuration kept")

// InitWizard drives the interactive init flow.
type InitWizard struct {
	prompter Prompter
}

// NewInitWizard returns an init wizard; if p is nil, survey is used.
func NewInitWizard(p Prompter) *InitWizard {
	if p == nil {
		p = NewSurveyPrompter()
	}
	return &InitWizard{prompter: p}
}

// Run asks for every setting, starting from defaults. When exists is true
// the user must first confirm overwriting the current file.
func (w *InitWizard) Run(defaults config.FileConfig, exists bool) (*config.FileConfig, error) {
	if exists {
		ok, err := w.prompter.Confirm(LabelOverwrite, false)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, ErrAborted
		}
	}

	cfg := defaults
	var err error

	if cfg.OrgaID, err = w.prompter.Input(LabelOrgaID, defaults.OrgaID, nil); err != nil {
		return nil, err
	}
	if cfg.Type, err = w.prompter.Select(LabelType, AppTypes, orDefault(defaults.Type, clever.DefaultType)); err != nil {
		return nil, err
	}
	if cfg.Region, err = w.prompter.Select(LabelRegion, Regions, orDefault(defaults.Region, clever.DefaultRegion)); err != nil {
		return nil, err
	}
	if cfg.Alias, err = w.prompter.Input(LabelAlias, orDefault(defaults.Alias, clever.DefaultAlias), ValidateAlias); err != nil {
		return nil, err
	}
	if cfg.Domain, err = w.prompter.Input(LabelDomain, defaults.Domain, ValidateDomain); err != nil {
		return nil, err
	}

	if err := ValidateAlias(cfg.Alias); err != nil {
		return nil, fmt.Errorf("invalid alias: %w", err)
	}
	if err := ValidateDomain(cfg.Domain); err != nil {
		return nil, fmt.Errorf("invalid domain: %w", err)
	}
	return &cfg, nil
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
