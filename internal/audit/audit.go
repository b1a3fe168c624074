// Package audit keeps a local JSON-lines history of clever-review runs.
package audit

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Event is one run of the CLI.
type Event struct {
	Timestamp     string   `json:"timestamp"`
	Operation     string   `json:"operation"`
	Alias         string   `json:"alias,omitempty"`
	Region        string   `json:"region,omitempty"`
	Args          []string `json:"args"`
	Result        string   `json:"result"`
	ExitCode      int      `json:"exitCode"`
	DurationMs    int64    `json:"durationMs"`
	CorrelationID string   `json:"correlationId"`
}

// PathEnv overrides the audit log location.
const PathEnv = "CLEVER_REVIEW_AUDIT_LOG"

// BuildEvent describes a finished run. getenv supplies CI inputs used when
// the alias or region were not passed as flags.
func BuildEvent(args []string, getenv func(string) string, result string, exitCode int, duration time.Duration) Event {
	op, alias, region := inferFromArgs(args)
	if getenv != nil {
		if alias == "" {
			alias = strings.TrimSpace(getenv("INPUT_ALIAS"))
		}
		if region == "" {
			region = strings.TrimSpace(getenv("INPUT_REGION"))
		}
	}
	now := time.Now().UTC()
	return Event{
		Timestamp:     now.Format(time.RFC3339),
		Operation:     op,
		Alias:         alias,
		Region:        region,
		Args:          args,
		Result:        result,
		ExitCode:      exitCode,
		DurationMs:    duration.Milliseconds(),
		CorrelationID: uuid.New().String(),
	}
}

// Write appends event to the audit log.
func Write(event Event) error {
	path, err := Path()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return err
	}
	line, err := json.Marshal(event)
	if err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = f.Write(append(line, '\n'))
	return err
}

// Read returns all events of the audit log, oldest first. Malformed lines
// are skipped; a missing log yields no events.
func Read() ([]Event, error) {
	path, err := Path()
	if err != nil {
		return nil, err
	}
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	defer file.Close()

	var out []Event
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		var event Event
		if err := json.Unmarshal([]byte(line), &event); err == nil {
			out = append(out, event)
		}
	}
	return out, scanner.Err()
}

// Path returns the audit log location: $CLEVER_REVIEW_AUDIT_LOG, else
// ~/.clever-review/audit.log.
func Path() (string, error) {
	if p := os.Getenv(PathEnv); p != "" {
		return p, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".clever-review", "audit.log"), nil
}

func inferFromArgs(args []string) (operation, alias, region string) {
	operation = "root"
	for i := 1; i < len(args); i++ {
		if strings.HasPrefix(args[i], "-") {
			// skip the value of the flags we know take one
			if isValueFlag(args[i]) && !strings.Contains(args[i], "=") {
				i++
			}
			continue
		}
		operation = args[i]
		break
	}
	for i := 0; i < len(args); i++ {
		name, value, hasValue := strings.Cut(args[i], "=")
		if !hasValue && i+1 < len(args) {
			value = args[i+1]
		}
		switch name {
		case "--alias":
			alias = value
		case "--region":
			region = value
		}
	}
	return
}

func isValueFlag(arg string) bool {
	switch arg {
	case "--config", "--alias", "--region", "--type", "--domain", "--orga-id", "--clever-cli", "--failure-prefix":
		return true
	}
	return false
}
