package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// JSONResult is the envelope printed by every command in --json mode.
type JSONResult struct {
	Status string      `json:"status"`          // "ok" or "error"
	Data   interface{} `json:"data,omitempty"`  // command-specific payload
	Error  string      `json:"error,omitempty"` // error message, if any
}

// jsonOut is swapped in tests.
var jsonOut io.Writer = os.Stdout

// JSON writes a successful result envelope to stdout.
func JSON(data interface{}) {
	writeJSON(JSONResult{Status: "ok", Data: data})
}

// JSONError writes an error envelope to stdout. data may be nil.
func JSONError(err error, data interface{}) {
	writeJSON(JSONResult{Status: "error", Data: data, Error: err.Error()})
}

func writeJSON(result JSONResult) {
	enc := json.NewEncoder(jsonOut)
	enc.SetIndent("", "  ")
	if err := enc.Encode(result); err != nil {
		fmt.Fprintf(os.Stderr, "error encoding JSON output: %v\n", err)
	}
}
