package query

import (
	"encoding/json"
	"fmt"
	"io"
)

// JSON shapes. Struct fields are declared in alphabetical order so the
// encoded keys come out sorted.
type allowedJSON struct {
	GrantedBy string `json:"granted_by"`
	Reason    string `json:"reason"`
	Status    string `json:"status"`
}

type deniedJSON struct {
	Category   string `json:"category,omitempty"`
	Reason     string `json:"reason"`
	Status     string `json:"status"`
	Suggestion string `json:"suggestion"`
}

type notSandboxedJSON struct {
	Message string `json:"message"`
	Status  string `json:"status"`
}

// WriteJSON renders the result as a single JSON object with sorted
// keys and a trailing newline.
func (r Result) WriteJSON(w io.Writer) error {
	var v any
	switch r.Status {
	case StatusAllowed:
		v = allowedJSON{GrantedBy: r.GrantedBy, Reason: r.Reason, Status: r.Status}
	case StatusDenied:
		v = deniedJSON{Category: r.Category, Reason: r.Reason, Status: r.Status, Suggestion: r.Suggestion}
	default:
		v = notSandboxedJSON{Message: r.Message, Status: r.Status}
	}
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	data = append(data, '\n')
	_, err = w.Write(data)
	return err
}

// WriteHuman renders the result for terminal consumption.
func (r Result) WriteHuman(w io.Writer) {
	switch r.Status {
	case StatusAllowed:
		fmt.Fprintln(w, "ALLOWED")
		fmt.Fprintf(w, "  Reason: %s\n", r.Reason)
		fmt.Fprintf(w, "  Granted by: %s\n", r.GrantedBy)
	case StatusDenied:
		fmt.Fprintln(w, "DENIED")
		fmt.Fprintf(w, "  Reason: %s\n", r.Reason)
		if r.Category != "" {
			fmt.Fprintf(w, "  Category: %s\n", r.Category)
		}
		fmt.Fprintf(w, "  Suggestion: %s\n", r.Suggestion)
	default:
		fmt.Fprintln(w, "NOT SANDBOXED")
		fmt.Fprintf(w, "  %s\n", r.Message)
	}
}
