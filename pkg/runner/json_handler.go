package runner

import (
	"context"
	"encoding/json"
	"io"
	"os"

	"github.com/aretw0/turing/pkg/domain"
)

// JSONEvent is one line of JSONHandler output.
type JSONEvent struct {
	Type     string        `json:"type"` // "step" or "halt"
	Step     int           `json:"step,omitempty"`
	Steps    int           `json:"steps,omitempty"`
	State    domain.State  `json:"state"`
	Symbol   domain.Symbol `json:"symbol"`
	Position int           `json:"position"`
	Halted   bool          `json:"halted"`
	Tape     string        `json:"tape,omitempty"`
}

// JSONHandler implements Handler for structured JSON-Lines output.
type JSONHandler struct {
	Encoder *json.Encoder
}

// NewJSONHandler creates a handler writing one JSON object per line.
func NewJSONHandler(w io.Writer) *JSONHandler {
	if w == nil {
		w = os.Stdout
	}
	return &JSONHandler{Encoder: json.NewEncoder(w)}
}

func (h *JSONHandler) Step(_ context.Context, res domain.StepResult) error {
	return h.Encoder.Encode(JSONEvent{
		Type:     "step",
		Step:     res.Step,
		State:    res.State,
		Symbol:   res.Symbol,
		Position: res.Position,
		Halted:   res.Halted(),
	})
}

func (h *JSONHandler) Halt(_ context.Context, snap domain.Snapshot) error {
	return h.Encoder.Encode(JSONEvent{
		Type:     "halt",
		Steps:    snap.Steps,
		State:    snap.State,
		Symbol:   snap.Symbol(),
		Position: snap.Position,
		Halted:   true,
		Tape:     domain.FormatTape(snap.Tape),
	})
}
