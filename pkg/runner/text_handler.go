package runner

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/aretw0/turing/pkg/domain"
	"github.com/muesli/termenv"
)

// TextHandler prints one diagnostic line per step, and optionally the tape
// with the head cell highlighted.
type TextHandler struct {
	Writer   io.Writer
	ShowTape bool

	out *termenv.Output
}

// NewTextHandler creates a text handler. Colour support is detected from w
// unless overridden with termenv.WithProfile.
func NewTextHandler(w io.Writer, opts ...termenv.OutputOption) *TextHandler {
	if w == nil {
		w = os.Stdout
	}
	return &TextHandler{
		Writer: w,
		out:    termenv.NewOutput(w, opts...),
	}
}

func (h *TextHandler) Step(_ context.Context, res domain.StepResult) error {
	state := h.out.String(res.State.Name()).Bold()
	if res.Halted() {
		state = state.Foreground(h.out.Color("#fb7185"))
	} else {
		state = state.Foreground(h.out.Color("#818cf8"))
	}
	_, err := fmt.Fprintf(h.Writer, "Current state: %s, Current symbol: %s\n", state, res.Symbol.Name())
	return err
}

// Halt prints the closing message and, with ShowTape, the final tape.
func (h *TextHandler) Halt(_ context.Context, snap domain.Snapshot) error {
	if _, err := fmt.Fprintln(h.Writer, "The Turing machine has halted."); err != nil {
		return err
	}
	if !h.ShowTape {
		return nil
	}
	_, err := fmt.Fprintf(h.Writer, "Steps: %d\nTape:  %s\n", snap.Steps, h.RenderTape(snap.Tape, snap.Position))
	return err
}

// RenderTape draws the tape one glyph per cell with the head cell bracketed.
func (h *TextHandler) RenderTape(tape []domain.Symbol, head int) string {
	var sb strings.Builder
	for i, s := range tape {
		glyph := string(s.Glyph())
		if i == head {
			sb.WriteString(h.out.String("[" + glyph + "]").Reverse().String())
			continue
		}
		sb.WriteString(" " + glyph + " ")
	}
	return sb.String()
}
