package loader

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/aretw0/turing/pkg/domain"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// Format identifies how a program file is encoded.
type Format string

const (
	FormatText Format = "text"
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// FormatFromPath picks the format from the file extension.
// Anything that is not YAML or JSON is read as a rules text file.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	case ".json":
		return FormatJSON
	default:
		return FormatText
	}
}

// LoadProgram reads a program from disk. Programs without a name are named
// after the file.
func LoadProgram(path string) (*domain.Program, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read program: %w", err)
	}

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	p, err := ReadProgram(bytes.NewReader(data), FormatFromPath(path), name)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}

// ReadProgram decodes a program in the given format. A text input only
// carries rules, so it gets the default initial state and tape.
func ReadProgram(r io.Reader, format Format, name string) (*domain.Program, error) {
	switch format {
	case FormatText:
		rules, err := ParseRules(r)
		if err != nil {
			return nil, err
		}
		return &domain.Program{
			Name:         name,
			InitialState: domain.DefaultInitialState,
			Tape:         append([]domain.Symbol(nil), domain.DefaultTape...),
			Rules:        rules,
		}, nil

	case FormatYAML, FormatJSON:
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("failed to read program: %w", err)
		}
		raw := map[string]any{}
		if format == FormatYAML {
			err = yaml.Unmarshal(data, &raw)
		} else {
			err = json.Unmarshal(data, &raw)
		}
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s program: %w", format, err)
		}
		p, err := DecodeProgram(raw)
		if err != nil {
			return nil, err
		}
		if p.Name == "" {
			p.Name = name
		}
		return p, nil
	}
	return nil, fmt.Errorf("unsupported program format %q", format)
}

// DecodeProgram turns a generic document (as produced by the YAML or JSON
// decoders) into a Program. Tokens may be strings or bare numbers, the tape
// may be a compact string or a list, and rules may be "A,0,1,R,B" strings
// or objects with state/read/write/move/next keys.
func DecodeProgram(raw map[string]any) (*domain.Program, error) {
	var p domain.Program
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			ruleHook,
			tapeHook,
			tokenHook,
		),
		ErrorUnused: true,
		Result:      &p,
	})
	if err != nil {
		return nil, err
	}
	if err := dec.Decode(raw); err != nil {
		return nil, fmt.Errorf("invalid program: %w", err)
	}

	if _, ok := raw["tape"]; !ok {
		p.Tape = append([]domain.Symbol(nil), domain.DefaultTape...)
	}
	if len(p.Tape) == 0 {
		return nil, fmt.Errorf("invalid program: %w", domain.ErrEmptyTape)
	}
	return &p, nil
}

var (
	stateType  = reflect.TypeOf(domain.State(0))
	symbolType = reflect.TypeOf(domain.Symbol(0))
	moveType   = reflect.TypeOf(domain.Move(0))
	tapeType   = reflect.TypeOf([]domain.Symbol(nil))
	ruleType   = reflect.TypeOf(domain.Rule{})
)

// tokenHook parses enum fields from their text tokens. YAML and JSON hand
// "0" and "1" over as numbers, so anything scalar is formatted first.
func tokenHook(from reflect.Type, to reflect.Type, data any) (any, error) {
	if to != stateType && to != symbolType && to != moveType {
		return data, nil
	}
	switch from.Kind() {
	case reflect.String, reflect.Int, reflect.Int64, reflect.Float64, reflect.Uint64:
	default:
		return data, nil
	}

	token := fmt.Sprint(data)
	switch to {
	case stateType:
		return domain.ParseState(token)
	case symbolType:
		return domain.ParseSymbol(token)
	default:
		return domain.ParseMove(token)
	}
}

// tapeHook parses compact tape strings. An unquoted tape such as 0100 reaches
// the hook as a number whose leading zeros (or octal reading) are already
// lost, so it is rejected instead of guessed.
func tapeHook(from reflect.Type, to reflect.Type, data any) (any, error) {
	if to != tapeType {
		return data, nil
	}
	switch from.Kind() {
	case reflect.String:
		return ParseTape(data.(string))
	case reflect.Int, reflect.Int64, reflect.Uint64, reflect.Float64:
		return nil, fmt.Errorf("tape %v was read as a number: quote it, e.g. tape: \"0100\"", data)
	}
	return data, nil
}

func ruleHook(from reflect.Type, to reflect.Type, data any) (any, error) {
	if to != ruleType || from.Kind() != reflect.String {
		return data, nil
	}
	return ParseRule(data.(string))
}

// MarshalYAML encodes a program in the YAML layout DecodeProgram accepts.
func MarshalYAML(p *domain.Program) ([]byte, error) {
	return yaml.Marshal(p)
}
