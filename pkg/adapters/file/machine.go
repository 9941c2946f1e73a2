// Package file reads and writes machine definitions as YAML or JSON documents.
//
// Every outer surface (CLI files, library frontmatter, HTTP bodies, MCP arguments)
// funnels its generic map through Decode, so they all accept the same loosely typed
// input: `write: "1"` and `write: 1` are equivalent, and a tape length that is not a
// positive integer becomes 1, as the editor form does.
package file

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/aretw0/cssmachine/pkg/domain"
	"github.com/aretw0/cssmachine/pkg/schema"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// Format is the serialization of a machine file.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// FormatOf picks the format from a file extension. Anything but .json is YAML.
func FormatOf(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return FormatJSON
	}
	return FormatYAML
}

// Document is a decoded machine file.
type Document struct {
	ID          string
	Description string
	Machine     domain.MachineConfig
}

type machineDocument struct {
	ID          string          `mapstructure:"id"`
	Name        string          `mapstructure:"name"`
	Description string          `mapstructure:"description"`
	TapeLength  any             `mapstructure:"tape_length"`
	States      []stateDocument `mapstructure:"states"`
}

type stateDocument struct {
	Name string             `mapstructure:"name"`
	Zero transitionDocument `mapstructure:"zero"`
	One  transitionDocument `mapstructure:"one"`
}

type transitionDocument struct {
	Write any    `mapstructure:"write"`
	Move  string `mapstructure:"move"`
	Next  string `mapstructure:"next"`
}

// DecodeDocument maps a generic document onto a machine.
// Unknown keys are rejected so that typos do not silently fall back to defaults.
func DecodeDocument(raw map[string]any) (Document, error) {
	var doc machineDocument
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		Result:           &doc,
	})
	if err != nil {
		return Document{}, fmt.Errorf("failed to create decoder: %w", err)
	}
	if err := decoder.Decode(raw); err != nil {
		return Document{}, fmt.Errorf("failed to decode machine: %w", err)
	}

	cfg := domain.MachineConfig{
		Name:       doc.Name,
		TapeLength: tapeLength(doc.TapeLength),
		States:     make([]domain.State, 0, len(doc.States)),
	}
	var errs []error
	for i, s := range doc.States {
		zero, err := s.Zero.transition(fmt.Sprintf("states[%d].zero", i))
		if err != nil {
			errs = append(errs, err)
		}
		one, err := s.One.transition(fmt.Sprintf("states[%d].one", i))
		if err != nil {
			errs = append(errs, err)
		}
		cfg.States = append(cfg.States, domain.State{
			Name: strings.TrimSpace(s.Name),
			Zero: zero,
			One:  one,
		})
	}
	if err := schema.Aggregate(errs); err != nil {
		return Document{}, err
	}
	return Document{ID: doc.ID, Description: doc.Description, Machine: cfg}, nil
}

// Decode is DecodeDocument for callers that only need the machine.
func Decode(raw map[string]any) (domain.MachineConfig, error) {
	doc, err := DecodeDocument(raw)
	return doc.Machine, err
}

func (t transitionDocument) transition(key string) (domain.Transition, error) {
	write, err := symbol(key+".write", t.Write)
	return domain.Transition{
		Write: write,
		Move:  domain.Move(strings.ToUpper(strings.TrimSpace(t.Move))),
		Next:  strings.TrimSpace(t.Next),
	}, err
}

// symbol accepts 0 and 1 as numbers or strings. A missing write is 0.
// Anything else is rejected here rather than narrowed into a byte.
func symbol(key string, v any) (domain.Symbol, error) {
	if v == nil {
		return domain.Zero, nil
	}
	switch strings.TrimSpace(fmt.Sprint(v)) {
	case "0":
		return domain.Zero, nil
	case "1":
		return domain.One, nil
	}
	return domain.Zero, &schema.ValidationError{Key: key, Reason: "symbol must be 0 or 1", Value: v}
}

func tapeLength(v any) int {
	switch n := v.(type) {
	case nil:
		return domain.DefaultTapeLength
	case float64:
		// JSON numbers arrive as floats; %v would print large ones in exponent form.
		return domain.ParseTapeLength(strconv.FormatFloat(n, 'f', -1, 64))
	}
	return domain.ParseTapeLength(fmt.Sprint(v))
}

// Parse decodes a machine from YAML or JSON bytes.
func Parse(data []byte, format Format) (Document, error) {
	raw := make(map[string]any)
	if format == FormatJSON {
		if err := json.Unmarshal(data, &raw); err != nil {
			return Document{}, fmt.Errorf("failed to parse json: %w", err)
		}
	} else {
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return Document{}, fmt.Errorf("failed to parse yaml: %w", err)
		}
	}
	return DecodeDocument(raw)
}

// Load reads a machine file. "-" reads standard input as YAML (a JSON document is valid YAML).
func Load(path string) (domain.MachineConfig, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return domain.MachineConfig{}, fmt.Errorf("failed to read machine file: %w", err)
	}

	doc, err := Parse(data, FormatOf(path))
	if err != nil {
		return domain.MachineConfig{}, fmt.Errorf("%s: %w", path, err)
	}
	if doc.Machine.Name == "" && path != "-" {
		doc.Machine.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return doc.Machine, nil
}

// Encode serializes a machine in the given format.
func Encode(cfg domain.MachineConfig, format Format) ([]byte, error) {
	if format == FormatJSON {
		data, err := json.MarshalIndent(cfg, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("failed to marshal machine: %w", err)
		}
		return append(data, '\n'), nil
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal machine: %w", err)
	}
	return data, nil
}
