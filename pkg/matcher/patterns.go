package matcher

import (
	"VaniAssistant/pkg/action"
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed patterns.yaml
var defaultTable []byte

var ErrInvalidTable = errors.New("invalid pattern table")

// Pattern binds an action to its trigger phrases, in priority order.
type Pattern struct {
	Action  action.ID `yaml:"action" json:"action"`
	Phrases []string  `yaml:"phrases" json:"phrases"`
}

type tableFile struct {
	Patterns []Pattern `yaml:"patterns"`
}

// DefaultTable returns the built-in pattern table.
func DefaultTable() []Pattern {
	table, err := LoadTable(bytes.NewReader(defaultTable))
	if err != nil {
		panic(fmt.Sprintf("matcher: embedded pattern table: %v", err))
	}
	return table
}

// LoadTableFile reads a pattern table from path. An empty path yields the
// built-in table.
func LoadTableFile(path string) ([]Pattern, error) {
	if path == "" {
		return DefaultTable(), nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return LoadTable(f)
}

func LoadTable(r io.Reader) ([]Pattern, error) {
	var file tableFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidTable, err)
	}

	if len(file.Patterns) == 0 {
		return nil, fmt.Errorf("%w: no patterns", ErrInvalidTable)
	}

	for i, p := range file.Patterns {
		if !action.Known(p.Action) || p.Action == action.RunCustom || p.Action == action.NotUnderstood {
			return nil, fmt.Errorf("%w: entry %d: unknown action %q", ErrInvalidTable, i, p.Action)
		}
		if len(p.Phrases) == 0 {
			return nil, fmt.Errorf("%w: entry %d (%s) has no phrases", ErrInvalidTable, i, p.Action)
		}
		for j, phrase := range p.Phrases {
			phrase = Normalize(phrase)
			if phrase == "" {
				return nil, fmt.Errorf("%w: entry %d (%s) has an empty phrase", ErrInvalidTable, i, p.Action)
			}
			file.Patterns[i].Phrases[j] = phrase
		}
	}

	return file.Patterns, nil
}
