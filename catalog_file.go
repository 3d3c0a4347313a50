package phiguard

import (
	"fmt"
	"os"

	"github.com/hengadev/errsx"
	"gopkg.in/yaml.v3"
)

// patternsFile is the on-disk YAML shape for catalog customization.
//
//	version: "1"
//	patterns:
//	  - name: INSURANCE_ID
//	    kind: regex
//	    expression: '\bINS-\d{8}\b'
//	    priority: 70
//	    high_confidence: true
//	  - name: FACILITY
//	    kind: exact
//	    expression: "Lakeside Clinic"
//	    priority: 50
type patternsFile struct {
	Version  string             `yaml:"version"`
	Patterns []patternFileEntry `yaml:"patterns"`
}

type patternFileEntry struct {
	Name           string   `yaml:"name"`
	Kind           string   `yaml:"kind"`
	Expression     string   `yaml:"expression"`
	Priority       int      `yaml:"priority"`
	ContextWords   []string `yaml:"context_words"`
	HighConfidence bool     `yaml:"high_confidence"`
}

// LoadPatternsFile reads a YAML patterns file and registers every entry on
// the catalog. The whole file is validated before any pattern is added, so
// a bad file never leaves the catalog half-populated.
//
// Fails fast with a configuration error on an unreadable file, unparsable
// YAML, an unknown kind, or any entry that fails pattern compilation —
// better to crash boot than silently run unsanitized.
func LoadPatternsFile(c *Catalog, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrPatternsFileInvalid, path, err)
	}

	var file patternsFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrPatternsFileInvalid, path, err)
	}

	patterns, err := file.toPatterns(c)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrPatternsFileInvalid, path, err)
	}

	for _, p := range patterns {
		if err := c.AddPattern(p); err != nil {
			return fmt.Errorf("%w: %s: %w", ErrPatternsFileInvalid, path, err)
		}
	}
	return nil
}

// toPatterns validates every entry and reports all problems at once rather
// than stopping at the first.
func (f *patternsFile) toPatterns(c *Catalog) ([]Pattern, error) {
	var errs errsx.Map
	seen := make(map[string]bool)
	patterns := make([]Pattern, 0, len(f.Patterns))

	for i, entry := range f.Patterns {
		key := fmt.Sprintf("pattern %d (%s)", i, entry.Name)

		if entry.Name == "" {
			errs.Set(key, fmt.Errorf("name is required"))
			continue
		}
		if seen[entry.Name] || c.PatternByName(entry.Name) != nil {
			errs.Set(key, NewDuplicatePatternError(entry.Name))
			continue
		}
		seen[entry.Name] = true

		kind, ok := ParsePatternKind(entry.Kind)
		if !ok {
			errs.Set(key, fmt.Errorf("unknown kind %q, expected regex, exact or fuzzy", entry.Kind))
			continue
		}

		p := Pattern{
			Name:           entry.Name,
			Expression:     entry.Expression,
			Kind:           kind,
			Priority:       entry.Priority,
			ContextWords:   entry.ContextWords,
			HighConfidence: entry.HighConfidence,
		}
		// compile eagerly so every broken expression in the file is
		// reported, not just the first
		probe := p
		if err := probe.compile(); err != nil {
			errs.Set(key, err)
			continue
		}
		patterns = append(patterns, p)
	}

	if err := errs.AsError(); err != nil {
		return nil, err
	}
	return patterns, nil
}
