// Package rulepack loads and compiles the spam scoring rule table.
// The default table is embedded as rules.json; deployments may overlay a YAML
// or JSON file on top of it to tune weights, lists and thresholds
package rulepack

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed rules.json
var embedded []byte

// Format names the encoding of a rule table document
type Format string

const (
	// FormatJSON is the embedded format
	FormatJSON Format = "json"
	// FormatYAML is the preferred overlay format
	FormatYAML Format = "yaml"
)

// PatternSpec is a single named regular expression with an optional weight override
type PatternSpec struct {
	ID      string `json:"id" yaml:"id"`
	Pattern string `json:"pattern" yaml:"pattern"`
	Weight  int    `json:"weight,omitempty" yaml:"weight,omitempty"`
}

// KeywordBlock lists plain substring phrases sharing one weight
type KeywordBlock struct {
	Weight int      `json:"weight" yaml:"weight"`
	Terms  []string `json:"terms" yaml:"terms"`
}

// PatternBlock lists regex patterns sharing a default weight
type PatternBlock struct {
	Weight   int           `json:"weight" yaml:"weight"`
	Patterns []PatternSpec `json:"patterns" yaml:"patterns"`
}

// LinkBlock configures both link based rules
type LinkBlock struct {
	Pattern         string `json:"pattern" yaml:"pattern"`
	Max             int    `json:"max" yaml:"max"`
	Weight          int    `json:"weight" yaml:"weight"`
	ShortContentLen int    `json:"short_content_len" yaml:"short_content_len"`
	ShortWeight     int    `json:"short_weight" yaml:"short_weight"`
}

// CapsBlock configures the capitalization rule
type CapsBlock struct {
	Ratio  float64 `json:"ratio" yaml:"ratio"`
	Weight int     `json:"weight" yaml:"weight"`
}

// RepeatBlock configures the repeated character rule
type RepeatBlock struct {
	Run    int `json:"run" yaml:"run"`
	Weight int `json:"weight" yaml:"weight"`
}

// Table is the serialisable rule table (rules.json and overlay files share this shape)
type Table struct {
	Version        int               `json:"version" yaml:"version"`
	Meta           map[string]string `json:"meta,omitempty" yaml:"meta,omitempty"`
	Threshold      int               `json:"threshold" yaml:"threshold"`
	Keywords       KeywordBlock      `json:"keywords" yaml:"keywords"`
	Prohibited     PatternBlock      `json:"prohibited" yaml:"prohibited"`
	Links          LinkBlock         `json:"links" yaml:"links"`
	Capitalization CapsBlock         `json:"capitalization" yaml:"capitalization"`
	Repetition     RepeatBlock       `json:"repetition" yaml:"repetition"`
	Promotional    PatternBlock      `json:"promotional" yaml:"promotional"`
}

// Pattern is a compiled regex rule entry
type Pattern struct {
	ID     string
	Expr   string
	Weight int
	Re     *regexp.Regexp
}

// Links is the compiled link rule configuration
type Links struct {
	Re              *regexp.Regexp
	Max             int
	Weight          int
	ShortContentLen int
	ShortWeight     int
}

// Pack is a compiled, read-only rule table. Safe to share between goroutines
type Pack struct {
	Version   int
	Name      string
	Threshold int

	Keywords      []string // lowercased, deduped, table order
	KeywordWeight int

	Prohibited  []Pattern
	Promotional []Pattern
	Links       Links

	CapsRatio  float64
	CapsWeight int

	RepeatRun    int
	RepeatWeight int

	table Table
}

// Load returns the compiled pack from the embedded rules.json
func Load() (*Pack, error) {
	t, err := defaults()
	if err != nil {
		return nil, err
	}
	return Compile(t)
}

// LoadFile overlays the file at path onto the embedded defaults and compiles the result.
// Files ending in .json are decoded as JSON, anything else as YAML
func LoadFile(path string) (*Pack, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("rulepack: read %s: %w", path, err)
	}
	format := FormatYAML
	if strings.EqualFold(filepath.Ext(path), ".json") {
		format = FormatJSON
	}
	return Parse(data, format)
}

// Parse overlays data onto the embedded defaults and compiles the result.
// Keys present in data replace the defaults; lists are replaced, not appended
func Parse(data []byte, format Format) (*Pack, error) {
	t, err := defaults()
	if err != nil {
		return nil, err
	}
	switch format {
	case FormatJSON:
		if err := json.Unmarshal(data, &t); err != nil {
			return nil, fmt.Errorf("rulepack: parse json overlay: %w", err)
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, &t); err != nil {
			return nil, fmt.Errorf("rulepack: parse yaml overlay: %w", err)
		}
	default:
		return nil, fmt.Errorf("rulepack: unsupported format %q", format)
	}
	return Compile(t)
}

func defaults() (Table, error) {
	var t Table
	if err := json.Unmarshal(embedded, &t); err != nil {
		return Table{}, fmt.Errorf("rulepack: parse rules.json: %w", err)
	}
	return t, nil
}

// Compile validates t and builds a Pack from it
func Compile(t Table) (*Pack, error) {
	if t.Version < 1 {
		return nil, fmt.Errorf("rulepack: unsupported version %d (want >= 1)", t.Version)
	}
	if t.Threshold <= 0 {
		return nil, fmt.Errorf("rulepack: threshold must be positive, got %d", t.Threshold)
	}
	for name, w := range map[string]int{
		"keywords.weight":         t.Keywords.Weight,
		"prohibited.weight":       t.Prohibited.Weight,
		"promotional.weight":      t.Promotional.Weight,
		"links.weight":            t.Links.Weight,
		"links.short_weight":      t.Links.ShortWeight,
		"capitalization.weight":   t.Capitalization.Weight,
		"repetition.weight":       t.Repetition.Weight,
		"links.max":               t.Links.Max,
		"links.short_content_len": t.Links.ShortContentLen,
	} {
		if w < 0 {
			return nil, fmt.Errorf("rulepack: %s must not be negative, got %d", name, w)
		}
	}
	if t.Capitalization.Ratio <= 0 || t.Capitalization.Ratio > 1 {
		return nil, fmt.Errorf("rulepack: capitalization.ratio must be in (0,1], got %v", t.Capitalization.Ratio)
	}
	if t.Repetition.Run < 2 {
		return nil, fmt.Errorf("rulepack: repetition.run must be at least 2, got %d", t.Repetition.Run)
	}

	p := &Pack{
		Version:       t.Version,
		Name:          t.Meta["name"],
		Threshold:     t.Threshold,
		KeywordWeight: t.Keywords.Weight,
		CapsRatio:     t.Capitalization.Ratio,
		CapsWeight:    t.Capitalization.Weight,
		RepeatRun:     t.Repetition.Run,
		RepeatWeight:  t.Repetition.Weight,
		table:         t,
	}

	seen := make(map[string]struct{}, len(t.Keywords.Terms))
	for _, term := range t.Keywords.Terms {
		term = strings.ToLower(strings.TrimSpace(term))
		if term == "" {
			continue
		}
		if _, dup := seen[term]; dup {
			continue
		}
		seen[term] = struct{}{}
		p.Keywords = append(p.Keywords, term)
	}

	var err error
	if p.Prohibited, err = compilePatterns("prohibited", t.Prohibited); err != nil {
		return nil, err
	}
	if p.Promotional, err = compilePatterns("promotional", t.Promotional); err != nil {
		return nil, err
	}

	if strings.TrimSpace(t.Links.Pattern) == "" {
		return nil, fmt.Errorf("rulepack: links.pattern is required")
	}
	linkRe, err := regexp.Compile("(?i)" + t.Links.Pattern)
	if err != nil {
		return nil, fmt.Errorf("rulepack: compile links.pattern %q: %w", t.Links.Pattern, err)
	}
	p.Links = Links{
		Re:              linkRe,
		Max:             t.Links.Max,
		Weight:          t.Links.Weight,
		ShortContentLen: t.Links.ShortContentLen,
		ShortWeight:     t.Links.ShortWeight,
	}

	return p, nil
}

// compilePatterns compiles a block case-insensitively, keeping table order
func compilePatterns(block string, b PatternBlock) ([]Pattern, error) {
	out := make([]Pattern, 0, len(b.Patterns))
	for i, ps := range b.Patterns {
		if strings.TrimSpace(ps.Pattern) == "" {
			return nil, fmt.Errorf("rulepack: %s.patterns[%d] is empty", block, i)
		}
		if ps.Weight < 0 {
			return nil, fmt.Errorf("rulepack: %s.patterns[%d].weight must not be negative", block, i)
		}
		re, err := regexp.Compile("(?i)" + ps.Pattern)
		if err != nil {
			return nil, fmt.Errorf("rulepack: compile %s %q: %w", block, ps.Pattern, err)
		}
		w := ps.Weight
		if w == 0 {
			w = b.Weight
		}
		id := ps.ID
		if id == "" {
			id = fmt.Sprintf("%s_%d", block, i)
		}
		out = append(out, Pattern{ID: id, Expr: ps.Pattern, Weight: w, Re: re})
	}
	return out, nil
}

// Table returns a copy of the effective table the pack was compiled from
func (p *Pack) Table() Table {
	t := p.table
	t.Meta = make(map[string]string, len(p.table.Meta))
	for k, v := range p.table.Meta {
		t.Meta[k] = v
	}
	t.Keywords.Terms = append([]string(nil), p.table.Keywords.Terms...)
	t.Prohibited.Patterns = append([]PatternSpec(nil), p.table.Prohibited.Patterns...)
	t.Promotional.Patterns = append([]PatternSpec(nil), p.table.Promotional.Patterns...)
	return t
}
