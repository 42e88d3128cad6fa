package toc

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultTitle is used when the title option is absent.
const DefaultTitle = "Content"

// Config is the user-facing table of contents configuration, as read from
// YAML or JSON. It is validated by New.
type Config struct {
	// Insert maps exactly one position (after, before, afterChildren,
	// beforeChildren) to a selector.
	Insert map[string]string `yaml:"insert,omitempty" json:"insert,omitempty"`
	// After is the legacy spelling of insert: {after: selector}.
	After string `yaml:"after,omitempty" json:"after,omitempty"`
	// Title is the heading above the list. nil means DefaultTitle; an
	// explicit null suppresses it.
	Title *Title `yaml:"title,omitempty" json:"title,omitempty"`
	// Toggle is [showLabel, hideLabel] or [showLabel, hideLabel, checked].
	Toggle []any `yaml:"toggle,omitempty" json:"toggle,omitempty"`

	// The ignore flags are pointers so an explicit false can override a
	// default of true in Merge.
	IgnoreMissingSelector *bool `yaml:"ignoreMissingSelector,omitempty" json:"ignoreMissingSelector,omitempty"`
	IgnoreMissingHeadings *bool `yaml:"ignoreMissingHeadings,omitempty" json:"ignoreMissingHeadings,omitempty"`
}

// Bool returns a pointer to b, for the ignore flags.
func Bool(b bool) *bool {
	return &b
}

func enabled(b *bool) bool {
	return b != nil && *b
}

// Title is the title option. An empty title, or false in YAML, suppresses
// the heading.
type Title string

// NewTitle returns a title option for s.
func NewTitle(s string) *Title {
	t := Title(s)
	return &t
}

// UnmarshalYAML accepts a string, or false to suppress the title.
func (t *Title) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("title must be a string or false")
	}
	switch value.ShortTag() {
	case "!!str":
		*t = Title(value.Value)
		return nil
	case "!!bool":
		var b bool
		if err := value.Decode(&b); err != nil {
			return err
		}
		if b {
			return fmt.Errorf("title must be a string or false, got true")
		}
		*t = ""
		return nil
	}
	return fmt.Errorf("title must be a string or false, got %s", value.Value)
}

// ParseConfig decodes a YAML (or JSON) configuration. Unknown keys and
// mistyped values are configuration errors. Empty input yields a zero Config.
// title: null suppresses the title like false does.
func ParseConfig(data []byte) (Config, error) {
	var cfg Config
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, &Error{Kind: ConfigurationError, Msg: "decode config", Err: err}
	}
	if cfg.Title == nil && titleIsNull(data) {
		cfg.Title = NewTitle("")
	}
	return cfg, nil
}

// titleIsNull reports whether data sets title to null. The decoder leaves a
// null pointer field nil, which would otherwise read as absent.
func titleIsNull(data []byte) bool {
	var raw struct {
		Title yaml.Node `yaml:"title"`
	}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return false
	}
	return raw.Title.Kind == yaml.ScalarNode && raw.Title.ShortTag() == "!!null"
}

// LoadConfig reads and decodes a configuration file.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read toc config: %w", err)
	}
	return ParseConfig(data)
}

// Merge returns c with every option set in o applied on top. Insert and the
// legacy After option replace each other as a pair.
func (c Config) Merge(o Config) Config {
	if len(o.Insert) > 0 || o.After != "" {
		c.Insert = o.Insert
		c.After = o.After
	}
	if o.Title != nil {
		c.Title = o.Title
	}
	if o.Toggle != nil {
		c.Toggle = o.Toggle
	}
	if o.IgnoreMissingSelector != nil {
		c.IgnoreMissingSelector = o.IgnoreMissingSelector
	}
	if o.IgnoreMissingHeadings != nil {
		c.IgnoreMissingHeadings = o.IgnoreMissingHeadings
	}
	return c
}
