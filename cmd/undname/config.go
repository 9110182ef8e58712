package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/skdltmxn/undname-go/demangle"
	"gopkg.in/yaml.v3"
)

// Profile is a saved set of demangling options.
//
//	flags: [no-calling-convention, name-only]
//	max_nodes: 4096
//	format: json
type Profile struct {
	Flags    []string `yaml:"flags"`
	MaxNodes int      `yaml:"max_nodes"`
	Format   string   `yaml:"format"`
}

func loadProfile(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return parseProfile(data)
}

func parseProfile(data []byte) (*Profile, error) {
	p := &Profile{}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(p); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("invalid profile: %w", err)
	}
	if _, err := p.renderFlags(); err != nil {
		return nil, err
	}
	if p.MaxNodes < 0 {
		return nil, fmt.Errorf("invalid profile: max_nodes must not be negative")
	}
	switch p.Format {
	case "", "text", "json":
	default:
		return nil, fmt.Errorf("invalid profile: unknown format %q", p.Format)
	}
	return p, nil
}

func (p *Profile) renderFlags() (demangle.Flags, error) {
	return demangle.ParseFlags(p.Flags)
}

// format returns the output format, letting an explicit command-line value
// win over the profile.
func (p *Profile) format(flagValue string, changed bool) string {
	if changed || p.Format == "" {
		return flagValue
	}
	return p.Format
}
