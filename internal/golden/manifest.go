// Package golden loads the golden-vector corpus manifest: a small
// yaml.v3-tagged struct tree describing a corpus of synthetic
// per-meter-family captures, plus a documented list of any captures
// requiring Tolerate mode, and
// drives each capture through the reader facade.
package golden

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"gosml/transport"
)

// Family describes one golden-vector capture: which meter family it
// represents, where its capture file lives relative to the manifest,
// and what the decoder is expected to find in it.
type Family struct {
	Name             string `yaml:"name"`
	Description      string `yaml:"description"`
	Capture          string `yaml:"capture"`
	OnInvalidPadding string `yaml:"on_invalid_padding"`
	MinListEntries   int    `yaml:"min_list_entries"`
}

// Policy translates OnInvalidPadding into the transport.Policy value
// the reader needs to decode this family's capture.
func (f Family) Policy() (transport.Policy, error) {
	switch f.OnInvalidPadding {
	case "reject":
		return transport.Reject, nil
	case "tolerate":
		return transport.Tolerate, nil
	default:
		return 0, fmt.Errorf("golden: family %q: unknown on_invalid_padding %q", f.Name, f.OnInvalidPadding)
	}
}

// Manifest is the top-level shape of testdata/manifest.yaml.
type Manifest struct {
	Families []Family `yaml:"families"`
}

// LoadManifest reads and parses the manifest at path.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("golden: read manifest: %w", err)
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("golden: parse manifest: %w", err)
	}

	return &m, nil
}
