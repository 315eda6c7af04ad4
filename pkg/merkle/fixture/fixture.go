// Package fixture loads the small YAML documents the golden end-to-end
// scenarios are expressed as: a named sequence of tree operations plus the
// root hash they must produce.
package fixture

import (
	"encoding/hex"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/fuellabs/merkle-go/pkg/merkle/hashing"
)

// Value is a scalar encoded either as hex or as raw UTF-8 text, matching
// the fixture format's `{value, encoding}` tag.
type Value struct {
	Raw      string `yaml:"value"`
	Encoding string `yaml:"encoding"`
}

// Bytes decodes v according to its encoding. An empty encoding defaults to
// hex, matching how every hash and digest in this module is normally
// written.
func (v Value) Bytes() ([]byte, error) {
	switch v.Encoding {
	case "", "hex":
		return hex.DecodeString(v.Raw)
	case "utf-8", "utf8":
		return []byte(v.Raw), nil
	default:
		return nil, fmt.Errorf("fixture: unknown encoding %q", v.Encoding)
	}
}

// Step is a single tree operation: Push for the binary/sum trees, Update
// or Delete for the sparse tree. Fee is only meaningful for sum-tree
// fixtures.
type Step struct {
	Action string `yaml:"action"`
	Key    *Value `yaml:"key,omitempty"`
	Data   *Value `yaml:"data,omitempty"`
	Fee    *uint64 `yaml:"fee,omitempty"`
}

// Scenario is a complete golden-output fixture.
type Scenario struct {
	Name         string `yaml:"name"`
	ExpectedRoot string `yaml:"expected_root"`
	Steps        []Step `yaml:"steps"`
}

// Parse decodes a single YAML scenario document.
func Parse(data []byte) (Scenario, error) {
	var s Scenario
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Scenario{}, fmt.Errorf("fixture.Parse: %w", err)
	}
	return s, nil
}

// ExpectedRootDigest decodes ExpectedRoot as a 32-byte hex digest.
func (s Scenario) ExpectedRootDigest() (hashing.Digest, error) {
	raw, err := hex.DecodeString(s.ExpectedRoot)
	if err != nil {
		return hashing.Digest{}, fmt.Errorf("fixture: bad expected_root: %w", err)
	}
	if len(raw) != hashing.Size {
		return hashing.Digest{}, fmt.Errorf("fixture: expected_root must be %d bytes, got %d", hashing.Size, len(raw))
	}
	var d hashing.Digest
	copy(d[:], raw)
	return d, nil
}
