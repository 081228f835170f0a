// Package metadata manages the metadata.yaml sidecar of a module.
package metadata

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// FileName is the sidecar file name inside a module folder.
const FileName = "metadata.yaml"

// BibFileName is the bibliography file whose keys fill references.
const BibFileName = "references.bib"

// Metadata is the typed view of the known sidecar fields.
type Metadata struct {
	Title      string   `yaml:"title" json:"title"`
	Subtitle   string   `yaml:"subtitle,omitempty" json:"subtitle,omitempty"`
	Author     string   `yaml:"author,omitempty" json:"author,omitempty"`
	Date       string   `yaml:"date,omitempty" json:"date,omitempty"`
	Folder     string   `yaml:"folder,omitempty" json:"folder,omitempty"`
	Tags       []string `yaml:"tags" json:"tags"`
	References []string `yaml:"references" json:"references"`
}

// Document is a metadata.yaml mapping. Keys it does not know about are
// kept in place when the document is written back.
type Document struct {
	root *yaml.Node
}

// Parse reads a sidecar document. Empty input yields an empty mapping.
func Parse(data []byte) (*Document, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", FileName, err)
	}

	if doc.Kind == 0 || len(doc.Content) == 0 {
		return &Document{root: &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}}, nil
	}

	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("parsing %s: top level must be a mapping", FileName)
	}
	return &Document{root: root}, nil
}

// Load reads and parses the sidecar at path.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// value returns the value node for key, or nil.
func (d *Document) value(key string) *yaml.Node {
	for i := 0; i+1 < len(d.root.Content); i += 2 {
		if d.root.Content[i].Value == key {
			return d.root.Content[i+1]
		}
	}
	return nil
}

func (d *Document) set(key string, v *yaml.Node) {
	for i := 0; i+1 < len(d.root.Content); i += 2 {
		if d.root.Content[i].Value == key {
			old := d.root.Content[i+1]
			v.LineComment = old.LineComment
			d.root.Content[i+1] = v
			return
		}
	}
	d.root.Content = append(d.root.Content,
		&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: key}, v)
}

// String returns the scalar value of key, or "" when absent or not a scalar.
func (d *Document) String(key string) string {
	n := d.value(key)
	if n == nil || n.Kind != yaml.ScalarNode || n.Tag == "!!null" {
		return ""
	}
	return n.Value
}

// Strings returns the scalar items of the sequence at key.
func (d *Document) Strings(key string) []string {
	n := d.value(key)
	if n == nil || n.Kind != yaml.SequenceNode {
		return nil
	}
	out := make([]string, 0, len(n.Content))
	for _, item := range n.Content {
		if item.Kind == yaml.ScalarNode {
			out = append(out, item.Value)
		}
	}
	return out
}

// SetString sets key to a string scalar, appending the key if new.
func (d *Document) SetString(key, value string) {
	d.set(key, &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: value})
}

// SetStrings sets key to a sequence of strings, appending the key if new.
func (d *Document) SetStrings(key string, values []string) {
	seq := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
	for _, v := range values {
		seq.Content = append(seq.Content, &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: v})
	}
	d.set(key, seq)
}

// Keys returns the top-level keys in document order.
func (d *Document) Keys() []string {
	keys := make([]string, 0, len(d.root.Content)/2)
	for i := 0; i+1 < len(d.root.Content); i += 2 {
		keys = append(keys, d.root.Content[i].Value)
	}
	return keys
}

// Metadata decodes the known fields.
func (d *Document) Metadata() (Metadata, error) {
	var m Metadata
	if err := d.root.Decode(&m); err != nil {
		return Metadata{}, fmt.Errorf("decoding %s: %w", FileName, err)
	}
	return m, nil
}

// Bytes encodes the document with two-space indentation.
func (d *Document) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(d.root); err != nil {
		return nil, fmt.Errorf("encoding %s: %w", FileName, err)
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
