package gen

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/vmihailenco/msgpack/v5"
	"gopkg.in/yaml.v3"
)

// Snapshot is a plain-data export of the models of a graph, decoupled from
// the graph pointers.
type Snapshot struct {
	Run      string          `json:"run" yaml:"run" msgpack:"run"`
	Schema   string          `json:"schema,omitempty" yaml:"schema,omitempty" msgpack:"schema,omitempty"`
	Database *Database       `json:"database,omitempty" yaml:"database,omitempty" msgpack:"database,omitempty"`
	Models   []ModelSnapshot `json:"models" yaml:"models" msgpack:"models"`
}

// ModelSnapshot is the export of one model.
type ModelSnapshot struct {
	Name    string          `json:"name" yaml:"name" msgpack:"name"`
	Table   string          `json:"table" yaml:"table" msgpack:"table"`
	Through bool            `json:"through,omitempty" yaml:"through,omitempty" msgpack:"through,omitempty"`
	Fields  []FieldSnapshot `json:"fields,omitempty" yaml:"fields,omitempty" msgpack:"fields,omitempty"`
	Edges   []EdgeSnapshot  `json:"edges,omitempty" yaml:"edges,omitempty" msgpack:"edges,omitempty"`
	Unique  [][]string      `json:"unique,omitempty" yaml:"unique,omitempty" msgpack:"unique,omitempty"`
}

// FieldSnapshot is the export of one field.
type FieldSnapshot struct {
	Name   string         `json:"name" yaml:"name" msgpack:"name"`
	Tag    string         `json:"tag" yaml:"tag" msgpack:"tag"`
	Type   string         `json:"type" yaml:"type" msgpack:"type"`
	Column string         `json:"column" yaml:"column" msgpack:"column"`
	Params map[string]any `json:"params,omitempty" yaml:"params,omitempty" msgpack:"params,omitempty"`
}

// EdgeSnapshot is the export of one edge.
type EdgeSnapshot struct {
	Name     string `json:"name" yaml:"name" msgpack:"name"`
	Rel      string `json:"rel" yaml:"rel" msgpack:"rel"`
	Target   string `json:"target" yaml:"target" msgpack:"target"`
	Ref      string `json:"ref,omitempty" yaml:"ref,omitempty" msgpack:"ref,omitempty"`
	Column   string `json:"column,omitempty" yaml:"column,omitempty" msgpack:"column,omitempty"`
	Through  string `json:"through,omitempty" yaml:"through,omitempty" msgpack:"through,omitempty"`
	OnUpdate string `json:"on_update,omitempty" yaml:"on_update,omitempty" msgpack:"on_update,omitempty"`
	OnDelete string `json:"on_delete,omitempty" yaml:"on_delete,omitempty" msgpack:"on_delete,omitempty"`
	Nullable bool   `json:"nullable,omitempty" yaml:"nullable,omitempty" msgpack:"nullable,omitempty"`
	Virtual  bool   `json:"virtual,omitempty" yaml:"virtual,omitempty" msgpack:"virtual,omitempty"`
}

// Export returns the snapshot of the complete models of g.
func Export(g *Graph) *Snapshot {
	s := &Snapshot{
		Run:      g.RunID(),
		Schema:   g.Metadata.Schema,
		Database: g.Database,
	}
	for _, t := range g.Models() {
		s.Models = append(s.Models, exportType(t))
	}
	return s
}

func exportType(t *Type) ModelSnapshot {
	m := ModelSnapshot{Name: t.Name, Table: t.Table, Through: t.Through}
	for _, f := range t.Fields {
		m.Fields = append(m.Fields, FieldSnapshot{
			Name:   f.Name,
			Tag:    f.Tag,
			Type:   f.Desc.Info.String(),
			Column: f.Column(),
			Params: f.Params.Clone(),
		})
	}
	for _, e := range t.Edges {
		es := EdgeSnapshot{
			Name:     e.Name,
			Rel:      e.Rel.String(),
			Target:   e.Target(),
			Column:   e.Column(),
			OnUpdate: e.OnUpdate().String(),
			OnDelete: e.OnDelete().String(),
			Virtual:  e.Virtual,
		}
		if e.Ref != nil {
			es.Ref = e.Ref.Name
		}
		if e.Through != nil {
			es.Through = e.Through.Name
		}
		if e.Desc != nil {
			es.Nullable = e.Desc.Nullable
		}
		m.Edges = append(m.Edges, es)
	}
	for _, idx := range t.Indexes {
		m.Unique = append(m.Unique, idx.Columns)
	}
	return m
}

// Encoding is a snapshot serialization format.
type Encoding string

// Snapshot encodings.
const (
	EncodingJSON    Encoding = "json"
	EncodingYAML    Encoding = "yaml"
	EncodingMsgpack Encoding = "msgpack"
)

// EncodingFromPath returns the encoding matching the extension of path.
func EncodingFromPath(path string) (Encoding, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		return EncodingJSON, nil
	case ".yaml", ".yml":
		return EncodingYAML, nil
	case ".msgpack", ".mpk":
		return EncodingMsgpack, nil
	default:
		return "", NewConfigError("Export", path, fmt.Sprintf("unknown export extension %q", ext))
	}
}

// Encode writes s to w in the given encoding.
func (s *Snapshot) Encode(w io.Writer, enc Encoding) error {
	var err error
	switch enc {
	case EncodingJSON:
		e := json.NewEncoder(w)
		e.SetIndent("", "  ")
		err = e.Encode(s)
	case EncodingYAML:
		e := yaml.NewEncoder(w)
		e.SetIndent(2)
		if err = e.Encode(s); err == nil {
			err = e.Close()
		}
	case EncodingMsgpack:
		err = msgpack.NewEncoder(w).Encode(s)
	default:
		return NewGenerationError("export", "", fmt.Sprintf("unknown encoding %q", enc), nil)
	}
	if err != nil {
		return NewGenerationError("export", "", "encode "+string(enc), err)
	}
	return nil
}

// Marshal returns s in the given encoding.
func (s *Snapshot) Marshal(enc Encoding) ([]byte, error) {
	var buf bytes.Buffer
	if err := s.Encode(&buf, enc); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
