package content

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Shape is the structural kind of a tense table, decided once when the
// table is decoded.
type Shape int

const (
	ShapeMalformed Shape = iota // not an object; skipped when flattening
	ShapeLeaf                   // {person: form}
	ShapeNested                 // {lemma: {person: form}}
)

func (s Shape) String() string {
	switch s {
	case ShapeLeaf:
		return "leaf"
	case ShapeNested:
		return "nested"
	default:
		return "malformed"
	}
}

// Cell is one person → form entry.
type Cell struct {
	Person string
	Form   string
}

// LemmaForms is the per-lemma table inside a nested tense table.
type LemmaForms struct {
	Lemma string
	Cells []Cell
}

// TenseTable is the value stored under one tense key of a forms table.
type TenseTable struct {
	Tense  string
	Shape  Shape
	Leaf   []Cell
	Nested []LemmaForms

	// raw preserves the decoded JSON so exports round-trip untouched,
	// including entries the flattener skips.
	raw json.RawMessage
}

// Forms is an ordered tense → table mapping. Key order from the source JSON
// is preserved.
type Forms []TenseTable

// LeafTable builds a tense table of shape {person: form}.
func LeafTable(tense string, cells ...Cell) TenseTable {
	return TenseTable{Tense: tense, Shape: ShapeLeaf, Leaf: cells}
}

// NestedTable builds a tense table of shape {lemma: {person: form}}.
func NestedTable(tense string, lemmas ...LemmaForms) TenseTable {
	return TenseTable{Tense: tense, Shape: ShapeNested, Nested: lemmas}
}

// UnmarshalJSON decodes a forms object, probing every tense value once to
// decide its shape.
func (f *Forms) UnmarshalJSON(b []byte) error {
	if bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		*f = nil
		return nil
	}
	fields, err := orderedFields(b)
	if err != nil {
		return fmt.Errorf("forms: %w", err)
	}
	out := make(Forms, 0, len(fields))
	for _, fld := range fields {
		t := probeTable(fld.raw)
		t.Tense = fld.key
		out = append(out, t)
	}
	*f = out
	return nil
}

// MarshalJSON writes the forms object back in its original key order.
func (f Forms) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, t := range f {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(t.Tense)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		val, err := t.rawJSON()
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (t TenseTable) rawJSON() (json.RawMessage, error) {
	if t.raw != nil {
		return t.raw, nil
	}
	switch t.Shape {
	case ShapeLeaf:
		return cellsJSON(t.Leaf)
	case ShapeNested:
		var buf bytes.Buffer
		buf.WriteByte('{')
		for i, lf := range t.Nested {
			if i > 0 {
				buf.WriteByte(',')
			}
			key, err := json.Marshal(lf.Lemma)
			if err != nil {
				return nil, err
			}
			inner, err := cellsJSON(lf.Cells)
			if err != nil {
				return nil, err
			}
			buf.Write(key)
			buf.WriteByte(':')
			buf.Write(inner)
		}
		buf.WriteByte('}')
		return buf.Bytes(), nil
	default:
		return json.RawMessage("null"), nil
	}
}

func cellsJSON(cells []Cell) (json.RawMessage, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, c := range cells {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(c.Person)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(c.Form)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// probeTable classifies a tense value. A table is a leaf when every value is
// a string; otherwise it is treated as nested.
func probeTable(raw json.RawMessage) TenseTable {
	t := TenseTable{raw: append(json.RawMessage(nil), raw...)}
	fields, err := orderedFields(raw)
	if err != nil {
		t.Shape = ShapeMalformed
		return t
	}

	leaf := true
	cells := make([]Cell, 0, len(fields))
	for _, fld := range fields {
		s, ok := asString(fld.raw)
		if !ok {
			leaf = false
			break
		}
		cells = append(cells, Cell{Person: fld.key, Form: s})
	}
	if leaf {
		t.Shape = ShapeLeaf
		t.Leaf = cells
		return t
	}

	t.Shape = ShapeNested
	for _, fld := range fields {
		inner, err := orderedFields(fld.raw)
		if err != nil {
			// Recorded as a shape issue when flattened.
			t.Nested = append(t.Nested, LemmaForms{Lemma: fld.key, Cells: nil})
			continue
		}
		lf := LemmaForms{Lemma: fld.key, Cells: []Cell{}}
		for _, c := range inner {
			if s, ok := asString(c.raw); ok {
				lf.Cells = append(lf.Cells, Cell{Person: c.key, Form: s})
			}
		}
		t.Nested = append(t.Nested, lf)
	}
	return t
}

// ShapeIssue describes a part of a forms table that could not be flattened.
type ShapeIssue struct {
	Topic string
	Tense string
	Lemma string
}

func (i ShapeIssue) Error() string {
	if i.Lemma != "" {
		return fmt.Sprintf("grammar %q tense %q lemma %q: not a person table", i.Topic, i.Tense, i.Lemma)
	}
	return fmt.Sprintf("grammar %q tense %q: not an object", i.Topic, i.Tense)
}

// FlattenGrammar turns every topic's forms into (lemma, tense, person,
// expected) records. Malformed tables are skipped.
func FlattenGrammar(topics []GrammarTopic) []GrammarRecord {
	recs, _ := FlattenGrammarReport(topics)
	return recs
}

// FlattenGrammarReport is FlattenGrammar that also reports what it skipped.
func FlattenGrammarReport(topics []GrammarTopic) ([]GrammarRecord, []ShapeIssue) {
	var (
		recs   []GrammarRecord
		issues []ShapeIssue
	)
	for _, topic := range topics {
		if len(topic.Forms) == 0 {
			continue
		}
		label := topic.Label()
		for _, table := range topic.Forms {
			switch table.Shape {
			case ShapeLeaf:
				lemma := ExtractLemma(label)
				for _, c := range table.Leaf {
					recs = append(recs, GrammarRecord{Lemma: lemma, Tense: table.Tense, Person: c.Person, Expected: c.Form})
				}
			case ShapeNested:
				for _, lf := range table.Nested {
					if lf.Cells == nil {
						issues = append(issues, ShapeIssue{Topic: label, Tense: table.Tense, Lemma: lf.Lemma})
						continue
					}
					for _, c := range lf.Cells {
						recs = append(recs, GrammarRecord{Lemma: lf.Lemma, Tense: table.Tense, Person: c.Person, Expected: c.Form})
					}
				}
			default:
				issues = append(issues, ShapeIssue{Topic: label, Tense: table.Tense})
			}
		}
	}
	return recs, issues
}

// ExtractLemma pulls the verb out of a topic label.
//
//	"Verbo: ir (to go)" -> "ir"
//	"Ser: to be"        -> "Ser"
//	"Irregular verbs"   -> "Irregular verbs"
//
// When a parenthetical gloss follows the colon, the lemma sits between the
// colon and the parenthesis. Without one, the text after the colon is the
// gloss and the lemma is what precedes the colon.
func ExtractLemma(label string) string {
	idx := strings.Index(label, ":")
	if idx < 0 {
		return strings.TrimSpace(label)
	}
	rest := label[idx+1:]
	if p := strings.Index(rest, "("); p >= 0 {
		if lemma := strings.TrimSpace(rest[:p]); lemma != "" {
			return lemma
		}
	}
	if head := strings.TrimSpace(label[:idx]); head != "" {
		return head
	}
	return strings.TrimSpace(rest)
}

type field struct {
	key string
	raw json.RawMessage
}

var errNotObject = errors.New("not a JSON object")

// orderedFields decodes the top level of a JSON object, keeping key order.
func orderedFields(b []byte) ([]field, error) {
	dec := json.NewDecoder(bytes.NewReader(b))
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, errNotObject
	}
	var out []field
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, errNotObject
		}
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return nil, err
		}
		out = append(out, field{key: key, raw: raw})
	}
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return out, nil
}

func asString(raw json.RawMessage) (string, bool) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '"' {
		return "", false
	}
	var s string
	if err := json.Unmarshal(trimmed, &s); err != nil {
		return "", false
	}
	return s, true
}
