package content

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"sync"

	"github.com/pkg/errors"
	"github.com/santhosh-tekuri/jsonschema/v6"
)

// ExportFileName is the default file name for exported curriculum JSON.
const ExportFileName = "polyglot_data.json"

//go:embed curriculum.schema.json
var curriculumSchema []byte

const curriculumSchemaURL = "schema://polyglot/curriculum.json"

var (
	schemaOnce     sync.Once
	compiledSchema *jsonschema.Schema
	schemaErr      error
)

func compiled() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		var def any
		if err := json.Unmarshal(curriculumSchema, &def); err != nil {
			schemaErr = errors.Wrap(err, "parse curriculum schema")
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource(curriculumSchemaURL, def); err != nil {
			schemaErr = errors.Wrap(err, "add curriculum schema")
			return
		}
		compiledSchema, schemaErr = c.Compile(curriculumSchemaURL)
		if schemaErr != nil {
			schemaErr = errors.Wrap(schemaErr, "compile curriculum schema")
		}
	})
	return compiledSchema, schemaErr
}

// Validate checks raw JSON against the curriculum schema.
func Validate(raw []byte) error {
	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return errors.Wrap(err, "invalid JSON")
	}
	sch, err := compiled()
	if err != nil {
		return err
	}
	if err := sch.Validate(parsed); err != nil {
		return errors.Wrap(err, "curriculum does not match schema")
	}
	return nil
}

// Parse validates and decodes curriculum JSON.
func Parse(raw []byte) (*Data, error) {
	if err := Validate(raw); err != nil {
		return nil, err
	}
	var d Data
	if err := json.Unmarshal(raw, &d); err != nil {
		return nil, errors.Wrap(err, "decode curriculum")
	}
	if d.Courses == nil {
		d.Courses = []Course{}
	}
	return &d, nil
}

// Marshal encodes d as 2-space indented JSON, the export format.
func Marshal(d *Data) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(d); err != nil {
		return nil, errors.Wrap(err, "encode curriculum")
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// Clone returns a deep copy of d.
func Clone(d *Data) *Data {
	if d == nil {
		return nil
	}
	b, err := json.Marshal(d)
	if err != nil {
		panic(errors.Wrap(err, "clone curriculum"))
	}
	var out Data
	if err := json.Unmarshal(b, &out); err != nil {
		panic(errors.Wrap(err, "clone curriculum"))
	}
	return &out
}
