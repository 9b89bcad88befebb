package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// reportSchema covers the fields the aggregator and renderer read. Extra
// fields emitted by newer benchmark library versions are allowed. Aggregate
// records only need cpu_time; real_time and iterations are required on
// iteration records. Run types other than iteration and aggregate pass
// validation and are skipped by Aggregate.
const reportSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["benchmarks"],
  "properties": {
    "context": {"type": "object"},
    "benchmarks": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["name", "run_type", "cpu_time"],
        "properties": {
          "name": {"type": "string"},
          "run_type": {"type": "string"},
          "aggregate_name": {"type": "string"},
          "cpu_time": {"type": "number"},
          "real_time": {"type": "number"},
          "iterations": {"type": "integer"},
          "time_unit": {"type": "string"}
        },
        "if": {
          "required": ["run_type"],
          "properties": {"run_type": {"const": "iteration"}}
        },
        "then": {"required": ["real_time", "iterations"]}
      }
    }
  }
}`

var schemaLoader = gojsonschema.NewStringLoader(reportSchema)

// SchemaError lists every violation found while validating a report.
type SchemaError struct {
	Violations []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("report does not match schema: %s", strings.Join(e.Violations, "; "))
}

// Load reads, validates and decodes the report at path.
func Load(path string) (*Report, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open report %s: %w", path, err)
	}
	defer file.Close()

	rep, err := Decode(file)
	if err != nil {
		return nil, fmt.Errorf("load report %s: %w", path, err)
	}
	return rep, nil
}

// Decode validates the JSON read from r against the report schema and decodes it.
func Decode(r io.Reader) (*Report, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read report: %w", err)
	}
	if err := validate(raw); err != nil {
		return nil, err
	}

	var rep Report
	dec := json.NewDecoder(bytes.NewReader(raw))
	if err := dec.Decode(&rep); err != nil {
		return nil, fmt.Errorf("decode report: %w", err)
	}
	return &rep, nil
}

func validate(raw []byte) error {
	result, err := gojsonschema.Validate(schemaLoader, gojsonschema.NewBytesLoader(raw))
	if err != nil {
		return fmt.Errorf("validate report: %w", err)
	}
	if result.Valid() {
		return nil
	}
	violations := make([]string, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		violations = append(violations, fmt.Sprintf("%s: %s", desc.Field(), desc.Description()))
	}
	return &SchemaError{Violations: violations}
}
