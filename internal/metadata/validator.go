package metadata

import (
	"embed"
	"fmt"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	"gopkg.in/yaml.v3"
)

//go:embed schema/metadata.cue
var schemaFS embed.FS

// Validator checks sidecar content against the embedded CUE schema.
type Validator struct {
	ctx    *cue.Context
	schema cue.Value
}

// NewValidator compiles the embedded schema.
func NewValidator() (*Validator, error) {
	ctx := cuecontext.New()

	src, err := schemaFS.ReadFile("schema/metadata.cue")
	if err != nil {
		return nil, fmt.Errorf("reading embedded schema: %w", err)
	}

	compiled := ctx.CompileBytes(src, cue.Filename("metadata.cue"))
	if compiled.Err() != nil {
		return nil, fmt.Errorf("compiling schema: %w", compiled.Err())
	}

	return &Validator{
		ctx:    ctx,
		schema: compiled.LookupPath(cue.ParsePath("#Metadata")),
	}, nil
}

// Validate returns one "field: message" line per schema violation.
func (v *Validator) Validate(data []byte) []string {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return []string{fmt.Sprintf("invalid YAML: %v", err)}
	}
	if raw == nil {
		raw = map[string]any{}
	}

	value := v.ctx.Encode(raw)
	if err := v.schema.Unify(value).Validate(cue.Concrete(true)); err != nil {
		var problems []string
		for _, e := range cueerrors.Errors(err) {
			format, args := e.Msg()
			field := strings.Join(e.Path(), ".")
			if field == "" {
				field = "(root)"
			}
			problems = append(problems, field+": "+fmt.Sprintf(format, args...))
		}
		return problems
	}
	return nil
}
