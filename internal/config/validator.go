package config

import (
	"embed"
	"fmt"
	"os"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	"gopkg.in/yaml.v3"
)

//go:embed schema/config.cue
var schemaFS embed.FS

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors is a collection of validation errors.
type ValidationErrors []ValidationError

// Error implements the error interface.
func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}

	var sb strings.Builder
	sb.WriteString("config validation failed:\n")
	for _, err := range e {
		sb.WriteString(fmt.Sprintf("  %s: %s\n", err.Field, err.Message))
	}
	return sb.String()
}

// Validator validates configuration against the embedded CUE schema.
type Validator struct {
	ctx    *cue.Context
	schema cue.Value
}

// NewValidator creates a new configuration validator.
func NewValidator() (*Validator, error) {
	ctx := cuecontext.New()

	schemaData, err := schemaFS.ReadFile("schema/config.cue")
	if err != nil {
		return nil, fmt.Errorf("reading embedded schema: %w", err)
	}

	compiled := ctx.CompileBytes(schemaData, cue.Filename("config.cue"))
	if compiled.Err() != nil {
		return nil, fmt.Errorf("compiling schema: %w", compiled.Err())
	}

	def := compiled.LookupPath(cue.ParsePath("#Config"))
	if !def.Exists() {
		return nil, fmt.Errorf("schema does not define #Config")
	}

	return &Validator{
		ctx:    ctx,
		schema: def,
	}, nil
}

// ValidateBytes checks raw YAML config content against the schema.
// Unknown keys and badly typed values are reported per field.
func (v *Validator) ValidateBytes(data []byte) error {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return ValidationErrors{{Field: "(file)", Message: fmt.Sprintf("invalid YAML: %v", err)}}
	}
	if raw == nil {
		return nil
	}

	value := v.ctx.Encode(raw)
	if value.Err() != nil {
		return fmt.Errorf("encoding config: %w", value.Err())
	}

	unified := v.schema.Unify(value)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return toValidationErrors(err)
	}
	return nil
}

func toValidationErrors(err error) ValidationErrors {
	var errs ValidationErrors
	seen := make(map[string]bool)
	for _, e := range cueerrors.Errors(err) {
		field := fieldPath(e.Path())
		// Disjunctions report one error per rejected branch; the first is enough.
		if seen[field] {
			continue
		}
		seen[field] = true
		format, args := e.Msg()
		errs = append(errs, ValidationError{Field: field, Message: fmt.Sprintf(format, args...)})
	}
	if len(errs) == 0 {
		errs = append(errs, ValidationError{Field: "(root)", Message: err.Error()})
	}
	return errs
}

// fieldPath joins a CUE error path in config-file terms, dropping the
// schema definition it was unified against.
func fieldPath(path []string) string {
	for len(path) > 0 && strings.HasPrefix(path[0], "#") {
		path = path[1:]
	}
	if len(path) == 0 {
		return "(root)"
	}
	return strings.Join(path, ".")
}

// Validate checks a loaded configuration for values the schema cannot express.
func (v *Validator) Validate(cfg *Config) error {
	var errs ValidationErrors

	if strings.TrimSpace(cfg.Course.ModulesDir) == "" {
		errs = append(errs, ValidationError{
			Field:   "course.modulesDir",
			Message: "must not be empty or whitespace only",
		})
	}
	if strings.TrimSpace(cfg.Course.OutputDir) == "" {
		errs = append(errs, ValidationError{
			Field:   "course.outputDir",
			Message: "must not be empty or whitespace only",
		})
	}
	if strings.TrimSpace(cfg.Latex.Compiler) == "" {
		errs = append(errs, ValidationError{
			Field:   "latex.compiler",
			Message: "must name a compiler executable",
		})
	}
	if cfg.Latex.Passes < 1 {
		errs = append(errs, ValidationError{
			Field:   "latex.passes",
			Message: "must be at least 1",
		})
	}
	if cfg.Latex.Timeout <= 0 {
		errs = append(errs, ValidationError{
			Field:   "latex.timeout",
			Message: "must be positive",
		})
	}
	if cfg.Build.CombinedName != "" && !strings.HasSuffix(cfg.Build.CombinedName, ".tex") {
		errs = append(errs, ValidationError{
			Field:   "build.combinedName",
			Message: "must end in .tex",
		})
	}
	switch cfg.PDF.Backend {
	case "", "auto", "full", "coverpage", "none":
	default:
		errs = append(errs, ValidationError{
			Field:   "pdf.backend",
			Message: fmt.Sprintf("unknown backend %q (expected auto, full, coverpage or none)", cfg.PDF.Backend),
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// ValidateFile validates a configuration file at the given path: first its
// raw shape against the schema, then the loaded values.
func (v *Validator) ValidateFile(path string) error {
	expanded, err := ExpandPath(path)
	if err != nil {
		return fmt.Errorf("expanding config path: %w", err)
	}

	data, err := os.ReadFile(expanded)
	if err != nil {
		return fmt.Errorf("reading config file: %w", err)
	}

	if err := v.ValidateBytes(data); err != nil {
		return err
	}

	cfg, err := NewLoader().WithEnvFile("").Load(expanded)
	if err != nil {
		return fmt.Errorf("loading config file: %w", err)
	}

	return v.Validate(cfg)
}
