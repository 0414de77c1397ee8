// Package flowconfig loads the executor's runtime configuration: worker
// pool size, trace sink selection, and the default per-run timeout.
// Decoding (yaml.v3), validation (go-playground/validator), and defaults
// layering (dario.cat/mergo) follow the teacher's internal/config package
// (types.go's yaml+validate struct tags, validator.go's lazily-built
// singleton validator.Validate with custom field validations) adapted to
// this module's much smaller configuration surface.
package flowconfig

import (
	"os"
	"sync"

	"dario.cat/mergo"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	flowerrors "github.com/flowlang/flow/pkg/errors"
)

// Config is the executor's runtime configuration document.
type Config struct {
	Worker  WorkerConfig `yaml:"worker,omitempty"`
	Trace   TraceConfig  `yaml:"trace,omitempty"`
	Timeout int          `yaml:"timeout_seconds,omitempty" validate:"omitempty,min=1,max=86400"`
}

// WorkerConfig holds worker-pool settings. Nothing in this module reads
// them: the executor runs every job on a single driver loop.
type WorkerConfig struct {
	Concurrency int  `yaml:"concurrency,omitempty" validate:"omitempty,min=1,max=256"`
	Enabled     bool `yaml:"enabled,omitempty"`
}

// TraceConfig controls trace.Sink selection.
type TraceConfig struct {
	Enabled bool   `yaml:"enabled,omitempty"`
	Format  string `yaml:"format,omitempty" validate:"omitempty,oneof=text json"`
}

// Defaults returns the configuration used when no document (or a
// partial one) is supplied.
func Defaults() Config {
	return Config{
		Worker:  WorkerConfig{Concurrency: 4, Enabled: false},
		Trace:   TraceConfig{Enabled: true, Format: "text"},
		Timeout: 300,
	}
}

var (
	validatorOnce sync.Once
	validateInst  *validator.Validate
)

func validatorInstance() *validator.Validate {
	validatorOnce.Do(func() {
		validateInst = validator.New()
	})
	return validateInst
}

// Load reads and validates a configuration document from path, merging it
// over Defaults() so a partial document only overrides the fields it sets
// to non-zero values; a field set to false, 0 or "" keeps its default.
func Load(path string) (Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, flowerrors.NewParseError(path, 0, err)
	}
	return Parse(path, raw)
}

// Parse decodes and validates raw YAML bytes, merging over Defaults().
func Parse(path string, raw []byte) (Config, error) {
	var doc Config
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return Config{}, flowerrors.NewParseError(path, 0, err)
	}

	cfg := Defaults()
	if err := mergo.Merge(&cfg, doc, mergo.WithOverride); err != nil {
		return Config{}, flowerrors.NewValidationError("config", "failed to merge defaults", err)
	}

	if err := validatorInstance().Struct(cfg); err != nil {
		return Config{}, flowerrors.NewValidationError("config", err.Error(), err)
	}
	return cfg, nil
}
