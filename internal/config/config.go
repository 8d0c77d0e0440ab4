package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"appendlist"
	"appendlist/internal/functional"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"
	"github.com/zclconf/go-cty/cty/function/stdlib"
	"golang.org/x/exp/slices"
)

const (
	Filename           = "appendlist.hcl"
	DefaultParallelism = 4
	DefaultCount       = 1_000_000
	DefaultScenario    = "default"
)

const (
	KindInt    = "int"
	KindString = "string"
)

var kinds = []string{KindInt, KindString}

type Config struct {
	CWD            string
	Filename       string // empty when no file was read
	FirstChunkSize int
	Parallelism    int
	Scenarios      []Scenario
}

// Scenario fills one list with Count values and reads them back.
type Scenario struct {
	Name   string
	Count  int
	Kind   string
	Verify bool
}

type file struct {
	FirstChunkSize *int            `hcl:"first_chunk_size,optional"`
	Parallelism    *int            `hcl:"parallelism,optional"`
	Scenarios      []scenarioBlock `hcl:"scenario,block"`
}

type scenarioBlock struct {
	Name   string  `hcl:"name,label"`
	Count  int     `hcl:"count"`
	Kind   *string `hcl:"kind,optional"`
	Verify *bool   `hcl:"verify,optional"`
}

// Default is the configuration used when the working directory holds no
// configuration file.
func Default(cwd string) *Config {
	return &Config{
		CWD:            cwd,
		FirstChunkSize: appendlist.DefaultFirstChunkSize,
		Parallelism:    DefaultParallelism,
		Scenarios: []Scenario{{
			Name:   DefaultScenario,
			Count:  DefaultCount,
			Kind:   KindInt,
			Verify: true,
		}},
	}
}

// Load reads filename relative to cwd. A missing file yields Default unless
// required is set.
func Load(cwd, filename string, required bool, parser *hclparse.Parser) (*Config, hcl.Diagnostics) {
	path := filename
	if !filepath.IsAbs(path) {
		path = filepath.Join(cwd, filename)
	}

	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) && !required {
		return Default(cwd), nil
	}

	f, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, diags
	}

	var raw file
	diags = append(diags, gohcl.DecodeBody(f.Body, EvalContext(cwd, path), &raw)...)
	if diags.HasErrors() {
		return nil, diags
	}

	config := Default(cwd)
	config.Filename = path
	if raw.FirstChunkSize != nil {
		config.FirstChunkSize = *raw.FirstChunkSize
	}
	if raw.Parallelism != nil {
		config.Parallelism = *raw.Parallelism
	}
	if len(raw.Scenarios) > 0 {
		config.Scenarios = functional.Map(raw.Scenarios, scenarioBlock.scenario)
	}

	body, _ := f.Body.(*hclsyntax.Body)
	diags = append(diags, config.validate(body)...)
	if diags.HasErrors() {
		return nil, diags
	}

	return config, diags
}

func (block scenarioBlock) scenario() Scenario {
	result := Scenario{Name: block.Name, Count: block.Count, Kind: KindInt, Verify: true}
	if block.Kind != nil {
		result.Kind = *block.Kind
	}
	if block.Verify != nil {
		result.Verify = *block.Verify
	}

	return result
}

// EvalContext exposes the environment, the process id and the configuration
// paths to expressions, plus a few cty standard functions.
func EvalContext(cwd, filename string) *hcl.EvalContext {
	env := map[string]cty.Value{}
	for key, value := range Env() {
		env[key] = cty.StringVal(value)
	}

	envVal := cty.MapValEmpty(cty.String)
	if len(env) > 0 {
		envVal = cty.MapVal(env)
	}

	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"env": envVal,
			"pid": cty.NumberIntVal(int64(os.Getpid())),
			"path": cty.ObjectVal(map[string]cty.Value{
				"root":    cty.StringVal(cwd),
				"current": cty.StringVal(filename),
			}),
		},
		Functions: map[string]function.Function{
			"max":    stdlib.MaxFunc,
			"min":    stdlib.MinFunc,
			"upper":  stdlib.UpperFunc,
			"lower":  stdlib.LowerFunc,
			"format": stdlib.FormatFunc,
		},
	}
}

func Env() map[string]string {
	env := map[string]string{}
	for _, keyVal := range os.Environ() {
		key, val, _ := strings.Cut(keyVal, "=")
		env[key] = val
	}

	return env
}

func (config *Config) validate(body *hclsyntax.Body) hcl.Diagnostics {
	var diags hcl.Diagnostics

	if _, err := appendlist.NewSized[struct{}](config.FirstChunkSize); err != nil {
		diags = append(diags, &hcl.Diagnostic{
			Severity: hcl.DiagError,
			Summary:  `invalid "first_chunk_size"`,
			Detail:   fmt.Sprintf("%s; try %d", err, appendlist.DefaultFirstChunkSize),
			Subject:  attributeRange(body, "first_chunk_size"),
		})
	}

	if config.Parallelism < 1 {
		diags = append(diags, &hcl.Diagnostic{
			Severity: hcl.DiagError,
			Summary:  `"parallelism" must be at least 1`,
			Subject:  attributeRange(body, "parallelism"),
		})
	}

	seen := map[string]bool{}
	for index, scenario := range config.Scenarios {
		subject := blockRange(body, index)
		if seen[scenario.Name] {
			diags = append(diags, &hcl.Diagnostic{
				Severity: hcl.DiagError,
				Summary:  fmt.Sprintf("duplicate scenario %q", scenario.Name),
				Subject:  subject,
			})
		}
		seen[scenario.Name] = true

		if scenario.Count < 0 {
			diags = append(diags, &hcl.Diagnostic{
				Severity: hcl.DiagError,
				Summary:  fmt.Sprintf(`scenario %q: "count" cannot be negative`, scenario.Name),
				Subject:  subject,
			})
		}

		if !slices.Contains(kinds, scenario.Kind) {
			diags = append(diags, &hcl.Diagnostic{
				Severity: hcl.DiagError,
				Summary:  fmt.Sprintf(`scenario %q: unknown "kind" %q`, scenario.Name, scenario.Kind),
				Detail:   fmt.Sprintf("did you mean %q?", functional.Suggest(scenario.Kind, kinds)),
				Subject:  subject,
			})
		}
	}

	return diags
}

// Names lists the scenario names in declaration order.
func (config *Config) Names() []string {
	return functional.Map(config.Scenarios, func(s Scenario) string { return s.Name })
}

// Select returns the named scenarios, or all of them when names is empty.
// An unknown name produces a diagnostic suggesting the closest known one.
func (config *Config) Select(names []string) ([]Scenario, hcl.Diagnostics) {
	if len(names) == 0 {
		return config.Scenarios, nil
	}

	var diags hcl.Diagnostics
	result := make([]Scenario, 0, len(names))
	for _, name := range names {
		index := slices.IndexFunc(config.Scenarios, func(s Scenario) bool { return s.Name == name })
		if index < 0 {
			detail := fmt.Sprintf("known scenarios: %s", strings.Join(config.Names(), ", "))
			if suggestion := functional.Suggest(name, config.Names()); suggestion != "" {
				detail = fmt.Sprintf("did you mean %q?", suggestion)
			}

			diags = append(diags, &hcl.Diagnostic{
				Severity: hcl.DiagError,
				Summary:  fmt.Sprintf("unknown scenario %q", name),
				Detail:   detail,
			})
			continue
		}

		result = append(result, config.Scenarios[index])
	}

	return result, diags
}

func attributeRange(body *hclsyntax.Body, name string) *hcl.Range {
	if body == nil {
		return nil
	}

	if attr, ok := body.Attributes[name]; ok {
		return attr.SrcRange.Ptr()
	}

	return nil
}

// blockRange finds the definition range of the index-th scenario block.
func blockRange(body *hclsyntax.Body, index int) *hcl.Range {
	if body == nil {
		return nil
	}

	for _, block := range body.Blocks {
		if block.Type != "scenario" {
			continue
		}

		if index == 0 {
			return block.DefRange().Ptr()
		}
		index--
	}

	return nil
}
