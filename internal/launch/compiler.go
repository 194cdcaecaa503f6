// Package launch compiles model configuration and CLI overrides into the
// launch_server.sh command line submitted to Slurm.
package launch

import (
	"fmt"
	"sort"
	"strings"

	"github.com/vectorinstitute/vec-inf/internal/config"
)

// Field names with special handling during the merge. json_mode is an
// output-format toggle, not a launch parameter, and never reaches the
// command line.
const (
	fieldPipelineParallelism = "pipeline_parallelism"
	fieldEnforceEager        = "enforce_eager"
	fieldTunnel              = "enable_cloudflare_tunnel"
	fieldJSONMode            = "json_mode"
)

// boolFields are coerced to the literal strings "True"/"False" when
// overridden, since launch_server.sh expects Python-style boolean literals.
var boolFields = []string{fieldPipelineParallelism, fieldEnforceEager}

// Compiler turns a model name plus CLI overrides into an executable
// launch command. Overrides use nil (or an absent key) as the "not
// provided" sentinel; any other value wins over the configured default.
type Compiler struct {
	models *config.Store
	script string
}

// NewCompiler creates a Compiler over the given model registry. script is
// the path to the external launch shell script.
func NewCompiler(models *config.Store, script string) *Compiler {
	return &Compiler{models: models, script: script}
}

// Compile resolves the named model, merges overrides over its configured
// defaults and renders the full launch command. The only failure mode is
// an unknown model name.
func (c *Compiler) Compile(modelName string, overrides map[string]any) (string, error) {
	cfg, err := c.models.Get(modelName)
	if err != nil {
		return "", err
	}
	params := mergeParams(cfg, overrides)
	return renderCommand("bash "+c.script, params), nil
}

// mergeParams overlays overrides onto the model's configured parameters.
// Configured parameters keep their file order; override keys that do not
// correspond to a configured parameter are appended in sorted order.
func mergeParams(cfg *config.ModelConfig, overrides map[string]any) []config.Param {
	params := make([]config.Param, len(cfg.Params))
	copy(params, cfg.Params)

	set := func(name string, value any) {
		for i := range params {
			if params[i].Name == name {
				params[i].Value = value
				return
			}
		}
		params = append(params, config.Param{Name: name, Value: value})
	}

	for _, name := range boolFields {
		if v, ok := overrides[name]; ok && v != nil {
			set(name, coerceBool(v))
		}
	}

	if truthy(overrides[fieldTunnel]) {
		set(fieldTunnel, "True")
	}

	rest := make([]string, 0, len(overrides))
	for name := range overrides {
		switch name {
		case fieldJSONMode, fieldPipelineParallelism, fieldEnforceEager, fieldTunnel:
			continue
		}
		rest = append(rest, name)
	}
	sort.Strings(rest)

	for _, name := range rest {
		if v := overrides[name]; v != nil {
			set(name, v)
		}
	}

	return params
}

// coerceBool converts an override value to the literal "True"/"False".
// String inputs compare case-insensitively against "true"; anything else
// goes through generic truthiness.
func coerceBool(v any) string {
	if s, ok := v.(string); ok {
		if strings.EqualFold(s, "true") {
			return "True"
		}
		return "False"
	}
	if truthy(v) {
		return "True"
	}
	return "False"
}

// truthy evaluates generic truthiness: nil, false, zero numbers and empty
// strings are falsy; everything else is truthy.
func truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case string:
		return t != ""
	case int:
		return t != 0
	case int64:
		return t != 0
	case float64:
		return t != 0
	default:
		return true
	}
}

// renderCommand appends one flag group per non-nil parameter. Parameter
// names become kebab-case flags, booleans render as "True"/"False", and
// the tunnel flag renders as a bare flag when enabled or not at all.
func renderCommand(base string, params []config.Param) string {
	var b strings.Builder
	b.WriteString(base)

	for _, p := range params {
		if p.Value == nil {
			continue
		}

		flag := strings.ReplaceAll(p.Name, "_", "-")
		value := formatValue(p.Value)

		if p.Name == fieldTunnel {
			if value == "True" {
				b.WriteString(" --" + flag)
			}
			continue
		}

		b.WriteString(" --" + flag + " " + value)
	}

	return b.String()
}

func formatValue(v any) string {
	if b, ok := v.(bool); ok {
		if b {
			return "True"
		}
		return "False"
	}
	return fmt.Sprint(v)
}
