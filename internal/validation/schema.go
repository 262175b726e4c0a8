// Package validation checks scorecard input documents against the embedded
// JSON Schemas plus the few rules a schema cannot express.
package validation

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gopkg.in/yaml.v3"

	"github.com/spboyer/scorecard/internal/models"
	"github.com/spboyer/scorecard/schemas"
)

// Kind names a document type.
type Kind string

const (
	KindBenchmark Kind = "benchmark"
	KindStrategy  Kind = "strategy"
)

// ParseKind accepts "benchmark" or "strategy".
func ParseKind(s string) (Kind, error) {
	switch k := Kind(strings.ToLower(strings.TrimSpace(s))); k {
	case KindBenchmark, KindStrategy:
		return k, nil
	}
	return "", fmt.Errorf("unknown document kind %q: must be benchmark or strategy", s)
}

// defaultPrinter is used to format schema validation error messages.
var defaultPrinter = message.NewPrinter(language.English)

var (
	benchmarkSchema *jsonschema.Schema
	strategySchema  *jsonschema.Schema
)

func init() {
	benchmarkSchema = mustCompileSchema(schemas.BenchmarkSchemaJSON, "benchmark.schema.json")
	strategySchema = mustCompileSchema(schemas.StrategySchemaJSON, "strategy.schema.json")
}

func mustCompileSchema(raw string, name string) *jsonschema.Schema {
	var schemaDoc any
	if err := json.Unmarshal([]byte(raw), &schemaDoc); err != nil {
		panic(fmt.Sprintf("failed to parse embedded %s: %v", name, err))
	}

	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(name, schemaDoc); err != nil {
		panic(fmt.Sprintf("failed to add %s resource: %v", name, err))
	}

	sch, err := compiler.Compile(name)
	if err != nil {
		panic(fmt.Sprintf("failed to compile %s: %v", name, err))
	}
	return sch
}

// ValidateFile reads path and validates it as the given kind. YAML and JSON
// are both accepted.
func ValidateFile(kind Kind, path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s document: %w", kind, err)
	}
	return ValidateBytes(kind, data), nil
}

// ValidateBytes dispatches on kind.
func ValidateBytes(kind Kind, data []byte) []string {
	if kind == KindStrategy {
		return ValidateStrategyBytes(data)
	}
	return ValidateBenchmarkBytes(data)
}

// ValidateBenchmarkBytes validates a benchmark input document. Metric names
// must be unique across the document.
func ValidateBenchmarkBytes(data []byte) []string {
	if errs := validateYAMLBytes(benchmarkSchema, data); len(errs) > 0 {
		return errs
	}

	var doc models.BenchmarkDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return []string{fmt.Sprintf("decode error: %v", err)}
	}

	var errs []string
	seen := make(map[string]int, len(doc.Metrics))
	for i, m := range doc.Metrics {
		if first, dup := seen[m.MetricName]; dup {
			errs = append(errs, fmt.Sprintf("/metrics/%d/metric_name: duplicate metric %q (first at /metrics/%d)", i, m.MetricName, first))
			continue
		}
		seen[m.MetricName] = i
	}
	return errs
}

// ValidateStrategyBytes validates a strategy input document. Objective and
// investment must name a known value.
func ValidateStrategyBytes(data []byte) []string {
	if errs := validateYAMLBytes(strategySchema, data); len(errs) > 0 {
		return errs
	}

	var doc struct {
		Objective  string   `yaml:"objective"`
		Investment string   `yaml:"investment"`
		Metrics    []string `yaml:"metrics"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return []string{fmt.Sprintf("decode error: %v", err)}
	}

	var errs []string
	if _, ok := models.ParseObjective(doc.Objective); !ok {
		errs = append(errs, fmt.Sprintf("/objective: unknown objective %q", doc.Objective))
	}
	if _, ok := models.ParseInvestment(doc.Investment); !ok {
		errs = append(errs, fmt.Sprintf("/investment: unknown investment tier %q", doc.Investment))
	}
	seen := make(map[string]bool, len(doc.Metrics))
	for i, m := range doc.Metrics {
		if seen[m] {
			errs = append(errs, fmt.Sprintf("/metrics/%d: duplicate metric %q", i, m))
		}
		seen[m] = true
	}
	return errs
}

func validateYAMLBytes(schema *jsonschema.Schema, data []byte) []string {
	var yamlDoc any
	if err := yaml.Unmarshal(data, &yamlDoc); err != nil {
		return []string{fmt.Sprintf("YAML parse error: %v", err)}
	}
	if yamlDoc == nil {
		return []string{"/: document is empty"}
	}

	// The schema validator cannot compare NaN or infinities.
	var errs []string
	collectNonFinite(yamlDoc, "", &errs)
	if len(errs) > 0 {
		return errs
	}

	return validateAgainstSchema(schema, convertToJSONCompatible(yamlDoc))
}

func collectNonFinite(v any, loc string, errs *[]string) {
	switch val := v.(type) {
	case map[string]any:
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			collectNonFinite(val[k], loc+"/"+k, errs)
		}
	case []any:
		for i, v2 := range val {
			collectNonFinite(v2, loc+"/"+strconv.Itoa(i), errs)
		}
	case float64:
		if math.IsNaN(val) || math.IsInf(val, 0) {
			if loc == "" {
				loc = "/"
			}
			*errs = append(*errs, fmt.Sprintf("%s: non-finite number", loc))
		}
	}
}

func validateAgainstSchema(schema *jsonschema.Schema, instance any) []string {
	err := schema.Validate(instance)
	if err == nil {
		return nil
	}
	ve, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return []string{fmt.Sprintf("schema: %v", err)}
	}
	var errs []string
	collectSchemaErrors(ve, &errs)
	return errs
}

func collectSchemaErrors(ve *jsonschema.ValidationError, errs *[]string) {
	if len(ve.Causes) == 0 {
		loc := "/"
		if len(ve.InstanceLocation) > 0 {
			loc = "/" + strings.Join(ve.InstanceLocation, "/")
		}
		*errs = append(*errs, fmt.Sprintf("%s: %s", loc, ve.ErrorKind.LocalizedString(defaultPrinter)))
		return
	}
	for _, c := range ve.Causes {
		collectSchemaErrors(c, errs)
	}
}

// convertToJSONCompatible normalizes YAML-decoded values for the validator.
// Integers become float64 the way encoding/json would produce them.
func convertToJSONCompatible(v any) any {
	switch val := v.(type) {
	case map[string]any:
		result := make(map[string]any, len(val))
		for k, v2 := range val {
			result[k] = convertToJSONCompatible(v2)
		}
		return result
	case []any:
		result := make([]any, len(val))
		for i, v2 := range val {
			result[i] = convertToJSONCompatible(v2)
		}
		return result
	case int:
		return float64(val)
	case int64:
		return float64(val)
	case uint64:
		return float64(val)
	default:
		return val
	}
}
