package validation

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"github.com/spboyer/cgpa/schemas"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gopkg.in/yaml.v3"
)

// defaultPrinter is used to format schema validation error messages.
var defaultPrinter = message.NewPrinter(language.English)

// transcriptSchema is the compiled JSON Schema for transcript files.
var transcriptSchema *jsonschema.Schema

// policySchema is the compiled JSON Schema for grading policy files.
var policySchema *jsonschema.Schema

func init() {
	transcriptSchema = mustCompileSchema(schemas.TranscriptSchemaJSON, "transcript.schema.json")
	policySchema = mustCompileSchema(schemas.PolicySchemaJSON, "policy.schema.json")
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

// Kind names the document type a file was validated as.
type Kind string

const (
	KindTranscript Kind = "transcript"
	KindPolicy     Kind = "policy"
)

// ValidateFile validates a YAML or JSON file. The kind is taken from the
// document itself: anything with a "bands" key is a policy.
func ValidateFile(path string) (Kind, []string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", nil, fmt.Errorf("reading %s: %w", filepath.Base(path), err)
	}

	var probe map[string]any
	if err := yaml.Unmarshal(data, &probe); err == nil {
		if _, ok := probe["bands"]; ok {
			return KindPolicy, ValidatePolicyBytes(data), nil
		}
	}
	return KindTranscript, ValidateTranscriptBytes(data), nil
}

// ValidateTranscriptBytes validates raw YAML/JSON bytes against the transcript schema.
func ValidateTranscriptBytes(data []byte) []string {
	return validateYAMLBytes(transcriptSchema, data)
}

// ValidatePolicyBytes validates raw YAML/JSON bytes against the policy schema.
func ValidatePolicyBytes(data []byte) []string {
	return validateYAMLBytes(policySchema, data)
}

func validateYAMLBytes(schema *jsonschema.Schema, data []byte) []string {
	// JSON is a subset of YAML, so one parser covers both formats.
	var yamlDoc any
	if err := yaml.Unmarshal(data, &yamlDoc); err != nil {
		return []string{fmt.Sprintf("YAML parse error: %v", err)}
	}
	if yamlDoc == nil {
		return []string{"/: document is empty"}
	}

	return validateAgainstSchema(schema, convertToJSONCompatible(yamlDoc))
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

// convertToJSONCompatible normalises YAML-decoded values for the validator.
// Mapping keys that are not strings (e.g. "1:" decoded as an int) are
// stringified, which is what a JSON round trip would do.
func convertToJSONCompatible(v any) any {
	switch val := v.(type) {
	case map[string]any:
		result := make(map[string]any, len(val))
		for k, v2 := range val {
			result[k] = convertToJSONCompatible(v2)
		}
		return result
	case map[any]any:
		result := make(map[string]any, len(val))
		for k, v2 := range val {
			result[fmt.Sprint(k)] = convertToJSONCompatible(v2)
		}
		return result
	case []any:
		result := make([]any, len(val))
		for i, v2 := range val {
			result[i] = convertToJSONCompatible(v2)
		}
		return result
	default:
		return val
	}
}
