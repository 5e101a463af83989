package gradetable

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spboyer/cgpa/internal/models"
	"github.com/spboyer/cgpa/internal/validation"
	"gopkg.in/yaml.v3"
)

// PolicyDoc is the file / config representation of a policy.
type PolicyDoc struct {
	Name        string `mapstructure:"name"`
	Description string `mapstructure:"description"`
	Bands       []Band `mapstructure:"bands"`
	Floor       *struct {
		Label  string  `mapstructure:"label"`
		Points float64 `mapstructure:"points"`
	} `mapstructure:"floor"`
}

// DecodePolicy builds a policy from a generic map, as found under the
// "policies" key of the project config. name is used when the map has none.
func DecodePolicy(name string, raw map[string]any) (*Policy, error) {
	var doc PolicyDoc
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:      &doc,
		ErrorUnused: true,
	})
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(raw); err != nil {
		return nil, &ConfigurationError{Policy: name, Band: -1, Reason: err.Error()}
	}
	if doc.Name == "" {
		doc.Name = name
	}

	floor := failing
	if doc.Floor != nil {
		floor = models.GradePoint{Label: doc.Floor.Label, Value: doc.Floor.Points}
	}
	return NewPolicy(doc.Name, doc.Description, doc.Bands, floor)
}

// LoadPolicyFile reads a YAML or JSON policy document, checks it against
// the policy schema and validates the resulting table.
func LoadPolicyFile(path string) (*Policy, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading policy file: %w", err)
	}

	if errs := validation.ValidatePolicyBytes(data); len(errs) > 0 {
		return nil, &ConfigurationError{Policy: path, Band: -1, Reason: strings.Join(errs, "; ")}
	}

	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing policy file %s: %w", path, err)
	}
	return DecodePolicy("", raw)
}

// RegisterAll decodes and registers every entry of a name -> policy map.
func (r *Registry) RegisterAll(raw map[string]map[string]any) error {
	names := make([]string, 0, len(raw))
	for name := range raw {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		p, err := DecodePolicy(name, raw[name])
		if err != nil {
			return err
		}
		if err := r.Register(p); err != nil {
			return err
		}
	}
	return nil
}
