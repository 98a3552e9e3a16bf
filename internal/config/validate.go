package config

import (
	_ "embed"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed schema.json
var schemaJSON string

// ErrInvalidConfig is returned when config settings do not match the schema.
var ErrInvalidConfig = errors.New("invalid config")

// ValidateSettings checks raw settings against the embedded schema. Each
// violation is reported as "<key>: <reason>", with keys in the same dotted
// form the config file and POUROVER_* variables use.
func ValidateSettings(settings map[string]any) error {
	schemaLoader := gojsonschema.NewStringLoader(schemaJSON)
	documentLoader := gojsonschema.NewGoLoader(settings)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return fmt.Errorf("load config schema: %w", err)
	}
	if result.Valid() {
		return nil
	}

	errs := make([]string, 0, len(result.Errors()))
	for _, schemaErr := range result.Errors() {
		key := schemaErr.Field()
		if key == gojsonschema.STRING_ROOT_SCHEMA_PROPERTY {
			key = "config"
		}
		errs = append(errs, key+": "+schemaErr.Description())
	}
	sort.Strings(errs)

	return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(errs, "; "))
}
