// Package schema validates the raw property bag against an embedded JSON
// Schema before typed parsing, so type mistakes (a numeric tag, a misspelled
// boolean) surface with field-level messages.
package schema

import (
	_ "embed"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed properties.schema.json
var propertiesSchema []byte

// Validate checks a raw property bag against the embedded schema. The typed
// parser remains the authority for presence and semantic rules; this catches
// shape errors early with better messages.
func Validate(bag map[string]any) error {
	schemaLoader := gojsonschema.NewBytesLoader(propertiesSchema)
	documentLoader := gojsonschema.NewGoLoader(bag)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return fmt.Errorf("failed to run schema validation: %w", err)
	}
	if result.Valid() {
		return nil
	}

	messages := make([]string, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		messages = append(messages, desc.String())
	}
	return fmt.Errorf("property bag failed schema validation: %s", strings.Join(messages, "; "))
}
