package parser

import (
	_ "embed"
	"fmt"

	"github.com/xeipuuv/gojsonschema"
)

var (
	//go:embed schemas/impact_analysis.json
	impactAnalysisSchemaJSON []byte

	//go:embed schemas/test_case_set.json
	testCaseSetSchemaJSON []byte

	impactAnalysisSchema = mustCompileSchema("impact_analysis", impactAnalysisSchemaJSON)
	testCaseSetSchema    = mustCompileSchema("test_case_set", testCaseSetSchemaJSON)
)

func mustCompileSchema(name string, raw []byte) *gojsonschema.Schema {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(raw))
	if err != nil {
		panic(fmt.Sprintf("invalid embedded schema %s: %v", name, err))
	}
	return schema
}

// validate checks doc against schema and returns one line per violation.
func validate(schema *gojsonschema.Schema, doc string) ([]string, error) {
	result, err := schema.Validate(gojsonschema.NewStringLoader(doc))
	if err != nil {
		return nil, err
	}
	if result.Valid() {
		return nil, nil
	}

	details := make([]string, 0, len(result.Errors()))
	for _, e := range result.Errors() {
		details = append(details, e.String())
	}
	return details, nil
}
