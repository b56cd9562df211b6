package cvparse

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/fadilmartias/harvard-cv/internal/model"
	"github.com/go-playground/validator/v10"
	"github.com/tidwall/gjson"
	"github.com/xeipuuv/gojsonschema"
)

//go:embed cv.schema.json
var schemaJSON string

var (
	cvSchema = mustLoadSchema()
	validate = newValidator()
)

func mustLoadSchema() *gojsonschema.Schema {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(schemaJSON))
	if err != nil {
		panic(fmt.Sprintf("cvparse: invalid embedded schema: %v", err))
	}
	return schema
}

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// ParseAndValidate turns a model reply into a CV. It fails with
// *MalformedOutputError when the text is not JSON and *SchemaViolationError
// when it is JSON of the wrong shape. Nothing is partially accepted.
func ParseAndValidate(output string) (*model.CV, error) {
	cleaned := StripCodeFence(output)
	if !gjson.Valid(cleaned) {
		return nil, &MalformedOutputError{Raw: cleaned}
	}

	if err := validateShape(cleaned); err != nil {
		return nil, err
	}

	var cv model.CV
	if err := json.Unmarshal([]byte(cleaned), &cv); err != nil {
		// The schema already checked every type; this is a decoder edge case.
		return nil, newSchemaViolation([]Violation{{Field: "(root)", Message: err.Error()}})
	}

	if err := validateValues(&cv); err != nil {
		return nil, err
	}
	normalizeEmpty(&cv)
	return &cv, nil
}

// normalizeEmpty maps an empty description to nil so that it matches what
// the omitempty tag produces on re-encode.
func normalizeEmpty(cv *model.CV) {
	for i := range cv.Experience {
		if len(cv.Experience[i].Description) == 0 {
			cv.Experience[i].Description = nil
		}
	}
}

func validateShape(doc string) error {
	result, err := cvSchema.Validate(gojsonschema.NewStringLoader(doc))
	if err != nil {
		return &MalformedOutputError{Raw: doc}
	}
	if result.Valid() {
		return nil
	}

	violations := make([]Violation, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		violations = append(violations, Violation{
			Field:   fieldPath(desc),
			Message: desc.Description(),
		})
	}
	sortViolations(violations)
	return newSchemaViolation(violations)
}

// fieldPath points required-property errors at the missing property rather
// than its parent object.
func fieldPath(desc gojsonschema.ResultError) string {
	field := desc.Field()
	if desc.Type() != "required" {
		return field
	}
	property, _ := desc.Details()["property"].(string)
	if property == "" {
		return field
	}
	if field == "" || field == "(root)" {
		return property
	}
	return field + "." + property
}

func validateValues(cv *model.CV) error {
	err := validate.Struct(cv)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("validate cv: %w", err)
	}

	violations := make([]Violation, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		violations = append(violations, Violation{
			Field:   trimRootNamespace(fe.Namespace()),
			Message: validationMessage(fe),
		})
	}
	sortViolations(violations)
	return newSchemaViolation(violations)
}

func trimRootNamespace(ns string) string {
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required and must not be empty"
	case "email":
		return fmt.Sprintf("%q is not a valid email address", fe.Value())
	default:
		return fmt.Sprintf("failed %q validation", fe.Tag())
	}
}

func sortViolations(v []Violation) {
	sort.SliceStable(v, func(i, j int) bool { return v[i].Field < v[j].Field })
}
