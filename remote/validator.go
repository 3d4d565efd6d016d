package remote

import (
	"context"
	_ "embed"
	"fmt"
	"net/http"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/getkin/kin-openapi/routers"
)

//go:embed openapi.yaml
var openapiDefinition []byte

// ResponseValidator checks successful responses of the patient service against the
// embedded OpenAPI definition
type ResponseValidator struct {
	doc *openapi3.T
}

func NewResponseValidator(ctx context.Context) (*ResponseValidator, error) {
	loader := openapi3.NewLoader()
	loader.Context = ctx
	doc, err := loader.LoadFromData(openapiDefinition)
	if err != nil {
		return nil, fmt.Errorf("unable to load patient service definition: %w", err)
	}
	if err := doc.Validate(ctx); err != nil {
		return nil, fmt.Errorf("invalid patient service definition: %w", err)
	}
	return &ResponseValidator{doc: doc}, nil
}

func (v *ResponseValidator) Validate(ctx context.Context, method, path string, status int, header http.Header, body []byte) error {
	pathItem := v.doc.Paths.Value(path)
	if pathItem == nil {
		return fmt.Errorf("path %s is not defined", path)
	}
	operation := pathItem.GetOperation(method)
	if operation == nil {
		return fmt.Errorf("operation %s %s is not defined", method, path)
	}

	req, err := http.NewRequestWithContext(ctx, method, path, nil)
	if err != nil {
		return err
	}

	header = header.Clone()
	if header == nil {
		header = http.Header{}
	}
	if header.Get("Content-Type") == "" {
		header.Set("Content-Type", "application/json")
	}

	input := &openapi3filter.ResponseValidationInput{
		RequestValidationInput: &openapi3filter.RequestValidationInput{
			Request: req,
			Route: &routers.Route{
				Spec:      v.doc,
				Path:      path,
				PathItem:  pathItem,
				Method:    method,
				Operation: operation,
			},
		},
		Status: status,
		Header: header,
		Options: &openapi3filter.Options{
			IncludeResponseStatus: false,
			MultiError:            false,
		},
	}
	input.SetBodyBytes(body)

	return openapi3filter.ValidateResponse(ctx, input)
}
