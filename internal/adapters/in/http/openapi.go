package http

import (
	"context"
	_ "embed"
	"errors"
	"net/http"
	"strings"
	"sync"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/getkin/kin-openapi/routers"
	"github.com/getkin/kin-openapi/routers/legacy"
	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"
	"github.com/swaggo/swag"
)

//go:embed openapi.yaml
var openAPISpec []byte

// LoadOpenAPI parses and validates the embedded OpenAPI document.
func LoadOpenAPI(ctx context.Context) (*openapi3.T, error) {
	loader := openapi3.NewLoader()
	doc, err := loader.LoadFromData(openAPISpec)
	if err != nil {
		return nil, err
	}
	if err := doc.Validate(ctx); err != nil {
		return nil, err
	}
	return doc, nil
}

// OpenAPIRequestValidator rejects requests whose parameters or body do not match
// the document. Requests to paths the document does not describe pass through.
func OpenAPIRequestValidator(doc *openapi3.T) (echo.MiddlewareFunc, error) {
	router, err := legacy.NewRouter(doc)
	if err != nil {
		return nil, err
	}

	options := &openapi3filter.Options{
		AuthenticationFunc: openapi3filter.NoopAuthenticationFunc,
		MultiError:         false,
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			route, pathParams, err := router.FindRoute(req)
			if err != nil {
				if errors.Is(err, routers.ErrPathNotFound) || errors.Is(err, routers.ErrMethodNotAllowed) {
					return next(c)
				}
				return err
			}

			input := &openapi3filter.RequestValidationInput{
				Request:    req,
				PathParams: pathParams,
				Route:      route,
				Options:    options,
			}
			if err := openapi3filter.ValidateRequest(req.Context(), input); err != nil {
				return echo.NewHTTPError(http.StatusBadRequest, validationMessage(err)).SetInternal(err)
			}

			return next(c)
		}
	}, nil
}

func validationMessage(err error) string {
	var reqErr *openapi3filter.RequestError
	if errors.As(err, &reqErr) {
		msg := reqErr.Error()
		if i := strings.IndexByte(msg, '\n'); i > 0 {
			msg = msg[:i]
		}
		return msg
	}
	return err.Error()
}

// swaggerDoc serves the document to swag, which echo-swagger reads doc.json from.
type swaggerDoc struct {
	json string
}

func (d swaggerDoc) ReadDoc() string {
	return d.json
}

var registerDocOnce sync.Once

// RegisterSwagger exposes Swagger UI at /swagger/* for the given document.
func RegisterSwagger(e *echo.Echo, doc *openapi3.T) error {
	body, err := doc.MarshalJSON()
	if err != nil {
		return err
	}

	registerDocOnce.Do(func() {
		swag.Register(swag.Name, swaggerDoc{json: string(body)})
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)
	return nil
}
