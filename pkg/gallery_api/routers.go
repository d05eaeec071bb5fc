package gallery_api

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/loopfz/gadgeto/tonic"
	"github.com/wI2L/fizz"
	"github.com/wI2L/fizz/openapi"

	"github.com/promptframe/promptframe-api/pkg/gallery_api/handler"
	problem "github.com/promptframe/promptframe-api/pkg/gallery_api/helpers/problem"
)

var apiVersionHeader = fizz.Header(
	"API-Version",
	"The API version of the response",
	"",
)

// ErrorHook maps handler errors to responses: APIError passes through,
// anything else becomes a 500 carrying the error's message verbatim. In
// development mode 500 bodies additionally expose the underlying cause as
// details.
func ErrorHook(development bool) tonic.ErrorHook {
	return func(c *gin.Context, err error) (int, interface{}) {
		apiErr, ok := err.(problem.APIError)
		if !ok {
			apiErr = problem.NewInternalServerError(err.Error())
		}
		if development && apiErr.Status >= 500 {
			if cause := errors.Unwrap(apiErr); cause != nil {
				apiErr = apiErr.WithDetails(cause.Error())
			} else {
				apiErr = apiErr.WithDetails(err.Error())
			}
		}
		return apiErr.Status, apiErr
	}
}

func NewRouter(apiVersion string, controller *handler.ImagesAPIController, development bool) *fizz.Fizz {
	tonic.SetErrorHook(ErrorHook(development))

	g := gin.Default()
	g.Use(APIVersionMiddleware(apiVersion))
	f := fizz.NewFromEngine(g)

	info := &openapi.Info{
		Title:       "Promptframe API",
		Description: "Prompt-to-image generation and gallery API",
		Version:     apiVersion,
	}

	root := f.Group("/v1", "Images", "Image generation and gallery routes")

	root.GET("/images",
		[]fizz.OperationOption{
			fizz.Summary("List all generated images, newest first"),
			apiVersionHeader,
		},
		tonic.Handler(controller.ListImages, 200),
	)

	// The original client expects 200 on create, not 201.
	root.POST("/images",
		[]fizz.OperationOption{
			fizz.Summary("Generate an image from a prompt and persist it"),
			apiVersionHeader,
		},
		tonic.Handler(controller.GenerateImage, 200),
	)

	f.GET("/v1/openapi.json", []fizz.OperationOption{}, f.OpenAPI(info, "json"))

	return f
}

type apiVersionWriter struct {
	gin.ResponseWriter
	version string
}

func (w *apiVersionWriter) WriteHeader(code int) {
	if code >= 200 && code < 300 {
		w.Header().Set("API-Version", w.version)
	}
	w.ResponseWriter.WriteHeader(code)
}

func APIVersionMiddleware(version string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer = &apiVersionWriter{c.Writer, version}
		c.Next()
	}
}
