package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/imsakiye/internal/session"
	"github.com/Nixie-Tech-LLC/imsakiye/internal/storage"
)

// NoticeDismissAfter is how long the page shows an error notice.
const NoticeDismissAfter = 5000

type APIError struct {
	Code    int
	Message string
	Err     error
	Detail  any // optional view state the client should render anyway
}

func (e *APIError) Error() string { return e.Message }

// Notice is the transient message shown to the user for a failed request.
type Notice struct {
	Message        string `json:"message"`
	DismissAfterMs int    `json:"dismiss_after_ms"`
}

// Responder is a result that writes its own response instead of JSON.
type Responder interface {
	Respond(ctx *gin.Context)
}

type HandlerFunc func(ctx *gin.Context) (any, *APIError)
type HandlerFuncWithSession func(ctx *gin.Context, s *session.Session) (any, *APIError)

func respond(ctx *gin.Context, result any, apiErr *APIError) {
	if apiErr != nil {
		if apiErr.Err != nil {
			_ = ctx.Error(apiErr.Err)
		}
		body := gin.H{
			"error":  apiErr.Message,
			"notice": Notice{Message: apiErr.Message, DismissAfterMs: NoticeDismissAfter},
		}
		if apiErr.Detail != nil {
			body["detail"] = apiErr.Detail
		}
		ctx.JSON(apiErr.Code, body)
		return
	}
	if r, ok := result.(Responder); ok {
		r.Respond(ctx)
		return
	}
	ctx.JSON(http.StatusOK, result)
}

func ResolveEndpoint(h HandlerFunc) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		result, apiErr := h(ctx)
		respond(ctx, result, apiErr)
	}
}

func ResolveEndpointWithSession(h HandlerFuncWithSession) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		s, ok := session.FromContext(ctx)
		if !ok {
			log.Error().Str("path", ctx.Request.URL.Path).Msg("session middleware not mounted")
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "session unavailable"})
			return
		}
		s.Touch()
		result, apiErr := h(ctx, s)
		respond(ctx, result, apiErr)
	}
}

// Controller is the gin group a Module attaches its endpoints to.
type Controller struct {
	Group *gin.RouterGroup
}

func (c *Controller) GET(path string, h HandlerFuncWithSession) {
	c.Group.GET(path, ResolveEndpointWithSession(h))
}

func (c *Controller) POST(path string, h HandlerFuncWithSession) {
	c.Group.POST(path, ResolveEndpointWithSession(h))
}

func (c *Controller) PUT(path string, h HandlerFuncWithSession) {
	c.Group.PUT(path, ResolveEndpointWithSession(h))
}

// Public mounts a handler that does not need a session.
func (c *Controller) Public(method, path string, h HandlerFunc) {
	c.Group.Handle(method, path, ResolveEndpoint(h))
}

// File is an attachment download.
type File struct {
	Name        string
	ContentType string
	Data        []byte
}

func (f File) Respond(ctx *gin.Context) {
	ctx.Header("Content-Disposition", storage.ContentDisposition(f.Name))
	ctx.Data(http.StatusOK, f.ContentType, f.Data)
}

// Text is a plain body with an explicit content type.
type Text struct {
	ContentType string
	Body        string
}

func (t Text) Respond(ctx *gin.Context) {
	ctx.Data(http.StatusOK, t.ContentType, []byte(t.Body))
}

// Page renders a named HTML template.
type Page struct {
	Template string
	Data     any
}

func (p Page) Respond(ctx *gin.Context) {
	ctx.HTML(http.StatusOK, p.Template, p.Data)
}
