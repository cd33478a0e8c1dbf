package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"visit-counter-api/internal/middleware"
	"visit-counter-api/internal/models"
	"visit-counter-api/internal/services"
	"visit-counter-api/pkg/lambda"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// VisitHandler serves the visit counter. POST records a visit, every other
// method reads the current count.
type VisitHandler struct {
	visitService          services.VisitService
	preflightShortCircuit bool
	logger                *logrus.Logger
}

// VisitHandlerOption configures a VisitHandler
type VisitHandlerOption func(*VisitHandler)

// WithPreflightShortCircuit makes OPTIONS requests return an empty 200
// without reading the counter.
func WithPreflightShortCircuit(enabled bool) VisitHandlerOption {
	return func(h *VisitHandler) { h.preflightShortCircuit = enabled }
}

// WithLogger sets the handler logger
func WithLogger(logger *logrus.Logger) VisitHandlerOption {
	return func(h *VisitHandler) {
		if logger != nil {
			h.logger = logger
		}
	}
}

// NewVisitHandler creates a new visit handler
func NewVisitHandler(visitService services.VisitService, opts ...VisitHandlerOption) *VisitHandler {
	h := &VisitHandler{
		visitService: visitService,
		logger:       logrus.New(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Handle dispatches a request on its method. Store failures never escape:
// they become a 500 response that still carries the CORS headers.
func (h *VisitHandler) Handle(ctx context.Context, req *lambda.Request) *lambda.Response {
	ctx = services.WithRequestID(ctx, req.RequestID)

	if req.Method == http.MethodOptions && h.preflightShortCircuit {
		return &lambda.Response{
			StatusCode: http.StatusOK,
			Headers:    CORSHeaders(),
		}
	}

	var (
		visits uint64
		err    error
	)
	if req.Method == http.MethodPost {
		visits, err = h.visitService.RecordVisit(ctx)
	} else {
		visits, err = h.visitService.CurrentVisits(ctx)
	}

	if err != nil {
		return h.jsonResponse(http.StatusInternalServerError, models.ErrorResponse{Error: err.Error()})
	}
	return h.jsonResponse(http.StatusOK, models.NewCountResponse(visits))
}

// ServeGin adapts Handle for the gin dev server, so local requests follow
// exactly the same path as Lambda invocations.
// @Summary Read or record visits
// @Description GET returns the current count. POST adds one visit and returns the new count.
// @Tags visits
// @Produce json
// @Success 200 {object} models.CountResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /visits [get]
// @Router /visits [post]
// @Router /api/v1/visits [get]
// @Router /api/v1/visits [post]
func (h *VisitHandler) ServeGin(c *gin.Context) {
	headers := make(map[string]string, len(c.Request.Header))
	for name := range c.Request.Header {
		headers[name] = c.Request.Header.Get(name)
	}

	req := &lambda.Request{
		Method:    c.Request.Method,
		Path:      c.Request.URL.Path,
		Headers:   headers,
		RequestID: c.GetString(middleware.RequestIDKey),
	}

	resp := h.Handle(c.Request.Context(), req)
	for name, value := range resp.Headers {
		c.Header(name, value)
	}
	if len(resp.Body) == 0 {
		c.Status(resp.StatusCode)
		return
	}
	c.Data(resp.StatusCode, resp.Headers["Content-Type"], resp.Body)
}

func (h *VisitHandler) jsonResponse(status int, body interface{}) *lambda.Response {
	return JSONResponse(status, body, h.logger)
}

// JSONResponse encodes body as a JSON response carrying the CORS headers
func JSONResponse(status int, body interface{}, logger *logrus.Logger) *lambda.Response {
	headers := CORSHeaders()

	payload, err := json.Marshal(body)
	if err != nil {
		// Only reachable with an unencodable body type.
		logger.WithError(err).Error("Failed to encode response body")
		status = http.StatusInternalServerError
		payload = []byte(`{"error":"failed to encode response"}`)
	}

	headers["Content-Type"] = "application/json"
	return &lambda.Response{
		StatusCode: status,
		Headers:    headers,
		Body:       payload,
	}
}
