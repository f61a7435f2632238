package handler

import (
	"errors"
	"io"
	"net/http"
	"time"

	"payment-hub/internal/core/domain"
	"payment-hub/internal/core/ports"
	"payment-hub/pkg/apperror"
	"payment-hub/pkg/response"

	"github.com/gin-gonic/gin"
)

// CallbackHandler is the ingress for provider notifications. Successful
// answers are written in the provider's own format, not the JSON envelope.
type CallbackHandler struct {
	dispatcher ports.CallbackDispatcher
	now        func() time.Time
}

// NewCallbackHandler creates a new CallbackHandler.
func NewCallbackHandler(dispatcher ports.CallbackDispatcher) *CallbackHandler {
	return &CallbackHandler{dispatcher: dispatcher, now: time.Now}
}

// Handle serves POST and GET /api/v1/callbacks/:provider.
func (h *CallbackHandler) Handle(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.AbortWithStatus(http.StatusRequestEntityTooLarge)
			return
		}
		response.Error(c, apperror.Validation("cannot read request body"))
		return
	}

	raw := &domain.RawCallback{
		Provider:   c.Param("provider"),
		Method:     c.Request.Method,
		Path:       c.Request.URL.Path,
		Headers:    c.Request.Header.Clone(),
		Query:      c.Request.URL.Query(),
		Body:       body,
		RemoteAddr: c.ClientIP(),
		ReceivedAt: h.now(),
	}

	resp, err := h.dispatcher.HandleCallback(c.Request.Context(), raw)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Raw(c, resp.StatusCode, resp.ContentType, resp.Body)
}
