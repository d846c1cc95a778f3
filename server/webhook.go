package server

import (
	stderrors "errors"
	"fmt"
	"greeter-proxy/domain"
	"greeter-proxy/errors"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/samber/lo"
)

const twimlContentType = "text/xml; charset=utf-8"

var emptyTwiML = []byte("<Response></Response>")

// WebhookPayload holds the fields read from the gateway's form post.
// Every other Twilio parameter is ignored.
type WebhookPayload struct {
	From string `form:"From" json:"From" binding:"required,e164"`
	Body string `form:"Body" json:"Body"`
}

func (p WebhookPayload) ToMessage(at time.Time) domain.InboundMessage {
	return domain.InboundMessage{From: p.From, Body: p.Body, ReceivedAt: at}
}

// handleSMS hands the message to the relay and acknowledges it whatever the
// routing outcome. Only malformed payloads are refused.
func (s *Server) handleSMS(c *gin.Context) {
	payload, err := s.bindPayload(c)
	if err != nil {
		s.log.Warn("Rejected webhook payload", "remote", c.ClientIP(), "error", err)
		c.Data(http.StatusBadRequest, twimlContentType, emptyTwiML)
		return
	}

	s.relay.HandleInbound(c.Request.Context(), payload.ToMessage(time.Now().UTC()))
	c.Data(http.StatusOK, twimlContentType, emptyTwiML)
}

func (s *Server) bindPayload(c *gin.Context) (WebhookPayload, error) {
	var payload WebhookPayload
	if err := c.ShouldBind(&payload); err != nil {
		var validationErrors validator.ValidationErrors
		if stderrors.As(err, &validationErrors) {
			fields := lo.Map(validationErrors, func(fe validator.FieldError, _ int) string {
				return fe.Field() + ":" + fe.Tag()
			})
			return WebhookPayload{}, fmt.Errorf("%w: %s", errors.ErrInvalidPayload, strings.Join(fields, ","))
		}
		return WebhookPayload{}, fmt.Errorf("%w: %v", errors.ErrInvalidPayload, err)
	}
	if s.config.MaxBodyLength > 0 && utf8.RuneCountInString(payload.Body) > s.config.MaxBodyLength {
		return WebhookPayload{}, fmt.Errorf("%w: body longer than %d characters", errors.ErrInvalidPayload, s.config.MaxBodyLength)
	}
	return payload, nil
}
