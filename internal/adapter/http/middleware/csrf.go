package middleware

import (
	"taverna-payment-service/internal/core/ports"
	"taverna-payment-service/pkg/apperror"
	"taverna-payment-service/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// HeaderCSRFToken carries the per-operator CSRF token issued at login.
const HeaderCSRFToken = "X-CSRF-Token"

// CSRFGuard validates the CSRF token on mutating admin requests. Safe methods
// pass through. Must run after JWTAuth: the token is scoped to the operator.
func CSRFGuard(store ports.CSRFStore, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		switch c.Request.Method {
		case "GET", "HEAD", "OPTIONS":
			c.Next()
			return
		}

		operatorID, ok := OperatorID(c)
		if !ok {
			response.Error(c, apperror.ErrInvalidToken())
			c.Abort()
			return
		}

		token := c.GetHeader(HeaderCSRFToken)
		if token == "" {
			response.Error(c, apperror.ErrInvalidCSRFToken())
			c.Abort()
			return
		}

		valid, err := store.Validate(c.Request.Context(), operatorID.String(), token)
		if err != nil {
			log.Error().Err(err).Msg("csrf validation failed")
			response.Error(c, apperror.InternalError(err))
			c.Abort()
			return
		}
		if !valid {
			response.Error(c, apperror.ErrInvalidCSRFToken())
			c.Abort()
			return
		}

		c.Next()
	}
}
