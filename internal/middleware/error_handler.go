package middleware

import (
	"net/http"
	"time"

	"github.com/ferrosero91/parking-solupark/internal/apierror"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const requestIDKey = "request_id"

// RequestID tags every request with a UUID, honoring an incoming
// X-Request-ID so traces can span services.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Header("X-Request-ID", id)
		c.Next()
	}
}

// Logger emits one structured line per request.
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		inicio := time.Now()
		c.Next()

		ev := log.Info()
		if c.Writer.Status() >= http.StatusInternalServerError {
			ev = log.Error()
		}
		ev.Str("request_id", c.GetString(requestIDKey)).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("latency", time.Since(inicio)).
			Str("client_ip", c.ClientIP()).
			Msg("request")
	}
}

// Recovery turns panics into 500s without killing the process.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				log.Error().
					Str("request_id", c.GetString(requestIDKey)).
					Interface("panic", r).
					Str("path", c.Request.URL.Path).
					Msg("panic recuperado")
				c.AbortWithStatusJSON(http.StatusInternalServerError, apierror.New("error interno del servidor"))
			}
		}()
		c.Next()
	}
}

// ErrorHandler maps errors attached via c.Error to the error envelope,
// hiding internals behind a generic message.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}
		err := c.Errors.Last().Err
		status := StatusFor(err)
		if status == http.StatusInternalServerError {
			log.Error().
				Err(err).
				Str("request_id", c.GetString(requestIDKey)).
				Str("path", c.Request.URL.Path).
				Msg("error no clasificado")
			c.JSON(status, apierror.New("error interno del servidor"))
			return
		}
		c.JSON(status, apierror.New(err.Error()))
	}
}

// StatusFor maps the service error taxonomy to HTTP statuses.
func StatusFor(err error) int {
	switch apierror.KindOf(err) {
	case apierror.KindValidation:
		return http.StatusBadRequest
	case apierror.KindNotFound:
		return http.StatusNotFound
	case apierror.KindConflict:
		return http.StatusConflict
	case apierror.KindUnauthorized:
		return http.StatusUnauthorized
	case apierror.KindForbidden:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}
