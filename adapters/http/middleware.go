package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/khoahotran/skillmatch/pkg/apperror"
	"github.com/khoahotran/skillmatch/pkg/auth"
	"github.com/khoahotran/skillmatch/pkg/errreport"
	"github.com/khoahotran/skillmatch/pkg/logger"
)

const (
	GinContextKeySession = "session"
)

func AuthMiddleware(sessions *auth.SessionService, log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortWith(c, apperror.NewNotAuthenticated("authorization header is required"))
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			abortWith(c, apperror.NewNotAuthenticated("invalid token format"))
			return
		}

		sess, err := sessions.GetSession(c.Request.Context(), tokenString)
		if err != nil {
			if errors.Is(err, auth.ErrNoSession) {
				abortWith(c, apperror.NewNotAuthenticated("invalid or expired token"))
				return
			}
			log.Error("Session lookup failed", err)
			abortWith(c, apperror.NewInternal("session lookup failed", err))
			return
		}

		c.Set(GinContextKeySession, sess)
		c.Next()
	}
}

func GetSessionFromGinContext(c *gin.Context) (*auth.Session, bool) {
	v, ok := c.Get(GinContextKeySession)
	if !ok {
		return nil, false
	}
	sess, ok := v.(*auth.Session)
	return sess, ok && sess != nil
}

// ErrorMiddleware renders the last error a handler attached with c.Error.
// Server-side failures are also sent to reporter, which may be nil.
func ErrorMiddleware(log logger.Logger, reporter *errreport.Reporter) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}
		err := c.Errors.Last().Err

		var appErr *apperror.AppError
		if !errors.As(err, &appErr) {
			appErr = apperror.NewInternal("unexpected error", err)
		}
		status := apperror.ToHTTPStatus(appErr)

		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Int("status", status),
		}
		if appErr.Step != "" {
			fields = append(fields, zap.String("step", appErr.Step))
		}
		if status >= http.StatusInternalServerError {
			log.Error("Request failed", err, fields...)
			reporter.Capture(err, map[string]string{"path": c.FullPath(), "step": appErr.Step})
		} else {
			log.Warn("Request rejected", append(fields, zap.String("reason", appErr.Error()))...)
		}

		c.JSON(status, appErr.ToJSON())
	}
}

func abortWith(c *gin.Context, err *apperror.AppError) {
	c.AbortWithStatusJSON(apperror.ToHTTPStatus(err), err.ToJSON())
}
