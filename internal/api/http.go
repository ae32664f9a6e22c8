package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/tcfw/didres/pkg/resolver"
)

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func init() {
	gin.SetMode(gin.ReleaseMode)
}

func newEngine(l *logrus.Entry) *gin.Engine {
	e := gin.New()
	e.Use(gin.Recovery(), requestLogger(l))
	return e
}

func requestLogger(l *logrus.Entry) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		l.WithFields(logrus.Fields{
			"method":  c.Request.Method,
			"path":    c.Request.URL.Path,
			"status":  c.Writer.Status(),
			"latency": time.Since(start),
		}).Debug("request")
	}
}

// respondError writes the normalized error body. Anything that is not a
// resolver error is reported as a generic 500.
func respondError(c *gin.Context, err error) {
	var rerr *resolver.Error
	if errors.As(err, &rerr) {
		c.JSON(rerr.HTTPStatus(), ErrorResponse{Code: rerr.Code(), Message: rerr.Error()})
		return
	}

	c.JSON(http.StatusInternalServerError, ErrorResponse{
		Code:    "INTERNAL",
		Message: http.StatusText(http.StatusInternalServerError),
	})
}
