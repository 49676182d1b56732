package logger

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// LOG tags a log entry with the request being handled.
func LOG(c *gin.Context) *logrus.Entry {
	return logger.WithFields(logrus.Fields{
		"method": c.Request.Method,
		"path":   c.Request.URL.Path,
	})
}

// LOGE responds with the given status and error body, then returns the entry
// so the handler can log the failure in one chain.
func LOGE(c *gin.Context, err error, status int) *logrus.Entry {
	if err == nil {
		err = http.ErrAbortHandler
	}
	c.AbortWithStatusJSON(status, gin.H{"error": err.Error()})
	return LOG(c).WithError(err)
}
