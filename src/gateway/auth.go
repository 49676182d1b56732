package gateway

import (
	"errors"
	"net/http"
	"strings"

	"nftfactory/src/registry"
	. "nftfactory/src/utils/logger"

	"github.com/gin-gonic/gin"
	"github.com/lestrrat-go/jwx/jwa"
	"github.com/lestrrat-go/jwx/jwt"
)

const callerKey = "caller"

var (
	ErrMissingToken      = errors.New("missing bearer token")
	ErrInvalidToken      = errors.New("invalid bearer token")
	ErrMissingSubject    = errors.New("token has no subject")
	ErrMissingAuthSecret = errors.New("auth secret is not configured")
)

// auth resolves the caller identity for state-changing routes.
// Identities are authenticated, never authorized: whether the caller may
// perform the operation is the registry's decision.
func (self *Server) auth() gin.HandlerFunc {
	secret := []byte(self.Config.Gateway.AuthSecret)

	return func(c *gin.Context) {
		// Plain header identities are for local development only
		if self.Config.IsDevelopment {
			if addr := c.GetHeader("X-Caller-Address"); addr != "" {
				c.Set(callerKey, registry.Address(addr))
				c.Next()
				return
			}
		}

		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			self.monitor.GetReport().Gateway.Errors.AuthFailures.Inc()
			LOGE(c, ErrMissingToken, http.StatusUnauthorized).Debug("Rejected request")
			return
		}

		token, err := jwt.Parse([]byte(strings.TrimPrefix(header, "Bearer ")),
			jwt.WithVerify(jwa.HS256, secret),
			jwt.WithValidate(true))
		if err != nil {
			self.monitor.GetReport().Gateway.Errors.AuthFailures.Inc()
			LOGE(c, ErrInvalidToken, http.StatusUnauthorized).WithError(err).Debug("Rejected request")
			return
		}

		if token.Subject() == "" {
			self.monitor.GetReport().Gateway.Errors.AuthFailures.Inc()
			LOGE(c, ErrMissingSubject, http.StatusUnauthorized).Debug("Rejected request")
			return
		}

		c.Set(callerKey, registry.Address(token.Subject()))
		c.Next()
	}
}

func caller(c *gin.Context) registry.Address {
	v, _ := c.Get(callerKey)
	addr, _ := v.(registry.Address)
	return addr
}
