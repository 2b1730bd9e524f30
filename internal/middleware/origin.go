package middleware

import (
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// SecureOrigin rejects requests that did not arrive over HTTPS in production
// (judged by X-Forwarded-Proto) or whose Origin header does not start with
// frontendURL. Requests without an Origin header are allowed.
func SecureOrigin(frontendURL string, production bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		if production {
			proto := c.GetHeader("X-Forwarded-Proto")
			if proto == "" {
				proto = "http"
			}
			if !strings.EqualFold(proto, "https") {
				log.Printf("middleware.SecureOrigin: rejected %s over %s", c.Request.URL.Path, proto)
				abortJSON(c, http.StatusForbidden, "INSECURE_ORIGIN", "request origin is not allowed")
				return
			}
		}

		origin := c.GetHeader("Origin")
		if frontendURL != "" && origin != "" && !strings.HasPrefix(origin, frontendURL) {
			log.Printf("middleware.SecureOrigin: rejected origin %q", origin)
			abortJSON(c, http.StatusForbidden, "INSECURE_ORIGIN", "request origin is not allowed")
			return
		}
		c.Next()
	}
}
