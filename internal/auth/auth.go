// Package auth resolves the caller's upstream API token from request
// headers and injects a token-bound upstream client into the request
// context. Resolution is request-scoped: every request gets its own
// client, and nothing is cached across requests.
package auth

import (
	"net/http"
	"strings"

	"callportal_backend/platform/apperr"
	"callportal_backend/platform/httpkit"
	"callportal_backend/platform/vapi"

	"github.com/gin-gonic/gin"
)

// TokenHeader is the custom header carrying the upstream token. It takes
// precedence over standard bearer auth.
const TokenHeader = "x-vapi-token"

const contextClientKey = "upstreamClient"

const bearerPrefix = "Bearer "

// Factory builds an upstream client bound to one token. Injected so tests
// can count constructions.
type Factory func(token string) *vapi.Client

// ResolveToken extracts the upstream API token from the request headers.
// The custom header wins when both are present; it is used verbatim.
// Bearer tokens are matched case-insensitively and trimmed of surrounding
// whitespace. No validation beyond non-emptiness — token validity is the
// upstream's concern.
func ResolveToken(h http.Header) (string, error) {
	if token := h.Get(TokenHeader); token != "" {
		return token, nil
	}

	authHeader := h.Get("Authorization")
	if len(authHeader) >= len(bearerPrefix) && strings.EqualFold(authHeader[:len(bearerPrefix)], bearerPrefix) {
		if token := strings.TrimSpace(authHeader[len(bearerPrefix):]); token != "" {
			return token, nil
		}
	}

	return "", apperr.Unauthorized("missing API token")
}

// Middleware resolves the caller's token and stores a freshly built client
// on the request context. Requests without a usable token are rejected
// before any upstream client is constructed.
func Middleware(factory Factory) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := ResolveToken(c.Request.Header)
		if err != nil {
			httpkit.HandleError(c, err)
			c.Abort()
			return
		}

		c.Set(contextClientKey, factory(token))
		c.Next()
	}
}

// ClientFrom returns the request-scoped upstream client placed by
// Middleware. Returns nil on routes without the middleware.
func ClientFrom(c *gin.Context) *vapi.Client {
	value, ok := c.Get(contextClientKey)
	if !ok {
		return nil
	}
	client, _ := value.(*vapi.Client)
	return client
}
