package middleware

import (
	"fmt"
	"net"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-credential-service/pkg/response"
)

// AllowPrivateIP matches requests whose direct peer is loopback or on a
// private network. Forwarding headers are ignored.
func AllowPrivateIP() AllowFunc {
	return func(c *gin.Context) bool {
		return isPrivate(c.RemoteIP())
	}
}

// AllowCIDRs matches requests whose direct peer falls in one of cidrs. Use
// it when a private ingress would otherwise make every caller look private.
func AllowCIDRs(cidrs []string) (AllowFunc, error) {
	nets := make([]*net.IPNet, 0, len(cidrs))
	for _, cidr := range cidrs {
		_, n, err := net.ParseCIDR(cidr)
		if err != nil {
			return nil, fmt.Errorf("parse cidr %q: %w", cidr, err)
		}
		nets = append(nets, n)
	}
	return func(c *gin.Context) bool {
		ip := net.ParseIP(c.RemoteIP())
		if ip == nil {
			return false
		}
		for _, n := range nets {
			if n.Contains(ip) {
				return true
			}
		}
		return false
	}, nil
}

// RequireAllowed rejects requests that allow does not match with 403.
func RequireAllowed(allow AllowFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		if allow == nil || !allow(c) {
			response.Abort(c, http.StatusForbidden, "forbidden", nil)
			return
		}
		c.Next()
	}
}
