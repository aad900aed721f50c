package middleware

import (
	"net"

	"github.com/gin-gonic/gin"
)

// TrustProxies limits which peers may set X-Forwarded-For / X-Real-IP.
// With no proxies the TCP peer address is the client. behindCloudflare makes
// gin read CF-Connecting-IP; enable it only when the edge strips that header
// from client requests.
func TrustProxies(r *gin.Engine, proxies []string, behindCloudflare bool) error {
	if len(proxies) == 0 {
		proxies = nil
	}
	if err := r.SetTrustedProxies(proxies); err != nil {
		return err
	}
	if behindCloudflare {
		r.TrustedPlatform = gin.PlatformCloudflare
	} else {
		r.TrustedPlatform = ""
	}
	return nil
}

// RealIP stores the resolved client IP under "real_ip". Resolution is gin's,
// bounded by TrustProxies.
func RealIP() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("real_ip", resolveIP(c))
		c.Next()
	}
}

// A trusted platform header is returned by gin unparsed; fall back to the
// peer address when it is not an IP.
func resolveIP(c *gin.Context) string {
	if ip := net.ParseIP(c.ClientIP()); ip != nil {
		return ip.String()
	}
	return c.RemoteIP()
}

// ClientIP returns the address set by RealIP, falling back to gin's view.
func ClientIP(c *gin.Context) string {
	if ip := c.GetString("real_ip"); ip != "" {
		return ip
	}
	if ip := resolveIP(c); ip != "" {
		return ip
	}
	return "unknown"
}
