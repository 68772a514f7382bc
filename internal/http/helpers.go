package http

import (
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/quantumauth-io/policy-client/internal/policy"
)

func isLoopbackRequest(r *http.Request) bool {
	ra := r.RemoteAddr

	h, _, err := net.SplitHostPort(ra)
	if err != nil {
		ip := net.ParseIP(ra)
		return ip != nil && ip.IsLoopback()
	}
	ip := net.ParseIP(h)
	return ip != nil && ip.IsLoopback()
}

func isSafeLocalHost(hostport string) bool {
	host := hostport
	if h, _, err := net.SplitHostPort(hostport); err == nil {
		host = h
	}
	host = strings.ToLower(host)
	return host == "127.0.0.1" || host == "localhost" || host == "::1"
}

// NormalizeOrigin lower-cases scheme and host and drops any path; "" means
// the origin is unusable.
func NormalizeOrigin(in string) string {
	in = strings.TrimSpace(in)
	if in == "" {
		return ""
	}
	u, err := url.Parse(in)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return ""
	}
	return fmt.Sprintf("%s://%s", strings.ToLower(u.Scheme), strings.ToLower(u.Host))
}

// statusFor maps controller errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, policy.ErrSessionNotReady), errors.Is(err, policy.ErrSessionActive):
		return http.StatusConflict
	case errors.Is(err, policy.ErrInvalidAmountFormat):
		return http.StatusBadRequest
	case errors.Is(err, policy.ErrProviderUnavailable):
		return http.StatusServiceUnavailable
	case errors.Is(err, policy.ErrAuthorizationDenied):
		return http.StatusUnauthorized
	case errors.Is(err, policy.ErrRemoteCall):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
