// Package httpclient provides the shared HTTP client used for image probes and downloads.
package httpclient

import (
	"net"
	"net/http"
	"time"

	"go.trai.ch/itinerary/internal/build"
)

// New returns an *http.Client without an overall timeout. Per-attempt deadlines are owned by
// the callers through the request context.
func New() *http.Client {
	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   10 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		ForceAttemptHTTP2:     true,
		MaxIdleConns:          32,
		MaxIdleConnsPerHost:   8,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ExpectContinueTimeout: time.Second,
	}
	return &http.Client{Transport: &userAgent{next: transport}}
}

type userAgent struct {
	next http.RoundTripper
}

func (u *userAgent) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.Header.Get("User-Agent") != "" {
		return u.next.RoundTrip(req)
	}
	clone := req.Clone(req.Context())
	clone.Header.Set("User-Agent", "itinerary/"+build.Version)
	return u.next.RoundTrip(clone)
}
