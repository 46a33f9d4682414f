package handlers

import (
	"net/http"
	"net/http/httputil"
	"net/url"
)

// NewProgressSummaryProxy builds a reverse proxy to the external
// progress-summary service. Returns nil when no upstream is
// configured, in which case the route should 503.
func NewProgressSummaryProxy(upstream string) (http.Handler, error) {
	if upstream == "" {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "Progress summary is not configured", http.StatusServiceUnavailable)
		}), nil
	}

	target, err := url.Parse(upstream)
	if err != nil {
		return nil, err
	}

	proxy := &httputil.ReverseProxy{
		Rewrite: func(pr *httputil.ProxyRequest) {
			pr.SetURL(target)
			// The upstream sees its own host, not ours.
			pr.Out.Host = target.Host
		},
	}
	return http.StripPrefix("/functions/progress_summary", proxy), nil
}
