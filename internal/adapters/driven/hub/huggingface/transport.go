package huggingface

import (
	"net/http"

	"github.com/custodia-labs/docs-dataset/internal/logger"
)

// TransportFunc wraps a RoundTripper.
type TransportFunc func(http.RoundTripper) http.RoundTripper

// logTransport logs method, URL and status of every outbound request.
// Headers are not logged; they carry the token.
type logTransport struct {
	transport http.RoundTripper
}

func (t *logTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	resp, err := t.transport.RoundTrip(req)
	if err != nil {
		logger.Debug("hub: %s %s failed: %v", req.Method, logURL(req), err)
		return nil, err
	}
	logger.Debug("hub: %s %s -> %d", req.Method, logURL(req), resp.StatusCode)
	return resp, nil
}

// logURL drops the query, which holds signatures on storage URLs.
func logURL(req *http.Request) string {
	u := *req.URL
	u.RawQuery = ""
	u.User = nil
	return u.String()
}

// WithRequestLogging wraps a transport with request logging.
func WithRequestLogging() TransportFunc {
	return func(rt http.RoundTripper) http.RoundTripper {
		return &logTransport{transport: rt}
	}
}

// applyTransport returns a copy of client with transports layered on top.
func applyTransport(client *http.Client, transports ...TransportFunc) *http.Client {
	transport := client.Transport
	if transport == nil {
		transport = http.DefaultTransport
	}

	for _, transportFunc := range transports {
		transport = transportFunc(transport)
	}

	clone := *client
	clone.Transport = transport
	return &clone
}
