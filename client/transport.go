package client

import (
	"net/http"
	"strconv"
)

// instrumentedTransport counts every exchange that reaches the wire.
type instrumentedTransport struct{ base http.RoundTripper }

func (t *instrumentedTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	resp, err := t.base.RoundTrip(req)
	if err != nil {
		httpRequestsTotal.WithLabelValues(req.Method, "error").Inc()
		return nil, err
	}
	httpRequestsTotal.WithLabelValues(req.Method, strconv.Itoa(resp.StatusCode)).Inc()
	return resp, nil
}
