package transport

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/malgo-cli/malgo/constant"
)

// Request describes one catalog request. Form, when non-nil, is posted as
// application/x-www-form-urlencoded. Credentials ride as HTTP basic auth when
// a username is present.
type Request struct {
	Method   string
	URL      string
	Form     url.Values
	Username string
	Password string
}

// StatusError reports a response the service answered but refused. Code is
// the HTTP status code; Status the transport layer's human-readable line.
type StatusError struct {
	Code   int
	Status string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("transport: %s", e.Status)
}

// Handle executes requests against the pool's shared transport state. It
// builds the request, runs it once - retry policy belongs to callers - and
// returns the raw response buffer. Non-2xx responses come back as a
// *StatusError.
type Handle struct {
	client *http.Client
}

// Do executes the request and reads the full response body.
func (h *Handle) Do(req Request) ([]byte, error) {
	var body io.Reader
	if req.Form != nil {
		body = strings.NewReader(req.Form.Encode())
	}

	r, err := http.NewRequest(req.Method, req.URL, body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	r.Header.Set("User-Agent", constant.UserAgent)
	if req.Form != nil {
		r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	if req.Username != "" {
		r.SetBasicAuth(req.Username, req.Password)
	}

	resp, err := h.client.Do(r)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	buf, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{Code: resp.StatusCode, Status: resp.Status}
	}

	return buf, nil
}
