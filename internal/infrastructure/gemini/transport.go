package gemini

import (
	"fmt"
	"io"
	"net/http"
	"strings"
)

// apiKeyHeader carries the key when a custom HTTP client replaces the SDK's own
const apiKeyHeader = "x-goog-api-key"

// singleAttemptTransport authenticates requests and reports 5xx answers as
// transport errors. The generated REST client only retries *googleapi.Error
// values, so every GenerateContent call stays a single request.
type singleAttemptTransport struct {
	apiKey string
	base   http.RoundTripper
}

func newHTTPClient(apiKey string) *http.Client {
	return &http.Client{Transport: &singleAttemptTransport{apiKey: apiKey, base: http.DefaultTransport}}
}

func (t *singleAttemptTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	r := req.Clone(req.Context())
	r.Header.Set(apiKeyHeader, t.apiKey)

	resp, err := t.base.RoundTrip(r)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < http.StatusInternalServerError {
		return resp, nil
	}

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<10))
	resp.Body.Close()
	return nil, &serverError{status: resp.StatusCode, body: strings.TrimSpace(string(body))}
}

// serverError 5xx answer from the Gemini endpoint
type serverError struct {
	status int
	body   string
}

func (e *serverError) Error() string {
	if e.body == "" {
		return fmt.Sprintf("gemini server error: HTTP %d", e.status)
	}
	return fmt.Sprintf("gemini server error: HTTP %d: %s", e.status, e.body)
}
