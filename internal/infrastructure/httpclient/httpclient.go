package httpclient

import (
	"io"
	"net/http"
)

// maxErrorBody bounds how much of a failed response is kept for error messages.
const maxErrorBody = 2048

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// ReadErrorBody reads at most maxErrorBody bytes of a failed response.
func ReadErrorBody(resp *http.Response) string {
	if resp == nil || resp.Body == nil {
		return ""
	}
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	return string(body)
}
