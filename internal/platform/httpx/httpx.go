package httpx

import (
	"context"
	"errors"
	"net"
	"strconv"
)

type HTTPStatusCoder interface {
	HTTPStatusCode() int
}

// StatusError is returned for non-2xx responses.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	body := e.Body
	if len(body) > 256 {
		body = body[:256] + "..."
	}
	return "http " + strconv.Itoa(e.StatusCode) + ": " + body
}

func (e *StatusError) HTTPStatusCode() int {
	if e == nil {
		return 0
	}
	return e.StatusCode
}

// FailureReason labels err for logs: "timeout", "canceled", "http_<code>",
// "network" or "error".
func FailureReason(err error) string {
	if err == nil {
		return ""
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return "timeout"
	}
	if errors.Is(err, context.Canceled) {
		return "canceled"
	}
	var sc HTTPStatusCoder
	if errors.As(err, &sc) && sc.HTTPStatusCode() != 0 {
		return "http_" + strconv.Itoa(sc.HTTPStatusCode())
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		if netErr.Timeout() {
			return "timeout"
		}
		return "network"
	}
	return "error"
}
