package domain

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// NetworkError indicates no response was received at all
type NetworkError struct {
	Err error
	URL string
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error for %s: %v", e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// Timeout reports whether the request gave up waiting
func (e *NetworkError) Timeout() bool {
	if errors.Is(e.Err, context.DeadlineExceeded) {
		return true
	}
	var t interface{ Timeout() bool }
	return errors.As(e.Err, &t) && t.Timeout()
}

// ServerError is an HTTP 5xx response
type ServerError struct {
	URL        string
	StatusCode int
}

func (e *ServerError) Error() string {
	return fmt.Sprintf("server error for %s: HTTP %d %s", e.URL, e.StatusCode, http.StatusText(e.StatusCode))
}

// ClientError is an HTTP 4xx response, retrying will not help
type ClientError struct {
	URL        string
	StatusCode int
}

func (e *ClientError) Error() string {
	return fmt.Sprintf("request rejected for %s: HTTP %d %s", e.URL, e.StatusCode, http.StatusText(e.StatusCode))
}

// ParseError indicates a response body could not be understood
type ParseError struct {
	Err    error
	Format string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse %s response: %v", e.Format, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// FetchError wraps record source failures with context
type FetchError struct {
	Err        error
	Source     string
	Operation  string
	URL        string
	StatusCode int
	Attempts   int
	Latency    time.Duration
}

func (e *FetchError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("%s %s failed for %s (status: %d, attempts: %d, latency: %v): %v",
			e.Source, e.Operation, e.URL, e.StatusCode, e.Attempts, e.Latency, e.Err)
	}
	return fmt.Sprintf("%s %s failed for %s (attempts: %d, latency: %v): %v",
		e.Source, e.Operation, e.URL, e.Attempts, e.Latency, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// IsRetryable determines if a fetch should be attempted again. Only transport
// failures and 5xx responses qualify.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) {
		return false
	}

	var serverErr *ServerError
	if errors.As(err, &serverErr) {
		return true
	}

	var networkErr *NetworkError
	return errors.As(err, &networkErr)
}

// ErrorMessage is the short title + description shown to users
type ErrorMessage struct {
	Title       string
	Description string
}

var statusMessages = map[int]ErrorMessage{
	http.StatusBadRequest:          {"Bad Request", "The request was invalid."},
	http.StatusUnauthorized:        {"Unauthorized", "Please log in to continue."},
	http.StatusForbidden:           {"Access Forbidden", "You don't have permission for this action."},
	http.StatusNotFound:            {"Not Found", "The requested resource wasn't found."},
	http.StatusMethodNotAllowed:    {"Method Not Allowed", "This action isn't supported."},
	http.StatusRequestTimeout:      {"Request Timeout", "The request took too long."},
	http.StatusUnprocessableEntity: {"Unprocessable Entity", "The request data is invalid."},
	http.StatusTooManyRequests:     {"Too Many Requests", "Please slow down and try again."},
	http.StatusInternalServerError: {"Server Error", "Something went wrong. Please try again."},
	http.StatusBadGateway:          {"Bad Gateway", "Server communication error."},
	http.StatusServiceUnavailable:  {"Service Unavailable", "Service is temporarily unavailable."},
}

// UserMessage turns a fetch failure into something fit for a notification
func UserMessage(err error) ErrorMessage {
	var serverErr *ServerError
	if errors.As(err, &serverErr) {
		if msg, ok := statusMessages[serverErr.StatusCode]; ok {
			return msg
		}
		return ErrorMessage{"Server Error", "Our servers are having issues. Please try again later."}
	}

	var clientErr *ClientError
	if errors.As(err, &clientErr) {
		if msg, ok := statusMessages[clientErr.StatusCode]; ok {
			return msg
		}
		return ErrorMessage{"Request Failed", "Something went wrong with your request."}
	}

	var networkErr *NetworkError
	if errors.As(err, &networkErr) {
		if networkErr.Timeout() {
			return ErrorMessage{"Request Timeout", "The request took too long. Please try again."}
		}
		return ErrorMessage{"Connection Error", "Please check your internet connection and try again."}
	}

	var parseErr *ParseError
	if errors.As(err, &parseErr) {
		return ErrorMessage{"Invalid Response", "The server sent data we could not read."}
	}

	return ErrorMessage{"Error", "An error occurred."}
}
