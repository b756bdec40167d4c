// Package controllers holds the servers that expose computed chart data.
package controllers

import (
	"net/http"
	"time"
)

// Controller is a long-running server started by the app
type Controller interface {
	StartController() error
}

// NewHTTPClient creates a standardized HTTP client with timeout
func NewHTTPClient(timeout time.Duration) *http.Client {
	if timeout == 0 {
		timeout = 5 * time.Second
	}
	return &http.Client{
		Timeout: timeout,
	}
}
