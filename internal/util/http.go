package util

import (
	"fmt"
	"io"
	"net/http"
	"time"
)

// StatusError reports a non-200 response.
type StatusError struct {
	URL  string
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("GET %s: status %d", e.URL, e.Code)
}

var client = &http.Client{Timeout: 12 * time.Second}

func GetBytes(url string) ([]byte, error) {
	resp, err := client.Get(url)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, &StatusError{URL: url, Code: resp.StatusCode}
	}
	return io.ReadAll(resp.Body)
}
