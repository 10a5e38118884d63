package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
)

// SetPasswordRequest is the body of POST devices/{id}/set-password
type SetPasswordRequest struct {
	Password string `json:"password"`
}

// SetPasswordResponse is the backend's answer to a set-password request.
// Code is only meaningful when Success is false.
type SetPasswordResponse struct {
	Success      bool      `json:"success"`
	Code         ErrorCode `json:"code,omitempty"`
	ErrorMessage string    `json:"errorMessage,omitempty"`
}

// ErrorCode is a machine-readable failure code. The backend sends it either
// as a JSON string or as a number; both decode to the same text.
type ErrorCode string

// UnmarshalJSON accepts strings, numbers and null
func (c *ErrorCode) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*c = ""
		return nil
	}

	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*c = ErrorCode(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("error code must be a string or number: %w", err)
	}
	if i, err := strconv.ParseInt(n.String(), 10, 64); err == nil {
		*c = ErrorCode(strconv.FormatInt(i, 10))
		return nil
	}
	*c = ErrorCode(n.String())
	return nil
}

// String returns the code text
func (c ErrorCode) String() string {
	return string(c)
}

// RegisteredDevices maps device IDs to product names, as returned by
// GET devices/registered.
type RegisteredDevices map[string]string

// IDs returns the device IDs in a stable order
func (r RegisteredDevices) IDs() []string {
	ids := make([]string, 0, len(r))
	for id := range r {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
