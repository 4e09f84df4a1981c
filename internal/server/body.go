package server

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// scheduleBody is the POST /api/schedule payload. Both fields accept the
// loose shapes a browser form produces.
type scheduleBody struct {
	Courses        courseInput `json:"courses"`
	AvailableHours hoursInput  `json:"availableHours"`
}

// courseInput is either a comma-separated string or an array of names.
type courseInput struct {
	raw    string
	list   []string
	isList bool
}

func (c *courseInput) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	if len(data) > 0 && data[0] == '[' {
		c.isList = true
		return json.Unmarshal(data, &c.list)
	}
	if err := json.Unmarshal(data, &c.raw); err != nil {
		return fmt.Errorf("courses must be a string or an array of strings")
	}
	return nil
}

// hoursInput keeps the literal text of a JSON number or string so the
// validator coerces it the same way it coerces form input.
type hoursInput struct {
	raw string
}

func (h *hoursInput) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		return nil
	case len(data) > 0 && data[0] == '"':
		return json.Unmarshal(data, &h.raw)
	default:
		var n json.Number
		if err := json.Unmarshal(data, &n); err != nil {
			return fmt.Errorf("availableHours must be a number")
		}
		h.raw = n.String()
		return nil
	}
}
