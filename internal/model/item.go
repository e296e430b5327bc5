package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// ID is the server-assigned identifier of an Item. The backend may send it
// as a JSON number or a JSON string; both decode to the same textual form.
type ID string

func (id ID) String() string { return string(id) }

// MarshalJSON writes canonical integer ids as JSON numbers and anything
// else ("007", "+5", "abc") as a string.
func (id ID) MarshalJSON() ([]byte, error) {
	if n, err := strconv.ParseInt(string(id), 10, 64); err == nil && strconv.FormatInt(n, 10) == string(id) {
		return []byte(id), nil
	}
	return json.Marshal(string(id))
}

func (id *ID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*id = ""
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return fmt.Errorf("id: %w", err)
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("id: %w", err)
	}
	*id = ID(n.String())
	return nil
}

// Item is the domain model for a catalog entry.
type Item struct {
	ID          ID     `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Draft returns the editable part of the item.
func (it Item) Draft() Draft {
	return Draft{Name: it.Name, Description: it.Description}
}

// Draft is what the client sends for create and update. The server owns ids.
type Draft struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// ValidationError reports a required field left blank.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return e.Field + " cannot be empty"
}

// Validate checks that both fields are non-empty once trimmed.
func (d Draft) Validate() error {
	if strings.TrimSpace(d.Name) == "" {
		return &ValidationError{Field: "name"}
	}
	if strings.TrimSpace(d.Description) == "" {
		return &ValidationError{Field: "description"}
	}
	return nil
}
