package ninox

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// Record is one row of a table.
//
// ID is assigned by the backend on create; a Record without ID is created by
// SaveRecords, one with ID is updated. The audit fields are filled on read
// and never required on write.
type Record struct {
	ID         RecordID `json:"id,omitempty"`
	Sequence   int64    `json:"sequence,omitempty"`
	CreatedAt  string   `json:"createdAt,omitempty"`
	CreatedBy  string   `json:"createdBy,omitempty"`
	ModifiedAt string   `json:"modifiedAt,omitempty"`
	ModifiedBy string   `json:"modifiedBy,omitempty"`
	Fields     Fields   `json:"fields"`
}

// RecordID is an opaque record identifier. The backend emits numeric ids;
// RecordID accepts JSON numbers and strings and encodes all-digit ids as
// numbers.
type RecordID string

// String returns the id text.
func (id RecordID) String() string {
	return string(id)
}

// MarshalJSON encodes all-digit ids as JSON numbers, anything else as a string.
func (id RecordID) MarshalJSON() ([]byte, error) {
	if isDigits(string(id)) {
		return []byte(id), nil
	}
	return json.Marshal(string(id))
}

// UnmarshalJSON accepts a JSON number or string.
func (id *RecordID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*id = ""
		return nil
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = RecordID(s)
		return nil
	default:
		var n json.Number
		if err := json.Unmarshal(data, &n); err != nil {
			return fmt.Errorf("record id: %w", err)
		}
		*id = RecordID(n.String())
		return nil
	}
}

func isDigits(s string) bool {
	// Leading zeros are not valid in JSON numbers.
	if s == "" || len(s) > 18 || (len(s) > 1 && s[0] == '0') {
		return false
	}
	_, err := strconv.ParseUint(s, 10, 64)
	return err == nil
}

// Filter maps field names to match criteria. Comparison semantics are
// defined by the backend. An empty filter matches all records.
type Filter map[string]any

// SaveResult reports the outcome of SaveRecords.
type SaveResult struct {
	Success bool       `json:"success"` // True if the backend answered 200
	IDs     []RecordID `json:"ids"`     // Backend ids, in submission order
}

// Team is a team visible to the authenticated principal.
type Team struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Database is a database within a team.
type Database struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
