package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// LooseString accepts a JSON string, number, boolean or null. Spreadsheet
// rows arrive with numbers where text is expected and vice versa.
type LooseString string

func (s *LooseString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*s = ""
		return nil
	}
	switch data[0] {
	case '"':
		var value string
		if err := json.Unmarshal(data, &value); err != nil {
			return err
		}
		*s = LooseString(value)
		return nil
	case '{', '[':
		return fmt.Errorf("expected scalar value, got %s", data[:1])
	default:
		*s = LooseString(data)
		return nil
	}
}

func (s LooseString) Trimmed() string {
	return strings.TrimSpace(string(s))
}
