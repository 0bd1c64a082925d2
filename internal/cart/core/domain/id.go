package domain

import (
	"bytes"
	"fmt"
	"strconv"
)

// ID identifies backend records. The zero value means the record has not
// been persisted yet and travels as JSON null.
type ID int64

func (id ID) IsZero() bool { return id == 0 }

func (id ID) String() string {
	return strconv.FormatInt(int64(id), 10)
}

func (id ID) MarshalJSON() ([]byte, error) {
	if id.IsZero() {
		return []byte("null"), nil
	}
	return []byte(id.String()), nil
}

// UnmarshalJSON accepts null, a JSON number or a quoted number.
func (id *ID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*id = 0
		return nil
	}
	b = bytes.Trim(b, `"`)
	n, err := strconv.ParseInt(string(b), 10, 64)
	if err != nil {
		return fmt.Errorf("invalid id %q: %w", string(b), err)
	}
	*id = ID(n)
	return nil
}
