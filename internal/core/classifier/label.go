package classifier

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// Label is one class value exactly as the artifact spells it
// It holds a JSON scalar (string, number or bool) so labels round-trip unchanged
type Label struct{ raw json.RawMessage }

// ParseLabel validates a JSON scalar and wraps it
func ParseLabel(b []byte) (Label, error) {
	b = bytes.TrimSpace(b)
	if len(b) == 0 {
		return Label{}, fmt.Errorf("classifier: empty label")
	}
	switch b[0] {
	case '{', '[':
		return Label{}, fmt.Errorf("classifier: label must be a scalar, got %s", b)
	case 'n':
		return Label{}, fmt.Errorf("classifier: label must not be null")
	}
	if !json.Valid(b) {
		return Label{}, fmt.Errorf("classifier: invalid label %s", b)
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, b); err != nil {
		return Label{}, fmt.Errorf("classifier: invalid label %s: %w", b, err)
	}
	return Label{raw: buf.Bytes()}, nil
}

// StringLabel builds a string label
func StringLabel(s string) Label {
	b, _ := json.Marshal(s)
	return Label{raw: b}
}

// IntLabel builds an integer label
func IntLabel(n int64) Label { return Label{raw: []byte(strconv.FormatInt(n, 10))} }

// IsZero reports whether l was never set
func (l Label) IsZero() bool { return len(l.raw) == 0 }

// Raw returns the JSON bytes of the label
func (l Label) Raw() json.RawMessage { return l.raw }

// Equal compares the JSON spelling of two labels
func (l Label) Equal(o Label) bool { return bytes.Equal(l.raw, o.raw) }

// String renders string labels unquoted and other scalars as written
func (l Label) String() string {
	if len(l.raw) > 0 && l.raw[0] == '"' {
		var s string
		if err := json.Unmarshal(l.raw, &s); err == nil {
			return s
		}
	}
	return string(l.raw)
}

// MarshalJSON writes the label as stored, a zero Label as null
func (l Label) MarshalJSON() ([]byte, error) {
	if l.IsZero() {
		return []byte("null"), nil
	}
	return l.raw, nil
}

// UnmarshalJSON accepts any JSON scalar except null
func (l *Label) UnmarshalJSON(b []byte) error {
	v, err := ParseLabel(b)
	if err != nil {
		return err
	}
	*l = v
	return nil
}

func checkClasses(classes []Label) error {
	if len(classes) < 2 {
		return fmt.Errorf("classifier: need at least two classes, got %d", len(classes))
	}
	for i := range classes {
		for j := i + 1; j < len(classes); j++ {
			if classes[i].Equal(classes[j]) {
				return fmt.Errorf("classifier: duplicate class %s", classes[i].raw)
			}
		}
	}
	return nil
}
