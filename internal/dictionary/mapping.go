package dictionary

import (
	"bytes"
	"crypto/sha256"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Term is one American to British pair.
type Term struct {
	American string `json:"american"`
	British  string `json:"british"`
}

// TermMapping is an ordered list of terms with unique American keys.
// The order is the order the keys appear in the source document.
type TermMapping []Term

// Len returns the number of terms.
func (m TermMapping) Len() int { return len(m) }

// Lookup finds the British term for an American term, ignoring case.
func (m TermMapping) Lookup(american string) (string, bool) {
	for _, t := range m {
		if strings.EqualFold(t.American, american) {
			return t.British, true
		}
	}
	return "", false
}

// Checksum returns a stable hex digest of the mapping contents and order.
func (m TermMapping) Checksum() string {
	h := sha256.New()
	for _, t := range m {
		io.WriteString(h, t.American)
		h.Write([]byte{0})
		io.WriteString(h, t.British)
		h.Write([]byte{'\n'})
	}
	return fmt.Sprintf("%x", h.Sum(nil))
}

// ParseMapping decodes a JSON object of string to string into a TermMapping,
// keeping the key order of the document. A repeated key keeps its first
// position and takes the last value.
func ParseMapping(body []byte) (TermMapping, error) {
	dec := json.NewDecoder(bytes.NewReader(body))

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("failed to read dictionary: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, errors.New("dictionary must be a JSON object")
	}

	var mapping TermMapping
	index := make(map[string]int)

	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("failed to read key: %w", err)
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected key token %v", keyTok)
		}
		if key == "" {
			return nil, errors.New("dictionary contains an empty term")
		}

		valTok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("failed to read value for %q: %w", key, err)
		}
		val, ok := valTok.(string)
		if !ok {
			return nil, fmt.Errorf("value for %q is not a string", key)
		}

		if i, seen := index[key]; seen {
			mapping[i].British = val
			continue
		}
		index[key] = len(mapping)
		mapping = append(mapping, Term{American: key, British: val})
	}

	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("failed to read end of object: %w", err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, errors.New("unexpected data after dictionary object")
	}

	return mapping, nil
}
