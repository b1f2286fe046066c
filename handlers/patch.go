package handlers

import (
	"encoding/json"
	"fmt"
)

// patch captures which fields a partial-update request actually carried.
// An absent key leaves the stored value alone; an explicit null clears it.
// The two are indistinguishable after decoding into a plain struct, so
// updates decode into raw messages first.
type patch map[string]json.RawMessage

func decodePatch(data []byte) (patch, error) {
	var p patch
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, err
	}
	return p, nil
}

// stringField reports whether key was present and, if so, its value.
// A JSON null yields (nil, true, nil).
func (p patch) stringField(key string) (*string, bool, error) {
	raw, ok := p[key]
	if !ok {
		return nil, false, nil
	}
	var value *string
	if err := json.Unmarshal(raw, &value); err != nil {
		return nil, true, fmt.Errorf("%s must be a string", key)
	}
	return value, true, nil
}
