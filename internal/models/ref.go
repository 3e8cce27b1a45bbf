package models

import (
	"bytes"
	"encoding/json"
)

// Ref is a weak optional reference to another entity by id. It never implies
// ownership and may point at something that was deleted since. Encodes as null when unset.
type Ref string

func RefTo(id string) Ref {
	return Ref(id)
}

func (r Ref) IsSet() bool {
	return r != ""
}

func (r Ref) ID() string {
	return string(r)
}

func (r Ref) MarshalJSON() ([]byte, error) {
	if r == "" {
		return []byte("null"), nil
	}
	return json.Marshal(string(r))
}

func (r *Ref) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*r = ""
		return nil
	}
	var id string
	if err := json.Unmarshal(data, &id); err != nil {
		return err
	}
	*r = Ref(id)
	return nil
}
