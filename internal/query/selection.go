package query

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
)

// TypenameField selects the name of the entity being projected.
const TypenameField = "__typename"

// Selection lists the fields to project, in output order. A nil Selection
// selects every non-relation field.
type Selection []*SelectedField

type SelectedField struct {
	// Alias is the output key; empty means Name
	Alias     string
	Name      string
	Selection Selection
}

func (f *SelectedField) Key() string {
	if len(f.Alias) > 0 {
		return f.Alias
	}
	return f.Name
}

// Select builds a flat selection of the named fields.
func Select(names ...string) Selection {
	sel := make(Selection, len(names))
	for i, name := range names {
		sel[i] = &SelectedField{Name: name}
	}
	return sel
}

// ParseSelect decodes a JSON selection tree such as
// {"name": true, "father": {"name": true}}. Keys keep their document order;
// true on a relation selects the target's scalar fields and false skips the key.
func ParseSelect(raw json.RawMessage) (Selection, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, nil
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	sel, err := decodeSelection(dec)
	if err != nil {
		return nil, NewQueryError(http.StatusBadRequest, fmt.Sprintf("invalid select: %s", err))
	}
	return sel, nil
}

func decodeSelection(dec *json.Decoder) (Selection, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("expected an object, got %v", tok)
	}
	return decodeFields(dec)
}

// decodeFields reads the members of an object whose opening brace was consumed.
func decodeFields(dec *json.Decoder) (Selection, error) {
	sel := Selection{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		name := tok.(string)

		next, err := dec.Token()
		if err != nil {
			return nil, err
		}
		switch next := next.(type) {
		case bool:
			if next {
				sel = append(sel, &SelectedField{Name: name})
			}
		case json.Delim:
			if next != '{' {
				return nil, fmt.Errorf("field %s: expected true, false or an object", name)
			}
			nested, err := decodeFields(dec)
			if err != nil {
				return nil, err
			}
			sel = append(sel, &SelectedField{Name: name, Selection: nested})
		default:
			return nil, fmt.Errorf("field %s: expected true, false or an object", name)
		}
	}
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return sel, nil
}
