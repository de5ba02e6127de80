package upstream

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"rickmorty/internal/character/models"
)

var (
	errMissingField = errors.New("missing required field")
	errNullResults  = errors.New("results is null")
)

// Kind tells which shape an upstream body had.
type Kind int

const (
	// KindEmpty is an empty (or JSON null) body.
	KindEmpty Kind = iota
	// KindCollection is a list endpoint body with a top-level results field.
	KindCollection
	// KindCharacter is a by-id endpoint body holding one character.
	KindCharacter
)

// Payload is a decoded upstream body. Exactly one of Results or Character is
// populated, according to Kind. Raw is the trimmed body as received.
type Payload struct {
	Kind      Kind
	Results   models.Collection
	Info      *models.Info
	Character *models.Character
	Raw       []byte
}

type infoWire struct {
	Count int    `json:"count"`
	Pages int    `json:"pages"`
	Next  string `json:"next"`
	Prev  string `json:"prev"`
}

// Decode parses an upstream body. A body with a top-level "results" or
// "info" field is a collection; any other object is a single character.
// Field names match exactly. Missing or mistyped character fields fail with
// *models.DecodeError.
func Decode(body []byte) (*Payload, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || isNull(trimmed) {
		return &Payload{Kind: KindEmpty, Raw: trimmed}, nil
	}

	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &envelope); err != nil {
		return nil, models.NewDecodeError("", trimmed, err)
	}

	rawResults, hasResults := envelope["results"]
	_, hasInfo := envelope["info"]
	if !hasResults && !hasInfo {
		character, err := decodeCharacter(envelope, trimmed, "")
		if err != nil {
			return nil, err
		}
		return &Payload{Kind: KindCharacter, Character: character, Raw: trimmed}, nil
	}
	if !hasResults {
		return nil, models.NewDecodeError("results", trimmed, errMissingField)
	}

	results, err := decodeResults(rawResults)
	if err != nil {
		return nil, err
	}
	payload := &Payload{Kind: KindCollection, Results: results, Raw: trimmed}

	if rawInfo, ok := envelope["info"]; ok && !isNull(rawInfo) {
		var info infoWire
		if err := json.Unmarshal(rawInfo, &info); err != nil {
			return nil, models.NewDecodeError("info", rawInfo, err)
		}
		payload.Info = &models.Info{
			Count: info.Count,
			Pages: info.Pages,
			Next:  info.Next,
			Prev:  info.Prev,
		}
	}
	return payload, nil
}

func decodeResults(raw json.RawMessage) (models.Collection, error) {
	if isNull(raw) {
		return nil, models.NewDecodeError("results", raw, errNullResults)
	}
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, models.NewDecodeError("results", raw, err)
	}

	results := make(models.Collection, 0, len(items))
	for i, item := range items {
		prefix := fmt.Sprintf("results[%d]", i)
		obj, err := decodeObject(item, prefix)
		if err != nil {
			return nil, err
		}
		character, err := decodeCharacter(obj, item, prefix)
		if err != nil {
			return nil, err
		}
		results = append(results, *character)
	}
	return results, nil
}

// decodeObject unmarshals raw into its exact keys. encoding/json folds case
// when filling structs, so records are never decoded into tagged structs.
func decodeObject(raw []byte, field string) (map[string]json.RawMessage, error) {
	if isNull(raw) {
		return nil, models.NewDecodeError(field, raw, errMissingField)
	}
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err != nil {
		return nil, models.NewDecodeError(field, raw, err)
	}
	return obj, nil
}

// requireField decodes obj[key] into T. An absent key or a JSON null is a
// missing field.
func requireField[T any](obj map[string]json.RawMessage, key, prefix string, raw []byte) (T, error) {
	var v T
	value, ok := obj[key]
	if !ok || isNull(value) {
		return v, models.NewDecodeError(joinField(prefix, key), raw, errMissingField)
	}
	if err := json.Unmarshal(value, &v); err != nil {
		return v, models.NewDecodeError(joinField(prefix, key), raw, err)
	}
	return v, nil
}

func decodeCharacter(obj map[string]json.RawMessage, raw []byte, prefix string) (*models.Character, error) {
	id, err := requireField[int](obj, "id", prefix, raw)
	if err != nil {
		return nil, err
	}
	name, err := requireField[string](obj, "name", prefix, raw)
	if err != nil {
		return nil, err
	}
	species, err := requireField[string](obj, "species", prefix, raw)
	if err != nil {
		return nil, err
	}
	status, err := requireField[string](obj, "status", prefix, raw)
	if err != nil {
		return nil, err
	}

	originField := joinField(prefix, "origin")
	rawOrigin, ok := obj["origin"]
	if !ok {
		return nil, models.NewDecodeError(originField, raw, errMissingField)
	}
	origin, err := decodeObject(rawOrigin, originField)
	if err != nil {
		return nil, err
	}
	originName, err := requireField[string](origin, "name", originField, raw)
	if err != nil {
		return nil, err
	}
	originURL, err := requireField[string](origin, "url", originField, raw)
	if err != nil {
		return nil, err
	}

	return &models.Character{
		ID:      id,
		Name:    name,
		Species: species,
		Status:  status,
		Origin: models.Origin{
			Name: originName,
			URL:  originURL,
		},
	}, nil
}

func joinField(prefix, field string) string {
	if prefix == "" {
		return field
	}
	return prefix + "." + field
}

func isNull(raw []byte) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}
