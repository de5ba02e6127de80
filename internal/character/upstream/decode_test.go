package upstream

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rickmorty/internal/character/models"
	"rickmorty/internal/character/upstream/upstreamtest"
)

func TestDecodeCollection(t *testing.T) {
	payload, err := Decode([]byte(upstreamtest.StatisticCollection))
	require.NoError(t, err)

	assert.Equal(t, KindCollection, payload.Kind)
	require.Len(t, payload.Results, 3)
	assert.Equal(t, []int{11, 20, 1}, []int{payload.Results[0].ID, payload.Results[1].ID, payload.Results[2].ID})
	assert.Equal(t, models.Origin{Name: "unknown", URL: ""}, payload.Results[1].Origin)
	require.NotNil(t, payload.Info)
	assert.Equal(t, 2, payload.Info.Count)
	assert.Nil(t, payload.Character)
}

func TestDecodeCollectionWithoutInfo(t *testing.T) {
	payload, err := Decode([]byte(upstreamtest.DeadCollection))
	require.NoError(t, err)

	assert.Nil(t, payload.Info)
	require.Len(t, payload.Results, 1)
	assert.Equal(t, "Dead", payload.Results[0].Status)
}

func TestDecodeEmptyResults(t *testing.T) {
	payload, err := Decode([]byte(`{"info":{"count":0,"pages":0,"next":null,"prev":null},"results":[]}`))
	require.NoError(t, err)

	assert.Equal(t, KindCollection, payload.Kind)
	assert.NotNil(t, payload.Results)
	assert.Empty(t, payload.Results)
}

func TestDecodeInfoPaging(t *testing.T) {
	payload, err := Decode([]byte(`{
		"info": {"count": 826, "pages": 42, "next": "https://rickandmortyapi.com/api/character?page=2", "prev": null},
		"results": []
	}`))
	require.NoError(t, err)

	assert.Equal(t, models.Info{
		Count: 826,
		Pages: 42,
		Next:  "https://rickandmortyapi.com/api/character?page=2",
	}, *payload.Info)
}

func TestDecodeSingleCharacter(t *testing.T) {
	payload, err := Decode([]byte(upstreamtest.RickSanchez))
	require.NoError(t, err)

	assert.Equal(t, KindCharacter, payload.Kind)
	assert.Equal(t, &models.Character{
		ID:      1,
		Name:    "Rick Sanchez",
		Species: "Human",
		Status:  "Alive",
		Origin: models.Origin{
			Name: "Earth (C-137)",
			URL:  "https://rickandmortyapi.com/api/location/1",
		},
	}, payload.Character)
	assert.Nil(t, payload.Results)
}

func TestDecodeIgnoresCaseVariantKeys(t *testing.T) {
	payload, err := Decode([]byte(`{
		"id": 1,
		"name": "Rick Sanchez",
		"species": "Human",
		"status": "Alive",
		"Status": "Dead",
		"origin": {"name": "Earth (C-137)", "url": "", "Name": "Citadel"}
	}`))
	require.NoError(t, err)

	assert.Equal(t, "Alive", payload.Character.Status)
	assert.Equal(t, "Earth (C-137)", payload.Character.Origin.Name)
}

func TestDecodeKeepsRawBody(t *testing.T) {
	payload, err := Decode([]byte("  " + upstreamtest.RickSanchez + "\n"))
	require.NoError(t, err)

	assert.JSONEq(t, upstreamtest.RickSanchez, string(payload.Raw))
}

func TestDecodeEmptyBody(t *testing.T) {
	for _, body := range []string{"", "   \n", "null"} {
		payload, err := Decode([]byte(body))
		require.NoError(t, err)
		assert.Equal(t, KindEmpty, payload.Kind, "body %q", body)
	}
}

func TestDecodeFailures(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		wantField string
	}{
		{"not json", `<html>oops</html>`, ""},
		{"top-level array", `[1,2,3]`, ""},
		{"missing id", `{"name":"Rick","species":"Human","status":"Alive","origin":{"name":"Earth","url":""}}`, "id"},
		{"missing status", `{"id":1,"name":"Rick","species":"Human","origin":{"name":"Earth","url":""}}`, "status"},
		{"missing origin", `{"id":1,"name":"Rick","species":"Human","status":"Alive"}`, "origin"},
		{"null origin", `{"id":1,"name":"Rick","species":"Human","status":"Alive","origin":null}`, "origin"},
		{"missing origin url", `{"id":1,"name":"Rick","species":"Human","status":"Alive","origin":{"name":"Earth"}}`, "origin.url"},
		{"id wrong type", `{"id":"one","name":"Rick","species":"Human","status":"Alive","origin":{"name":"Earth","url":""}}`, "id"},
		{"origin name wrong type", `{"id":1,"name":"Rick","species":"Human","status":"Alive","origin":{"name":7,"url":""}}`, "origin.name"},
		{"results not a list", `{"results":{"id":1}}`, "results"},
		{"results null", `{"results":null}`, "results"},
		{"bad record in results", `{"results":[` + upstreamtest.RickSanchez + `,{"id":2,"name":"Morty","species":"Human","status":"Alive"}]}`, "results[1].origin"},
		{"mistyped field in results", `{"results":[{"id":3,"name":"Summer","species":false,"status":"Alive","origin":{"name":"Earth","url":""}}]}`, "results[0].species"},
		{"info wrong type", `{"info":"lots","results":[]}`, "info"},
		{"info without results", `{"info":{"count":2}}`, "results"},
		{"upper-case keys", `{"ID":7,"NAME":"X","Species":"Human","STATUS":"Alive","Origin":{"NAME":"e","URL":""}}`, "id"},
		{"upper-case status only", `{"id":1,"name":"Rick","species":"Human","Status":"Alive","origin":{"name":"Earth","url":""}}`, "status"},
		{"upper-case origin keys", `{"id":1,"name":"Rick","species":"Human","status":"Alive","origin":{"NAME":"Earth","URL":""}}`, "origin.name"},
		{"origin not an object", `{"id":1,"name":"Rick","species":"Human","status":"Alive","origin":"Earth"}`, "origin"},
		{"null record in results", `{"results":[null]}`, "results[0]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payload, err := Decode([]byte(tt.body))
			require.Error(t, err)
			assert.Nil(t, payload)

			var decodeErr *models.DecodeError
			require.True(t, errors.As(err, &decodeErr), "expected DecodeError, got %T", err)
			assert.Equal(t, tt.wantField, decodeErr.Field)
			assert.NotEmpty(t, decodeErr.Raw)
		})
	}
}

// Encoding characters in the upstream shape and decoding them again yields
// the same records in the same order.
func TestDecodeRoundTrip(t *testing.T) {
	want := models.Collection{
		{ID: 5, Name: "Jerry Smith", Species: "Human", Status: "Alive", Origin: models.Origin{Name: "Earth (Replacement Dimension)", URL: "https://rickandmortyapi.com/api/location/20"}},
		{ID: 2, Name: "Morty Smith", Species: "Human", Status: "Alive", Origin: models.Origin{Name: "unknown", URL: ""}},
		{ID: 2, Name: "Morty Smith", Species: "Human", Status: "Alive", Origin: models.Origin{Name: "unknown", URL: ""}},
		{ID: 47, Name: "Birdperson", Species: "Alien", Status: "Dead", Origin: models.Origin{Name: "Bird World", URL: "https://rickandmortyapi.com/api/location/15"}},
	}

	type origin struct {
		Name string `json:"name"`
		URL  string `json:"url"`
	}
	type character struct {
		ID      int    `json:"id"`
		Name    string `json:"name"`
		Species string `json:"species"`
		Status  string `json:"status"`
		Origin  origin `json:"origin"`
	}
	wire := struct {
		Results []character `json:"results"`
	}{}
	for _, c := range want {
		wire.Results = append(wire.Results, character{c.ID, c.Name, c.Species, c.Status, origin{c.Origin.Name, c.Origin.URL}})
	}
	body, err := json.Marshal(wire)
	require.NoError(t, err)

	payload, err := Decode(body)
	require.NoError(t, err)
	assert.Equal(t, want, payload.Results)
}
