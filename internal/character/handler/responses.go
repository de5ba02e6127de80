package handler

import "rickmorty/internal/character/models"

// CharacterResponse mirrors the upstream character shape field for field.
type CharacterResponse struct {
	ID      int            `json:"id"`
	Name    string         `json:"name"`
	Species string         `json:"species"`
	Status  string         `json:"status"`
	Origin  OriginResponse `json:"origin"`
}

// OriginResponse is the nested origin object.
type OriginResponse struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

func toCharacterResponse(c *models.Character) CharacterResponse {
	return CharacterResponse{
		ID:      c.ID,
		Name:    c.Name,
		Species: c.Species,
		Status:  c.Status,
		Origin: OriginResponse{
			Name: c.Origin.Name,
			URL:  c.Origin.URL,
		},
	}
}

// toCharacterResponses never returns nil so empty collections encode as [].
func toCharacterResponses(characters models.Collection) []CharacterResponse {
	out := make([]CharacterResponse, 0, len(characters))
	for i := range characters {
		out = append(out, toCharacterResponse(&characters[i]))
	}
	return out
}
