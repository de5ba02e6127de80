package upstreamtest

// Canned upstream bodies shaped like the public API's responses.
const (
	// SingleUnknownCollection holds one character whose origin url is empty.
	SingleUnknownCollection = `{
		"results": [
			{
				"id": 20,
				"name": "Ants in my Eyes Johnson",
				"species": "Human",
				"status": "unknown",
				"origin": {"name": "unknown", "url": ""}
			}
		]
	}`

	// RickSanchez is the by-id body for character 1.
	RickSanchez = `{
		"id": 1,
		"name": "Rick Sanchez",
		"species": "Human",
		"status": "Alive",
		"origin": {"name": "Earth (C-137)", "url": "https://rickandmortyapi.com/api/location/1"}
	}`

	// DeadCollection is a status=Dead filtered response.
	DeadCollection = `{
		"results": [
			{
				"id": 11,
				"name": "Albert Einstein",
				"species": "Human",
				"status": "Dead",
				"origin": {"name": "Earth (C-137)", "url": "https://rickandmortyapi.com/api/location/1"}
			}
		]
	}`

	// StatisticCollection has two Alive humans and one Dead human.
	StatisticCollection = `{
		"info": {"count": 2},
		"results": [
			{
				"id": 11,
				"name": "Albert Einstein",
				"species": "Human",
				"status": "Alive",
				"origin": {"name": "Earth (C-137)", "url": "https://rickandmortyapi.com/api/location/1"}
			},
			{
				"id": 20,
				"name": "Ants in my Eyes Johnson",
				"species": "Human",
				"status": "Alive",
				"origin": {"name": "unknown", "url": ""}
			},
			{
				"id": 1,
				"name": "Rick Sanchez",
				"species": "Human",
				"status": "Dead",
				"origin": {"name": "Earth (C-137)", "url": "https://rickandmortyapi.com/api/location/1"}
			}
		]
	}`

	// NotFound is the API's by-id miss body, served with status 404.
	NotFound = `{"error":"Character not found"}`
)
