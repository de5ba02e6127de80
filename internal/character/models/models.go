// Package models holds the character records the gateway reads from upstream.
package models

// Character is one upstream character record. Values are decoded fresh for
// every query and never mutated afterwards.
type Character struct {
	ID      int
	Name    string
	Species string
	// Status is passed through as upstream reports it ("Alive", "Dead",
	// "unknown", ...); it is not validated against a closed set.
	Status string
	Origin Origin
}

// Origin names the location a character comes from. URL is empty when
// upstream does not know the location.
type Origin struct {
	Name string
	URL  string
}

// Collection is an ordered sequence of characters in upstream response order.
type Collection []Character

// Info is the paging metadata upstream attaches to collection responses.
// It is informational only; statistics never read it.
type Info struct {
	Count int
	Pages int
	Next  string
	Prev  string
}
