// Package stats computes species statistics over character collections.
package stats

import "rickmorty/internal/character/models"

// CountMatching returns how many characters have exactly the given status and
// species. Both comparisons are case-sensitive and always applied together.
func CountMatching(characters models.Collection, status, species string) int {
	count := 0
	for _, c := range characters {
		if c.Status == status && c.Species == species {
			count++
		}
	}
	return count
}
