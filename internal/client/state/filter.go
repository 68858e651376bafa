package state

import (
	"strings"

	"github.com/dmitrijs2005/alumnet/internal/client/models"
)

// FilterColleges returns the colleges whose name or location contains text,
// ignoring case, in collection order. Blank text yields nil (no filter).
func FilterColleges(colleges []models.College, text string) []models.College {
	return filterBy(colleges, text, func(c models.College) []string {
		return []string{c.Name, c.Location}
	})
}

// FilterAlumni returns the alumni whose name or email contains text,
// ignoring case, in collection order. Blank text yields nil (no filter).
func FilterAlumni(alumni []models.User, text string) []models.User {
	return filterBy(alumni, text, func(u models.User) []string {
		return []string{u.Name, u.Email}
	})
}

func filterBy[T any](items []T, text string, fields func(T) []string) []T {
	needle := strings.ToLower(strings.TrimSpace(text))
	if needle == "" {
		return nil
	}
	out := []T{}
	for _, it := range items {
		for _, f := range fields(it) {
			if strings.Contains(strings.ToLower(f), needle) {
				out = append(out, it)
				break
			}
		}
	}
	return out
}
