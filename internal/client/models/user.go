// Package models defines directory records, request forms and the
// notification snapshot exchanged with the alumni backend.
package models

import "strings"

// User is a directory record: a registered user, an alumnus or a profile.
type User struct {
	ID            string `json:"_id"`
	Name          string `json:"name"`
	Email         string `json:"email,omitempty"`
	Phone         string `json:"phone,omitempty"`
	College       string `json:"college,omitempty"`
	Branch        string `json:"branch,omitempty"`
	Batch         string `json:"batch,omitempty"`
	Company       string `json:"company,omitempty"`
	Designation   string `json:"designation,omitempty"`
	Authenticated bool   `json:"authenticated,omitempty"`
}

// College is a directory record for an institution.
type College struct {
	ID       string `json:"_id"`
	Name     string `json:"name"`
	Location string `json:"location,omitempty"`
}

// Form is an opaque field set forwarded to the backend as a JSON object.
// The client never interprets its keys.
type Form map[string]any

// FormFromPairs builds a Form from "name=value" items.
func FormFromPairs(items []string) (Form, error) {
	f := make(Form, len(items))
	for _, item := range items {
		name, value, ok := strings.Cut(item, "=")
		if !ok || name == "" {
			return nil, ErrIncorrectField
		}
		f[name] = value
	}
	return f, nil
}

// String renders the user the way the CLI lists it.
func (u User) String() string {
	s := u.ID + "  " + u.Name
	if u.Email != "" {
		s += " <" + u.Email + ">"
	}
	if u.Authenticated {
		s += " [verified]"
	}
	return s
}

func (c College) String() string {
	if c.Location == "" {
		return c.ID + "  " + c.Name
	}
	return c.ID + "  " + c.Name + " (" + c.Location + ")"
}
