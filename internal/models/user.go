// Package models defines data structures and domain types.
package models

// User is one entry of the roster returned by the user page analytics query.
type User struct {
	Email                     string `json:"email"`
	Name                      string `json:"name"`
	LastUpdateTime            string `json:"lastUpdateTime"`
	LastAutocompleteUsageTime string `json:"lastAutocompleteUsageTime"`
	LastChatUsageTime         string `json:"lastChatUsageTime"`
	LastCommandUsageTime      string `json:"lastCommandUsageTime"`
	ActiveDays                Int64  `json:"activeDays"`
}

// RosterResponse is the body returned by the roster endpoint.
type RosterResponse struct {
	UserTableStats []User `json:"userTableStats"`
}

// IndexByEmail maps each non-empty email to its first roster entry.
func IndexByEmail(users []User) map[string]User {
	index := make(map[string]User, len(users))
	for _, u := range users {
		if u.Email == "" {
			continue
		}
		if _, ok := index[u.Email]; !ok {
			index[u.Email] = u
		}
	}
	return index
}
