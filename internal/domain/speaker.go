package domain

// Speaker represents a speaker as published by the session catalog.
// swagger:model Speaker
type Speaker struct {
	ID       string     `json:"id"`
	Name     string     `json:"name"`
	Bio      string     `json:"bio"`
	WebSite  string     `json:"website"`
	Sessions []*Session `json:"sessions,omitempty"`
}
