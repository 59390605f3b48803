package models

import "time"

// ForumPost is a keeper forum entry, optionally scoped to a species.
type ForumPost struct {
	ID        string    `json:"id"`
	AuthorID  int       `json:"author_id"`
	Species   string    `json:"species,omitempty"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
}

// Product is a husbandry product recommendation.
type Product struct {
	ID       string `json:"id"`
	Species  string `json:"species,omitempty"`  // empty means any species
	Category string `json:"category,omitempty"` // uvb, heat, supplement, food...
	Name     string `json:"name"`
	URL      string `json:"url,omitempty"`
	Note     string `json:"note,omitempty"`
}
