package entities

import "time"

type NewsArticle struct {
	Title       string    `json:"title"`
	URL         string    `json:"url"`
	Source      string    `json:"source"`
	Category    string    `json:"category"`
	Description string    `json:"description"`
	PublishedAt time.Time `json:"publishedAt"`
}
