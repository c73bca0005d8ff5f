package domain

// PitchRecord is one pitch scraped from a company card detail page.
// Hashtags is never nil once assembled so it encodes as [] rather than null.
type PitchRecord struct {
	Name     string   `json:"name"`
	Hashtags []string `json:"hashtags"`
}
