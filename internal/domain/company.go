package domain

// CompanyRecord is one company scraped from a pitch card detail page.
type CompanyRecord struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	LogoURL     string `json:"logoUrl"`
}
