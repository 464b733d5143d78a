package model

import "fmt"

// Page is a page recorded by the latest crawl of a project.
type Page struct {
	ID              string `json:"id"`
	CrawlID         string `json:"crawl_id,omitempty"`
	URL             string `json:"url"`
	Title           string `json:"title,omitempty"`
	MetaDescription string `json:"meta_description,omitempty"`
	H1              string `json:"h1,omitempty"`
	StatusCode      int    `json:"status_code,omitempty"`
	LoadTimeMS      int    `json:"load_time_ms,omitempty"`
}

// Validate reports whether the page carries the fields the client needs.
func (p Page) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("%w: page without id", ErrMalformed)
	}
	if p.URL == "" {
		return fmt.Errorf("%w: page %s without url", ErrMalformed, p.ID)
	}
	return nil
}
