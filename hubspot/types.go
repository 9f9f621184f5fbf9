package hubspot

import "time"

// Object is a single CRM record as returned by the v3 objects API.
type Object struct {
	ID         string            `json:"id"`
	Properties map[string]string `json:"properties"`
	CreatedAt  time.Time         `json:"createdAt"`
	UpdatedAt  time.Time         `json:"updatedAt"`
	Archived   bool              `json:"archived"`
}

// Paging is the cursor block of a list response. Only the first page is ever
// requested.
type Paging struct {
	Next *struct {
		After string `json:"after"`
		Link  string `json:"link"`
	} `json:"next,omitempty"`
}

type listResponse struct {
	Results []Object `json:"results"`
	Paging  *Paging  `json:"paging,omitempty"`
}

type propertiesRequest struct {
	Properties map[string]string `json:"properties"`
}
