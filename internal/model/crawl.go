package model

// CrawlAck is the backend's acknowledgment of a crawl start request.
// Acceptance only means the job was queued; it says nothing about completion.
type CrawlAck struct {
	Message string `json:"message"`
	TaskID  string `json:"task_id,omitempty"`
}

// Health is the response of the backend health endpoint.
type Health struct {
	Status  string `json:"status"`
	Service string `json:"service,omitempty"`
}

// Healthy reports whether the backend declared itself healthy.
func (h Health) Healthy() bool {
	return h.Status == "healthy"
}
