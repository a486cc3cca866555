package domain

import "time"

// SampleRequest is one add-samples request received by the session.
type SampleRequest struct {
	ID          string    `json:"id"`
	Paths       []string  `json:"paths"`
	RequestedAt time.Time `json:"requestedAt"`
}
