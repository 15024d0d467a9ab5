package models

import "time"

// Subscriber is a newsletter signup from the marketing site.
type Subscriber struct {
	ID           int       `json:"id"`
	Email        string    `json:"email"`
	IsActive     bool      `json:"is_active"`
	SubscribedAt time.Time `json:"subscribed_at"`
}

// SubscribeRequest is the public newsletter form payload.
type SubscribeRequest struct {
	Email string `json:"email"`
}
