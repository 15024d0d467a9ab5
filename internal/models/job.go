package models

import "time"

// Job is a careers-page posting.
type Job struct {
	ID          int       `json:"id"`
	Title       string    `json:"title"`
	Location    string    `json:"location,omitempty"`
	Description string    `json:"description,omitempty"`
	IsOpen      bool      `json:"is_open"`
	CreatedAt   time.Time `json:"created_at"`
}

// JobApplication is a candidate submission against a posting.
type JobApplication struct {
	ID        int       `json:"id"`
	JobID     int       `json:"job_id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	Email     string    `json:"email,omitempty"`
	ResumeURL string    `json:"resume_url,omitempty"`
	Message   string    `json:"message,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateJobRequest creates or updates a posting.
type CreateJobRequest struct {
	Title       string `json:"title"`
	Location    string `json:"location"`
	Description string `json:"description"`
	IsOpen      *bool  `json:"is_open"`
}

// ApplyJobRequest is the public application form payload.
type ApplyJobRequest struct {
	Name      string `json:"name"`
	Phone     string `json:"phone"`
	Email     string `json:"email"`
	ResumeURL string `json:"resume_url"`
	Message   string `json:"message"`
}
