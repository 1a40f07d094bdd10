package models

import "time"

// Job represents a posting owned by an employer. The description is the
// text handed to the scoring service as matching context; the job itself
// is never mutated by the scoring or ranking layers.
type Job struct {
	ID          string    `gorm:"primaryKey" json:"id"`
	EmployerID  string    `gorm:"index;not null" json:"employer_id"`
	Title       string    `json:"title"`
	Company     string    `json:"company"`
	Location    string    `json:"location"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
