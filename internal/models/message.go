package models

import "time"

// Message is a contact/booking request received by a company.
type Message struct {
	ID             int64     `json:"id"`
	OrganizationID int64     `json:"organizationId"`
	SenderName     string    `json:"senderName"`
	SenderEmail    string    `json:"senderEmail"`
	SenderPhone    string    `json:"senderPhone"`
	Body           string    `json:"body"`
	EventDate      time.Time `json:"eventDate"`
	IsRead         bool      `json:"isRead"`
	CreatedAt      time.Time `json:"createdAt"`
}
