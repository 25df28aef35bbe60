package dto

import (
	"time"

	"folio/shared/constant"
	"folio/shared/timezone"

	"github.com/google/uuid"
)

type ContactRequest struct {
	Name      string `json:"name"       validate:"required,min=1,max=100"`
	Email     string `json:"email"      validate:"required,email,max=200"`
	Phone     string `json:"phone"      validate:"omitempty,max=40"`
	Subject   string `json:"subject"    validate:"omitempty,max=200"`
	EventDate string `json:"event_date" validate:"omitempty,datetime=2006-01-02"`
	Message   string `json:"message"    validate:"required,min=1,max=5000"`
}

// ContactMessage is what gets published for the studio to follow up on.
type ContactMessage struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Phone      string    `json:"phone,omitempty"`
	Subject    string    `json:"subject,omitempty"`
	EventDate  string    `json:"event_date,omitempty"`
	Message    string    `json:"message"`
	ReceivedAt time.Time `json:"received_at"`
}

func (r *ContactRequest) ToMessage() ContactMessage {
	return ContactMessage{
		ID:         uuid.NewString(),
		Name:       r.Name,
		Email:      r.Email,
		Phone:      r.Phone,
		Subject:    r.Subject,
		EventDate:  r.EventDate,
		Message:    r.Message,
		ReceivedAt: timezone.Now(),
	}
}

type ContactResponse struct {
	ID         string `json:"id"`
	ReceivedAt string `json:"received_at"`
}

func (r *ContactResponse) FromMessage(msg ContactMessage) {
	r.ID = msg.ID
	r.ReceivedAt = timezone.Format(msg.ReceivedAt, constant.DateFormat)
}
