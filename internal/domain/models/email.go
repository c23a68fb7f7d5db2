package models

// EmailMessage is a rendered report ready for delivery.
type EmailMessage struct {
	From    string
	To      []string
	Subject string
	HTML    string
}
