package models

type ContactMessage struct {
	Name    string
	Email   string
	Message string
}
