package contact

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/adanyl0v/go-portfolio/internal/models"
)

const (
	MinNameLength    = 2
	MinMessageLength = 10
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidationError carries every problem found in a contact message.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Problems, " ")
}

// Validate checks msg and returns a *ValidationError listing all
// problems, or nil.
func Validate(msg models.ContactMessage) error {
	var problems []string
	if utf8.RuneCountInString(strings.TrimSpace(msg.Name)) < MinNameLength {
		problems = append(problems, "Name must be at least 2 characters.")
	}
	if !emailPattern.MatchString(msg.Email) {
		problems = append(problems, "Enter a valid email.")
	}
	if utf8.RuneCountInString(strings.TrimSpace(msg.Message)) < MinMessageLength {
		problems = append(problems, "Message must be at least 10 characters.")
	}

	if len(problems) > 0 {
		return &ValidationError{Problems: problems}
	}
	return nil
}
