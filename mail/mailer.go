package mail

import (
	"github.com/charmbracelet/log"
)

type (
	// Mailer delivers transactional mail. Delivery itself is an external
	// collaborator; callers only depend on this interface.
	Mailer interface {
		Send(recipient string, subject string, body string) error
	}

	logMailer struct{}
)

// CreateLogMailer returns a Mailer that only logs outgoing messages. Used
// in development and whenever no delivery backend is configured.
func CreateLogMailer() Mailer {
	return &logMailer{}
}

func (m *logMailer) Send(recipient string, subject string, body string) error {
	log.Info("[MAIL] Outgoing message", "to", recipient, "subject", subject)
	return nil
}
