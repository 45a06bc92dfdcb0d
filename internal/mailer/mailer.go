package mailer

import (
	"fmt"

	"github.com/renohome/listing-service/internal/config"
	"gopkg.in/gomail.v2"
)

// Mailer delivers buyer enquiries to the listing agent's inbox.
type Mailer struct {
	cfg config.SMTPConfig
}

func New(cfg config.SMTPConfig) *Mailer {
	return &Mailer{cfg: cfg}
}

// SendEnquiry emails the agent about a buyer's interest in a listing.
func (m *Mailer) SendEnquiry(listingTitle, buyerName, buyerPhone, message string) error {
	if m.cfg.AgentAddress == "" {
		return fmt.Errorf("no agent address configured for enquiries")
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.cfg.From)
	msg.SetHeader("To", m.cfg.AgentAddress)
	msg.SetHeader("Subject", "Enquiry: "+listingTitle)
	msg.SetBody("text/plain", fmt.Sprintf(
		"Listing: %s\nName: %s\nPhone: %s\n\n%s\n",
		listingTitle, buyerName, buyerPhone, message,
	))

	d := gomail.NewDialer(m.cfg.Host, m.cfg.Port, m.cfg.Username, m.cfg.Password)
	return d.DialAndSend(msg)
}
