package mailer

import (
	"github.com/homenest/homenest-api/pkg/logger"
)

type DevMailer struct{}

func NewDevMailer() *DevMailer {
	return &DevMailer{}
}

func (d *DevMailer) SendOfferAccepted(toEmail, toName, propertyTitle string) error {
	logger.Info("[DEV MAIL] Offer accepted notification",
		"to", toEmail,
		"name", toName,
		"property", propertyTitle,
	)
	return nil
}
