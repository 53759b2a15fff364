package mailer

type Service interface {
	SendOfferAccepted(toEmail, toName, propertyTitle string) error
}
