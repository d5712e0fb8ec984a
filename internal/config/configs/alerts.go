package configs

// Alerts configures the notification channels. Email via SendGrid is always
// on; SMS via Twilio is enabled only when SID, from-number and recipient are
// all set.
type Alerts struct {
	SendGridAPIKey string `env:"SENDGRID_API_KEY,required"`
	EmailTo        string `env:"EMAIL_TO,required"`
	// EmailFrom must be a sender verified with SendGrid.
	EmailFrom string `env:"EMAIL_FROM,required"`

	TwilioSID       string `env:"TWILIO_SID"`
	TwilioAuthToken string `env:"TWILIO_AUTH_TOKEN"`
	TwilioFrom      string `env:"TWILIO_FROM"`
	SMSTo           string `env:"SMS_TO"`
}

// SMSEnabled reports whether the optional SMS channel is fully configured.
func (a Alerts) SMSEnabled() bool {
	return a.TwilioSID != "" && a.TwilioFrom != "" && a.SMSTo != ""
}
