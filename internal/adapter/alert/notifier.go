// Package alert implements the notifier port: digest emails through
// SendGrid, with an optional Twilio SMS nudge pointing at the email.
package alert

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"log/slog"
	"time"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"github.com/twilio/twilio-go"
	twilioapi "github.com/twilio/twilio-go/rest/api/v2010"

	"adpilot/internal/config/configs"
	"adpilot/internal/core/domain"
)

var issueBody = template.Must(template.New("issues").Parse(`
<html><body style="font-family:Arial,sans-serif">
<h2>Ads Daily Report {{.Date}}</h2>
<p>{{len .Issues}} issue(s) detected today:</p>
<table border="1" cellpadding="0" cellspacing="0" style="border-collapse:collapse;width:100%">
  <thead>
    <tr style="background:#1F3864;color:white">
      <th style="padding:8px">Level</th>
      <th style="padding:8px">Detail</th>
    </tr>
  </thead>
  <tbody>
  {{range .Issues}}<tr><td style="padding:8px"><b>{{.Level}}</b></td><td style="padding:8px">{{.Message}}</td></tr>
  {{end}}</tbody>
</table>
</body></html>`))

var errorBody = template.Must(template.New("error").Parse(`
<html><body style="font-family:Arial,sans-serif">
<h2 style="color:red">Automation Error</h2>
<p>The ads automation encountered an error and did not complete.</p>
<pre style="background:#f5f5f5;padding:12px">{{.Error}}</pre>
<p>Please check the service logs.</p>
</body></html>`))

// Notifier implements port.Notifier.
type Notifier struct {
	cfg    configs.Alerts
	sg     *sendgrid.Client
	twilio *twilio.RestClient
	logger *slog.Logger
	now    func() time.Time
}

// NewNotifier builds the notifier. The Twilio client is only constructed
// when SMS is fully configured.
func NewNotifier(cfg configs.Alerts, logger *slog.Logger) *Notifier {
	n := &Notifier{
		cfg:    cfg,
		sg:     sendgrid.NewSendClient(cfg.SendGridAPIKey),
		logger: logger.With(slog.String("component", "notifier")),
		now:    time.Now,
	}
	if cfg.SMSEnabled() {
		n.twilio = twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: cfg.TwilioSID,
			Password: cfg.TwilioAuthToken,
		})
	}
	return n
}

// SendIssues mails the issue digest and, when SMS is configured, sends a
// short pointer message. An SMS failure is logged, not returned: email is
// the channel of record.
func (n *Notifier) SendIssues(ctx context.Context, issues []domain.Issue) error {
	if len(issues) == 0 {
		return nil
	}
	var body bytes.Buffer
	if err := issueBody.Execute(&body, map[string]any{
		"Date":   n.now().Format("January 2, 2006"),
		"Issues": issues,
	}); err != nil {
		return fmt.Errorf("alert: render issue email: %w", err)
	}
	subject := fmt.Sprintf("Ads Alert: %d issue(s), %s", len(issues), n.now().Format("Jan 02"))
	if err := n.sendEmail(ctx, subject, body.String()); err != nil {
		return err
	}
	n.sendSMS(fmt.Sprintf("Ads: %d ACOS alert(s). Check email for details.", len(issues)))
	return nil
}

// SendError raises the out-of-band alarm for a failed run.
func (n *Notifier) SendError(ctx context.Context, runErr error) error {
	var body bytes.Buffer
	if err := errorBody.Execute(&body, map[string]any{"Error": runErr.Error()}); err != nil {
		return fmt.Errorf("alert: render error email: %w", err)
	}
	subject := fmt.Sprintf("Ads Automation ERROR, %s", n.now().Format("Jan 02 15:04"))
	if err := n.sendEmail(ctx, subject, body.String()); err != nil {
		return err
	}
	n.sendSMS("Ads automation FAILED. Check email.")
	return nil
}

func (n *Notifier) sendEmail(ctx context.Context, subject, html string) error {
	msg := mail.NewSingleEmail(
		mail.NewEmail("", n.cfg.EmailFrom),
		subject,
		mail.NewEmail("", n.cfg.EmailTo),
		"", html,
	)
	resp, err := n.sg.SendWithContext(ctx, msg)
	if err != nil {
		return fmt.Errorf("alert: send email: %w", err)
	}
	if resp.StatusCode >= 300 {
		return fmt.Errorf("alert: sendgrid returned %d: %s", resp.StatusCode, resp.Body)
	}
	return nil
}

func (n *Notifier) sendSMS(text string) {
	if n.twilio == nil {
		return
	}
	params := &twilioapi.CreateMessageParams{}
	params.SetTo(n.cfg.SMSTo)
	params.SetFrom(n.cfg.TwilioFrom)
	params.SetBody(text)
	if _, err := n.twilio.Api.CreateMessage(params); err != nil {
		n.logger.Warn("sms dispatch failed", slog.Any("error", err))
	}
}
