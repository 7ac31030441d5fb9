// internal/transport/email.go
package transport

import (
    "bytes"
    "fmt"
    "html/template"
    "time"

    "gopkg.in/gomail.v2"

    "github.com/blasthq/blast-backend/internal/config"
)

// plainFallback is the text/plain part sent alongside the HTML alternative.
const plainFallback = "This is an HTML email"

// baseEmailTemplate wraps the campaign body and stamps the current year in
// the footer.
const baseEmailTemplate = `<!DOCTYPE html>
<html>
  <body style="margin:0;padding:0;background:#f4f4f4;font-family:Arial,Helvetica,sans-serif;">
    <div style="max-width:600px;margin:0 auto;background:#ffffff;padding:24px;">
      {{.Body}}
    </div>
    <div style="max-width:600px;margin:0 auto;padding:12px;text-align:center;color:#888;font-size:12px;">
      &copy; {{.Year}} All rights reserved.
    </div>
  </body>
</html>`

// Mailer sends campaign emails over SMTP.
type Mailer struct {
    dialer      *gomail.Dialer
    defaultFrom string
    tmpl        *template.Template
}

func NewMailer(cfg config.SMTPConfig) *Mailer {
    return &Mailer{
        dialer:      gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
        defaultFrom: cfg.From,
        tmpl:        template.Must(template.New("base_email").Parse(baseEmailTemplate)),
    }
}

// Send renders the HTML body into the wrapper template and delivers a
// multipart message with a plain-text fallback. An empty from uses the
// configured default.
func (m *Mailer) Send(from, to, subject, bodyHTML string) error {
    if from == "" {
        from = m.defaultFrom
    }

    html, err := m.renderBody(bodyHTML)
    if err != nil {
        return err
    }

    msg := gomail.NewMessage()
    msg.SetHeader("From", from)
    msg.SetHeader("To", to)
    msg.SetHeader("Subject", subject)
    msg.SetBody("text/plain", plainFallback)
    msg.AddAlternative("text/html", html)

    if err := m.dialer.DialAndSend(msg); err != nil {
        return fmt.Errorf("send email to %s: %w", to, err)
    }
    return nil
}

func (m *Mailer) renderBody(bodyHTML string) (string, error) {
    var buf bytes.Buffer
    err := m.tmpl.Execute(&buf, struct {
        Body template.HTML
        Year int
    }{
        Body: template.HTML(bodyHTML),
        Year: time.Now().Year(),
    })
    if err != nil {
        return "", fmt.Errorf("render email body: %w", err)
    }
    return buf.String(), nil
}
