// internal/transport/whatsapp.go
package transport

import (
    "fmt"

    "github.com/twilio/twilio-go"
    openapi "github.com/twilio/twilio-go/rest/api/v2010"

    "github.com/blasthq/blast-backend/internal/config"
)

// TwilioSender delivers WhatsApp messages through Twilio. Results come back
// as a tri-state (ok, status code, provider message id or error detail);
// nothing escapes this boundary, panics from the SDK included.
type TwilioSender struct {
    client *twilio.RestClient
    from   string
}

func NewTwilioSender(cfg config.TwilioConfig) *TwilioSender {
    return &TwilioSender{
        client: twilio.NewRestClientWithParams(twilio.ClientParams{
            Username: cfg.AccountSID,
            Password: cfg.AuthToken,
        }),
        from: cfg.WhatsAppFrom,
    }
}

func (s *TwilioSender) Send(phone, text string) (ok bool, code int, body string) {
    defer func() {
        if r := recover(); r != nil {
            ok, code, body = false, 500, fmt.Sprint(r)
        }
    }()

    params := &openapi.CreateMessageParams{}
    params.SetTo("whatsapp:" + phone)
    params.SetFrom(s.from)
    params.SetBody(text)

    resp, err := s.client.Api.CreateMessage(params)
    if err != nil {
        return false, 500, err.Error()
    }

    sid := ""
    if resp.Sid != nil {
        sid = *resp.Sid
    }
    return true, 200, sid
}
