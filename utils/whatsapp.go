package utils

import (
	"fmt"
	"os"
	"strings"

	"github.com/twilio/twilio-go"
	twilioapi "github.com/twilio/twilio-go/rest/api/v2010"
)

// SendWhatsApp sends a WhatsApp message to the given phone number via the
// Twilio API. The number must be E.164; a missing plus is added.
func SendWhatsApp(to, body string) error {
	sid := os.Getenv("TWILIO_ACCOUNT_SID")
	token := os.Getenv("TWILIO_AUTH_TOKEN")
	from := os.Getenv("TWILIO_WHATSAPP_FROM")
	if sid == "" || token == "" || from == "" {
		return fmt.Errorf("twilio credentials not configured")
	}

	if !strings.HasPrefix(to, "+") {
		to = "+" + to
	}

	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: sid,
		Password: token,
	})

	params := &twilioapi.CreateMessageParams{}
	params.SetFrom("whatsapp:" + from)
	params.SetTo("whatsapp:" + to)
	params.SetBody(body)

	if _, err := client.Api.CreateMessage(params); err != nil {
		return WrapError(err, "failed to send WhatsApp message")
	}
	return nil
}
