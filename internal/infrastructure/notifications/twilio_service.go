package notifications

import (
	"fmt"
	"log"
	"strings"

	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"

	"github.com/Debmalya06/Mess-Milega-sub000/domain"
)

// DefaultCountryCode is prefixed to ten-digit local numbers
const DefaultCountryCode = "+91"

// messageCreator is the part of the Twilio REST API used here
type messageCreator interface {
	CreateMessage(params *twilioApi.CreateMessageParams) (*twilioApi.ApiV2010Message, error)
}

// TwilioServiceImpl implements domain.NotificationService
type TwilioServiceImpl struct {
	api        messageCreator
	fromNumber string
}

// NewTwilioService creates a new Twilio notification service. Without a
// sender number messages are logged instead of sent.
func NewTwilioService(accountSID, authToken, fromNumber string) *TwilioServiceImpl {
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: accountSID,
		Password: authToken,
	})

	return &TwilioServiceImpl{
		api:        client.Api,
		fromNumber: fromNumber,
	}
}

// Enabled reports whether SMS goes through Twilio
func (t *TwilioServiceImpl) Enabled() bool {
	return t.fromNumber != ""
}

// SendSMS implements domain.NotificationService
func (t *TwilioServiceImpl) SendSMS(to, message string) error {
	to = E164(to)
	if to == "" {
		return fmt.Errorf("%w: phone number is required", domain.ErrInvalidInput)
	}
	if !t.Enabled() {
		log.Printf("SMS_NOT_SENT: to=%s body=%q", to, message)
		return nil
	}

	params := &twilioApi.CreateMessageParams{}
	params.SetTo(to)
	params.SetFrom(t.fromNumber)
	params.SetBody(message)

	resp, err := t.api.CreateMessage(params)
	if err != nil {
		return fmt.Errorf("failed to send SMS: %w", err)
	}
	if resp != nil && resp.Sid != nil {
		log.Printf("SMS_SENT: to=%s sid=%s", to, *resp.Sid)
	}
	return nil
}

// SendEmail implements domain.NotificationService. Twilio has no mail API
// here, so the message is written to the server log.
func (t *TwilioServiceImpl) SendEmail(to, subject, body string) error {
	if strings.TrimSpace(to) == "" {
		return fmt.Errorf("%w: email is required", domain.ErrInvalidInput)
	}
	log.Printf("EMAIL_NOT_SENT: to=%s subject=%q body=%q", to, subject, body)
	return nil
}

// E164 normalizes a phone number: spaces and dashes are dropped and ten-digit
// local numbers get the default country code.
func E164(phone string) string {
	phone = strings.NewReplacer(" ", "", "-", "", "(", "", ")", "").Replace(strings.TrimSpace(phone))
	if phone == "" || strings.HasPrefix(phone, "+") {
		return phone
	}
	phone = strings.TrimPrefix(phone, "0")
	if len(phone) == 10 {
		return DefaultCountryCode + phone
	}
	return "+" + phone
}

var _ domain.NotificationService = (*TwilioServiceImpl)(nil)
