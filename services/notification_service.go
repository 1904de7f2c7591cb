// services/notification_service.go
package services

import (
	"fmt"
	"os"
	"strings"

	"salondesk-backend/config"

	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
	"go.uber.org/zap"
)

// NotificationService sends SMS/WhatsApp messages to clients. Every send
// failure is logged and swallowed: a booking or payment never fails or
// rolls back because a message could not be delivered.
type NotificationService struct {
	client       *twilio.RestClient
	smsFrom      string
	whatsappFrom string
	enabled      bool
}

func NewNotificationService() *NotificationService {
	accountSid := os.Getenv("TWILIO_ACCOUNT_SID")
	authToken := os.Getenv("TWILIO_AUTH_TOKEN")

	return &NotificationService{
		client: twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: accountSid,
			Password: authToken,
		}),
		smsFrom:      os.Getenv("TWILIO_PHONE_NUMBER"),
		whatsappFrom: os.Getenv("TWILIO_WHATSAPP_NUMBER"),
		enabled:      accountSid != "" && authToken != "",
	}
}

func (s *NotificationService) Enabled() bool {
	return s.enabled
}

// SendBookingConfirmation messages the client after a booking is stored.
func (s *NotificationService) SendBookingConfirmation(phone, clientName, serviceName, date, startTime string) {
	body := fmt.Sprintf("Hi %s, your %s appointment is booked for %s at %s. See you soon!",
		clientName, serviceName, date, startTime)
	s.send(phone, body)
}

// SendPaymentReceipt messages the client after an appointment is paid.
func (s *NotificationService) SendPaymentReceipt(phone, clientName string, total float64, currency string) {
	body := fmt.Sprintf("Hi %s, thank you for your payment of %.2f %s. We appreciate your visit!",
		clientName, total, currency)
	s.send(phone, body)
}

// SendGreeting delivers an arbitrary message, used by the greeting job.
func (s *NotificationService) SendGreeting(phone, body string) {
	s.send(phone, body)
}

func (s *NotificationService) send(phone, body string) {
	if !s.enabled || phone == "" {
		return
	}

	// WhatsApp for E.164 numbers when a WhatsApp sender is configured.
	to := phone
	from := s.smsFrom
	channel := "sms"
	if strings.HasPrefix(phone, "+") && s.whatsappFrom != "" {
		to = "whatsapp:" + phone
		from = "whatsapp:" + s.whatsappFrom
		channel = "whatsapp"
	}

	params := &twilioApi.CreateMessageParams{}
	params.SetTo(to)
	params.SetFrom(from)
	params.SetBody(body)

	resp, err := s.client.Api.CreateMessage(params)
	if err != nil {
		config.Log.Warn("notification send failed",
			zap.String("channel", channel),
			zap.Error(err),
		)
		return
	}
	if resp.Sid != nil {
		config.Log.Info("notification sent",
			zap.String("channel", channel),
			zap.String("sid", *resp.Sid),
		)
	}
}
