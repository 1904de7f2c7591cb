// services/greeting_service.go
package services

import (
	"fmt"
	"time"

	"salondesk-backend/config"
	"salondesk-backend/models"
	"salondesk-backend/utils"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// GreetingService sends birthday greetings to clients. It runs outside the
// request path and never touches booking state.
type GreetingService struct {
	db       *gorm.DB
	notifier *NotificationService
}

func NewGreetingService(db *gorm.DB, notifier *NotificationService) *GreetingService {
	return &GreetingService{db: db, notifier: notifier}
}

// StartScheduler runs the greeting job daily at 9 AM.
func (s *GreetingService) StartScheduler() {
	c := cron.New()

	c.AddFunc("0 9 * * *", func() {
		s.SendBirthdayGreetings(time.Now())
	})

	c.Start()
	config.Log.Info("greeting scheduler started")
}

// SendBirthdayGreetings messages every client whose birthday falls on the
// given day. The month/day match is done in memory so it behaves the same
// on every configured backend.
func (s *GreetingService) SendBirthdayGreetings(now time.Time) {
	if !s.notifier.Enabled() {
		return
	}

	var clients []models.Client
	if err := s.db.Where("birthday IS NOT NULL").Find(&clients).Error; err != nil {
		config.Log.Error("failed to fetch clients for greetings", zap.Error(err))
		return
	}

	sent := 0
	for _, client := range clients {
		if client.Birthday == nil {
			continue
		}
		if client.Birthday.Month() != now.Month() || client.Birthday.Day() != now.Day() {
			continue
		}
		if !utils.ValidatePhone(client.Phone) {
			continue
		}

		body := fmt.Sprintf("Happy birthday, %s! Treat yourself, your loyalty balance is %d points.",
			client.Name, client.LoyaltyPoints)
		s.notifier.SendGreeting(client.Phone, body)
		sent++
	}

	config.Log.Info("birthday greetings processed", zap.Int("sent", sent))
}
