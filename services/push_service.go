// services/push_service.go
package services

import (
	"encoding/json"
	"net/http"
	"os"

	"salondesk-backend/config"
	"salondesk-backend/models"

	webpush "github.com/SherClockHolmes/webpush-go"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PushService stores browser push subscriptions and fans notifications out
// to all of them. Delivery failures are logged and swallowed; endpoints
// that report gone or not-found are pruned.
type PushService struct {
	db         *gorm.DB
	publicKey  string
	privateKey string
	subscriber string
	enabled    bool
}

func NewPushService(db *gorm.DB) *PushService {
	publicKey := os.Getenv("VAPID_PUBLIC_KEY")
	privateKey := os.Getenv("VAPID_PRIVATE_KEY")

	return &PushService{
		db:         db,
		publicKey:  publicKey,
		privateKey: privateKey,
		subscriber: os.Getenv("VAPID_SUBSCRIBER"),
		enabled:    publicKey != "" && privateKey != "",
	}
}

func (s *PushService) Enabled() bool {
	return s.enabled
}

func (s *PushService) PublicKey() string {
	return s.publicKey
}

// Subscribe upserts a subscription record keyed by endpoint.
func (s *PushService) Subscribe(endpoint, p256dh, auth string) error {
	sub := models.PushSubscription{
		Endpoint: endpoint,
		P256dh:   p256dh,
		Auth:     auth,
	}
	return s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "endpoint"}},
		DoUpdates: clause.AssignmentColumns([]string{"p256dh", "auth"}),
	}).Create(&sub).Error
}

// Unsubscribe removes the subscription for endpoint, if any.
func (s *PushService) Unsubscribe(endpoint string) error {
	return s.db.Where("endpoint = ?", endpoint).Delete(&models.PushSubscription{}).Error
}

// Broadcast sends a notification to every stored subscription.
func (s *PushService) Broadcast(title, body string) {
	if !s.enabled {
		return
	}

	var subs []models.PushSubscription
	if err := s.db.Find(&subs).Error; err != nil {
		config.Log.Error("failed to load push subscriptions", zap.Error(err))
		return
	}

	payload, _ := json.Marshal(map[string]string{"title": title, "body": body})

	for _, sub := range subs {
		resp, err := webpush.SendNotification(payload, &webpush.Subscription{
			Endpoint: sub.Endpoint,
			Keys: webpush.Keys{
				P256dh: sub.P256dh,
				Auth:   sub.Auth,
			},
		}, &webpush.Options{
			Subscriber:      s.subscriber,
			VAPIDPublicKey:  s.publicKey,
			VAPIDPrivateKey: s.privateKey,
			TTL:             60,
		})
		if err != nil {
			config.Log.Warn("push delivery failed", zap.Error(err))
			continue
		}
		if resp.StatusCode == http.StatusGone || resp.StatusCode == http.StatusNotFound {
			if err := s.db.Where("endpoint = ?", sub.Endpoint).
				Delete(&models.PushSubscription{}).Error; err != nil {
				config.Log.Warn("failed to prune push subscription", zap.Error(err))
			}
		}
		resp.Body.Close()
	}
}
