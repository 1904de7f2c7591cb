package controllers

import (
	"errors"
	"strconv"
	"time"

	"salondesk-backend/realtime"
	"salondesk-backend/services"
	"salondesk-backend/utils"
)

// Injected collaborators, wired once at startup (and by tests).
var (
	Hub      *realtime.Hub
	Notifier *services.NotificationService
	Push     *services.PushService

	// Lockout guards PIN verification per (address, role name) pair.
	Lockout = utils.NewLoginLockout(5, 15*time.Minute)
)

func Init(hub *realtime.Hub, notifier *services.NotificationService, push *services.PushService) {
	Hub = hub
	Notifier = notifier
	Push = push
}

func broadcast(eventType string, payload interface{}) {
	if Hub != nil {
		Hub.Broadcast(eventType, payload)
	}
}

func parsePositiveInt(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	if n < 1 {
		return 0, errors.New("must be positive")
	}
	return n, nil
}
