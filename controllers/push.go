// controllers/push.go
package controllers

import (
	"net/http"

	"salondesk-backend/utils"

	"github.com/gin-gonic/gin"
)

type PushSubscribeInput struct {
	Endpoint string `json:"endpoint" binding:"required"`
	Keys     struct {
		P256dh string `json:"p256dh" binding:"required"`
		Auth   string `json:"auth" binding:"required"`
	} `json:"keys" binding:"required"`
}

type PushUnsubscribeInput struct {
	Endpoint string `json:"endpoint" binding:"required"`
}

// GetPushPublicKey hands the VAPID public key to the service worker.
func GetPushPublicKey(c *gin.Context) {
	if Push == nil || !Push.Enabled() {
		utils.RespondWithError(c, http.StatusServiceUnavailable, "Push notifications are not configured")
		return
	}
	c.JSON(http.StatusOK, gin.H{"publicKey": Push.PublicKey()})
}

// SubscribePush upserts a browser push subscription.
func SubscribePush(c *gin.Context) {
	if Push == nil {
		utils.RespondWithError(c, http.StatusServiceUnavailable, "Push notifications are not configured")
		return
	}

	var input PushSubscribeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if err := Push.Subscribe(input.Endpoint, input.Keys.P256dh, input.Keys.Auth); err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to store subscription")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Subscribed"})
}

// UnsubscribePush deletes a stored subscription.
func UnsubscribePush(c *gin.Context) {
	if Push == nil {
		utils.RespondWithError(c, http.StatusServiceUnavailable, "Push notifications are not configured")
		return
	}

	var input PushUnsubscribeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if err := Push.Unsubscribe(input.Endpoint); err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to remove subscription")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Unsubscribed"})
}
