package controllers

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/Rahul-624/FreshMart/config"
	"github.com/Rahul-624/FreshMart/models"
	"github.com/Rahul-624/FreshMart/utils"
)

// BroadcastRequest represents a promotional broadcast payload
type BroadcastRequest struct {
	Message     string `json:"message" binding:"required"`
	Subject     string `json:"subject"`
	ViaWhatsApp bool   `json:"via_whatsapp"`
	ViaEmail    bool   `json:"via_email"`
	CustomerIDs []uint `json:"customer_ids"`
}

// broadcastFailure reports one recipient that could not be reached
type broadcastFailure struct {
	CustomerID uint   `json:"customer_id"`
	Channel    string `json:"channel"`
	Error      string `json:"error"`
}

// BroadcastMessage sends a promotional message to customers over
// WhatsApp and/or email. Blocked customers are skipped. Per-recipient
// failures are collected and reported without aborting the broadcast.
func BroadcastMessage(c *gin.Context) {
	utils.LogInfo("BroadcastMessage called")

	var req BroadcastRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid broadcast request: %v", err)
		utils.BadRequest(c, "Invalid input", err.Error())
		return
	}
	if !req.ViaWhatsApp && !req.ViaEmail {
		utils.BadRequest(c, "At least one channel (via_whatsapp, via_email) is required", nil)
		return
	}
	if req.ViaEmail && req.Subject == "" {
		req.Subject = "A message from " + utils.AppName
	}

	query := config.DB.Where("blocked = ?", false)
	if len(req.CustomerIDs) > 0 {
		query = query.Where("id IN ?", req.CustomerIDs)
	}

	var customers []models.Customer
	if err := query.Find(&customers).Error; err != nil {
		utils.LogError("Failed to fetch broadcast recipients: %v", err)
		utils.InternalServerError(c, "Failed to fetch customers", err.Error())
		return
	}
	if len(customers) == 0 {
		utils.NotFound(c, "No customers to broadcast to")
		return
	}

	sent := 0
	var failures []broadcastFailure
	for _, customer := range customers {
		delivered := false

		if req.ViaWhatsApp {
			if customer.Phone == "" {
				failures = append(failures, broadcastFailure{
					CustomerID: customer.ID,
					Channel:    "whatsapp",
					Error:      "customer has no phone number",
				})
			} else if err := utils.SendWhatsApp(customer.Phone, req.Message); err != nil {
				utils.LogError("WhatsApp broadcast failed for customer %d: %v", customer.ID, err)
				failures = append(failures, broadcastFailure{
					CustomerID: customer.ID,
					Channel:    "whatsapp",
					Error:      err.Error(),
				})
			} else {
				delivered = true
			}
		}

		if req.ViaEmail {
			if customer.Email == "" {
				failures = append(failures, broadcastFailure{
					CustomerID: customer.ID,
					Channel:    "email",
					Error:      "customer has no email address",
				})
			} else {
				body := fmt.Sprintf("<p>Dear %s,</p><p>%s</p><p>- %s</p>",
					customer.Name, req.Message, utils.AppName)
				if err := utils.SendEmail(customer.Email, req.Subject, body); err != nil {
					utils.LogError("Email broadcast failed for customer %d: %v", customer.ID, err)
					failures = append(failures, broadcastFailure{
						CustomerID: customer.ID,
						Channel:    "email",
						Error:      err.Error(),
					})
				} else {
					delivered = true
				}
			}
		}

		if delivered {
			sent++
		}
	}

	utils.LogInfo("Broadcast finished: %d reached, %d failures out of %d customers",
		sent, len(failures), len(customers))
	utils.Success(c, "Broadcast completed", gin.H{
		"recipients": len(customers),
		"reached":    sent,
		"failures":   failures,
	})
}
