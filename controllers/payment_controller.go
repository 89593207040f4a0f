package controllers

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"strconv"

	"github.com/gin-gonic/gin"
	razorpay "github.com/razorpay/razorpay-go"
	"github.com/shopspring/decimal"

	"github.com/Rahul-624/FreshMart/config"
	"github.com/Rahul-624/FreshMart/models"
	"github.com/Rahul-624/FreshMart/utils"
)

// InitiateRazorpayPayment creates a Razorpay order for a placed order
func InitiateRazorpayPayment(c *gin.Context) {
	utils.LogInfo("InitiateRazorpayPayment called")

	var req struct {
		OrderID uint64 `json:"order_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid payment initiation request: %v", err)
		utils.BadRequest(c, "Invalid request. order_id is required", err.Error())
		return
	}

	var order models.Order
	if err := config.DB.Preload("Customer").First(&order, uint(req.OrderID)).Error; err != nil {
		utils.LogError("Order not found for ID: %d", req.OrderID)
		utils.NotFound(c, "Order not found")
		return
	}

	if order.Status != models.OrderStatusPlaced {
		utils.LogError("Payment initiation on order %d in status %s", order.ID, order.Status)
		utils.BadRequest(c, "Payment for this order has already been completed", nil)
		return
	}
	if order.PaymentMethod != "RAZORPAY" {
		utils.BadRequest(c, "Order was not placed for online payment", gin.H{"payment_method": order.PaymentMethod})
		return
	}
	if order.RazorpayOrderID != "" {
		utils.LogError("Payment already initiated for order ID: %d", order.ID)
		utils.BadRequest(c, "A payment is already in progress for this order", nil)
		return
	}

	// Razorpay expects the amount in paise
	amountPaise := order.Total.Mul(decimal.NewFromInt(100)).IntPart()
	utils.LogInfo("Processing payment amount: %d paise for order ID: %d", amountPaise, order.ID)

	client := razorpay.NewClient(os.Getenv("RAZORPAY_KEY"), os.Getenv("RAZORPAY_SECRET"))
	orderData := map[string]interface{}{
		"amount":          amountPaise,
		"currency":        "INR",
		"receipt":         "order_rcptid_" + strconv.FormatUint(uint64(order.ID), 10),
		"payment_capture": 1,
	}
	rzOrder, err := client.Order.Create(orderData, nil)
	if err != nil {
		utils.LogError("Failed to create Razorpay order for order ID: %d: %v", order.ID, err)
		utils.InternalServerError(c, "Failed to create Razorpay order", err.Error())
		return
	}

	if err := config.DB.Model(&order).Update("razorpay_order_id", fmt.Sprintf("%v", rzOrder["id"])).Error; err != nil {
		utils.LogError("Failed to store Razorpay order ID for order %d: %v", order.ID, err)
		utils.InternalServerError(c, "Failed to update order details", err.Error())
		return
	}

	utils.LogInfo("Razorpay order created for order ID: %d", order.ID)
	utils.Success(c, "Payment initiated successfully", gin.H{
		"order": gin.H{
			"id":                order.ID,
			"reference":         order.Reference,
			"razorpay_order_id": rzOrder["id"],
			"amount":            order.Total.StringFixed(2),
			"currency":          "INR",
		},
		"key": os.Getenv("RAZORPAY_KEY"),
	})
}

// VerifyRazorpayPayment checks the payment signature and marks the order paid
func VerifyRazorpayPayment(c *gin.Context) {
	utils.LogInfo("VerifyRazorpayPayment called")

	var req struct {
		RazorpayOrderID   string `json:"razorpay_order_id" binding:"required"`
		RazorpayPaymentID string `json:"razorpay_payment_id" binding:"required"`
		RazorpaySignature string `json:"razorpay_signature" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid payment verification request: %v", err)
		utils.BadRequest(c, "Invalid input", err.Error())
		return
	}

	var order models.Order
	if err := config.DB.Where("razorpay_order_id = ?", req.RazorpayOrderID).First(&order).Error; err != nil {
		utils.LogError("Order not found for Razorpay order ID: %s", req.RazorpayOrderID)
		utils.NotFound(c, "Order not found")
		return
	}

	// Signature is HMAC-SHA256 of "<order_id>|<payment_id>" with the key secret
	payload := req.RazorpayOrderID + "|" + req.RazorpayPaymentID
	mac := hmac.New(sha256.New, []byte(os.Getenv("RAZORPAY_SECRET")))
	mac.Write([]byte(payload))
	expected := hex.EncodeToString(mac.Sum(nil))

	if !hmac.Equal([]byte(expected), []byte(req.RazorpaySignature)) {
		utils.LogError("Payment signature mismatch for order %d", order.ID)
		utils.BadRequest(c, "Payment verification failed", nil)
		return
	}

	if err := config.DB.Model(&order).Update("status", models.OrderStatusPaid).Error; err != nil {
		utils.LogError("Failed to mark order %d as paid: %v", order.ID, err)
		utils.InternalServerError(c, "Failed to update order", err.Error())
		return
	}

	utils.LogInfo("Payment verified for order %d", order.ID)
	utils.Success(c, "Payment verified successfully", gin.H{
		"order_id":  order.ID,
		"reference": order.Reference,
		"status":    models.OrderStatusPaid,
	})
}
