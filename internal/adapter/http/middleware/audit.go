package middleware

import (
	"encoding/json"
	"strings"
	"time"

	"fiilar/internal/core/domain"
	"fiilar/internal/core/ports"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// AuditLog creates an audit middleware that logs successful write operations.
// It maps HTTP methods and paths to audit actions.
func AuditLog(auditSvc ports.AuditService) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		// Only audit successful write operations (status 2xx)
		if c.Writer.Status() < 200 || c.Writer.Status() >= 300 {
			return
		}
		if c.Request.Method == "GET" || c.Request.Method == "HEAD" || c.Request.Method == "OPTIONS" {
			return
		}

		action, resourceType := mapPathToAction(c.Request.URL.Path, c.Request.Method)
		if action == "" {
			return
		}

		var userID *uuid.UUID
		if uid, exists := c.Get(CtxUserID); exists {
			if id, ok := uid.(uuid.UUID); ok {
				userID = &id
			}
		}

		details, _ := json.Marshal(map[string]interface{}{
			"method": c.Request.Method,
			"path":   c.Request.URL.Path,
			"status": c.Writer.Status(),
		})

		auditSvc.Log(c.Request.Context(), &domain.AuditLog{
			ID:           uuid.New(),
			UserID:       userID,
			Action:       action,
			ResourceType: resourceType,
			IPAddress:    c.ClientIP(),
			Details:      string(details),
			CreatedAt:    time.Now(),
		})
	}
}

func mapPathToAction(path, method string) (domain.AuditAction, string) {
	switch {
	case path == "/api/v1/auth/register" && method == "POST":
		return domain.AuditActionRegister, "user"
	case path == "/api/v1/auth/login" && method == "POST":
		return domain.AuditActionLogin, "session"
	case path == "/api/v1/wallet/deposit" && method == "POST":
		return domain.AuditActionDeposit, "wallet"
	case path == "/api/v1/wallet/pay" && method == "POST":
		return domain.AuditActionPayment, "wallet"
	case path == "/api/v1/wallet/refund" && method == "POST":
		return domain.AuditActionRefund, "wallet"
	case path == "/api/v1/wallet/withdraw" && method == "POST":
		return domain.AuditActionWithdraw, "wallet"
	case strings.HasPrefix(path, "/api/v1/conversations/") && strings.HasSuffix(path, "/messages") && method == "POST":
		return domain.AuditActionSendMessage, "message"
	case path == "/api/v1/reviews" && method == "POST":
		return domain.AuditActionCreateReview, "review"
	case path == "/api/v1/bookings" && method == "POST":
		return domain.AuditActionCreateBooking, "booking"
	case strings.HasPrefix(path, "/api/v1/bookings/") && strings.HasSuffix(path, "/cancel") && method == "POST":
		return domain.AuditActionCancelBooking, "booking"
	}
	return "", ""
}
