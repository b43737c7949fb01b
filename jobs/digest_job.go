package jobs

import (
	"fmt"
	"log"
	"time"

	"github.com/sandunipw/school_manager/database"
	"github.com/sandunipw/school_manager/models"
	"github.com/sandunipw/school_manager/notifications"
)

// SendUnreadDigests emails users who accumulated unread messages over the
// past day that have still not been opened.
func SendUnreadDigests() {
	log.Println("Running job: SendUnreadDigests...")

	cutoff := time.Now().Add(-24 * time.Hour)

	type digestRow struct {
		ReceiverID string
		Total      int64
	}
	var rows []digestRow
	err := database.DB.Model(&models.Message{}).
		Select("receiver_id, count(*) as total").
		Where("read_at IS NULL AND created_at < ?", cutoff).
		Group("receiver_id").
		Scan(&rows).Error
	if err != nil {
		log.Printf("Error collecting unread digests: %v", err)
		return
	}

	if len(rows) == 0 {
		return
	}

	for _, row := range rows {
		var user models.User
		if err := database.DB.First(&user, "id = ?", row.ReceiverID).Error; err != nil {
			continue
		}
		if !user.IsActive {
			continue
		}

		emailSubject := "You have unread messages"
		emailBody := fmt.Sprintf(
			"<h1>Unread Messages</h1><p>Hi %s,</p><p>You have %d unread message(s) waiting for you. Log in to catch up with your conversations.</p>",
			user.FullName,
			row.Total,
		)

		go notifications.SendEmail(user.FullName, user.Email, emailSubject, emailBody)
	}

	log.Printf("Sent %d unread digest(s).", len(rows))
}
