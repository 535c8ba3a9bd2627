package services

import (
	"fmt"
	"time"

	"backend/models"

	"gorm.io/gorm"
)

// NotificationService turns boundary failures and noteworthy events into
// dismissible user notifications: a DB row, a realtime broadcast, and a
// device push when any device is registered.
type NotificationService struct {
	db *gorm.DB
	rt *RealtimeHub
	ps *PushService
}

func NewNotificationService(db *gorm.DB, rt *RealtimeHub, ps *PushService) *NotificationService {
	return &NotificationService{db: db, rt: rt, ps: ps}
}

// Notify is safe to call anywhere, including before init in tests.
func (s *NotificationService) Notify(userID uint, typ, message string) {
	if s == nil || s.db == nil {
		return // not initialized
	}
	n := &models.Notification{UserID: userID, Type: typ, Message: message, CreatedAt: time.Now()}
	_ = s.db.Create(n).Error

	if s.rt != nil {
		s.rt.Broadcast(userID, map[string]any{
			"kind":         "notification.created",
			"notification": n,
		})
	}
	if s.ps != nil {
		s.ps.PushToUser(userID, "Meal Planner", message, map[string]string{
			"type": typ, "notificationId": fmt.Sprintf("%d", n.ID),
		})
	}
}

func (s *NotificationService) List(userID uint) ([]models.Notification, error) {
	var out []models.Notification
	err := s.db.
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(50).
		Find(&out).Error
	if err != nil {
		return nil, &StorageError{Op: "list notifications", Err: err}
	}
	return out, nil
}

func (s *NotificationService) Dismiss(userID, id uint) error {
	err := s.db.
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&models.Notification{}).Error
	if err != nil {
		return &StorageError{Op: "dismiss notification", Err: err}
	}
	return nil
}
