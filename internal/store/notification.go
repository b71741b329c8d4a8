package store

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"hostel-backend/internal/model"
)

// SendBroadcast creates a single broadcast row. A nil targetRole means
// every role sees it; delivery to individual readers is resolved at read
// time, not fan-out time.
func (s *gormStore) SendBroadcast(ctx context.Context, targetRole *string, title, message string) (*model.Notification, error) {
	if targetRole != nil && !model.ValidRole(*targetRole) {
		return nil, ErrInvalidRole
	}
	n := model.Notification{Title: title, Message: message, TargetRole: targetRole}
	if err := s.db.WithContext(ctx).Create(&n).Error; err != nil {
		return nil, err
	}
	return &n, nil
}

// SendIndividual creates one notification row per distinct recipient.
// Row creation is the durable fact; push delivery happens elsewhere and
// is best effort.
func (s *gormStore) SendIndividual(ctx context.Context, userIDs []uint, title, message string) ([]model.Notification, error) {
	seen := make(map[uint]struct{}, len(userIDs))
	var created []model.Notification
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, uid := range userIDs {
			if _, dup := seen[uid]; dup {
				continue
			}
			seen[uid] = struct{}{}
			id := uid
			n := model.Notification{Title: title, Message: message, UserID: &id}
			if err := tx.Create(&n).Error; err != nil {
				return err
			}
			created = append(created, n)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// visibleTo scopes a notification query to what one reader may see: their
// own individual notices plus broadcasts for their role (or for all).
func visibleTo(q *gorm.DB, userID uint, role string) *gorm.DB {
	return q.Where(
		"user_id = ? OR (user_id IS NULL AND (target_role IS NULL OR target_role = ?))",
		userID, role,
	)
}

func (s *gormStore) ListMyNotifications(ctx context.Context, userID uint, role string, unreadOnly bool, pp PageParams) (Page[NotificationView], error) {
	pp = pp.Normalize()
	q := s.db.WithContext(ctx).Model(&model.Notification{})
	if unreadOnly {
		// Unread means: own notice with read=false, or a broadcast with
		// no read marker for this reader.
		markers := s.db.Model(&model.NotificationRead{}).
			Select("notification_id").
			Where("user_id = ?", userID)
		q = q.Where(
			"(user_id = ? AND read = ?) OR (user_id IS NULL AND (target_role IS NULL OR target_role = ?) AND id NOT IN (?))",
			userID, false, role, markers,
		)
	} else {
		q = visibleTo(q, userID, role)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return Page[NotificationView]{}, err
	}

	var notices []model.Notification
	if err := q.Order(listOrder).Offset(pp.offset()).Limit(pp.Limit).Find(&notices).Error; err != nil {
		return Page[NotificationView]{}, err
	}

	// Resolve broadcast read state through the marker table for the rows
	// actually on this page.
	var broadcastIDs []uint
	for _, n := range notices {
		if n.Broadcast() {
			broadcastIDs = append(broadcastIDs, n.ID)
		}
	}
	readMarkers := make(map[uint]struct{}, len(broadcastIDs))
	if len(broadcastIDs) > 0 {
		var rows []model.NotificationRead
		if err := s.db.WithContext(ctx).
			Where("user_id = ? AND notification_id IN ?", userID, broadcastIDs).
			Find(&rows).Error; err != nil {
			return Page[NotificationView]{}, err
		}
		for _, r := range rows {
			readMarkers[r.NotificationID] = struct{}{}
		}
	}

	items := make([]NotificationView, len(notices))
	for i, n := range notices {
		read := n.Read
		if n.Broadcast() {
			_, read = readMarkers[n.ID]
		}
		items[i] = NotificationView{
			ID:        n.ID,
			Title:     n.Title,
			Message:   n.Message,
			Read:      read,
			CreatedAt: n.CreatedAt,
		}
	}
	return Page[NotificationView]{Items: items, Total: total, Page: pp.Page, Limit: pp.Limit}, nil
}

// MarkRead flags an individual notice as read, or records a read marker
// for a broadcast. Re-marking is a no-op either way.
func (s *gormStore) MarkRead(ctx context.Context, id, userID uint) error {
	var n model.Notification
	if err := s.db.WithContext(ctx).First(&n, id).Error; err != nil {
		return notFound(err)
	}
	if !n.Broadcast() {
		if *n.UserID != userID {
			return ErrForbidden
		}
		return s.db.WithContext(ctx).Model(&n).Update("read", true).Error
	}
	marker := model.NotificationRead{UserID: userID, NotificationID: id}
	if err := s.db.WithContext(ctx).Create(&marker).Error; err != nil {
		if isDuplicate(err) {
			return nil
		}
		return err
	}
	return nil
}

// UpsertSubscription registers or refreshes a browser push subscription.
func (s *gormStore) UpsertSubscription(ctx context.Context, sub *model.PushSubscription) error {
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "endpoint"}},
		DoUpdates: clause.AssignmentColumns([]string{"user_id", "p256dh", "auth"}),
	}).Create(sub).Error
}

// DeleteSubscription removes a subscription, but only for its owner.
func (s *gormStore) DeleteSubscription(ctx context.Context, endpoint string, userID uint) error {
	return s.db.WithContext(ctx).
		Where("endpoint = ? AND user_id = ?", endpoint, userID).
		Delete(&model.PushSubscription{}).Error
}

func (s *gormStore) SubscriptionsForUser(ctx context.Context, userID uint) ([]model.PushSubscription, error) {
	var subs []model.PushSubscription
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).Find(&subs).Error; err != nil {
		return nil, err
	}
	return subs, nil
}

// RemoveSubscriptionEndpoint prunes a subscription regardless of owner.
// Used when the push service reports it gone.
func (s *gormStore) RemoveSubscriptionEndpoint(ctx context.Context, endpoint string) error {
	return s.db.WithContext(ctx).
		Where("endpoint = ?", endpoint).
		Delete(&model.PushSubscription{}).Error
}
