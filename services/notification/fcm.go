package notification

import (
	"context"
	"fmt"

	subjectRepo "github.com/bcart01v/beheardqueue-server/database/repository/subject"
	"github.com/bcart01v/beheardqueue-server/utils"

	"firebase.google.com/go/v4/messaging"
)

// FCMNotificationService is the production implementation: it looks up the
// subject's registered device token and sends a push via FCM.
type FCMNotificationService struct {
	Subjects subjectRepo.SubjectRepository
}

func NewFCMNotificationService(subjects subjectRepo.SubjectRepository) (*FCMNotificationService, error) {
	if subjects == nil {
		return nil, fmt.Errorf("notification service initialization error: subject repository is nil")
	}
	return &FCMNotificationService{Subjects: subjects}, nil
}

func (s *FCMNotificationService) Notify(ctx context.Context, subjectID, message, severity string) error {
	subject, err := s.Subjects.GetByID(ctx, subjectID)
	if err != nil {
		return fmt.Errorf("Notify: could not find subject %s: %w", subjectID, err)
	}
	if subject == nil || subject.FCMToken == "" {
		// No push target registered; nothing to deliver.
		return nil
	}

	msg := &messaging.Message{
		Token: subject.FCMToken,
		Notification: &messaging.Notification{
			Title: "BeHeard Queue",
			Body:  message,
		},
		Data: map[string]string{
			"severity": severity,
		},
	}

	if _, err := utils.FCMClient.Send(ctx, msg); err != nil {
		return fmt.Errorf("Notify: failed to send FCM message: %w", err)
	}
	return nil
}
