package notification

import (
	"context"
	"fmt"

	"servana/utils"

	"firebase.google.com/go/v4/messaging"
)

// FCMPusher delivers dashboard alerts through Firebase Cloud Messaging. Each
// company's dashboard devices subscribe to a per-company topic.
type FCMPusher struct{}

// Push sends a high-priority notification with sound to the company topic.
func (p *FCMPusher) Push(ctx context.Context, companyID, title, body string, data map[string]string) error {
	if utils.FCMClient == nil {
		return fmt.Errorf("FCM client not initialized")
	}

	msg := &messaging.Message{
		Topic: "company_" + companyID,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data: data,
		Android: &messaging.AndroidConfig{
			Priority: "high",
			Notification: &messaging.AndroidNotification{
				ChannelID: "high_priority",
				Sound:     "default",
			},
		},
		APNS: &messaging.APNSConfig{
			Headers: map[string]string{
				"apns-priority":  "10",
				"apns-push-type": "alert",
			},
			Payload: &messaging.APNSPayload{
				Aps: &messaging.Aps{
					Sound: "default",
				},
			},
		},
	}

	if _, err := utils.FCMClient.Send(ctx, msg); err != nil {
		return fmt.Errorf("failed to send FCM message: %w", err)
	}
	return nil
}
