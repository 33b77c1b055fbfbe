package cron

import (
	"encoding/json"
	"fmt"

	"servana/config"

	"github.com/hibiken/asynq"
)

// Task types handled by the background worker.
const (
	TypeBookingExpire = "booking:expire"
	TypeCampaignSend  = "campaign:send"
)

// ExpirePayload asks the worker to persist a lazily derived expiry. The
// company id keeps the write scoped to the booking's owner.
type ExpirePayload struct {
	CompanyID  string `json:"companyId"`
	BookingID  string `json:"bookingId"`
	FromStatus string `json:"fromStatus"`
}

// CampaignPayload asks the worker to fan out a push campaign.
type CampaignPayload struct {
	CampaignID string `json:"campaignId"`
}

// TaskQueue enqueues background tasks. It satisfies the booking service's
// ExpiryEnqueuer interface.
type TaskQueue struct {
	client *asynq.Client
}

// NewTaskQueue creates the asynq client from the application config.
func NewTaskQueue() *TaskQueue {
	client := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisTaskQueueDB,
	})
	return &TaskQueue{client: client}
}

// EnqueueExpiry schedules the best-effort expiry write for one booking.
func (q *TaskQueue) EnqueueExpiry(companyID, bookingID, fromStatus string) error {
	payload, err := json.Marshal(ExpirePayload{CompanyID: companyID, BookingID: bookingID, FromStatus: fromStatus})
	if err != nil {
		return fmt.Errorf("failed to encode expiry payload: %w", err)
	}
	if _, err := q.client.Enqueue(asynq.NewTask(TypeBookingExpire, payload)); err != nil {
		return fmt.Errorf("failed to enqueue expiry task for booking %s: %w", bookingID, err)
	}
	return nil
}

// EnqueueCampaign schedules the fanout of a push campaign.
func (q *TaskQueue) EnqueueCampaign(campaignID string) error {
	payload, err := json.Marshal(CampaignPayload{CampaignID: campaignID})
	if err != nil {
		return fmt.Errorf("failed to encode campaign payload: %w", err)
	}
	if _, err := q.client.Enqueue(asynq.NewTask(TypeCampaignSend, payload)); err != nil {
		return fmt.Errorf("failed to enqueue campaign task %s: %w", campaignID, err)
	}
	return nil
}
