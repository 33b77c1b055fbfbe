package cron

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"servana/config"
	bookingRepo "servana/database/repository/booking"
	promoRepo "servana/database/repository/promo"
	"servana/services/booking"
	"servana/utils"

	"firebase.google.com/go/v4/messaging"
	"github.com/hibiken/asynq"
)

// InitWorker runs the async worker in background.
func InitWorker(bookings bookingRepo.BookingRepository, promos promoRepo.PromoRepository) {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisTaskQueueDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeBookingExpire, handleExpireTask(bookings))
	mux.HandleFunc(TypeCampaignSend, handleCampaignTask(promos))

	go func() {
		log.Println("[Worker] Starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[Worker] Attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[Worker] Max retry attempts reached. Exiting.")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second)
			} else {
				break
			}
		}
	}()
}

// handleExpireTask persists a derived expiry. A booking that already moved on
// is not an error; a store failure is logged and not retried beyond asynq's
// own policy.
func handleExpireTask(bookings bookingRepo.BookingRepository) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p ExpirePayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			log.Printf("[ExpiryHandler] invalid payload: %v", err)
			return err
		}

		if err := booking.PersistExpiry(bookings, p.CompanyID, p.BookingID, p.FromStatus, utils.GetLogger()); err != nil {
			log.Printf("[ExpiryHandler] failed to persist expiry for booking %s: %v", p.BookingID, err)
			return err
		}
		return nil
	}
}

// handleCampaignTask fans a stored push campaign out to its FCM topic.
func handleCampaignTask(promos promoRepo.PromoRepository) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p CampaignPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			log.Printf("[CampaignHandler] invalid payload: %v", err)
			return err
		}

		campaign, err := promos.GetCampaignByID(p.CampaignID)
		if err != nil {
			log.Printf("[CampaignHandler] failed to load campaign %s: %v", p.CampaignID, err)
			return err
		}

		msg := &messaging.Message{
			Topic: campaign.Topic,
			Notification: &messaging.Notification{
				Title: campaign.Title,
				Body:  campaign.Body,
			},
		}
		if _, err := utils.FCMClient.Send(ctx, msg); err != nil {
			log.Printf("[CampaignHandler] failed to send campaign %s: %v", p.CampaignID, err)
			if setErr := promos.SetCampaignStatus(p.CampaignID, "failed", nil); setErr != nil {
				log.Printf("[CampaignHandler] failed to mark campaign %s failed: %v", p.CampaignID, setErr)
			}
			return err
		}

		now := time.Now()
		if err := promos.SetCampaignStatus(p.CampaignID, "sent", &now); err != nil {
			log.Printf("[CampaignHandler] failed to mark campaign %s sent: %v", p.CampaignID, err)
		}
		return nil
	}
}
