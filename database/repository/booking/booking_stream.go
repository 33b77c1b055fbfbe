package bookingRepo

import (
	"context"
	"fmt"

	"servana/models"
	"servana/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// WatchInserts opens a change stream over newly inserted bookings scoped to a
// single company. Events arrive in whatever order the server delivers them;
// consumers key their handling on booking id, not arrival order.
func (r *MongoBookingRepo) WatchInserts(ctx context.Context, companyID string) (<-chan models.Booking, func(), error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.D{
			{Key: "operationType", Value: "insert"},
			{Key: "fullDocument.company_id", Value: companyID},
		}}},
	}

	streamCtx, cancel := context.WithCancel(ctx)
	opts := options.ChangeStream().SetFullDocument(options.UpdateLookup)
	stream, err := r.coll.Watch(streamCtx, pipeline, opts)
	if err != nil {
		cancel()
		return nil, nil, fmt.Errorf("failed to open booking change stream for company %s: %w", companyID, err)
	}

	events := make(chan models.Booking)
	go func() {
		defer close(events)
		defer stream.Close(streamCtx)

		for stream.Next(streamCtx) {
			var change struct {
				FullDocument models.Booking `bson:"fullDocument"`
			}
			if err := stream.Decode(&change); err != nil {
				utils.GetLogger().Error("failed to decode booking change event",
					zap.String("companyId", companyID), zap.Error(err))
				continue
			}
			select {
			case events <- change.FullDocument:
			case <-streamCtx.Done():
				return
			}
		}
		if err := stream.Err(); err != nil && streamCtx.Err() == nil {
			utils.GetLogger().Error("booking change stream terminated",
				zap.String("companyId", companyID), zap.Error(err))
		}
	}()

	return events, cancel, nil
}
