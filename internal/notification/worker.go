package notification

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/SherClockHolmes/webpush-go"
	"gorm.io/gorm"

	"retailmedia-backend/internal/model"
)

// Sender defines the interface for sending a web push notification.
type Sender interface {
	Send(payload []byte, sub *webpush.Subscription, options *webpush.Options) (*http.Response, error)
}

// WebPushSender is the real Sender backed by the webpush library.
type WebPushSender struct{}

// Send sends a notification using the webpush library.
func (s *WebPushSender) Send(payload []byte, sub *webpush.Subscription, options *webpush.Options) (*http.Response, error) {
	return webpush.SendNotification(payload, sub, options)
}

// WorkerPool fans space-release events out to the watchers subscribed to
// those spaces. A cancellation frees every space it covered; each freed space
// ID is dispatched as one job.
type WorkerPool struct {
	size    int
	jobs    chan string
	db      *gorm.DB
	webpush *webpush.Options
	sender  Sender
}

// NewWorkerPool creates a new worker pool.
func NewWorkerPool(size int, db *gorm.DB, webpushOptions *webpush.Options) *WorkerPool {
	return &WorkerPool{
		size:    size,
		jobs:    make(chan string, size),
		db:      db,
		webpush: webpushOptions,
		sender:  &WebPushSender{},
	}
}

// Start launches the worker goroutines.
func (wp *WorkerPool) Start(ctx context.Context) {
	for i := 0; i < wp.size; i++ {
		go wp.worker(ctx, i)
	}
}

func (wp *WorkerPool) worker(ctx context.Context, id int) {
	log.Printf("Notification worker %d started", id)
	for {
		select {
		case spaceID := <-wp.jobs:
			wp.notifyWatchers(ctx, spaceID)
		case <-ctx.Done():
			log.Printf("Notification worker %d shutting down", id)
			return
		}
	}
}

// Dispatch queues a freed space for watcher notification.
func (wp *WorkerPool) Dispatch(spaceID string) {
	wp.jobs <- spaceID
}

// Jobs returns the jobs channel for testing.
func (wp *WorkerPool) Jobs() chan string {
	return wp.jobs
}

// notifyWatchers fetches the subscriptions watching a space and pushes an
// availability notice to each.
func (wp *WorkerPool) notifyWatchers(ctx context.Context, spaceID string) {
	var subscriptions []model.PushSubscription
	err := wp.db.WithContext(ctx).
		Joins("JOIN subscription_space_mapping ssm ON ssm.push_subscription_endpoint = push_subscriptions.endpoint").
		Where("ssm.space_id = ?", spaceID).
		Find(&subscriptions).Error
	if err != nil {
		log.Printf("Error fetching subscriptions for space %s: %v", spaceID, err)
		return
	}
	if len(subscriptions) == 0 {
		return
	}

	spaceLabel := spaceID
	var space model.Space
	if err := wp.db.WithContext(ctx).
		Select("name").
		First(&space, "id = ?", spaceID).Error; err != nil {
		log.Printf("Error fetching space %s: %v", spaceID, err)
	} else if space.Name != "" {
		spaceLabel = space.Name
	}

	log.Printf("Sending %d notifications for space %s", len(subscriptions), spaceID)
	message := fmt.Sprintf("O espaço %s está disponível novamente!", spaceLabel)
	for _, sub := range subscriptions {
		wp.push(ctx, sub, []byte(message))
	}
}

// push sends a single web push notification, cleaning up expired endpoints.
func (wp *WorkerPool) push(ctx context.Context, sub model.PushSubscription, payload []byte) {
	wpSub := &webpush.Subscription{
		Endpoint: sub.Endpoint,
		Keys: webpush.Keys{
			P256dh: sub.P256DH,
			Auth:   sub.Auth,
		},
	}

	resp, err := wp.sender.Send(payload, wpSub, wp.webpush)
	if err != nil {
		log.Printf("Error sending notification to %s: %v", sub.Endpoint, err)
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusGone {
		log.Printf("Subscription for endpoint %s is expired. Deleting.", sub.Endpoint)
		if err := wp.db.WithContext(ctx).Delete(&sub).Error; err != nil {
			log.Printf("Failed to delete expired subscription %s: %v", sub.Endpoint, err)
		}
	}
}
