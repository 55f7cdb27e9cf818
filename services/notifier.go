package services

import (
	"context"
	"fmt"
	"log/slog"

	pubnub "github.com/pubnub/go/v7"
)

const (
	EventBookingConfirmed = "booking_confirmed"
	EventPaymentCompleted = "payment_completed"
)

// Notification is published to the user's channel after a booking or payment.
type Notification struct {
	Type      string   `json:"type"`
	BookingID string   `json:"booking_id"`
	Seats     []string `json:"seats,omitempty"`
	Amount    string   `json:"amount,omitempty"`
	Reference string   `json:"reference,omitempty"`
}

// Notifier fans booking events out to other devices of the same user.
type Notifier interface {
	Notify(ctx context.Context, userID string, n Notification) error
}

// NopNotifier drops every notification. Used when PubNub is not configured.
type NopNotifier struct{}

func (NopNotifier) Notify(context.Context, string, Notification) error { return nil }

// publisher is the slice of the PubNub client the notifier uses.
type publisher interface {
	Publish(channel string, message any) (statusCode int, err error)
}

type pubnubPublisher struct {
	pn *pubnub.PubNub
}

func (p pubnubPublisher) Publish(channel string, message any) (int, error) {
	_, status, err := p.pn.Publish().
		Channel(channel).
		Message(message).
		Execute()
	return status.StatusCode, err
}

type PubNubNotifier struct {
	pub    publisher
	logger *slog.Logger
}

func NewPubNubNotifier(publishKey, subscribeKey, secretKey, userID string, logger *slog.Logger) *PubNubNotifier {
	pnCfg := pubnub.NewConfigWithUserId(pubnub.UserId(userID))
	pnCfg.PublishKey = publishKey
	pnCfg.SubscribeKey = subscribeKey
	pnCfg.SecretKey = secretKey

	return newPubNubNotifier(pubnubPublisher{pn: pubnub.NewPubNub(pnCfg)}, logger)
}

func newPubNubNotifier(pub publisher, logger *slog.Logger) *PubNubNotifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &PubNubNotifier{pub: pub, logger: logger}
}

// UserChannel is the channel every client of userID listens on.
func UserChannel(userID string) string {
	return fmt.Sprintf("user-%s", userID)
}

func (n *PubNubNotifier) Notify(ctx context.Context, userID string, msg Notification) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	channel := UserChannel(userID)
	statusCode, err := n.pub.Publish(channel, msg)
	if err != nil {
		return fmt.Errorf("Notify: publish %s: %w", channel, err)
	}

	n.logger.Debug("notification published", "channel", channel, "type", msg.Type, "status", statusCode)
	return nil
}
