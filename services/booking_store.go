package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"findyourseat/models"
	"findyourseat/utils"
)

// BookingStore keeps the most recent confirmed booking in a single slot so
// the confirmation, payment and ticket views survive a restart.
type BookingStore struct {
	store utils.Store
}

func NewBookingStore(store utils.Store) *BookingStore {
	return &BookingStore{store: store}
}

// Save overwrites the slot.
func (b *BookingStore) Save(ctx context.Context, rec models.BookingRecord) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("BookingStore.Save: json.Marshal: %w", err)
	}
	if err := b.store.Set(ctx, KeyBookingDetails, string(data)); err != nil {
		return fmt.Errorf("BookingStore.Save: %w", err)
	}
	return nil
}

// Load returns ErrNoBooking when the slot is empty or unreadable.
func (b *BookingStore) Load(ctx context.Context) (*models.BookingRecord, error) {
	raw, err := b.store.Get(ctx, KeyBookingDetails)
	if errors.Is(err, utils.ErrKeyNotFound) {
		return nil, ErrNoBooking
	}
	if err != nil {
		return nil, fmt.Errorf("BookingStore.Load: %w", err)
	}

	var rec models.BookingRecord
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		return nil, fmt.Errorf("BookingStore.Load: %w: %v", ErrNoBooking, err)
	}
	return &rec, nil
}

// Resolve prefers a record handed over directly by the previous view and
// persists it; otherwise it falls back to the stored one.
func (b *BookingStore) Resolve(ctx context.Context, explicit *models.BookingRecord) (*models.BookingRecord, error) {
	if explicit != nil {
		if err := b.Save(ctx, *explicit); err != nil {
			return nil, err
		}
		return explicit, nil
	}
	return b.Load(ctx)
}

func (b *BookingStore) Clear(ctx context.Context) error {
	return b.store.Delete(ctx, KeyBookingDetails)
}
