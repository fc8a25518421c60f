// Package services – MessageService
//
// This file implements MessageService, the application-level component that
// owns the lifecycle of board messages. It validates inputs, delegates
// persistence to the file-backed store, and classifies failures into the
// service error taxonomy so the HTTP layer can map them to status codes.
package services

import (
	"strings"
	"time"

	"github.com/boardkit/go-board-backend/internal/domain"
	"github.com/boardkit/go-board-backend/internal/store"
)

// MessageService coordinates validation and persistence of board messages.
type MessageService struct {
	Store *store.Store
}

// NewMessageService constructs a MessageService on top of st.
func NewMessageService(st *store.Store) *MessageService {
	return &MessageService{Store: st}
}

// List returns the current collection in persisted (append) order. Reads are
// fail-soft: storage problems yield an empty collection, never an error.
func (s *MessageService) List() []domain.Message {
	return s.Store.Load()
}

// Create validates and stores a new message. The text is trimmed before
// validation and stored trimmed. Returns ErrEmptyText for blank input and a
// StorageError when the write fails.
func (s *MessageService) Create(text string) (domain.Message, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return domain.Message{}, ErrEmptyText
	}
	msg, err := s.Store.Append(text)
	if err != nil {
		return domain.Message{}, &StorageError{Op: "append", Err: err}
	}
	return msg, nil
}

// Delete removes the message with the given id. A missing id is reported as
// ErrMessageNotFound, distinct from a write failure.
func (s *MessageService) Delete(id string) error {
	removed, err := s.Store.DeleteByID(id)
	if err != nil {
		return &StorageError{Op: "delete", Err: err}
	}
	if !removed {
		return ErrMessageNotFound
	}
	return nil
}

// Clear unconditionally empties the board. Clearing an already-empty board
// succeeds.
func (s *MessageService) Clear() error {
	if err := s.Store.DeleteAll(); err != nil {
		return &StorageError{Op: "clear", Err: err}
	}
	return nil
}

// DeleteOlderThan removes messages created before now minus the given
// window and returns the number removed. Hours must be a positive number;
// zero and negatives are rejected with ErrInvalidHours (zero matches the
// original input check, see DESIGN.md).
func (s *MessageService) DeleteOlderThan(hours float64) (int, error) {
	if hours <= 0 {
		return 0, ErrInvalidHours
	}
	cutoff := time.Now().UTC().Add(-durationFromHours(hours))
	removed, err := s.Store.DeleteOlderThan(cutoff)
	if err != nil {
		return 0, &StorageError{Op: "delete-older-than", Err: err}
	}
	return removed, nil
}

// durationFromHours converts a fractional hour count to a time.Duration.
func durationFromHours(hours float64) time.Duration {
	return time.Duration(hours * float64(time.Hour))
}
