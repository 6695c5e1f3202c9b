package notifications

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestBuilderDefaults(t *testing.T) {
	n := NewNotificationBuilder().
		WithType(NotificationTypeBookingConfirmed).
		WithRecipient("guest@example.com", "Jordan Reid").
		Build()

	if n.ID == uuid.Nil {
		t.Error("expected generated ID")
	}
	if n.Status != NotificationStatusPending {
		t.Errorf("status = %s, want %s", n.Status, NotificationStatusPending)
	}
	if n.MaxRetries != 3 {
		t.Errorf("max retries = %d, want 3", n.MaxRetries)
	}
	if n.RecipientID != nil {
		t.Error("guest notification should have no recipient ID")
	}
	if n.GetPartitionKey() != "guest@example.com" {
		t.Errorf("partition key = %q, want recipient email", n.GetPartitionKey())
	}
}

func TestDefaultPriorityByType(t *testing.T) {
	cases := []struct {
		notType NotificationType
		want    NotificationPriority
	}{
		{NotificationTypeWaitlistSpotAvailable, NotificationPriorityHigh},
		{NotificationTypeSlotCancelled, NotificationPriorityCritical},
		{NotificationTypeBookingConfirmed, NotificationPriorityMedium},
		{NotificationTypeBookingCancelled, NotificationPriorityMedium},
	}
	for _, tc := range cases {
		if got := GetDefaultPriority(tc.notType); got != tc.want {
			t.Errorf("priority(%s) = %s, want %s", tc.notType, got, tc.want)
		}
	}
}

func TestExpiration(t *testing.T) {
	past := time.Now().Add(-time.Minute)
	future := time.Now().Add(time.Hour)

	expired := NewNotificationBuilder().
		WithType(NotificationTypeWaitlistSpotAvailable).
		WithExpiration(&past).
		Build()
	if !expired.IsExpired() {
		t.Error("notification past its expiry should report expired")
	}

	live := NewNotificationBuilder().
		WithType(NotificationTypeWaitlistSpotAvailable).
		WithExpiration(&future).
		Build()
	if live.IsExpired() {
		t.Error("notification before its expiry should not report expired")
	}

	open := NewNotificationBuilder().WithType(NotificationTypeBookingConfirmed).Build()
	if open.IsExpired() {
		t.Error("notification without expiry should never expire")
	}
}

func TestRetryLifecycle(t *testing.T) {
	n := NewNotificationBuilder().
		WithType(NotificationTypeBookingConfirmed).
		WithRecipient("guest@example.com", "Jordan Reid").
		Build()

	n.MarkFailed(errors.New("smtp unavailable"))
	if n.Status != NotificationStatusFailed {
		t.Fatalf("status = %s, want %s", n.Status, NotificationStatusFailed)
	}
	if n.LastError == nil || *n.LastError != "smtp unavailable" {
		t.Error("expected last error to be recorded")
	}
	if !n.ShouldRetry() {
		t.Fatal("first failure should be retryable")
	}

	for i := 0; i < n.MaxRetries; i++ {
		n.IncrementRetry()
		n.Status = NotificationStatusFailed
	}
	if n.ShouldRetry() {
		t.Error("retries past the limit should not be retryable")
	}

	n.MarkSent()
	if n.Status != NotificationStatusSent || n.SentAt == nil {
		t.Error("MarkSent should set status and timestamp")
	}
}
