package service_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"github.com/voyago/travelbook/internal/domain"
	"github.com/voyago/travelbook/internal/service"
	"github.com/voyago/travelbook/pkg/events"
)

func TestCreateRecommendation(t *testing.T) {
	users := newMockUserRepo()
	destinations := newMockDestinationRepo()
	notifications := newMockNotificationRepo()
	recs := newMockRecommendationRepo(notifications)
	bus := &mockEventBus{}
	svc := service.NewRecommendationService(recs, destinations, users, bus)

	user := users.add(&domain.User{Username: "alice", Email: "alice@example.com", Role: domain.RoleCustomer})
	partner := users.add(&domain.User{Username: "bob", Email: "bob@example.com", Role: domain.RolePartner})
	destination := destinations.add(&domain.Destination{
		Name:      "Azores Hikes",
		Location:  "Ponta Delgada",
		Price:     decimal.RequireFromString("120.00"),
		PartnerID: partner.ID,
	})

	rec, err := svc.Create(context.Background(), &domain.RecommendationCreate{
		UserID:        user.ID,
		DestinationID: destination.ID,
		Score:         0.87,
		ActivityIDs:   []int64{3, 7},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if rec.Score != 0.87 {
		t.Errorf("score = %v, want 0.87", rec.Score)
	}
	if len(rec.ActivityIDs) != 2 {
		t.Errorf("activity ids = %v, want 2 entries", rec.ActivityIDs)
	}

	if n := notifications.countFor(user.ID); n != 1 {
		t.Fatalf("notifications = %d, want exactly 1", n)
	}
	list, _ := notifications.ListByUser(context.Background(), user.ID, true, 50, 0)
	want := "We recommend Azores Hikes based on your preferences!"
	if list[0].Message != want {
		t.Errorf("message = %q, want %q", list[0].Message, want)
	}

	if bus.count(events.RecommendationCreated) != 1 {
		t.Errorf("recommendation.created published %d times, want 1", bus.count(events.RecommendationCreated))
	}
	if bus.count(events.NotificationCreated) != 1 {
		t.Errorf("notification.created published %d times, want 1", bus.count(events.NotificationCreated))
	}
}

func TestCreateRecommendation_LongDestinationNameCapsNotification(t *testing.T) {
	users := newMockUserRepo()
	destinations := newMockDestinationRepo()
	notifications := newMockNotificationRepo()
	recs := newMockRecommendationRepo(notifications)
	svc := service.NewRecommendationService(recs, destinations, users, &mockEventBus{})

	user := users.add(&domain.User{Username: "alice", Email: "alice@example.com", Role: domain.RoleCustomer})
	destination := destinations.add(&domain.Destination{
		Name:      strings.Repeat("São Tomé ", 40),
		Location:  "São Tomé",
		Price:     decimal.RequireFromString("60.00"),
		PartnerID: user.ID,
	})

	if _, err := svc.Create(context.Background(), &domain.RecommendationCreate{
		UserID:        user.ID,
		DestinationID: destination.ID,
		Score:         0.5,
	}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	list, _ := notifications.ListByUser(context.Background(), user.ID, true, 50, 0)
	msg := list[0].Message
	if got := utf8.RuneCountInString(msg); got > domain.MaxNotificationMessage {
		t.Errorf("notification length = %d runes, want <= %d", got, domain.MaxNotificationMessage)
	}
	if !utf8.ValidString(msg) {
		t.Errorf("notification is invalid UTF-8 (len=%d bytes)", len(msg))
	}
}

func TestCreateRecommendation_UnknownTargets(t *testing.T) {
	users := newMockUserRepo()
	destinations := newMockDestinationRepo()
	notifications := newMockNotificationRepo()
	recs := newMockRecommendationRepo(notifications)
	svc := service.NewRecommendationService(recs, destinations, users, &mockEventBus{})

	if _, err := svc.Create(context.Background(), &domain.RecommendationCreate{UserID: 404, DestinationID: 1}); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("unknown user err = %v, want ErrNotFound", err)
	}

	user := users.add(&domain.User{Username: "alice", Email: "alice@example.com", Role: domain.RoleCustomer})
	if _, err := svc.Create(context.Background(), &domain.RecommendationCreate{UserID: user.ID, DestinationID: 404}); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("unknown destination err = %v, want ErrNotFound", err)
	}
	if len(recs.recommendations) != 0 {
		t.Error("recommendation persisted despite missing target")
	}
}
