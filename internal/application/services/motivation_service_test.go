package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/housekeep/core/internal/domain/entities"
	"github.com/housekeep/core/internal/infrastructure/clock"
	"github.com/housekeep/core/internal/infrastructure/logger"
	"github.com/housekeep/core/internal/ports"
)

func ownedTaskRepo() *mockTaskRepo {
	return &mockTaskRepo{
		GetByIDFunc: func(ctx context.Context, id, userID uuid.UUID) (*entities.Task, error) {
			if userID != testUser {
				return nil, entities.ErrTaskNotFound
			}
			return storedTask(testNow), nil
		},
	}
}

func TestMotivationService_Generate(t *testing.T) {
	var prompt ports.MessagePrompt
	var stored *entities.MotivationalMessage

	gen := &mockGenerator{GenerateFunc: func(ctx context.Context, p ports.MessagePrompt) (string, error) {
		prompt = p
		return "  " + strings.Repeat("ź", 40) + "  ", nil
	}}
	messages := &mockMessageRepo{CreateFunc: func(ctx context.Context, m *entities.MotivationalMessage) error {
		stored = m
		return nil
	}}
	cache := newMemoryCache()
	svc := NewMotivationService(ownedTaskRepo(), messages, gen, cache, clock.NewFixed(testNow), MotivationOptions{RateLimit: 10, RateWindow: time.Hour, LatestTTL: time.Minute}, logger.NewNop())

	taskID := uuid.New()
	msg, err := svc.Generate(context.Background(), testUser, taskID, ports.GenerateMessageRequest{
		TaskName: "Wipe counters", Tone: entities.TonePlayful, MaxLength: 25,
	})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	if prompt.MaxLength != 25 || prompt.Tone != entities.TonePlayful || prompt.TaskName != "Wipe counters" {
		t.Errorf("prompt = %+v", prompt)
	}
	if n := utf8.RuneCountInString(msg.MessageText); n != 25 {
		t.Errorf("message has %d runes, want 25", n)
	}
	if stored == nil || stored.TaskID != taskID || !stored.GeneratedAt.Equal(testNow) {
		t.Errorf("stored = %+v", stored)
	}

	latest, err := svc.Latest(context.Background(), testUser, taskID)
	if err != nil {
		t.Fatalf("Latest() error = %v", err)
	}
	if latest.ID != msg.ID {
		t.Errorf("Latest() = %s, want cached %s", latest.ID, msg.ID)
	}
}

func TestMotivationService_DefaultLength(t *testing.T) {
	var prompt ports.MessagePrompt
	gen := &mockGenerator{GenerateFunc: func(ctx context.Context, p ports.MessagePrompt) (string, error) {
		prompt = p
		return "Go!", nil
	}}
	svc := NewMotivationService(ownedTaskRepo(), &mockMessageRepo{}, gen, nil, clock.NewFixed(testNow), MotivationOptions{}, logger.NewNop())

	if _, err := svc.Generate(context.Background(), testUser, uuid.New(), ports.GenerateMessageRequest{TaskName: "Dust", Tone: entities.ToneNeutral}); err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if prompt.MaxLength != DefaultMessageLength {
		t.Errorf("MaxLength = %d, want %d", prompt.MaxLength, DefaultMessageLength)
	}
}

func TestMotivationService_Errors(t *testing.T) {
	failing := &mockGenerator{GenerateFunc: func(ctx context.Context, p ports.MessagePrompt) (string, error) {
		return "", errors.New("upstream 503")
	}}
	ok := &mockGenerator{GenerateFunc: func(ctx context.Context, p ports.MessagePrompt) (string, error) {
		return "Keep going", nil
	}}
	req := ports.GenerateMessageRequest{TaskName: "Dust", Tone: entities.ToneEncouraging}

	t.Run("Given a foreign task When generating Then task not found", func(t *testing.T) {
		svc := NewMotivationService(ownedTaskRepo(), &mockMessageRepo{}, ok, nil, clock.NewFixed(testNow), MotivationOptions{}, logger.NewNop())
		_, err := svc.Generate(context.Background(), uuid.New(), uuid.New(), req)
		if !errors.Is(err, entities.ErrTaskNotFound) {
			t.Fatalf("error = %v, want ErrTaskNotFound", err)
		}
	})

	t.Run("Given a failing generator When generating Then generator unavailable", func(t *testing.T) {
		svc := NewMotivationService(ownedTaskRepo(), &mockMessageRepo{}, failing, nil, clock.NewFixed(testNow), MotivationOptions{}, logger.NewNop())
		_, err := svc.Generate(context.Background(), testUser, uuid.New(), req)
		if !errors.Is(err, entities.ErrGeneratorUnavailable) {
			t.Fatalf("error = %v, want ErrGeneratorUnavailable", err)
		}
	})

	t.Run("Given the rate limit is used up When generating Then rate limited", func(t *testing.T) {
		svc := NewMotivationService(ownedTaskRepo(), &mockMessageRepo{}, ok, newMemoryCache(), clock.NewFixed(testNow), MotivationOptions{RateLimit: 2, RateWindow: time.Hour}, logger.NewNop())
		for i := 0; i < 2; i++ {
			if _, err := svc.Generate(context.Background(), testUser, uuid.New(), req); err != nil {
				t.Fatalf("call %d error = %v", i+1, err)
			}
		}
		_, err := svc.Generate(context.Background(), testUser, uuid.New(), req)
		if !errors.Is(err, entities.ErrRateLimited) {
			t.Fatalf("error = %v, want ErrRateLimited", err)
		}
	})

	t.Run("Given no messages When reading latest Then message not found", func(t *testing.T) {
		svc := NewMotivationService(ownedTaskRepo(), &mockMessageRepo{}, ok, newMemoryCache(), clock.NewFixed(testNow), MotivationOptions{}, logger.NewNop())
		_, err := svc.Latest(context.Background(), testUser, uuid.New())
		if !errors.Is(err, entities.ErrMessageNotFound) {
			t.Fatalf("error = %v, want ErrMessageNotFound", err)
		}
	})
}
