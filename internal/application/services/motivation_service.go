package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/housekeep/core/internal/domain/entities"
	"github.com/housekeep/core/internal/infrastructure/logger"
	"github.com/housekeep/core/internal/ports"
)

// DefaultMessageLength is used when a request does not set max_length
const DefaultMessageLength = 150

// MotivationOptions tunes rate limiting and caching of generated messages
type MotivationOptions struct {
	RateLimit  int
	RateWindow time.Duration
	LatestTTL  time.Duration
}

// MotivationService generates short motivational messages for tasks and
// remembers the latest one per task.
type MotivationService struct {
	taskRepo    ports.TaskRepository
	messageRepo ports.MessageRepository
	generator   ports.TextGenerator
	cache       ports.CacheRepository
	clock       ports.Clock
	opts        MotivationOptions
	logger      *logger.Logger
}

// NewMotivationService wires the service. A nil cache disables both the
// per-user rate limit and the latest-message cache.
func NewMotivationService(taskRepo ports.TaskRepository, messageRepo ports.MessageRepository, generator ports.TextGenerator, cache ports.CacheRepository, clock ports.Clock, opts MotivationOptions, logger *logger.Logger) *MotivationService {
	return &MotivationService{
		taskRepo:    taskRepo,
		messageRepo: messageRepo,
		generator:   generator,
		cache:       cache,
		clock:       clock,
		opts:        opts,
		logger:      logger.WithComponent("motivation"),
	}
}

// Generate writes a new message for the task and stores it
func (s *MotivationService) Generate(ctx context.Context, userID, taskID uuid.UUID, req ports.GenerateMessageRequest) (*entities.MotivationalMessage, error) {
	if _, err := s.taskRepo.GetByID(ctx, taskID, userID); err != nil {
		return nil, fmt.Errorf("generate message: %w", err)
	}

	if err := s.checkRateLimit(ctx, userID); err != nil {
		return nil, err
	}

	maxLength := req.MaxLength
	if maxLength <= 0 {
		maxLength = DefaultMessageLength
	}

	text, err := s.generator.Generate(ctx, ports.MessagePrompt{
		TaskName:  req.TaskName,
		Tone:      req.Tone,
		MaxLength: maxLength,
	})
	if err != nil {
		s.logger.Errorw("Text generation failed", "task_id", taskID, "error", err)
		if errors.Is(err, entities.ErrRateLimited) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", entities.ErrGeneratorUnavailable, err)
	}

	message := &entities.MotivationalMessage{
		ID:          uuid.New(),
		TaskID:      taskID,
		MessageText: truncateRunes(strings.TrimSpace(text), maxLength),
		GeneratedAt: s.clock.Now(),
	}

	if err := s.messageRepo.Create(ctx, message); err != nil {
		return nil, fmt.Errorf("failed to store message: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, latestMessageKey(taskID), message, s.opts.LatestTTL); err != nil {
			s.logger.Warnw("Failed to cache latest message", "task_id", taskID, "error", err)
		}
	}

	s.logger.LogTaskEvent("motivation.generated", userID, taskID, "tone", req.Tone)

	return message, nil
}

// Latest returns the most recent message of the task
func (s *MotivationService) Latest(ctx context.Context, userID, taskID uuid.UUID) (*entities.MotivationalMessage, error) {
	if _, err := s.taskRepo.GetByID(ctx, taskID, userID); err != nil {
		return nil, fmt.Errorf("latest message: %w", err)
	}

	if s.cache != nil {
		var cached entities.MotivationalMessage
		err := s.cache.Get(ctx, latestMessageKey(taskID), &cached)
		if err == nil {
			return &cached, nil
		}
		if !errors.Is(err, ports.ErrCacheMiss) {
			s.logger.Warnw("Latest message cache read failed", "task_id", taskID, "error", err)
		}
	}

	message, err := s.messageRepo.Latest(ctx, taskID)
	if err != nil {
		return nil, fmt.Errorf("latest message: %w", err)
	}
	return message, nil
}

// checkRateLimit counts generations per user in a fixed window. Cache
// failures let the request through.
func (s *MotivationService) checkRateLimit(ctx context.Context, userID uuid.UUID) error {
	if s.cache == nil || s.opts.RateLimit <= 0 {
		return nil
	}

	key := "ratelimit:motivation:" + userID.String()
	count, err := s.cache.Increment(ctx, key)
	if err != nil {
		s.logger.ForUser(userID).Warnw("Rate limit check failed", "error", err)
		return nil
	}
	if count == 1 {
		if err := s.cache.Expire(ctx, key, s.opts.RateWindow); err != nil {
			s.logger.ForUser(userID).Warnw("Failed to set rate limit window", "error", err)
		}
	}
	if count > int64(s.opts.RateLimit) {
		s.logger.LogSecurityEvent("motivation.rate_limited", userID, "", "count", count)
		return entities.ErrRateLimited
	}
	return nil
}

func latestMessageKey(taskID uuid.UUID) string {
	return "motivation:latest:" + taskID.String()
}

func truncateRunes(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	return strings.TrimSpace(string([]rune(s)[:max]))
}
