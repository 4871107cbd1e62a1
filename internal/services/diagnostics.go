package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/miasolution2024/mia-multi-channel-chat-sub002/internal/core"
	"github.com/miasolution2024/mia-multi-channel-chat-sub002/internal/models"
	"github.com/miasolution2024/mia-multi-channel-chat-sub002/internal/store"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	defaultLogBufferSize = 1000
	logBatchSize         = 100
	logFlushInterval     = 1 * time.Second
	logFlushTimeout      = 5 * time.Second
	redacted             = "***REDACTED***"
)

var _ core.DiagnosticsLogger = (*DiagnosticsService)(nil)

// DiagnosticsService writes LogEvent rows. Error records are written
// synchronously so their ID can be handed to the user; info milestones go
// through a buffered channel and are flushed in batches.
type DiagnosticsService struct {
	store    *store.Store
	recorder core.Recorder
	logger   *zap.Logger

	// Async logging channel
	logChan chan *models.LogEvent

	// Batch buffer
	batchBuffer []*models.LogEvent
	batchMutex  sync.Mutex
	batchTicker *time.Ticker

	// Graceful shutdown
	wg           sync.WaitGroup
	shutdownCh   chan struct{}
	shutdownOnce sync.Once
}

// NewDiagnosticsService starts the batch writer
func NewDiagnosticsService(
	s *store.Store,
	bufferSize int,
	recorder core.Recorder,
	logger *zap.Logger,
) *DiagnosticsService {
	if bufferSize <= 0 {
		bufferSize = defaultLogBufferSize
	}

	service := &DiagnosticsService{
		store:       s,
		recorder:    recorder,
		logger:      logger.Named("diagnostics"),
		logChan:     make(chan *models.LogEvent, bufferSize),
		batchBuffer: make([]*models.LogEvent, 0, logBatchSize),
		batchTicker: time.NewTicker(logFlushInterval),
		shutdownCh:  make(chan struct{}),
	}

	service.wg.Add(1)
	go service.worker()
	service.logger.Info("diagnostics logger started", zap.Int("buffer_size", bufferSize))

	return service
}

// worker is the background goroutine that batches info records
func (s *DiagnosticsService) worker() {
	defer s.wg.Done()

	for {
		select {
		case event := <-s.logChan:
			s.addToBatch(event)

		case <-s.batchTicker.C:
			s.flushBatch()

		case <-s.shutdownCh:
			// drain what is already queued, then flush
			for {
				select {
				case event := <-s.logChan:
					s.addToBatch(event)
				default:
					s.flushBatch()
					return
				}
			}
		}
	}
}

func (s *DiagnosticsService) addToBatch(event *models.LogEvent) {
	s.batchMutex.Lock()
	defer s.batchMutex.Unlock()

	s.batchBuffer = append(s.batchBuffer, event)
	if len(s.batchBuffer) >= logBatchSize {
		s.flushBatchUnsafe()
	}
}

func (s *DiagnosticsService) flushBatch() {
	s.batchMutex.Lock()
	defer s.batchMutex.Unlock()
	s.flushBatchUnsafe()
}

// flushBatchUnsafe writes the buffer; the caller holds batchMutex
func (s *DiagnosticsService) flushBatchUnsafe() {
	if len(s.batchBuffer) == 0 {
		return
	}

	toWrite := make([]*models.LogEvent, len(s.batchBuffer))
	copy(toWrite, s.batchBuffer)
	s.batchBuffer = s.batchBuffer[:0]

	ctx, cancel := context.WithTimeout(context.Background(), logFlushTimeout)
	defer cancel()
	if err := s.store.CreateLogEventBatch(ctx, toWrite); err != nil {
		s.recorder.RecordDatabaseQueryError("create_log_event_batch")
		s.logger.Error("failed to write diagnostics batch",
			zap.Int("count", len(toWrite)), zap.Error(err))
	}
}

// LogError persists one error record and returns its ID. The write finishes
// before LogError returns.
func (s *DiagnosticsService) LogError(ctx context.Context, entry core.LogEntry) (string, error) {
	event := s.buildEvent(models.LogLevelError, entry)

	s.logger.Error(event.Message,
		zap.String("log_id", event.ID),
		zap.String("context", event.Context),
		zap.String("kind", event.Kind),
		zap.String("stage", event.Stage),
		zap.String("provider", event.Provider),
		zap.Error(entry.Err),
	)

	if err := s.store.CreateLogEvent(ctx, event); err != nil {
		s.recorder.RecordDatabaseQueryError("create_log_event")
		return "", fmt.Errorf("failed to write error record: %w", err)
	}
	return event.ID, nil
}

// LogInfo queues one milestone record. It never blocks: a full buffer drops
// the record.
func (s *DiagnosticsService) LogInfo(_ context.Context, entry core.LogEntry) {
	event := s.buildEvent(models.LogLevelInfo, entry)

	s.logger.Info(event.Message,
		zap.String("context", event.Context),
		zap.String("stage", event.Stage),
		zap.String("provider", event.Provider),
	)

	select {
	case <-s.shutdownCh:
		s.recorder.RecordDiagnosticsDropped()
		return
	default:
	}

	select {
	case s.logChan <- event:
	default:
		s.recorder.RecordDiagnosticsDropped()
		s.logger.Warn("diagnostics buffer full, dropping record",
			zap.String("context", event.Context), zap.String("message", event.Message))
	}
}

func (s *DiagnosticsService) buildEvent(level models.LogLevel, entry core.LogEntry) *models.LogEvent {
	message := entry.Message
	if message == "" && entry.Err != nil {
		message = entry.Err.Error()
	}
	detail := entry.Detail
	if detail == "" && entry.Err != nil {
		detail = entry.Err.Error()
	}

	event := &models.LogEvent{
		ID:        uuid.New().String(),
		Level:     level,
		Kind:      string(entry.Kind),
		Context:   entry.Context,
		Provider:  entry.Provider,
		Stage:     string(entry.Stage),
		Message:   message,
		Detail:    detail,
		UserID:    optional(entry.UserID),
		Response:  optional(entry.Response),
		CreatedAt: time.Now(),
	}
	if level == models.LogLevelInfo {
		event.Kind = ""
	}
	if len(entry.Details) > 0 {
		event.Details = models.LogDetails(maskSensitive(entry.Details))
	}
	if len(entry.Request) > 0 {
		if raw, err := json.Marshal(maskSensitive(entry.Request)); err == nil {
			event.Request = optional(string(raw))
		}
	}
	return event
}

// GetLogEvent returns one record by ID
func (s *DiagnosticsService) GetLogEvent(ctx context.Context, id string) (*models.LogEvent, error) {
	return s.store.GetLogEvent(ctx, id)
}

// ListLogEvents retrieves records with pagination and filtering
func (s *DiagnosticsService) ListLogEvents(
	ctx context.Context,
	params store.PaginationParams,
	filters store.LogEventFilters,
) ([]models.LogEvent, store.PaginationResult, error) {
	return s.store.ListLogEventsPaginated(ctx, params, filters)
}

// CleanupOldLogs deletes records older than the retention period
func (s *DiagnosticsService) CleanupOldLogs(ctx context.Context, retention time.Duration) (int64, error) {
	return s.store.DeleteOldLogEvents(ctx, time.Now().Add(-retention))
}

// Flush writes queued info records now
func (s *DiagnosticsService) Flush() {
	for {
		select {
		case event := <-s.logChan:
			s.addToBatch(event)
		default:
			s.flushBatch()
			return
		}
	}
}

// Shutdown stops the worker after flushing queued records
func (s *DiagnosticsService) Shutdown(ctx context.Context) error {
	s.shutdownOnce.Do(func() {
		s.batchTicker.Stop()
		close(s.shutdownCh)
	})

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		s.logger.Info("diagnostics logger shut down gracefully")
		return nil
	case <-ctx.Done():
		return fmt.Errorf("diagnostics logger shutdown timeout: %w", ctx.Err())
	}
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// maskSensitive copies m with credentials redacted. Nested maps are masked
// as well.
func maskSensitive(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}

	masked := make(map[string]any, len(m))
	for key, value := range m {
		switch {
		case isSensitiveField(key):
			masked[key] = redacted
		case isPartialMaskField(key):
			masked[key] = partialMask(value)
		default:
			masked[key] = maskValue(value)
		}
	}
	return masked
}

func maskValue(value any) any {
	switch v := value.(type) {
	case map[string]any:
		return maskSensitive(v)
	case map[string]string:
		m := make(map[string]any, len(v))
		for k, s := range v {
			m[k] = s
		}
		return maskSensitive(m)
	default:
		return value
	}
}

func partialMask(value any) any {
	if str, ok := value.(string); ok && len(str) > 12 {
		return str[:4] + "..." + str[len(str)-4:]
	}
	return redacted
}

// isSensitiveField checks if a field should be completely masked
func isSensitiveField(key string) bool {
	key = strings.ToLower(key)
	for _, field := range []string{"token", "secret", "password", "authorization"} {
		if strings.Contains(key, field) {
			return true
		}
	}
	return false
}

// isPartialMaskField checks if a field should be partially masked
func isPartialMaskField(key string) bool {
	switch strings.ToLower(key) {
	case "code", "code_verifier", "verifier", "code_challenge":
		return true
	}
	return false
}
