package session

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"go-chi-calculator/internal/calculator"
	"go-chi-calculator/internal/keypad"
)

var tracer = otel.Tracer("session")

// Step records the display after one key.
type Step struct {
	Key     string `json:"key"`
	Event   string `json:"event"`
	Display string `json:"display"`
}

// PressResult is the outcome of a batch of keys on a session.
type PressResult struct {
	Session    *Session
	Steps      []Step
	Phase      calculator.Phase
	LastResult float64
}

// Service creates sessions and drives their calculators.
type Service struct {
	store  Store
	logger *zap.Logger
	opts   []calculator.Option
	now    func() time.Time
}

// NewService builds a Service. opts configure every new calculator.
func NewService(store Store, logger *zap.Logger, opts ...calculator.Option) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Service{
		store:  store,
		logger: logger,
		opts:   opts,
		now:    time.Now,
	}
}

// Create starts a session with a calculator in its initial state.
func (s *Service) Create(ctx context.Context) (*Session, error) {
	now := s.now().UTC()
	sess := &Session{
		ID:        uuid.New().String(),
		State:     calculator.New(s.opts...).Snapshot(),
		CreatedAt: now,
	}

	if err := s.store.Save(ctx, sess); err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}
	activeSessions.Inc()

	s.logger.Info("session created", zap.String("session_id", sess.ID))
	return sess, nil
}

func (s *Service) Get(ctx context.Context, id string) (*Session, error) {
	return s.store.Get(ctx, id)
}

// Delete removes the session under its lock, so a Press in flight cannot
// save it back afterwards.
func (s *Service) Delete(ctx context.Context, id string) error {
	unlock, err := s.store.Lock(ctx, id)
	if err != nil {
		return err
	}
	defer unlock()

	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}
	activeSessions.Dec()

	s.logger.Info("session deleted", zap.String("session_id", id))
	return nil
}

func (s *Service) Count(ctx context.Context) (int, error) {
	sessions, err := s.store.List(ctx)
	if err != nil {
		return 0, err
	}
	return len(sessions), nil
}

// Press feeds keys to the session's calculator under the session lock.
// Keys are translated up front, so an unknown key leaves the session
// untouched.
func (s *Service) Press(ctx context.Context, id string, keys []string) (*PressResult, error) {
	ctx, span := tracer.Start(ctx, "session.press", trace.WithAttributes(
		attribute.String("session.id", id),
		attribute.Int("session.keys_count", len(keys)),
	))
	defer span.End()

	events, err := translate(keys)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "invalid keys")
		return nil, err
	}

	unlock, err := s.store.Lock(ctx, id)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "lock failed")
		return nil, err
	}
	defer unlock()

	sess, err := s.store.Get(ctx, id)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "load failed")
		return nil, err
	}

	calc, err := calculator.Restore(sess.State)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "restore failed")
		return nil, fmt.Errorf("session %s: %w", id, err)
	}

	steps := replay(ctx, calc, keys, events)

	sess.State = calc.Snapshot()
	if err := s.store.Save(ctx, sess); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "save failed")
		return nil, err
	}

	span.SetAttributes(attribute.String("calculator.display", calc.Display()))
	span.SetStatus(codes.Ok, "")

	s.logger.Debug("keys pressed",
		zap.String("session_id", id),
		zap.Strings("keys", keys),
		zap.String("display", calc.Display()),
		zap.String("phase", string(calc.Phase())),
	)

	return &PressResult{
		Session:    sess,
		Steps:      steps,
		Phase:      calc.Phase(),
		LastResult: calc.LastResult(),
	}, nil
}

// Evaluate runs keys on a fresh calculator that is not stored anywhere.
func (s *Service) Evaluate(ctx context.Context, keys []string) ([]Step, *calculator.Calculator, error) {
	ctx, span := tracer.Start(ctx, "session.evaluate", trace.WithAttributes(
		attribute.Int("session.keys_count", len(keys)),
	))
	defer span.End()

	events, err := translate(keys)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "invalid keys")
		return nil, nil, err
	}

	calc := calculator.New(s.opts...)
	steps := replay(ctx, calc, keys, events)

	span.SetAttributes(attribute.String("calculator.display", calc.Display()))
	span.SetStatus(codes.Ok, "")
	return steps, calc, nil
}

func translate(keys []string) ([]calculator.Event, error) {
	events, idx, ok := keypad.TranslateAll(keys)
	if !ok {
		return nil, fmt.Errorf("key %d %q: %w", idx, keys[idx], ErrUnknownKey)
	}
	return events, nil
}

// replay dispatches events one at a time, with a child span per key.
func replay(ctx context.Context, calc *calculator.Calculator, keys []string, events []calculator.Event) []Step {
	steps := make([]Step, 0, len(events))

	for i, ev := range events {
		_, keySpan := tracer.Start(ctx, fmt.Sprintf("session.key.%d", i), trace.WithAttributes(
			attribute.String("calculator.key", keys[i]),
			attribute.String("calculator.event", ev.Kind.String()),
		))

		before := calc.Phase()
		calc.Dispatch(ev)
		after := calc.Phase()

		keysTotal.WithLabelValues(ev.Kind.String()).Inc()
		if before != after {
			phaseTransitionsTotal.WithLabelValues(string(before), string(after)).Inc()
		}

		keySpan.SetAttributes(attribute.String("calculator.display", calc.Display()))
		keySpan.End()

		steps = append(steps, Step{
			Key:     keys[i],
			Event:   ev.Kind.String(),
			Display: calc.Display(),
		})
	}

	return steps
}
