package onboarding

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/disgoorg/snowflake/v2"
	"golang.org/x/sync/errgroup"
)

// Outcome describes what handling an event produced.
type Outcome struct {
	Decision Decision
	// Record is the stored record after the transition, nil when persisting failed.
	Record    *Record
	MessageID snowflake.ID
	// Created is true when a new tracking message was sent instead of editing one.
	Created   bool
	Persisted bool
}

type Option func(*Service)

func WithObserver(observer TransitionObserver) Option {
	return func(s *Service) {
		s.observer = observer
	}
}

// Service drives members through onboarding. Events for the same member are
// not serialized; concurrent transitions resolve as last write wins.
type Service struct {
	repository Repository
	platform   Platform
	chapters   ChapterLookup
	settings   Settings
	observer   TransitionObserver
}

func NewService(repository Repository, platform Platform, chapters ChapterLookup, settings Settings, opts ...Option) *Service {
	s := &Service{
		repository: repository,
		platform:   platform,
		chapters:   chapters,
		settings:   settings,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handle applies event. Store failures are logged and reported through
// Outcome.Persisted; platform failures abort the event and are returned.
func (s *Service) Handle(ctx context.Context, event Event) (Outcome, error) {
	switch e := event.(type) {
	case MemberJoined:
		return s.memberJoined(ctx, e)
	case FormSubmitted:
		return s.formSubmitted(ctx, e)
	case CompletionMarked:
		return s.reviewed(ctx, e, e.MessageID, e.Details)
	case CompletionUndone:
		return s.reviewed(ctx, e, e.MessageID, e.Details)
	default:
		return Outcome{}, fmt.Errorf("unsupported event %T: %w", event, ErrInvalidTransition)
	}
}

func (s *Service) memberJoined(ctx context.Context, e MemberJoined) (Outcome, error) {
	d, err := Decide(e, nil)
	if err != nil {
		return Outcome{}, err
	}
	return s.apply(ctx, e, d, nil, d.View(Details{MemberID: e.MemberID}))
}

func (s *Service) formSubmitted(ctx context.Context, e FormSubmitted) (Outcome, error) {
	_, chapter, err := ResolveChapter(e.ChapterInput, s.chapters)
	if err != nil {
		return Outcome{}, err
	}

	current, err := s.repository.FindByMember(ctx, e.MemberID)
	if err != nil {
		s.logLookupMiss("member", e.MemberID, err)
		current = nil
	}

	d, err := Decide(e, current)
	if err != nil {
		return Outcome{Decision: d, Record: current}, err
	}

	if err := s.assignRoles(ctx, e.MemberID, chapter.Role()); err != nil {
		return Outcome{Decision: d, Record: current}, err
	}

	ack := fmt.Sprintf("Thanks %s! Your registration for **%s** (%s) was received. An officer will finish your onboarding shortly.",
		e.CharacterName, chapter.Name, e.Realm)
	if err := s.platform.DirectMessage(ctx, e.MemberID, ack); err != nil {
		return Outcome{Decision: d, Record: current}, fmt.Errorf("failed to message member %s: %w", e.MemberID, err)
	}

	return s.apply(ctx, e, d, current, d.View(Details{
		MemberID:      e.MemberID,
		CharacterName: e.CharacterName,
		Realm:         e.Realm,
		Chapter:       chapter.Name,
	}))
}

// reviewed handles the officer buttons on a tracking message.
func (s *Service) reviewed(ctx context.Context, e Event, messageID snowflake.ID, details Details) (Outcome, error) {
	current, err := s.repository.FindByTrackingMessage(ctx, messageID)
	if err != nil {
		s.logLookupMiss("message", messageID, err)
		current = nil
	}

	d, err := Decide(e, current)
	if err != nil {
		return Outcome{Decision: d, Record: current}, err
	}

	if current != nil && details.MemberID == 0 {
		details.MemberID = current.MemberID
	}
	return s.apply(ctx, e, d, current, d.View(details))
}

func (s *Service) assignRoles(ctx context.Context, memberID, chapterRoleID snowflake.ID) error {
	g, ctx := errgroup.WithContext(ctx)
	if s.settings.NewMemberRoleID != 0 {
		g.Go(func() error {
			if err := s.platform.RevokeRole(ctx, memberID, s.settings.NewMemberRoleID); err != nil {
				return fmt.Errorf("failed to revoke new member role: %w", err)
			}
			return nil
		})
	}
	if s.settings.MemberRoleID != 0 {
		g.Go(func() error {
			if err := s.platform.GrantRole(ctx, memberID, s.settings.MemberRoleID); err != nil {
				return fmt.Errorf("failed to grant member role: %w", err)
			}
			return nil
		})
	}
	g.Go(func() error {
		if err := s.platform.GrantRole(ctx, memberID, chapterRoleID); err != nil {
			return fmt.Errorf("failed to grant chapter role: %w", err)
		}
		return nil
	})
	return g.Wait()
}

// apply renders view according to d and persists the new stage.
func (s *Service) apply(ctx context.Context, e Event, d Decision, current *Record, view View) (Outcome, error) {
	out := Outcome{Decision: d, MessageID: d.Target}

	switch d.Render {
	case RenderEdit:
		if err := s.platform.EditView(ctx, s.settings.ReviewChannelID, d.Target, view); err != nil {
			return out, fmt.Errorf("failed to edit tracking message %s: %w", d.Target, err)
		}
	default:
		messageID, err := s.platform.SendView(ctx, s.settings.ReviewChannelID, view)
		if err != nil {
			return out, fmt.Errorf("failed to send tracking message: %w", err)
		}
		out.MessageID = messageID
		out.Created = true
	}

	out.Record, out.Persisted = s.persist(ctx, d, current, view.Details.MemberID, out.MessageID)

	slog.Info("Onboarding transition",
		slog.String("type", "flow"),
		slog.String("event", e.Name()),
		slog.Bool("tracked", d.Tracked),
		slog.String("from", d.From.String()),
		slog.String("to", d.To.String()),
		slog.String("render", d.Render.String()),
		slog.String("message_id", out.MessageID.String()),
		slog.Bool("persisted", out.Persisted),
	)
	if s.observer != nil {
		s.observer.ObserveTransition(e, d, out.Persisted)
	}
	return out, nil
}

// persist is best effort: the rendered view may run ahead of the store until the next successful write.
func (s *Service) persist(ctx context.Context, d Decision, current *Record, memberID, messageID snowflake.ID) (*Record, bool) {
	if d.Render == RenderEdit && current != nil {
		if err := s.repository.UpdateStage(ctx, current, d.To); err != nil {
			slog.Error("Failed to update onboarding stage",
				slog.String("type", "db"),
				slog.Int64("record_id", current.ID),
				slog.String("stage", d.To.String()),
				slog.Any("error", err),
			)
			return nil, false
		}
		return current, true
	}

	if memberID == 0 {
		slog.Warn("Tracking message has no member, record not stored",
			slog.String("type", "db"),
			slog.String("message_id", messageID.String()),
		)
		return nil, false
	}

	record, err := s.repository.Create(ctx, memberID, messageID, d.To)
	if err != nil {
		slog.Error("Failed to create onboarding record",
			slog.String("type", "db"),
			slog.String("member_id", memberID.String()),
			slog.String("message_id", messageID.String()),
			slog.Any("error", err),
		)
		return nil, false
	}
	return record, true
}

func (s *Service) logLookupMiss(key string, id snowflake.ID, err error) {
	if errors.Is(err, ErrNotFound) {
		slog.Info("No onboarding record, a new tracking message will be created",
			slog.String("type", "flow"),
			slog.String("by", key),
			slog.String("id", id.String()),
		)
		return
	}
	slog.Error("Onboarding record lookup failed",
		slog.String("type", "db"),
		slog.String("by", key),
		slog.String("id", id.String()),
		slog.Any("error", err),
	)
}
