package repositories

import (
	"context"
	"errors"
	"math"
	"sync"
	"testing"

	"github.com/disgoorg/snowflake/v2"
	"github.com/oldgods/nmibot/internal/domain/onboarding"
	"github.com/oldgods/nmibot/internal/domain/roster"
	"github.com/oldgods/nmibot/internal/gateways/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) (*database.DB, onboarding.Repository) {
	t.Helper()
	db := database.New(database.Config{Driver: database.DriverSQLite, Path: ":memory:"})
	t.Cleanup(func() { _ = db.Close() })

	repo, err := NewOnboardingRepository(db, 16)
	require.NoError(t, err)
	return db, repo
}

func insertRaw(t *testing.T, db *database.DB, userID, messageID string, stage int64) {
	t.Helper()
	ctx := context.Background()
	conn, err := db.Conn(ctx)
	require.NoError(t, err)
	_, err = conn.ExecContext(ctx,
		"INSERT INTO member_join_messages (discord_user_id, message_id, stage) VALUES (?, ?, ?)",
		userID, messageID, stage)
	require.NoError(t, err)
}

func execRaw(t *testing.T, db *database.DB, query string, args ...any) {
	t.Helper()
	ctx := context.Background()
	conn, err := db.Conn(ctx)
	require.NoError(t, err)
	_, err = conn.ExecContext(ctx, query, args...)
	require.NoError(t, err)
}

func TestOnboardingRepository_FindMissing(t *testing.T) {
	_, repo := newTestStore(t)
	ctx := context.Background()

	_, err := repo.FindByMember(ctx, 1001)
	require.Error(t, err)
	assert.ErrorIs(t, err, onboarding.ErrNotFound)
	assert.True(t, IsNotFound(err))

	_, err = repo.FindByTrackingMessage(ctx, 9001)
	assert.ErrorIs(t, err, onboarding.ErrNotFound)
}

func TestOnboardingRepository_CreateThenFind(t *testing.T) {
	_, repo := newTestStore(t)
	ctx := context.Background()

	created, err := repo.Create(ctx, 1001, 9001, onboarding.NewMember)
	require.NoError(t, err)
	assert.NotZero(t, created.ID)

	got, err := repo.FindByMember(ctx, 1001)
	require.NoError(t, err)
	assert.Equal(t, onboarding.NewMember, got.Stage)
	assert.Equal(t, snowflake.ID(9001), got.MessageID)
	assert.Equal(t, created.ID, got.ID)
}

// Create does not deduplicate: two calls for one member store two rows.
// Lookups by member see the newest one.
func TestOnboardingRepository_CreateIsNotIdempotent(t *testing.T) {
	_, repo := newTestStore(t)
	ctx := context.Background()

	first, err := repo.Create(ctx, 1001, 9001, onboarding.NewMember)
	require.NoError(t, err)
	second, err := repo.Create(ctx, 1001, 9002, onboarding.NewMember)
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)
	assert.Greater(t, second.ID, first.ID)

	got, err := repo.FindByMember(ctx, 1001)
	require.NoError(t, err)
	assert.Equal(t, second.ID, got.ID)
	assert.Equal(t, snowflake.ID(9002), got.MessageID)

	old, err := repo.FindByTrackingMessage(ctx, 9001)
	require.NoError(t, err)
	assert.Equal(t, first.ID, old.ID)
}

func TestOnboardingRepository_StageRoundTrip(t *testing.T) {
	db, repo := newTestStore(t)
	ctx := context.Background()

	record, err := repo.Create(ctx, 1001, 9001, onboarding.Onboarding)
	require.NoError(t, err)

	require.NoError(t, repo.UpdateStage(ctx, record, onboarding.Completed))
	assert.Equal(t, onboarding.Completed, record.Stage)

	got, err := repo.FindByTrackingMessage(ctx, 9001)
	require.NoError(t, err)
	assert.Equal(t, onboarding.Completed, got.Stage)

	require.NoError(t, repo.UpdateStage(ctx, got, onboarding.Onboarding))

	// A fresh repository has an empty cache and must read the row back.
	fresh, err := NewOnboardingRepository(db, 16)
	require.NoError(t, err)
	got, err = fresh.FindByTrackingMessage(ctx, 9001)
	require.NoError(t, err)
	assert.Equal(t, onboarding.Onboarding, got.Stage)
}

func TestOnboardingRepository_ReturnedRecordsAreCopies(t *testing.T) {
	_, repo := newTestStore(t)
	ctx := context.Background()

	_, err := repo.Create(ctx, 1001, 9001, onboarding.Onboarding)
	require.NoError(t, err)

	got, err := repo.FindByTrackingMessage(ctx, 9001)
	require.NoError(t, err)
	got.Stage = onboarding.Completed

	again, err := repo.FindByTrackingMessage(ctx, 9001)
	require.NoError(t, err)
	assert.Equal(t, onboarding.Onboarding, again.Stage)
}

func TestOnboardingRepository_UpdateMissingRow(t *testing.T) {
	_, repo := newTestStore(t)
	err := repo.UpdateStage(context.Background(), &onboarding.Record{ID: 42, MessageID: 1}, onboarding.Completed)
	assert.ErrorIs(t, err, onboarding.ErrNotFound)
}

func TestOnboardingRepository_MaxUint64(t *testing.T) {
	db, repo := newTestStore(t)
	ctx := context.Background()
	maxID := snowflake.ID(math.MaxUint64)

	_, err := repo.Create(ctx, maxID, maxID-1, onboarding.NewMember)
	require.NoError(t, err)

	got, err := repo.FindByMember(ctx, maxID)
	require.NoError(t, err)
	assert.Equal(t, maxID, got.MemberID)
	assert.Equal(t, maxID-1, got.MessageID)

	conn, err := db.Conn(ctx)
	require.NoError(t, err)
	var stored string
	require.NoError(t, conn.QueryRowContext(ctx, "SELECT discord_user_id FROM member_join_messages WHERE id = ?", got.ID).Scan(&stored))
	assert.Equal(t, "18446744073709551615", stored)
}

func TestOnboardingRepository_UnknownStageCode(t *testing.T) {
	db, repo := newTestStore(t)
	insertRaw(t, db, "1001", "9001", 7)

	got, err := repo.FindByMember(context.Background(), 1001)
	require.NoError(t, err)
	assert.Equal(t, onboarding.NewMember, got.Stage)
}

func TestOnboardingRepository_CorruptIdentifier(t *testing.T) {
	db, repo := newTestStore(t)
	insertRaw(t, db, "1001", "not-a-number", 1)

	_, err := repo.FindByMember(context.Background(), 1001)
	require.Error(t, err)

	var decodeErr *database.IDDecodeError
	assert.True(t, errors.As(err, &decodeErr))
	assert.False(t, errors.Is(err, onboarding.ErrNotFound))
}

func TestOnboardingRepository_DeletedRowIsNotFound(t *testing.T) {
	db, repo := newTestStore(t)
	ctx := context.Background()

	_, err := repo.Create(ctx, 1001, 9001, onboarding.NewMember)
	require.NoError(t, err)
	_, err = repo.FindByTrackingMessage(ctx, 9001)
	require.NoError(t, err)

	execRaw(t, db, "DELETE FROM member_join_messages")

	_, err = repo.FindByTrackingMessage(ctx, 9001)
	assert.ErrorIs(t, err, onboarding.ErrNotFound)
	_, err = repo.FindByMember(ctx, 1001)
	assert.ErrorIs(t, err, onboarding.ErrNotFound)
}

// A row recreated under the same message id gets a new row id; lookups
// follow the new row.
func TestOnboardingRepository_RecreatedRowIsFound(t *testing.T) {
	db, repo := newTestStore(t)
	ctx := context.Background()

	first, err := repo.Create(ctx, 1001, 9001, onboarding.NewMember)
	require.NoError(t, err)

	execRaw(t, db, "DELETE FROM member_join_messages")
	insertRaw(t, db, "1001", "9001", 3)

	got, err := repo.FindByTrackingMessage(ctx, 9001)
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, got.ID)
	assert.Equal(t, onboarding.Completed, got.Stage)
}

// Writes made by another repository on the same store are visible
// immediately.
func TestOnboardingRepository_ReadsSeeOtherWriters(t *testing.T) {
	db, repo := newTestStore(t)
	ctx := context.Background()

	_, err := repo.Create(ctx, 1001, 9001, onboarding.NewMember)
	require.NoError(t, err)

	other, err := NewOnboardingRepository(db, 16)
	require.NoError(t, err)
	rec, err := other.FindByTrackingMessage(ctx, 9001)
	require.NoError(t, err)
	require.NoError(t, other.UpdateStage(ctx, rec, onboarding.Completed))

	got, err := repo.FindByTrackingMessage(ctx, 9001)
	require.NoError(t, err)
	assert.Equal(t, onboarding.Completed, got.Stage)
}

func TestOnboardingRepository_ConcurrentUpdates(t *testing.T) {
	_, repo := newTestStore(t)
	ctx := context.Background()

	created, err := repo.Create(ctx, 1001, 9001, onboarding.NewMember)
	require.NoError(t, err)

	stages := []onboarding.Stage{onboarding.Onboarding, onboarding.Completed}
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(stage onboarding.Stage) {
			defer wg.Done()
			rec := *created
			assert.NoError(t, repo.UpdateStage(ctx, &rec, stage))
		}(stages[i%len(stages)])
	}
	wg.Wait()

	got, err := repo.FindByTrackingMessage(ctx, 9001)
	require.NoError(t, err)
	fresh, err := repo.FindByMember(ctx, 1001)
	require.NoError(t, err)
	assert.Equal(t, fresh.Stage, got.Stage)
}

type recordingPlatform struct {
	mu     sync.Mutex
	nextID snowflake.ID
	sent   []snowflake.ID
	edited []snowflake.ID
}

func (p *recordingPlatform) SendView(_ context.Context, _ snowflake.ID, _ onboarding.View) (snowflake.ID, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.nextID++
	p.sent = append(p.sent, p.nextID)
	return p.nextID, nil
}

func (p *recordingPlatform) EditView(_ context.Context, _, messageID snowflake.ID, _ onboarding.View) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.edited = append(p.edited, messageID)
	return nil
}

func (p *recordingPlatform) GrantRole(context.Context, snowflake.ID, snowflake.ID) error  { return nil }
func (p *recordingPlatform) RevokeRole(context.Context, snowflake.ID, snowflake.ID) error { return nil }
func (p *recordingPlatform) DirectMessage(context.Context, snowflake.ID, string) error    { return nil }

// When the tracking row disappears, marking the member complete sends a new
// tracking message and stores a new record instead of editing the old one.
func TestOnboardingRepository_ServiceRecreatesLostTracking(t *testing.T) {
	db, repo := newTestStore(t)
	ctx := context.Background()

	platform := &recordingPlatform{nextID: 9000}
	chapters := roster.Roster{Chapters: []roster.Chapter{{Name: "Aegwynn", RoleID: 500}}}
	svc := onboarding.NewService(repo, platform, chapters, onboarding.Settings{
		ReviewChannelID: 42,
		NewMemberRoleID: 10,
		MemberRoleID:    11,
	})

	joined, err := svc.Handle(ctx, onboarding.MemberJoined{MemberID: 1001})
	require.NoError(t, err)
	tracking := joined.MessageID

	_, err = svc.Handle(ctx, onboarding.FormSubmitted{
		MemberID:      1001,
		ChapterInput:  "0",
		CharacterName: "Bjork",
		Realm:         "Tichondrius",
	})
	require.NoError(t, err)
	require.Equal(t, []snowflake.ID{tracking}, platform.edited)

	execRaw(t, db, "DELETE FROM member_join_messages")

	out, err := svc.Handle(ctx, onboarding.CompletionMarked{
		MessageID: tracking,
		Details: onboarding.Details{
			MemberID:      1001,
			CharacterName: "Bjork",
			Realm:         "Tichondrius",
			Chapter:       "Aegwynn",
		},
	})
	require.NoError(t, err)
	assert.True(t, out.Created)
	assert.True(t, out.Persisted)
	assert.NotEqual(t, tracking, out.MessageID)
	assert.Len(t, platform.sent, 2)
	assert.Len(t, platform.edited, 1)

	got, err := repo.FindByTrackingMessage(ctx, out.MessageID)
	require.NoError(t, err)
	assert.Equal(t, onboarding.Completed, got.Stage)
	assert.Equal(t, snowflake.ID(1001), got.MemberID)
}
