package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/disgoorg/snowflake/v2"
	lru "github.com/hashicorp/golang-lru"
	"github.com/oldgods/nmibot/internal/domain/logger"
	"github.com/oldgods/nmibot/internal/domain/onboarding"
	"github.com/oldgods/nmibot/internal/gateways/database"
	"github.com/oldgods/nmibot/internal/gateways/database/models"
	"github.com/uptrace/bun"
)

const (
	entityMemberJoinMessage = "member_join_message"
	tableMemberJoinMessages = "member_join_messages"

	DefaultRecordCacheSize = 1024
	defaultQueryTimeout    = 5 * time.Second
)

type onboardingRepository struct {
	db      *database.DB
	rowIDs  *lru.Cache // tracking message id -> row id
	timeout time.Duration
}

// NewOnboardingRepository returns the tracking store. Row ids are cached by
// tracking message id so message lookups hit the primary key; every read
// still goes to the store.
func NewOnboardingRepository(db *database.DB, cacheSize int) (onboarding.Repository, error) {
	if cacheSize <= 0 {
		cacheSize = DefaultRecordCacheSize
	}
	rowIDs, err := lru.New(cacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create row id cache: %w", err)
	}
	return &onboardingRepository{
		db:      db,
		rowIDs:  rowIDs,
		timeout: defaultQueryTimeout,
	}, nil
}

func (r *onboardingRepository) Create(ctx context.Context, memberID, messageID snowflake.ID, stage onboarding.Stage) (*onboarding.Record, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	conn, err := r.db.Conn(ctx)
	if err != nil {
		return nil, &RepositoryError{Operation: "create", Entity: entityMemberJoinMessage, Err: err}
	}

	row := &models.MemberJoinMessage{
		DiscordUserID: database.EncodeID(memberID),
		MessageID:     database.EncodeID(messageID),
		Stage:         stage.Code(),
	}
	ql := logger.NewQueryLogger("create", tableMemberJoinMessages, row.DiscordUserID, row.MessageID, row.Stage)
	_, err = conn.NewInsert().
		Model(row).
		Returning("id").
		Exec(ctx)
	ql.Log(err, 1, false)
	if err != nil {
		return nil, handleError("create", entityMemberJoinMessage, "discord_user_id", memberID, err)
	}

	r.rowIDs.Add(messageID, row.ID)
	return &onboarding.Record{
		ID:        row.ID,
		MemberID:  memberID,
		MessageID: messageID,
		Stage:     stage,
	}, nil
}

func (r *onboardingRepository) UpdateStage(ctx context.Context, record *onboarding.Record, stage onboarding.Stage) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	conn, err := r.db.Conn(ctx)
	if err != nil {
		return &RepositoryError{Operation: "update_stage", Entity: entityMemberJoinMessage, Err: err}
	}

	ql := logger.NewQueryLogger("update_stage", tableMemberJoinMessages, record.ID, stage.Code())
	res, err := conn.NewUpdate().
		Model((*models.MemberJoinMessage)(nil)).
		Set("stage = ?", stage.Code()).
		Where("id = ?", record.ID).
		Exec(ctx)
	if err != nil {
		ql.Log(err, 0, false)
		return handleError("update_stage", entityMemberJoinMessage, "id", record.ID, err)
	}

	rows, _ := res.RowsAffected()
	ql.Log(nil, rows, rows == 0)
	if rows == 0 {
		r.rowIDs.Remove(record.MessageID)
		return &NotFoundError{Entity: entityMemberJoinMessage, Key: "id", ID: record.ID}
	}

	record.Stage = stage
	return nil
}

func (r *onboardingRepository) FindByMember(ctx context.Context, memberID snowflake.ID) (*onboarding.Record, error) {
	encoded := database.EncodeID(memberID)
	record, err := r.findOne(ctx, "find_by_member", "discord_user_id", memberID, func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("discord_user_id = ?", encoded)
	})
	if err != nil {
		return nil, err
	}
	r.rowIDs.Add(record.MessageID, record.ID)
	return record, nil
}

func (r *onboardingRepository) FindByTrackingMessage(ctx context.Context, messageID snowflake.ID) (*onboarding.Record, error) {
	encoded := database.EncodeID(messageID)

	if cached, ok := r.rowIDs.Get(messageID); ok {
		rowID := cached.(int64)
		record, err := r.findOne(ctx, "find_by_tracking_message", "id", rowID, func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("message_id = ?", encoded).Where("id >= ?", rowID)
		})
		if err == nil {
			r.rowIDs.Add(messageID, record.ID)
			return record, nil
		}
		if !errors.Is(err, onboarding.ErrNotFound) {
			return nil, err
		}
		r.rowIDs.Remove(messageID)
	}

	record, err := r.findOne(ctx, "find_by_tracking_message", "message_id", messageID, func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("message_id = ?", encoded)
	})
	if err != nil {
		return nil, err
	}
	r.rowIDs.Add(messageID, record.ID)
	return record, nil
}

// findOne returns the newest row matched by where. Older rows for the same
// key are history and are never consulted.
func (r *onboardingRepository) findOne(ctx context.Context, operation, key string, id any, where func(*bun.SelectQuery) *bun.SelectQuery) (*onboarding.Record, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	conn, err := r.db.Conn(ctx)
	if err != nil {
		return nil, &RepositoryError{Operation: operation, Entity: entityMemberJoinMessage, Err: err}
	}

	ql := logger.NewQueryLogger(operation, tableMemberJoinMessages, key, id)

	row := new(models.MemberJoinMessage)
	err = where(conn.NewSelect().Model(row)).
		OrderExpr("id DESC").
		Limit(1).
		Scan(ctx)
	miss := errors.Is(err, sql.ErrNoRows)
	ql.Log(err, boolToRows(err == nil), miss)
	if err != nil {
		return nil, handleError(operation, entityMemberJoinMessage, key, id, err)
	}

	return toRecord(operation, row)
}

func toRecord(operation string, row *models.MemberJoinMessage) (*onboarding.Record, error) {
	memberID, err := database.DecodeID(row.DiscordUserID)
	if err != nil {
		return nil, &RepositoryError{Operation: operation, Entity: entityMemberJoinMessage, Err: fmt.Errorf("row %d discord_user_id: %w", row.ID, err)}
	}
	messageID, err := database.DecodeID(row.MessageID)
	if err != nil {
		return nil, &RepositoryError{Operation: operation, Entity: entityMemberJoinMessage, Err: fmt.Errorf("row %d message_id: %w", row.ID, err)}
	}
	return &onboarding.Record{
		ID:        row.ID,
		MemberID:  memberID,
		MessageID: messageID,
		Stage:     onboarding.StageFromCode(row.Stage),
	}, nil
}

func boolToRows(ok bool) int64 {
	if ok {
		return 1
	}
	return 0
}
