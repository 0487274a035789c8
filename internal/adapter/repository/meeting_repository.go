package repository

import (
	"context"
	"database/sql"
	"fmt"
	"math"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/CS222-UIUC/fa25-fa25-team027/internal/domain/entities"
	repo "github.com/CS222-UIUC/fa25-fa25-team027/internal/domain/repositories"
	"github.com/CS222-UIUC/fa25-fa25-team027/pkg/table"
)

type insertFunc func(ctx context.Context, conn table.Conn, name string, row table.Row) (int64, error)

type meetingRepository struct {
	db     *sql.DB
	logger *zap.Logger
	now    func() time.Time
	insert insertFunc
}

// NewMeetingRepository creates a meeting repository backed by the table
// engine. The meeting tables are created if missing.
func NewMeetingRepository(ctx context.Context, db *sql.DB, logger *zap.Logger) (repo.MeetingRepository, error) {
	return newMeetingRepository(ctx, db, logger)
}

func newMeetingRepository(ctx context.Context, db *sql.DB, logger *zap.Logger) (*meetingRepository, error) {
	if err := EnsureSchema(ctx, db); err != nil {
		return nil, err
	}
	return &meetingRepository{
		db:     db,
		logger: logger,
		now:    time.Now,
		insert: table.SingleInsert,
	}, nil
}

func (r *meetingRepository) SaveMeeting(ctx context.Context, m entities.NewMeeting) (int64, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}

	id, err := r.writeMeeting(ctx, tx, m)
	if err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			if r.logger != nil {
				r.logger.Error("meeting.rollback_failed", zap.Int64("meeting_id", id), zap.Error(rbErr))
			}
			if id > 0 {
				r.purge(id)
			}
		}
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit meeting: %w", err)
	}

	if r.logger != nil {
		r.logger.Info("meeting.saved",
			zap.Int64("meeting_id", id),
			zap.Int("key_points", len(m.KeyPoints)),
			zap.Int("decisions", len(m.Decisions)),
			zap.Int("action_items", len(m.ActionItems)))
	}
	return id, nil
}

// writeMeeting inserts the parent row and then every child tagged with the
// parent id and its position. The returned id is valid even on error once
// the parent row was written.
func (r *meetingRepository) writeMeeting(ctx context.Context, tx *sql.Tx, m entities.NewMeeting) (int64, error) {
	title := strings.TrimSpace(m.Title)
	if title == "" {
		title = entities.DefaultMeetingTitle
	}

	id, err := r.insert(ctx, tx, TableMeetings, table.Row{
		"CREATED_AT":      r.now().UTC().Format(createdAtLayout),
		"TITLE":           title,
		"TRANSCRIPT":      m.Transcript,
		"SUMMARY_HEADING": m.SummaryHeading,
	})
	if err != nil {
		return 0, fmt.Errorf("failed to insert meeting: %w", err)
	}

	for i, p := range m.KeyPoints {
		if _, err := r.insert(ctx, tx, TableKeyPoints, table.Row{
			"MEETING_ID": id, "POINT": p, "POINT_ORDER": i,
		}); err != nil {
			return id, fmt.Errorf("failed to insert key point %d: %w", i, err)
		}
	}
	for i, d := range m.Decisions {
		if _, err := r.insert(ctx, tx, TableDecisions, table.Row{
			"MEETING_ID": id, "DECISION": d, "DECISION_ORDER": i,
		}); err != nil {
			return id, fmt.Errorf("failed to insert decision %d: %w", i, err)
		}
	}
	for i, a := range m.ActionItems {
		if _, err := r.insert(ctx, tx, TableActionItems, table.Row{
			"MEETING_ID": id, "ASSIGNEE": a.Assignee, "TASK": a.Task, "DEADLINE": a.Deadline, "ITEM_ORDER": i,
		}); err != nil {
			return id, fmt.Errorf("failed to insert action item %d: %w", i, err)
		}
	}
	return id, nil
}

// purge removes a partially written meeting after a failed rollback.
func (r *meetingRepository) purge(id int64) {
	ctx := context.Background()
	if _, err := r.deleteMeeting(ctx, id); err != nil && r.logger != nil {
		r.logger.Error("meeting.purge_failed", zap.Int64("meeting_id", id), zap.Error(err))
	}
}

func (r *meetingRepository) GetMeeting(ctx context.Context, id int64) (*entities.Meeting, error) {
	rows, err := table.Select(ctx, r.db, TableMeetings, table.Query{
		Where: table.Equals(table.Row{"ID": id}),
		Limit: 1,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get meeting: %w", err)
	}
	if len(rows) == 0 {
		return nil, entities.ErrMeetingNotFound
	}

	m := &entities.Meeting{
		ID:             rows[0].Int64("ID"),
		CreatedAt:      parseCreatedAt(rows[0].String("CREATED_AT")),
		Title:          rows[0].String("TITLE"),
		Transcript:     rows[0].String("TRANSCRIPT"),
		SummaryHeading: rows[0].String("SUMMARY_HEADING"),
	}

	if m.KeyPoints, err = r.texts(ctx, TableKeyPoints, "POINT", "POINT_ORDER", id, 0); err != nil {
		return nil, err
	}
	if m.Decisions, err = r.texts(ctx, TableDecisions, "DECISION", "DECISION_ORDER", id, 0); err != nil {
		return nil, err
	}

	items, err := table.Select(ctx, r.db, TableActionItems, table.Query{
		Columns: []string{"ASSIGNEE", "TASK", "DEADLINE"},
		Where:   table.Equals(table.Row{"MEETING_ID": id}),
		OrderBy: table.By(table.Asc("ITEM_ORDER")),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get action items: %w", err)
	}
	m.ActionItems = make([]entities.ActionItem, 0, len(items))
	for _, it := range items {
		m.ActionItems = append(m.ActionItems, entities.ActionItem{
			Assignee: it.String("ASSIGNEE"),
			Task:     it.String("TASK"),
			Deadline: it.String("DEADLINE"),
		})
	}
	return m, nil
}

// texts reads one text column of a child table in position order.
func (r *meetingRepository) texts(ctx context.Context, tbl, col, orderCol string, meetingID int64, limit int) ([]string, error) {
	rows, err := table.Select(ctx, r.db, tbl, table.Query{
		Columns: []string{col},
		Where:   table.Equals(table.Row{"MEETING_ID": meetingID}),
		OrderBy: table.By(table.Asc(orderCol)),
		Limit:   limit,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get %s: %w", strings.ToLower(tbl), err)
	}
	out := make([]string, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.String(col))
	}
	return out, nil
}

func (r *meetingRepository) ListMeetings(ctx context.Context, page, pageSize int) ([]entities.MeetingSummary, int64, error) {
	if page < 0 || pageSize <= 0 {
		return nil, 0, fmt.Errorf("%w: page=%d page_size=%d", entities.ErrInvalidPagination, page, pageSize)
	}

	total, err := r.CountMeetings(ctx)
	if err != nil {
		return nil, 0, err
	}
	// an offset past MaxInt cannot address any row
	if page > (math.MaxInt-1)/pageSize {
		return []entities.MeetingSummary{}, total, nil
	}

	rows, err := table.Select(ctx, r.db, TableMeetings, table.Query{
		Columns: []string{"ID", "CREATED_AT", "TITLE", "SUMMARY_HEADING"},
		OrderBy: table.By(table.Desc("CREATED_AT"), table.Desc("ID")),
		Limit:   pageSize,
		Offset:  page * pageSize,
	})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list meetings: %w", err)
	}

	out := make([]entities.MeetingSummary, 0, len(rows))
	for _, row := range rows {
		s := entities.MeetingSummary{
			ID:             row.Int64("ID"),
			CreatedAt:      parseCreatedAt(row.String("CREATED_AT")),
			Title:          row.String("TITLE"),
			SummaryHeading: row.String("SUMMARY_HEADING"),
		}
		if s.Preview, err = r.texts(ctx, TableKeyPoints, "POINT", "POINT_ORDER", s.ID, entities.PreviewLength); err != nil {
			return nil, 0, err
		}
		out = append(out, s)
	}
	return out, total, nil
}

func (r *meetingRepository) CountMeetings(ctx context.Context) (int64, error) {
	n, err := table.Count(ctx, r.db, TableMeetings, table.Where{})
	if err != nil {
		return 0, fmt.Errorf("failed to count meetings: %w", err)
	}
	return n, nil
}

func (r *meetingRepository) DeleteMeeting(ctx context.Context, id int64) (bool, error) {
	deleted, err := r.deleteMeeting(ctx, id)
	if err != nil {
		return false, err
	}
	if deleted && r.logger != nil {
		r.logger.Info("meeting.deleted", zap.Int64("meeting_id", id))
	}
	return deleted, nil
}

// deleteMeeting removes children before the parent in one transaction.
func (r *meetingRepository) deleteMeeting(ctx context.Context, id int64) (bool, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, tbl := range childTables {
		if _, err := table.Delete(ctx, tx, tbl, table.Equals(table.Row{"MEETING_ID": id})); err != nil {
			return false, fmt.Errorf("failed to delete %s: %w", strings.ToLower(tbl), err)
		}
	}
	n, err := table.Delete(ctx, tx, TableMeetings, table.Equals(table.Row{"ID": id}))
	if err != nil {
		return false, fmt.Errorf("failed to delete meeting: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("failed to commit delete: %w", err)
	}
	return n > 0, nil
}

func parseCreatedAt(s string) time.Time {
	t, err := time.Parse(createdAtLayout, s)
	if err != nil {
		t, _ = time.Parse(time.RFC3339Nano, s)
	}
	return t
}
