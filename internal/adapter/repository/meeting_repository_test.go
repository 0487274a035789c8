package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"reflect"
	"testing"
	"time"

	"github.com/CS222-UIUC/fa25-fa25-team027/internal/domain/entities"
	"github.com/CS222-UIUC/fa25-fa25-team027/pkg/table"
)

func newTestRepo(t *testing.T) (*meetingRepository, *sql.DB) {
	t.Helper()
	db, err := table.ConnectDatabase(":memory:")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	r, err := newMeetingRepository(context.Background(), db, nil)
	if err != nil {
		t.Fatalf("new repository: %v", err)
	}
	base := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	var tick int
	r.now = func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Minute)
	}
	return r, db
}

func sampleMeeting() entities.NewMeeting {
	return entities.NewMeeting{
		Title:          "Standup",
		Transcript:     "Ana: I will ship the release.",
		SummaryHeading: "Release planning",
		KeyPoints:      []string{"P1", "P2", "P3", "P4"},
		Decisions:      []string{"D1", "D2"},
		ActionItems: []entities.ActionItem{
			{Assignee: "Ana", Task: "Ship", Deadline: "Friday"},
			{Assignee: "Unassigned", Task: "Write notes", Deadline: "No deadline specified"},
		},
	}
}

func countRows(t *testing.T, db *sql.DB, tbl string) int64 {
	t.Helper()
	n, err := table.Count(context.Background(), db, tbl, table.Where{})
	if err != nil {
		t.Fatalf("count %s: %v", tbl, err)
	}
	return n
}

func TestEnsureSchemaIsIdempotent(t *testing.T) {
	ctx := context.Background()
	r, db := newTestRepo(t)
	if _, err := r.SaveMeeting(ctx, sampleMeeting()); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := EnsureSchema(ctx, db); err != nil {
		t.Fatalf("EnsureSchema again: %v", err)
	}
	if n := countRows(t, db, TableMeetings); n != 1 {
		t.Errorf("meetings = %d, want 1", n)
	}
}

func TestSaveAndGetRoundTrip(t *testing.T) {
	ctx := context.Background()
	r, _ := newTestRepo(t)
	in := sampleMeeting()

	id, err := r.SaveMeeting(ctx, in)
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := r.GetMeeting(ctx, id)
	if err != nil {
		t.Fatalf("get: %v", err)
	}

	if got.ID != id || got.Title != in.Title || got.Transcript != in.Transcript || got.SummaryHeading != in.SummaryHeading {
		t.Errorf("meeting = %+v", got)
	}
	if !reflect.DeepEqual(got.KeyPoints, in.KeyPoints) {
		t.Errorf("key points = %v, want %v", got.KeyPoints, in.KeyPoints)
	}
	if !reflect.DeepEqual(got.Decisions, in.Decisions) {
		t.Errorf("decisions = %v, want %v", got.Decisions, in.Decisions)
	}
	if !reflect.DeepEqual(got.ActionItems, in.ActionItems) {
		t.Errorf("action items = %v, want %v", got.ActionItems, in.ActionItems)
	}
	if got.CreatedAt.Location() != time.UTC || got.CreatedAt.IsZero() {
		t.Errorf("created_at = %v", got.CreatedAt)
	}
}

func TestGetSortsByOrderIndexNotStorageOrder(t *testing.T) {
	ctx := context.Background()
	r, db := newTestRepo(t)
	id, err := r.SaveMeeting(ctx, entities.NewMeeting{Title: "x"})
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	for _, p := range []struct {
		text  string
		order int
	}{{"third", 2}, {"first", 0}, {"second", 1}} {
		if _, err := table.SingleInsert(ctx, db, TableKeyPoints, table.Row{"MEETING_ID": id, "POINT": p.text, "POINT_ORDER": p.order}); err != nil {
			t.Fatalf("insert: %v", err)
		}
	}
	got, err := r.GetMeeting(ctx, id)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	want := []string{"first", "second", "third"}
	if !reflect.DeepEqual(got.KeyPoints, want) {
		t.Errorf("key points = %v, want %v", got.KeyPoints, want)
	}
}

func TestSaveDefaultsTitle(t *testing.T) {
	ctx := context.Background()
	r, _ := newTestRepo(t)
	id, err := r.SaveMeeting(ctx, entities.NewMeeting{Title: "   "})
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := r.GetMeeting(ctx, id)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Title != entities.DefaultMeetingTitle {
		t.Errorf("title = %q", got.Title)
	}
	if len(got.KeyPoints) != 0 || len(got.Decisions) != 0 || len(got.ActionItems) != 0 {
		t.Errorf("children = %+v", got)
	}
}

func TestGetMissingMeeting(t *testing.T) {
	r, _ := newTestRepo(t)
	if _, err := r.GetMeeting(context.Background(), 404); !errors.Is(err, entities.ErrMeetingNotFound) {
		t.Fatalf("err = %v, want ErrMeetingNotFound", err)
	}
}

func TestDeleteCascades(t *testing.T) {
	ctx := context.Background()
	r, db := newTestRepo(t)
	keep, err := r.SaveMeeting(ctx, sampleMeeting())
	if err != nil {
		t.Fatalf("save keep: %v", err)
	}
	drop, err := r.SaveMeeting(ctx, sampleMeeting())
	if err != nil {
		t.Fatalf("save drop: %v", err)
	}

	ok, err := r.DeleteMeeting(ctx, drop)
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if !ok {
		t.Fatal("delete reported nothing deleted")
	}
	if _, err := r.GetMeeting(ctx, drop); !errors.Is(err, entities.ErrMeetingNotFound) {
		t.Errorf("get deleted err = %v", err)
	}
	for _, tbl := range childTables {
		n, err := table.Count(ctx, db, tbl, table.Equals(table.Row{"MEETING_ID": drop}))
		if err != nil {
			t.Fatalf("count %s: %v", tbl, err)
		}
		if n != 0 {
			t.Errorf("%s has %d orphans", tbl, n)
		}
	}
	if _, err := r.GetMeeting(ctx, keep); err != nil {
		t.Errorf("other meeting lost: %v", err)
	}

	ok, err = r.DeleteMeeting(ctx, drop)
	if err != nil || ok {
		t.Errorf("second delete = %v, %v; want false, nil", ok, err)
	}
}

func TestListPaginationPartition(t *testing.T) {
	ctx := context.Background()
	r, _ := newTestRepo(t)
	var ids []int64
	for i := 0; i < 12; i++ {
		m := sampleMeeting()
		m.Title = fmt.Sprintf("m%02d", i)
		id, err := r.SaveMeeting(ctx, m)
		if err != nil {
			t.Fatalf("save %d: %v", i, err)
		}
		ids = append(ids, id)
	}

	seen := map[int64]bool{}
	var order []int64
	for page := 0; page < 3; page++ {
		got, total, err := r.ListMeetings(ctx, page, 5)
		if err != nil {
			t.Fatalf("list page %d: %v", page, err)
		}
		if total != 12 {
			t.Errorf("total = %d, want 12", total)
		}
		wantLen := 5
		if page == 2 {
			wantLen = 2
		}
		if len(got) != wantLen {
			t.Errorf("page %d len = %d, want %d", page, len(got), wantLen)
		}
		for _, s := range got {
			if seen[s.ID] {
				t.Errorf("meeting %d listed twice", s.ID)
			}
			seen[s.ID] = true
			order = append(order, s.ID)
			if !reflect.DeepEqual(s.Preview, []string{"P1", "P2", "P3"}) {
				t.Errorf("preview = %v", s.Preview)
			}
		}
	}
	if len(seen) != 12 {
		t.Errorf("saw %d meetings, want 12", len(seen))
	}
	for i, id := range order {
		if id != ids[len(ids)-1-i] {
			t.Fatalf("order = %v, want newest first", order)
		}
	}

	got, total, err := r.ListMeetings(ctx, 9, 5)
	if err != nil {
		t.Fatalf("list beyond end: %v", err)
	}
	if len(got) != 0 || total != 12 {
		t.Errorf("beyond end = %d items, total %d", len(got), total)
	}
}

func TestListHugePageIsEmpty(t *testing.T) {
	ctx := context.Background()
	r, _ := newTestRepo(t)
	for i := 0; i < 3; i++ {
		if _, err := r.SaveMeeting(ctx, sampleMeeting()); err != nil {
			t.Fatalf("save %d: %v", i, err)
		}
	}
	for _, tc := range []struct{ page, size int }{{math.MaxInt/2 + 1, 2}, {math.MaxInt, 1}, {math.MaxInt, 100}} {
		got, total, err := r.ListMeetings(ctx, tc.page, tc.size)
		if err != nil {
			t.Fatalf("ListMeetings(%d, %d): %v", tc.page, tc.size, err)
		}
		if len(got) != 0 || total != 3 {
			t.Errorf("ListMeetings(%d, %d) = %d items, total %d", tc.page, tc.size, len(got), total)
		}
	}
}

func TestListTieBreaksOnID(t *testing.T) {
	ctx := context.Background()
	r, _ := newTestRepo(t)
	fixed := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	r.now = func() time.Time { return fixed }

	a, _ := r.SaveMeeting(ctx, entities.NewMeeting{Title: "a"})
	b, _ := r.SaveMeeting(ctx, entities.NewMeeting{Title: "b"})
	got, _, err := r.ListMeetings(ctx, 0, 10)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 2 || got[0].ID != b || got[1].ID != a {
		t.Errorf("order = %+v, want %d then %d", got, b, a)
	}
}

func TestListRejectsInvalidPagination(t *testing.T) {
	r, _ := newTestRepo(t)
	for _, tc := range []struct{ page, size int }{{0, 0}, {0, -1}, {-1, 5}} {
		if _, _, err := r.ListMeetings(context.Background(), tc.page, tc.size); !errors.Is(err, entities.ErrInvalidPagination) {
			t.Errorf("ListMeetings(%d, %d) err = %v", tc.page, tc.size, err)
		}
	}
}

func TestSaveFailureLeavesNoOrphans(t *testing.T) {
	ctx := context.Background()
	r, db := newTestRepo(t)

	injected := errors.New("disk full")
	var actionItems int
	r.insert = func(ctx context.Context, conn table.Conn, name string, row table.Row) (int64, error) {
		if name == TableActionItems {
			actionItems++
			if actionItems == 2 {
				return 0, injected
			}
		}
		return table.SingleInsert(ctx, conn, name, row)
	}

	if _, err := r.SaveMeeting(ctx, sampleMeeting()); !errors.Is(err, injected) {
		t.Fatalf("err = %v, want injected failure", err)
	}
	for _, tbl := range []string{TableMeetings, TableKeyPoints, TableDecisions, TableActionItems} {
		if n := countRows(t, db, tbl); n != 0 {
			t.Errorf("%s has %d rows after failed save", tbl, n)
		}
	}
	n, err := r.CountMeetings(ctx)
	if err != nil || n != 0 {
		t.Errorf("CountMeetings = %d, %v", n, err)
	}
}

func TestCountMeetings(t *testing.T) {
	ctx := context.Background()
	r, _ := newTestRepo(t)
	for i := 0; i < 3; i++ {
		if _, err := r.SaveMeeting(ctx, sampleMeeting()); err != nil {
			t.Fatalf("save: %v", err)
		}
	}
	n, err := r.CountMeetings(ctx)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 3 {
		t.Errorf("count = %d, want 3", n)
	}
}
