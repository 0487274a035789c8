package repository

import (
	"context"
	"fmt"

	"github.com/CS222-UIUC/fa25-fa25-team027/pkg/table"
)

// Table names
const (
	TableMeetings    = "MEETINGS"
	TableKeyPoints   = "KEY_POINTS"
	TableDecisions   = "DECISIONS"
	TableActionItems = "ACTION_ITEMS"
)

// createdAtLayout is fixed width so that lexical order is chronological.
const createdAtLayout = "2006-01-02T15:04:05.000000Z"

var (
	meetingsSpec = table.NewSpec(TableMeetings).
			Column("ID", "INTEGER").
			Column("CREATED_AT", "TEXT", "NOT NULL").
			Column("TITLE", "TEXT", "NOT NULL").
			Column("TRANSCRIPT", "TEXT").
			Column("SUMMARY_HEADING", "TEXT").
			PrimaryKey("ID").
			AutoIncrement().
			MustBuild()

	keyPointsSpec = childSpec(TableKeyPoints, "POINT_ORDER",
		table.Column{Name: "POINT", Type: "TEXT", Modifiers: []string{"NOT NULL"}})

	decisionsSpec = childSpec(TableDecisions, "DECISION_ORDER",
		table.Column{Name: "DECISION", Type: "TEXT", Modifiers: []string{"NOT NULL"}})

	actionItemsSpec = childSpec(TableActionItems, "ITEM_ORDER",
		table.Column{Name: "ASSIGNEE", Type: "TEXT"},
		table.Column{Name: "TASK", Type: "TEXT", Modifiers: []string{"NOT NULL"}},
		table.Column{Name: "DEADLINE", Type: "TEXT"})
)

// childSpec declares a table owned by MEETINGS with a dense order column.
func childSpec(name, orderColumn string, cols ...table.Column) table.Spec {
	b := table.NewSpec(name).
		Column("ID", "INTEGER").
		Column("MEETING_ID", "INTEGER", "NOT NULL")
	for _, c := range cols {
		b = b.Column(c.Name, c.Type, c.Modifiers...)
	}
	return b.Column(orderColumn, "INTEGER", "NOT NULL").
		PrimaryKey("ID").
		AutoIncrement().
		ForeignKey(table.ForeignKey{Column: "MEETING_ID", RefTable: TableMeetings, RefColumn: "ID", OnDelete: "CASCADE"}).
		MustBuild()
}

// EnsureSchema creates the meeting tables if they do not exist. Parents are
// created before children.
func EnsureSchema(ctx context.Context, conn table.Conn) error {
	for _, spec := range []table.Spec{meetingsSpec, keyPointsSpec, decisionsSpec, actionItemsSpec} {
		if err := table.CreateTable(ctx, conn, spec); err != nil {
			return fmt.Errorf("failed to create table %s: %w", spec.Name, err)
		}
	}
	return nil
}

// childTables lists the child tables in deletion order.
var childTables = []string{TableKeyPoints, TableDecisions, TableActionItems}
