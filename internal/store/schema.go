package store

import (
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
)

var (
	// DecksColumns holds the columns for the "decks" table.
	DecksColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt64, Increment: true},
		{Name: "user_id", Type: field.TypeString},
		{Name: "name", Type: field.TypeString},
		{Name: "created_at", Type: field.TypeTime},
	}
	// DecksTable holds the schema information for the "decks" table.
	DecksTable = &schema.Table{
		Name:       "decks",
		Columns:    DecksColumns,
		PrimaryKey: []*schema.Column{DecksColumns[0]},
		Indexes: []*schema.Index{
			{Name: "deck_user_id_name", Unique: true, Columns: []*schema.Column{DecksColumns[1], DecksColumns[2]}},
		},
	}

	// CardsColumns holds the columns for the "cards" table.
	CardsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt64, Increment: true},
		{Name: "deck_id", Type: field.TypeInt64},
		{Name: "front", Type: field.TypeString, Size: 500},
		{Name: "back", Type: field.TypeString, Size: 500},
		{Name: "maturity", Type: field.TypeString, Default: "new"},
		{Name: "interval_days", Type: field.TypeInt, Default: 1},
		{Name: "ease_factor", Type: field.TypeFloat64, Default: 2.5},
		{Name: "next_review_at", Type: field.TypeTime},
		{Name: "review_count", Type: field.TypeInt, Default: 0},
		{Name: "correct_review_count", Type: field.TypeInt, Default: 0},
		{Name: "last_reviewed_at", Type: field.TypeTime, Nullable: true},
		{Name: "created_at", Type: field.TypeTime},
	}
	// CardsTable holds the schema information for the "cards" table.
	CardsTable = &schema.Table{
		Name:       "cards",
		Columns:    CardsColumns,
		PrimaryKey: []*schema.Column{CardsColumns[0]},
		ForeignKeys: []*schema.ForeignKey{
			{
				Symbol:     "cards_decks_cards",
				Columns:    []*schema.Column{CardsColumns[1]},
				RefColumns: []*schema.Column{DecksColumns[0]},
				OnDelete:   schema.Cascade,
			},
		},
		Indexes: []*schema.Index{
			{Name: "card_deck_id_next_review_at", Columns: []*schema.Column{CardsColumns[1], CardsColumns[7]}},
		},
	}

	// ProgressColumns holds the columns for the "progress" table.
	ProgressColumns = []*schema.Column{
		{Name: "user_id", Type: field.TypeString},
		{Name: "current_streak", Type: field.TypeInt, Default: 0},
		{Name: "longest_streak", Type: field.TypeInt, Default: 0},
		{Name: "last_review_date", Type: field.TypeString, Default: ""},
		{Name: "daily_progress", Type: field.TypeJSON},
		{Name: "total_reviews", Type: field.TypeInt, Default: 0},
		{Name: "correct_reviews", Type: field.TypeInt, Default: 0},
		{Name: "achievements", Type: field.TypeJSON},
		{Name: "level", Type: field.TypeString, Default: "A2"},
		{Name: "daily_goal", Type: field.TypeInt, Default: 20},
		{Name: "updated_at", Type: field.TypeTime},
	}
	// ProgressTable holds the schema information for the "progress" table.
	ProgressTable = &schema.Table{
		Name:       "progress",
		Columns:    ProgressColumns,
		PrimaryKey: []*schema.Column{ProgressColumns[0]},
	}

	// ReviewEventsColumns holds the columns for the "review_events" table.
	ReviewEventsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "sequence", Type: field.TypeInt64, Unique: true},
		{Name: "timestamp", Type: field.TypeTime},
		{Name: "session_id", Type: field.TypeString},
		{Name: "user_id", Type: field.TypeString},
		{Name: "card_id", Type: field.TypeInt64},
		{Name: "quality", Type: field.TypeInt},
		{Name: "correct", Type: field.TypeBool},
		{Name: "interval_before", Type: field.TypeInt},
		{Name: "interval_after", Type: field.TypeInt},
		{Name: "ease_after", Type: field.TypeFloat64},
		{Name: "maturity_after", Type: field.TypeString},
	}
	// ReviewEventsTable holds the schema information for the "review_events" table.
	ReviewEventsTable = &schema.Table{
		Name:       "review_events",
		Columns:    ReviewEventsColumns,
		PrimaryKey: []*schema.Column{ReviewEventsColumns[0]},
		Indexes: []*schema.Index{
			{Name: "reviewevent_timestamp", Columns: []*schema.Column{ReviewEventsColumns[2]}},
			{Name: "reviewevent_card_id", Columns: []*schema.Column{ReviewEventsColumns[5]}},
		},
	}

	// SessionEventsColumns holds the columns for the "session_events" table.
	SessionEventsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "sequence", Type: field.TypeInt64, Unique: true},
		{Name: "timestamp", Type: field.TypeTime},
		{Name: "session_id", Type: field.TypeString},
		{Name: "user_id", Type: field.TypeString},
		{Name: "deck_id", Type: field.TypeInt64},
		{Name: "action", Type: field.TypeString},
		{Name: "planned_count", Type: field.TypeInt},
		{Name: "graded_count", Type: field.TypeInt},
		{Name: "correct_count", Type: field.TypeInt},
		{Name: "cancelled", Type: field.TypeBool, Default: false},
		{Name: "duration_secs", Type: field.TypeInt},
	}
	// SessionEventsTable holds the schema information for the "session_events" table.
	SessionEventsTable = &schema.Table{
		Name:       "session_events",
		Columns:    SessionEventsColumns,
		PrimaryKey: []*schema.Column{SessionEventsColumns[0]},
		Indexes: []*schema.Index{
			{Name: "sessionevent_timestamp", Columns: []*schema.Column{SessionEventsColumns[2]}},
			{Name: "sessionevent_user_id_action", Columns: []*schema.Column{SessionEventsColumns[4], SessionEventsColumns[6]}},
		},
	}

	// LlmRequestEventsColumns holds the columns for the "llm_request_events" table.
	LlmRequestEventsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "sequence", Type: field.TypeInt64, Unique: true},
		{Name: "timestamp", Type: field.TypeTime},
		{Name: "provider", Type: field.TypeString},
		{Name: "model", Type: field.TypeString},
		{Name: "purpose", Type: field.TypeString},
		{Name: "input_tokens", Type: field.TypeInt},
		{Name: "output_tokens", Type: field.TypeInt},
		{Name: "latency_ms", Type: field.TypeInt64},
		{Name: "success", Type: field.TypeBool},
		{Name: "error_message", Type: field.TypeString, Size: 2147483647, Default: ""},
		{Name: "request_body", Type: field.TypeString, Size: 2147483647, Default: ""},
		{Name: "response_body", Type: field.TypeString, Size: 2147483647, Default: ""},
	}
	// LlmRequestEventsTable holds the schema information for the "llm_request_events" table.
	LlmRequestEventsTable = &schema.Table{
		Name:       "llm_request_events",
		Columns:    LlmRequestEventsColumns,
		PrimaryKey: []*schema.Column{LlmRequestEventsColumns[0]},
		Indexes: []*schema.Index{
			{Name: "llmrequestevent_timestamp", Columns: []*schema.Column{LlmRequestEventsColumns[2]}},
			{Name: "llmrequestevent_purpose", Columns: []*schema.Column{LlmRequestEventsColumns[5]}},
		},
	}

	// SequenceColumns holds the columns for the single-row "global_sequence" table.
	SequenceColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt},
		{Name: "next_val", Type: field.TypeInt64, Default: 1},
	}
	// SequenceTable holds the schema information for the "global_sequence" table.
	SequenceTable = &schema.Table{
		Name:       "global_sequence",
		Columns:    SequenceColumns,
		PrimaryKey: []*schema.Column{SequenceColumns[0]},
	}

	// Tables holds all the tables in the schema.
	Tables = []*schema.Table{
		SequenceTable,
		DecksTable,
		CardsTable,
		ProgressTable,
		ReviewEventsTable,
		SessionEventsTable,
		LlmRequestEventsTable,
	}
)

func init() {
	CardsTable.ForeignKeys[0].RefTable = DecksTable
}
