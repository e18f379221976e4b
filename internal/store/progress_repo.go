package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"

	"github.com/abhisek/vocabo/internal/progress"
)

// progressRepo implements ProgressRepo over the progress table.
type progressRepo struct {
	db  *sql.DB
	now func() time.Time
}

func (r *progressRepo) LoadProgress(ctx context.Context, userID string) (progress.UserProgress, error) {
	b := builder()
	rows, err := query(ctx, r.db, b.Select(
		"current_streak", "longest_streak", "last_review_date", "daily_progress",
		"total_reviews", "correct_reviews", "achievements", "level", "daily_goal",
	).From(b.Table("progress")).Where(entsql.EQ("user_id", userID)))
	if err != nil {
		return progress.UserProgress{}, fmt.Errorf("query progress: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return progress.UserProgress{}, fmt.Errorf("query progress: %w", err)
		}
		return progress.New(), nil
	}

	var (
		p                    progress.UserProgress
		lastDate, level      string
		dailyRaw, achieveRaw []byte
	)
	if err := rows.Scan(&p.CurrentStreak, &p.LongestStreak, &lastDate, &dailyRaw,
		&p.TotalReviews, &p.CorrectReviews, &achieveRaw, &level, &p.DailyGoal); err != nil {
		return progress.UserProgress{}, fmt.Errorf("scan progress: %w", err)
	}
	p.LastReviewDate = progress.Day(lastDate)
	p.Level = progress.Level(level)
	if len(dailyRaw) > 0 {
		if err := json.Unmarshal(dailyRaw, &p.DailyProgress); err != nil {
			return progress.UserProgress{}, fmt.Errorf("decode daily progress: %w", err)
		}
	}
	if len(achieveRaw) > 0 {
		if err := json.Unmarshal(achieveRaw, &p.Achievements); err != nil {
			return progress.UserProgress{}, fmt.Errorf("decode achievements: %w", err)
		}
	}
	for a, at := range p.Achievements {
		p.Achievements[a] = at.UTC()
	}
	return p.Clone(), nil
}

func (r *progressRepo) SaveProgress(ctx context.Context, userID string, p progress.UserProgress) error {
	p = p.Clone()
	daily, err := json.Marshal(p.DailyProgress)
	if err != nil {
		return fmt.Errorf("encode daily progress: %w", err)
	}
	achievements, err := json.Marshal(p.Achievements)
	if err != nil {
		return fmt.Errorf("encode achievements: %w", err)
	}

	_, err = exec(ctx, r.db, builder().Insert("progress").
		Columns("user_id", "current_streak", "longest_streak", "last_review_date", "daily_progress",
			"total_reviews", "correct_reviews", "achievements", "level", "daily_goal", "updated_at").
		Values(userID, p.CurrentStreak, p.LongestStreak, string(p.LastReviewDate), string(daily),
			p.TotalReviews, p.CorrectReviews, string(achievements), string(p.Level), p.DailyGoal, r.now()).
		OnConflict(
			entsql.ConflictColumns("user_id"),
			entsql.ResolveWithNewValues(),
		))
	if err != nil {
		return fmt.Errorf("save progress: %w", err)
	}
	return nil
}
