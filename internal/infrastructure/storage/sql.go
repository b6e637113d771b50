package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"painradar/internal/domain"
	"painradar/internal/ports"
)

// schema creates the analytics tables. The statements are accepted by
// both Postgres and SQLite, so there is a single migration path.
const schema = `
CREATE TABLE IF NOT EXISTS matched_posts (
	id TEXT PRIMARY KEY,
	niche TEXT NOT NULL,
	channel TEXT NOT NULL,
	title TEXT NOT NULL,
	author TEXT,
	link TEXT,
	compound REAL NOT NULL,
	published_at TIMESTAMP,
	created_at TIMESTAMP NOT NULL
);

CREATE TABLE IF NOT EXISTS post_keywords (
	post_id TEXT NOT NULL,
	keyword TEXT NOT NULL,
	created_at TIMESTAMP NOT NULL,
	PRIMARY KEY (post_id, keyword)
);

CREATE TABLE IF NOT EXISTS pain_points (
	post_id TEXT NOT NULL,
	keyword TEXT NOT NULL,
	snippet TEXT NOT NULL,
	score REAL NOT NULL,
	severity TEXT NOT NULL,
	sentence_index INTEGER NOT NULL,
	created_at TIMESTAMP NOT NULL,
	PRIMARY KEY (post_id, keyword, sentence_index)
);

CREATE INDEX IF NOT EXISTS idx_post_keywords_keyword ON post_keywords(keyword, created_at);
CREATE INDEX IF NOT EXISTS idx_pain_points_keyword ON pain_points(keyword, created_at);
`

// SQLStore records matched posts and pain points and answers the
// frequency queries behind the trend scorer. The driver is chosen from
// the DSN: postgres:// URLs use lib/pq, anything else is a SQLite path.
type SQLStore struct {
	db      *sql.DB
	builder sq.StatementBuilderType
	now     func() time.Time
}

var (
	_ ports.PainRepository    = (*SQLStore)(nil)
	_ ports.FrequencyProvider = (*SQLStore)(nil)
)

// Open connects, applies the schema, and returns the store.
func Open(dsn string) (*SQLStore, error) {
	driver := "sqlite"
	placeholder := sq.PlaceholderFormat(sq.Question)
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		driver = "postgres"
		placeholder = sq.Dollar
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s database: %w", driver, err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping %s database: %w", driver, err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	return &SQLStore{
		db:      db,
		builder: sq.StatementBuilder.PlaceholderFormat(placeholder),
		now:     time.Now,
	}, nil
}

// Close releases the database connection.
func (s *SQLStore) Close() error {
	return s.db.Close()
}

// SavePost records the matched post and its matched keywords. Re-saving
// the same post is a no-op.
func (s *SQLStore) SavePost(ctx context.Context, match domain.Match) error {
	now := s.now().UTC()
	post := match.Post

	query, args, err := s.builder.
		Insert("matched_posts").
		Columns("id", "niche", "channel", "title", "author", "link", "compound", "published_at", "created_at").
		Values(post.ID, post.Niche, post.Channel, post.Title, post.Author, post.Link,
			match.Analysis.OverallSentiment, post.Published.UTC(), now).
		Suffix("ON CONFLICT (id) DO NOTHING").
		ToSql()
	if err != nil {
		return fmt.Errorf("build post insert: %w", err)
	}
	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert post %s: %w", post.ID, err)
	}

	for _, keyword := range match.Keywords {
		query, args, err := s.builder.
			Insert("post_keywords").
			Columns("post_id", "keyword", "created_at").
			Values(post.ID, keyword, now).
			Suffix("ON CONFLICT (post_id, keyword) DO NOTHING").
			ToSql()
		if err != nil {
			return fmt.Errorf("build keyword insert: %w", err)
		}
		if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("insert keyword %s for %s: %w", keyword, post.ID, err)
		}
	}
	return nil
}

// SavePainPoint records one extracted pain point for the post.
func (s *SQLStore) SavePainPoint(ctx context.Context, post domain.Post, point domain.PainPoint) error {
	query, args, err := s.builder.
		Insert("pain_points").
		Columns("post_id", "keyword", "snippet", "score", "severity", "sentence_index", "created_at").
		Values(post.ID, point.Keyword, point.Snippet, point.Score,
			string(point.Severity), point.SentenceIndex, s.now().UTC()).
		Suffix("ON CONFLICT (post_id, keyword, sentence_index) DO NOTHING").
		ToSql()
	if err != nil {
		return fmt.Errorf("build pain point insert: %w", err)
	}
	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert pain point %s/%s: %w", post.ID, point.Keyword, err)
	}
	return nil
}

// RecentCount counts keyword occurrences within the last days.
func (s *SQLStore) RecentCount(ctx context.Context, keyword string, days int) (int, error) {
	cutoff := s.now().UTC().AddDate(0, 0, -days)
	return s.countKeyword(ctx, keyword, sq.GtOrEq{"created_at": cutoff})
}

// BaselineCount counts keyword occurrences between daysStart and
// daysEnd ago, excluding the recent window.
func (s *SQLStore) BaselineCount(ctx context.Context, keyword string, daysStart, daysEnd int) (int, error) {
	now := s.now().UTC()
	from := now.AddDate(0, 0, -daysEnd)
	to := now.AddDate(0, 0, -daysStart)
	return s.countKeyword(ctx, keyword, sq.And{
		sq.GtOrEq{"created_at": from},
		sq.Lt{"created_at": to},
	})
}

func (s *SQLStore) countKeyword(ctx context.Context, keyword string, window sq.Sqlizer) (int, error) {
	query, args, err := s.builder.
		Select("COUNT(*)").
		From("post_keywords").
		Where(sq.Eq{"keyword": keyword}).
		Where(window).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build keyword count: %w", err)
	}

	var count int
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("count keyword %s: %w", keyword, err)
	}
	return count, nil
}

// KeywordFrequency returns the most frequent keywords of the last days.
func (s *SQLStore) KeywordFrequency(ctx context.Context, days, limit int) ([]ports.KeywordCount, error) {
	cutoff := s.now().UTC().AddDate(0, 0, -days)

	query, args, err := s.builder.
		Select("keyword", "COUNT(*) AS cnt").
		From("post_keywords").
		Where(sq.GtOrEq{"created_at": cutoff}).
		GroupBy("keyword").
		OrderBy("cnt DESC").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build frequency query: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query keyword frequency: %w", err)
	}
	defer rows.Close()

	var counts []ports.KeywordCount
	for rows.Next() {
		var kc ports.KeywordCount
		if err := rows.Scan(&kc.Keyword, &kc.Count); err != nil {
			return nil, fmt.Errorf("scan keyword count: %w", err)
		}
		counts = append(counts, kc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration: %w", err)
	}
	return counts, nil
}
