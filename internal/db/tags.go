package db

import (
	"context"
	"time"
)

// AllTags returns the distinct tag values across all notes, sorted.
func (d *DB) AllTags(ctx context.Context) ([]string, error) {
	rows, err := d.conn.QueryContext(ctx, `
		SELECT DISTINCT tag FROM note_tags ORDER BY tag
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tags []string
	for rows.Next() {
		var tag string
		if err := rows.Scan(&tag); err != nil {
			return nil, err
		}
		tags = append(tags, tag)
	}
	return tags, rows.Err()
}

// DetailedTags returns one TagStat per distinct tag, busiest first. Counts
// come from note_tags, which holds one row per note per distinct tag, so a
// note never counts twice for a tag it repeats. Notes without tags
// contribute nothing.
func (d *DB) DetailedTags(ctx context.Context) ([]TagStat, error) {
	rows, err := d.conn.QueryContext(ctx, `
		SELECT t.tag, COUNT(*), MAX(n.updated_at)
		FROM note_tags t
		JOIN notes n ON n.id = t.note_id
		GROUP BY t.tag
		ORDER BY COUNT(*) DESC, t.tag ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var stats []TagStat
	for rows.Next() {
		var (
			s  TagStat
			ms int64
		)
		if err := rows.Scan(&s.Name, &s.Count, &ms); err != nil {
			return nil, err
		}
		s.LastModified = time.UnixMilli(ms).UTC()
		stats = append(stats, s)
	}
	return stats, rows.Err()
}
