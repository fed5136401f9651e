package db

import (
	"fmt"
	"time"
)

// RelationType classifies a directed edge between two notes. The set is
// closed: unrecognized values are rejected at the boundary, never coerced
// to a default.
type RelationType string

const (
	RelationComment   RelationType = "Comment"
	RelationReference RelationType = "Reference"
	RelationLink      RelationType = "Link"
)

// ParseRelationType converts a wire string into a RelationType.
func ParseRelationType(s string) (RelationType, error) {
	switch RelationType(s) {
	case RelationComment, RelationReference, RelationLink:
		return RelationType(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidRelationType, s)
}

// Note represents a row in the notes table
type Note struct {
	ID        int64     `json:"id"`
	Content   string    `json:"content"`
	Tags      []string  `json:"tags"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Relation represents a row in the note_relations table
type Relation struct {
	ID           int64        `json:"id"`
	SourceNoteID int64        `json:"source_note_id"`
	TargetNoteID int64        `json:"target_note_id"`
	RelationType RelationType `json:"relation_type"`
	CreatedAt    time.Time    `json:"created_at"`
}

// TagStat summarizes one tag value: how many notes carry it and the most
// recent updated_at among them. Recomputed on every query, never stored.
type TagStat struct {
	Name         string    `json:"name"`
	Count        int       `json:"count"`
	LastModified time.Time `json:"last_modified"`
}

// Comment pairs a comment note with the edge attaching it to its target.
type Comment struct {
	Note     Note     `json:"note"`
	Relation Relation `json:"relation"`
}
