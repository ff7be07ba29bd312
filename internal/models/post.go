// Package models contains data structures for the application's domain models.
package models

import (
	"encoding/json"
	"time"
)

// Post is a top-level content unit authored by a username.
type Post struct {
	ID       string `gorm:"primaryKey" json:"id"`
	Username string `gorm:"not null" json:"username"`
	Content  string `gorm:"type:text;not null" json:"content"`
	// LikesCount is not persisted; computed at query time
	LikesCount int `gorm:"->;-:migration" json:"likesCount"`
	// CommentsCount is not persisted; computed at query time
	CommentsCount int        `gorm:"->;-:migration" json:"commentsCount"`
	CreatedAt     time.Time  `gorm:"not null;index;autoCreateTime:false" json:"createdAt"`
	UpdatedAt     *time.Time `gorm:"autoUpdateTime:false" json:"updatedAt"`
}

// MarshalJSON renders timestamps with TimestampLayout.
func (p Post) MarshalJSON() ([]byte, error) {
	type alias Post
	return json.Marshal(struct {
		alias
		CreatedAt string  `json:"createdAt"`
		UpdatedAt *string `json:"updatedAt"`
	}{
		alias:     alias(p),
		CreatedAt: FormatTime(p.CreatedAt),
		UpdatedAt: formatTimePtr(p.UpdatedAt),
	})
}
