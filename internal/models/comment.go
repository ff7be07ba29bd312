package models

import (
	"encoding/json"
	"time"
)

// Comment is a reply attached to a Post.
type Comment struct {
	ID        string     `gorm:"primaryKey" json:"id"`
	PostID    string     `gorm:"not null;index" json:"postId"`
	Username  string     `gorm:"not null" json:"username"`
	Content   string     `gorm:"type:text;not null" json:"content"`
	CreatedAt time.Time  `gorm:"not null;autoCreateTime:false" json:"createdAt"`
	UpdatedAt *time.Time `gorm:"autoUpdateTime:false" json:"updatedAt"`
}

// MarshalJSON renders timestamps with TimestampLayout.
func (c Comment) MarshalJSON() ([]byte, error) {
	type alias Comment
	return json.Marshal(struct {
		alias
		CreatedAt string  `json:"createdAt"`
		UpdatedAt *string `json:"updatedAt"`
	}{
		alias:     alias(c),
		CreatedAt: FormatTime(c.CreatedAt),
		UpdatedAt: formatTimePtr(c.UpdatedAt),
	})
}
