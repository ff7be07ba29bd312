package models

import (
	"encoding/json"
	"time"
)

// Like marks a (post, username) endorsement.
// The pair is the primary key, so a username can like a post at most once.
type Like struct {
	PostID    string    `gorm:"primaryKey" json:"postId"`
	Username  string    `gorm:"primaryKey" json:"username"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime:false" json:"createdAt"`
}

// MarshalJSON renders CreatedAt with TimestampLayout.
func (l Like) MarshalJSON() ([]byte, error) {
	type alias Like
	return json.Marshal(struct {
		alias
		CreatedAt string `json:"createdAt"`
	}{
		alias:     alias(l),
		CreatedAt: FormatTime(l.CreatedAt),
	})
}
