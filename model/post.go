package model

import "time"

// MaxPostContentLength caps post content after whitespace trimming.
const MaxPostContentLength = 1000

/*

Post is a piece of user authored text content

Id: primary key, auto incremented. Feed order ties on Timestamp are broken
    by Id so that later inserts rank first
CreatedAt: time when entity is created
UserID:
User: owner of the post, "belongs-to" relation. Deleting the owner deletes
      the post
Content: plain text, 1 to 1000 characters after trimming. The only mutable
         field, and only by the owner
Timestamp: authoring time, used for feed ordering. Never updated

LikeCount: derived count of likes, filled in by queries, never persisted

*/

type Post struct {
	Id        uint `gorm:"primaryKey"`
	CreatedAt time.Time
	UserID    uint `gorm:"not null;index;constraint:OnDelete:CASCADE;"`
	User      User
	Content   string    `gorm:"size:1000;not null"`
	Timestamp time.Time `gorm:"index;not null"`

	LikeCount int64 `gorm:"-"`
}
