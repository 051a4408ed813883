package model

import "time"

/*

Like is an edge recording that a user liked a post

Id: primary key, auto incremented
UserID: user who liked, part of the composite unique index
PostID: post being liked, part of the composite unique index
CreatedAt: time when relation is created

At most one Like exists per (UserID, PostID) pair, enforced by the
composite unique index. Liking your own post is permitted.

*/

type Like struct {
	Id        uint `gorm:"primaryKey"`
	UserID    uint `gorm:"not null;uniqueIndex:idx_user_post;constraint:OnDelete:CASCADE;"`
	User      User `gorm:"foreignKey:UserID"`
	PostID    uint `gorm:"not null;uniqueIndex:idx_user_post;constraint:OnDelete:CASCADE;"`
	Post      Post `gorm:"foreignKey:PostID"`
	CreatedAt time.Time
}
