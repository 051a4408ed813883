package model

import "time"

/*

Follow is a directed edge between two users: follower -> following

Id: primary key, auto incremented
FollowerID: user who follows, part of the composite unique index
FollowingID: user being followed, part of the composite unique index
CreatedAt: time when relation is created

The (FollowerID, FollowingID) pair is unique so concurrent toggles can
never insert the edge twice. Self-follow is rejected at the service
level, the store alone does not guarantee it.

*/

type Follow struct {
	Id          uint `gorm:"primaryKey"`
	FollowerID  uint `gorm:"not null;uniqueIndex:idx_follower_following;constraint:OnDelete:CASCADE;"`
	Follower    User `gorm:"foreignKey:FollowerID"`
	FollowingID uint `gorm:"not null;uniqueIndex:idx_follower_following;constraint:OnDelete:CASCADE;"`
	Following   User `gorm:"foreignKey:FollowingID"`
	CreatedAt   time.Time
}
