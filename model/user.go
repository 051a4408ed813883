package model

import "time"

/*

User is an account that can author posts, like posts and follow other users

Id: primary key, auto incremented
CreatedAt: time when entity is created
Username: unique handle, used in profile URLs
Email: contact email, not required to be unique
PasswordHash: bcrypt hash of the password, opaque to everything but auth
IsActive: inactive users cannot authenticate
IsStaff: staff users are allowed into admin tooling

Posts: posts authored by this user, "has-many" relation
Likes: likes created by this user, "has-many" relation
Following: outgoing follow edges (users this user follows)
Followers: incoming follow edges (users following this user)

*/

type User struct {
	Id           uint `gorm:"primaryKey"`
	CreatedAt    time.Time
	Username     string `gorm:"uniqueIndex;size:150;not null"`
	Email        string
	PasswordHash string
	IsActive     bool `gorm:"default:true"`
	IsStaff      bool

	Posts     []*Post   `gorm:"foreignKey:UserID"`
	Likes     []*Like   `gorm:"foreignKey:UserID"`
	Following []*Follow `gorm:"foreignKey:FollowerID"`
	Followers []*Follow `gorm:"foreignKey:FollowingID"`
}
