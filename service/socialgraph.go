package service

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/wirefeed/wirefeed/model"
	"gorm.io/gorm"
)

// SocialGraphService owns the Follow and Like edges. It is the only
// place with toggle semantics: an edge is created when absent and
// deleted when present, never updated.
type SocialGraphService struct {
	DB *gorm.DB
}

// uniqueViolation reports whether err came from inserting a row that
// lost a race on a composite unique index. Matching on the message
// keeps it portable across the postgres and sqlite drivers.
func uniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "UNIQUE constraint")
}

// ToggleLike flips the existence of the Like(userId, postId) edge and
// returns the resulting state plus the fresh total on the post. The
// read, the write and the count run in one transaction so two
// concurrent toggles can never insert the edge twice; the loser of
// such a race gets ErrConflict and may retry once.
func (s *SocialGraphService) ToggleLike(userId uint, postId uint) (*model.LikeToggle, error) {
	var result model.LikeToggle
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var post model.Post
		queryResult := tx.Where("id = ?", postId).First(&post)
		if errors.Is(queryResult.Error, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		if queryResult.Error != nil {
			return errors.Wrap(queryResult.Error, "get post for like toggle")
		}

		var like model.Like
		queryResult = tx.Where("user_id = ? AND post_id = ?", userId, postId).First(&like)
		switch {
		case queryResult.Error == nil:
			if err := tx.Delete(&like).Error; err != nil {
				return errors.Wrap(err, "delete like")
			}
			result.Liked = false
		case errors.Is(queryResult.Error, gorm.ErrRecordNotFound):
			like = model.Like{UserID: userId, PostID: postId}
			if err := tx.Create(&like).Error; err != nil {
				if uniqueViolation(err) {
					return ErrConflict
				}
				return errors.Wrap(err, "create like")
			}
			result.Liked = true
		default:
			return errors.Wrap(queryResult.Error, "get like for toggle")
		}

		return tx.Model(&model.Like{}).Where("post_id = ?", postId).Count(&result.Likes).Error
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// ToggleFollow flips the existence of the Follow edge from followerId
// towards the user named targetUsername, symmetric in shape to
// ToggleLike. Following yourself is rejected regardless of prior state.
func (s *SocialGraphService) ToggleFollow(followerId uint, targetUsername string) (*model.FollowToggle, error) {
	var result model.FollowToggle
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var target model.User
		queryResult := tx.Where("username = ?", targetUsername).First(&target)
		if errors.Is(queryResult.Error, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		if queryResult.Error != nil {
			return errors.Wrap(queryResult.Error, "get user for follow toggle")
		}

		if target.Id == followerId {
			return ErrSelfFollow
		}

		var follow model.Follow
		queryResult = tx.Where("follower_id = ? AND following_id = ?", followerId, target.Id).First(&follow)
		switch {
		case queryResult.Error == nil:
			if err := tx.Delete(&follow).Error; err != nil {
				return errors.Wrap(err, "delete follow")
			}
			result.Following = false
		case errors.Is(queryResult.Error, gorm.ErrRecordNotFound):
			follow = model.Follow{FollowerID: followerId, FollowingID: target.Id}
			if err := tx.Create(&follow).Error; err != nil {
				if uniqueViolation(err) {
					return ErrConflict
				}
				return errors.Wrap(err, "create follow")
			}
			result.Following = true
		default:
			return errors.Wrap(queryResult.Error, "get follow for toggle")
		}

		return tx.Model(&model.Follow{}).Where("following_id = ?", target.Id).Count(&result.FollowersCount).Error
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// IsFollowing is a pure existence check on the follow edge.
func (s *SocialGraphService) IsFollowing(followerId uint, targetId uint) (bool, error) {
	var count int64
	err := s.DB.Model(&model.Follow{}).
		Where("follower_id = ? AND following_id = ?", followerId, targetId).
		Count(&count).Error
	if err != nil {
		return false, errors.Wrap(err, "check follow edge")
	}
	return count > 0, nil
}

// FollowersCount counts incoming follow edges of a user.
func (s *SocialGraphService) FollowersCount(userId uint) (int64, error) {
	var count int64
	err := s.DB.Model(&model.Follow{}).Where("following_id = ?", userId).Count(&count).Error
	return count, errors.Wrap(err, "count followers")
}

// FollowingCount counts outgoing follow edges of a user.
func (s *SocialGraphService) FollowingCount(userId uint) (int64, error) {
	var count int64
	err := s.DB.Model(&model.Follow{}).Where("follower_id = ?", userId).Count(&count).Error
	return count, errors.Wrap(err, "count following")
}
