package service

import (
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/wirefeed/wirefeed/model"
	"gorm.io/gorm"
)

// PostService creates, fetches and edits posts. All mutations run as a
// single transaction against the store.
type PostService struct {
	DB *gorm.DB
}

// validatePostContent trims rawContent and enforces the 1..1000 length
// rule shared by create and edit.
func validatePostContent(rawContent string) (string, error) {
	content := strings.TrimSpace(rawContent)
	if content == "" {
		return "", &ValidationError{Reason: "Content cannot be empty."}
	}
	if len([]rune(content)) > model.MaxPostContentLength {
		return "", &ValidationError{Reason: "Content too long."}
	}
	return content, nil
}

// CreatePost persists a new post owned by ownerId with the current time
// as its timestamp. The returned post carries the owner and a like
// count of zero.
func (s *PostService) CreatePost(ownerId uint, rawContent string) (*model.Post, error) {
	content, err := validatePostContent(rawContent)
	if err != nil {
		return nil, err
	}

	post := model.Post{
		UserID:    ownerId,
		Content:   content,
		Timestamp: time.Now(),
	}
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&post).Error; err != nil {
			return errors.Wrap(err, "create post")
		}
		return tx.First(&post.User, ownerId).Error
	})
	if err != nil {
		return nil, err
	}

	post.LikeCount = 0
	return &post, nil
}

// GetPost fetches one post with its owner preloaded and LikeCount
// filled in.
func (s *PostService) GetPost(postId uint) (*model.Post, error) {
	var post model.Post
	queryResult := s.DB.Preload("User").Where("id = ?", postId).First(&post)
	if errors.Is(queryResult.Error, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if queryResult.Error != nil {
		return nil, errors.Wrap(queryResult.Error, "get post")
	}

	if err := s.DB.Model(&model.Like{}).Where("post_id = ?", postId).Count(&post.LikeCount).Error; err != nil {
		return nil, errors.Wrap(err, "count likes")
	}
	return &post, nil
}

// EditPost replaces the content of a post. Only the owner may edit, and
// only the content changes: owner and timestamp are left untouched.
func (s *PostService) EditPost(postId uint, editorId uint, rawContent string) (*model.Post, error) {
	var post model.Post
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		queryResult := tx.Preload("User").Where("id = ?", postId).First(&post)
		if errors.Is(queryResult.Error, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		if queryResult.Error != nil {
			return errors.Wrap(queryResult.Error, "get post for edit")
		}

		if post.UserID != editorId {
			return ErrForbidden
		}

		content, err := validatePostContent(rawContent)
		if err != nil {
			return err
		}

		if err := tx.Model(&post).Update("content", content).Error; err != nil {
			return errors.Wrap(err, "update post content")
		}
		post.Content = content
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &post, nil
}
