package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/wirefeed/wirefeed/model"
	"github.com/wirefeed/wirefeed/utils"
)

func TestCreatePost(t *testing.T) {
	db := utils.CreateTempDB(t)
	s := &PostService{DB: db}
	owner := utils.CreateTestUser(t, db, "alice")

	t.Run("valid content", func(t *testing.T) {
		post, err := s.CreatePost(owner.Id, "  hello world  ")
		require.NoError(t, err)
		require.NotZero(t, post.Id)
		require.Equal(t, "hello world", post.Content)
		require.Equal(t, "alice", post.User.Username)
		require.Equal(t, int64(0), post.LikeCount)
	})

	t.Run("content at max length", func(t *testing.T) {
		post, err := s.CreatePost(owner.Id, strings.Repeat("a", model.MaxPostContentLength))
		require.NoError(t, err)
		require.Equal(t, int64(0), post.LikeCount)
	})

	t.Run("empty content", func(t *testing.T) {
		_, err := s.CreatePost(owner.Id, "")
		require.True(t, IsValidation(err))
	})

	t.Run("whitespace only content", func(t *testing.T) {
		_, err := s.CreatePost(owner.Id, "   \n\t  ")
		require.True(t, IsValidation(err))
	})

	t.Run("content too long", func(t *testing.T) {
		_, err := s.CreatePost(owner.Id, strings.Repeat("a", model.MaxPostContentLength+1))
		require.True(t, IsValidation(err))
	})

	t.Run("nothing persisted on validation failure", func(t *testing.T) {
		var before int64
		require.NoError(t, db.Model(&model.Post{}).Count(&before).Error)
		_, err := s.CreatePost(owner.Id, " ")
		require.True(t, IsValidation(err))
		var after int64
		require.NoError(t, db.Model(&model.Post{}).Count(&after).Error)
		require.Equal(t, before, after)
	})
}

func TestGetPost(t *testing.T) {
	db := utils.CreateTempDB(t)
	s := &PostService{DB: db}
	graph := &SocialGraphService{DB: db}
	owner := utils.CreateTestUser(t, db, "alice")
	liker := utils.CreateTestUser(t, db, "bob")

	created, err := s.CreatePost(owner.Id, "a post")
	require.NoError(t, err)

	t.Run("missing post", func(t *testing.T) {
		_, err := s.GetPost(99999)
		require.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("like count is computed", func(t *testing.T) {
		_, err := graph.ToggleLike(liker.Id, created.Id)
		require.NoError(t, err)

		post, err := s.GetPost(created.Id)
		require.NoError(t, err)
		require.Equal(t, "a post", post.Content)
		require.Equal(t, "alice", post.User.Username)
		require.Equal(t, int64(1), post.LikeCount)
	})
}

func TestEditPost(t *testing.T) {
	db := utils.CreateTempDB(t)
	s := &PostService{DB: db}
	owner := utils.CreateTestUser(t, db, "alice")
	other := utils.CreateTestUser(t, db, "bob")

	created, err := s.CreatePost(owner.Id, "original")
	require.NoError(t, err)

	t.Run("missing post", func(t *testing.T) {
		_, err := s.EditPost(99999, owner.Id, "whatever")
		require.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("non owner is forbidden and content is unchanged", func(t *testing.T) {
		_, err := s.EditPost(created.Id, other.Id, "hijacked")
		require.ErrorIs(t, err, ErrForbidden)

		stored, err := s.GetPost(created.Id)
		require.NoError(t, err)
		require.Equal(t, "original", stored.Content)
	})

	t.Run("invalid content", func(t *testing.T) {
		_, err := s.EditPost(created.Id, owner.Id, "  ")
		require.True(t, IsValidation(err))

		_, err = s.EditPost(created.Id, owner.Id, strings.Repeat("b", model.MaxPostContentLength+1))
		require.True(t, IsValidation(err))
	})

	t.Run("owner edit updates content only", func(t *testing.T) {
		edited, err := s.EditPost(created.Id, owner.Id, "  revised  ")
		require.NoError(t, err)
		require.Equal(t, "revised", edited.Content)

		stored, err := s.GetPost(created.Id)
		require.NoError(t, err)
		require.Equal(t, "revised", stored.Content)
		require.Equal(t, created.UserID, stored.UserID)
		require.Equal(t, created.Timestamp.Unix(), stored.Timestamp.Unix())
	})
}
