package service

import (
	"github.com/pkg/errors"
	"github.com/wirefeed/wirefeed/model"
	"github.com/wirefeed/wirefeed/utils"
	"gorm.io/gorm"
)

// FeedPageSize is the fixed page size shared by every feed.
const FeedPageSize = 10

// FeedService builds ordered, paginated views of posts. Order is
// strictly reverse chronological, ties broken by higher id first.
type FeedService struct {
	DB *gorm.DB
}

// GlobalFeed pages over all posts. viewerId 0 means anonymous: liked
// flags are omitted from the views.
func (s *FeedService) GlobalFeed(viewerId uint, page int) (*model.FeedPage, error) {
	return s.buildPage(viewerId, page, func(tx *gorm.DB) *gorm.DB {
		return tx
	})
}

// FollowingFeed pages over posts authored by users the viewer follows.
// A viewer following no one gets an empty first page, not an error.
func (s *FeedService) FollowingFeed(viewerId uint, page int) (*model.FeedPage, error) {
	followed := s.DB.Model(&model.Follow{}).
		Select("following_id").
		Where("follower_id = ?", viewerId)
	return s.buildPage(viewerId, page, func(tx *gorm.DB) *gorm.DB {
		return tx.Where("user_id IN (?)", followed)
	})
}

// UserFeed pages over posts authored by the named user.
func (s *FeedService) UserFeed(username string, viewerId uint, page int) (*model.FeedPage, error) {
	var owner model.User
	queryResult := s.DB.Where("username = ?", username).First(&owner)
	if errors.Is(queryResult.Error, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if queryResult.Error != nil {
		return nil, errors.Wrap(queryResult.Error, "get user for feed")
	}

	return s.buildPage(viewerId, page, func(tx *gorm.DB) *gorm.DB {
		return tx.Where("user_id = ?", owner.Id)
	})
}

// clampPage maps any requested page onto the nearest valid 1-based
// page, mirroring the fallback behavior of a standard paginator.
func clampPage(page int, numPages int) int {
	if page < 1 {
		return 1
	}
	return utils.Min(page, numPages)
}

// buildPage runs the shared pagination pipeline: count matching posts,
// clamp the requested page, fetch one page of posts with owners, then
// resolve like counts and the viewer's liked set with one query each.
func (s *FeedService) buildPage(viewerId uint, page int, scope func(tx *gorm.DB) *gorm.DB) (*model.FeedPage, error) {
	var total int64
	if err := scope(s.DB.Model(&model.Post{})).Count(&total).Error; err != nil {
		return nil, errors.Wrap(err, "count feed posts")
	}

	numPages := int((total + FeedPageSize - 1) / FeedPageSize)
	if numPages < 1 {
		numPages = 1
	}
	page = clampPage(page, numPages)

	var posts []*model.Post
	err := scope(s.DB.Model(&model.Post{})).
		Preload("User").
		Order("timestamp desc, id desc").
		Offset((page - 1) * FeedPageSize).
		Limit(FeedPageSize).
		Find(&posts).Error
	if err != nil {
		return nil, errors.Wrap(err, "fetch feed posts")
	}

	postIds := make([]uint, 0, len(posts))
	for _, post := range posts {
		postIds = append(postIds, post.Id)
	}

	likeCounts := map[uint]int64{}
	viewerLikes := map[uint]bool{}
	if len(postIds) > 0 {
		var counts []struct {
			PostID uint
			Total  int64
		}
		err = s.DB.Model(&model.Like{}).
			Select("post_id, count(*) as total").
			Where("post_id IN ?", postIds).
			Group("post_id").
			Scan(&counts).Error
		if err != nil {
			return nil, errors.Wrap(err, "count feed likes")
		}
		for _, c := range counts {
			likeCounts[c.PostID] = c.Total
		}

		if viewerId != 0 {
			var likedIds []uint
			err = s.DB.Model(&model.Like{}).
				Where("user_id = ? AND post_id IN ?", viewerId, postIds).
				Pluck("post_id", &likedIds).Error
			if err != nil {
				return nil, errors.Wrap(err, "fetch viewer likes")
			}
			for _, id := range likedIds {
				viewerLikes[id] = true
			}
		}
	}

	views := make([]*model.PostView, 0, len(posts))
	for _, post := range posts {
		view := &model.PostView{
			Id:        post.Id,
			User:      post.User.Username,
			Content:   post.Content,
			Timestamp: post.Timestamp.Format(model.TimestampFormat),
			Likes:     likeCounts[post.Id],
		}
		if viewerId != 0 {
			liked := viewerLikes[post.Id]
			view.Liked = &liked
		}
		views = append(views, view)
	}

	return &model.FeedPage{
		Page:        page,
		NumPages:    numPages,
		HasNext:     page < numPages,
		HasPrevious: page > 1,
		Total:       total,
		Posts:       views,
	}, nil
}
