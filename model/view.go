package model

// TimestampFormat is how post timestamps are rendered in every API response.
const TimestampFormat = "2006-01-02 15:04:05"

// PostView is the API shape of a post inside a feed page or a post
// detail response. Liked is only set when the request carries a known
// viewer, it stays nil for anonymous reads.
type PostView struct {
	Id        uint   `json:"id"`
	User      string `json:"user"`
	Content   string `json:"content"`
	Timestamp string `json:"timestamp"`
	Likes     int64  `json:"likes"`
	Liked     *bool  `json:"liked,omitempty"`
}

// FeedPage is one page of a feed. Page is 1-based and always within
// [1, NumPages]; out of range requests are clamped to the nearest
// valid page before the query runs.
type FeedPage struct {
	Page        int         `json:"page"`
	NumPages    int         `json:"num_pages"`
	HasNext     bool        `json:"has_next"`
	HasPrevious bool        `json:"has_previous"`
	Total       int64       `json:"total"`
	Posts       []*PostView `json:"posts"`
}

// LikeToggle is the outcome of a like toggle: the resulting state for
// the acting user plus the fresh total on the post.
type LikeToggle struct {
	Liked bool  `json:"liked"`
	Likes int64 `json:"likes"`
}

// FollowToggle is the outcome of a follow toggle.
type FollowToggle struct {
	Following      bool  `json:"following"`
	FollowersCount int64 `json:"followers_count"`
}

// Profile is the API shape of a user profile page.
type Profile struct {
	Username       string    `json:"username"`
	FollowersCount int64     `json:"followers_count"`
	FollowingCount int64     `json:"following_count"`
	IsFollowing    bool      `json:"is_following"`
	Posts          *FeedPage `json:"posts"`
}
