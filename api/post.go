package api

type Author struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Image string `json:"image,omitempty"`
}

type PostCounts struct {
	LikedBy  int `json:"likedBy"`
	Comments int `json:"comments"`
}

// FeedPost is a post summary card in JSON form.
type FeedPost struct {
	ID             int64      `json:"id"`
	Title          string     `json:"title"`
	URL            string     `json:"url"`
	Author         Author     `json:"author"`
	CreatedAt      string     `json:"createdAt"`
	Hidden         bool       `json:"hidden"`
	Summary        string     `json:"summary"`
	HasMoreContent bool       `json:"hasMoreContent"`
	IsLiked        bool       `json:"isLiked"`
	Counts         PostCounts `json:"counts"`
}

type FeedPage struct {
	Posts    []FeedPost `json:"posts"`
	Page     int        `json:"page"`
	PageSize int        `json:"pageSize"`
	HasMore  bool       `json:"hasMore"`
}

type SetHiddenRequest struct {
	Hidden *bool `json:"hidden" binding:"required"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
