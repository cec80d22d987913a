package feedback

import (
	"time"

	"pitboxBackend/domain/user"

	"gorm.io/gorm"
)

type (
	FeedbackCategory string

	FeedbackPost struct {
		gorm.Model
		UUID     string `gorm:"uniqueIndex"`
		Author   user.User
		AuthorID uint
		Title    string `gorm:"not null"`
		Body     string
		Category FeedbackCategory `gorm:"default:idea"`
		Votes    []FeedbackVote   `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE"`
	}

	// FeedbackVote rows are deleted for real on unvote. A soft delete would
	// leave the unique index occupied and block voting again.
	FeedbackVote struct {
		ID        uint `gorm:"primarykey"`
		CreatedAt time.Time
		PostID    uint `gorm:"uniqueIndex:idx_feedback_vote"`
		UserID    uint `gorm:"uniqueIndex:idx_feedback_vote"`
	}

	FeedbackIn struct {
		Title    string `json:"title" binding:"required"`
		Body     string `json:"body"`
		Category string `json:"category"`
	}

	FeedbackOut struct {
		ID         string    `json:"id"`
		AuthorName string    `json:"authorName"`
		Title      string    `json:"title"`
		Body       string    `json:"body"`
		Category   string    `json:"category"`
		VoteCount  int       `json:"voteCount"`
		HasVoted   bool      `json:"hasVoted"`
		CreatedAt  time.Time `json:"createdAt"`
	}
)

const (
	CategoryIdea    FeedbackCategory = "idea"
	CategoryBug     FeedbackCategory = "bug"
	CategoryRequest FeedbackCategory = "request"
)

func (category FeedbackCategory) IsValid() bool {
	switch category {
	case CategoryIdea, CategoryBug, CategoryRequest:
		return true
	}
	return false
}

func ToFeedbackOut(post FeedbackPost, voterID uint) FeedbackOut {
	hasVoted := false
	for _, vote := range post.Votes {
		if vote.UserID == voterID {
			hasVoted = true
			break
		}
	}

	return FeedbackOut{
		ID:         post.UUID,
		AuthorName: post.Author.Name,
		Title:      post.Title,
		Body:       post.Body,
		Category:   string(post.Category),
		VoteCount:  len(post.Votes),
		HasVoted:   hasVoted,
		CreatedAt:  post.CreatedAt,
	}
}
