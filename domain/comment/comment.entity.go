package comment

import (
	"time"

	"pitboxBackend/domain/user"

	"gorm.io/gorm"
)

// ModelComment is community feedback left on a shared model.
type ModelComment struct {
	gorm.Model
	UUID     string `gorm:"uniqueIndex;not null"`
	ModelID  uint   `gorm:"index;not null"`
	Author   user.User
	AuthorID uint   `gorm:"not null"`
	Content  string `gorm:"not null"`
}

type CommentIn struct {
	Content string `json:"content" binding:"required"`
}

type CommentOut struct {
	ID         string    `json:"id"`
	AuthorName string    `json:"authorName"`
	Content    string    `json:"content"`
	CreatedAt  time.Time `json:"createdAt"`
}

func ToCommentOut(obj ModelComment) CommentOut {
	return CommentOut{
		ID:         obj.UUID,
		AuthorName: obj.Author.Name,
		Content:    obj.Content,
		CreatedAt:  obj.CreatedAt,
	}
}
