package buildlog

import (
	"time"

	"pitboxBackend/domain/photo"
	"pitboxBackend/utils"

	"gorm.io/gorm"
)

// BuildLogEntry is one diary entry of a model build. Entry numbers are
// assigned by the caller and kept sequential by the UI only, they carry no
// uniqueness guarantee.
type BuildLogEntry struct {
	gorm.Model
	UUID        string `gorm:"uniqueIndex;not null"`
	ModelID     uint   `gorm:"index;not null"`
	EntryNumber int    `gorm:"not null;default:1"`
	Title       string `gorm:"not null"`
	Content     string
	// EntryDate is the date the work happened, distinct from CreatedAt
	EntryDate time.Time     `gorm:"index"`
	Photos    []photo.Photo `gorm:"many2many:build_log_photos;constraint:OnDelete:CASCADE"`
}

type BuildLogIn struct {
	EntryNumber utils.FlexInt `json:"entryNumber"`
	Title       string        `json:"title" binding:"required"`
	Content     string        `json:"content"`
	EntryDate   *time.Time    `json:"entryDate"`
}

type BuildLogUpdateIn struct {
	EntryNumber *utils.FlexInt `json:"entryNumber"`
	Title       *string        `json:"title"`
	Content     *string        `json:"content"`
	EntryDate   *time.Time     `json:"entryDate"`
}

type BuildLogOut struct {
	ID          string           `json:"id"`
	EntryNumber int              `json:"entryNumber"`
	Title       string           `json:"title"`
	Content     string           `json:"content"`
	EntryDate   time.Time        `json:"entryDate"`
	CreatedAt   time.Time        `json:"createdAt"`
	Photos      []photo.PhotoOut `json:"photos"`
}

func ToBuildLogOut(obj BuildLogEntry) BuildLogOut {
	photos := make([]photo.PhotoOut, len(obj.Photos))
	for i, entryPhoto := range obj.Photos {
		photos[i] = photo.ToPhotoOut(entryPhoto)
	}

	return BuildLogOut{
		ID:          obj.UUID,
		EntryNumber: obj.EntryNumber,
		Title:       obj.Title,
		Content:     obj.Content,
		EntryDate:   obj.EntryDate,
		CreatedAt:   obj.CreatedAt,
		Photos:      photos,
	}
}
