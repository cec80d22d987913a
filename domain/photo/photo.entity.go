package photo

import (
	"pitboxBackend/utils"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Photo struct {
	gorm.Model
	UUID         string `gorm:"uniqueIndex;not null"`
	ModelID      uint   `gorm:"index;not null"`
	FileName     string `gorm:"not null"`
	OriginalName string
	PublicUrl    string
	ThumbUrl     string
	Caption      string
	IsBoxArt     bool `gorm:"not null;default:false"`
	SortOrder    int  `gorm:"not null;default:0"`
	Metadata     datatypes.JSON
}

type PhotoUpdateIn struct {
	Caption   *string         `json:"caption"`
	SortOrder *utils.FlexInt  `json:"sortOrder"`
	Metadata  *datatypes.JSON `json:"metadata"`
}

type PhotoOut struct {
	ID           string         `json:"id"`
	OriginalName string         `json:"originalName"`
	Url          string         `json:"url"`
	ThumbUrl     string         `json:"thumbUrl,omitempty"`
	Caption      string         `json:"caption,omitempty"`
	IsBoxArt     bool           `json:"isBoxArt"`
	SortOrder    int            `json:"sortOrder"`
	Metadata     datatypes.JSON `json:"metadata,omitempty"`
}

func ToPhotoOut(obj Photo) PhotoOut {
	return PhotoOut{
		ID:           obj.UUID,
		OriginalName: obj.OriginalName,
		Url:          obj.PublicUrl,
		ThumbUrl:     obj.ThumbUrl,
		Caption:      obj.Caption,
		IsBoxArt:     obj.IsBoxArt,
		SortOrder:    obj.SortOrder,
		Metadata:     obj.Metadata,
	}
}
