package model

import (
	"time"

	"pitboxBackend/domain/buildlog"
	"pitboxBackend/domain/comment"
	"pitboxBackend/domain/hopup"
	"pitboxBackend/domain/photo"
	"pitboxBackend/domain/user"
	"pitboxBackend/utils"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type (
	BuildStatus string
	BuildType   string

	Model struct {
		gorm.Model
		UUID        string `gorm:"uniqueIndex"`
		Creator     user.User
		CreatorID   uint   `gorm:"index"`
		Name        string `gorm:"not null"`
		ItemNumber  string `gorm:"not null"`
		Chassis     string
		ReleaseYear int
		BuildStatus BuildStatus `gorm:"default:planning"`
		BuildType   BuildType   `gorm:"default:kit"`
		Cost        float64     `gorm:"default:0"`
		Scale       string
		DriveType   string
		Material    string
		Motor       string
		Battery     string
		Tags        datatypes.JSONSlice[string]
		Shared      bool    `gorm:"default:false"`
		ShareSlug   *string `gorm:"uniqueIndex"`

		Photos     []photo.Photo            `gorm:"constraint:OnDelete:CASCADE"`
		LogEntries []buildlog.BuildLogEntry `gorm:"constraint:OnDelete:CASCADE"`
		HopUps     []hopup.HopUpPart        `gorm:"constraint:OnDelete:CASCADE"`
		Comments   []comment.ModelComment   `gorm:"constraint:OnDelete:CASCADE"`
	}

	ModelIn struct {
		Name        string            `json:"name" binding:"required"`
		ItemNumber  string            `json:"itemNumber" binding:"required"`
		Chassis     string            `json:"chassis"`
		ReleaseYear utils.FlexInt     `json:"releaseYear"`
		BuildStatus string            `json:"buildStatus"`
		BuildType   string            `json:"buildType"`
		Cost        utils.FlexFloat64 `json:"cost"`
		Scale       string            `json:"scale"`
		DriveType   string            `json:"driveType"`
		Material    string            `json:"material"`
		Motor       string            `json:"motor"`
		Battery     string            `json:"battery"`
		Tags        []string          `json:"tags"`
	}

	ModelUpdateIn struct {
		Name        *string            `json:"name"`
		ItemNumber  *string            `json:"itemNumber"`
		Chassis     *string            `json:"chassis"`
		ReleaseYear *utils.FlexInt     `json:"releaseYear"`
		BuildStatus *string            `json:"buildStatus"`
		BuildType   *string            `json:"buildType"`
		Cost        *utils.FlexFloat64 `json:"cost"`
		Scale       *string            `json:"scale"`
		DriveType   *string            `json:"driveType"`
		Material    *string            `json:"material"`
		Motor       *string            `json:"motor"`
		Battery     *string            `json:"battery"`
		Tags        *[]string          `json:"tags"`
		Shared      *bool              `json:"shared"`
	}

	ModelOut struct {
		ID                   string                 `json:"id"`
		Name                 string                 `json:"name"`
		ItemNumber           string                 `json:"itemNumber"`
		Chassis              string                 `json:"chassis"`
		ReleaseYear          int                    `json:"releaseYear"`
		BuildStatus          string                 `json:"buildStatus"`
		BuildType            string                 `json:"buildType"`
		Cost                 float64                `json:"cost"`
		Scale                string                 `json:"scale"`
		DriveType            string                 `json:"driveType"`
		Material             string                 `json:"material"`
		Motor                string                 `json:"motor"`
		Battery              string                 `json:"battery"`
		Tags                 []string               `json:"tags"`
		Shared               bool                   `json:"shared"`
		ShareSlug            *string                `json:"shareSlug,omitempty"`
		TotalInvestment      float64                `json:"totalInvestment"`
		InstalledUpgradeCost float64                `json:"installedUpgradeCost"`
		Photos               []photo.PhotoOut       `json:"photos"`
		LogEntries           []buildlog.BuildLogOut `json:"logEntries"`
		HopUps               []hopup.HopUpOut       `json:"hopUps"`
		CreatedAt            time.Time              `json:"createdAt"`
		UpdatedAt            time.Time              `json:"updatedAt"`
	}

	// SharedModelOut is the non-owner projection: hop-up costs, quantities
	// and suppliers are masked, comments are included.
	SharedModelOut struct {
		ID          string                 `json:"id"`
		Name        string                 `json:"name"`
		ItemNumber  string                 `json:"itemNumber"`
		Chassis     string                 `json:"chassis"`
		ReleaseYear int                    `json:"releaseYear"`
		BuildStatus string                 `json:"buildStatus"`
		BuildType   string                 `json:"buildType"`
		Scale       string                 `json:"scale"`
		DriveType   string                 `json:"driveType"`
		Material    string                 `json:"material"`
		Motor       string                 `json:"motor"`
		Battery     string                 `json:"battery"`
		Tags        []string               `json:"tags"`
		OwnerName   string                 `json:"ownerName"`
		Photos      []photo.PhotoOut       `json:"photos"`
		LogEntries  []buildlog.BuildLogOut `json:"logEntries"`
		HopUps      []hopup.SharedHopUpOut `json:"hopUps"`
		Comments    []comment.CommentOut   `json:"comments"`
		CreatedAt   time.Time              `json:"createdAt"`
		UpdatedAt   time.Time              `json:"updatedAt"`
	}

	StatsOut struct {
		TotalModels     int     `json:"totalModels"`
		ActiveBuilds    int     `json:"activeBuilds"`
		TotalInvestment float64 `json:"totalInvestment"`
		TotalPhotos     int     `json:"totalPhotos"`
	}
)

const (
	StatusPlanning    BuildStatus = "planning"
	StatusBuilding    BuildStatus = "building"
	StatusBuilt       BuildStatus = "built"
	StatusMaintenance BuildStatus = "maintenance"

	TypeKit    BuildType = "kit"
	TypeCustom BuildType = "custom"
)

func (status BuildStatus) IsValid() bool {
	switch status {
	case StatusPlanning, StatusBuilding, StatusBuilt, StatusMaintenance:
		return true
	}
	return false
}

func (buildType BuildType) IsValid() bool {
	switch buildType {
	case TypeKit, TypeCustom:
		return true
	}
	return false
}

// TotalInvestment is the model's own cost plus the cost of every hop-up
// part, regardless of quantity or install status. The stats endpoint
// computes a different figure on purpose, see AggregateStats.
func (m *Model) TotalInvestment() float64 {
	total := m.Cost
	for _, part := range m.HopUps {
		total += part.Cost
	}
	return total
}

// InstalledUpgradeCost sums only parts currently marked installed.
func (m *Model) InstalledUpgradeCost() float64 {
	total := 0.0
	for _, part := range m.HopUps {
		if part.Status == hopup.StatusInstalled {
			total += part.Cost
		}
	}
	return total
}

func ToModelOut(model Model) ModelOut {
	photos := make([]photo.PhotoOut, 0, len(model.Photos))
	for _, obj := range model.Photos {
		photos = append(photos, photo.ToPhotoOut(obj))
	}

	logEntries := make([]buildlog.BuildLogOut, 0, len(model.LogEntries))
	for _, obj := range model.LogEntries {
		logEntries = append(logEntries, buildlog.ToBuildLogOut(obj))
	}

	hopUps := make([]hopup.HopUpOut, 0, len(model.HopUps))
	for _, obj := range model.HopUps {
		hopUps = append(hopUps, hopup.ToHopUpOut(obj))
	}

	return ModelOut{
		ID:                   model.UUID,
		Name:                 model.Name,
		ItemNumber:           model.ItemNumber,
		Chassis:              model.Chassis,
		ReleaseYear:          model.ReleaseYear,
		BuildStatus:          string(model.BuildStatus),
		BuildType:            string(model.BuildType),
		Cost:                 model.Cost,
		Scale:                model.Scale,
		DriveType:            model.DriveType,
		Material:             model.Material,
		Motor:                model.Motor,
		Battery:              model.Battery,
		Tags:                 model.Tags,
		Shared:               model.Shared,
		ShareSlug:            model.ShareSlug,
		TotalInvestment:      model.TotalInvestment(),
		InstalledUpgradeCost: model.InstalledUpgradeCost(),
		Photos:               photos,
		LogEntries:           logEntries,
		HopUps:               hopUps,
		CreatedAt:            model.CreatedAt,
		UpdatedAt:            model.UpdatedAt,
	}
}

func ToSharedModelOut(model Model) SharedModelOut {
	photos := make([]photo.PhotoOut, 0, len(model.Photos))
	for _, obj := range model.Photos {
		photos = append(photos, photo.ToPhotoOut(obj))
	}

	logEntries := make([]buildlog.BuildLogOut, 0, len(model.LogEntries))
	for _, obj := range model.LogEntries {
		logEntries = append(logEntries, buildlog.ToBuildLogOut(obj))
	}

	hopUps := make([]hopup.SharedHopUpOut, 0, len(model.HopUps))
	for _, obj := range model.HopUps {
		hopUps = append(hopUps, hopup.ToSharedHopUpOut(obj))
	}

	comments := make([]comment.CommentOut, 0, len(model.Comments))
	for _, obj := range model.Comments {
		comments = append(comments, comment.ToCommentOut(obj))
	}

	return SharedModelOut{
		ID:          model.UUID,
		Name:        model.Name,
		ItemNumber:  model.ItemNumber,
		Chassis:     model.Chassis,
		ReleaseYear: model.ReleaseYear,
		BuildStatus: string(model.BuildStatus),
		BuildType:   string(model.BuildType),
		Scale:       model.Scale,
		DriveType:   model.DriveType,
		Material:    model.Material,
		Motor:       model.Motor,
		Battery:     model.Battery,
		Tags:        model.Tags,
		OwnerName:   model.Creator.Name,
		Photos:      photos,
		LogEntries:  logEntries,
		HopUps:      hopUps,
		Comments:    comments,
		CreatedAt:   model.CreatedAt,
		UpdatedAt:   model.UpdatedAt,
	}
}
