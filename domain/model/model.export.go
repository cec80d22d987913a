package model

import (
	"encoding/json"
	"time"

	"pitboxBackend/auth"
	"pitboxBackend/domain/buildlog"
	"pitboxBackend/domain/hopup"
	"pitboxBackend/utils"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
	"github.com/xeipuuv/gojsonschema"
)

// Exchange format for moving a model between accounts or instances.
// Photos are deliberately left out, the blobs do not travel with the JSON.
type (
	ModelExport struct {
		Name        string        `json:"name"`
		ItemNumber  string        `json:"itemNumber"`
		Chassis     string        `json:"chassis,omitempty"`
		ReleaseYear int           `json:"releaseYear,omitempty"`
		BuildStatus string        `json:"buildStatus"`
		BuildType   string        `json:"buildType"`
		Cost        float64       `json:"cost"`
		Scale       string        `json:"scale,omitempty"`
		DriveType   string        `json:"driveType,omitempty"`
		Material    string        `json:"material,omitempty"`
		Motor       string        `json:"motor,omitempty"`
		Battery     string        `json:"battery,omitempty"`
		Tags        []string      `json:"tags"`
		HopUps      []HopUpExport `json:"hopUps"`
		LogEntries  []LogExport   `json:"logEntries"`
	}

	HopUpExport struct {
		Name          string     `json:"name"`
		ItemNumber    string     `json:"itemNumber,omitempty"`
		Category      string     `json:"category,omitempty"`
		Manufacturer  string     `json:"manufacturer,omitempty"`
		Supplier      string     `json:"supplier,omitempty"`
		Cost          float64    `json:"cost"`
		Quantity      int        `json:"quantity"`
		Status        string     `json:"status"`
		InstalledAt   *time.Time `json:"installedAt,omitempty"`
		Compatibility []string   `json:"compatibility"`
	}

	LogExport struct {
		EntryNumber int       `json:"entryNumber"`
		Title       string    `json:"title"`
		Content     string    `json:"content,omitempty"`
		EntryDate   time.Time `json:"entryDate"`
	}
)

const modelImportSchema = `{
  "type": "object",
  "required": ["name", "itemNumber"],
  "properties": {
    "name": {"type": "string", "minLength": 1},
    "itemNumber": {"type": "string", "minLength": 1},
    "chassis": {"type": "string"},
    "releaseYear": {"type": "integer"},
    "buildStatus": {"enum": ["planning", "building", "built", "maintenance"]},
    "buildType": {"enum": ["kit", "custom"]},
    "cost": {"type": "number", "minimum": 0},
    "scale": {"type": "string"},
    "driveType": {"type": "string"},
    "material": {"type": "string"},
    "motor": {"type": "string"},
    "battery": {"type": "string"},
    "tags": {"type": "array", "items": {"type": "string"}},
    "hopUps": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["name"],
        "properties": {
          "name": {"type": "string", "minLength": 1},
          "itemNumber": {"type": "string"},
          "category": {"type": "string"},
          "manufacturer": {"type": "string"},
          "supplier": {"type": "string"},
          "cost": {"type": "number", "minimum": 0},
          "quantity": {"type": "integer", "minimum": 1},
          "status": {"enum": ["planned", "installed", "removed"]},
          "installedAt": {"type": "string", "format": "date-time"},
          "compatibility": {"type": "array", "items": {"type": "string"}}
        }
      }
    },
    "logEntries": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["title"],
        "properties": {
          "entryNumber": {"type": "integer", "minimum": 1},
          "title": {"type": "string", "minLength": 1},
          "content": {"type": "string"},
          "entryDate": {"type": "string", "format": "date-time"}
        }
      }
    }
  }
}`

func (s *modelService) Export(ctx *gin.Context, authUser auth.AuthenticatedUser, modelId string) (*ModelExport, error) {
	model, err := s.modelRepo.GetByUuid(ctx, modelId, authUser.UserId)
	if err != nil {
		return nil, err
	}

	hopUps := make([]HopUpExport, 0, len(model.HopUps))
	for _, part := range model.HopUps {
		hopUps = append(hopUps, HopUpExport{
			Name:          part.Name,
			ItemNumber:    part.ItemNumber,
			Category:      part.Category,
			Manufacturer:  part.Manufacturer,
			Supplier:      part.Supplier,
			Cost:          part.Cost,
			Quantity:      part.Quantity,
			Status:        string(part.Status),
			InstalledAt:   part.InstalledAt,
			Compatibility: part.Compatibility,
		})
	}

	logEntries := make([]LogExport, 0, len(model.LogEntries))
	for _, entry := range model.LogEntries {
		logEntries = append(logEntries, LogExport{
			EntryNumber: entry.EntryNumber,
			Title:       entry.Title,
			Content:     entry.Content,
			EntryDate:   entry.EntryDate,
		})
	}

	return &ModelExport{
		Name:        model.Name,
		ItemNumber:  model.ItemNumber,
		Chassis:     model.Chassis,
		ReleaseYear: model.ReleaseYear,
		BuildStatus: string(model.BuildStatus),
		BuildType:   string(model.BuildType),
		Cost:        model.Cost,
		Scale:       model.Scale,
		DriveType:   model.DriveType,
		Material:    model.Material,
		Motor:       model.Motor,
		Battery:     model.Battery,
		Tags:        model.Tags,
		HopUps:      hopUps,
		LogEntries:  logEntries,
	}, nil
}

func (s *modelService) Import(ctx *gin.Context, authUser auth.AuthenticatedUser, payload []byte) (string, error) {
	schemaResult, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(modelImportSchema),
		gojsonschema.NewBytesLoader(payload),
	)
	if err != nil || !schemaResult.Valid() {
		return "", utils.ErrInvalidImport
	}

	var export ModelExport
	if err := json.Unmarshal(payload, &export); err != nil {
		return "", utils.ErrInvalidImport
	}

	newUuid, err := s.Create(ctx, authUser, ModelIn{
		Name:        export.Name,
		ItemNumber:  export.ItemNumber,
		Chassis:     export.Chassis,
		ReleaseYear: utils.FlexInt(export.ReleaseYear),
		BuildStatus: export.BuildStatus,
		BuildType:   export.BuildType,
		Cost:        utils.FlexFloat64(export.Cost),
		Scale:       export.Scale,
		DriveType:   export.DriveType,
		Material:    export.Material,
		Motor:       export.Motor,
		Battery:     export.Battery,
		Tags:        export.Tags,
	})
	if err != nil {
		return "", err
	}

	model, err := s.modelRepo.GetByUuid(ctx, newUuid, authUser.UserId)
	if err != nil {
		s.discardImport(ctx, authUser, newUuid)
		return "", err
	}

	for _, part := range export.HopUps {
		quantity := part.Quantity
		if quantity < 1 {
			quantity = 1
		}
		status := hopup.InstallStatus(part.Status)
		if part.Status == "" {
			status = hopup.StatusPlanned
		}
		compatibility := part.Compatibility
		if compatibility == nil {
			compatibility = make([]string, 0)
		}

		err := s.hopUpWriter.Create(ctx, &hopup.HopUpPart{
			UUID:          utils.GenerateUuid(),
			ModelID:       model.ID,
			Name:          part.Name,
			ItemNumber:    part.ItemNumber,
			Category:      part.Category,
			Manufacturer:  part.Manufacturer,
			Supplier:      part.Supplier,
			Cost:          part.Cost,
			Quantity:      quantity,
			Status:        status,
			InstalledAt:   part.InstalledAt,
			Compatibility: compatibility,
		})
		if err != nil {
			s.discardImport(ctx, authUser, newUuid)
			return "", err
		}
	}

	for _, entry := range export.LogEntries {
		entryNumber := entry.EntryNumber
		if entryNumber < 1 {
			entryNumber = 1
		}
		entryDate := entry.EntryDate
		if entryDate.IsZero() {
			entryDate = time.Now()
		}

		err := s.logWriter.Create(ctx, &buildlog.BuildLogEntry{
			UUID:        utils.GenerateUuid(),
			ModelID:     model.ID,
			EntryNumber: entryNumber,
			Title:       entry.Title,
			Content:     entry.Content,
			EntryDate:   entryDate,
		})
		if err != nil {
			s.discardImport(ctx, authUser, newUuid)
			return "", err
		}
	}

	return newUuid, nil
}

// discardImport rolls a half-imported model back out of the catalog so a
// failed import never leaves a partial result behind.
func (s *modelService) discardImport(ctx *gin.Context, authUser auth.AuthenticatedUser, modelId string) {
	if _, err := s.Delete(ctx, authUser, modelId); err != nil {
		log.Warnf("[IMPORT] Failed to discard partial import '%s': %s", modelId, err.Error())
	}
}
