package test

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"pitboxBackend/auth"
	"pitboxBackend/billing"
	"pitboxBackend/config"
	"pitboxBackend/domain/buildlog"
	"pitboxBackend/domain/comment"
	"pitboxBackend/domain/feedback"
	"pitboxBackend/domain/hopup"
	"pitboxBackend/domain/model"
	"pitboxBackend/domain/photo"
	"pitboxBackend/domain/user"
	"pitboxBackend/mail"
	"pitboxBackend/storage"
	"pitboxBackend/utils"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

const (
	AlicePassword = "super-secret-1"
	BobPassword   = "hunter2-secret"
)

// TestData exposes the seeded rows so tests can reference their UUIDs.
type TestData struct {
	Alice user.User
	Bob   user.User

	// AliceModel is shared publicly: TT-02, cost 100, one installed
	// hop-up (cost 50, quantity 2), one photo, six log entries.
	AliceModel model.Model

	// BobModel is shared but Bob's preference is private, so the slug
	// must resolve for nobody but Bob.
	BobModel model.Model
}

func SetupTestServer(t *testing.T) (*gin.Engine, auth.AuthManager, *gorm.DB, *TestData) {
	gin.SetMode(gin.TestMode)

	testConfig := testConfig(t)
	authManager := auth.CreateAuthManager(testConfig)
	storageManager := storage.CreateStorageManager(testConfig)
	paymentVerifier := billing.CreatePaymentVerifier()
	mailer := mail.CreateLogMailer()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("Failed to open test database: %s", err.Error())
	}

	data := GenerateTestData(t, db)

	userRepository := user.CreateRepository(db)
	userService := user.CreateService(userRepository, authManager, paymentVerifier, mailer, testConfig.Accounts.FreeModelQuota)
	userHandler := user.CreateHandler(userService)

	modelRepository := model.CreateRepository(db)
	photoRepository := photo.CreateRepository(db)
	hopUpRepository := hopup.CreateRepository(db)
	logRepository := buildlog.CreateRepository(db)

	modelService := model.CreateService(modelRepository, userRepository, storageManager, hopUpRepository, logRepository)
	modelHandler := model.CreateHandler(modelService)
	userService.SetPurger(modelService)

	photoService := photo.CreateService(photoRepository, modelRepository, storageManager, testConfig.Storage.ThumbSize)
	photoHandler := photo.CreateHandler(photoService)

	logService := buildlog.CreateService(logRepository, modelRepository, photoRepository)
	logHandler := buildlog.CreateHandler(logService)

	hopUpService := hopup.CreateService(hopUpRepository, modelRepository, photoRepository)
	hopUpHandler := hopup.CreateHandler(hopUpService)

	commentRepository := comment.CreateRepository(db)
	commentService := comment.CreateService(commentRepository, modelService, userRepository)
	commentHandler := comment.CreateHandler(commentService)

	feedbackRepository := feedback.CreateRepository(db)
	feedbackService := feedback.CreateService(feedbackRepository, userRepository)
	feedbackHandler := feedback.CreateHandler(feedbackService)

	router := gin.New()
	user.RegisterRoutes(router, userHandler, authManager)
	model.RegisterRoutes(router, modelHandler, authManager)
	photo.RegisterRoutes(router, photoHandler, authManager)
	buildlog.RegisterRoutes(router, logHandler, authManager)
	hopup.RegisterRoutes(router, hopUpHandler, authManager)
	comment.RegisterRoutes(router, commentHandler, authManager)
	feedback.RegisterRoutes(router, feedbackHandler, authManager)

	return router, authManager, db, data
}

// AccessTokenCookie mints a valid session cookie for a seeded account.
func AccessTokenCookie(t *testing.T, authManager auth.AuthManager, account user.User) *http.Cookie {
	token, err := authManager.CreateAccessToken(auth.AuthenticatedUser{
		UserId:  account.UUID,
		IsAdmin: account.IsAdmin,
	})
	if err != nil {
		t.Fatalf("Failed to create test access token: %s", err.Error())
	}

	return &http.Cookie{Name: auth.AccessTokenCookie, Value: token}
}

func testConfig(t *testing.T) *config.PitboxConfig {
	return &config.PitboxConfig{
		Server: config.ServerConfig{Host: "127.0.0.1", Port: 0},
		Auth: config.AuthConfig{
			EnableNative: true,
			EnableOpenId: false,
		},
		Storage: config.StorageConfig{
			Type:          "disk",
			DiskDirectory: t.TempDir(),
			PublicBaseUrl: "http://localhost/files",
			ThumbSize:     64,
		},
		Accounts: config.AccountsConfig{FreeModelQuota: 3},
	}
}

func GenerateTestData(t *testing.T, db *gorm.DB) *TestData {
	err := db.AutoMigrate(
		&user.User{},
		&model.Model{},
		&photo.Photo{},
		&buildlog.BuildLogEntry{},
		&hopup.HopUpPart{},
		&comment.ModelComment{},
		&feedback.FeedbackPost{},
		&feedback.FeedbackVote{},
	)
	if err != nil {
		t.Fatalf("Failed to migrate test schema: %s", err.Error())
	}

	alicePassword, err := auth.HashPassword(AlicePassword)
	if err != nil {
		t.Fatalf("Failed to hash test password: %s", err.Error())
	}
	bobPassword, err := auth.HashPassword(BobPassword)
	if err != nil {
		t.Fatalf("Failed to hash test password: %s", err.Error())
	}

	alice := user.User{
		UUID:            utils.GenerateUuid(),
		Email:           "alice@example.com",
		Name:            "Alice",
		PasswordHash:    alicePassword,
		IsAdmin:         true,
		ModelQuota:      3,
		SharePreference: user.SharePublic,
	}
	db.Create(&alice)

	bob := user.User{
		UUID:            utils.GenerateUuid(),
		Email:           "bob@example.com",
		Name:            "Bob",
		PasswordHash:    bobPassword,
		ModelQuota:      3,
		SharePreference: user.SharePrivate,
	}
	db.Create(&bob)

	aliceSlug := "tt-02-abc123"
	aliceModel := model.Model{
		UUID:        utils.GenerateUuid(),
		Creator:     alice,
		Name:        "TT-02",
		ItemNumber:  "58587",
		Chassis:     "TT-02",
		BuildStatus: model.StatusBuilding,
		BuildType:   model.TypeKit,
		Cost:        100,
		Scale:       "1/10",
		DriveType:   "4WD",
		Tags:        []string{"touring", "shaft-driven"},
		Shared:      true,
		ShareSlug:   &aliceSlug,
	}
	db.Create(&aliceModel)

	db.Create(&photo.Photo{
		UUID:         utils.GenerateUuid(),
		ModelID:      aliceModel.ID,
		FileName:     "tt02-box.jpg",
		OriginalName: "box.jpg",
		PublicUrl:    "http://localhost/files/tt02-box.jpg",
		IsBoxArt:     true,
	})

	db.Create(&hopup.HopUpPart{
		UUID:          utils.GenerateUuid(),
		ModelID:       aliceModel.ID,
		Name:          "Aluminium Propeller Shaft",
		ItemNumber:    "54501",
		Category:      "Drivetrain",
		Manufacturer:  "Tamiya",
		Supplier:      "local hobby shop",
		Cost:          50,
		Quantity:      2,
		Status:        hopup.StatusInstalled,
		Compatibility: []string{"TT-02", "TT-02B"},
	})

	for i := 1; i <= 6; i++ {
		db.Create(&buildlog.BuildLogEntry{
			UUID:        utils.GenerateUuid(),
			ModelID:     aliceModel.ID,
			EntryNumber: i,
			Title:       fmt.Sprintf("Session %d", i),
			Content:     "Gearbox assembly",
			EntryDate:   time.Date(2026, 1, i, 12, 0, 0, 0, time.UTC),
		})
	}

	bobSlug := "dt-03-xyz789"
	bobModel := model.Model{
		UUID:       utils.GenerateUuid(),
		Creator:    bob,
		Name:       "DT-03",
		ItemNumber: "58587",
		Cost:       40,
		Shared:     true,
		ShareSlug:  &bobSlug,
	}
	db.Create(&bobModel)

	return &TestData{
		Alice:      alice,
		Bob:        bob,
		AliceModel: aliceModel,
		BobModel:   bobModel,
	}
}
