package main

import (
	"fmt"
	"os"
	"sync"

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

	"github.com/charmbracelet/log"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	_ = godotenv.Load()

	arguments := utils.ParseArguments()

	log.SetTimeFormat("[2006-01-02 15:04:05]")
	if *arguments.DevelopmentMode {
		log.SetReportCaller(true)
		log.SetLevel(log.DebugLevel)
	}

	pitboxConfig := config.Load(*arguments.ConfigFile)
	authManager := auth.CreateAuthManager(pitboxConfig)
	storageManager := storage.CreateStorageManager(pitboxConfig)
	paymentVerifier := billing.CreatePaymentVerifier()
	mailer := mail.CreateLogMailer()

	db := connectToDatabase(pitboxConfig, *arguments.UseLocalDatabase)

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
		log.Fatalf("Failed to migrate database schema: %s", err.Error())
	}

	var (
		userRepository = user.CreateRepository(db)
		userService    = user.CreateService(userRepository, authManager, paymentVerifier, mailer, pitboxConfig.Accounts.FreeModelQuota)
		userHandler    = user.CreateHandler(userService)
	)

	var (
		modelRepository = model.CreateRepository(db)
		photoRepository = photo.CreateRepository(db)
		hopUpRepository = hopup.CreateRepository(db)
		logRepository   = buildlog.CreateRepository(db)
	)

	var (
		modelService = model.CreateService(modelRepository, userRepository, storageManager, hopUpRepository, logRepository)
		modelHandler = model.CreateHandler(modelService)
	)

	// Deleting an account cascades through the model service.
	userService.SetPurger(modelService)

	var (
		photoService = photo.CreateService(photoRepository, modelRepository, storageManager, pitboxConfig.Storage.ThumbSize)
		photoHandler = photo.CreateHandler(photoService)
	)

	var (
		logService = buildlog.CreateService(logRepository, modelRepository, photoRepository)
		logHandler = buildlog.CreateHandler(logService)
	)

	var (
		hopUpService = hopup.CreateService(hopUpRepository, modelRepository, photoRepository)
		hopUpHandler = hopup.CreateHandler(hopUpService)
	)

	var (
		commentRepository = comment.CreateRepository(db)
		commentService    = comment.CreateService(commentRepository, modelService, userRepository)
		commentHandler    = comment.CreateHandler(commentService)
	)

	var (
		feedbackRepository = feedback.CreateRepository(db)
		feedbackService    = feedback.CreateService(feedbackRepository, userRepository)
		feedbackHandler    = feedback.CreateHandler(feedbackService)
	)

	if !*arguments.DevelopmentMode {
		gin.SetMode(gin.ReleaseMode)
	}
	webServer := gin.Default()
	webServer.Use(cors.New(cors.Config{
		AllowOrigins:     pitboxConfig.Server.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PATCH", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		AllowCredentials: true,
	}))

	if directory, ok := storageManager.ServeDirectory(); ok {
		webServer.Static("/files", directory)
	}

	user.RegisterRoutes(webServer, userHandler, authManager)
	model.RegisterRoutes(webServer, modelHandler, authManager)
	photo.RegisterRoutes(webServer, photoHandler, authManager)
	buildlog.RegisterRoutes(webServer, logHandler, authManager)
	hopup.RegisterRoutes(webServer, hopUpHandler, authManager)
	comment.RegisterRoutes(webServer, commentHandler, authManager)
	feedback.RegisterRoutes(webServer, feedbackHandler, authManager)

	var serverGroup sync.WaitGroup
	serverGroup.Add(1)
	socket := fmt.Sprintf("%s:%d", pitboxConfig.Server.Host, pitboxConfig.Server.Port)

	go startWebServer(webServer, socket, &serverGroup)

	log.Info("Pitbox API is ready to serve calls!", "conn", socket)
	serverGroup.Wait()
}

func connectToDatabase(pitboxConfig *config.PitboxConfig, useLocalDatabase bool) *gorm.DB {
	var (
		db  *gorm.DB
		err error
	)

	// TranslateError turns driver uniqueness violations into
	// gorm.ErrDuplicatedKey, which the repositories rely on.
	gormConfig := &gorm.Config{TranslateError: true}

	if useLocalDatabase {
		db, err = gorm.Open(sqlite.Open(pitboxConfig.Database.LocalFile), gormConfig)
	} else {
		dsn := fmt.Sprintf(
			"host=%s user=%s password=%s dbname=%s port=%d",
			pitboxConfig.Database.Host,
			pitboxConfig.Database.User,
			os.Getenv("PB_DATABASE_PASSWORD"),
			pitboxConfig.Database.Database,
			pitboxConfig.Database.Port,
		)
		db, err = gorm.Open(postgres.Open(dsn), gormConfig)
	}

	if err != nil {
		log.Fatalf("Failed to connect to database: %s", err.Error())
	}

	return db
}

func startWebServer(webServer *gin.Engine, socket string, waitGroup *sync.WaitGroup) {
	defer waitGroup.Done()

	if err := webServer.Run(socket); err != nil {
		log.Fatalf("Failed to start web server: %s", err.Error())
	}
}
