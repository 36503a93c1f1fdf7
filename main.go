package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"

	"skillmatrix/api"
	"skillmatrix/config"
	"skillmatrix/database"
	"skillmatrix/llm"
	"skillmatrix/middleware"
	"skillmatrix/models"
	"skillmatrix/repository"
	"skillmatrix/services"
)

func main() {
	// .env is optional; real deployments set their environment directly.
	if err := godotenv.Load(); err != nil {
		log.Println("INFO: [Main] No .env file found, using process environment.")
	}

	config.LoadConfig()

	db, err := database.Init()
	if err != nil {
		log.Fatalf("FATAL: [Main] Failed to initialize database: %v", err)
	}
	runMigrations(db)

	// Initialize Repositories
	professionRepo := repository.NewProfessionRepository(db)
	questionRepo := repository.NewQuestionRepository(db)
	submissionRepo := repository.NewSubmissionRepository(db)
	answerRecordRepo := repository.NewAnswerRecordRepository(db)
	userRepo := repository.NewUserRepository(db)
	log.Println("INFO: [Main] Repositories initialized.")

	// Initialize the text generator. A missing API key is tolerated so the
	// scoring endpoints keep working; narrative backfill will fail until a key
	// is configured.
	var generator llm.TextGenerator
	generator, err = llm.NewOpenAIGenerator(config.AppConfig.OpenAI)
	if err != nil {
		log.Printf("WARN: [Main] Text generator unavailable: %v. Narrative enrichment is disabled.", err)
		generator = llm.Unavailable(err)
	}

	// Initialize Services
	narrativeService := services.NewNarrativeService(generator, submissionRepo, config.AppConfig.Narrative)
	submissionService := services.NewSubmissionService(
		professionRepo,
		questionRepo,
		submissionRepo,
		answerRecordRepo,
		narrativeService,
	)
	importService := services.NewQuestionImportService(professionRepo, questionRepo)
	log.Println("INFO: [Main] Services initialized.")

	apiHandler := api.NewAPIHandler(
		professionRepo,
		questionRepo,
		userRepo,
		submissionService,
		importService,
	)
	log.Println("INFO: [Main] API Handler initialized.")

	r := gin.New()
	r.SetTrustedProxies(nil)
	r.Use(gin.Recovery())
	r.Use(middleware.Logger())
	r.Use(middleware.Cors())
	log.Println("INFO: [Main] Middlewares registered.")

	registerRoutes(r, apiHandler, userRepo)
	log.Println("INFO: [Main] Routes registered.")

	serverPort := ":" + config.AppConfig.Server.Port
	if config.AppConfig.Server.Port == "" {
		log.Println("WARN: [Main] Server port not configured, using default :4000.")
		serverPort = ":4000"
	}
	log.Printf("INFO: [Main] Starting server on port %s", serverPort)
	if err := r.Run(serverPort); err != nil {
		log.Fatalf("FATAL: [Main] Server failed to start: %v", err)
	}
}

func runMigrations(db *gorm.DB) {
	log.Println("INFO: [Main] Running database migrations...")
	err := db.AutoMigrate(
		&models.Profession{},
		&models.Question{},
		&models.Submission{},
		&models.AnswerRecord{},
		&models.User{},
	)
	if err != nil {
		log.Fatalf("FATAL: [Main] Failed to auto-migrate database: %v", err)
	}
	log.Println("INFO: [Main] Database migration completed.")
}

func registerRoutes(r *gin.Engine, handler *api.APIHandler, userRepo repository.UserRepository) {
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	userGroup := r.Group("/user")
	{
		userGroup.POST("/token", handler.TokenHandler)
	}

	professionGroup := r.Group("/professions")
	{
		professionGroup.GET("/all", handler.ListProfessionsHandler)

		professionGroup.POST("/add", middleware.AuthRequired(userRepo), handler.AddProfessionHandler)
		professionGroup.PUT("/:professionId", middleware.AuthRequired(userRepo), handler.UpdateProfessionHandler)
		professionGroup.DELETE("/:professionId", middleware.AuthRequired(userRepo), handler.DeleteProfessionHandler)
	}

	questionGroup := r.Group("/questions")
	{
		questionGroup.GET("/all", handler.ListQuestionsHandler)
		questionGroup.GET("/all-categories-skills", handler.ListCategoriesSkillsHandler)
		questionGroup.POST("/answer", handler.SubmitAnswersHandler)
		questionGroup.GET("/answer", handler.FetchResultHandler)

		questionGroup.POST("/add", middleware.AuthRequired(userRepo), handler.AddQuestionHandler)
		questionGroup.PUT("/:questionId", middleware.AuthRequired(userRepo), handler.UpdateQuestionHandler)
		questionGroup.DELETE("/:questionId", middleware.AuthRequired(userRepo), handler.DeleteQuestionHandler)
		questionGroup.POST("/upload", middleware.AuthRequired(userRepo), handler.UploadQuestionsHandler)
	}
}
