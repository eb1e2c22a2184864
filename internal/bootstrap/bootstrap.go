package bootstrap

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appControllers "github.com/campushelp/helpdesk/internal/app/controllers"
	"github.com/campushelp/helpdesk/internal/app/models"
	appRepos "github.com/campushelp/helpdesk/internal/app/repositories"
	appRoutes "github.com/campushelp/helpdesk/internal/app/routes"
	appServices "github.com/campushelp/helpdesk/internal/app/services"
	"github.com/campushelp/helpdesk/internal/config"
	appMiddleware "github.com/campushelp/helpdesk/internal/middleware"
	pkgAuth "github.com/campushelp/helpdesk/internal/pkg/auth"
	"github.com/campushelp/helpdesk/internal/pkg/email"
	"github.com/campushelp/helpdesk/internal/pkg/guardrails"
	"github.com/campushelp/helpdesk/internal/pkg/llm"
	"github.com/campushelp/helpdesk/internal/pkg/logger"
	"github.com/campushelp/helpdesk/internal/pkg/textmatch"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	ChatService       *appServices.ChatService
	AdminService      *appServices.AdminService
	AuthService       *appServices.AuthService
	ChatController    *appControllers.ChatController
	StudentController *appControllers.StudentController
	AdminController   *appControllers.AdminController
	AuthController    *appControllers.AuthController
	AuthMiddleware    *appMiddleware.AuthMiddleware
	JWTService        *pkgAuth.JWTService
	Logger            zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := filepath.Join("configs", "config.yaml")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.LogLevel(strings.ToLower(cfg.Logging.Level))
	prettyLog := strings.ToLower(cfg.Logging.Format) == "text"

	logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: prettyLog,
	})

	lgr := log.Logger
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// BuildDependencies initializes repositories, services, controllers and
// middleware. The knowledge base is read once at startup; the admin
// document is loaded here and kept in sync by its repository.
func BuildDependencies(cfg *config.Config, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	kb, err := appRepos.NewKnowledgeRepository(cfg.Storage.KnowledgeBasePath, lgr).Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load knowledge base: %w", err)
	}
	matcher := textmatch.NewMatcher(kb.Intents, cfg.Chat.SimilarityThreshold)

	adminRepo, err := appRepos.NewAdminDataRepository(cfg.Storage.AdminDataPath, lgr)
	if err != nil {
		return nil, fmt.Errorf("failed to open admin data store: %w", err)
	}

	guard := guardrails.NewFilter(guardrails.Config{
		MinLength:                cfg.Chat.MinMessageLength,
		MaxLength:                cfg.Chat.MaxMessageLength,
		BlockedWords:             cfg.Chat.BlockedWords,
		PersonalQuestionKeywords: cfg.Chat.PersonalQuestionKeywords,
		OffTopicKeywords:         cfg.Chat.OffTopicKeywords,
		CollegeKeywords:          cfg.Chat.CollegeKeywords,
		Messages: guardrails.Messages{
			Empty:            cfg.Messages.Empty,
			TooShort:         cfg.Messages.TooShort,
			TooLong:          cfg.Messages.TooLong,
			NoText:           cfg.Messages.NoText,
			Spam:             cfg.Messages.Spam,
			BlockedContent:   cfg.Messages.BlockedContent,
			PersonalQuestion: cfg.Messages.PersonalQuestion,
			OffTopic:         cfg.Messages.OffTopic,
			Privacy:          cfg.Messages.Privacy,
		},
	})

	fallback := llm.NewClient(llm.Config{
		APIKey:       cfg.LLM.APIKey,
		BaseURL:      cfg.LLM.BaseURL,
		Model:        cfg.LLM.Model,
		MaxTokens:    cfg.LLM.MaxTokens,
		Timeout:      cfg.LLMTimeout(),
		SystemPrompt: llm.DefaultSystemPrompt(cfg.College.Name),
	}, lgr)

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:      cfg.JWT.Secret,
		AccessTokenExp: cfg.AccessTokenExp(),
		TokenIssuer:    cfg.JWT.Issuer,
	})

	sender := email.NewSender(email.SMTPConfig{
		Host:      cfg.SMTP.Host,
		Port:      cfg.SMTP.Port,
		Username:  cfg.SMTP.Username,
		Password:  cfg.SMTP.Password,
		FromName:  cfg.SMTP.FromName,
		FromEmail: cfg.SMTP.FromEmail,
	}, lgr)

	accounts, err := buildAdminAccounts(cfg.Admin.Accounts)
	if err != nil {
		return nil, err
	}

	notifier := appServices.NewNotificationService()
	deps.ChatService = appServices.NewChatService(guard, matcher, adminRepo, notifier, fallback, appServices.ChatMessages{
		Fallback:   cfg.Messages.Fallback,
		HighDemand: cfg.Messages.HighDemand,
		OffTopic:   cfg.Messages.OffTopic,
	}, lgr)
	deps.AdminService = appServices.NewAdminService(adminRepo, notifier, lgr)
	deps.AuthService = appServices.NewAuthService(accounts, deps.JWTService, sender, lgr)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService)

	deps.ChatController = appControllers.NewChatController(deps.ChatService)
	deps.StudentController = appControllers.NewStudentController(deps.AdminService)
	deps.AdminController = appControllers.NewAdminController(deps.AdminService)
	deps.AuthController = appControllers.NewAuthController(deps.AuthService)

	return deps, nil
}

// buildAdminAccounts converts configured accounts to models, hashing any
// plain-text development passwords on the way in.
func buildAdminAccounts(configured []config.AdminAccountConfig) ([]models.AdminAccount, error) {
	accounts := make([]models.AdminAccount, 0, len(configured))
	for _, ac := range configured {
		hash := ac.PasswordHash
		if hash == "" {
			var err error
			hash, err = pkgAuth.HashPassword(ac.Password)
			if err != nil {
				return nil, fmt.Errorf("failed to hash password for admin %q: %w", ac.Username, err)
			}
		}

		role := models.AdminRole(ac.Role)
		if role == "" {
			role = models.RoleEditor
		}

		accounts = append(accounts, models.AdminAccount{
			Username:     ac.Username,
			PasswordHash: hash,
			FullName:     ac.FullName,
			Email:        ac.Email,
			Role:         role,
		})
	}
	return accounts, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(appMiddleware.RequestLogger(lgr))

	appRoutes.SetupRouter(
		router,
		deps.ChatController,
		deps.StudentController,
		deps.AdminController,
		deps.AuthController,
		deps.AuthMiddleware,
	)

	return router
}
