package bootstrap

import (
	"cloud.google.com/go/firestore"
	"cloud.google.com/go/storage"
	"firebase.google.com/go/v4/auth"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/servitec-peru/go-admin-backend/config"
	httpapi "github.com/servitec-peru/go-admin-backend/internal/api/http"
	"github.com/servitec-peru/go-admin-backend/internal/api/http/middleware"
	assistanceshttp "github.com/servitec-peru/go-admin-backend/internal/assistances/http"
	authhttp "github.com/servitec-peru/go-admin-backend/internal/auth/http"
	authmiddleware "github.com/servitec-peru/go-admin-backend/internal/auth/middleware"
	"github.com/servitec-peru/go-admin-backend/internal/messaging"
	quotationshttp "github.com/servitec-peru/go-admin-backend/internal/quotations/http"
	quotationsrepo "github.com/servitec-peru/go-admin-backend/internal/quotations/repository"
	"github.com/servitec-peru/go-admin-backend/internal/uploads"
	uploadshttp "github.com/servitec-peru/go-admin-backend/internal/uploads/http"
	usershttp "github.com/servitec-peru/go-admin-backend/internal/users/http"
	usersrepo "github.com/servitec-peru/go-admin-backend/internal/users/repository"
	usersservice "github.com/servitec-peru/go-admin-backend/internal/users/service"
	"github.com/servitec-peru/go-admin-backend/internal/verification/captcha"
	verificationdomain "github.com/servitec-peru/go-admin-backend/internal/verification/domain"
	verificationhttp "github.com/servitec-peru/go-admin-backend/internal/verification/http"
	verificationrepo "github.com/servitec-peru/go-admin-backend/internal/verification/repository"
	verificationservice "github.com/servitec-peru/go-admin-backend/internal/verification/service"
)

type RouterDeps struct {
	ServiceName string
	Version     string
	Logger      *zap.Logger
	Firestore   *firestore.Client
	Redis       *redis.Client
	Auth        *auth.Client
	Bucket      *storage.BucketHandle
	Messages    *messaging.Messages
	Cfg         *config.Config
}

func BuildRouter(dep RouterDeps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID(dep.Logger))
	r.Use(cors.Default())

	healthHandler := httpapi.NewHealthHandler(dep.ServiceName, dep.Version, dep.Firestore, dep.Redis)
	healthHandler.RegisterRoutes(r)

	r.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{"service": dep.ServiceName, "version": dep.Version})
	})

	userRepo := usersrepo.NewRepo(dep.Firestore)
	userService := usersservice.NewService(userRepo, dep.Auth, dep.Logger)
	usershttp.Register(r.Group("/users"), usershttp.NewHandler(userService, dep.Logger))

	quotationRepo := quotationsrepo.NewRepo(dep.Firestore)
	quotationshttp.Register(r.Group("/quotations"), quotationshttp.NewHandler(quotationRepo, dep.Logger))

	assistanceshttp.Register(r.Group("/assistances"))

	sessions := verificationrepo.NewSessionRepository(dep.Redis)
	senders := map[verificationdomain.Method]messaging.Sender{
		verificationdomain.MethodPhone: messaging.NewSMSSender(
			dep.Cfg.SMS.GatewayURL, dep.Cfg.SMS.APIKey, dep.Cfg.SMS.From, dep.Messages, dep.Logger,
		),
		verificationdomain.MethodEmail: messaging.NewEmailSender(
			dep.Cfg.SMTP.Host, dep.Cfg.SMTP.Port, dep.Cfg.SMTP.Email, dep.Cfg.SMTP.Password, dep.Messages, dep.Logger,
		),
	}
	verifier := captcha.New(dep.Cfg.Captcha.Secret, dep.Logger)
	verificationSvc := verificationservice.NewService(
		userRepo, sessions, senders, verifier, dep.Messages, dep.Auth, dep.Logger,
	)

	authGroup := r.Group("/auth")
	verificationhttp.Register(authGroup, verificationhttp.NewHandler(verificationSvc, dep.Logger))
	authGroup.GET("/me",
		authmiddleware.FirebaseAuth(dep.Auth),
		authhttp.NewHandler(userRepo, dep.Logger).Me,
	)

	store := uploads.NewBucketStore(dep.Bucket)
	policy := uploads.BackoffPolicy{
		Attempts:  dep.Cfg.Uploads.ThumbAttempts,
		BaseDelay: dep.Cfg.Uploads.ThumbBaseDelay,
		MaxDelay:  dep.Cfg.Uploads.ThumbMaxDelay,
	}
	pipeline := uploads.NewPipeline(store, policy, dep.Logger)
	uploadshttp.Register(r.Group("/uploads"), uploadshttp.NewHandler(pipeline, dep.Logger))

	return r
}
