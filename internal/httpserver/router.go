package httpserver

import (
	"context"
	"errors"
	"log"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"marketplace-api/internal/domain"
	"marketplace-api/internal/moderation"
	notificationrepo "marketplace-api/internal/repository/notification"
	categorysvc "marketplace-api/internal/service/category"
	productsvc "marketplace-api/internal/service/product"
	usersvc "marketplace-api/internal/service/user"
)

// CategoryService is the surface the category handlers need.
type CategoryService interface {
	List(ctx context.Context) ([]domain.Category, error)
	Get(ctx context.Context, id string) (*domain.Category, error)
	Create(ctx context.Context, in categorysvc.CreateInput) (*domain.Category, error)
	Update(ctx context.Context, id string, in categorysvc.UpdateInput) (*domain.Category, error)
	Delete(ctx context.Context, id string) error
}

// ProductService is the surface the product handlers need.
type ProductService interface {
	List(ctx context.Context, actor *moderation.Actor) ([]domain.Product, error)
	Mine(ctx context.Context, creatorID string) ([]domain.Product, error)
	Get(ctx context.Context, id string, actor *moderation.Actor) (*domain.Product, error)
	Create(ctx context.Context, creatorID string, in productsvc.CreateInput) (*domain.Product, error)
	Update(ctx context.Context, id string, actor moderation.Actor, in productsvc.UpdateInput) (*domain.Product, error)
	Delete(ctx context.Context, id string, actor moderation.Actor) error
	ChangeState(ctx context.Context, id, target string, actor moderation.Actor) (*productsvc.TransitionResult, error)
}

// UserService is the surface the auth handlers and middleware need.
type UserService interface {
	Signup(ctx context.Context, in usersvc.SignupInput) (*domain.User, error)
	Login(ctx context.Context, email, password string) (*domain.User, string, string, error)
	LookupByToken(ctx context.Context, token string) (*domain.User, error)
	AccessTTLSeconds() int
}

// Deps bundles everything the router needs.
type Deps struct {
	CategorySvc      CategoryService
	ProductSvc       ProductService
	UserSvc          UserService
	NotificationRepo notificationrepo.Repository
}

// buildRouter wires routes for the API.
func buildRouter(logger *log.Logger, db *pgxpool.Pool, deps Deps, corsOrigins []string) (*gin.Engine, error) {
	if deps.CategorySvc == nil || deps.ProductSvc == nil || deps.UserSvc == nil {
		return nil, errors.New("httpserver: missing dependencies")
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.LoggerWithWriter(logger.Writer()), gin.Recovery())

	corsCfg := cors.DefaultConfig()
	if len(corsOrigins) == 1 && corsOrigins[0] == "*" {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = corsOrigins
	}
	corsCfg.AllowHeaders = append(corsCfg.AllowHeaders, "Authorization")
	router.Use(cors.New(corsCfg))

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(db))

	router.POST("/signup", signupHandler(deps.UserSvc))
	router.POST("/auth/token", tokenHandler(deps.UserSvc))

	categories := router.Group("/categories", authRequired(deps.UserSvc), adminRequired())
	{
		categories.GET("", listCategoriesHandler(deps.CategorySvc))
		categories.POST("", createCategoryHandler(deps.CategorySvc))
		categories.GET("/:id", getCategoryHandler(deps.CategorySvc))
		categories.PATCH("/:id", updateCategoryHandler(deps.CategorySvc))
		categories.DELETE("/:id", deleteCategoryHandler(deps.CategorySvc))
	}

	products := router.Group("/products")
	{
		products.GET("", authOptional(deps.UserSvc), listProductsHandler(deps.ProductSvc))
		products.POST("", authRequired(deps.UserSvc), createProductHandler(deps.ProductSvc))
		products.GET("/mine", authRequired(deps.UserSvc), myProductsHandler(deps.ProductSvc))
		products.GET("/:id", authOptional(deps.UserSvc), getProductHandler(deps.ProductSvc))
		products.PATCH("/:id", authRequired(deps.UserSvc), updateProductHandler(deps.ProductSvc))
		products.DELETE("/:id", authRequired(deps.UserSvc), deleteProductHandler(deps.ProductSvc))
	}

	notifications := router.Group("/notifications", authRequired(deps.UserSvc))
	{
		notifications.GET("", listNotificationsHandler(deps.NotificationRepo))
		notifications.POST("/:id/read", readNotificationHandler(deps.NotificationRepo))
	}

	return router, nil
}
