package di

import (
	"fmt"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"bookshelf_backend/internal/app/config"
	authhandler "bookshelf_backend/internal/feature/auth/transport/handler"
	authusecase "bookshelf_backend/internal/feature/auth/usecase"
	catalogadapters "bookshelf_backend/internal/feature/catalog/adapters"
	cataloghandler "bookshelf_backend/internal/feature/catalog/transport/handler"
	catalogusecase "bookshelf_backend/internal/feature/catalog/usecase"
	jwtmw "bookshelf_backend/internal/platform/jwt"
	"bookshelf_backend/internal/platform/password"
)

// Handlers bundles everything the router needs.
type Handlers struct {
	Auth     *authhandler.AuthHandler
	Books    *cataloghandler.BookHandler
	Verifier *jwtmw.Verifier
}

// NewHandlers wires repositories, usecases and handlers from cfg.
// opts are passed to both the token issuer and verifier so they share one clock.
func NewHandlers(cfg config.Config, db *gorm.DB, rdb *redis.Client, opts ...jwtmw.Option) (*Handlers, error) {
	hasher, err := password.New(cfg.Password)
	if err != nil {
		return nil, fmt.Errorf("di: password hasher: %w", err)
	}
	issuer, err := jwtmw.NewIssuer(cfg.JWT, opts...)
	if err != nil {
		return nil, fmt.Errorf("di: token issuer: %w", err)
	}
	verifier, err := jwtmw.NewVerifier(cfg.JWT, opts...)
	if err != nil {
		return nil, fmt.Errorf("di: token verifier: %w", err)
	}

	users := NewUserRepository(rdb, cfg.Redis.CacheTTL, db)
	authUC, err := authusecase.NewAuthUsecase(users, hasher, issuer)
	if err != nil {
		return nil, fmt.Errorf("di: auth usecase: %w", err)
	}

	bookUC := catalogusecase.NewBookUsecase(catalogadapters.NewBookRepository(db))

	return &Handlers{
		Auth:     authhandler.NewAuthHandler(authUC, authhandler.WithUniformLoginErrors(cfg.Auth.UniformLoginErrors)),
		Books:    cataloghandler.NewBookHandler(bookUC),
		Verifier: verifier,
	}, nil
}
