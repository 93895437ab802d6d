package domain

import (
	"context"
	"errors"
)

var (
	// ErrNotConfigured marks an adapter whose API credential is missing.
	// Callers degrade to empty output instead of failing the request.
	ErrNotConfigured = errors.New("adapter not configured")

	ErrDuplicateUser = errors.New("username already taken")
	ErrUserNotFound  = errors.New("user not found")
)

// PlaceSearcher pages through the external text-search endpoint.
// Partial results on upstream failure are expected; an empty slice with a nil
// error is the designed outcome when no credential is configured.
type PlaceSearcher interface {
	FetchPlaces(ctx context.Context, query string, lat, lng, radiusKm float64) ([]PlaceRecord, error)
}

// Embedder encodes texts into fixed-dimension vectors.
type Embedder interface {
	Embed(ctx context.Context, texts []string) ([][]float64, error)
}

// FeatureModel is the generative model used for review analysis.
type FeatureModel interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}

type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
	Del(ctx context.Context, key string) error
}

type User struct {
	ID           int64
	Username     string
	PasswordHash string
}

type UserStore interface {
	CreateUser(ctx context.Context, username, passwordHash string) error
	GetUser(ctx context.Context, username string) (User, error)
}
