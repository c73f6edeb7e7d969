package transport

import (
	"context"

	"catalogctl/internal/service"
)

// Services are the read operations one request may use
type Services struct {
	Users   service.UserService
	Catalog service.CatalogService
}

// Reader runs fn inside one read-only unit of work
type Reader interface {
	Read(ctx context.Context, fn func(svc Services) error) error
}

// ReaderFunc adapts a function to Reader
type ReaderFunc func(ctx context.Context, fn func(svc Services) error) error

func (f ReaderFunc) Read(ctx context.Context, fn func(svc Services) error) error {
	return f(ctx, fn)
}
