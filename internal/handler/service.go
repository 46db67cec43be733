package handler

import (
	"context"

	"github.com/Astemirdum/readinglist-service/internal/model"
	"github.com/Astemirdum/readinglist-service/internal/service/auth"
	"github.com/Astemirdum/readinglist-service/internal/service/books"
	"github.com/Astemirdum/readinglist-service/internal/service/catalog"
)

//go:generate go run github.com/golang/mock/mockgen -source=service.go -destination=mocks/mock.go

var (
	_ AuthService    = (*auth.Service)(nil)
	_ BooksService   = (*books.Service)(nil)
	_ CatalogService = (*catalog.Service)(nil)
)

type AuthService interface {
	SignUp(ctx context.Context, username, password string) error
	Login(ctx context.Context, username, password string) (string, error)
}

type BooksService interface {
	List(ctx context.Context, userID int) ([]model.BookView, error)
	Save(ctx context.Context, userID int, googleBooksID string, status model.Status) error
	UpdateStatus(ctx context.Context, entryID, userID int, status model.Status) error
	Delete(ctx context.Context, entryID, userID int) error
	GetForEdit(ctx context.Context, entryID, userID int) (model.BookEntry, error)
}

type CatalogService interface {
	FetchByID(ctx context.Context, googleBooksID string) (model.Volume, error)
	Search(ctx context.Context, query string) ([]model.Volume, error)
}
