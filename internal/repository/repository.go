package repository

import (
	"context"
	"database/sql"

	"github.com/Astemirdum/readinglist-service/internal/errs"
	"github.com/Astemirdum/readinglist-service/internal/model"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pkg/errors"

	sq "github.com/Masterminds/squirrel"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

//go:generate go run github.com/golang/mock/mockgen -source=repository.go -destination=mocks/mock.go

type Repository interface {
	CreateUser(ctx context.Context, username, passwordHash string) (int, error)
	GetUser(ctx context.Context, username string) (model.User, error)

	ListByUser(ctx context.Context, userID int) ([]model.BookEntry, error)
	InsertIfAbsent(ctx context.Context, userID int, googleBooksID string, status model.Status) error
	UpdateStatus(ctx context.Context, entryID, userID int, status model.Status) error
	DeleteByID(ctx context.Context, entryID, userID int) error
	GetByID(ctx context.Context, entryID, userID int) (model.BookEntry, error)
}

type repository struct {
	db  *sqlx.DB
	log *zap.Logger
}

func NewRepository(db *sqlx.DB, log *zap.Logger) (*repository, error) {
	return &repository{
		db:  db,
		log: log.Named("repo"),
	}, nil
}

const (
	usersTableName = `users`
	booksTableName = `books`
)

var qb = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

func (r *repository) CreateUser(ctx context.Context, username, passwordHash string) (int, error) {
	query, args, err := qb.Insert(usersTableName).
		Columns("username", "password_hash").
		Values(username, passwordHash).
		Suffix("returning id").
		ToSql()
	if err != nil {
		return 0, err
	}

	var id int
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&id); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return 0, errs.ErrDuplicateUser
		}
		r.log.Error("CreateUser", zap.String("q", query), zap.Error(err))
		return 0, err
	}
	return id, nil
}

func (r *repository) GetUser(ctx context.Context, username string) (model.User, error) {
	query, args, err := qb.Select("id", "username", "password_hash").
		From(usersTableName).
		Where(sq.Eq{"username": username}).
		Limit(1).
		ToSql()
	if err != nil {
		return model.User{}, err
	}

	var user model.User
	if err := r.db.GetContext(ctx, &user, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.User{}, errs.ErrNotFound
		}
		return model.User{}, err
	}
	return user, nil
}

func (r *repository) ListByUser(ctx context.Context, userID int) ([]model.BookEntry, error) {
	query, args, err := qb.Select("id", "google_books_id", "status", "user_id").
		From(booksTableName).
		Where(sq.Eq{"user_id": userID}).
		OrderBy("id asc").
		ToSql()
	if err != nil {
		return nil, err
	}

	var entries []model.BookEntry
	if err := r.db.SelectContext(ctx, &entries, query, args...); err != nil {
		return nil, err
	}
	return entries, nil
}

// InsertIfAbsent keeps the stored status when the entry already exists.
// The unique constraint on (user_id, google_books_id) makes it race-free.
func (r *repository) InsertIfAbsent(ctx context.Context, userID int, googleBooksID string, status model.Status) error {
	query, args, err := qb.Insert(booksTableName).
		Columns("google_books_id", "status", "user_id").
		Values(googleBooksID, status, userID).
		Suffix("on conflict (user_id, google_books_id) do nothing").
		ToSql()
	if err != nil {
		return err
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		r.log.Error("InsertIfAbsent", zap.String("q", query), zap.Any("args", args))
		return err
	}
	return nil
}

func (r *repository) UpdateStatus(ctx context.Context, entryID, userID int, status model.Status) error {
	query, args, err := qb.Update(booksTableName).
		Set("status", status).
		Where(sq.Eq{"id": entryID}).
		Where(sq.Eq{"user_id": userID}).
		ToSql()
	if err != nil {
		return err
	}

	// zero rows affected is not an error: entries owned by another user are skipped silently
	_, err = r.db.ExecContext(ctx, query, args...)
	return err
}

func (r *repository) DeleteByID(ctx context.Context, entryID, userID int) error {
	query, args, err := qb.Delete(booksTableName).
		Where(sq.Eq{"id": entryID}).
		Where(sq.Eq{"user_id": userID}).
		ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, query, args...)
	return err
}

func (r *repository) GetByID(ctx context.Context, entryID, userID int) (model.BookEntry, error) {
	query, args, err := qb.Select("id", "google_books_id", "status", "user_id").
		From(booksTableName).
		Where(sq.Eq{"id": entryID}).
		Where(sq.Eq{"user_id": userID}).
		Limit(1).
		ToSql()
	if err != nil {
		return model.BookEntry{}, err
	}

	var entry model.BookEntry
	if err := r.db.GetContext(ctx, &entry, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.BookEntry{}, errs.ErrNotFound
		}
		return model.BookEntry{}, err
	}
	return entry, nil
}
