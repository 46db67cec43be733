package books

import (
	"context"

	"github.com/Astemirdum/readinglist-service/internal/model"
	"github.com/Astemirdum/readinglist-service/internal/repository"
	"github.com/Astemirdum/readinglist-service/pkg/kafka"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Catalog is the slice of the external catalog client the record service needs.
type Catalog interface {
	FetchByID(ctx context.Context, googleBooksID string) (model.Volume, error)
}

type Enqueuer interface {
	Enqueue(topic string, v any) error
}

// Service joins persisted entries with live catalog lookups.
type Service struct {
	log     *zap.Logger
	repo    repository.Repository
	catalog Catalog
	enq     Enqueuer
}

func NewService(repo repository.Repository, catalog Catalog, enq Enqueuer, log *zap.Logger) *Service {
	return &Service{
		log:     log.Named("books"),
		repo:    repo,
		catalog: catalog,
		enq:     enq,
	}
}

const fetchLimit = 8

// List returns the user's entries ordered by id, enriched with catalog
// metadata. Entries whose catalog lookup fails are dropped from the result.
func (s *Service) List(ctx context.Context, userID int) ([]model.BookView, error) {
	entries, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	views := make([]*model.BookView, len(entries))
	gg, ctx := errgroup.WithContext(ctx)
	gg.SetLimit(fetchLimit)
	for i, entry := range entries {
		i, entry := i, entry
		gg.Go(func() error {
			volume, err := s.catalog.FetchByID(ctx, entry.GoogleBooksID)
			if err != nil {
				s.log.Debug("drop entry on failed lookup",
					zap.Int("id", entry.ID), zap.String("googleBooksId", entry.GoogleBooksID))
				return nil
			}
			views[i] = &model.BookView{
				ID:            entry.ID,
				GoogleBooksID: entry.GoogleBooksID,
				Status:        entry.Status,
				Title:         volume.Title(),
				Author:        volume.Author(),
			}
			return nil
		})
	}
	if err := gg.Wait(); err != nil {
		return nil, err
	}

	list := make([]model.BookView, 0, len(entries))
	for _, v := range views {
		if v != nil {
			list = append(list, *v)
		}
	}
	return list, nil
}

// Save inserts the entry unless the user already has one for this volume.
// An existing entry keeps its status.
func (s *Service) Save(ctx context.Context, userID int, googleBooksID string, status model.Status) error {
	if status == "" {
		status = model.StatusToRead
	}
	if err := s.repo.InsertIfAbsent(ctx, userID, googleBooksID, status); err != nil {
		return err
	}
	s.publish(model.ReadingEvent{
		Type:          model.EventSaved,
		UserID:        userID,
		GoogleBooksID: googleBooksID,
		Status:        status,
	})
	return nil
}

func (s *Service) UpdateStatus(ctx context.Context, entryID, userID int, status model.Status) error {
	if err := s.repo.UpdateStatus(ctx, entryID, userID, status); err != nil {
		return err
	}
	s.publish(model.ReadingEvent{
		Type:    model.EventUpdated,
		UserID:  userID,
		EntryID: entryID,
		Status:  status,
	})
	return nil
}

func (s *Service) Delete(ctx context.Context, entryID, userID int) error {
	if err := s.repo.DeleteByID(ctx, entryID, userID); err != nil {
		return err
	}
	s.publish(model.ReadingEvent{
		Type:    model.EventDeleted,
		UserID:  userID,
		EntryID: entryID,
	})
	return nil
}

func (s *Service) GetForEdit(ctx context.Context, entryID, userID int) (model.BookEntry, error) {
	return s.repo.GetByID(ctx, entryID, userID)
}

func (s *Service) publish(event model.ReadingEvent) {
	if s.enq == nil {
		return
	}
	if err := s.enq.Enqueue(kafka.EventsTopic, event); err != nil {
		s.log.Warn("enqueue reading event", zap.Error(err))
	}
}
