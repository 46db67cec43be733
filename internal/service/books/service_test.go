package books_test

import (
	"context"
	"testing"

	mock_handler "github.com/Astemirdum/readinglist-service/internal/handler/mocks"
	"github.com/Astemirdum/readinglist-service/internal/model"
	mock_repository "github.com/Astemirdum/readinglist-service/internal/repository/mocks"
	"github.com/Astemirdum/readinglist-service/internal/service/books"
	"github.com/Astemirdum/readinglist-service/pkg/kafka"
	"github.com/golang/mock/gomock"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type recordingEnqueuer struct {
	topics []string
	events []model.ReadingEvent
}

func (r *recordingEnqueuer) Enqueue(topic string, v any) error {
	r.topics = append(r.topics, topic)
	r.events = append(r.events, v.(model.ReadingEvent))
	return nil
}

func volume(id, title string, authors ...string) model.Volume {
	v := model.Volume{ID: id}
	v.VolumeInfo.Title = title
	v.VolumeInfo.Authors = authors
	return v
}

func TestService_List(t *testing.T) {
	t.Parallel()
	c := gomock.NewController(t)
	defer c.Finish()

	repo := mock_repository.NewMockRepository(c)
	cat := mock_handler.NewMockCatalogService(c)

	repo.EXPECT().ListByUser(gomock.Any(), 1).Return([]model.BookEntry{
		{ID: 10, GoogleBooksID: "a", Status: model.StatusReading, UserID: 1},
		{ID: 11, GoogleBooksID: "b", Status: model.StatusToRead, UserID: 1},
		{ID: 12, GoogleBooksID: "c", Status: model.StatusDone, UserID: 1},
	}, nil)
	cat.EXPECT().FetchByID(gomock.Any(), "a").Return(volume("a", "Dune", "Frank Herbert"), nil)
	cat.EXPECT().FetchByID(gomock.Any(), "b").Return(model.Volume{}, errors.New("upstream down"))
	cat.EXPECT().FetchByID(gomock.Any(), "c").Return(volume("c", ""), nil)

	svc := books.NewService(repo, cat, nil, zap.NewExample())

	list, err := svc.List(context.Background(), 1)
	require.NoError(t, err)

	// the failed lookup is dropped, order and statuses survive
	require.Equal(t, []model.BookView{
		{ID: 10, GoogleBooksID: "a", Status: model.StatusReading, Title: "Dune", Author: "Frank Herbert"},
		{ID: 12, GoogleBooksID: "c", Status: model.StatusDone, Title: "Unknown Title", Author: "Unknown Author"},
	}, list)
}

func TestService_List_Empty(t *testing.T) {
	t.Parallel()
	c := gomock.NewController(t)
	defer c.Finish()

	repo := mock_repository.NewMockRepository(c)
	cat := mock_handler.NewMockCatalogService(c)
	repo.EXPECT().ListByUser(gomock.Any(), 1).Return(nil, nil)

	svc := books.NewService(repo, cat, nil, zap.NewExample())
	list, err := svc.List(context.Background(), 1)
	require.NoError(t, err)
	require.Empty(t, list)
}

func TestService_Save(t *testing.T) {
	t.Parallel()
	c := gomock.NewController(t)
	defer c.Finish()

	repo := mock_repository.NewMockRepository(c)
	enq := &recordingEnqueuer{}

	repo.EXPECT().InsertIfAbsent(gomock.Any(), 1, "abc123", model.StatusReading).Return(nil)

	svc := books.NewService(repo, nil, enq, zap.NewExample())
	require.NoError(t, svc.Save(context.Background(), 1, "abc123", model.StatusReading))

	require.Equal(t, []string{kafka.EventsTopic}, enq.topics)
	require.Equal(t, model.ReadingEvent{
		Type:          model.EventSaved,
		UserID:        1,
		GoogleBooksID: "abc123",
		Status:        model.StatusReading,
	}, enq.events[0])
}

func TestService_Save_DefaultStatus(t *testing.T) {
	t.Parallel()
	c := gomock.NewController(t)
	defer c.Finish()

	repo := mock_repository.NewMockRepository(c)
	repo.EXPECT().InsertIfAbsent(gomock.Any(), 1, "abc123", model.StatusToRead).Return(nil)

	svc := books.NewService(repo, nil, nil, zap.NewExample())
	require.NoError(t, svc.Save(context.Background(), 1, "abc123", ""))
}

func TestService_UpdateStatus(t *testing.T) {
	t.Parallel()
	c := gomock.NewController(t)
	defer c.Finish()

	repo := mock_repository.NewMockRepository(c)
	enq := &recordingEnqueuer{}
	repo.EXPECT().UpdateStatus(gomock.Any(), 10, 1, model.StatusDone).Return(nil)

	svc := books.NewService(repo, nil, enq, zap.NewExample())
	require.NoError(t, svc.UpdateStatus(context.Background(), 10, 1, model.StatusDone))
	require.Equal(t, model.EventUpdated, enq.events[0].Type)
}

func TestService_Delete(t *testing.T) {
	t.Parallel()
	c := gomock.NewController(t)
	defer c.Finish()

	repo := mock_repository.NewMockRepository(c)
	enq := &recordingEnqueuer{}
	repo.EXPECT().DeleteByID(gomock.Any(), 10, 1).Return(nil)

	svc := books.NewService(repo, nil, enq, zap.NewExample())
	require.NoError(t, svc.Delete(context.Background(), 10, 1))
	require.Equal(t, model.EventDeleted, enq.events[0].Type)
}

func TestService_Save_RepoError(t *testing.T) {
	t.Parallel()
	c := gomock.NewController(t)
	defer c.Finish()

	repo := mock_repository.NewMockRepository(c)
	enq := &recordingEnqueuer{}
	repo.EXPECT().InsertIfAbsent(gomock.Any(), 1, "abc123", model.StatusToRead).
		Return(errors.New("db down"))

	svc := books.NewService(repo, nil, enq, zap.NewExample())
	require.Error(t, svc.Save(context.Background(), 1, "abc123", model.StatusToRead))
	require.Empty(t, enq.events)
}
