package auth_test

import (
	"context"
	"testing"

	"github.com/Astemirdum/readinglist-service/internal/errs"
	"github.com/Astemirdum/readinglist-service/internal/model"
	mock_repository "github.com/Astemirdum/readinglist-service/internal/repository/mocks"
	authSvc "github.com/Astemirdum/readinglist-service/internal/service/auth"
	"github.com/Astemirdum/readinglist-service/pkg/auth"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

func TestService_SignUp(t *testing.T) {
	t.Parallel()
	c := gomock.NewController(t)
	defer c.Finish()

	repo := mock_repository.NewMockRepository(c)
	repo.EXPECT().
		CreateUser(gomock.Any(), "alice", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, hash string) (int, error) {
			// the stored value must be a valid bcrypt hash of the password
			require.NoError(t, bcrypt.CompareHashAndPassword([]byte(hash), []byte("s3cret")))
			return 1, nil
		})

	svc := authSvc.NewService(repo, auth.NewManager("test"), zap.NewExample())
	require.NoError(t, svc.SignUp(context.Background(), "alice", "s3cret"))
}

func TestService_SignUp_Duplicate(t *testing.T) {
	t.Parallel()
	c := gomock.NewController(t)
	defer c.Finish()

	repo := mock_repository.NewMockRepository(c)
	repo.EXPECT().
		CreateUser(gomock.Any(), "alice", gomock.Any()).
		Return(0, errs.ErrDuplicateUser)

	svc := authSvc.NewService(repo, auth.NewManager("test"), zap.NewExample())
	require.ErrorIs(t, svc.SignUp(context.Background(), "alice", "s3cret"), errs.ErrDuplicateUser)
}

func TestService_Login(t *testing.T) {
	t.Parallel()

	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	require.NoError(t, err)

	tests := []struct {
		name     string
		username string
		password string
		mock     func(r *mock_repository.MockRepository)
		wantErr  error
	}{
		{
			name:     "ok",
			username: "alice",
			password: "s3cret",
			mock: func(r *mock_repository.MockRepository) {
				r.EXPECT().GetUser(gomock.Any(), "alice").
					Return(model.User{ID: 7, Username: "alice", PasswordHash: string(hash)}, nil)
			},
		},
		{
			name:     "unknown user",
			username: "nouser",
			password: "x",
			mock: func(r *mock_repository.MockRepository) {
				r.EXPECT().GetUser(gomock.Any(), "nouser").
					Return(model.User{}, errs.ErrNotFound)
			},
			wantErr: errs.ErrInvalidCredentials,
		},
		{
			name:     "wrong password",
			username: "alice",
			password: "wrong",
			mock: func(r *mock_repository.MockRepository) {
				r.EXPECT().GetUser(gomock.Any(), "alice").
					Return(model.User{ID: 7, Username: "alice", PasswordHash: string(hash)}, nil)
			},
			wantErr: errs.ErrInvalidCredentials,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			c := gomock.NewController(t)
			defer c.Finish()

			repo := mock_repository.NewMockRepository(c)
			tt.mock(repo)

			tokens := auth.NewManager("test")
			svc := authSvc.NewService(repo, tokens, zap.NewExample())

			token, err := svc.Login(context.Background(), tt.username, tt.password)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				require.Empty(t, token)
				return
			}
			require.NoError(t, err)

			claims, err := tokens.Parse(token)
			require.NoError(t, err)
			require.Equal(t, 7, claims.UserID)
			require.Equal(t, "alice", claims.Username)
		})
	}
}
