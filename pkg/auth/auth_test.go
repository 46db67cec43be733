package auth_test

import (
	"context"
	"testing"

	"github.com/Astemirdum/readinglist-service/pkg/auth"
	"github.com/stretchr/testify/require"
)

func TestManager_TokenRoundTrip(t *testing.T) {
	t.Parallel()
	m := auth.NewManager("secret")

	token, err := m.NewToken(7, "alice")
	require.NoError(t, err)

	claims, err := m.Parse(token)
	require.NoError(t, err)
	require.Equal(t, 7, claims.UserID)
	require.Equal(t, "alice", claims.Username)
	require.NotEmpty(t, claims.ID)
}

func TestManager_Parse_Invalid(t *testing.T) {
	t.Parallel()
	m := auth.NewManager("secret")

	_, err := m.Parse("garbage")
	require.ErrorIs(t, err, auth.ErrInvalidToken)

	// token signed with a different key is rejected
	other := auth.NewManager("other-secret")
	token, err := other.NewToken(7, "alice")
	require.NoError(t, err)
	_, err = m.Parse(token)
	require.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestUserContext(t *testing.T) {
	t.Parallel()

	_, ok := auth.UserID(context.Background())
	require.False(t, ok)

	ctx := auth.SetUserContext(context.Background(), 7, "alice")
	id, ok := auth.UserID(ctx)
	require.True(t, ok)
	require.Equal(t, 7, id)
}
