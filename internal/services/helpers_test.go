package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/miasolution2024/mia-multi-channel-chat-sub002/internal/store"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// setupTestStore opens an isolated shared in-memory SQLite database
func setupTestStore(t *testing.T) *store.Store {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.New().String())
	s, err := store.New(context.Background(), "sqlite", dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}
