package session

import (
	"os"
	"path/filepath"
	"testing"

	"chitchat-client/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStoreWithoutStoredToken(t *testing.T) {
	s := NewStore(t.TempDir())

	assert.False(t, s.IsAuthenticated())
	assert.Empty(t, s.Token())
	assert.Nil(t, s.User())
}

func TestNewStoreWithStoredTokenOnly(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "access_token"), []byte("stored-token"), 0o600))

	s := NewStore(dir)

	assert.True(t, s.IsAuthenticated())
	assert.Equal(t, "stored-token", s.Token())
	// The user stays unknown until a login populates it.
	assert.Nil(t, s.User())
}

func TestLoginPersistsAndRestores(t *testing.T) {
	dir := t.TempDir()
	s := NewStore(dir)

	user := &models.UserInfo{ID: 7, UserName: "priya", Email: "priya@example.com"}
	require.NoError(t, s.Login(user, "fresh-token"))

	assert.True(t, s.IsAuthenticated())
	assert.Equal(t, "fresh-token", s.Token())
	assert.Equal(t, user, s.User())

	restored := NewStore(dir)
	assert.True(t, restored.IsAuthenticated())
	assert.Equal(t, "fresh-token", restored.Token())
	require.NotNil(t, restored.User())
	assert.Equal(t, "priya", restored.User().UserName)
}

func TestLogoutClearsStateAndStorage(t *testing.T) {
	dir := t.TempDir()
	s := NewStore(dir)
	require.NoError(t, s.Login(&models.UserInfo{ID: 1, UserName: "rohan"}, "tok"))

	s.Logout()

	assert.False(t, s.IsAuthenticated())
	assert.Empty(t, s.Token())
	assert.Nil(t, s.User())

	_, err := os.Stat(filepath.Join(dir, "access_token"))
	assert.True(t, os.IsNotExist(err), "token file should be removed")
	_, err = os.Stat(filepath.Join(dir, "user"))
	assert.True(t, os.IsNotExist(err), "user file should be removed")

	restored := NewStore(dir)
	assert.False(t, restored.IsAuthenticated())
}

func TestNewStoreIgnoresBlankToken(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "access_token"), []byte("  \n"), 0o600))

	s := NewStore(dir)
	assert.False(t, s.IsAuthenticated())
}
