package postgres

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"gorm.io/gorm"

	domain "user-account-service/internal/domain/user"
	pkgerrors "user-account-service/pkg/errors"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	// Migrate the schema
	err = db.AutoMigrate(&UserSchema{})
	require.NoError(t, err)

	return db
}

func setupRepo(t *testing.T) *UserRepoPG {
	return NewUserRepoPG(setupTestDB(t), zaptest.NewLogger(t))
}

func sampleUser(email, username string) *domain.User {
	return &domain.User{
		FirstName: "Alice",
		LastName:  "Smith",
		Email:     email,
		Password:  "$2a$10$abcdefghijklmnopqrstuv",
		UserName:  username,
	}
}

func TestUserRepoPG_Create_AssignsID(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	id, err := repo.Create(ctx, sampleUser("a@x.com", "alice"))
	require.NoError(t, err)
	assert.Greater(t, id, int64(0))

	found, err := repo.GetByID(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "a@x.com", found.Email)
	assert.Equal(t, "alice", found.UserName)
	assert.Equal(t, "Alice", found.FirstName)
}

func TestUserRepoPG_Create_NilUser(t *testing.T) {
	repo := setupRepo(t)

	_, err := repo.Create(context.Background(), nil)
	assert.Error(t, err)
}

func TestUserRepoPG_Create_DuplicateEmail(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	_, err := repo.Create(ctx, sampleUser("a@x.com", "alice"))
	require.NoError(t, err)

	_, err = repo.Create(ctx, sampleUser("a@x.com", "bob"))
	require.Error(t, err)

	var conflict *pkgerrors.AlreadyExistsError
	assert.ErrorAs(t, err, &conflict)
}

func TestUserRepoPG_Create_DuplicateUsername(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	_, err := repo.Create(ctx, sampleUser("a@x.com", "alice"))
	require.NoError(t, err)

	_, err = repo.Create(ctx, sampleUser("b@x.com", "alice"))
	require.Error(t, err)

	var conflict *pkgerrors.AlreadyExistsError
	assert.ErrorAs(t, err, &conflict)
}

func TestUserRepoPG_GetByID_NotFound(t *testing.T) {
	repo := setupRepo(t)

	found, err := repo.GetByID(context.Background(), 999)
	require.NoError(t, err)
	assert.Nil(t, found)
}

func TestUserRepoPG_GetByEmail(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	_, err := repo.Create(ctx, sampleUser("a@x.com", "alice"))
	require.NoError(t, err)

	found, err := repo.GetByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "alice", found.UserName)

	missing, err := repo.GetByEmail(ctx, "nobody@x.com")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestUserRepoPG_GetByUsername(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	_, err := repo.Create(ctx, sampleUser("a@x.com", "alice"))
	require.NoError(t, err)

	found, err := repo.GetByUsername(ctx, "alice")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "a@x.com", found.Email)

	missing, err := repo.GetByUsername(ctx, "nobody")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestUserRepoPG_List(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	// Empty store lists as an empty slice, not an error.
	users, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, users)

	_, err = repo.Create(ctx, sampleUser("a@x.com", "alice"))
	require.NoError(t, err)
	_, err = repo.Create(ctx, sampleUser("b@x.com", "bob"))
	require.NoError(t, err)

	users, err = repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "a@x.com", users[0].Email)
	assert.Equal(t, "b@x.com", users[1].Email)
}

func TestUserRepoPG_Delete(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	id, err := repo.Create(ctx, sampleUser("a@x.com", "alice"))
	require.NoError(t, err)

	deleted, err := repo.Delete(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	found, err := repo.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Nil(t, found)
}

func TestUserRepoPG_Delete_MissingRow(t *testing.T) {
	repo := setupRepo(t)

	deleted, err := repo.Delete(context.Background(), 999)
	require.NoError(t, err)
	assert.Equal(t, int64(0), deleted)
}

func TestUserRepoPG_Delete_InvalidID(t *testing.T) {
	repo := setupRepo(t)

	_, err := repo.Delete(context.Background(), 0)
	assert.Error(t, err)
}
