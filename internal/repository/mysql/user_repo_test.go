package mysql_test

import (
	"context"
	"testing"
	"time"

	"ClubHub/internal/model"
	"ClubHub/internal/repository/mysql"
	"ClubHub/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestUserRepository_DeleteCascades(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	alice := testutil.CreateUser(t, db, "alice", model.RoleMember)
	bob := testutil.CreateUser(t, db, "bob", model.RoleMember)

	clubs := &mysql.ClubRepository{DB: db}
	members := &mysql.ClubMemberRepository{DB: db}
	posts := &mysql.PostRepository{DB: db}
	events := &mysql.EventRepository{DB: db}
	users := &mysql.UserRepository{DB: db}

	own := &model.Club{Name: "Chess Club", Description: "d", CreatorID: alice.ID}
	require.NoError(t, clubs.Create(ctx, own))
	other := &model.Club{Name: "Go Club", Description: "d", CreatorID: bob.ID}
	require.NoError(t, clubs.Create(ctx, other))
	require.NoError(t, members.Join(ctx, &model.ClubMembership{UserID: alice.ID, ClubID: other.ID}))
	require.NoError(t, members.Join(ctx, &model.ClubMembership{UserID: bob.ID, ClubID: own.ID}))

	require.NoError(t, posts.Create(ctx, &model.Post{Title: "t", Content: "c", UserID: alice.ID, ClubID: other.ID}))
	require.NoError(t, posts.Create(ctx, &model.Post{Title: "t", Content: "c", UserID: bob.ID, ClubID: own.ID}))
	require.NoError(t, events.Create(ctx, &model.Event{Name: "n", Description: "d", Location: "l",
		EventDatetime: time.Now().UTC().Add(time.Hour), UserID: alice.ID, ClubID: other.ID}))

	n, err := users.Delete(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	assert.Zero(t, testutil.Count(t, db, "clubs", "creator_id = ? OR id = ?", alice.ID, own.ID))
	assert.Zero(t, testutil.Count(t, db, "club_memberships", "user_id = ? OR club_id = ?", alice.ID, own.ID))
	assert.Zero(t, testutil.Count(t, db, "posts", "user_id = ? OR club_id = ?", alice.ID, own.ID))
	assert.Zero(t, testutil.Count(t, db, "events", "user_id = ? OR club_id = ?", alice.ID, own.ID))

	// bob's own club is untouched
	assert.Equal(t, int64(1), testutil.Count(t, db, "clubs"))
	assert.Equal(t, int64(1), testutil.Count(t, db, "club_memberships", "club_id = ?", other.ID))
}

func TestUserRepository_UniqueAndLookups(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	users := &mysql.UserRepository{DB: db}

	require.NoError(t, users.Create(ctx, &model.User{Username: "alice", Email: "a@example.com", PasswordHash: "x", Role: model.RoleMember}))
	err := users.Create(ctx, &model.User{Username: "alice", Email: "other@example.com", PasswordHash: "x", Role: model.RoleMember})
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
	err = users.Create(ctx, &model.User{Username: "alice2", Email: "a@example.com", PasswordHash: "x", Role: model.RoleMember})
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)

	u, err := users.FindByEmail(ctx, "a@example.com")
	require.NoError(t, err)
	assert.Equal(t, "alice", u.Username)

	_, err = users.FindByUsername(ctx, "nobody")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	n, err := users.UpdateRole(ctx, u.ID, model.RoleSuperAdmin)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	u, err = users.FindByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, model.RoleSuperAdmin, u.Role)
}
