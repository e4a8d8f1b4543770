package service

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"testing"

	"ClubHub/internal/model"
	"ClubHub/internal/permission"
	"ClubHub/internal/pkg"
	"ClubHub/internal/repository/mysql"
	"ClubHub/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChessClubScenario(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	a := e.user(t, "alice")
	b := e.user(t, "bob")
	members := &mysql.ClubMemberRepository{DB: e.db}

	club, err := e.clubs.Create(ctx, a, "Chess Club", "Openings and endgames")
	require.NoError(t, err)
	assert.Equal(t, a.ID, club.CreatorID)
	ma, err := members.Find(ctx, club.ID, a.ID)
	require.NoError(t, err)
	assert.True(t, ma.CanPost)

	require.NoError(t, e.membership.Join(ctx, b, club.ID))
	mb, err := members.Find(ctx, club.ID, b.ID)
	require.NoError(t, err)
	assert.False(t, mb.CanPost)

	_, err = e.posts.Create(ctx, b, club.ID, "Hello", "First post")
	assert.ErrorIs(t, err, pkg.ErrForbidden)

	require.NoError(t, e.membership.SetPosting(ctx, a, club.ID, b.ID, true))
	_, err = e.posts.Create(ctx, b, club.ID, "Hello", "First post")
	require.NoError(t, err)

	require.NoError(t, e.membership.TransferOwnership(ctx, a, club.ID, b.ID))
	mb, err = members.Find(ctx, club.ID, b.ID)
	require.NoError(t, err)
	assert.True(t, mb.CanPost)
	got, err := (&mysql.ClubRepository{DB: e.db}).FindByID(ctx, club.ID)
	require.NoError(t, err)
	assert.Equal(t, b.ID, got.CreatorID)
	_, err = members.Find(ctx, club.ID, a.ID)
	assert.NoError(t, err, "previous creator stays a member")

	err = e.membership.TransferOwnership(ctx, a, club.ID, b.ID)
	assert.ErrorIs(t, err, pkg.ErrForbidden)
	_, err = e.clubs.Delete(ctx, a, club.ID, "Chess Club")
	assert.ErrorIs(t, err, pkg.ErrForbidden)

	assert.Equal(t, []string{
		ActivityClubCreated,
		ActivityMemberJoined,
		ActivityPostingGranted,
		ActivityOwnershipTransferred,
	}, e.pub.types())
	clubKey := "club:" + strconv.FormatUint(club.ID, 10)
	assert.Equal(t, []string{clubKey, clubKey, clubKey, clubKey}, e.pub.keys)
}

func TestJoin_TwiceIsConflict(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	a := e.user(t, "alice")
	b := e.user(t, "bob")
	club, err := e.clubs.Create(ctx, a, "Chess Club", "d")
	require.NoError(t, err)

	require.NoError(t, e.membership.Join(ctx, b, club.ID))
	err = e.membership.Join(ctx, b, club.ID)
	assert.ErrorIs(t, err, pkg.ErrConflict)
	assert.Equal(t, "You are already a member of this club.", pkg.Message(err))
	assert.Equal(t, int64(1), testutil.Count(t, e.db, "club_memberships", "user_id = ? AND club_id = ?", b.ID, club.ID))

	// the creator is already a member too
	assert.ErrorIs(t, e.membership.Join(ctx, a, club.ID), pkg.ErrConflict)
}

func TestJoin_ConcurrentAttemptsLeaveOneRow(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	a := e.user(t, "alice")
	b := e.user(t, "bob")
	club, err := e.clubs.Create(ctx, a, "Chess Club", "d")
	require.NoError(t, err)

	const attempts = 8
	errs := make([]error, attempts)
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = e.membership.Join(ctx, b, club.ID)
		}(i)
	}
	wg.Wait()

	var ok, conflicts int
	for _, err := range errs {
		switch {
		case err == nil:
			ok++
		case errors.Is(err, pkg.ErrConflict):
			conflicts++
		}
	}
	assert.Equal(t, 1, ok)
	assert.Equal(t, attempts-1, conflicts)
	assert.Equal(t, int64(1), testutil.Count(t, e.db, "club_memberships", "user_id = ? AND club_id = ?", b.ID, club.ID))
}

func TestJoin_UnknownClub(t *testing.T) {
	e := newEnv(t)
	b := e.user(t, "bob")
	assert.ErrorIs(t, e.membership.Join(context.Background(), b, 999), pkg.ErrNotFound)
}

func TestLeave(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	a := e.user(t, "alice")
	b := e.user(t, "bob")
	club, err := e.clubs.Create(ctx, a, "Chess Club", "d")
	require.NoError(t, err)
	require.NoError(t, e.membership.Join(ctx, b, club.ID))

	err = e.membership.Leave(ctx, a, club.ID)
	assert.ErrorIs(t, err, pkg.ErrForbidden)
	assert.Equal(t, int64(2), testutil.Count(t, e.db, "club_memberships", "club_id = ?", club.ID))

	require.NoError(t, e.membership.Leave(ctx, b, club.ID))
	assert.Equal(t, int64(1), testutil.Count(t, e.db, "club_memberships", "club_id = ?", club.ID))

	assert.ErrorIs(t, e.membership.Leave(ctx, b, club.ID), pkg.ErrNotFound)
}

func TestCreatorIsProtectedFromMemberManagement(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	a := e.user(t, "alice")
	root := e.superadmin(t, "root")
	club, err := e.clubs.Create(ctx, a, "Chess Club", "d")
	require.NoError(t, err)

	for name, by := range map[string]permission.Actor{"creator": a, "superadmin": root} {
		t.Run(name, func(t *testing.T) {
			assert.ErrorIs(t, e.membership.SetPosting(ctx, by, club.ID, a.ID, false), pkg.ErrForbidden)
			assert.ErrorIs(t, e.membership.Kick(ctx, by, club.ID, a.ID), pkg.ErrForbidden)
		})
	}
	assert.ErrorIs(t, e.membership.Leave(ctx, a, club.ID), pkg.ErrForbidden)

	m, err := (&mysql.ClubMemberRepository{DB: e.db}).Find(ctx, club.ID, a.ID)
	require.NoError(t, err)
	assert.True(t, m.CanPost)
}

func TestKickAndSetPosting(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	a := e.user(t, "alice")
	b := e.user(t, "bob")
	c := e.user(t, "carol")
	root := e.superadmin(t, "root")
	club, err := e.clubs.Create(ctx, a, "Chess Club", "d")
	require.NoError(t, err)
	require.NoError(t, e.membership.Join(ctx, b, club.ID))
	require.NoError(t, e.membership.Join(ctx, c, club.ID))

	// an ordinary member cannot manage others
	assert.ErrorIs(t, e.membership.SetPosting(ctx, b, club.ID, c.ID, true), pkg.ErrForbidden)
	assert.ErrorIs(t, e.membership.Kick(ctx, b, club.ID, c.ID), pkg.ErrForbidden)

	// superadmin moderates without being a member
	require.NoError(t, e.membership.SetPosting(ctx, root, club.ID, c.ID, true))
	require.NoError(t, e.membership.Kick(ctx, root, club.ID, c.ID))
	assert.ErrorIs(t, e.membership.Kick(ctx, a, club.ID, c.ID), pkg.ErrNotFound)
	assert.ErrorIs(t, e.membership.SetPosting(ctx, a, club.ID, c.ID, true), pkg.ErrNotFound)

	require.NoError(t, e.membership.Kick(ctx, a, club.ID, b.ID))
	assert.Equal(t, int64(1), testutil.Count(t, e.db, "club_memberships", "club_id = ?", club.ID))
}

func TestTransferOwnership_Rules(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	a := e.user(t, "alice")
	b := e.user(t, "bob")
	outsider := e.user(t, "carol")
	root := e.superadmin(t, "root")
	club, err := e.clubs.Create(ctx, a, "Chess Club", "d")
	require.NoError(t, err)
	require.NoError(t, e.membership.Join(ctx, b, club.ID))
	require.NoError(t, e.membership.Join(ctx, root, club.ID))

	// superadmin may delete but not transfer
	assert.ErrorIs(t, e.membership.TransferOwnership(ctx, root, club.ID, b.ID), pkg.ErrForbidden)
	assert.ErrorIs(t, e.membership.TransferOwnership(ctx, b, club.ID, b.ID), pkg.ErrForbidden)

	assert.ErrorIs(t, e.membership.TransferOwnership(ctx, a, club.ID, a.ID), pkg.ErrValidation)
	assert.ErrorIs(t, e.membership.TransferOwnership(ctx, a, club.ID, outsider.ID), pkg.ErrValidation)

	got, err := (&mysql.ClubRepository{DB: e.db}).FindByID(ctx, club.ID)
	require.NoError(t, err)
	assert.Equal(t, a.ID, got.CreatorID)
}

func TestListMembersAndCandidates(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	a := e.user(t, "alice")
	b := e.user(t, "bob")
	club, err := e.clubs.Create(ctx, a, "Chess Club", "d")
	require.NoError(t, err)
	require.NoError(t, e.membership.Join(ctx, b, club.ID))

	rows, err := e.membership.ListMembers(ctx, a, club.ID)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.True(t, rows[0].IsAdmin)
	assert.Equal(t, "alice", rows[0].Username)
	assert.False(t, rows[1].IsAdmin)

	_, err = e.membership.ListMembers(ctx, b, club.ID)
	assert.ErrorIs(t, err, pkg.ErrForbidden)

	candidates, err := e.membership.TransferCandidates(ctx, a, club.ID)
	require.NoError(t, err)
	require.Len(t, candidates, 1)
	assert.Equal(t, b.ID, candidates[0].UserID)
}

func TestActivityPublishFailureDoesNotFailOperation(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	u := testutil.CreateUser(t, db, "alice", model.RoleMember)
	svc := NewClubService(db, NewActivityRecorder(failingPublisher{}))

	_, err := svc.Create(ctx, actorOf(u), "Chess Club", "d")
	require.NoError(t, err)
	assert.Equal(t, int64(1), testutil.Count(t, db, "clubs"))
}

type failingPublisher struct{}

func (failingPublisher) Send(context.Context, string, []byte) error {
	return errors.New("kafka: broker unreachable")
}
