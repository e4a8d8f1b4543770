package permission

import (
	"testing"

	"ClubHub/internal/model"

	"github.com/stretchr/testify/assert"
)

var (
	creator    = Actor{ID: 1, Username: "alice", Role: model.RoleMember}
	member     = Actor{ID: 2, Username: "bob", Role: model.RoleMember}
	outsider   = Actor{ID: 3, Username: "carol", Role: model.RoleMember}
	superadmin = Actor{ID: 4, Username: "root", Role: model.RoleSuperAdmin}
	club       = &model.Club{ID: 10, Name: "Chess Club", CreatorID: 1}
)

func TestResolve_TransferOnlyForCreator(t *testing.T) {
	roles := []string{model.RoleMember, model.RoleSuperAdmin}
	memberships := []*model.ClubMembership{nil, {CanPost: false}, {CanPost: true}}

	for _, role := range roles {
		for _, m := range memberships {
			for _, id := range []uint64{1, 2, 4} {
				s := Resolve(Actor{ID: id, Role: role}, club, m)
				assert.Equal(t, id == club.CreatorID, s.CanTransferOwnership(), "id=%d role=%s", id, role)
			}
		}
	}
}

func TestResolve_AdminsAlwaysPost(t *testing.T) {
	stored := &model.ClubMembership{UserID: 1, ClubID: 10, CanPost: false}

	assert.True(t, Resolve(creator, club, stored).CanPost)
	assert.True(t, Resolve(creator, club, nil).CanPost)
	assert.True(t, Resolve(superadmin, club, nil).CanPost)
	assert.True(t, Resolve(superadmin, club, &model.ClubMembership{CanPost: false}).CanPost)
}

func TestResolve_MemberPostingFollowsFlag(t *testing.T) {
	s := Resolve(member, club, &model.ClubMembership{UserID: 2, ClubID: 10})
	assert.True(t, s.IsMember)
	assert.False(t, s.CanPost)

	s = Resolve(member, club, &model.ClubMembership{UserID: 2, ClubID: 10, CanPost: true})
	assert.True(t, s.CanPost)
	assert.False(t, s.IsClubAdmin)

	s = Resolve(outsider, club, nil)
	assert.False(t, s.IsMember)
	assert.False(t, s.CanPost)
	assert.False(t, s.CanViewContent())
}

func TestSet_CanEditContent(t *testing.T) {
	m := &model.ClubMembership{UserID: 2, ClubID: 10}

	assert.True(t, Resolve(member, club, m).CanEditContent(2))
	assert.False(t, Resolve(member, club, m).CanEditContent(1))
	assert.True(t, Resolve(creator, club, nil).CanEditContent(2))
	assert.True(t, Resolve(superadmin, club, nil).CanEditContent(2))
	assert.False(t, Resolve(outsider, club, nil).CanEditContent(2))
}

func TestSet_ManageAndDelete(t *testing.T) {
	cases := []struct {
		name  string
		actor Actor
		want  bool
	}{
		{"creator", creator, true},
		{"superadmin", superadmin, true},
		{"member", member, false},
		{"outsider", outsider, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := Resolve(tc.actor, club, nil)
			assert.Equal(t, tc.want, s.CanManageClub())
			assert.Equal(t, tc.want, s.CanManageMembers())
			assert.Equal(t, tc.want, s.CanDeleteClub())
		})
	}
}

func TestSet_SuperAdminDeleteTransferAsymmetry(t *testing.T) {
	s := Resolve(superadmin, club, nil)
	assert.True(t, s.CanDeleteClub())
	assert.False(t, s.CanTransferOwnership())
}
