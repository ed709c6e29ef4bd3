package service

import (
	"testing"

	"boardhub/database"
	"boardhub/database/model"

	"github.com/stretchr/testify/assert"
)

func TestAdminListUsersAggregates(t *testing.T) {
	setup()
	defer teardown()

	alice := signupUser(t, "a@test.com", "Alice")
	bob := signupUser(t, "b@test.com", "Bob")

	projectService := ProjectService{}
	boardService := BoardService{}
	adminService := UserAdminService{}

	project, err := projectService.Create(alice.Id, "Launch", "")
	assert.NoError(t, err)
	_, err = boardService.Create(alice.Id, "Sprint board", nil)
	assert.NoError(t, err)
	_, err = projectService.Invite(alice.Id, project.Id, bob.Email, "")
	assert.NoError(t, err)

	users, err := adminService.ListUsers()
	assert.NoError(t, err)
	assert.Len(t, users, 2)

	byId := make(map[string]int)
	for i, u := range users {
		byId[u.Id] = i
	}
	assert.EqualValues(t, 1, users[byId[alice.Id]].ProjectCount)
	assert.EqualValues(t, 1, users[byId[alice.Id]].BoardCount)
	assert.EqualValues(t, 1, users[byId[bob.Id]].ProjectCount)
	assert.EqualValues(t, 0, users[byId[bob.Id]].BoardCount)
}

func TestSelfBanRejectedBeforeMutation(t *testing.T) {
	setup()
	defer teardown()

	alice := signupUser(t, "a@test.com", "Alice")
	adminService := UserAdminService{}

	_, err := adminService.ToggleBan(alice.Id, alice.Id)
	assert.EqualError(t, err, "Cannot ban yourself")

	var user model.User
	assert.NoError(t, database.GetDB().Where("id = ?", alice.Id).First(&user).Error)
	assert.False(t, user.IsBanned)
}

func TestToggleBanAndAccess(t *testing.T) {
	setup()
	defer teardown()

	alice := signupUser(t, "a@test.com", "Alice")
	bob := signupUser(t, "b@test.com", "Bob")

	adminService := UserAdminService{}

	banned, err := adminService.ToggleBan(alice.Id, bob.Id)
	assert.NoError(t, err)
	assert.True(t, banned.IsBanned)

	unbanned, err := adminService.ToggleBan(alice.Id, bob.Id)
	assert.NoError(t, err)
	assert.False(t, unbanned.IsBanned)

	_, err = adminService.ToggleAccess(alice.Id, alice.Id)
	assert.EqualError(t, err, "Cannot change your own access")

	promoted, err := adminService.ToggleAccess(alice.Id, bob.Id)
	assert.NoError(t, err)
	assert.True(t, promoted.IsAdmin)

	_, err = adminService.ToggleBan(alice.Id, "no-such-user")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAdminRename(t *testing.T) {
	setup()
	defer teardown()

	alice := signupUser(t, "a@test.com", "Alice")
	adminService := UserAdminService{}

	renamed, err := adminService.Rename(alice.Id, "Alicia")
	assert.NoError(t, err)
	assert.Equal(t, "Alicia", renamed.Name)

	_, err = adminService.Rename(alice.Id, "")
	assert.EqualError(t, err, "Name required")
}

func TestForcedMembershipRemoval(t *testing.T) {
	setup()
	defer teardown()

	alice := signupUser(t, "a@test.com", "Alice")
	bob := signupUser(t, "b@test.com", "Bob")

	projectService := ProjectService{}
	boardService := BoardService{}
	adminService := UserAdminService{}

	project, err := projectService.Create(alice.Id, "Launch", "")
	assert.NoError(t, err)
	_, err = projectService.Invite(alice.Id, project.Id, bob.Email, "")
	assert.NoError(t, err)
	board, err := boardService.Create(alice.Id, "Sprint board", &project.Id)
	assert.NoError(t, err)
	_, err = boardService.Invite(alice.Id, board.Id, bob.Email, "")
	assert.NoError(t, err)

	// Owner memberships cannot be force-removed
	err = adminService.RemoveProjectMembership(alice.Id, project.Id)
	assert.EqualError(t, err, "Cannot remove the project owner")
	err = adminService.RemoveBoardMembership(alice.Id, board.Id)
	assert.EqualError(t, err, "Cannot remove the board owner")

	assert.NoError(t, adminService.RemoveProjectMembership(bob.Id, project.Id))
	assert.NoError(t, adminService.RemoveBoardMembership(bob.Id, board.Id))

	role, err := projectService.authz.ProjectRole(bob.Id, project.Id)
	assert.NoError(t, err)
	assert.Empty(t, role)
	role, err = boardService.authz.BoardRole(bob.Id, board.Id)
	assert.NoError(t, err)
	assert.Empty(t, role)
}
