package service

import (
	"testing"

	"boardhub/database/model"

	"github.com/stretchr/testify/assert"
)

func TestProjectInviteScenario(t *testing.T) {
	setup()
	defer teardown()

	alice := signupUser(t, "a@test.com", "Alice")
	bob := signupUser(t, "b@test.com", "Bob")

	projectService := ProjectService{}

	project, err := projectService.Create(alice.Id, "Launch", "Q3 launch work")
	assert.NoError(t, err)

	// Creator got an admin membership row
	role, err := projectService.authz.ProjectRole(alice.Id, project.Id)
	assert.NoError(t, err)
	assert.Equal(t, model.RoleAdmin, role)

	// Bob cannot see the project yet
	_, err = projectService.Detail(bob.Id, project.Id)
	assert.ErrorIs(t, err, ErrForbidden)

	member, err := projectService.Invite(alice.Id, project.Id, "b@test.com", "")
	assert.NoError(t, err)
	assert.Equal(t, model.RoleMember, member.Role)

	// Inviting twice is rejected
	_, err = projectService.Invite(alice.Id, project.Id, "b@test.com", "")
	assert.EqualError(t, err, "Already a member")

	// Unknown email is not found
	_, err = projectService.Invite(alice.Id, project.Id, "ghost@test.com", "")
	assert.ErrorIs(t, err, ErrNotFound)

	// Bob now sees the project and appears in the roster as "member"
	view, err := projectService.Detail(bob.Id, project.Id)
	assert.NoError(t, err)
	assert.Len(t, view.Members, 2)
	var bobRole string
	for _, m := range view.Members {
		if m.UserId == bob.Id {
			bobRole = m.Role
		}
	}
	assert.Equal(t, model.RoleMember, bobRole)

	// Members may invite too; project invites are intentionally loose
	carol := signupUser(t, "c@test.com", "Carol")
	_, err = projectService.Invite(bob.Id, project.Id, carol.Email, "")
	assert.NoError(t, err)
}

func TestProjectOwnerRemovalBlocked(t *testing.T) {
	setup()
	defer teardown()

	alice := signupUser(t, "a@test.com", "Alice")
	projectService := ProjectService{}

	project, err := projectService.Create(alice.Id, "Launch", "")
	assert.NoError(t, err)

	err = projectService.RemoveMember(alice.Id, project.Id, alice.Id)
	assert.EqualError(t, err, "Cannot remove the project owner")

	// The membership row is intact
	role, err := projectService.authz.ProjectRole(alice.Id, project.Id)
	assert.NoError(t, err)
	assert.Equal(t, model.RoleAdmin, role)
}

func TestProjectListAndRemoveMember(t *testing.T) {
	setup()
	defer teardown()

	alice := signupUser(t, "a@test.com", "Alice")
	bob := signupUser(t, "b@test.com", "Bob")

	projectService := ProjectService{}

	project, err := projectService.Create(alice.Id, "Launch", "")
	assert.NoError(t, err)
	_, err = projectService.Invite(alice.Id, project.Id, bob.Email, "")
	assert.NoError(t, err)

	// Both see it in their listings
	forBob, err := projectService.ListForUser(bob.Id)
	assert.NoError(t, err)
	assert.Len(t, forBob, 1)

	// Member without admin role cannot remove others
	err = projectService.RemoveMember(bob.Id, project.Id, alice.Id)
	assert.ErrorIs(t, err, ErrForbidden)

	// Owner removes Bob; his listing empties
	assert.NoError(t, projectService.RemoveMember(alice.Id, project.Id, bob.Id))
	forBob, err = projectService.ListForUser(bob.Id)
	assert.NoError(t, err)
	assert.Len(t, forBob, 0)
}
