package service

import (
	"testing"

	"boardhub/database"
	"boardhub/database/model"

	"github.com/stretchr/testify/assert"
)

func TestBoardAccessRequiresMembership(t *testing.T) {
	setup()
	defer teardown()

	alice := signupUser(t, "a@test.com", "Alice")
	mallory := signupUser(t, "m@test.com", "Mallory")

	boardService := BoardService{}

	board, err := boardService.Create(alice.Id, "Sprint board", nil)
	assert.NoError(t, err)

	// Every board-scoped operation is forbidden without a membership row
	_, err = boardService.Detail(mallory.Id, board.Id)
	assert.ErrorIs(t, err, ErrForbidden)
	title := "hijacked"
	_, err = boardService.Update(mallory.Id, board.Id, &title)
	assert.ErrorIs(t, err, ErrForbidden)
	_, err = boardService.CreateList(mallory.Id, board.Id, "Backlog", "", nil)
	assert.ErrorIs(t, err, ErrForbidden)
	err = boardService.Delete(mallory.Id, board.Id)
	assert.ErrorIs(t, err, ErrForbidden)

	// Members may view but only owner/admins invite
	_, err = boardService.Invite(alice.Id, board.Id, mallory.Email, "")
	assert.NoError(t, err)
	_, err = boardService.Detail(mallory.Id, board.Id)
	assert.NoError(t, err)

	carol := signupUser(t, "c@test.com", "Carol")
	_, err = boardService.Invite(mallory.Id, board.Id, carol.Email, "")
	assert.ErrorIs(t, err, ErrForbidden)

	// Missing boards are not found
	_, err = boardService.Detail(alice.Id, "no-such-board")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestBoardOwnerRemovalBlocked(t *testing.T) {
	setup()
	defer teardown()

	alice := signupUser(t, "a@test.com", "Alice")
	boardService := BoardService{}

	board, err := boardService.Create(alice.Id, "Sprint board", nil)
	assert.NoError(t, err)

	err = boardService.RemoveMember(alice.Id, board.Id, alice.Id)
	assert.EqualError(t, err, "Cannot remove the board owner")

	role, err := boardService.authz.BoardRole(alice.Id, board.Id)
	assert.NoError(t, err)
	assert.Equal(t, model.RoleAdmin, role)
}

func TestCardRoundTripInBoardView(t *testing.T) {
	setup()
	defer teardown()

	alice := signupUser(t, "a@test.com", "Alice")

	boardService := BoardService{}
	cardService := CardService{}

	board, err := boardService.Create(alice.Id, "Sprint board", nil)
	assert.NoError(t, err)
	list, err := boardService.CreateList(alice.Id, board.Id, "Doing", "", nil)
	assert.NoError(t, err)

	pos := 125.5
	card, err := cardService.Create(alice.Id, list.Id, "Write the report", &pos)
	assert.NoError(t, err)

	view, err := boardService.Detail(alice.Id, board.Id)
	assert.NoError(t, err)
	assert.Len(t, view.Lists, 1)
	assert.Len(t, view.Lists[0].Cards, 1)
	assert.Equal(t, card.Id, view.Lists[0].Cards[0].Id)
	assert.Equal(t, 125.5, view.Lists[0].Cards[0].Position)
	assert.Len(t, view.Members, 1)
	assert.Equal(t, model.RoleAdmin, view.Members[0].Role)
}

func TestOrphanedListIsNotFound(t *testing.T) {
	setup()
	defer teardown()

	alice := signupUser(t, "a@test.com", "Alice")

	boardService := BoardService{}
	listService := ListService{}
	cardService := CardService{}

	board, err := boardService.Create(alice.Id, "Sprint board", nil)
	assert.NoError(t, err)
	list, err := boardService.CreateList(alice.Id, board.Id, "Doing", "", nil)
	assert.NoError(t, err)

	err = database.GetDB().Model(&model.List{}).
		Where("id = ?", list.Id).
		Update("board_id", nil).Error
	assert.NoError(t, err)

	title := "renamed"
	_, err = listService.Update(alice.Id, list.Id, &title, nil, nil)
	assert.ErrorIs(t, err, ErrNotFound)
	err = listService.Delete(alice.Id, list.Id)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = cardService.Create(alice.Id, list.Id, "stranded", nil)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestBoardInProjectVisibleToProjectMembers(t *testing.T) {
	setup()
	defer teardown()

	alice := signupUser(t, "a@test.com", "Alice")
	bob := signupUser(t, "b@test.com", "Bob")

	projectService := ProjectService{}
	boardService := BoardService{}

	project, err := projectService.Create(alice.Id, "Launch", "")
	assert.NoError(t, err)
	_, err = projectService.Invite(alice.Id, project.Id, bob.Email, "")
	assert.NoError(t, err)

	board, err := boardService.Create(alice.Id, "Roadmap", &project.Id)
	assert.NoError(t, err)

	// Bob reaches the board through his project membership in listings
	boards, err := boardService.ListForUser(bob.Id)
	assert.NoError(t, err)
	assert.Len(t, boards, 1)
	assert.Equal(t, board.Id, boards[0].Id)

	// A board outside Bob's projects requires a project he can access
	_, err = boardService.Create(bob.Id, "Private", &project.Id)
	assert.NoError(t, err)

	carol := signupUser(t, "c@test.com", "Carol")
	_, err = boardService.Create(carol.Id, "Denied", &project.Id)
	assert.ErrorIs(t, err, ErrForbidden)
}
