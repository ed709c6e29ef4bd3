package service

import (
	"testing"
	"time"

	"boardhub/database"
	"boardhub/database/model"

	"github.com/stretchr/testify/assert"
)

// makeBoardWithList is the shared fixture for list tests.
func makeBoardWithList(t *testing.T, ownerId string, listPos float64) (*model.Board, *model.List) {
	t.Helper()
	boardService := BoardService{}
	board, err := boardService.Create(ownerId, "Sprint board", nil)
	if err != nil {
		t.Fatal(err)
	}
	list, err := boardService.CreateList(ownerId, board.Id, "Todo", "", &listPos)
	if err != nil {
		t.Fatal(err)
	}
	return board, list
}

func TestDuplicateList(t *testing.T) {
	setup()
	defer teardown()

	alice := signupUser(t, "a@test.com", "Alice")
	_, list := makeBoardWithList(t, alice.Id, 500)

	cardService := CardService{}
	listService := ListService{}

	pos1, pos2 := 100.0, 200.0
	c1, err := cardService.Create(alice.Id, list.Id, "first", &pos1)
	assert.NoError(t, err)
	c2, err := cardService.Create(alice.Id, list.Id, "second", &pos2)
	assert.NoError(t, err)

	dup, err := listService.Duplicate(alice.Id, list.Id)
	assert.NoError(t, err)
	assert.NotEqual(t, list.Id, dup.Id)
	assert.Equal(t, list.Title, dup.Title)
	assert.Equal(t, 600.0, dup.Position)

	var copies []model.Card
	err = database.GetDB().
		Where("list_id = ?", dup.Id).
		Order("position ASC").
		Find(&copies).Error
	assert.NoError(t, err)
	assert.Len(t, copies, 2)
	assert.Equal(t, "first", copies[0].Content)
	assert.Equal(t, 100.0, copies[0].Position)
	assert.Equal(t, "second", copies[1].Content)
	assert.Equal(t, 200.0, copies[1].Position)
	assert.NotEqual(t, c1.Id, copies[0].Id)
	assert.NotEqual(t, c2.Id, copies[1].Id)

	// Source cards are untouched
	var originals []model.Card
	err = database.GetDB().Where("list_id = ?", list.Id).Find(&originals).Error
	assert.NoError(t, err)
	assert.Len(t, originals, 2)
}

func TestSortAbcIsCapitalSensitive(t *testing.T) {
	setup()
	defer teardown()

	alice := signupUser(t, "a@test.com", "Alice")
	_, list := makeBoardWithList(t, alice.Id, 0)

	cardService := CardService{}
	listService := ListService{}

	p1, p2 := 5.0, 1.0
	_, err := cardService.Create(alice.Id, list.Id, "banana", &p1)
	assert.NoError(t, err)
	_, err = cardService.Create(alice.Id, list.Id, "Apple", &p2)
	assert.NoError(t, err)

	assert.NoError(t, listService.Sort(alice.Id, list.Id, "abc"))

	var cards []model.Card
	err = database.GetDB().
		Where("list_id = ?", list.Id).
		Order("position ASC").
		Find(&cards).Error
	assert.NoError(t, err)
	assert.Len(t, cards, 2)
	// Byte-wise comparison puts "Apple" before "banana"
	assert.Equal(t, "Apple", cards[0].Content)
	assert.Equal(t, 1000.0, cards[0].Position)
	assert.Equal(t, "banana", cards[1].Content)
	assert.Equal(t, 2000.0, cards[1].Position)
}

func TestSortOldestAndNewest(t *testing.T) {
	setup()
	defer teardown()

	alice := signupUser(t, "a@test.com", "Alice")
	_, list := makeBoardWithList(t, alice.Id, 0)

	cardService := CardService{}
	listService := ListService{}

	p := 0.0
	older, err := cardService.Create(alice.Id, list.Id, "older", &p)
	assert.NoError(t, err)
	newer, err := cardService.Create(alice.Id, list.Id, "newer", &p)
	assert.NoError(t, err)

	// Force distinct creation times
	base := time.Now().Add(-time.Hour)
	assert.NoError(t, database.GetDB().Model(&model.Card{}).
		Where("id = ?", older.Id).Update("created_at", base).Error)
	assert.NoError(t, database.GetDB().Model(&model.Card{}).
		Where("id = ?", newer.Id).Update("created_at", base.Add(time.Minute)).Error)

	assert.NoError(t, listService.Sort(alice.Id, list.Id, "oldest"))

	var cards []model.Card
	err = database.GetDB().
		Where("list_id = ?", list.Id).
		Order("position ASC").
		Find(&cards).Error
	assert.NoError(t, err)
	assert.Equal(t, "older", cards[0].Content)
	assert.Equal(t, "newer", cards[1].Content)

	assert.NoError(t, listService.Sort(alice.Id, list.Id, "newest"))
	err = database.GetDB().
		Where("list_id = ?", list.Id).
		Order("position ASC").
		Find(&cards).Error
	assert.NoError(t, err)
	assert.Equal(t, "newer", cards[0].Content)
	assert.Equal(t, "older", cards[1].Content)

	assert.EqualError(t, listService.Sort(alice.Id, list.Id, "zzz"), "Unknown sort mode")
}

func TestMoveCards(t *testing.T) {
	setup()
	defer teardown()

	alice := signupUser(t, "a@test.com", "Alice")
	board, src := makeBoardWithList(t, alice.Id, 0)

	boardService := BoardService{}
	cardService := CardService{}
	listService := ListService{}

	targetPos := 100.0
	target, err := boardService.CreateList(alice.Id, board.Id, "Done", "", &targetPos)
	assert.NoError(t, err)

	p1, p2 := 10.0, 20.0
	_, err = cardService.Create(alice.Id, src.Id, "one", &p1)
	assert.NoError(t, err)
	_, err = cardService.Create(alice.Id, src.Id, "two", &p2)
	assert.NoError(t, err)

	// Moving to a list on another board is a domain violation
	otherBoard, err := boardService.Create(alice.Id, "Elsewhere", nil)
	assert.NoError(t, err)
	foreign, err := boardService.CreateList(alice.Id, otherBoard.Id, "Inbox", "", nil)
	assert.NoError(t, err)
	err = listService.MoveCards(alice.Id, src.Id, foreign.Id)
	assert.EqualError(t, err, "Target list is on a different board")

	assert.NoError(t, listService.MoveCards(alice.Id, src.Id, target.Id))

	var count int64
	database.GetDB().Model(&model.Card{}).Where("list_id = ?", src.Id).Count(&count)
	assert.EqualValues(t, 0, count)
	var moved []model.Card
	err = database.GetDB().
		Where("list_id = ?", target.Id).
		Order("position ASC").
		Find(&moved).Error
	assert.NoError(t, err)
	assert.Len(t, moved, 2)
	// Positions travel with the cards
	assert.Equal(t, 10.0, moved[0].Position)
	assert.Equal(t, 20.0, moved[1].Position)
}

func TestCardMoveAcrossListsViaPatch(t *testing.T) {
	setup()
	defer teardown()

	alice := signupUser(t, "a@test.com", "Alice")
	board, src := makeBoardWithList(t, alice.Id, 0)

	boardService := BoardService{}
	cardService := CardService{}

	target, err := boardService.CreateList(alice.Id, board.Id, "Done", "", nil)
	assert.NoError(t, err)

	card, err := cardService.Create(alice.Id, src.Id, "ship it", nil)
	assert.NoError(t, err)

	newPos := 42.0
	updated, err := cardService.Update(alice.Id, card.Id, nil, &newPos, &target.Id)
	assert.NoError(t, err)
	assert.Equal(t, target.Id, *updated.ListId)
	assert.Equal(t, 42.0, updated.Position)
	assert.Equal(t, "ship it", updated.Content)
}
