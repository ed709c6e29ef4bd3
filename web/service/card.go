package service

import (
	"time"

	"boardhub/database"
	"boardhub/database/model"
	"boardhub/web/websocket"

	"github.com/google/uuid"
)

type CardService struct {
	Hub   *websocket.Hub
	authz AuthzService
	lists ListService
}

// Create appends a card to a list. Position defaults to the current unix
// milliseconds.
func (s *CardService) Create(callerId, listId, content string, position *float64) (*model.Card, error) {
	list, err := s.lists.resolve(callerId, listId)
	if err != nil {
		return nil, err
	}

	pos := float64(time.Now().UnixMilli())
	if position != nil {
		pos = *position
	}

	card := &model.Card{
		Id:       uuid.NewString(),
		Content:  content,
		ListId:   &list.Id,
		Position: pos,
	}
	if err := database.GetDB().Create(card).Error; err != nil {
		return nil, err
	}

	s.Hub.Publish(websocket.BoardTopic(*list.BoardId), websocket.EventBoardUpdated)
	return card, nil
}

// resolve loads a card and authorizes the caller through its parent list's
// board. An orphaned card (NULL listId) answers not-found.
func (s *CardService) resolve(callerId, cardId string) (*model.Card, *model.List, error) {
	card := &model.Card{}
	err := database.GetDB().Where("id = ?", cardId).First(card).Error
	if database.IsNotFound(err) {
		return nil, nil, ErrNotFound
	} else if err != nil {
		return nil, nil, err
	}
	if card.ListId == nil {
		return nil, nil, ErrNotFound
	}
	list, err := s.lists.resolve(callerId, *card.ListId)
	if err != nil {
		return nil, nil, err
	}
	return card, list, nil
}

// Update patches content, position and/or the parent list. A move that
// lands on a different board notifies both the old and the new board topic
// so stale viewers of the source board refresh too.
func (s *CardService) Update(callerId, cardId string, content *string, position *float64, listId *string) (*model.Card, error) {
	card, oldList, err := s.resolve(callerId, cardId)
	if err != nil {
		return nil, err
	}

	oldBoardId := *oldList.BoardId
	newBoardId := oldBoardId

	if listId != nil && *listId != *card.ListId {
		target, err := s.lists.resolve(callerId, *listId)
		if err != nil {
			return nil, err
		}
		card.ListId = &target.Id
		newBoardId = *target.BoardId
	}
	if content != nil {
		card.Content = *content
	}
	if position != nil {
		card.Position = *position
	}

	if err := database.GetDB().Save(card).Error; err != nil {
		return nil, err
	}

	s.Hub.Publish(websocket.BoardTopic(newBoardId), websocket.EventBoardUpdated)
	if newBoardId != oldBoardId {
		s.Hub.Publish(websocket.BoardTopic(oldBoardId), websocket.EventBoardUpdated)
	}
	return card, nil
}

// Delete removes the card.
func (s *CardService) Delete(callerId, cardId string) error {
	card, list, err := s.resolve(callerId, cardId)
	if err != nil {
		return err
	}

	if err := database.GetDB().Delete(&model.Card{}, "id = ?", card.Id).Error; err != nil {
		return err
	}

	s.Hub.Publish(websocket.BoardTopic(*list.BoardId), websocket.EventBoardUpdated)
	return nil
}
