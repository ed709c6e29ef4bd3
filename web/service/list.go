package service

import (
	"errors"
	"sort"
	"sync"

	"boardhub/database"
	"boardhub/database/model"
	"boardhub/web/websocket"

	"github.com/google/uuid"
)

// Position offset applied to a duplicated list relative to its source.
const duplicateOffset = 100

// Position step assigned by re-sorting: rank 0 gets 1000, rank 1 gets 2000.
const sortStep = 1000

type ListService struct {
	Hub   *websocket.Hub
	authz AuthzService
}

// resolve loads a list and authorizes the caller against its board. A list
// whose BoardId is NULL is orphaned and answers not-found.
func (s *ListService) resolve(callerId, listId string) (*model.List, error) {
	list := &model.List{}
	err := database.GetDB().Where("id = ?", listId).First(list).Error
	if database.IsNotFound(err) {
		return nil, ErrNotFound
	} else if err != nil {
		return nil, err
	}
	if list.BoardId == nil {
		return nil, ErrNotFound
	}
	if _, err := s.authz.CanAccessBoard(callerId, *list.BoardId); err != nil {
		return nil, err
	}
	return list, nil
}

// Update patches title, color and/or position.
func (s *ListService) Update(callerId, listId string, title, color *string, position *float64) (*model.List, error) {
	list, err := s.resolve(callerId, listId)
	if err != nil {
		return nil, err
	}

	if title != nil {
		list.Title = *title
	}
	if color != nil {
		list.Color = *color
	}
	if position != nil {
		list.Position = *position
	}
	if err := database.GetDB().Save(list).Error; err != nil {
		return nil, err
	}

	s.Hub.Publish(websocket.BoardTopic(*list.BoardId), websocket.EventBoardUpdated)
	return list, nil
}

// Delete removes the list; its cards go with it via the cascade.
func (s *ListService) Delete(callerId, listId string) error {
	list, err := s.resolve(callerId, listId)
	if err != nil {
		return err
	}

	if err := database.GetDB().Delete(&model.List{}, "id = ?", listId).Error; err != nil {
		return err
	}

	s.Hub.Publish(websocket.BoardTopic(*list.BoardId), websocket.EventBoardUpdated)
	return nil
}

// Duplicate copies the list and its cards onto the same board. The copy
// lands at source position + 100; cards keep their content and positions but
// get fresh ids.
func (s *ListService) Duplicate(callerId, listId string) (*model.List, error) {
	src, err := s.resolve(callerId, listId)
	if err != nil {
		return nil, err
	}

	db := database.GetDB()

	dup := &model.List{
		Id:       uuid.NewString(),
		Title:    src.Title,
		Position: src.Position + duplicateOffset,
		BoardId:  src.BoardId,
		Color:    src.Color,
	}
	if err := db.Create(dup).Error; err != nil {
		return nil, err
	}

	var cards []model.Card
	if err := db.Where("list_id = ?", src.Id).Order("position ASC").Find(&cards).Error; err != nil {
		return nil, err
	}
	for _, card := range cards {
		copied := &model.Card{
			Id:       uuid.NewString(),
			Content:  card.Content,
			ListId:   &dup.Id,
			Position: card.Position,
		}
		if err := db.Create(copied).Error; err != nil {
			return nil, err
		}
	}

	s.Hub.Publish(websocket.BoardTopic(*src.BoardId), websocket.EventBoardUpdated)
	return dup, nil
}

// MoveCards repoints every card of the list at a target list on the same
// board, positions untouched.
func (s *ListService) MoveCards(callerId, listId, targetListId string) error {
	src, err := s.resolve(callerId, listId)
	if err != nil {
		return err
	}
	target, err := s.resolve(callerId, targetListId)
	if err != nil {
		return err
	}
	if *src.BoardId != *target.BoardId {
		return errors.New("Target list is on a different board")
	}
	if src.Id == target.Id {
		return errors.New("Target list is the source list")
	}

	err = database.GetDB().
		Model(&model.Card{}).
		Where("list_id = ?", src.Id).
		Update("list_id", target.Id).Error
	if err != nil {
		return err
	}

	s.Hub.Publish(websocket.BoardTopic(*src.BoardId), websocket.EventBoardUpdated)
	return nil
}

// Sort re-derives card positions for the list. Modes: "oldest" and "newest"
// order by creation time with the id as a lexicographic tie-break, "abc"
// orders by content byte-wise, so capitals sort before lowercase. Ranks map
// to positions 1000, 2000, ... persisted as independent updates issued
// concurrently; a reader may observe a partially resorted list.
func (s *ListService) Sort(callerId, listId, mode string) error {
	list, err := s.resolve(callerId, listId)
	if err != nil {
		return err
	}

	db := database.GetDB()

	var cards []model.Card
	if err := db.Where("list_id = ?", list.Id).Find(&cards).Error; err != nil {
		return err
	}

	switch mode {
	case "oldest":
		sort.Slice(cards, func(i, j int) bool {
			if !cards[i].CreatedAt.Equal(cards[j].CreatedAt) {
				return cards[i].CreatedAt.Before(cards[j].CreatedAt)
			}
			return cards[i].Id < cards[j].Id
		})
	case "newest":
		sort.Slice(cards, func(i, j int) bool {
			if !cards[i].CreatedAt.Equal(cards[j].CreatedAt) {
				return cards[i].CreatedAt.After(cards[j].CreatedAt)
			}
			return cards[i].Id > cards[j].Id
		})
	case "abc":
		sort.Slice(cards, func(i, j int) bool {
			return cards[i].Content < cards[j].Content
		})
	default:
		return errors.New("Unknown sort mode")
	}

	var wg sync.WaitGroup
	errCh := make(chan error, len(cards))
	for rank, card := range cards {
		wg.Add(1)
		go func(id string, position float64) {
			defer wg.Done()
			err := db.Model(&model.Card{}).
				Where("id = ?", id).
				Update("position", position).Error
			if err != nil {
				errCh <- err
			}
		}(card.Id, float64((rank+1)*sortStep))
	}
	wg.Wait()
	close(errCh)
	if err := <-errCh; err != nil {
		return err
	}

	s.Hub.Publish(websocket.BoardTopic(*list.BoardId), websocket.EventBoardUpdated)
	return nil
}
