package service

import (
	"errors"
	"time"

	"boardhub/database"
	"boardhub/database/model"
	"boardhub/web/entity"
	"boardhub/web/websocket"

	"github.com/google/uuid"
)

type BoardService struct {
	Hub   *websocket.Hub
	authz AuthzService
}

// ListForUser returns boards the caller owns, is a member of, or can reach
// through a project membership.
func (s *BoardService) ListForUser(userId string) ([]model.Board, error) {
	db := database.GetDB()

	boardMemberOf := db.Model(&model.BoardMember{}).
		Select("board_id").
		Where("user_id = ?", userId)
	projectMemberOf := db.Model(&model.ProjectMember{}).
		Select("project_id").
		Where("user_id = ?", userId)

	var boards []model.Board
	err := db.
		Where("owner_id = ? OR id IN (?) OR project_id IN (?)", userId, boardMemberOf, projectMemberOf).
		Order("created_at ASC").
		Find(&boards).Error
	if err != nil {
		return nil, err
	}
	return boards, nil
}

// Create inserts the board and the creator's admin membership row. When a
// projectId is given the caller must have access to that project.
func (s *BoardService) Create(ownerId, title string, projectId *string) (*model.Board, error) {
	if projectId != nil {
		if _, err := s.authz.CanAccessProject(ownerId, *projectId); err != nil {
			return nil, err
		}
	}

	db := database.GetDB()

	board := &model.Board{
		Id:        uuid.NewString(),
		Title:     title,
		OwnerId:   ownerId,
		ProjectId: projectId,
	}
	if err := db.Create(board).Error; err != nil {
		return nil, err
	}

	member := &model.BoardMember{BoardId: board.Id, UserId: ownerId, Role: model.RoleAdmin}
	if err := db.Create(member).Error; err != nil {
		return nil, err
	}

	if projectId != nil {
		s.Hub.Publish(websocket.ProjectTopic(*projectId), websocket.EventBoardUpdated)
	}
	s.Hub.Publish(websocket.UserTopic(ownerId), websocket.EventBoardUpdated)
	return board, nil
}

// Detail assembles the composite board view: the row, the roster joined
// with user identity, and the lists ordered by position each carrying its
// cards. Cards come back in one query over the list-id set; a board with no
// lists skips that query entirely.
func (s *BoardService) Detail(callerId, boardId string) (*entity.BoardView, error) {
	board, err := s.authz.CanAccessBoard(callerId, boardId)
	if err != nil {
		return nil, err
	}

	db := database.GetDB()

	members, err := boardMembers(boardId)
	if err != nil {
		return nil, err
	}

	var lists []model.List
	err = db.Where("board_id = ?", boardId).Order("position ASC").Find(&lists).Error
	if err != nil {
		return nil, err
	}

	views := make([]entity.ListView, len(lists))
	for i := range lists {
		views[i] = entity.ListView{List: lists[i], Cards: []model.Card{}}
	}

	if len(lists) > 0 {
		listIds := make([]string, len(lists))
		byId := make(map[string]int, len(lists))
		for i := range lists {
			listIds[i] = lists[i].Id
			byId[lists[i].Id] = i
		}

		var cards []model.Card
		err = db.Where("list_id IN ?", listIds).Order("position ASC").Find(&cards).Error
		if err != nil {
			return nil, err
		}
		for _, card := range cards {
			if card.ListId == nil {
				continue
			}
			if i, ok := byId[*card.ListId]; ok {
				views[i].Cards = append(views[i].Cards, card)
			}
		}
	}

	return &entity.BoardView{Board: *board, Members: members, Lists: views}, nil
}

// Update patches the board title.
func (s *BoardService) Update(callerId, boardId string, title *string) (*model.Board, error) {
	board, err := s.authz.CanAccessBoard(callerId, boardId)
	if err != nil {
		return nil, err
	}

	if title != nil {
		board.Title = *title
	}
	if err := database.GetDB().Save(board).Error; err != nil {
		return nil, err
	}

	s.Hub.Publish(websocket.BoardTopic(boardId), websocket.EventBoardUpdated)
	return board, nil
}

// Delete removes the board. Owner only. Lists are detached by the SET NULL
// foreign key and become orphans; membership rows cascade.
func (s *BoardService) Delete(callerId, boardId string) error {
	board, err := s.authz.GetBoard(boardId)
	if err != nil {
		return err
	}
	if board.OwnerId != callerId {
		return ErrForbidden
	}

	if err := database.GetDB().Delete(&model.Board{}, "id = ?", boardId).Error; err != nil {
		return err
	}

	s.Hub.Publish(websocket.BoardTopic(boardId), websocket.EventBoardDeleted)
	return nil
}

// Invite adds a user to the board roster. Unlike project invites this
// requires the caller to be the owner or a board admin.
func (s *BoardService) Invite(callerId, boardId, email, role string) (*entity.MemberView, error) {
	if _, err := s.authz.CanAdministerBoard(callerId, boardId); err != nil {
		return nil, err
	}

	db := database.GetDB()

	invited := &model.User{}
	err := db.Where("email = ?", email).First(invited).Error
	if database.IsNotFound(err) {
		return nil, ErrNotFound
	} else if err != nil {
		return nil, err
	}

	existing, err := s.authz.BoardRole(invited.Id, boardId)
	if err != nil {
		return nil, err
	}
	if existing != "" {
		return nil, errors.New("Already a member")
	}

	if role != model.RoleAdmin {
		role = model.RoleMember
	}
	member := &model.BoardMember{BoardId: boardId, UserId: invited.Id, Role: role}
	if err := db.Create(member).Error; err != nil {
		return nil, err
	}

	s.Hub.Publish(websocket.BoardTopic(boardId), websocket.EventBoardUpdated)
	s.Hub.Publish(websocket.UserTopic(invited.Id), websocket.EventBoardUpdated)

	return &entity.MemberView{UserId: invited.Id, Email: invited.Email, Name: invited.Name, Role: role}, nil
}

// RemoveMember deletes a board membership row. The owner's row cannot be
// removed.
func (s *BoardService) RemoveMember(callerId, boardId, userId string) error {
	board, err := s.authz.GetBoard(boardId)
	if err != nil {
		return err
	}
	if board.OwnerId != callerId {
		role, err := s.authz.BoardRole(callerId, boardId)
		if err != nil {
			return err
		}
		if role != model.RoleAdmin {
			return ErrForbidden
		}
	}
	if userId == board.OwnerId {
		return errors.New("Cannot remove the board owner")
	}

	err = database.GetDB().
		Delete(&model.BoardMember{}, "board_id = ? AND user_id = ?", boardId, userId).Error
	if err != nil {
		return err
	}

	s.Hub.Publish(websocket.BoardTopic(boardId), websocket.EventBoardUpdated)
	s.Hub.Publish(websocket.UserTopic(userId), websocket.EventBoardUpdated)
	return nil
}

// CreateList appends a list to the board. Position defaults to the current
// unix milliseconds so unpositioned lists keep arrival order.
func (s *BoardService) CreateList(callerId, boardId, title, color string, position *float64) (*model.List, error) {
	if _, err := s.authz.CanAccessBoard(callerId, boardId); err != nil {
		return nil, err
	}

	pos := float64(time.Now().UnixMilli())
	if position != nil {
		pos = *position
	}

	list := &model.List{
		Id:       uuid.NewString(),
		Title:    title,
		Position: pos,
		BoardId:  &boardId,
		Color:    color,
	}
	if err := database.GetDB().Create(list).Error; err != nil {
		return nil, err
	}

	s.Hub.Publish(websocket.BoardTopic(boardId), websocket.EventBoardUpdated)
	return list, nil
}

// boardMembers joins the roster with user identity.
func boardMembers(boardId string) ([]entity.MemberView, error) {
	var members []entity.MemberView
	err := database.GetDB().
		Model(&model.BoardMember{}).
		Select("board_members.user_id, users.email, users.name, board_members.role").
		Joins("JOIN users ON users.id = board_members.user_id").
		Where("board_members.board_id = ?", boardId).
		Scan(&members).Error
	if err != nil {
		return nil, err
	}
	return members, nil
}
