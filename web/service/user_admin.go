package service

import (
	"errors"

	"boardhub/database"
	"boardhub/database/model"
	"boardhub/logger"
	"boardhub/web/entity"
	"boardhub/web/websocket"
)

// UserAdminService backs the admin console. Every method here is reached
// through the AdminRequired gate.
type UserAdminService struct {
	Hub   *websocket.Hub
	authz AuthzService
}

type membershipCount struct {
	UserId string
	N      int64
}

// ListUsers returns every user with aggregate project/board membership
// counts. The counts come from two grouped queries joined by id, not from
// per-row iteration. Query failures surface as ErrInternal so the endpoint
// leaks no detail.
func (s *UserAdminService) ListUsers() ([]entity.AdminUserView, error) {
	db := database.GetDB()

	var users []model.User
	if err := db.Order("created_at ASC").Find(&users).Error; err != nil {
		logger.Error("admin user listing failed:", err)
		return nil, ErrInternal
	}

	var projectCounts []membershipCount
	err := db.Model(&model.ProjectMember{}).
		Select("user_id, COUNT(*) as n").
		Group("user_id").
		Scan(&projectCounts).Error
	if err != nil {
		logger.Error("admin project count failed:", err)
		return nil, ErrInternal
	}

	var boardCounts []membershipCount
	err = db.Model(&model.BoardMember{}).
		Select("user_id, COUNT(*) as n").
		Group("user_id").
		Scan(&boardCounts).Error
	if err != nil {
		logger.Error("admin board count failed:", err)
		return nil, ErrInternal
	}

	projects := make(map[string]int64, len(projectCounts))
	for _, c := range projectCounts {
		projects[c.UserId] = c.N
	}
	boards := make(map[string]int64, len(boardCounts))
	for _, c := range boardCounts {
		boards[c.UserId] = c.N
	}

	out := make([]entity.AdminUserView, 0, len(users))
	for i := range users {
		u := &users[i]
		out = append(out, entity.AdminUserView{
			Id:           u.Id,
			Email:        u.Email,
			Name:         u.Name,
			IsAdmin:      u.IsAdmin,
			IsBanned:     u.IsBanned,
			CreatedAt:    u.CreatedAt,
			ProjectCount: projects[u.Id],
			BoardCount:   boards[u.Id],
		})
	}
	return out, nil
}

func (s *UserAdminService) getUser(id string) (*model.User, error) {
	user := &model.User{}
	err := database.GetDB().Where("id = ?", id).First(user).Error
	if database.IsNotFound(err) {
		return nil, ErrNotFound
	} else if err != nil {
		return nil, err
	}
	return user, nil
}

// ToggleBan flips the banned flag. Banning yourself is rejected before any
// mutation.
func (s *UserAdminService) ToggleBan(callerId, userId string) (*model.User, error) {
	if callerId == userId {
		return nil, errors.New("Cannot ban yourself")
	}

	user, err := s.getUser(userId)
	if err != nil {
		return nil, err
	}

	user.IsBanned = !user.IsBanned
	if err := database.GetDB().Save(user).Error; err != nil {
		return nil, err
	}

	s.Hub.Publish(websocket.UserTopic(userId), websocket.EventUserUpdated)
	return user, nil
}

// ToggleAccess flips the admin flag. Changing your own access is rejected,
// mirroring the self-ban rule.
func (s *UserAdminService) ToggleAccess(callerId, userId string) (*model.User, error) {
	if callerId == userId {
		return nil, errors.New("Cannot change your own access")
	}

	user, err := s.getUser(userId)
	if err != nil {
		return nil, err
	}

	user.IsAdmin = !user.IsAdmin
	if err := database.GetDB().Save(user).Error; err != nil {
		return nil, err
	}

	s.Hub.Publish(websocket.UserTopic(userId), websocket.EventUserUpdated)
	return user, nil
}

// Rename sets a user's display name.
func (s *UserAdminService) Rename(userId, name string) (*model.User, error) {
	if name == "" {
		return nil, errors.New("Name required")
	}

	user, err := s.getUser(userId)
	if err != nil {
		return nil, err
	}

	user.Name = name
	if err := database.GetDB().Save(user).Error; err != nil {
		return nil, err
	}

	s.Hub.Publish(websocket.UserTopic(userId), websocket.EventUserUpdated)
	return user, nil
}

// RemoveProjectMembership force-removes a user from a project, then pokes
// the user's topic and every board topic under the project so connected
// clients refresh and drop views they can no longer reach.
func (s *UserAdminService) RemoveProjectMembership(userId, projectId string) error {
	project, err := s.authz.GetProject(projectId)
	if err != nil {
		return err
	}
	if project.OwnerId == userId {
		return errors.New("Cannot remove the project owner")
	}

	db := database.GetDB()

	err = db.Delete(&model.ProjectMember{}, "project_id = ? AND user_id = ?", projectId, userId).Error
	if err != nil {
		return err
	}

	s.Hub.Publish(websocket.UserTopic(userId), websocket.EventProjectUpdated)
	s.Hub.Publish(websocket.ProjectTopic(projectId), websocket.EventProjectUpdated)

	var boards []model.Board
	if err := db.Where("project_id = ?", projectId).Find(&boards).Error; err != nil {
		return err
	}
	for _, board := range boards {
		s.Hub.Publish(websocket.BoardTopic(board.Id), websocket.EventBoardUpdated)
	}
	return nil
}

// RemoveBoardMembership force-removes a user from a board.
func (s *UserAdminService) RemoveBoardMembership(userId, boardId string) error {
	board, err := s.authz.GetBoard(boardId)
	if err != nil {
		return err
	}
	if board.OwnerId == userId {
		return errors.New("Cannot remove the board owner")
	}

	err = database.GetDB().
		Delete(&model.BoardMember{}, "board_id = ? AND user_id = ?", boardId, userId).Error
	if err != nil {
		return err
	}

	s.Hub.Publish(websocket.UserTopic(userId), websocket.EventBoardUpdated)
	s.Hub.Publish(websocket.BoardTopic(boardId), websocket.EventBoardUpdated)
	return nil
}
