package service

import (
	"boardhub/database"
	"boardhub/database/model"
)

// AuthzService is the single authorization capability: membership rows plus
// one uniform rule, the owner of a project or board is always implicitly
// authorized whether or not their membership row survives.
type AuthzService struct{}

// GetProject loads a project or reports ErrNotFound.
func (s *AuthzService) GetProject(projectId string) (*model.Project, error) {
	project := &model.Project{}
	err := database.GetDB().Where("id = ?", projectId).First(project).Error
	if database.IsNotFound(err) {
		return nil, ErrNotFound
	} else if err != nil {
		return nil, err
	}
	return project, nil
}

// GetBoard loads a board or reports ErrNotFound.
func (s *AuthzService) GetBoard(boardId string) (*model.Board, error) {
	board := &model.Board{}
	err := database.GetDB().Where("id = ?", boardId).First(board).Error
	if database.IsNotFound(err) {
		return nil, ErrNotFound
	} else if err != nil {
		return nil, err
	}
	return board, nil
}

// CanAccessProject returns the project when the caller owns it or holds a
// membership row, ErrForbidden otherwise.
func (s *AuthzService) CanAccessProject(userId, projectId string) (*model.Project, error) {
	project, err := s.GetProject(projectId)
	if err != nil {
		return nil, err
	}
	if project.OwnerId == userId {
		return project, nil
	}
	role, err := s.ProjectRole(userId, projectId)
	if err != nil {
		return nil, err
	}
	if role == "" {
		return nil, ErrForbidden
	}
	return project, nil
}

// CanAccessBoard returns the board when the caller owns it or holds a
// membership row, ErrForbidden otherwise.
func (s *AuthzService) CanAccessBoard(userId, boardId string) (*model.Board, error) {
	board, err := s.GetBoard(boardId)
	if err != nil {
		return nil, err
	}
	if board.OwnerId == userId {
		return board, nil
	}
	role, err := s.BoardRole(userId, boardId)
	if err != nil {
		return nil, err
	}
	if role == "" {
		return nil, ErrForbidden
	}
	return board, nil
}

// CanAdministerBoard is CanAccessBoard narrowed to the owner or an "admin"
// membership row. Board invites require it.
func (s *AuthzService) CanAdministerBoard(userId, boardId string) (*model.Board, error) {
	board, err := s.GetBoard(boardId)
	if err != nil {
		return nil, err
	}
	if board.OwnerId == userId {
		return board, nil
	}
	role, err := s.BoardRole(userId, boardId)
	if err != nil {
		return nil, err
	}
	if role != model.RoleAdmin {
		return nil, ErrForbidden
	}
	return board, nil
}

// ProjectRole returns the caller's membership role on a project, or "".
func (s *AuthzService) ProjectRole(userId, projectId string) (string, error) {
	member := &model.ProjectMember{}
	err := database.GetDB().
		Where("project_id = ? AND user_id = ?", projectId, userId).
		First(member).Error
	if database.IsNotFound(err) {
		return "", nil
	} else if err != nil {
		return "", err
	}
	return member.Role, nil
}

// BoardRole returns the caller's membership role on a board, or "".
func (s *AuthzService) BoardRole(userId, boardId string) (string, error) {
	member := &model.BoardMember{}
	err := database.GetDB().
		Where("board_id = ? AND user_id = ?", boardId, userId).
		First(member).Error
	if database.IsNotFound(err) {
		return "", nil
	} else if err != nil {
		return "", err
	}
	return member.Role, nil
}
