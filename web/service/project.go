package service

import (
	"errors"

	"boardhub/database"
	"boardhub/database/model"
	"boardhub/web/entity"
	"boardhub/web/websocket"

	"github.com/google/uuid"
)

type ProjectService struct {
	Hub   *websocket.Hub
	authz AuthzService
}

// ListForUser returns projects the caller owns or is a member of.
func (s *ProjectService) ListForUser(userId string) ([]model.Project, error) {
	db := database.GetDB()

	memberOf := db.Model(&model.ProjectMember{}).
		Select("project_id").
		Where("user_id = ?", userId)

	var projects []model.Project
	err := db.
		Where("owner_id = ? OR id IN (?)", userId, memberOf).
		Order("created_at ASC").
		Find(&projects).Error
	if err != nil {
		return nil, err
	}
	return projects, nil
}

// Create inserts the project and then the owner's admin membership row. The
// two statements are independent; there is no transaction between them.
func (s *ProjectService) Create(ownerId, title, description string) (*model.Project, error) {
	db := database.GetDB()

	project := &model.Project{
		Id:          uuid.NewString(),
		Title:       title,
		Description: description,
		OwnerId:     ownerId,
	}
	if err := db.Create(project).Error; err != nil {
		return nil, err
	}

	member := &model.ProjectMember{
		ProjectId: project.Id,
		UserId:    ownerId,
		Role:      model.RoleAdmin,
	}
	if err := db.Create(member).Error; err != nil {
		return nil, err
	}

	s.Hub.Publish(websocket.UserTopic(ownerId), websocket.EventProjectUpdated)
	return project, nil
}

// Detail assembles the project with its roster and boards.
func (s *ProjectService) Detail(callerId, projectId string) (*entity.ProjectView, error) {
	project, err := s.authz.CanAccessProject(callerId, projectId)
	if err != nil {
		return nil, err
	}

	members, err := projectMembers(projectId)
	if err != nil {
		return nil, err
	}

	var boards []model.Board
	err = database.GetDB().
		Where("project_id = ?", projectId).
		Order("created_at ASC").
		Find(&boards).Error
	if err != nil {
		return nil, err
	}

	return &entity.ProjectView{Project: *project, Members: members, Boards: boards}, nil
}

// Update patches title and/or description.
func (s *ProjectService) Update(callerId, projectId string, title, description *string) (*model.Project, error) {
	project, err := s.authz.CanAccessProject(callerId, projectId)
	if err != nil {
		return nil, err
	}

	if title != nil {
		project.Title = *title
	}
	if description != nil {
		project.Description = *description
	}
	if err := database.GetDB().Save(project).Error; err != nil {
		return nil, err
	}

	s.Hub.Publish(websocket.ProjectTopic(projectId), websocket.EventProjectUpdated)
	return project, nil
}

// Delete removes the project. Owner only. Boards under it are detached by
// the SET NULL foreign key, membership rows cascade.
func (s *ProjectService) Delete(callerId, projectId string) error {
	project, err := s.authz.GetProject(projectId)
	if err != nil {
		return err
	}
	if project.OwnerId != callerId {
		return ErrForbidden
	}

	if err := database.GetDB().Delete(&model.Project{}, "id = ?", projectId).Error; err != nil {
		return err
	}

	s.Hub.Publish(websocket.ProjectTopic(projectId), websocket.EventProjectDeleted)
	return nil
}

// Invite adds a user to the roster by email. Any owner or member may invite;
// project invites are intentionally looser than board invites.
func (s *ProjectService) Invite(callerId, projectId, email, role string) (*entity.MemberView, error) {
	if _, err := s.authz.CanAccessProject(callerId, projectId); err != nil {
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

	existing, err := s.authz.ProjectRole(invited.Id, projectId)
	if err != nil {
		return nil, err
	}
	if existing != "" {
		return nil, errors.New("Already a member")
	}

	if role != model.RoleAdmin {
		role = model.RoleMember
	}
	member := &model.ProjectMember{ProjectId: projectId, UserId: invited.Id, Role: role}
	if err := db.Create(member).Error; err != nil {
		return nil, err
	}

	s.Hub.Publish(websocket.ProjectTopic(projectId), websocket.EventProjectUpdated)
	s.Hub.Publish(websocket.UserTopic(invited.Id), websocket.EventProjectUpdated)

	return &entity.MemberView{UserId: invited.Id, Email: invited.Email, Name: invited.Name, Role: role}, nil
}

// RemoveMember deletes a membership row. The owner's row cannot be removed.
func (s *ProjectService) RemoveMember(callerId, projectId, userId string) error {
	project, err := s.authz.GetProject(projectId)
	if err != nil {
		return err
	}
	if project.OwnerId != callerId {
		role, err := s.authz.ProjectRole(callerId, projectId)
		if err != nil {
			return err
		}
		if role != model.RoleAdmin {
			return ErrForbidden
		}
	}
	if userId == project.OwnerId {
		return errors.New("Cannot remove the project owner")
	}

	err = database.GetDB().
		Delete(&model.ProjectMember{}, "project_id = ? AND user_id = ?", projectId, userId).Error
	if err != nil {
		return err
	}

	s.Hub.Publish(websocket.ProjectTopic(projectId), websocket.EventProjectUpdated)
	s.Hub.Publish(websocket.UserTopic(userId), websocket.EventProjectUpdated)
	return nil
}

// projectMembers joins the roster with user identity.
func projectMembers(projectId string) ([]entity.MemberView, error) {
	var members []entity.MemberView
	err := database.GetDB().
		Model(&model.ProjectMember{}).
		Select("project_members.user_id, users.email, users.name, project_members.role").
		Joins("JOIN users ON users.id = project_members.user_id").
		Where("project_members.project_id = ?", projectId).
		Scan(&members).Error
	if err != nil {
		return nil, err
	}
	return members, nil
}
