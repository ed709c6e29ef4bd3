// Package entity defines the view types returned by the API layer.
package entity

import (
	"time"

	"boardhub/database/model"
)

// UserDTO is the public projection of a user; the password hash and flags
// not meant for peers never leave the server.
type UserDTO struct {
	Id      string `json:"id"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	IsAdmin bool   `json:"isAdmin"`
}

func ToUserDTO(u *model.User) UserDTO {
	return UserDTO{Id: u.Id, Email: u.Email, Name: u.Name, IsAdmin: u.IsAdmin}
}

// MemberView is a membership row joined with user identity.
type MemberView struct {
	UserId string `json:"userId"`
	Email  string `json:"email"`
	Name   string `json:"name"`
	Role   string `json:"role"`
}

// ListView is a list with its cards ordered by position.
type ListView struct {
	model.List
	Cards []model.Card `json:"cards"`
}

// BoardView is the composite board payload: the row, its roster, and its
// lists with cards.
type BoardView struct {
	model.Board
	Members []MemberView `json:"members"`
	Lists   []ListView   `json:"lists"`
}

// ProjectView is the composite project payload.
type ProjectView struct {
	model.Project
	Members []MemberView  `json:"members"`
	Boards  []model.Board `json:"boards"`
}

// AdminUserView is the admin console's per-user row with aggregate
// membership counts.
type AdminUserView struct {
	Id           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	IsAdmin      bool      `json:"isAdmin"`
	IsBanned     bool      `json:"isBanned"`
	CreatedAt    time.Time `json:"createdAt"`
	ProjectCount int64     `json:"projectCount"`
	BoardCount   int64     `json:"boardCount"`
}
