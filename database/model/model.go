// Package model defines the table structs persisted by boardhub.
package model

import "time"

// Membership roles on a project or board.
const (
	RoleAdmin  = "admin"
	RoleMember = "member"
)

type User struct {
	Id           string    `json:"id" gorm:"primaryKey"`
	Email        string    `json:"email" gorm:"uniqueIndex"`
	PasswordHash string    `json:"-"`
	Name         string    `json:"name"`
	IsAdmin      bool      `json:"isAdmin"`
	IsBanned     bool      `json:"isBanned"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Session is a server-side login session. Its Id is the opaque bearer token
// carried by the session cookie. Rows past ExpiresAt are treated as absent
// by resolution; a cron job prunes them eventually.
type Session struct {
	Id        string    `json:"id" gorm:"primaryKey"`
	UserId    string    `json:"userId" gorm:"index"`
	User      User      `json:"-" gorm:"foreignKey:UserId;constraint:OnDelete:CASCADE"`
	ExpiresAt time.Time `json:"expiresAt"`
}

type Project struct {
	Id          string    `json:"id" gorm:"primaryKey"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	OwnerId     string    `json:"ownerId" gorm:"index"`
	CreatedAt   time.Time `json:"createdAt"`
}

type ProjectMember struct {
	ProjectId string  `json:"projectId" gorm:"primaryKey"`
	UserId    string  `json:"userId" gorm:"primaryKey"`
	Role      string  `json:"role"`
	Project   Project `json:"-" gorm:"foreignKey:ProjectId;constraint:OnDelete:CASCADE"`
	User      User    `json:"-" gorm:"foreignKey:UserId;constraint:OnDelete:CASCADE"`
}

// Board optionally belongs to a project; deleting the project detaches the
// board instead of removing it.
type Board struct {
	Id        string    `json:"id" gorm:"primaryKey"`
	Title     string    `json:"title"`
	OwnerId   string    `json:"ownerId" gorm:"index"`
	ProjectId *string   `json:"projectId,omitempty" gorm:"index"`
	Project   *Project  `json:"-" gorm:"foreignKey:ProjectId;constraint:OnDelete:SET NULL"`
	CreatedAt time.Time `json:"createdAt"`
}

type BoardMember struct {
	BoardId string `json:"boardId" gorm:"primaryKey"`
	UserId  string `json:"userId" gorm:"primaryKey"`
	Role    string `json:"role"`
	Board   Board  `json:"-" gorm:"foreignKey:BoardId;constraint:OnDelete:CASCADE"`
	User    User   `json:"-" gorm:"foreignKey:UserId;constraint:OnDelete:CASCADE"`
}

// List's BoardId goes NULL when its board is deleted; such orphaned lists
// (and their cards) answer not-found on every operation.
type List struct {
	Id        string    `json:"id" gorm:"primaryKey"`
	Title     string    `json:"title"`
	Position  float64   `json:"position"`
	BoardId   *string   `json:"boardId" gorm:"index"`
	Board     *Board    `json:"-" gorm:"foreignKey:BoardId;constraint:OnDelete:SET NULL"`
	Color     string    `json:"color,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

type Card struct {
	Id        string    `json:"id" gorm:"primaryKey"`
	Content   string    `json:"content"`
	ListId    *string   `json:"listId" gorm:"index"`
	List      *List     `json:"-" gorm:"foreignKey:ListId;constraint:OnDelete:CASCADE"`
	Position  float64   `json:"position"`
	CreatedAt time.Time `json:"createdAt"`
}
