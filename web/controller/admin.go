package controller

import (
	"net/http"

	"boardhub/web/middleware"
	"boardhub/web/service"

	"github.com/gin-gonic/gin"
)

type AdminController struct {
	svc *service.UserAdminService
}

func NewAdminController(g *gin.RouterGroup, svc *service.UserAdminService) *AdminController {
	a := &AdminController{svc: svc}

	g.Use(middleware.AdminRequired())
	g.GET("/users", a.listUsers)
	g.POST("/users/:id/access", a.toggleAccess)
	g.POST("/users/:id/ban", a.toggleBan)
	g.PATCH("/users/:id/name", a.rename)
	g.DELETE("/users/:id/projects/:projectId", a.removeProjectMembership)
	g.DELETE("/users/:id/boards/:boardId", a.removeBoardMembership)

	return a
}

func (a *AdminController) listUsers(c *gin.Context) {
	users, err := a.svc.ListUsers()
	if err != nil {
		jsonError(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

func (a *AdminController) toggleAccess(c *gin.Context) {
	caller := middleware.CurrentUser(c)
	user, err := a.svc.ToggleAccess(caller.Id, c.Param("id"))
	if err != nil {
		jsonError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (a *AdminController) toggleBan(c *gin.Context) {
	caller := middleware.CurrentUser(c)
	user, err := a.svc.ToggleBan(caller.Id, c.Param("id"))
	if err != nil {
		jsonError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

type renameReq struct {
	Name string `json:"name" binding:"required"`
}

func (a *AdminController) rename(c *gin.Context) {
	var req renameReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}
	user, err := a.svc.Rename(c.Param("id"), req.Name)
	if err != nil {
		jsonError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (a *AdminController) removeProjectMembership(c *gin.Context) {
	if err := a.svc.RemoveProjectMembership(c.Param("id"), c.Param("projectId")); err != nil {
		jsonError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (a *AdminController) removeBoardMembership(c *gin.Context) {
	if err := a.svc.RemoveBoardMembership(c.Param("id"), c.Param("boardId")); err != nil {
		jsonError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
