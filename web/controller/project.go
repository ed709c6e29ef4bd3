package controller

import (
	"net/http"

	"boardhub/web/middleware"
	"boardhub/web/service"

	"github.com/gin-gonic/gin"
)

type ProjectController struct {
	svc *service.ProjectService
}

func NewProjectController(g *gin.RouterGroup, svc *service.ProjectService) *ProjectController {
	p := &ProjectController{svc: svc}

	g.Use(middleware.LoginRequired())
	g.GET("", p.list)
	g.POST("", p.create)
	g.GET("/:id", p.detail)
	g.PATCH("/:id", p.update)
	g.DELETE("/:id", p.delete)
	g.POST("/:id/invite", p.invite)
	g.DELETE("/:id/members/:userId", p.removeMember)

	return p
}

func (p *ProjectController) list(c *gin.Context) {
	user := middleware.CurrentUser(c)
	projects, err := p.svc.ListForUser(user.Id)
	if err != nil {
		jsonError(c, err)
		return
	}
	c.JSON(http.StatusOK, projects)
}

type createProjectReq struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
}

func (p *ProjectController) create(c *gin.Context) {
	var req createProjectReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}
	user := middleware.CurrentUser(c)
	project, err := p.svc.Create(user.Id, req.Title, req.Description)
	if err != nil {
		jsonError(c, err)
		return
	}
	c.JSON(http.StatusOK, project)
}

func (p *ProjectController) detail(c *gin.Context) {
	user := middleware.CurrentUser(c)
	view, err := p.svc.Detail(user.Id, c.Param("id"))
	if err != nil {
		jsonError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

type updateProjectReq struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
}

func (p *ProjectController) update(c *gin.Context) {
	var req updateProjectReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}
	user := middleware.CurrentUser(c)
	project, err := p.svc.Update(user.Id, c.Param("id"), req.Title, req.Description)
	if err != nil {
		jsonError(c, err)
		return
	}
	c.JSON(http.StatusOK, project)
}

func (p *ProjectController) delete(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if err := p.svc.Delete(user.Id, c.Param("id")); err != nil {
		jsonError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

type inviteReq struct {
	Email string `json:"email" binding:"required,email"`
	Role  string `json:"role"`
}

func (p *ProjectController) invite(c *gin.Context) {
	var req inviteReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}
	user := middleware.CurrentUser(c)
	member, err := p.svc.Invite(user.Id, c.Param("id"), req.Email, req.Role)
	if err != nil {
		jsonError(c, err)
		return
	}
	c.JSON(http.StatusOK, member)
}

func (p *ProjectController) removeMember(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if err := p.svc.RemoveMember(user.Id, c.Param("id"), c.Param("userId")); err != nil {
		jsonError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
