package controller

import (
	"net/http"

	"boardhub/web/middleware"
	"boardhub/web/service"

	"github.com/gin-gonic/gin"
)

type BoardController struct {
	svc *service.BoardService
}

func NewBoardController(g *gin.RouterGroup, svc *service.BoardService) *BoardController {
	b := &BoardController{svc: svc}

	g.Use(middleware.LoginRequired())
	g.GET("", b.list)
	g.POST("", b.create)
	g.GET("/:id", b.detail)
	g.PATCH("/:id", b.update)
	g.DELETE("/:id", b.delete)
	g.POST("/:id/invite", b.invite)
	g.POST("/:id/lists", b.createList)
	g.DELETE("/:id/members/:userId", b.removeMember)

	return b
}

func (b *BoardController) list(c *gin.Context) {
	user := middleware.CurrentUser(c)
	boards, err := b.svc.ListForUser(user.Id)
	if err != nil {
		jsonError(c, err)
		return
	}
	c.JSON(http.StatusOK, boards)
}

type createBoardReq struct {
	Title     string  `json:"title" binding:"required"`
	ProjectId *string `json:"projectId"`
}

func (b *BoardController) create(c *gin.Context) {
	var req createBoardReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}
	user := middleware.CurrentUser(c)
	board, err := b.svc.Create(user.Id, req.Title, req.ProjectId)
	if err != nil {
		jsonError(c, err)
		return
	}
	c.JSON(http.StatusOK, board)
}

func (b *BoardController) detail(c *gin.Context) {
	user := middleware.CurrentUser(c)
	view, err := b.svc.Detail(user.Id, c.Param("id"))
	if err != nil {
		jsonError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

type updateBoardReq struct {
	Title *string `json:"title"`
}

func (b *BoardController) update(c *gin.Context) {
	var req updateBoardReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}
	user := middleware.CurrentUser(c)
	board, err := b.svc.Update(user.Id, c.Param("id"), req.Title)
	if err != nil {
		jsonError(c, err)
		return
	}
	c.JSON(http.StatusOK, board)
}

func (b *BoardController) delete(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if err := b.svc.Delete(user.Id, c.Param("id")); err != nil {
		jsonError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (b *BoardController) invite(c *gin.Context) {
	var req inviteReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}
	user := middleware.CurrentUser(c)
	member, err := b.svc.Invite(user.Id, c.Param("id"), req.Email, req.Role)
	if err != nil {
		jsonError(c, err)
		return
	}
	c.JSON(http.StatusOK, member)
}

type createListReq struct {
	Title    string   `json:"title" binding:"required"`
	Color    string   `json:"color"`
	Position *float64 `json:"position"`
}

func (b *BoardController) createList(c *gin.Context) {
	var req createListReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}
	user := middleware.CurrentUser(c)
	list, err := b.svc.CreateList(user.Id, c.Param("id"), req.Title, req.Color, req.Position)
	if err != nil {
		jsonError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (b *BoardController) removeMember(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if err := b.svc.RemoveMember(user.Id, c.Param("id"), c.Param("userId")); err != nil {
		jsonError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
