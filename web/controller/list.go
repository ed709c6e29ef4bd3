package controller

import (
	"net/http"

	"boardhub/web/middleware"
	"boardhub/web/service"

	"github.com/gin-gonic/gin"
)

type ListController struct {
	svc *service.ListService
}

func NewListController(g *gin.RouterGroup, svc *service.ListService) *ListController {
	l := &ListController{svc: svc}

	g.Use(middleware.LoginRequired())
	g.PATCH("/:id", l.update)
	g.DELETE("/:id", l.delete)
	g.POST("/:id/duplicate", l.duplicate)
	g.POST("/:id/move-cards", l.moveCards)
	g.POST("/:id/sort", l.sort)

	return l
}

type updateListReq struct {
	Title    *string  `json:"title"`
	Color    *string  `json:"color"`
	Position *float64 `json:"position"`
}

func (l *ListController) update(c *gin.Context) {
	var req updateListReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}
	user := middleware.CurrentUser(c)
	list, err := l.svc.Update(user.Id, c.Param("id"), req.Title, req.Color, req.Position)
	if err != nil {
		jsonError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (l *ListController) delete(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if err := l.svc.Delete(user.Id, c.Param("id")); err != nil {
		jsonError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (l *ListController) duplicate(c *gin.Context) {
	user := middleware.CurrentUser(c)
	list, err := l.svc.Duplicate(user.Id, c.Param("id"))
	if err != nil {
		jsonError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

type moveCardsReq struct {
	TargetListId string `json:"targetListId" binding:"required"`
}

func (l *ListController) moveCards(c *gin.Context) {
	var req moveCardsReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}
	user := middleware.CurrentUser(c)
	if err := l.svc.MoveCards(user.Id, c.Param("id"), req.TargetListId); err != nil {
		jsonError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

type sortReq struct {
	Mode string `json:"mode" binding:"required,oneof=oldest newest abc"`
}

func (l *ListController) sort(c *gin.Context) {
	var req sortReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}
	user := middleware.CurrentUser(c)
	if err := l.svc.Sort(user.Id, c.Param("id"), req.Mode); err != nil {
		jsonError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
