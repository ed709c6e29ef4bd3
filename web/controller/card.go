package controller

import (
	"net/http"

	"boardhub/web/middleware"
	"boardhub/web/service"

	"github.com/gin-gonic/gin"
)

type CardController struct {
	svc *service.CardService
}

func NewCardController(g *gin.RouterGroup, svc *service.CardService) *CardController {
	cc := &CardController{svc: svc}

	g.Use(middleware.LoginRequired())
	g.POST("", cc.create)
	g.PATCH("/:id", cc.update)
	g.DELETE("/:id", cc.delete)

	return cc
}

type createCardReq struct {
	ListId   string   `json:"listId" binding:"required"`
	Content  string   `json:"content" binding:"required"`
	Position *float64 `json:"position"`
}

func (cc *CardController) create(c *gin.Context) {
	var req createCardReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}
	user := middleware.CurrentUser(c)
	card, err := cc.svc.Create(user.Id, req.ListId, req.Content, req.Position)
	if err != nil {
		jsonError(c, err)
		return
	}
	c.JSON(http.StatusOK, card)
}

type updateCardReq struct {
	Content  *string  `json:"content"`
	Position *float64 `json:"position"`
	ListId   *string  `json:"listId"`
}

func (cc *CardController) update(c *gin.Context) {
	var req updateCardReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}
	user := middleware.CurrentUser(c)
	card, err := cc.svc.Update(user.Id, c.Param("id"), req.Content, req.Position, req.ListId)
	if err != nil {
		jsonError(c, err)
		return
	}
	c.JSON(http.StatusOK, card)
}

func (cc *CardController) delete(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if err := cc.svc.Delete(user.Id, c.Param("id")); err != nil {
		jsonError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
