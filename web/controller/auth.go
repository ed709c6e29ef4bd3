// Package controller provides the gin handlers for the boardhub API. Each
// controller registers its own routes on the group handed to its
// constructor.
package controller

import (
	"net/http"

	"boardhub/logger"
	"boardhub/web/entity"
	"boardhub/web/middleware"
	"boardhub/web/service"
	"boardhub/web/session"

	"github.com/gin-gonic/gin"
)

type AuthController struct {
	svc *service.AuthService
}

func NewAuthController(g *gin.RouterGroup, svc *service.AuthService) *AuthController {
	a := &AuthController{svc: svc}

	g.POST("/signup", a.signup)
	g.POST("/login", a.login)
	g.POST("/logout", a.logout)
	g.GET("/me", a.me)

	return a
}

type signupReq struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Name     string `json:"name" binding:"required"`
}

func (a *AuthController) signup(c *gin.Context) {
	var req signupReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}

	user, sess, err := a.svc.Signup(req.Email, req.Password, req.Name)
	if err != nil {
		jsonError(c, err)
		return
	}
	if err := session.SetToken(c, sess.Id); err != nil {
		logger.Warning("set session cookie failed:", err)
	}
	c.JSON(http.StatusOK, entity.ToUserDTO(user))
}

type loginReq struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (a *AuthController) login(c *gin.Context) {
	var req loginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}

	user, sess, err := a.svc.Login(req.Email, req.Password)
	if err != nil {
		jsonError(c, err)
		return
	}
	if err := session.SetToken(c, sess.Id); err != nil {
		logger.Warning("set session cookie failed:", err)
	}
	c.JSON(http.StatusOK, entity.ToUserDTO(user))
}

func (a *AuthController) logout(c *gin.Context) {
	if err := a.svc.Logout(session.GetToken(c)); err != nil {
		jsonError(c, err)
		return
	}
	if err := session.Clear(c); err != nil {
		logger.Warning("clear session cookie failed:", err)
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// me returns the caller's public projection, or null when anonymous.
func (a *AuthController) me(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		c.JSON(http.StatusOK, nil)
		return
	}
	c.JSON(http.StatusOK, entity.ToUserDTO(user))
}
