package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

type registerRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Name     string `json:"name"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type authResponse struct {
	Token string   `json:"token"`
	User  userBody `json:"user"`
}

type userBody struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

func (a *API) register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if err := validate.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := a.users.Register(req.Email, req.Password, req.Name)
	if err != nil {
		fail(c, err)
		return
	}

	token, err := a.tokens.GenerateToken(user.ID, user.Email)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, authResponse{
		Token: token,
		User:  userBody{ID: user.ID, Email: user.Email, Name: user.Name},
	})
}

func (a *API) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if err := validate.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := a.users.Authenticate(req.Email, req.Password)
	if err != nil {
		fail(c, err)
		return
	}

	token, err := a.tokens.GenerateToken(user.ID, user.Email)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, authResponse{
		Token: token,
		User:  userBody{ID: user.ID, Email: user.Email, Name: user.Name},
	})
}
