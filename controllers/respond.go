package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type message struct {
	Text       string
	StatusCode int
}

var messages = struct {
	Success            message
	SignedUp           message
	NotFound           message
	ValidationError    message
	InvalidID          message
	InvalidBody        message
	UserExists         message
	AuthIncorrect      message
	NoRefreshToken     message
	RefreshNotVerified message
	ServerError        message
}{
	Success:            message{"Operation successful", http.StatusOK},
	SignedUp:           message{"User signed up", http.StatusCreated},
	NotFound:           message{"Resource not found", http.StatusNotFound},
	ValidationError:    message{"Validation error", http.StatusUnprocessableEntity},
	InvalidID:          message{"Invalid ID format", http.StatusBadRequest},
	InvalidBody:        message{"Invalid request body", http.StatusBadRequest},
	UserExists:         message{"Username is already taken", http.StatusConflict},
	AuthIncorrect:      message{"Incorrect username or password", http.StatusUnauthorized},
	NoRefreshToken:     message{"Refresh token is required", http.StatusBadRequest},
	RefreshNotVerified: message{"Refresh token could not be verified", http.StatusForbidden},
	ServerError:        message{"Internal server error", http.StatusInternalServerError},
}

// Envelope is the body of every JSON response.
type Envelope struct {
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
	Error   interface{} `json:"error,omitempty"`
}

func respond(c *gin.Context, m message, data interface{}) {
	c.JSON(m.StatusCode, Envelope{Message: m.Text, Data: data})
}

func respondError(c *gin.Context, m message, details interface{}) {
	c.JSON(m.StatusCode, Envelope{Message: m.Text, Error: details})
}

func requestIDFrom(c *gin.Context) string {
	if v, ok := c.Get("request_id"); ok {
		if s, ok := v.(string); ok && s != "" {
			return s
		}
	}
	return c.GetHeader("X-Request-Id")
}
