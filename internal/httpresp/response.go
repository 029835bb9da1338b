package httpresp

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type ListResponse[T any] struct {
	Data  []T `json:"data"`
	Total int `json:"total"`
}

// Confirmation is the envelope for mutating operations that have no
// entity payload to return (sign-out, cancellation, password changes).
type Confirmation struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func OK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, data)
}

func Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, data)
}

func List[T any](c *gin.Context, data []T) {
	c.JSON(http.StatusOK, ListResponse[T]{
		Data:  data,
		Total: len(data),
	})
}

func Confirm(c *gin.Context, message string) {
	c.JSON(http.StatusOK, Confirmation{
		Success: true,
		Message: message,
	})
}
