package server

import (
	"net/http"

	"github.com/amani-hq/amani/pkg/pagination"
	"github.com/gin-gonic/gin"
)

// envelope is the uniform response shape. Pagination is present only on
// list responses.
type envelope struct {
	Success    bool             `json:"success"`
	Message    string           `json:"message"`
	Data       any              `json:"data"`
	Pagination *pagination.Meta `json:"pagination,omitempty"`
}

func respondOK(c *gin.Context, message string, data any) {
	c.JSON(http.StatusOK, envelope{Success: true, Message: message, Data: data})
}

func respondCreated(c *gin.Context, message string, data any) {
	c.JSON(http.StatusCreated, envelope{Success: true, Message: message, Data: data})
}

func respondList(c *gin.Context, message string, items any, meta pagination.Meta) {
	c.JSON(http.StatusOK, envelope{
		Success:    true,
		Message:    message,
		Data:       items,
		Pagination: &meta,
	})
}
