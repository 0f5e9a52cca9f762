package server

import (
	"github.com/amani-hq/amani/internal/resource"
	"github.com/amani-hq/amani/pkg/pagination"
	"github.com/gin-gonic/gin"
)

// registerResourceRoutes mounts the six standard operations for one resource
// under /api/v1/<path>.
func (s *Server) registerResourceRoutes(api *gin.RouterGroup, svc *resource.Service) {
	desc := svc.Descriptor()
	group := api.Group("/" + desc.Path)

	group.POST("", s.handleCreate(svc))
	group.GET("", s.handleList(svc))
	group.GET("/me", s.handleListMine(svc))
	group.GET("/:id", s.handleGet(svc))
	group.PUT("/:id", s.handleUpdate(svc))
	group.DELETE("/:id", s.handleDelete(svc))
}

func (s *Server) handleCreate(svc *resource.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		payload := map[string]any{}
		if err := c.ShouldBindJSON(&payload); err != nil {
			AbortWithError(c, resource.Validationf("request body must be a JSON object"))
			return
		}

		rec, err := svc.Create(c.Request.Context(), payload, actingUserID(c))
		if err != nil {
			AbortWithError(c, err)
			return
		}
		respondCreated(c, "record created", rec)
	}
}

func (s *Server) handleList(svc *resource.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		result, err := svc.List(c.Request.Context(), listRequest(c, svc, nil))
		if err != nil {
			AbortWithError(c, err)
			return
		}
		respondList(c, "records retrieved", result.Items, result.Meta)
	}
}

func (s *Server) handleListMine(svc *resource.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid, ok := requireIdentity(c)
		if !ok {
			return
		}

		result, err := svc.List(c.Request.Context(), listRequest(c, svc, uid))
		if err != nil {
			AbortWithError(c, err)
			return
		}
		respondList(c, "records retrieved", result.Items, result.Meta)
	}
}

func (s *Server) handleGet(svc *resource.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		rec, err := svc.GetByID(c.Request.Context(), c.Param("id"))
		if err != nil {
			AbortWithError(c, err)
			return
		}
		respondOK(c, "record retrieved", rec)
	}
}

func (s *Server) handleUpdate(svc *resource.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		payload := map[string]any{}
		if err := c.ShouldBindJSON(&payload); err != nil {
			AbortWithError(c, resource.Validationf("request body must be a JSON object"))
			return
		}

		rec, err := svc.Update(c.Request.Context(), c.Param("id"), payload, actingUserID(c))
		if err != nil {
			AbortWithError(c, err)
			return
		}
		respondOK(c, "record updated", rec)
	}
}

func (s *Server) handleDelete(svc *resource.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		rec, err := svc.SoftDelete(c.Request.Context(), c.Param("id"), actingUserID(c))
		if err != nil {
			AbortWithError(c, err)
			return
		}
		respondOK(c, "record deleted", rec)
	}
}

// listRequest maps the standard query parameters plus the descriptor's scope
// parameters onto a pipeline request.
func listRequest(c *gin.Context, svc *resource.Service, userID *int64) resource.ListRequest {
	desc := svc.Descriptor()

	scopes := make(map[string]string, len(desc.Scopes))
	for param := range desc.Scopes {
		if raw, ok := c.GetQuery(param); ok {
			scopes[param] = raw
		}
	}

	return resource.ListRequest{
		Search: c.Query("search"),
		Status: c.Query("status"),
		Scopes: scopes,
		SortBy: c.Query("sort_by"),
		Order:  c.Query("order"),
		Page:   pagination.Parse(c.Query("page"), c.Query("limit")),
		UserID: userID,
	}
}
