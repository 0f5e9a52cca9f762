package server

import (
	"net/http"
	"strings"

	"github.com/amani-hq/amani/internal/resource"
	"github.com/gin-gonic/gin"
)

func (s *Server) registerRestreamRoutes(api *gin.RouterGroup) {
	group := api.Group("/restream")

	group.GET("/authorize", s.handleRestreamAuthorize)
	group.POST("/token", s.handleRestreamToken)
	group.GET("/channels", s.handleRestreamChannels)
}

// handleRestreamAuthorize returns the upstream authorization URL instead of
// redirecting, so browser and native clients can each start the flow their
// own way.
func (s *Server) handleRestreamAuthorize(c *gin.Context) {
	authURL, state, err := s.restream.AuthorizeURL(c.Query("state"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondOK(c, "authorization url generated", gin.H{
		"authorize_url": authURL,
		"state":         state,
	})
}

func (s *Server) handleRestreamToken(c *gin.Context) {
	var body struct {
		Code string `json:"code"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || strings.TrimSpace(body.Code) == "" {
		AbortWithError(c, resource.Validationf("field %q is required", "code"))
		return
	}

	token, err := s.restream.Exchange(c.Request.Context(), body.Code)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondOK(c, "token exchanged", token)
}

// handleRestreamChannels proxies the channel listing. The access token comes
// from the caller; no upstream credentials are stored server side.
func (s *Server) handleRestreamChannels(c *gin.Context) {
	token := strings.TrimSpace(strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer "))
	if token == "" {
		AbortWithError(c, ErrUnauthenticated)
		return
	}

	payload, err := s.restream.Do(c.Request.Context(), token, http.MethodGet, "/user/channel/all")
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondOK(c, "channels retrieved", payload)
}
