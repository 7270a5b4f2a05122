package handlers

import (
	"net/http"

	"botbase/models"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

type BlacklistRequest struct {
	Kind     string `form:"kind" binding:"required"` // "guild" or "user"
	TargetID uint64 `form:"target_id" binding:"required"`
	Reason   string `form:"reason"`
}

func blacklistKind(s string) (models.BlacklistKind, bool) {
	switch s {
	case "guild":
		return models.BlacklistGuild, true
	case "user":
		return models.BlacklistUser, true
	}
	return 0, false
}

func BlacklistAdd(c *gin.Context) {
	req := BlacklistRequest{}
	err := c.ShouldBindWith(&req, binding.Form)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	kind, ok := blacklistKind(req.Kind)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "kind must be guild or user"})
		return
	}
	if err := runningBot.Blacklist.Add(kind, req.TargetID, req.Reason); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"error": ""})
}

func BlacklistRemove(c *gin.Context) {
	req := BlacklistRequest{}
	err := c.ShouldBindWith(&req, binding.Form)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	kind, ok := blacklistKind(req.Kind)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "kind must be guild or user"})
		return
	}
	if err := runningBot.Blacklist.Remove(kind, req.TargetID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"error": ""})
}
