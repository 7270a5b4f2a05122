package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

type InviterRequest struct {
	GuildID  uint64 `form:"guild_id" binding:"required"`
	MemberID uint64 `form:"member_id" binding:"required"`
}

type InviteListRequest struct {
	GuildID uint64 `form:"guild_id" binding:"required"`
}

func InviterGet(c *gin.Context) {
	req := InviterRequest{}
	err := c.ShouldBindWith(&req, binding.Query)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	creator, ok := runningBot.Inviter(req.GuildID, req.MemberID)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "inviter unknown"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"error": "", "inviter": creator})
}

func InviteList(c *gin.Context) {
	req := InviteListRequest{}
	err := c.ShouldBindWith(&req, binding.Query)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"error": "", "invites": runningBot.Tracker.GuildInvites(req.GuildID)})
}
