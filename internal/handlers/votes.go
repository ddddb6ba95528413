package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"stackit/internal/models"
	"stackit/internal/service"
)

type VoteHandler struct {
	votes *service.VoteService
}

func NewVoteHandler(votes *service.VoteService) *VoteHandler {
	return &VoteHandler{votes: votes}
}

// CastVote handles upvoting/downvoting a question or answer (PROTECTED).
// Repeating a vote removes it; voting the other way flips it.
func (h *VoteHandler) CastVote(c *gin.Context) {
	var input models.VoteRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "content_type, content_id and vote_type are required"})
		return
	}

	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	total, err := h.votes.CastVote(c.Request.Context(), userID, input.ContentType, input.ContentID, input.VoteType)
	if err != nil {
		models.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Vote recorded successfully", "votes": total})
}
