package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campushelp/helpdesk/internal/app/models/dto"
	"github.com/campushelp/helpdesk/internal/app/services"
)

// ChatController handles the student chat endpoint
type ChatController struct {
	chatService *services.ChatService
}

// NewChatController creates a new chat controller
func NewChatController(chatService *services.ChatService) *ChatController {
	return &ChatController{
		chatService: chatService,
	}
}

// HandleChat godoc
// @Summary Send a chat message
// @Description Answers a student message from guardrails, the knowledge base or the AI fallback
// @Tags chat
// @Accept json
// @Produce json
// @Param request body dto.ChatRequest true "Chat message with optional student profile"
// @Success 200 {object} dto.ChatResponse
// @Failure 400 {object} dto.ChatErrorResponse
// @Router /chat [post]
func (c *ChatController) HandleChat(ctx *gin.Context) {
	var req dto.ChatRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ChatErrorResponse{Error: "Invalid request body"})
		return
	}

	reply := c.chatService.HandleMessage(ctx.Request.Context(), req.Message, req.Profile)

	ctx.JSON(http.StatusOK, dto.ChatResponse{
		Response: reply.Response,
		Source:   reply.Source,
	})
}
