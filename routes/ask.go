package routes

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"scheme-assistant-platform/internal/config"
	"scheme-assistant-platform/internal/logger"
	"scheme-assistant-platform/models"
	"scheme-assistant-platform/services"
	"scheme-assistant-platform/utils"
)

const jsonContentType = "application/json; charset=utf-8"

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	// Kiosks and field devices connect from arbitrary origins.
	CheckOrigin: func(*http.Request) bool { return true },
}

func SetupAskRoutes(router *gin.Engine, cfg *config.Config, assistant *services.Assistant, responder *services.Responder) {
	// Main query endpoint
	router.GET("/ask", func(c *gin.Context) {
		var req models.AskRequest
		if err := c.ShouldBindQuery(&req); err != nil {
			utils.RespondWithBadRequest(c, "Invalid request data", gin.H{"error": err.Error()})
			return
		}

		if msg, ok := validateQuery(cfg, req.Q); !ok {
			utils.RespondWithError(c, http.StatusBadRequest, "invalid_query", msg, nil)
			return
		}

		resp, raw, err := assistant.Answer(c.Request.Context(), req)
		if err != nil {
			writeAnswerError(c, responder, err)
			return
		}

		logger.Debug("ask response assembled", "bytes", resp.ByteSize, "schemes", len(resp.Schemes))
		c.Data(http.StatusOK, jsonContentType, raw)
	})

	// Real-time query surface: same request/response shapes as /ask,
	// one JSON frame per message.
	router.GET("/ws", func(c *gin.Context) {
		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			logger.Warn("websocket upgrade failed", "error", err)
			return
		}
		defer conn.Close()

		for {
			var req models.AskRequest
			if err := conn.ReadJSON(&req); err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
					logger.Warn("websocket read failed", "error", err)
				}
				return
			}

			if msg, ok := validateQuery(cfg, req.Q); !ok {
				if err := conn.WriteJSON(utils.ErrorResponse{ErrorCode: "invalid_query", Message: msg}); err != nil {
					return
				}
				continue
			}

			_, raw, err := assistant.Answer(c.Request.Context(), req)
			if errors.Is(err, services.ErrResponseTooLarge) {
				raw = responder.CapacityPayload()
			} else if err != nil {
				if err := conn.WriteJSON(utils.ErrorResponse{ErrorCode: "internal_error", Message: "Failed to answer query"}); err != nil {
					return
				}
				continue
			}

			if err := conn.WriteMessage(websocket.TextMessage, raw); err != nil {
				return
			}
		}
	})

	// Health check, subject to the same byte ceiling as everything else
	router.GET("/health", func(c *gin.Context) {
		raw, err := responder.EncodeWithinBudget(gin.H{"msg": "ok"})
		if err != nil {
			c.Data(http.StatusInternalServerError, jsonContentType, responder.CapacityPayload())
			return
		}
		c.Data(http.StatusOK, jsonContentType, raw)
	})
}

// validateQuery enforces the query length window before anything
// reaches the ranking core.
func validateQuery(cfg *config.Config, q string) (string, bool) {
	length := len([]rune(q))
	if length < cfg.MinQueryLength {
		return "Query must not be empty", false
	}
	if length > cfg.MaxQueryLength {
		return "Query is too long", false
	}
	return "", true
}

// writeAnswerError maps pipeline failures onto wire payloads. An
// over-budget response is replaced wholesale by the fixed capacity
// payload and surfaced as a server-side failure.
func writeAnswerError(c *gin.Context, responder *services.Responder, err error) {
	if errors.Is(err, services.ErrResponseTooLarge) {
		logger.Error("assembled response exceeded byte budget", "path", c.FullPath())
		c.Data(http.StatusInternalServerError, jsonContentType, responder.CapacityPayload())
		return
	}
	utils.RespondWithInternalError(c, "Failed to answer query", nil)
}
