// Message HTTP handlers.
//
// This file exposes the REST endpoints for board messages:
//   - GET    /messages             (list the full collection)
//   - POST   /messages             (create a message)
//   - DELETE /messages/:id         (delete one message)
//   - DELETE /messages             (delete everything)
//   - DELETE /messages/older-than  (delete messages beyond a window)
//   - POST   /messages/auto-delete (reconfigure the background sweep)
//   - GET    /messages/auto-delete (inspect the sweep setting)
//
// Handlers are transport-thin: validate and shape input, delegate to the
// message service / sweeper, and translate service errors into HTTP results.
package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/boardkit/go-board-backend/internal/http/middleware"
	"github.com/boardkit/go-board-backend/internal/services"
)

//
// DTOs
//

// CreateMessageRequest is the JSON payload for posting a message.
type CreateMessageRequest struct {
	// Text is the message body. It must be non-empty after trimming.
	Text string `json:"text" example:"hello board"`
}

// HoursRequest is the JSON payload for the two hours-based endpoints.
// Hours is a pointer so "absent" can be told apart from a literal 0; both
// are rejected, matching the original service's input check.
type HoursRequest struct {
	Hours *float64 `json:"hours" example:"24"`
}

// DeleteResponse reports a deletion with an affected-row count.
type DeleteResponse struct {
	Message      string `json:"message" example:"Message deleted successfully"`
	DeletedCount int    `json:"deletedCount" example:"1"`
}

// ClearResponse reports a full wipe.
type ClearResponse struct {
	Message string `json:"message" example:"All messages deleted successfully"`
}

// AutoDeleteResponse confirms a sweep reconfiguration.
type AutoDeleteResponse struct {
	Message string  `json:"message" example:"Auto-delete set to 24 hours"`
	Hours   float64 `json:"hours" example:"24"`
}

// AutoDeleteSetting describes the current sweep configuration.
type AutoDeleteSetting struct {
	AutoDeleteEnabled bool   `json:"autoDeleteEnabled" example:"true"`
	CurrentSetting    string `json:"currentSetting" example:"24 hours"`
	Configurable      bool   `json:"configurable" example:"true"`
}

const errInvalidHours = "Valid hours value is required"

// formatHours renders an hours value the way the setting endpoint reports
// it: no trailing zeros for whole numbers ("24 hours", "1.5 hours").
func formatHours(hours float64) string {
	return strconv.FormatFloat(hours, 'f', -1, 64) + " hours"
}

// bindHours parses and validates an hours payload. It writes the 400
// response itself and reports ok=false when the request is invalid.
func bindHours(c *gin.Context) (hours float64, ok bool) {
	var req HoursRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Hours == nil || *req.Hours <= 0 {
		fail(c, http.StatusBadRequest, errInvalidHours, nil)
		return 0, false
	}
	return *req.Hours, true
}

//
// Handlers
//

// ListMessages godoc
// @ID          listMessages
// @Summary     List all messages
// @Description Returns the full message collection in persisted order.
// @Tags        Messages
// @Produce     json
// @Success     200  {array}  domain.Message
// @Router      /messages [get]
func (h *Handlers) ListMessages(c *gin.Context) {
	msgs := h.msgSvc.List()
	middleware.SetBoardSize(len(msgs))
	ok(c, http.StatusOK, msgs)
}

// CreateMessage godoc
// @ID          createMessage
// @Summary     Post a message
// @Description Stores a new message with a server-assigned id and UTC timestamp.
// @Tags        Messages
// @Accept      json
// @Produce     json
// @Param       body  body  handlers.CreateMessageRequest  true  "Message payload"
// @Success     201  {object} domain.Message
// @Failure     400  {object} handlers.ErrorResponse "Empty text"
// @Failure     500  {object} handlers.ErrorResponse "Storage failure"
// @Router      /messages [post]
func (h *Handlers) CreateMessage(c *gin.Context) {
	var req CreateMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "Message text is required", nil)
		return
	}

	msg, err := h.msgSvc.Create(req.Text)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrEmptyText):
			fail(c, http.StatusBadRequest, "Message text is required", nil)
		default:
			// StorageError and anything unexpected both surface as 500.
			fail(c, http.StatusInternalServerError, "Failed to save message", err)
		}
		return
	}

	ok(c, http.StatusCreated, msg)
}

// DeleteMessage godoc
// @ID          deleteMessage
// @Summary     Delete one message
// @Description Removes the message with the given id.
// @Tags        Messages
// @Produce     json
// @Param       id  path  string  true  "Message ID"
// @Success     200  {object} handlers.DeleteResponse
// @Failure     404  {object} handlers.ErrorResponse "Unknown id"
// @Failure     500  {object} handlers.ErrorResponse "Storage failure"
// @Router      /messages/{id} [delete]
func (h *Handlers) DeleteMessage(c *gin.Context) {
	id := c.Param("id")

	if err := h.msgSvc.Delete(id); err != nil {
		switch {
		case errors.Is(err, services.ErrMessageNotFound):
			fail(c, http.StatusNotFound, "Message not found", nil)
		default:
			fail(c, http.StatusInternalServerError, "Failed to delete message", err)
		}
		return
	}

	ok(c, http.StatusOK, DeleteResponse{
		Message:      "Message deleted successfully",
		DeletedCount: 1,
	})
}

// DeleteAllMessages godoc
// @ID          deleteAllMessages
// @Summary     Delete all messages
// @Description Overwrites the board with an empty collection. Succeeds even when already empty.
// @Tags        Messages
// @Produce     json
// @Success     200  {object} handlers.ClearResponse
// @Failure     500  {object} handlers.ErrorResponse "Storage failure"
// @Router      /messages [delete]
func (h *Handlers) DeleteAllMessages(c *gin.Context) {
	if err := h.msgSvc.Clear(); err != nil {
		fail(c, http.StatusInternalServerError, "Failed to delete messages", err)
		return
	}
	middleware.SetBoardSize(0)
	ok(c, http.StatusOK, ClearResponse{Message: "All messages deleted successfully"})
}

// DeleteOlderThan godoc
// @ID          deleteOlderThan
// @Summary     Delete messages older than a window
// @Description Removes every message created before now minus the given hours.
// @Tags        Messages
// @Accept      json
// @Produce     json
// @Param       body  body  handlers.HoursRequest  true  "Window in hours (> 0)"
// @Success     200  {object} handlers.DeleteResponse
// @Failure     400  {object} handlers.ErrorResponse "Invalid hours"
// @Failure     500  {object} handlers.ErrorResponse "Storage failure"
// @Router      /messages/older-than [delete]
func (h *Handlers) DeleteOlderThan(c *gin.Context) {
	hours, okReq := bindHours(c)
	if !okReq {
		return
	}

	removed, err := h.msgSvc.DeleteOlderThan(hours)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidHours):
			fail(c, http.StatusBadRequest, errInvalidHours, nil)
		default:
			fail(c, http.StatusInternalServerError, "Failed to delete messages", err)
		}
		return
	}

	middleware.AddExpired("request", removed)
	ok(c, http.StatusOK, DeleteResponse{
		Message:      fmt.Sprintf("Deleted %d message(s) older than %s", removed, formatHours(hours)),
		DeletedCount: removed,
	})
}

// SetAutoDelete godoc
// @ID          setAutoDelete
// @Summary     Configure the auto-delete sweep
// @Description Cancels the current sweep schedule and installs a new one with the given window.
// @Tags        AutoDelete
// @Accept      json
// @Produce     json
// @Param       body  body  handlers.HoursRequest  true  "Window in hours (> 0)"
// @Success     200  {object} handlers.AutoDeleteResponse
// @Failure     400  {object} handlers.ErrorResponse "Invalid hours"
// @Router      /messages/auto-delete [post]
func (h *Handlers) SetAutoDelete(c *gin.Context) {
	hours, okReq := bindHours(c)
	if !okReq {
		return
	}

	if err := h.sweeper.Reconfigure(hours); err != nil {
		fail(c, http.StatusBadRequest, errInvalidHours, nil)
		return
	}

	ok(c, http.StatusOK, AutoDeleteResponse{
		Message: fmt.Sprintf("Auto-delete set to %s", formatHours(hours)),
		Hours:   hours,
	})
}

// GetAutoDelete godoc
// @ID          getAutoDelete
// @Summary     Inspect the auto-delete setting
// @Tags        AutoDelete
// @Produce     json
// @Success     200  {object} handlers.AutoDeleteSetting
// @Router      /messages/auto-delete [get]
func (h *Handlers) GetAutoDelete(c *gin.Context) {
	hours := h.sweeper.Current()
	ok(c, http.StatusOK, AutoDeleteSetting{
		AutoDeleteEnabled: hours > 0,
		CurrentSetting:    formatHours(hours),
		Configurable:      true,
	})
}
