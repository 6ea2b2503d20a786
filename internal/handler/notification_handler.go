package handler

import (
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/kayacantekin/aidpanel/internal/domain"
	"github.com/kayacantekin/aidpanel/internal/engine"
)

// NotificationEngine is the slice of the engine the panel API needs.
type NotificationEngine interface {
	Add(draft engine.Draft) (string, error)
	Notifications() []domain.Notification
	UnreadCount() int
	MarkAsRead(id string) bool
	MarkAllAsRead() int
	Remove(id string) bool
	Clear() int
	Settings() domain.Settings
	UpdateSettings(patch domain.SettingsPatch) (domain.Settings, error)
}

type NotificationHandler struct {
	engine NotificationEngine
}

func NewNotificationHandler(engine NotificationEngine) (*NotificationHandler, error) {
	if engine == nil {
		return nil, fmt.Errorf("notification engine is required")
	}
	return &NotificationHandler{engine: engine}, nil
}

func RegisterNotificationRoutes(router fiber.Router, engine NotificationEngine) error {
	h, err := NewNotificationHandler(engine)
	if err != nil {
		return err
	}

	v1 := router.Group("/v1")
	v1.Get("/notifications", h.ListNotifications)
	v1.Get("/notifications/unread-count", h.UnreadCount)
	v1.Post("/notifications", h.CreateNotification)
	v1.Post("/notifications/read-all", h.MarkAllAsRead)
	v1.Post("/notifications/:id/read", h.MarkAsRead)
	v1.Delete("/notifications/:id", h.RemoveNotification)
	v1.Delete("/notifications", h.ClearNotifications)
	v1.Get("/settings", h.GetSettings)
	v1.Patch("/settings", h.UpdateSettings)

	return nil
}

type createNotificationRequest struct {
	Type      string         `json:"type"`
	Priority  string         `json:"priority"`
	Category  string         `json:"category"`
	Title     string         `json:"title"`
	Message   string         `json:"message"`
	Data      map[string]any `json:"data,omitempty"`
	ShowToast *bool          `json:"showToast,omitempty"`
}

type notificationResponse struct {
	ID        string         `json:"id"`
	Timestamp time.Time      `json:"timestamp"`
	Read      bool           `json:"read"`
	Priority  string         `json:"priority"`
	Type      string         `json:"type"`
	Category  string         `json:"category,omitempty"`
	Title     string         `json:"title,omitempty"`
	Message   string         `json:"message"`
	Data      map[string]any `json:"data,omitempty"`
	ShowToast bool           `json:"showToast"`
}

type listNotificationsResponse struct {
	Data        []notificationResponse `json:"data"`
	UnreadCount int                    `json:"unreadCount"`
	Total       int                    `json:"total"`
}

type settingsResponse struct {
	EnableSound   bool  `json:"enableSound"`
	EnableDesktop bool  `json:"enableDesktop"`
	EnableEmail   bool  `json:"enableEmail"`
	EnableSMS     bool  `json:"enableSms"`
	AutoRead      bool  `json:"autoRead"`
	ReadTimeoutMs int64 `json:"readTimeoutMs"`
}

type updateSettingsRequest struct {
	EnableSound   *bool  `json:"enableSound"`
	EnableDesktop *bool  `json:"enableDesktop"`
	EnableEmail   *bool  `json:"enableEmail"`
	EnableSMS     *bool  `json:"enableSms"`
	AutoRead      *bool  `json:"autoRead"`
	ReadTimeoutMs *int64 `json:"readTimeoutMs"`
}

func (h *NotificationHandler) ListNotifications(c *fiber.Ctx) error {
	records := h.engine.Notifications()

	unread := 0
	responses := make([]notificationResponse, 0, len(records))
	for _, record := range records {
		if !record.Read {
			unread++
		}
		responses = append(responses, toNotificationResponse(record))
	}

	if onlyUnread := c.QueryBool("unread", false); onlyUnread {
		filtered := responses[:0]
		for _, item := range responses {
			if !item.Read {
				filtered = append(filtered, item)
			}
		}
		responses = filtered
	}

	return c.Status(fiber.StatusOK).JSON(listNotificationsResponse{
		Data:        responses,
		UnreadCount: unread,
		Total:       len(responses),
	})
}

func (h *NotificationHandler) UnreadCount(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"unreadCount": h.engine.UnreadCount(),
	})
}

func (h *NotificationHandler) CreateNotification(c *fiber.Ctx) error {
	var req createNotificationRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	draft := engine.Draft{
		Category:  strings.TrimSpace(req.Category),
		Title:     strings.TrimSpace(req.Title),
		Message:   strings.TrimSpace(req.Message),
		Data:      req.Data,
		ShowToast: req.ShowToast,
	}

	if raw := strings.TrimSpace(req.Type); raw != "" {
		parsed, err := domain.ParseTypeFromString(raw)
		if err != nil {
			return toHTTPError(err)
		}
		draft.Type = parsed
	}
	if raw := strings.TrimSpace(req.Priority); raw != "" {
		parsed, err := domain.ParsePriorityFromString(raw)
		if err != nil {
			return toHTTPError(err)
		}
		draft.Priority = parsed
	}

	id, err := h.engine.Add(draft)
	if err != nil {
		return toHTTPError(err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"id": id,
	})
}

func (h *NotificationHandler) MarkAsRead(c *fiber.Ctx) error {
	id := strings.TrimSpace(c.Params("id"))
	if !h.engine.MarkAsRead(id) {
		return toHTTPError(fmt.Errorf("%w: notification %s", domain.ErrNotFound, id))
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"id":   id,
		"read": true,
	})
}

func (h *NotificationHandler) MarkAllAsRead(c *fiber.Ctx) error {
	changed := h.engine.MarkAllAsRead()
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"marked": changed,
	})
}

func (h *NotificationHandler) RemoveNotification(c *fiber.Ctx) error {
	id := strings.TrimSpace(c.Params("id"))
	if !h.engine.Remove(id) {
		return toHTTPError(fmt.Errorf("%w: notification %s", domain.ErrNotFound, id))
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"id":      id,
		"removed": true,
	})
}

func (h *NotificationHandler) ClearNotifications(c *fiber.Ctx) error {
	removed := h.engine.Clear()
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"removed": removed,
	})
}

func (h *NotificationHandler) GetSettings(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(toSettingsResponse(h.engine.Settings()))
}

func (h *NotificationHandler) UpdateSettings(c *fiber.Ctx) error {
	var req updateSettingsRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	patch := domain.SettingsPatch{
		EnableSound:   req.EnableSound,
		EnableDesktop: req.EnableDesktop,
		EnableEmail:   req.EnableEmail,
		EnableSMS:     req.EnableSMS,
		AutoRead:      req.AutoRead,
	}
	if req.ReadTimeoutMs != nil {
		timeout := time.Duration(*req.ReadTimeoutMs) * time.Millisecond
		patch.ReadTimeout = &timeout
	}

	next, err := h.engine.UpdateSettings(patch)
	if err != nil {
		return toHTTPError(err)
	}

	return c.Status(fiber.StatusOK).JSON(toSettingsResponse(next))
}

func toNotificationResponse(n domain.Notification) notificationResponse {
	return notificationResponse{
		ID:        n.ID,
		Timestamp: n.Timestamp,
		Read:      n.Read,
		Priority:  n.Priority.String(),
		Type:      n.Type.String(),
		Category:  n.Category,
		Title:     n.Title,
		Message:   n.Message,
		Data:      n.Data,
		ShowToast: n.ShowToast,
	}
}

func toSettingsResponse(s domain.Settings) settingsResponse {
	return settingsResponse{
		EnableSound:   s.EnableSound,
		EnableDesktop: s.EnableDesktop,
		EnableEmail:   s.EnableEmail,
		EnableSMS:     s.EnableSMS,
		AutoRead:      s.AutoRead,
		ReadTimeoutMs: s.ReadTimeout.Milliseconds(),
	}
}
