package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/medrelay-dev/medrelay/internal/apperrors"
	"github.com/medrelay-dev/medrelay/internal/services"
	"github.com/medrelay-dev/medrelay/internal/utils"
)

type NotificationHandler struct {
	Service *services.NotificationService
}

func NewNotificationHandler(service *services.NotificationService) *NotificationHandler {
	return &NotificationHandler{Service: service}
}

// --- chat notifications ---

func (h *NotificationHandler) ListChatNotifications(ctx *gin.Context) {
	caller, err := utils.GetCurrentCaller(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Caller not authenticated"})
		return
	}

	notifications, err := h.Service.FindAllChatNotificationsByRecipient(caller.Role, caller.ID)
	if err != nil {
		apperrors.Respond(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, notifications)
}

func (h *NotificationHandler) GetChatNotification(ctx *gin.Context) {
	caller, err := utils.GetCurrentCaller(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Caller not authenticated"})
		return
	}

	id, err := utils.GetNotificationID(ctx)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	notification, err := h.Service.FindChatNotificationByID(id, caller)
	if err != nil {
		apperrors.Respond(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, notification)
}

func (h *NotificationHandler) DeleteChatNotification(ctx *gin.Context) {
	caller, err := utils.GetCurrentCaller(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Caller not authenticated"})
		return
	}

	id, err := utils.GetNotificationID(ctx)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.Service.DeleteChatNotification(id, caller); err != nil {
		apperrors.Respond(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Notification deleted successfully"})
}

func (h *NotificationHandler) DeleteAllChatNotifications(ctx *gin.Context) {
	caller, err := utils.GetCurrentCaller(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Caller not authenticated"})
		return
	}

	if err := h.Service.DeleteAllChatNotifications(caller.Role, caller.ID); err != nil {
		apperrors.Respond(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Notifications deleted successfully"})
}

// --- consent request notifications ---

func (h *NotificationHandler) ListConsentRequestNotifications(ctx *gin.Context) {
	caller, err := utils.GetCurrentCaller(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Caller not authenticated"})
		return
	}

	notifications, err := h.Service.FindAllConsentRequestNotificationsByRecipient(caller.Role, caller.ID)
	if err != nil {
		apperrors.Respond(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, notifications)
}

func (h *NotificationHandler) GetConsentRequestNotification(ctx *gin.Context) {
	caller, err := utils.GetCurrentCaller(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Caller not authenticated"})
		return
	}

	id, err := utils.GetNotificationID(ctx)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	notification, err := h.Service.FindConsentRequestNotificationByID(id, caller)
	if err != nil {
		apperrors.Respond(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, notification)
}

func (h *NotificationHandler) DeleteConsentRequestNotification(ctx *gin.Context) {
	caller, err := utils.GetCurrentCaller(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Caller not authenticated"})
		return
	}

	id, err := utils.GetNotificationID(ctx)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.Service.DeleteConsentRequestNotification(id, caller); err != nil {
		apperrors.Respond(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Notification deleted successfully"})
}

func (h *NotificationHandler) DeleteAllConsentRequestNotifications(ctx *gin.Context) {
	caller, err := utils.GetCurrentCaller(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Caller not authenticated"})
		return
	}

	if err := h.Service.DeleteAllConsentRequestNotifications(caller.Role, caller.ID); err != nil {
		apperrors.Respond(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Notifications deleted successfully"})
}

// --- one-way notifications ---

func (h *NotificationHandler) ListOneWayNotifications(ctx *gin.Context) {
	caller, err := utils.GetCurrentCaller(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Caller not authenticated"})
		return
	}

	notifications, err := h.Service.FindAllOneWayNotificationsByRecipient(caller.Role, caller.ID)
	if err != nil {
		apperrors.Respond(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, notifications)
}

func (h *NotificationHandler) GetOneWayNotification(ctx *gin.Context) {
	caller, err := utils.GetCurrentCaller(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Caller not authenticated"})
		return
	}

	id, err := utils.GetNotificationID(ctx)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	notification, err := h.Service.FindOneWayNotificationByID(id, caller)
	if err != nil {
		apperrors.Respond(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, notification)
}

func (h *NotificationHandler) DeleteOneWayNotification(ctx *gin.Context) {
	caller, err := utils.GetCurrentCaller(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Caller not authenticated"})
		return
	}

	id, err := utils.GetNotificationID(ctx)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.Service.DeleteOneWayNotification(id, caller); err != nil {
		apperrors.Respond(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Notification deleted successfully"})
}

func (h *NotificationHandler) DeleteAllOneWayNotifications(ctx *gin.Context) {
	caller, err := utils.GetCurrentCaller(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Caller not authenticated"})
		return
	}

	if err := h.Service.DeleteAllOneWayNotifications(caller.Role, caller.ID); err != nil {
		apperrors.Respond(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Notifications deleted successfully"})
}
