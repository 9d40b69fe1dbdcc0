package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/iceymoss/echo-news/internal/service"
	"github.com/iceymoss/echo-news/pkg/xerr"
)

// NotificationHandler 通知收件箱
type NotificationHandler struct {
	inbox *service.InboxService
}

func NewNotificationHandler(inbox *service.InboxService) *NotificationHandler {
	return &NotificationHandler{inbox: inbox}
}

// List 两节独立分页：?pagina_reco= 未读节，?pagina_lidas= 已读节
func (h *NotificationHandler) List(c *gin.Context) {
	pageUnread, _ := strconv.Atoi(c.DefaultQuery("pagina_reco", "1"))
	pageRead, _ := strconv.Atoi(c.DefaultQuery("pagina_lidas", "1"))

	view, err := h.inbox.List(c.Request.Context(), CurrentUserID(c), pageUnread, pageRead)
	if err != nil {
		Fail(c, err)
		return
	}
	OK(c, view)
}

func (h *NotificationHandler) MarkRead(c *gin.Context) {
	id := paramUint(c, "id")
	if id == 0 {
		Fail(c, xerr.New(xerr.ErrBadRequest, "Requisição inválida."))
		return
	}
	if err := h.inbox.MarkRead(c.Request.Context(), id, CurrentUserID(c)); err != nil {
		Fail(c, err)
		return
	}
	OK(c, gin.H{"message": "Notificação marcada como lida."})
}

func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	if err := h.inbox.MarkAllRead(c.Request.Context(), CurrentUserID(c)); err != nil {
		Fail(c, err)
		return
	}
	OK(c, gin.H{"message": "Todas as notificações foram marcadas como lidas."})
}

func (h *NotificationHandler) Badge(c *gin.Context) {
	count, err := h.inbox.UnreadBadge(c.Request.Context(), CurrentUserID(c))
	if err != nil {
		Fail(c, err)
		return
	}
	OK(c, gin.H{"unread": count})
}
