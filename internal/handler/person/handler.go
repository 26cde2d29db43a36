package person

import (
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"github.com/zhouzirui/phonebook/backend/internal/middleware"
	"github.com/zhouzirui/phonebook/backend/internal/model/person"
	"github.com/zhouzirui/phonebook/backend/internal/service/feed"
	"github.com/zhouzirui/phonebook/backend/pkg/utils"
)

// Handler 通讯录服务的HTTP处理器
type Handler struct {
	people   person.Store
	hub      *feed.Hub
	upgrader websocket.Upgrader
}

// New 创建通讯录处理器，hub 为 nil 时不注册实时推送路由
func New(people person.Store, hub *feed.Hub) *Handler {
	return &Handler{
		people: people,
		hub:    hub,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

// RegisterRoutes 注册通讯录相关的路由
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/persons", func(pr chi.Router) {
		pr.Get("/", h.handleList)
		pr.Post("/", middleware.HandleErrors(h.handleCreate))

		if h.hub != nil {
			pr.Get("/ws", h.handleWebSocket)
			pr.Get("/stream", h.handleStream)
		}

		pr.Get("/{id}", middleware.HandleErrors(h.handleGet))
		pr.Delete("/{id}", h.handleDelete)
	})
}

// handleList 列出全部联系人
func (h *Handler) handleList(w http.ResponseWriter, _ *http.Request) {
	utils.RespondJSON(w, http.StatusOK, h.people.List())
}

// handleGet 按ID查询联系人
func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) error {
	id, ok := parseID(chi.URLParam(r, "id"))
	if !ok {
		return person.ErrNotFound
	}

	p, err := h.people.Get(id)
	if err != nil {
		return err
	}

	utils.RespondJSON(w, http.StatusOK, p)
	return nil
}

// handleDelete 删除联系人，不存在的ID同样返回204
func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	if id, ok := parseID(chi.URLParam(r, "id")); ok {
		h.people.Delete(id)
	}
	w.WriteHeader(http.StatusNoContent)
}

type createRequest struct {
	Name   string `json:"name"`
	Number string `json:"number"`
}

// handleCreate 新建联系人
func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) error {
	var payload createRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		return fmt.Errorf("%w: %v", middleware.ErrBadRequest, err)
	}

	p, err := h.people.Create(payload.Name, payload.Number)
	if err != nil {
		return err
	}

	utils.RespondJSON(w, http.StatusCreated, p)
	return nil
}

// parseID accepts any decimal representation of an integer, e.g. "2", " 2 " or "2.0".
func parseID(raw string) (int, bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || f != math.Trunc(f) || math.Abs(f) > math.MaxInt32 {
		return 0, false
	}
	return int(f), true
}
