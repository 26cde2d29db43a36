package info

import (
	"fmt"
	"html"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/zhouzirui/phonebook/backend/internal/model/person"
)

// timeLayout mirrors the format browsers print for Date values.
const timeLayout = "Mon Jan 02 2006 15:04:05 GMT-0700 (MST)"

// Handler 通讯录概况页面
type Handler struct {
	people person.Store
	now    func() time.Time
}

// New 创建概况页面处理器
func New(people person.Store) *Handler {
	return &Handler{people: people, now: time.Now}
}

// RegisterRoutes 注册概况页面路由
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/info", h.handleInfo)
}

func (h *Handler) handleInfo(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)

	_, err := fmt.Fprintf(w, "\n<div>\n  <p>Phonebook has info for %d people</p>\n  <p>%s</p>\n</div>\n",
		h.people.Count(), html.EscapeString(h.now().Format(timeLayout)))
	if err != nil {
		log.Printf("failed to write info page: %v", err)
	}
}
