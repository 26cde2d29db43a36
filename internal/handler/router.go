package handler

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/zhouzirui/phonebook/backend/internal/config"
	"github.com/zhouzirui/phonebook/backend/internal/handler/info"
	"github.com/zhouzirui/phonebook/backend/internal/handler/person"
	middlewarePkg "github.com/zhouzirui/phonebook/backend/internal/middleware"
	personModel "github.com/zhouzirui/phonebook/backend/internal/model/person"
	"github.com/zhouzirui/phonebook/backend/internal/service/feed"
	"github.com/zhouzirui/phonebook/backend/pkg/utils"
)

// NewRouter wires HTTP routes to the phonebook store.
func NewRouter(cfg config.Config, people personModel.Store, hub *feed.Hub, logger *log.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middlewarePkg.RequestLogger(logger, cfg.Log.RequestBody))
	r.Use(middleware.Recoverer)
	r.Use(middlewarePkg.CORS(cfg.Server.AllowedOrigins))

	personHandler := person.New(people, hub)
	infoHandler := info.New(people)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		utils.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	infoHandler.RegisterRoutes(r)

	r.Route("/api", func(api chi.Router) {
		personHandler.RegisterRoutes(api)
	})

	return r
}
