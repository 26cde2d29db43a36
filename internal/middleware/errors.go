package middleware

import (
	"errors"
	"log"
	"net/http"

	"github.com/zhouzirui/phonebook/backend/internal/model/person"
	"github.com/zhouzirui/phonebook/backend/pkg/utils"
)

// ErrBadRequest marks a request body that could not be decoded.
var ErrBadRequest = errors.New("invalid request body")

// HandlerFunc is an http.HandlerFunc that reports failures as errors.
type HandlerFunc func(w http.ResponseWriter, r *http.Request) error

// HandleErrors adapts fn to http.HandlerFunc, translating returned errors
// into JSON error responses.
func HandleErrors(fn HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := fn(w, r)
		if err == nil {
			return
		}

		var verr *person.ValidationError
		switch {
		case errors.As(err, &verr):
			log.Println(verr.Message)
			utils.RespondError(w, http.StatusBadRequest, verr.Message)
		case errors.Is(err, person.ErrNotFound):
			utils.RespondError(w, http.StatusNotFound, "Person not found")
		case errors.Is(err, ErrBadRequest):
			utils.RespondError(w, http.StatusBadRequest, ErrBadRequest.Error())
		default:
			log.Printf("%s %s: %v", r.Method, r.URL.Path, err)
			utils.RespondError(w, http.StatusInternalServerError, "internal server error")
		}
	}
}
