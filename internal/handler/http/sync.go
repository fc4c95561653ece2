package http

import (
	"errors"
	"net/http"

	syncdomain "github.com/ammarbari/attendance-app/internal/domain/sync"
	"github.com/ammarbari/attendance-app/internal/handler/http/response"
)

type SyncHandler interface {
	Status(w http.ResponseWriter, r *http.Request)
	Drain(w http.ResponseWriter, r *http.Request)
}

type syncHandlerImpl struct {
	syncService syncdomain.Service
}

func NewSyncHandler(syncService syncdomain.Service) SyncHandler {
	return &syncHandlerImpl{syncService: syncService}
}

// Status implements SyncHandler.
func (h *syncHandlerImpl) Status(w http.ResponseWriter, r *http.Request) {
	status, err := h.syncService.Status(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, status)
}

// Drain implements SyncHandler. An incomplete drain is not a request
// failure: entries stay queued and the pending count tells the client.
func (h *syncHandlerImpl) Drain(w http.ResponseWriter, r *http.Request) {
	if err := h.syncService.Drain(r.Context()); err != nil && !errors.Is(err, syncdomain.ErrSyncFailed) {
		response.HandleError(w, err)
		return
	}

	status, err := h.syncService.Status(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Sync drain finished", status)
}
