package http

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"time"

	"github.com/ammarbari/attendance-app/internal/domain/face"
	"github.com/ammarbari/attendance-app/internal/handler/http/response"
)

type FaceHandler interface {
	Enroll(w http.ResponseWriter, r *http.Request)
}

type faceHandlerImpl struct {
	faceService face.Service
}

func NewFaceHandler(faceService face.Service) FaceHandler {
	return &faceHandlerImpl{faceService: faceService}
}

// Enroll implements FaceHandler.
func (h *faceHandlerImpl) Enroll(w http.ResponseWriter, r *http.Request) {
	userID := getUserIDFromContext(r)
	if userID == "" {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	var req face.EnrollRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	frame, err := base64.StdEncoding.DecodeString(req.FaceImage)
	if err != nil {
		response.BadRequest(w, "face_image must be base64 encoded", nil)
		return
	}

	if err := h.faceService.Enroll(r.Context(), userID, frame); err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Face enrolled", face.EnrollResponse{
		Enrolled:   true,
		EnrolledAt: time.Now().Format(time.RFC3339),
	})
}
