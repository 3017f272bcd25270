package http

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/brandberg-skola/absence-backend-go/internal/domain/absence"
	"github.com/brandberg-skola/absence-backend-go/internal/handler/http/response"
	"github.com/brandberg-skola/absence-backend-go/internal/pkg/validator"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/jwtauth/v5"
)

const maxMultipartMemory = 10 << 20

type AbsenceHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)

	ListMine(w http.ResponseWriter, r *http.Request)
	ListAll(w http.ResponseWriter, r *http.Request)
	Summary(w http.ResponseWriter, r *http.Request)

	Approve(w http.ResponseWriter, r *http.Request)
	Reject(w http.ResponseWriter, r *http.Request)
	Reset(w http.ResponseWriter, r *http.Request)

	DownloadAttachment(w http.ResponseWriter, r *http.Request)
}

type AbsenceHandlerImpl struct {
	absenceService absence.Service
}

func NewAbsenceHandler(absenceService absence.Service) AbsenceHandler {
	return &AbsenceHandlerImpl{absenceService: absenceService}
}

// actorFromContext builds the acting user from the verified token claims.
func actorFromContext(r *http.Request) (absence.Actor, error) {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		return absence.Actor{}, err
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return absence.Actor{}, fmt.Errorf("user_id claim is missing")
	}
	admin, _ := claims["is_admin"].(bool)

	return absence.Actor{UserID: userID, Admin: admin}, nil
}

// parseRequestInput reads the multipart form shared by Create and Update:
// a JSON "data" field plus an optional "attachment" file.
func parseRequestInput(r *http.Request, input interface{}, inner *absence.RequestInput) error {
	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		return fmt.Errorf("failed to parse form data")
	}

	dataJSON := r.FormValue("data")
	if dataJSON == "" {
		return fmt.Errorf("field 'data' is required")
	}

	if err := json.Unmarshal([]byte(dataJSON), input); err != nil {
		return fmt.Errorf("invalid request format")
	}

	file, fileHeader, err := r.FormFile("attachment")
	if err != nil && err != http.ErrMissingFile {
		return fmt.Errorf("invalid file upload")
	}
	inner.File = file
	inner.FileHeader = fileHeader

	return nil
}

// Create implements AbsenceHandler.
func (h *AbsenceHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFromContext(r)
	if err != nil {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	var input absence.RequestInput
	if err := parseRequestInput(r, &input, &input); err != nil {
		response.BadRequest(w, err.Error(), nil)
		return
	}

	created, err := h.absenceService.CreateRequest(r.Context(), actor, input)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Absence request created successfully", absence.NewRequestResponse(created))
}

// Get implements AbsenceHandler.
func (h *AbsenceHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFromContext(r)
	if err != nil {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Absence request ID is required", nil)
		return
	}

	request, err := h.absenceService.GetRequest(r.Context(), actor, id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, absence.NewRequestResponse(request))
}

// Update implements AbsenceHandler.
func (h *AbsenceHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFromContext(r)
	if err != nil {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Absence request ID is required", nil)
		return
	}

	var input absence.UpdateRequestInput
	if err := parseRequestInput(r, &input, &input.RequestInput); err != nil {
		response.BadRequest(w, err.Error(), nil)
		return
	}

	updated, err := h.absenceService.UpdateRequest(r.Context(), actor, id, input)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Absence request updated successfully", absence.NewRequestResponse(updated))
}

// Delete implements AbsenceHandler.
func (h *AbsenceHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFromContext(r)
	if err != nil {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Absence request ID is required", nil)
		return
	}

	if err := h.absenceService.DeleteRequest(r.Context(), actor, id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Absence request deleted successfully", nil)
}

// ListMine implements AbsenceHandler.
func (h *AbsenceHandlerImpl) ListMine(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFromContext(r)
	if err != nil {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	filter, err := parseOwnerFilter(r)
	if err != nil {
		response.BadRequest(w, err.Error(), nil)
		return
	}

	list, err := h.absenceService.ListMyRequests(r.Context(), actor, filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, list)
}

// ListAll implements AbsenceHandler.
func (h *AbsenceHandlerImpl) ListAll(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFromContext(r)
	if err != nil {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	filter, err := parseAdminFilter(r)
	if err != nil {
		response.BadRequest(w, err.Error(), nil)
		return
	}

	list, err := h.absenceService.ListAllRequests(r.Context(), actor, filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, list)
}

// Summary implements AbsenceHandler.
func (h *AbsenceHandlerImpl) Summary(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFromContext(r)
	if err != nil {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	summary, err := h.absenceService.Summary(r.Context(), actor)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, summary)
}

// Approve implements AbsenceHandler.
func (h *AbsenceHandlerImpl) Approve(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFromContext(r)
	if err != nil {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Absence request ID is required", nil)
		return
	}

	// An empty body approves with the default comment.
	var input absence.ApproveInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil && err != io.EOF {
		slog.Error("Approve decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	approved, err := h.absenceService.ApproveRequest(r.Context(), actor, id, input)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Absence request approved successfully", absence.NewRequestResponse(approved))
}

// Reject implements AbsenceHandler.
func (h *AbsenceHandlerImpl) Reject(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFromContext(r)
	if err != nil {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Absence request ID is required", nil)
		return
	}

	var input absence.RejectInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil && err != io.EOF {
		slog.Error("Reject decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	rejected, err := h.absenceService.RejectRequest(r.Context(), actor, id, input)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Absence request rejected successfully", absence.NewRequestResponse(rejected))
}

// Reset implements AbsenceHandler.
func (h *AbsenceHandlerImpl) Reset(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFromContext(r)
	if err != nil {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Absence request ID is required", nil)
		return
	}

	reset, err := h.absenceService.ResetRequest(r.Context(), actor, id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Absence request reset to submitted", absence.NewRequestResponse(reset))
}

// DownloadAttachment implements AbsenceHandler.
func (h *AbsenceHandlerImpl) DownloadAttachment(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFromContext(r)
	if err != nil {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Absence request ID is required", nil)
		return
	}

	attachment, err := h.absenceService.OpenAttachment(r.Context(), actor, id)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	defer attachment.Content.Close()

	w.Header().Set("Content-Type", attachment.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("inline; filename=%q", attachment.FileName))
	if _, err := io.Copy(w, attachment.Content); err != nil {
		slog.Error("Failed to stream attachment", "error", err)
	}
}

func parseOwnerFilter(r *http.Request) (absence.OwnerFilter, error) {
	var filter absence.OwnerFilter
	q := r.URL.Query()

	if raw := q.Get("month"); raw != "" {
		month, ok := validator.IsValidMonth(raw)
		if !ok {
			return absence.OwnerFilter{}, fmt.Errorf("month must be in YYYY-MM format")
		}
		filter.Month = &month
	}

	t, err := parseTypeParam(q.Get("type"))
	if err != nil {
		return absence.OwnerFilter{}, err
	}
	filter.Type = t

	s, err := parseStatusParam(q.Get("status"))
	if err != nil {
		return absence.OwnerFilter{}, err
	}
	filter.Status = s

	return filter, nil
}

func parseAdminFilter(r *http.Request) (absence.AdminFilter, error) {
	var filter absence.AdminFilter
	q := r.URL.Query()

	if person := q.Get("person"); person != "" {
		filter.Person = &person
	}

	if raw := q.Get("from"); raw != "" {
		from, ok := validator.IsValidDate(raw)
		if !ok {
			return absence.AdminFilter{}, fmt.Errorf("from must be a valid date in YYYY-MM-DD format")
		}
		filter.FromDate = &from
	}

	if raw := q.Get("to"); raw != "" {
		to, ok := validator.IsValidDate(raw)
		if !ok {
			return absence.AdminFilter{}, fmt.Errorf("to must be a valid date in YYYY-MM-DD format")
		}
		filter.ToDate = &to
	}

	t, err := parseTypeParam(q.Get("type"))
	if err != nil {
		return absence.AdminFilter{}, err
	}
	filter.Type = t

	s, err := parseStatusParam(q.Get("status"))
	if err != nil {
		return absence.AdminFilter{}, err
	}
	filter.Status = s

	return filter, nil
}

func parseTypeParam(raw string) (*absence.Type, error) {
	if raw == "" {
		return nil, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return nil, fmt.Errorf("type must be numeric")
	}
	t := absence.Type(value)
	if !t.Valid() {
		return nil, fmt.Errorf("type must be between 1 and 5")
	}
	return &t, nil
}

func parseStatusParam(raw string) (*absence.Status, error) {
	if raw == "" {
		return nil, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return nil, fmt.Errorf("status must be numeric")
	}
	s := absence.Status(value)
	if !s.Valid() {
		return nil, fmt.Errorf("status must be between 1 and 3")
	}
	return &s, nil
}
