package get_reference

import (
	"net/http"

	"github.com/m04kA/SMC-SpaceBooking/internal/api/handlers"
	"github.com/m04kA/SMC-SpaceBooking/internal/domain"
)

// Handler отдает неизменяемый справочник; ответ собирается один раз
type Handler struct {
	response *ReferenceResponse
	logger   Logger
}

func NewHandler(horizonMonths int, logger Logger) *Handler {
	return &Handler{
		response: buildReference(horizonMonths),
		logger:   logger,
	}
}

// Handle GET /api/v1/reference
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	h.logger.Info("GET /reference")
	handlers.RespondJSON(w, http.StatusOK, h.response)
}

func buildReference(horizonMonths int) *ReferenceResponse {
	resp := &ReferenceResponse{
		Spaces:        make([]string, 0, len(domain.Spaces())),
		OtherColor:    domain.Other("-").Color(),
		HorizonMonths: horizonMonths,
	}

	for _, s := range domain.Spaces() {
		resp.Spaces = append(resp.Spaces, s.String())
	}
	for _, t := range domain.StartSlots() {
		resp.StartSlots = append(resp.StartSlots, t.String())
	}
	for _, t := range domain.EndSlots() {
		resp.EndSlots = append(resp.EndSlots, t.String())
	}
	for _, k := range domain.KnownDepartments() {
		d := domain.Known(k)
		resp.Departments = append(resp.Departments, DepartmentResponse{
			Name:          d.String(),
			Color:         d.Color(),
			WindowMessage: d.UnlockRule().Description(),
		})
	}

	return resp
}
