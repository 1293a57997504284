package http

import (
	"fmt"
	"net/http"

	"github.com/MKhiriev/go-bank-registry/models"
)

// every agency route is nested under /api/banks/{bank_id}

func (h *Handler) listAgencies(w http.ResponseWriter, r *http.Request) {
	bankID, err := pathID(r, "bank_id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	agencies, err := h.services.AgencyService.ListAgencies(r.Context(), bankID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	h.respond(w, r, agencies, http.StatusOK)
}

func (h *Handler) getAgency(w http.ResponseWriter, r *http.Request) {
	bankID, id, err := agencyPath(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	agency, err := h.services.AgencyService.GetAgency(r.Context(), bankID, id)
	if err != nil {
		writeError(w, r, err)
		return
	}

	h.respond(w, r, agency, http.StatusOK)
}

func (h *Handler) createAgency(w http.ResponseWriter, r *http.Request) {
	bankID, err := pathID(r, "bank_id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	var input models.AgencyInput
	if err = decodeJSON(w, r, &input); err != nil {
		writeError(w, r, err)
		return
	}

	agency, err := h.services.AgencyService.CreateAgency(r.Context(), bankID, input)
	if err != nil {
		writeError(w, r, err)
		return
	}

	w.Header().Set("Location", fmt.Sprintf("/api/banks/%d/agencies/%d", bankID, agency.ID))
	h.respond(w, r, agency, http.StatusCreated)
}

func (h *Handler) updateAgency(w http.ResponseWriter, r *http.Request) {
	bankID, id, err := agencyPath(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var input models.AgencyInput
	if err = decodeJSON(w, r, &input); err != nil {
		writeError(w, r, err)
		return
	}

	agency, err := h.services.AgencyService.UpdateAgency(r.Context(), bankID, id, input)
	if err != nil {
		writeError(w, r, err)
		return
	}

	h.respond(w, r, agency, http.StatusOK)
}

func (h *Handler) deleteAgency(w http.ResponseWriter, r *http.Request) {
	bankID, id, err := agencyPath(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	if err = h.services.AgencyService.DeleteAgency(r.Context(), bankID, id); err != nil {
		writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func agencyPath(r *http.Request) (bankID, id int64, err error) {
	if bankID, err = pathID(r, "bank_id"); err != nil {
		return 0, 0, err
	}
	if id, err = pathID(r, "agency_id"); err != nil {
		return 0, 0, err
	}
	return bankID, id, nil
}
