package http

import (
	"fmt"
	"net/http"

	"github.com/MKhiriev/go-bank-registry/internal/logger"
	"github.com/MKhiriev/go-bank-registry/internal/utils"
	"github.com/MKhiriev/go-bank-registry/models"
)

func (h *Handler) listBanks(w http.ResponseWriter, r *http.Request) {
	banks, err := h.services.BankService.ListBanks(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	h.respond(w, r, banks, http.StatusOK)
}

func (h *Handler) getBank(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "bank_id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	bank, err := h.services.BankService.GetBank(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}

	h.respond(w, r, bank, http.StatusOK)
}

func (h *Handler) createBank(w http.ResponseWriter, r *http.Request) {
	var input models.BankInput
	if err := decodeJSON(w, r, &input); err != nil {
		writeError(w, r, err)
		return
	}

	bank, err := h.services.BankService.CreateBank(r.Context(), input)
	if err != nil {
		writeError(w, r, err)
		return
	}

	w.Header().Set("Location", fmt.Sprintf("/api/banks/%d", bank.ID))
	h.respond(w, r, bank, http.StatusCreated)
}

func (h *Handler) updateBank(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "bank_id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	var input models.BankInput
	if err = decodeJSON(w, r, &input); err != nil {
		writeError(w, r, err)
		return
	}

	bank, err := h.services.BankService.UpdateBank(r.Context(), id, input)
	if err != nil {
		writeError(w, r, err)
		return
	}

	h.respond(w, r, bank, http.StatusOK)
}

func (h *Handler) deleteBank(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "bank_id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	if err = h.services.BankService.DeleteBank(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// respond writes data as JSON; a marshalling failure is only logged since
// the status line is already gone.
func (h *Handler) respond(w http.ResponseWriter, r *http.Request, data any, status int) {
	if _, err := utils.WriteJSON(w, data, status); err != nil {
		logger.FromRequest(r).Err(err).Msg("writing response failed")
	}
}
