// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/MKhiriev/go-bank-registry/internal/logger"
	"github.com/MKhiriev/go-bank-registry/internal/service"
	"github.com/MKhiriev/go-bank-registry/models"
)

// invalidLoginMessage is shared by wrong passwords and unknown usernames.
const invalidLoginMessage = "invalid username/password"

func (h *Handler) listUsers(w http.ResponseWriter, r *http.Request) {
	accounts, err := h.services.CredentialService.ListAccounts(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	views := make([]models.AccountView, 0, len(accounts))
	for _, account := range accounts {
		views = append(views, account.View())
	}

	h.respond(w, r, views, http.StatusOK)
}

func (h *Handler) getUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "user_id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	account, err := h.services.CredentialService.GetAccount(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}

	h.respond(w, r, account.View(), http.StatusOK)
}

func (h *Handler) createUser(w http.ResponseWriter, r *http.Request) {
	var input models.NewAccount
	if err := decodeJSON(w, r, &input); err != nil {
		writeError(w, r, err)
		return
	}

	account, err := h.services.CredentialService.CreateAccount(r.Context(), input)
	if err != nil {
		writeError(w, r, err)
		return
	}

	w.Header().Set("Location", "/api/users/"+url.PathEscape(account.Username))
	h.respond(w, r, account.View(), http.StatusCreated)
}

// verifyUser answers 204 for valid credentials and 401 otherwise. An
// unknown username and a wrong password are indistinguishable to the caller.
func (h *Handler) verifyUser(w http.ResponseWriter, r *http.Request) {
	var credentials models.Credentials
	if err := decodeJSON(w, r, &credentials); err != nil {
		writeError(w, r, err)
		return
	}

	ok, err := h.services.CredentialService.VerifyCredentials(r.Context(), credentials)
	switch {
	case errors.Is(err, service.ErrNotFound):
		logger.FromRequest(r).Debug().Str("username", credentials.Username).Msg("verification for unknown user")
		http.Error(w, invalidLoginMessage, http.StatusUnauthorized)
		return
	case err != nil:
		writeError(w, r, err)
		return
	case !ok:
		http.Error(w, invalidLoginMessage, http.StatusUnauthorized)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) changePassword(w http.ResponseWriter, r *http.Request) {
	username, err := pathString(r, "username")
	if err != nil {
		writeError(w, r, err)
		return
	}

	var change models.PasswordChange
	if err = decodeJSON(w, r, &change); err != nil {
		writeError(w, r, err)
		return
	}

	account, err := h.services.CredentialService.ChangePassword(r.Context(), username, change)
	if err != nil {
		writeError(w, r, err)
		return
	}

	h.respond(w, r, account.View(), http.StatusOK)
}
