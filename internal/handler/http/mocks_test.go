package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/MKhiriev/go-bank-registry/internal/config"
	"github.com/MKhiriev/go-bank-registry/internal/logger"
	"github.com/MKhiriev/go-bank-registry/internal/service"
	"github.com/MKhiriev/go-bank-registry/models"
)

// ---- Mock: CredentialService ----

type mockCredentialSvc struct {
	createAccount     func(context.Context, models.NewAccount) (models.Account, error)
	verifyCredentials func(context.Context, models.Credentials) (bool, error)
	changePassword    func(context.Context, string, models.PasswordChange) (models.Account, error)
	listAccounts      func(context.Context) ([]models.Account, error)
	getAccount        func(context.Context, int64) (models.Account, error)
}

func (m *mockCredentialSvc) CreateAccount(ctx context.Context, a models.NewAccount) (models.Account, error) {
	return m.createAccount(ctx, a)
}
func (m *mockCredentialSvc) VerifyCredentials(ctx context.Context, c models.Credentials) (bool, error) {
	return m.verifyCredentials(ctx, c)
}
func (m *mockCredentialSvc) ChangePassword(ctx context.Context, u string, c models.PasswordChange) (models.Account, error) {
	return m.changePassword(ctx, u, c)
}
func (m *mockCredentialSvc) ListAccounts(ctx context.Context) ([]models.Account, error) {
	return m.listAccounts(ctx)
}
func (m *mockCredentialSvc) GetAccount(ctx context.Context, id int64) (models.Account, error) {
	return m.getAccount(ctx, id)
}

// ---- Mock: BankService ----

type mockBankSvc struct {
	listBanks  func(context.Context) ([]models.Bank, error)
	getBank    func(context.Context, int64) (models.Bank, error)
	createBank func(context.Context, models.BankInput) (models.Bank, error)
	updateBank func(context.Context, int64, models.BankInput) (models.Bank, error)
	deleteBank func(context.Context, int64) error
}

func (m *mockBankSvc) ListBanks(ctx context.Context) ([]models.Bank, error) {
	return m.listBanks(ctx)
}
func (m *mockBankSvc) GetBank(ctx context.Context, id int64) (models.Bank, error) {
	return m.getBank(ctx, id)
}
func (m *mockBankSvc) CreateBank(ctx context.Context, in models.BankInput) (models.Bank, error) {
	return m.createBank(ctx, in)
}
func (m *mockBankSvc) UpdateBank(ctx context.Context, id int64, in models.BankInput) (models.Bank, error) {
	return m.updateBank(ctx, id, in)
}
func (m *mockBankSvc) DeleteBank(ctx context.Context, id int64) error {
	return m.deleteBank(ctx, id)
}

// ---- Mock: AgencyService ----

type mockAgencySvc struct {
	listAgencies func(context.Context, int64) ([]models.Agency, error)
	getAgency    func(context.Context, int64, int64) (models.Agency, error)
	createAgency func(context.Context, int64, models.AgencyInput) (models.Agency, error)
	updateAgency func(context.Context, int64, int64, models.AgencyInput) (models.Agency, error)
	deleteAgency func(context.Context, int64, int64) error
}

func (m *mockAgencySvc) ListAgencies(ctx context.Context, bankID int64) ([]models.Agency, error) {
	return m.listAgencies(ctx, bankID)
}
func (m *mockAgencySvc) GetAgency(ctx context.Context, bankID, id int64) (models.Agency, error) {
	return m.getAgency(ctx, bankID, id)
}
func (m *mockAgencySvc) CreateAgency(ctx context.Context, bankID int64, in models.AgencyInput) (models.Agency, error) {
	return m.createAgency(ctx, bankID, in)
}
func (m *mockAgencySvc) UpdateAgency(ctx context.Context, bankID, id int64, in models.AgencyInput) (models.Agency, error) {
	return m.updateAgency(ctx, bankID, id, in)
}
func (m *mockAgencySvc) DeleteAgency(ctx context.Context, bankID, id int64) error {
	return m.deleteAgency(ctx, bankID, id)
}

// ---- Mock: AppInfoService ----

type mockAppInfoSvc struct {
	version   string
	healthErr error
}

func (m *mockAppInfoSvc) GetAppVersion(_ context.Context) string {
	return m.version
}
func (m *mockAppInfoSvc) Health(_ context.Context) (models.Health, error) {
	if m.healthErr != nil {
		return models.Health{Status: service.HealthStatusUnavailable, Message: "Database is unreachable", Version: m.version}, m.healthErr
	}
	return models.Health{Status: service.HealthStatusOK, Message: "Server is running", Version: m.version}, nil
}

// ---- Helpers ----

func newTestHandler(svcs *service.Services) *Handler {
	if svcs == nil {
		svcs = &service.Services{}
	}
	return NewHandler(svcs, config.Server{}, logger.Nop())
}

// serve runs one request through the full router.
func serve(t *testing.T, svcs *service.Services, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}

	rec := httptest.NewRecorder()
	newTestHandler(svcs).Init().ServeHTTP(rec, req)
	return rec
}
