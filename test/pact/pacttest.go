//go:build pact
// +build pact

package pacttest

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

const (
	ProviderName = "voucher-portal-api"
	ConsumerName = "voucher-admin-ui"

	StateRequestsBaseline = "no voucher requests"
	StateRequestPending   = "voucher request req-pact-1 is pending"
	StateRequestMissing   = "no voucher request with id req-missing"
)

const (
	PendingRequestID = "req-pact-1"
	NewRequestID     = "req-pact-2"
	MissingRequestID = "req-missing"
	ActingUserID     = "u1"

	exampleSubmissionDate = "2024-06-12T10:00:00.000Z"
)

// PactDir returns the workspace-level directory for generated pact files.
func PactDir(t testing.TB) string {
	t.Helper()
	dir := filepath.Join(projectRoot(t), "pacts")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create pact dir: %v", err)
	}
	return dir
}

// PactFile returns the canonical pact file path for the admin UI consumer.
func PactFile(t testing.TB) string {
	t.Helper()
	return filepath.Join(PactDir(t), ConsumerName+"-"+ProviderName+".json")
}

// LogDir returns the log output directory for pact-go.
func LogDir(t testing.TB) string {
	t.Helper()
	dir := filepath.Join(projectRoot(t), "bin", "pact-logs")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create pact log dir: %v", err)
	}
	return dir
}

// ExamplePartner is the partner block used by every interaction.
func ExamplePartner() map[string]any {
	return map[string]any{
		"partnerName":  "Rossi Informatica",
		"contactName":  "Mario Rossi",
		"customerName": "Acme S.p.A.",
		"customerVat":  "IT01234567890",
	}
}

// ExampleModule is one Ydea CRM Core licence as the wizard submits it.
func ExampleModule() map[string]any {
	return map[string]any{
		"id":          "core",
		"name":        "Ydea CRM Core",
		"description": "Licenza base per utente. Include gestione anagrafiche e attività.",
		"price":       350.0,
		"quantity":    1,
	}
}

// ExampleSubmissionDate is the stable submission timestamp of seeded requests.
func ExampleSubmissionDate() string {
	return exampleSubmissionDate
}

// projectRoot walks up from this file to the workspace root.
func projectRoot(t testing.TB) string {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("cannot determine caller for pact paths")
	}
	return filepath.Clean(filepath.Join(filepath.Dir(file), "..", ".."))
}
