//go:build pact
// +build pact

package provider_test

import (
	"context"
	"errors"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	pacttest "github.com/Apurer/voucher-portal/test/pact"

	staffdirectory "github.com/Apurer/voucher-portal/internal/domains/staff/adapters/directory"
	staffapp "github.com/Apurer/voucher-portal/internal/domains/staff/application"
	vouchercatalog "github.com/Apurer/voucher-portal/internal/domains/vouchers/adapters/catalog"
	voucherlocal "github.com/Apurer/voucher-portal/internal/domains/vouchers/adapters/local"
	voucherobs "github.com/Apurer/voucher-portal/internal/domains/vouchers/adapters/observability"
	voucherworkflows "github.com/Apurer/voucher-portal/internal/domains/vouchers/adapters/workflows"
	voucherapp "github.com/Apurer/voucher-portal/internal/domains/vouchers/application"
	voucherdomain "github.com/Apurer/voucher-portal/internal/domains/vouchers/domain"
	voucherports "github.com/Apurer/voucher-portal/internal/domains/vouchers/ports"
	"github.com/Apurer/voucher-portal/internal/platform/kv"
	"github.com/Apurer/voucher-portal/internal/server"

	"github.com/gin-gonic/gin"
	"github.com/pact-foundation/pact-go/v2/models"
	pactprovider "github.com/pact-foundation/pact-go/v2/provider"
	"github.com/stretchr/testify/require"
)

func TestVoucherPortalProviderPact(t *testing.T) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	app := newContractProviderApp(t)
	pactFile := filepath.ToSlash(pacttest.PactFile(t))
	if _, err := os.Stat(pactFile); errors.Is(err, os.ErrNotExist) {
		t.Fatalf("pact file not found at %s - run the pact consumer tests first", pactFile)
	} else {
		require.NoError(t, err)
	}

	verifier := pactprovider.NewVerifier()
	stateHandlers := models.StateHandlers{
		pacttest.StateRequestsBaseline: func(setup bool, _ models.ProviderState) (models.ProviderStateResponse, error) {
			app.reset(t)
			return nil, nil
		},
		pacttest.StateRequestPending: func(setup bool, _ models.ProviderState) (models.ProviderStateResponse, error) {
			app.reset(t)
			if setup {
				app.seedPending(t, pacttest.PendingRequestID)
			}
			return nil, nil
		},
		pacttest.StateRequestMissing: func(setup bool, _ models.ProviderState) (models.ProviderStateResponse, error) {
			app.reset(t)
			return nil, nil
		},
	}

	err := verifier.VerifyProvider(t, pactprovider.VerifyRequest{
		ProviderBaseURL: app.server.URL,
		Provider:        pacttest.ProviderName,
		PactFiles:       []string{pactFile},
		StateHandlers:   stateHandlers,
		BeforeEach: func() error {
			app.reset(t)
			return nil
		},
	})
	require.NoError(t, err)
}

type contractProviderApp struct {
	store   *kv.Memory
	service voucherports.Service
	catalog *vouchercatalog.Catalog
	server  *httptest.Server
}

func newContractProviderApp(t testing.TB) *contractProviderApp {
	t.Helper()

	store := kv.NewMemory()
	staffService := staffapp.NewService(staffdirectory.Default())
	voucherService := voucherobs.New(voucherapp.NewService(
		voucherlocal.NewRepository(store, voucherlocal.DefaultKey),
		voucherapp.WithActorVerifier(staffService),
	))
	catalog := vouchercatalog.Default()

	handlers := server.ApiHandleFunctions{
		VoucherAPI: server.NewVoucherAPI(voucherService, voucherworkflows.NewInlineVoucherWorkflows(voucherService), 30*time.Second),
		CatalogAPI: server.NewCatalogAPI(catalog),
		StaffAPI:   server.NewStaffAPI(staffService),
	}

	router := gin.New()
	router.Use(gin.Recovery(), server.RequestID())
	router = server.NewRouterWithGinEngine(router, handlers)

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	return &contractProviderApp{
		store:   store,
		service: voucherService,
		catalog: catalog,
		server:  srv,
	}
}

func (a *contractProviderApp) reset(t testing.TB) {
	t.Helper()
	err := a.store.Update(context.Background(), voucherlocal.DefaultKey, func([]byte, bool) ([]byte, error) {
		return []byte("[]"), nil
	})
	require.NoError(t, err)
}

func (a *contractProviderApp) seedPending(t testing.TB, id string) {
	t.Helper()
	core, err := a.catalog.Get(context.Background(), "core")
	require.NoError(t, err)
	submitted, err := voucherdomain.ParseSubmissionDate(pacttest.ExampleSubmissionDate())
	require.NoError(t, err)
	partner := pacttest.ExamplePartner()
	_, err = a.service.CreateRequest(context.Background(), voucherdomain.VoucherRequest{
		ID:             id,
		SubmissionDate: submitted,
		PartnerInfo: voucherdomain.PartnerInfo{
			PartnerName:  partner["partnerName"].(string),
			ContactName:  partner["contactName"].(string),
			CustomerName: partner["customerName"].(string),
			CustomerVAT:  partner["customerVat"].(string),
		},
		Modules: []voucherdomain.SelectedModule{{SoftwareModule: core, Quantity: 1}},
	})
	require.NoError(t, err)
}
