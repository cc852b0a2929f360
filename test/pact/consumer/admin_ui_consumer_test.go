//go:build pact
// +build pact

package consumer_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	pacttest "github.com/Apurer/voucher-portal/test/pact"

	pactconsumer "github.com/pact-foundation/pact-go/v2/consumer"
	pactlog "github.com/pact-foundation/pact-go/v2/log"
	"github.com/pact-foundation/pact-go/v2/matchers"
	"github.com/stretchr/testify/require"
)

type requestPayload struct {
	ID             string           `json:"id"`
	SubmissionDate string           `json:"submissionDate"`
	Status         string           `json:"status,omitempty"`
	PartnerInfo    map[string]any   `json:"partnerInfo"`
	Modules        []map[string]any `json:"modules"`
	TotalValue     float64          `json:"totalValue"`
	ApprovedBy     string           `json:"approvedBy,omitempty"`
}

type statsPayload struct {
	Total    int     `json:"total"`
	Pending  int     `json:"pending"`
	Approved int     `json:"approved"`
	Value    float64 `json:"value"`
}

type problemDetail struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail"`
}

type apiError struct {
	status int
	title  string
	detail string
}

func (e apiError) Error() string {
	msg := e.title
	if msg == "" {
		msg = "api error"
	}
	if e.detail != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.detail)
	}
	return fmt.Sprintf("%s (status %d)", msg, e.status)
}

func (e apiError) Status() int {
	return e.status
}

func TestAdminUIContract(t *testing.T) {
	t.Helper()
	pactlog.SetLogLevel("INFO")

	pact, err := pactconsumer.NewV2Pact(pactconsumer.MockHTTPProviderConfig{
		Consumer: pacttest.ConsumerName,
		Provider: pacttest.ProviderName,
		PactDir:  pacttest.PactDir(t),
		LogDir:   pacttest.LogDir(t),
	})
	require.NoError(t, err)

	module := pacttest.ExampleModule()
	moduleMatcher := matchers.Map{
		"id":          matchers.Like(module["id"]),
		"name":        matchers.Like(module["name"]),
		"description": matchers.Like(module["description"]),
		"price":       matchers.Like(module["price"]),
		"quantity":    matchers.Like(module["quantity"]),
	}
	partnerMatcher := matchers.Map{}
	for k, v := range pacttest.ExamplePartner() {
		partnerMatcher[k] = matchers.Like(v)
	}
	requestMatcher := func(id, status string) matchers.Map {
		return matchers.Map{
			"id":             matchers.Like(id),
			"submissionDate": matchers.Term(pacttest.ExampleSubmissionDate(), `^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}\.\d{3}Z$`),
			"status":         matchers.Term(status, "BOZZA|DA APPROVARE|APPROVATO|RIFIUTATO"),
			"partnerInfo":    partnerMatcher,
			"modules":        matchers.EachLike(moduleMatcher, 1),
			"totalValue":     matchers.Like(350.0),
		}
	}
	jsonContentType := matchers.Regex("application/json; charset=utf-8", "application\\/json(?:;\\s?charset=utf-8)?")

	submission := requestPayload{
		ID:             pacttest.NewRequestID,
		SubmissionDate: pacttest.ExampleSubmissionDate(),
		PartnerInfo:    pacttest.ExamplePartner(),
		Modules:        []map[string]any{module},
		TotalValue:     350,
	}

	pact.AddInteraction().
		Given(pacttest.StateRequestsBaseline).
		UponReceiving("a voucher request submission").
		WithRequest("POST", "/api/v1/requests", func(b *pactconsumer.V2RequestBuilder) {
			b.Header("Content-Type", matchers.S("application/json"))
			b.JSONBody(submission)
		}).
		WillRespondWith(http.StatusCreated, func(b *pactconsumer.V2ResponseBuilder) {
			b.Header("Content-Type", jsonContentType)
			b.JSONBody(requestMatcher(pacttest.NewRequestID, "DA APPROVARE"))
		})

	pact.AddInteraction().
		Given(pacttest.StateRequestPending).
		UponReceiving("a request to fetch a pending voucher request").
		WithRequest("GET", "/api/v1/requests/"+pacttest.PendingRequestID).
		WillRespondWith(http.StatusOK, func(b *pactconsumer.V2ResponseBuilder) {
			b.Header("Content-Type", jsonContentType)
			b.JSONBody(requestMatcher(pacttest.PendingRequestID, "DA APPROVARE"))
		})

	pact.AddInteraction().
		Given(pacttest.StateRequestMissing).
		UponReceiving("a request for a missing voucher request").
		WithRequest("GET", "/api/v1/requests/"+pacttest.MissingRequestID).
		WillRespondWith(http.StatusNotFound, func(b *pactconsumer.V2ResponseBuilder) {
			b.Header("Content-Type", matchers.S("application/problem+json"))
			b.JSONBody(matchers.Map{
				"type":   matchers.S("/problems/not-found"),
				"title":  matchers.S("Resource Not Found"),
				"status": matchers.Like(http.StatusNotFound),
			})
		})

	approved := requestMatcher(pacttest.PendingRequestID, "APPROVATO")
	approved["approvedBy"] = matchers.Like(pacttest.ActingUserID)
	pact.AddInteraction().
		Given(pacttest.StateRequestPending).
		UponReceiving("an approval of a pending voucher request").
		WithRequest("PUT", "/api/v1/requests/"+pacttest.PendingRequestID+"/status", func(b *pactconsumer.V2RequestBuilder) {
			b.Header("Content-Type", matchers.S("application/json"))
			b.JSONBody(map[string]string{"status": "APPROVATO", "actingUserId": pacttest.ActingUserID})
		}).
		WillRespondWith(http.StatusOK, func(b *pactconsumer.V2ResponseBuilder) {
			b.Header("Content-Type", jsonContentType)
			b.JSONBody(approved)
		})

	pact.AddInteraction().
		Given(pacttest.StateRequestPending).
		UponReceiving("a request for dashboard stats").
		WithRequest("GET", "/api/v1/requests/stats").
		WillRespondWith(http.StatusOK, func(b *pactconsumer.V2ResponseBuilder) {
			b.Header("Content-Type", jsonContentType)
			b.JSONBody(matchers.Map{
				"total":    matchers.Like(1),
				"pending":  matchers.Like(1),
				"approved": matchers.Like(0),
				"value":    matchers.Like(350.0),
			})
		})

	err = pact.ExecuteTest(t, func(config pactconsumer.MockServerConfig) error {
		client := newVoucherClient(config)
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		var created requestPayload
		if err := client.do(ctx, http.MethodPost, "/api/v1/requests", submission, &created); err != nil {
			return fmt.Errorf("create request: %w", err)
		}
		if created.ID != pacttest.NewRequestID || created.Status != "DA APPROVARE" {
			return fmt.Errorf("unexpected created request %+v", created)
		}

		var fetched requestPayload
		if err := client.do(ctx, http.MethodGet, "/api/v1/requests/"+pacttest.PendingRequestID, nil, &fetched); err != nil {
			return fmt.Errorf("get request: %w", err)
		}

		if err := client.do(ctx, http.MethodGet, "/api/v1/requests/"+pacttest.MissingRequestID, nil, &fetched); err == nil {
			return fmt.Errorf("expected 404 for %s", pacttest.MissingRequestID)
		} else if apiErr, ok := err.(apiError); ok && apiErr.Status() != http.StatusNotFound {
			return fmt.Errorf("expected 404, got %d", apiErr.Status())
		}

		var decided requestPayload
		update := map[string]string{"status": "APPROVATO", "actingUserId": pacttest.ActingUserID}
		if err := client.do(ctx, http.MethodPut, "/api/v1/requests/"+pacttest.PendingRequestID+"/status", update, &decided); err != nil {
			return fmt.Errorf("approve request: %w", err)
		}
		if decided.ApprovedBy != pacttest.ActingUserID {
			return fmt.Errorf("expected approver %s, got %q", pacttest.ActingUserID, decided.ApprovedBy)
		}

		var stats statsPayload
		if err := client.do(ctx, http.MethodGet, "/api/v1/requests/stats", nil, &stats); err != nil {
			return fmt.Errorf("stats: %w", err)
		}
		return nil
	})
	require.NoError(t, err)
}

type voucherClient struct {
	baseURL    string
	httpClient *http.Client
}

func newVoucherClient(config pactconsumer.MockServerConfig) *voucherClient {
	host := config.Host
	if host == "" {
		host = "localhost"
	}
	transport := &http.Transport{TLSClientConfig: config.TLSConfig}
	client := &http.Client{Transport: transport, Timeout: 10 * time.Second}
	return &voucherClient{
		baseURL:    fmt.Sprintf("http://%s:%d", host, config.Port),
		httpClient: client,
	}
}

func (c *voucherClient) do(ctx context.Context, method, path string, body, out any) error {
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode >= http.StatusBadRequest {
		return decodeAPIError(res)
	}
	return json.NewDecoder(res.Body).Decode(out)
}

func decodeAPIError(res *http.Response) error {
	var problem problemDetail
	_ = json.NewDecoder(res.Body).Decode(&problem)
	status := problem.Status
	if status == 0 {
		status = res.StatusCode
	}
	return apiError{
		status: status,
		title:  problem.Title,
		detail: problem.Detail,
	}
}
