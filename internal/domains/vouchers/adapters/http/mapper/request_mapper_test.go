package mapper

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToDomainRequest_DecodesSubmittedJSON(t *testing.T) {
	body := `{
		"id": "a1",
		"submissionDate": "2024-02-01T10:00:00.000Z",
		"status": "APPROVATO",
		"partnerInfo": {"partnerName": " P ", "contactName": "C", "customerName": "N", "customerVat": "IT1"},
		"modules": [{"id": "core", "name": "Core", "description": "", "price": 350, "quantity": 2}],
		"totalValue": 700
	}`
	var in VoucherRequest
	require.NoError(t, json.Unmarshal([]byte(body), &in))

	req, err := ToDomainRequest(in)
	require.NoError(t, err)
	assert.Equal(t, "P", req.PartnerInfo.PartnerName)
	assert.Equal(t, "IT1", req.PartnerInfo.CustomerVAT)
	assert.Equal(t, 2, req.Modules[0].Quantity)
	assert.Empty(t, req.Status)
	assert.Equal(t, "2024-02-01T10:00:00.000Z", FromDomainRequest(req).SubmissionDate)
}

func TestToDomainRequest_BadDate(t *testing.T) {
	_, err := ToDomainRequest(VoucherRequest{SubmissionDate: "01/02/2024"})
	require.Error(t, err)
}
