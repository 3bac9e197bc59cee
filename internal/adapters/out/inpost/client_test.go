package inpost

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skybroker/internal/core/domain/model/label"
	"skybroker/internal/core/ports"
	"skybroker/internal/pkg/errs"
)

func testClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient(ClientConfig{
		BaseURL:        server.URL,
		Token:          "test-token",
		OrganizationID: "org-42",
		Timeout:        2 * time.Second,
	})
	require.NoError(t, err)
	return client
}

func TestClientConfigValidate(t *testing.T) {
	valid := ClientConfig{BaseURL: "https://api.example.com", Token: "t", Timeout: time.Second}
	require.NoError(t, valid.Validate())

	testCases := []struct {
		name   string
		mutate func(*ClientConfig)
	}{
		{"missing base url", func(c *ClientConfig) { c.BaseURL = "" }},
		{"missing token", func(c *ClientConfig) { c.Token = "" }},
		{"non-positive timeout", func(c *ClientConfig) { c.Timeout = 0 }},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := valid
			tc.mutate(&cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.ErrorIs(t, err, errs.ErrConfiguration)
		})
	}
}

func TestClientSendsAuthHeaders(t *testing.T) {
	var gotAuth, gotOrg string
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotOrg = r.Header.Get("Organization-Id")
		_ = json.NewEncoder(w).Encode(draftResponse{ID: "shipx-1"})
	}))

	_, err := client.CreateDraft(context.Background(), draftRequest{Service: "inpost_locker_standard"})

	require.NoError(t, err)
	assert.Equal(t, "Bearer test-token", gotAuth)
	assert.Equal(t, "org-42", gotOrg)
}

func TestClientNon2xxBecomesCarrierAPIError(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))

	_, err := client.GetOffers(context.Background(), "shipx-1")

	require.Error(t, err)
	assert.ErrorIs(t, err, ports.ErrCarrierAPI)
	assert.NotErrorIs(t, err, ports.ErrCarrierTimeout)

	var apiErr *ports.CarrierAPIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadGateway, apiErr.StatusCode)
	assert.Equal(t, carrierName, apiErr.Carrier)
}

func TestClientTimeoutIsFlagged(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(200 * time.Millisecond)
		_ = json.NewEncoder(w).Encode(draftResponse{})
	}))
	t.Cleanup(server.Close)

	client, err := NewClient(ClientConfig{
		BaseURL: server.URL,
		Token:   "test-token",
		Timeout: 20 * time.Millisecond,
	})
	require.NoError(t, err)

	_, err = client.Track(context.Background(), "PL001")

	require.Error(t, err)
	assert.ErrorIs(t, err, ports.ErrCarrierAPI)
	assert.ErrorIs(t, err, ports.ErrCarrierTimeout)

	var apiErr *ports.CarrierAPIError
	require.ErrorAs(t, err, &apiErr)
	assert.True(t, apiErr.Timeout)
	assert.Zero(t, apiErr.StatusCode)
}

func TestClientMalformedBodyBecomesCarrierAPIError(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("not json"))
	}))

	_, err := client.Track(context.Background(), "PL001")

	require.Error(t, err)
	assert.ErrorIs(t, err, ports.ErrCarrierAPI)
}

func TestClientGetLabel(t *testing.T) {
	var gotAccept, gotPath, gotFormat string
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAccept = r.Header.Get("Accept")
		gotPath = r.URL.Path
		gotFormat = r.URL.Query().Get("format")
		_, _ = w.Write([]byte("%PDF-1.4"))
	}))

	content, err := client.GetLabel(context.Background(), "shipx-1", label.FormatA6)

	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-1.4"), content)
	assert.Equal(t, "application/pdf", gotAccept)
	assert.Equal(t, "/v1/shipments/shipx-1/label", gotPath)
	assert.Equal(t, "A6", gotFormat)
}

func TestClientSelectOfferPostsOfferID(t *testing.T) {
	var gotBody selectOfferRequest
	var gotPath string
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		_ = json.NewEncoder(w).Encode(draftResponse{ID: "shipx-1", TrackingNumber: "PL001"})
	}))

	resp, err := client.SelectOffer(context.Background(), "shipx-1", "offer-b")

	require.NoError(t, err)
	assert.Equal(t, "/v1/shipments/shipx-1/select_offer", gotPath)
	assert.Equal(t, "offer-b", gotBody.OfferID)
	assert.Equal(t, "PL001", resp.TrackingNumber)
}
