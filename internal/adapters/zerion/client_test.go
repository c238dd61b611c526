package zerion

import (
	"context"
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/folio-service/folio_service/pkg/logger"
)

const testAddress = "0x1234567890abcdef1234567890abcdef12345678"

func newTestLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("debug", "test")
	require.NoError(t, err)
	return log
}

func newTestClient(t *testing.T, baseURL string) *Client {
	t.Helper()
	return NewClient(Config{
		APIKey:     "test-key",
		BaseURL:    baseURL,
		Currency:   "usd",
		Timeout:    2 * time.Second,
		MaxRetries: 3,
	}, newTestLogger(t))
}

const positionsBody = `{
	"links": {"self": "https://api.zerion.io/v1/wallets/x/positions/"},
	"data": [{
		"type": "positions",
		"id": "eth-base-asset",
		"attributes": {
			"parent": null,
			"protocol": null,
			"name": "Asset",
			"position_type": "wallet",
			"quantity": {"int": "1000000000000000000", "decimals": 18, "float": 1.0, "numeric": "1.0"},
			"value": 2500.5,
			"price": 2500.5,
			"changes": null,
			"fungible_info": {
				"name": "Ethereum",
				"symbol": "ETH",
				"icon": {"url": "https://cdn.zerion.io/eth.png"},
				"flags": {"verified": true},
				"implementations": [{"chain_id": "ethereum", "address": null, "decimals": 18}]
			},
			"flags": {"displayable": true, "is_trash": false},
			"updated_at": "2024-01-01T00:00:00Z",
			"updated_at_block": 123
		}
	}]
}`

func TestGetPositions(t *testing.T) {
	var gotPath, gotQuery, gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(positionsBody))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	resp, err := client.GetPositions(context.Background(), testAddress)
	require.NoError(t, err)

	assert.Equal(t, "/v1/wallets/"+testAddress+"/positions/", gotPath)
	assert.Equal(t, "filter[positions]=only_simple&currency=usd&filter[trash]=only_non_trash&sort=value", gotQuery)

	wantAuth := "Basic " + base64.StdEncoding.EncodeToString([]byte("test-key:"))
	assert.Equal(t, wantAuth, gotAuth)

	require.Len(t, resp.Data, 1)
	pos := resp.Data[0]
	assert.Equal(t, "ETH", pos.Attributes.FungibleInfo.Symbol)
	assert.Equal(t, "https://cdn.zerion.io/eth.png", pos.Attributes.FungibleInfo.IconURL())
	require.NotNil(t, pos.Attributes.Value)
	assert.Equal(t, 2500.5, *pos.Attributes.Value)
	assert.True(t, pos.Attributes.Flags.Displayable)
	assert.False(t, pos.Attributes.Flags.IsTrash)
}

func TestGetPositionsNullValue(t *testing.T) {
	body := `{"links": {"self": "s"}, "data": [{
		"type": "positions", "id": "p1",
		"attributes": {
			"parent": null, "protocol": null, "name": "Asset", "position_type": "wallet",
			"quantity": {"int": "1", "decimals": 0, "float": 1, "numeric": "1"},
			"value": null, "price": 0, "changes": null,
			"fungible_info": {"name": "Mystery", "symbol": "MYS", "icon": null, "flags": {"verified": false}, "implementations": []},
			"flags": {"displayable": true, "is_trash": false},
			"updated_at": "2024-01-01T00:00:00Z", "updated_at_block": 1
		}
	}]}`
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(body))
	}))
	defer server.Close()

	resp, err := newTestClient(t, server.URL).GetPositions(context.Background(), testAddress)
	require.NoError(t, err)
	require.Len(t, resp.Data, 1)
	assert.Nil(t, resp.Data[0].Attributes.Value)
	assert.Equal(t, "", resp.Data[0].Attributes.FungibleInfo.IconURL())
}

func TestGetPortfolio(t *testing.T) {
	var gotPath, gotQuery string
	body := `{"links": {"self": "s"}, "data": {
		"type": "portfolio", "id": "` + testAddress + `",
		"attributes": {
			"positions_distribution_by_type": {"wallet": 5000, "deposited": 0, "borrowed": 0, "locked": 0, "staked": 0},
			"positions_distribution_by_chain": {"ethereum": 5000},
			"total": {"positions": 5000},
			"changes": {"absolute_1d": 12.5, "percent_1d": 0.25}
		}
	}}`
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		w.Write([]byte(body))
	}))
	defer server.Close()

	resp, err := newTestClient(t, server.URL).GetPortfolio(context.Background(), testAddress)
	require.NoError(t, err)

	assert.Equal(t, "/v1/wallets/"+testAddress+"/portfolio", gotPath)
	assert.Equal(t, "filter[positions]=only_simple&currency=usd", gotQuery)
	assert.Equal(t, 5000.0, resp.Data.Attributes.Total.Positions)
}

func TestGetPnL(t *testing.T) {
	var gotPath, gotQuery string
	body := `{"links": {"self": "s"}, "data": {
		"type": "wallet_pnl", "id": "` + testAddress + `",
		"attributes": {"realized_gain": 250.5, "unrealized_gain": -100.25, "net_invested": "n/a"}
	}}`
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		w.Write([]byte(body))
	}))
	defer server.Close()

	resp, err := newTestClient(t, server.URL).GetPnL(context.Background(), testAddress)
	require.NoError(t, err)

	assert.Equal(t, "/v1/wallets/"+testAddress+"/pnl/", gotPath)
	assert.Equal(t, "currency=usd", gotQuery)
	assert.Equal(t, 250.5, resp.Data.NumberAttr("realized_gain"))
	assert.Equal(t, -100.25, resp.Data.NumberAttr("unrealized_gain"))
	// Non-numeric and absent attributes both read as zero
	assert.Equal(t, 0.0, resp.Data.NumberAttr("net_invested"))
	assert.Equal(t, 0.0, resp.Data.NumberAttr("missing"))
}

func TestRetryOnServerError(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Write([]byte(positionsBody))
	}))
	defer server.Close()

	resp, err := newTestClient(t, server.URL).GetPositions(context.Background(), testAddress)
	require.NoError(t, err)
	assert.Len(t, resp.Data, 1)
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestNoRetryOnClientError(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"errors":[{"title":"not found"}]}`))
	}))
	defer server.Close()

	_, err := newTestClient(t, server.URL).GetPositions(context.Background(), testAddress)
	require.Error(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	assert.False(t, apiErr.IsRetryable())
}

func TestSchemaValidationFailure(t *testing.T) {
	body := `{"links": {"self": "s"}, "data": [{"type": "tokens", "id": "p1", "attributes": {
		"parent": null, "protocol": null, "name": "x", "position_type": "wallet",
		"quantity": {"int": "1", "decimals": 0, "float": 1, "numeric": "1"},
		"value": 1, "price": 1, "changes": null,
		"fungible_info": {"name": "X", "symbol": "X", "icon": null, "flags": {"verified": true}, "implementations": []},
		"flags": {"displayable": true, "is_trash": false},
		"updated_at": "2024-01-01T00:00:00Z", "updated_at_block": 1
	}}]}`
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(body))
	}))
	defer server.Close()

	_, err := newTestClient(t, server.URL).GetPositions(context.Background(), testAddress)
	require.Error(t, err)

	var valErr *ValidationError
	require.ErrorAs(t, err, &valErr)
	assert.Equal(t, "positions", valErr.Endpoint)
}

func TestEmptyResponseIsAnError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	_, err := newTestClient(t, server.URL).GetPnL(context.Background(), testAddress)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty response")
}
