package clients

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HimashaKodikara/ShuttlemateClient-sub000/models"
)

func TestListItemsParsesCategoryGroups(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/items", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		// Prices arrive as number or string depending on the endpoint.
		w.Write([]byte(`{"categories":[
			{"_id":"cat-1","categoryName":"Rackets","items":[
				{"_id":"A1","name":"Astrox 99","price":1000,"qty":3},
				{"_id":"A2","name":"Nanoflare","price":"1500","qty":"2"}
			]}
		]}`))
	}))
	defer srv.Close()

	c := NewBackendClient(srv.URL, time.Second)
	groups, err := c.ListItems(context.Background())
	require.NoError(t, err)
	require.Len(t, groups, 1)
	require.Len(t, groups[0].Items, 2)

	item := groups[0].Items[1].ToItem(groups[0].CategoryID, groups[0].CategoryName, "S1", "Smash Corner")
	assert.Equal(t, int64(1500), item.Price)
	assert.Equal(t, int32(2), item.Available)
	assert.Equal(t, "Rackets", item.CategoryName)
	assert.Equal(t, "S1", item.ShopID)
}

func TestNon2xxBecomesFetchError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewBackendClient(srv.URL, time.Second)
	_, err := c.ListItems(context.Background())

	var fe *FetchError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, http.StatusInternalServerError, fe.StatusCode)
}

func TestGetUserProfileNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	c := NewBackendClient(srv.URL, time.Second)
	_, err := c.GetUserProfile(context.Background(), "uid-1")
	assert.ErrorIs(t, err, ErrProfileNotFound)
}

func TestPutUserProfileSendsWholeProfile(t *testing.T) {
	var got models.AddressProfile
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPut, r.Method)
		require.Equal(t, "/user/uid-1", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := NewBackendClient(srv.URL, time.Second)
	profile := models.AddressProfile{Phone: "0771234567", Line1: "12 Lake Road", PostalCode: "10400"}
	require.NoError(t, c.PutUserProfile(context.Background(), "uid-1", profile))
	assert.Equal(t, profile, got)
}

func TestCreatePaymentIntent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/payment/intents", r.URL.Path)

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, float64(2000), body["amount"])
		assert.Equal(t, "uid-1", body["FirebaseUID"])
		assert.Equal(t, "A1", body["ItemID"])
		assert.Equal(t, "Astrox 99", body["ItemName"])

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"clientSecret":"cs_123","payment":{"id":"pi_1"}}`))
	}))
	defer srv.Close()

	c := NewBackendClient(srv.URL, time.Second)
	resp, err := c.CreatePaymentIntent(context.Background(), CreateIntentRequest{
		Amount:      2000,
		FirebaseUID: "uid-1",
		ItemID:      "A1",
		ItemName:    "Astrox 99",
	})
	require.NoError(t, err)
	assert.Equal(t, "cs_123", resp.ClientSecret)
}

func TestCreatePaymentIntentServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewBackendClient(srv.URL, time.Second)
	_, err := c.CreatePaymentIntent(context.Background(), CreateIntentRequest{Amount: 2000})

	var fe *FetchError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, http.StatusInternalServerError, fe.StatusCode)
}

func TestGetItemNormalizes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/items/A1", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"_id":"A1","name":"Astrox 99","price":1000,"qty":3,"categoryId":"cat-1","categoryName":"Rackets"}`))
	}))
	defer srv.Close()

	c := NewBackendClient(srv.URL, time.Second)
	item, err := c.GetItem(context.Background(), "A1")
	require.NoError(t, err)
	assert.Equal(t, "A1", item.ItemID)
	assert.Equal(t, int64(1000), item.Price)
	assert.Equal(t, int32(3), item.Available)
	assert.Equal(t, "Rackets", item.CategoryName)
}
