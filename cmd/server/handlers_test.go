package main

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/icco/gamecrm"
	"github.com/icco/gamecrm/hubspot"
	"github.com/icco/gamecrm/hubspot/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newTestHandler(t *testing.T) (http.Handler, *mocks.MockObjects) {
	t.Helper()
	ctrl := gomock.NewController(t)
	crm := mocks.NewMockObjects(ctrl)
	return NewServer(testConfig(), crm).Routes(), crm
}

func serve(h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func postForm(form url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/update-cobj", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func emptyProperties() map[string]string {
	return map[string]string{
		gamecrm.PropGenre:                "",
		gamecrm.PropReleaseDate:          "",
		gamecrm.PropPlatformAvailability: "",
		gamecrm.PropRating:               "",
		gamecrm.PropDevelopmentStatus:    "",
		gamecrm.PropBasePrice:            "",
		gamecrm.PropGlobalSales:          "",
		gamecrm.PropLeadDeveloper:        "",
		gamecrm.PropGameEngine:           "",
		gamecrm.PropStoreURL:             "",
	}
}

var sampleObjects = []hubspot.Object{
	{
		ID: "101",
		Properties: map[string]string{
			gamecrm.PropGameName:             "Aetheria",
			gamecrm.PropGenre:                "RPG",
			gamecrm.PropPlatformAvailability: "PC;Switch",
			gamecrm.PropRating:               "T",
		},
	},
	{
		ID: "102",
		Properties: map[string]string{
			gamecrm.PropGameName: "Night Circuit",
			gamecrm.PropGenre:    "Racing",
		},
	},
}

func TestHomeListsGames(t *testing.T) {
	h, crm := newTestHandler(t)
	crm.EXPECT().List(gomock.Any(), gamecrm.ListProperties, hubspot.MaxPageSize).Return(sampleObjects, nil)

	rr := serve(h, httptest.NewRequest(http.MethodGet, "/", http.NoBody))

	require.Equal(t, http.StatusOK, rr.Code)
	body := rr.Body.String()
	assert.Contains(t, body, "Aetheria")
	assert.Contains(t, body, "Night Circuit")
	assert.Contains(t, body, "PC, Switch")
	assert.Contains(t, body, `/update-cobj?selected=101`)
	assert.NotContains(t, body, "No games found.")
}

func TestHomeDegradesOnUpstreamError(t *testing.T) {
	for name, err := range map[string]error{
		"api error":       &hubspot.APIError{StatusCode: http.StatusUnauthorized, Body: []byte(`{"message":"bad token"}`)},
		"transport error": errors.New("dial tcp: connection refused"),
	} {
		t.Run(name, func(t *testing.T) {
			h, crm := newTestHandler(t)
			crm.EXPECT().List(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, err)

			rr := serve(h, httptest.NewRequest(http.MethodGet, "/", http.NoBody))

			assert.Equal(t, http.StatusOK, rr.Code)
			assert.Contains(t, rr.Body.String(), "No games found.")
		})
	}
}

func TestFormRendersCatalog(t *testing.T) {
	h, crm := newTestHandler(t)
	crm.EXPECT().List(gomock.Any(), gamecrm.ListProperties, hubspot.MaxPageSize).Return(sampleObjects, nil)

	rr := serve(h, httptest.NewRequest(http.MethodGet, "/update-cobj", http.NoBody))

	require.Equal(t, http.StatusOK, rr.Code)
	body := rr.Body.String()
	for _, want := range []string{"Strategy", "Sunsetting", "PlayStation", "Godot", "Night Circuit"} {
		assert.Contains(t, body, want)
	}
	assert.NotContains(t, body, `name="existing_id"`)
	assert.NotContains(t, body, "checked")
}

func TestFormSelectedRecord(t *testing.T) {
	h, crm := newTestHandler(t)
	crm.EXPECT().List(gomock.Any(), gomock.Any(), gomock.Any()).Return(sampleObjects, nil)

	rr := serve(h, httptest.NewRequest(http.MethodGet, "/update-cobj?selected=101", http.NoBody))

	require.Equal(t, http.StatusOK, rr.Code)
	body := rr.Body.String()
	assert.Contains(t, body, `name="existing_id" value="101"`)
	assert.Contains(t, body, `value="RPG" selected`)
	assert.Contains(t, body, `value="Switch" checked`)
	assert.NotContains(t, body, `value="Xbox" checked`)
	assert.Contains(t, body, `value="Aetheria"`)
}

func TestFormSelectedRecordKeepsRawID(t *testing.T) {
	h, crm := newTestHandler(t)
	crm.EXPECT().List(gomock.Any(), gomock.Any(), gomock.Any()).Return([]hubspot.Object{
		{ID: "a&b", Properties: map[string]string{"game_name": "Ampersand"}},
	}, nil)

	rr := serve(h, httptest.NewRequest(http.MethodGet, "/update-cobj?selected=a%26b", http.NoBody))

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `name="existing_id" value="a&amp;b"`)
}

func TestFormDegradesOnUpstreamError(t *testing.T) {
	h, crm := newTestHandler(t)
	crm.EXPECT().List(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, errors.New("boom"))

	rr := serve(h, httptest.NewRequest(http.MethodGet, "/update-cobj?selected=101", http.NoBody))

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "Strategy")
	assert.NotContains(t, rr.Body.String(), `name="existing_id"`)
}

func TestSubmitCreates(t *testing.T) {
	h, crm := newTestHandler(t)

	want := emptyProperties()
	want[gamecrm.PropGameName] = "Aetheria"
	want[gamecrm.PropGenre] = "RPG"
	want[gamecrm.PropPlatformAvailability] = "PC;Switch"

	crm.EXPECT().Create(gomock.Any(), want).Return(&hubspot.Object{ID: "900"}, nil).Times(1)

	rr := serve(h, postForm(url.Values{
		"game_name":             {"Aetheria"},
		"genre":                 {"RPG"},
		"platform_availability": {"PC", "Switch"},
	}))

	assert.Equal(t, http.StatusFound, rr.Code)
	assert.Equal(t, "/", rr.Header().Get("Location"))
}

func TestSubmitDelimitedPlatforms(t *testing.T) {
	h, crm := newTestHandler(t)

	crm.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, props map[string]string) (*hubspot.Object, error) {
			assert.Equal(t, "PC;Switch", props[gamecrm.PropPlatformAvailability])
			return &hubspot.Object{ID: "901"}, nil
		})

	rr := serve(h, postForm(url.Values{
		"game_name":             {"Aetheria"},
		"platform_availability": {"PC, Switch"},
	}))

	assert.Equal(t, http.StatusFound, rr.Code)
	assert.Equal(t, "/", rr.Header().Get("Location"))
}

func TestSubmitUpdates(t *testing.T) {
	h, crm := newTestHandler(t)

	want := emptyProperties()
	want[gamecrm.PropGameName] = "Aetheria II"
	want[gamecrm.PropRating] = "M"

	crm.EXPECT().Update(gomock.Any(), "101", want).Return(&hubspot.Object{ID: "101"}, nil)

	rr := serve(h, postForm(url.Values{
		"existing_id": {"101"},
		"game_name":   {"Aetheria II"},
		"rating":      {"M"},
	}))

	assert.Equal(t, http.StatusFound, rr.Code)
	assert.Equal(t, "/", rr.Header().Get("Location"))
}

func TestSubmitJSON(t *testing.T) {
	h, crm := newTestHandler(t)

	crm.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, props map[string]string) (*hubspot.Object, error) {
			assert.Equal(t, "Aetheria", props[gamecrm.PropGameName])
			assert.Equal(t, "PC;Switch", props[gamecrm.PropPlatformAvailability])
			return &hubspot.Object{ID: "902"}, nil
		})

	req := httptest.NewRequest(http.MethodPost, "/update-cobj",
		strings.NewReader(`{"game_name":"Aetheria","genre":"RPG","platform_availability":["PC","Switch"]}`))
	req.Header.Set("Content-Type", "application/json; charset=utf-8")

	rr := serve(h, req)
	assert.Equal(t, http.StatusFound, rr.Code)
	assert.Equal(t, "/", rr.Header().Get("Location"))
}

func TestSubmitJSONNumbers(t *testing.T) {
	h, crm := newTestHandler(t)

	crm.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, props map[string]string) (*hubspot.Object, error) {
			assert.Equal(t, "59.99", props[gamecrm.PropBasePrice])
			assert.Equal(t, "1200000", props[gamecrm.PropGlobalSales])
			return &hubspot.Object{ID: "903"}, nil
		})

	req := httptest.NewRequest(http.MethodPost, "/update-cobj",
		strings.NewReader(`{"game_name":"Aetheria","base_price":59.99,"global_sales":1200000}`))
	req.Header.Set("Content-Type", "application/json")

	rr := serve(h, req)
	assert.Equal(t, http.StatusFound, rr.Code)
	assert.Equal(t, "/", rr.Header().Get("Location"))
}

func TestSubmitFailureRedirectsToForm(t *testing.T) {
	h, crm := newTestHandler(t)
	crm.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil, &hubspot.APIError{
		StatusCode: http.StatusBadRequest,
		Body:       []byte(`{"message":"Property values were not valid"}`),
	})

	rr := serve(h, postForm(url.Values{"game_name": {"Aetheria"}}))

	assert.Equal(t, http.StatusFound, rr.Code)
	assert.Equal(t, "/update-cobj", rr.Header().Get("Location"))
}

func TestSubmitBadJSONRedirectsToForm(t *testing.T) {
	h, _ := newTestHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/update-cobj", strings.NewReader(`{"game_name":`))
	req.Header.Set("Content-Type", "application/json")

	rr := serve(h, req)
	assert.Equal(t, http.StatusFound, rr.Code)
	assert.Equal(t, "/update-cobj", rr.Header().Get("Location"))
}

func TestCreateAlias(t *testing.T) {
	h, crm := newTestHandler(t)
	crm.EXPECT().Create(gomock.Any(), gomock.Any()).Return(&hubspot.Object{ID: "903"}, nil)

	req := httptest.NewRequest(http.MethodPost, "/create-cobj", strings.NewReader("game_name=Alias"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	rr := serve(h, req)
	assert.Equal(t, http.StatusFound, rr.Code)
	assert.Equal(t, "/", rr.Header().Get("Location"))
}

func TestDeleteMissingID(t *testing.T) {
	for _, path := range []string{"/delete-cobj/", "/delete-cobj", "/delete-cobj/%20"} {
		t.Run(path, func(t *testing.T) {
			h, _ := newTestHandler(t)

			rr := serve(h, httptest.NewRequest(http.MethodDelete, path, http.NoBody))

			assert.Equal(t, http.StatusBadRequest, rr.Code)
			assert.JSONEq(t, `{"error":"missing game id"}`, rr.Body.String())
		})
	}
}

func TestDeleteSuccess(t *testing.T) {
	h, crm := newTestHandler(t)
	crm.EXPECT().Delete(gomock.Any(), "abc123").Return(nil)

	rr := serve(h, httptest.NewRequest(http.MethodDelete, "/delete-cobj/abc123", http.NoBody))

	assert.Equal(t, http.StatusNoContent, rr.Code)
	assert.Empty(t, rr.Body.String())
}

func TestDeleteForwardsRawID(t *testing.T) {
	h, crm := newTestHandler(t)
	crm.EXPECT().Delete(gomock.Any(), "a&b").Return(nil)

	rr := serve(h, httptest.NewRequest(http.MethodDelete, "/delete-cobj/a&b", http.NoBody))

	assert.Equal(t, http.StatusNoContent, rr.Code)
}

func TestDeleteUpstreamNotFound(t *testing.T) {
	h, crm := newTestHandler(t)
	upstream := `{"status":"error","message":"Object not found. objectId are usually numeric.","category":"OBJECT_NOT_FOUND"}`
	crm.EXPECT().Delete(gomock.Any(), "abc123").Return(&hubspot.APIError{
		StatusCode:  http.StatusNotFound,
		Body:        []byte(upstream),
		ContentType: "application/json",
	})

	rr := serve(h, httptest.NewRequest(http.MethodDelete, "/delete-cobj/abc123", http.NoBody))

	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.JSONEq(t, upstream, rr.Body.String())
}

func TestDeleteUpstreamNonJSON(t *testing.T) {
	h, crm := newTestHandler(t)
	crm.EXPECT().Delete(gomock.Any(), "abc123").Return(&hubspot.APIError{
		StatusCode: http.StatusBadGateway,
		Body:       []byte("upstream unavailable"),
	})

	rr := serve(h, httptest.NewRequest(http.MethodDelete, "/delete-cobj/abc123", http.NoBody))

	assert.Equal(t, http.StatusBadGateway, rr.Code)
	assert.JSONEq(t, `{"error":"upstream unavailable"}`, rr.Body.String())
}

func TestDeleteUpstreamHTMLPage(t *testing.T) {
	h, crm := newTestHandler(t)
	crm.EXPECT().Delete(gomock.Any(), "abc123").Return(&hubspot.APIError{
		StatusCode:  http.StatusServiceUnavailable,
		Body:        []byte("<html><body><h1>Service Unavailable</h1></body></html>"),
		ContentType: "text/html",
	})

	rr := serve(h, httptest.NewRequest(http.MethodDelete, "/delete-cobj/abc123", http.NoBody))

	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
	assert.JSONEq(t, `{"error":"Service Unavailable"}`, rr.Body.String())
}

func TestDeleteUpstreamNonErrorStatus(t *testing.T) {
	h, crm := newTestHandler(t)
	crm.EXPECT().Delete(gomock.Any(), "abc123").Return(&hubspot.APIError{
		StatusCode: http.StatusFound,
		Body:       []byte("moved"),
	})

	rr := serve(h, httptest.NewRequest(http.MethodDelete, "/delete-cobj/abc123", http.NoBody))

	assert.Equal(t, http.StatusBadGateway, rr.Code)
	assert.JSONEq(t, `{"error":"moved"}`, rr.Body.String())
}

func TestDeleteTransportError(t *testing.T) {
	h, crm := newTestHandler(t)
	crm.EXPECT().Delete(gomock.Any(), "abc123").Return(errors.New("dial tcp: connection refused"))

	rr := serve(h, httptest.NewRequest(http.MethodDelete, "/delete-cobj/abc123", http.NoBody))

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.JSONEq(t, `{"error":"dial tcp: connection refused"}`, rr.Body.String())
}
