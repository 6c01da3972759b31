package validators

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/angelmondragon/storefront/pkg/errors"
	"github.com/angelmondragon/storefront/pkg/types"
)

func TestDecodeJSONBodyRejectsUnknownFields(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"username":"a","password":"b","role":"admin"}`))
	var dest types.LoginRequest
	err := DecodeJSONBody(req, &dest)
	require.Error(t, err)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))
}

func TestDecodeJSONBodyValidates(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"username":"ab","email":"x","password":"123456"}`))
	var dest types.RegisterRequest
	err := DecodeJSONBody(req, &dest)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	details := typed.Details().(map[string]string)
	assert.Contains(t, details, "username")
	assert.Contains(t, details, "email")
	assert.NotContains(t, details, "password")
}

func TestDecodeJSONBodyDecimalPrice(t *testing.T) {
	body := `{"title":"Lamp","description":"A warm reading lamp","price":12.5,"category":"home","image":"https://img.test/a.png"}`
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	var dest types.ProductDraft
	require.NoError(t, DecodeJSONBody(req, &dest))
	assert.Equal(t, "12.5", dest.Price.String())
}

func TestParseQueryInt(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/?page=3&bad=x&big=900", nil)

	v, err := ParseQueryInt(req, "page", 1, 1, 100)
	require.NoError(t, err)
	assert.Equal(t, 3, v)

	v, err = ParseQueryInt(req, "missing", 1, 1, 100)
	require.NoError(t, err)
	assert.Equal(t, 1, v)

	_, err = ParseQueryInt(req, "bad", 1, 1, 100)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))

	_, err = ParseQueryInt(req, "big", 1, 1, 100)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))
}

func TestParsePathID(t *testing.T) {
	withParam := func(value string) *http.Request {
		rctx := chi.NewRouteContext()
		rctx.URLParams.Add("productId", value)
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
	}

	id, err := ParsePathID(withParam("42"), "productId")
	require.NoError(t, err)
	assert.Equal(t, 42, id)

	_, err = ParsePathID(withParam("0"), "productId")
	assert.Error(t, err)
	_, err = ParsePathID(withParam("abc"), "productId")
	assert.Error(t, err)
}

func TestLimitString(t *testing.T) {
	assert.Equal(t, "  abc  ", LimitString("  abc  ", 0))
	assert.Equal(t, "ab", LimitString("abc", 2))
	assert.Equal(t, "jewelery", LimitString("jewelery", 100))

	limited := LimitString("ééé", 2)
	assert.Equal(t, "éé", limited)
	assert.True(t, utf8.ValidString(limited))
}
