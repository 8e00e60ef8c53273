package providers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dummyHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
}

func TestRouterProvider_GetAddsRoute(t *testing.T) {
	rp := NewRouterProvider()
	rp.Get("/test", dummyHandler())

	routes := rp.GetRoutes()
	require.Len(t, routes, 1)
	assert.Equal(t, "/test", routes[0].Url)
	assert.Equal(t, "GET /test", routes[0].Pattern())
}

func TestRouterProvider_AllVerbs(t *testing.T) {
	rp := NewRouterProvider()
	rp.Get("/caps/{user}", dummyHandler())
	rp.Post("/caps/{user}", dummyHandler())
	rp.Put("/caps/{user}", dummyHandler())
	rp.Delete("/caps/{user}", dummyHandler())

	routes := rp.GetRoutes()
	require.Len(t, routes, 4)
	assert.Equal(t, http.MethodGet, routes[0].Method)
	assert.Equal(t, http.MethodPost, routes[1].Method)
	assert.Equal(t, http.MethodPut, routes[2].Method)
	assert.Equal(t, http.MethodDelete, routes[3].Method)
}

func TestRouterProvider_SamePathDifferentMethodsOnMux(t *testing.T) {
	rp := NewRouterProvider()
	rp.Get("/caps", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("get"))
	}))
	rp.Delete("/caps", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("delete"))
	}))

	mux := http.NewServeMux()
	for _, route := range rp.GetRoutes() {
		mux.Handle(route.Pattern(), route.Handler)
	}

	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, httptest.NewRequest(http.MethodDelete, "/caps", nil))
	assert.Equal(t, "delete", rr.Body.String())

	rr = httptest.NewRecorder()
	mux.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/caps", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
}
