package handler_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dewoosin/paperly-sub000/internal/auth/handler"
	"github.com/gofiber/fiber/v2"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
)

func TestRegisterRoutes(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	f := newHandlerFixture(t, ctrl)

	routes := []struct {
		method string
		path   string
	}{
		{"POST", "/api/v1/register"},
		{"POST", "/api/v1/login"},
		{"POST", "/api/v1/refresh"},
		{"DELETE", "/api/v1/session"},
		{"DELETE", "/api/v1/sessions"},
		{"POST", "/api/v1/verify-email"},
		{"POST", "/api/v1/verify-email/resend"},
	}

	for _, r := range routes {
		t.Run(r.method+" "+r.path, func(t *testing.T) {
			req := httptest.NewRequest(r.method, r.path, nil)
			resp, err := f.app.Test(req)
			assert.NoError(t, err)
			assert.NotEqual(t, http.StatusNotFound, resp.StatusCode)
			assert.NotEqual(t, http.StatusMethodNotAllowed, resp.StatusCode)
		})
	}
}

func TestRegisterRoutesUnknownPath(t *testing.T) {
	app := fiber.New()
	handler.RegisterRoutes(app, &handler.AuthHandler{})

	req := httptest.NewRequest("GET", "/api/v1/does-not-exist", nil)
	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
