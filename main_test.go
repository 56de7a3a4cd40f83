package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"orderdesk/internal/client"
	"orderdesk/internal/config"
	"orderdesk/internal/devbackend"
	"orderdesk/internal/models"
	"orderdesk/internal/orderform"
	"orderdesk/internal/orderlist"
	"orderdesk/internal/repositories"
	"orderdesk/internal/services"
)

var (
	cfg        *config.Config
	app        *fiber.App
	backendApp *fiber.App
)

// TestMain starts an in-memory dev backend and points the app at it.
func TestMain(m *testing.M) {
	log.SetOutput(io.Discard)

	v := viper.New()
	v.Set("EMAIL_CHECK_DEBOUNCE", "1ms")
	v.Set("API_TIMEOUT", "2s")
	v.Set("DATABASE_TYPE", config.DatabaseMemory)

	var err error
	cfg, err = config.LoadFrom(v)
	if err != nil {
		log.Fatalf("Failed to load test configuration: %v", err)
	}

	store, err := devbackend.OpenStore(cfg)
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}
	backendApp, err = devbackend.NewApp(store, nil)
	if err != nil {
		log.Fatalf("Failed to create dev backend: %v", err)
	}

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		log.Fatalf("Failed to listen: %v", err)
	}
	go func() {
		if err := backendApp.Listener(ln); err != nil {
			log.Printf("Dev backend stopped: %v", err)
		}
	}()

	cfg.APIURL = "http://" + ln.Addr().String()
	app = NewApp(cfg, client.New(cfg.APIURL, cfg.APITimeout))

	code := m.Run()

	if err := app.Shutdown(); err != nil {
		log.Printf("Error during Fiber shutdown: %v", err)
	}
	if err := backendApp.Shutdown(); err != nil {
		log.Printf("Error during dev backend shutdown: %v", err)
	}
	os.Exit(code)
}

func send(t *testing.T, method, target string, body interface{}) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		reader = bytes.NewReader(jsonBody)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestHealthCheck(t *testing.T) {
	resp := send(t, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	bodyBytes, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(bodyBytes), "\"status\":\"healthy\"")
}

func TestRootRedirectsToCreateOrder(t *testing.T) {
	resp := send(t, http.MethodGet, "/", nil)
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/create-order", resp.Header.Get("Location"))
}

func TestPlaceOrderThenListIt(t *testing.T) {
	resp := send(t, http.MethodPost, "/create-order/sessions", nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var opened struct {
		ID   string         `json:"id"`
		Form orderform.View `json:"form"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&opened))
	require.NotEmpty(t, opened.Form.Products)
	product := opened.Form.Products[0]
	form := "/create-order/sessions/" + opened.ID

	send(t, http.MethodPut, form+"/customer-name", map[string]string{"value": "Beatriz"})
	send(t, http.MethodPut, form+"/email", map[string]string{"value": "bea@hotmail.com"})
	send(t, http.MethodPost, form+"/lines", nil)
	send(t, http.MethodPut, form+"/lines/0", map[string]interface{}{"productId": product.ID, "quantity": 1})

	require.Eventually(t, func() bool {
		var view orderform.View
		r := send(t, http.MethodGet, form, nil)
		if err := json.NewDecoder(r.Body).Decode(&view); err != nil {
			return false
		}
		return view.Status == orderform.StatusValid
	}, 2*time.Second, 10*time.Millisecond)

	resp = send(t, http.MethodPost, form+"/submit", nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var created models.Order
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, orderform.Total(created.Products), created.Total)

	resp = send(t, http.MethodPost, "/order-list/sessions", nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var list struct {
		ID   string             `json:"id"`
		List orderlist.Snapshot `json:"list"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&list))

	resp = send(t, http.MethodGet, "/order-list/sessions/"+list.ID+"?search=beatriz", nil)
	var snap orderlist.Snapshot
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&snap))
	require.Len(t, snap.Orders, 1)
	assert.Equal(t, created.ID, snap.Orders[0].ID)
	assert.Equal(t, 1, snap.Orders[0].ProductCount)
}

func TestSessionJanitorExpiresIdleSessions(t *testing.T) {
	backend := client.New(cfg.APIURL, cfg.APITimeout)
	formSessions := repositories.NewSessionRepository[*orderform.Session]()
	listSessions := repositories.NewSessionRepository[*orderlist.View]()
	forms := services.NewFormService(backend, formSessions)
	lists := services.NewListService(backend, listSessions)

	forms.Open(context.Background())
	lists.Open(context.Background())
	require.Equal(t, 1, formSessions.Len())
	require.Equal(t, 1, listSessions.Len())

	stop := startSessionJanitor(20*time.Millisecond, forms, lists)
	defer stop()

	assert.Eventually(t, func() bool {
		return formSessions.Len() == 0 && listSessions.Len() == 0
	}, time.Second, 10*time.Millisecond)
}
