package handlers

import (
	"context"
	"net/http"
	"sync"

	"ecommerce_backend/internal/logger"
	"ecommerce_backend/internal/models"
	"ecommerce_backend/internal/service"

	"github.com/gin-gonic/gin"
)

// ---- Service Mocks ----

type mockAuth struct {
	signUpID   string
	signUpErr  error
	loginToken string
	loginErr   error
	identity   models.Identity
	parseErr   error

	lastSignUpEmail    string
	lastSignUpPassword string
	lastLoginEmail     string
	lastLoginPassword  string
	lastParseToken     string
}

func (m *mockAuth) SignUp(_ context.Context, email, password string) (string, error) {
	m.lastSignUpEmail = email
	m.lastSignUpPassword = password
	return m.signUpID, m.signUpErr
}
func (m *mockAuth) Login(_ context.Context, email, password string) (string, error) {
	m.lastLoginEmail = email
	m.lastLoginPassword = password
	return m.loginToken, m.loginErr
}
func (m *mockAuth) ParseToken(token string) (models.Identity, error) {
	m.lastParseToken = token
	return m.identity, m.parseErr
}

type mockCatalog struct {
	items     []models.Item
	listErr   error
	created   models.Item
	createErr error
	updated   models.Item
	updateErr error
	deleteErr error

	lastFilter service.ItemFilter
	lastInput  service.ItemInput
	lastID     string
	lastPatch  models.ItemPatch
	calls      int
}

func (m *mockCatalog) List(_ context.Context, f service.ItemFilter) ([]models.Item, error) {
	m.calls++
	m.lastFilter = f
	return m.items, m.listErr
}
func (m *mockCatalog) Create(_ context.Context, in service.ItemInput) (models.Item, error) {
	m.calls++
	m.lastInput = in
	return m.created, m.createErr
}
func (m *mockCatalog) Update(_ context.Context, id string, p models.ItemPatch) (models.Item, error) {
	m.calls++
	m.lastID = id
	m.lastPatch = p
	return m.updated, m.updateErr
}
func (m *mockCatalog) Delete(_ context.Context, id string) error {
	m.calls++
	m.lastID = id
	return m.deleteErr
}

// mockCart is read by the websocket goroutine, so access is guarded.
type mockCart struct {
	mu        sync.Mutex
	items     []models.CartItem
	err       error
	addErr    error
	removeErr error

	lastUserID string
	lastItemID string
}

func (m *mockCart) setItems(items []models.CartItem) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items = items
}

func (m *mockCart) Items(_ context.Context, userID string) ([]models.CartItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastUserID = userID
	return m.items, m.err
}
func (m *mockCart) Add(_ context.Context, userID, itemID string) ([]models.CartItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastUserID = userID
	m.lastItemID = itemID
	return m.items, m.addErr
}
func (m *mockCart) Remove(_ context.Context, userID, cartItemID string) ([]models.CartItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastUserID = userID
	m.lastItemID = cartItemID
	return m.items, m.removeErr
}

// ---- Shared Test Helpers ----

func newTestRouter(s *service.Service) *gin.Engine {
	h := NewHandler(s, logger.Nop())
	gin.SetMode(gin.TestMode)
	return h.InitRoutes()
}

func authHeader(token string) http.Header {
	h := http.Header{}
	if token != "" {
		h.Set("Authorization", "Bearer "+token)
	}
	return h
}

// authedService returns a service whose tokens all resolve to userID.
func authedService(userID string) (*service.Service, *mockCatalog, *mockCart) {
	catalog := &mockCatalog{}
	cart := &mockCart{}
	return &service.Service{
		Authorization: &mockAuth{identity: models.Identity{UserID: userID, Email: userID + "@x.com"}},
		Catalog:       catalog,
		Cart:          cart,
	}, catalog, cart
}
