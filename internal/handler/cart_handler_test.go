package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"storefront/internal/handler"
	"storefront/internal/middleware"
	"storefront/internal/models"
	"storefront/internal/repository"
	"storefront/internal/service"
	"storefront/internal/session"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const testSecret = "0123456789abcdef0123456789abcdef"

type testApp struct {
	router   *gin.Engine
	db       *gorm.DB
	sessions *session.Manager
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Product{},
		&models.Review{},
		&models.Order{},
		&models.OrderItem{},
	))

	sessions := session.NewManager(session.NewMemoryStore(time.Hour), testSecret, time.Hour)

	userRepo := repository.NewUserRepository(db)
	productRepo := repository.NewProductRepository(db)
	reviewRepo := repository.NewReviewRepository(db)
	orderRepo := repository.NewOrderRepository(db)

	authService := service.NewAuthService(userRepo)
	cartService := service.NewCartService(productRepo)
	orderService := service.NewOrderService(orderRepo)
	reviewService := service.NewReviewService(reviewRepo, productRepo)
	adminService := service.NewAdminService(models.NewShopRegistry(), db)

	r := gin.New()
	r.Use(middleware.Session(sessions))
	handler.NewCatalogHandler(productRepo, reviewService).RegisterRoutes(r)
	handler.NewCartHandler(cartService, orderService).RegisterRoutes(r)
	handler.NewAdminHandler(adminService).RegisterRoutes(r, authService)

	return &testApp{router: r, db: db, sessions: sessions}
}

func (app *testApp) seedProduct(t *testing.T, price, stock int) *models.Product {
	t.Helper()
	p := &models.Product{Name: "Teapot", Price: price, Stock: stock}
	require.NoError(t, app.db.Create(p).Error)
	return p
}

// do performs a request, carrying the session cookie between calls.
func (app *testApp) do(t *testing.T, cookie *http.Cookie, method, path string, form url.Values) (*httptest.ResponseRecorder, *http.Cookie) {
	t.Helper()

	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, path, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if cookie != nil {
		req.AddCookie(cookie)
	}

	w := httptest.NewRecorder()
	app.router.ServeHTTP(w, req)

	for _, c := range w.Result().Cookies() {
		if c.Name == session.CookieName && c.Value != "" {
			return w, c
		}
	}
	return w, cookie
}

type cartBody struct {
	Items []struct {
		ProductID int64 `json:"product_id"`
		Quantity  int   `json:"quantity"`
		Total     int   `json:"total"`
	} `json:"items"`
	Total   int `json:"total"`
	Flashes []struct {
		Level   string `json:"level"`
		Message string `json:"message"`
	} `json:"flashes"`
}

func decodeCart(t *testing.T, w *httptest.ResponseRecorder) cartBody {
	t.Helper()
	var body cartBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestCartRoundTripOverHTTP(t *testing.T) {
	app := newTestApp(t)
	app.seedProduct(t, 100, 5)

	// add two units
	w, cookie := app.do(t, nil, http.MethodPost, "/add/1", url.Values{"quantity": {"2"}})
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/product/1", w.Header().Get("Location"))
	require.NotNil(t, cookie)

	w, cookie = app.do(t, cookie, http.MethodGet, "/cart", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeCart(t, w)
	require.Len(t, body.Items, 1)
	assert.Equal(t, 2, body.Items[0].Quantity)
	assert.Equal(t, 200, body.Total)

	// update to five
	w, cookie = app.do(t, cookie, http.MethodPost, "/update_cart/1", url.Values{"quantity": {"5"}})
	require.Equal(t, http.StatusSeeOther, w.Code)

	w, cookie = app.do(t, cookie, http.MethodGet, "/cart", nil)
	body = decodeCart(t, w)
	require.Len(t, body.Items, 1)
	assert.Equal(t, 5, body.Items[0].Quantity)

	// remove
	w, cookie = app.do(t, cookie, http.MethodGet, "/remove_from_cart/1", nil)
	require.Equal(t, http.StatusSeeOther, w.Code)

	w, _ = app.do(t, cookie, http.MethodGet, "/cart", nil)
	body = decodeCart(t, w)
	assert.Empty(t, body.Items)
	assert.Zero(t, body.Total)
}

func TestCartAddBeyondStock(t *testing.T) {
	app := newTestApp(t)
	app.seedProduct(t, 100, 5)

	w, cookie := app.do(t, nil, http.MethodPost, "/add/1", url.Values{"quantity": {"6"}})
	require.Equal(t, http.StatusSeeOther, w.Code)

	// validation flash, cart unchanged
	w, _ = app.do(t, cookie, http.MethodGet, "/cart", nil)
	body := decodeCart(t, w)
	assert.Empty(t, body.Items)
	require.NotEmpty(t, body.Flashes)
	assert.Equal(t, "danger", body.Flashes[0].Level)
}

func TestCartUpdateBeyondStockKeepsQuantity(t *testing.T) {
	app := newTestApp(t)
	app.seedProduct(t, 100, 5)

	_, cookie := app.do(t, nil, http.MethodPost, "/add/1", url.Values{"quantity": {"2"}})

	w, cookie := app.do(t, cookie, http.MethodPost, "/update_cart/1", url.Values{"quantity": {"6"}})
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/cart", w.Header().Get("Location"))

	w, _ = app.do(t, cookie, http.MethodGet, "/cart", nil)
	body := decodeCart(t, w)
	require.Len(t, body.Items, 1)
	assert.Equal(t, 2, body.Items[0].Quantity)
	assert.Equal(t, 200, body.Total)
}

// loggedInCookie issues a session already bound to a user, as the
// login handler would leave it.
func (app *testApp) loggedInCookie(t *testing.T, userID int64) *http.Cookie {
	t.Helper()
	ctx := context.Background()

	id, value, data, err := app.sessions.Issue(ctx)
	require.NoError(t, err)
	data.UserID = userID
	require.NoError(t, app.sessions.Save(ctx, id, data))

	return &http.Cookie{Name: session.CookieName, Value: value}
}

func TestCheckoutOverHTTP(t *testing.T) {
	app := newTestApp(t)
	product := app.seedProduct(t, 100, 5)
	user := &models.User{Name: "Buyer", Email: "buyer@example.com", Password: "x"}
	require.NoError(t, app.db.Create(user).Error)

	cookie := app.loggedInCookie(t, user.ID)

	w, cookie := app.do(t, cookie, http.MethodPost, "/add/1", url.Values{"quantity": {"3"}})
	require.Equal(t, http.StatusSeeOther, w.Code)

	w, cookie = app.do(t, cookie, http.MethodPost, "/checkout", url.Values{"destination": {"Baker Street 221b"}})
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/cart", w.Header().Get("Location"))

	// stock decremented, cart emptied, order visible
	var got models.Product
	require.NoError(t, app.db.First(&got, product.ID).Error)
	assert.Equal(t, 2, got.Stock)

	w, cookie = app.do(t, cookie, http.MethodGet, "/cart", nil)
	body := decodeCart(t, w)
	assert.Empty(t, body.Items)

	w, _ = app.do(t, cookie, http.MethodGet, "/orders", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var orders struct {
		Orders []struct {
			Reference string `json:"reference"`
			Items     []struct {
				ProductID int64 `json:"product_id"`
			} `json:"items"`
		} `json:"orders"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &orders))
	require.Len(t, orders.Orders, 1)
	assert.NotEmpty(t, orders.Orders[0].Reference)
	assert.Len(t, orders.Orders[0].Items, 3)
}

func TestCheckoutRequiresLogin(t *testing.T) {
	app := newTestApp(t)
	app.seedProduct(t, 100, 5)

	_, cookie := app.do(t, nil, http.MethodPost, "/add/1", url.Values{"quantity": {"1"}})
	w, _ := app.do(t, cookie, http.MethodPost, "/checkout", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCheckoutEmptyCart(t *testing.T) {
	app := newTestApp(t)
	user := &models.User{Name: "Buyer", Email: "buyer@example.com", Password: "x"}
	require.NoError(t, app.db.Create(user).Error)

	cookie := app.loggedInCookie(t, user.ID)
	w, _ := app.do(t, cookie, http.MethodPost, "/checkout", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCartMutationsOnUnknownProduct(t *testing.T) {
	app := newTestApp(t)

	w, _ := app.do(t, nil, http.MethodPost, "/add/99", url.Values{"quantity": {"1"}})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, _ = app.do(t, nil, http.MethodPost, "/update_cart/99", url.Values{"quantity": {"1"}})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, _ = app.do(t, nil, http.MethodGet, "/remove_from_cart/99", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
