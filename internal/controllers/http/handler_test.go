package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"storefront-service/internal/domain"
	"storefront-service/internal/middleware"
	"storefront-service/internal/mocks"
	"storefront-service/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

const (
	testAdminUser = "admin"
	testAdminPass = "admin310"
)

type fixture struct {
	router     *gin.Engine
	categories *mocks.MockCategoryRepository
	products   *mocks.MockProductRepository
	carts      *mocks.MockSavedCartRepository
	orders     *mocks.MockOrderRepository
	pub        *mocks.MockPublisher
	mail       *mocks.MockMailer
}

func setup(t *testing.T) *fixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	f := &fixture{
		categories: new(mocks.MockCategoryRepository),
		products:   new(mocks.MockProductRepository),
		carts:      new(mocks.MockSavedCartRepository),
		orders:     new(mocks.MockOrderRepository),
		pub:        new(mocks.MockPublisher),
		mail:       new(mocks.MockMailer),
	}

	handler := NewHandler(
		services.NewCategoryService(f.categories),
		services.NewProductService(f.products),
		services.NewSavedCartService(f.carts, f.pub, f.mail),
		services.NewOrderService(f.orders, f.carts),
		f.mail,
		nil, // no redis in tests; the handler degrades to the store
		middleware.StaticCredentials{Username: testAdminUser, Password: testAdminPass},
	)

	f.router = gin.New()
	handler.RegisterRoutes(f.router)
	return f
}

func (f *fixture) doJSON(t *testing.T, method, path string, body any, asAdmin bool) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatal(err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if asAdmin {
		req.SetBasicAuth(testAdminUser, testAdminPass)
	}
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode body %q: %v", w.Body.String(), err)
	}
	return out
}

func TestAdminRoutesRequireCredentials(t *testing.T) {
	f := setup(t)

	w := f.doJSON(t, http.MethodGet, "/api/admin/categories", nil, false)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/categories", nil)
	req.SetBasicAuth(testAdminUser, "wrong")
	w = httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCreateCategoryDerivesSlug(t *testing.T) {
	f := setup(t)
	f.categories.On("FindByNameOrSlug", "Electronics & Gadgets!!", "electronics-gadgets").Return(nil, nil)
	f.categories.On("Save", mock.AnythingOfType("*domain.Category")).Return(nil).Run(func(args mock.Arguments) {
		args.Get(0).(*domain.Category).ID = 1
	})

	w := f.doJSON(t, http.MethodPost, "/api/admin/categories", map[string]any{
		"name": "Electronics & Gadgets!!",
	}, true)

	assert.Equal(t, http.StatusCreated, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "electronics-gadgets", body["slug"])
}

func TestDeleteCategoryBlockedByProducts(t *testing.T) {
	f := setup(t)
	f.categories.On("CountProducts", uint64(1)).Return(int64(2), nil)

	w := f.doJSON(t, http.MethodDelete, "/api/admin/categories?id=1", nil, true)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decodeBody(t, w)["error"], "2 product(s)")
}

func TestDeleteCategoryMissingID(t *testing.T) {
	f := setup(t)
	w := f.doJSON(t, http.MethodDelete, "/api/admin/categories", nil, true)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateProductDuplicateNumber(t *testing.T) {
	f := setup(t)
	f.products.On("FindByNumber", "PRD-001").Return(&domain.Product{ID: 9, ProductNumber: "PRD-001"}, nil)

	w := f.doJSON(t, http.MethodPost, "/api/admin/products", map[string]any{
		"name":          "Gold Hoops",
		"productNumber": "PRD-001",
		"price":         5000,
		"categoryId":    1,
		"imageUrl":      "/uploads/hoops.jpg",
	}, true)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decodeBody(t, w)["error"], "product number already exists")
}

func TestCreateProductAcceptsStringNumbers(t *testing.T) {
	f := setup(t)
	f.products.On("FindByNumber", "PRD-002").Return(nil, nil)
	f.products.On("Save", mock.AnythingOfType("*domain.Product")).Return(nil).Run(func(args mock.Arguments) {
		p := args.Get(0).(*domain.Product)
		p.ID = 2
		assert.Equal(t, 4500.0, p.Price)
		assert.Equal(t, 12, p.Stock)
	})
	f.products.On("FindByID", uint64(2)).Return(&domain.Product{ID: 2, ProductNumber: "PRD-002"}, nil)

	w := f.doJSON(t, http.MethodPost, "/api/admin/products", map[string]any{
		"name":          "Silver Studs",
		"productNumber": "PRD-002",
		"price":         "4500",
		"stock":         "12",
		"categoryId":    1,
		"imageUrl":      "/uploads/studs.jpg",
	}, true)

	assert.Equal(t, http.StatusCreated, w.Code)
	f.products.AssertExpectations(t)
}

func TestSavedCartCreateAndLookup(t *testing.T) {
	f := setup(t)
	f.carts.On("Save", mock.AnythingOfType("*domain.SavedCart")).Return(nil).Run(func(args mock.Arguments) {
		args.Get(0).(*domain.SavedCart).ID = 1
	})
	f.carts.On("FindByCode", mock.AnythingOfType("string")).Return(nil, nil)
	f.pub.On("Publish", mock.Anything, "cart.saved", mock.Anything).Return(nil).Maybe()

	w := f.doJSON(t, http.MethodPost, "/api/admin/saved-carts", map[string]any{
		"items": []map[string]any{
			{"productId": 1, "quantity": 2, "priceAtAdd": 5000},
		},
	}, true)

	assert.Equal(t, http.StatusCreated, w.Code)
	body := decodeBody(t, w)
	assert.Regexp(t, `^ED-\d{4}$`, body["cartCode"])
	assert.Equal(t, 10000.0, body["totalAmount"])

	time.Sleep(100 * time.Millisecond)
}

func TestSavedCartCreateRejectsEmpty(t *testing.T) {
	f := setup(t)
	w := f.doJSON(t, http.MethodPost, "/api/admin/saved-carts", map[string]any{
		"items": []map[string]any{},
	}, true)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSavedCartLookupStatusCodes(t *testing.T) {
	f := setup(t)
	f.carts.On("FindByCode", "ED-0000").Return(nil, nil)
	f.carts.On("FindByCode", "ED-1111").Return(&domain.SavedCart{
		ID: 1, CartCode: "ED-1111", ExpiresAt: time.Now().Add(-24 * time.Hour),
	}, nil)
	f.carts.On("FindByCode", "ED-2222").Return(&domain.SavedCart{
		ID: 2, CartCode: "ED-2222", TotalAmount: 10000,
		ExpiresAt: time.Now().Add(24 * time.Hour),
		Items: []domain.SavedCartItem{
			{ID: 1, ProductID: 1, Quantity: 2, PriceAtAdd: 5000},
		},
	}, nil)

	w := f.doJSON(t, http.MethodGet, "/api/admin/saved-carts?cartCode=ED-0000", nil, true)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = f.doJSON(t, http.MethodGet, "/api/admin/saved-carts?cartCode=ED-1111", nil, true)
	assert.Equal(t, http.StatusGone, w.Code)

	w = f.doJSON(t, http.MethodGet, "/api/admin/saved-carts?cartCode=ED-2222", nil, true)
	assert.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "ED-2222", body["cartCode"])
	assert.Len(t, body["items"], 1)
}

func TestSavedCartDelete(t *testing.T) {
	f := setup(t)
	f.carts.On("Delete", uint64(7)).Return(nil)

	w := f.doJSON(t, http.MethodDelete, "/api/admin/saved-carts?id=7", nil, true)
	assert.Equal(t, http.StatusOK, w.Code)

	w = f.doJSON(t, http.MethodDelete, "/api/admin/saved-carts", nil, true)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCartCount(t *testing.T) {
	f := setup(t)
	f.carts.On("FindByCode", "ED-2222").Return(&domain.SavedCart{
		CartCode: "ED-2222",
		Items:    []domain.SavedCartItem{{ID: 1}, {ID: 2}, {ID: 3}},
	}, nil)

	// No cookie: zero, not an error.
	w := f.doJSON(t, http.MethodGet, "/api/cart/count", nil, false)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 0.0, decodeBody(t, w)["count"])

	req := httptest.NewRequest(http.MethodGet, "/api/cart/count", nil)
	req.AddCookie(&http.Cookie{Name: "guestId", Value: "ED-2222"})
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 3.0, decodeBody(t, rec)["count"])
}

func TestUpdateOrderValidation(t *testing.T) {
	f := setup(t)

	w := f.doJSON(t, http.MethodPut, "/api/admin/orders", map[string]any{
		"id": 1, "status": "teleported",
	}, true)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = f.doJSON(t, http.MethodPut, "/api/admin/orders", map[string]any{
		"status": "shipped",
	}, true)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	f.orders.On("Patch", uint64(1), map[string]any{"status": "shipped"}).
		Return(&domain.Order{ID: 1, Status: domain.StatusShipped}, nil)
	w = f.doJSON(t, http.MethodPut, "/api/admin/orders", map[string]any{
		"id": 1, "status": "shipped",
	}, true)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "shipped", decodeBody(t, w)["status"])
}

func TestCheckoutStub(t *testing.T) {
	f := setup(t)
	f.carts.On("FindByCode", "ED-2222").Return(&domain.SavedCart{
		ID: 2, CartCode: "ED-2222", TotalAmount: 10000,
		ExpiresAt: time.Now().Add(24 * time.Hour),
		Items: []domain.SavedCartItem{
			{ID: 1, ProductID: 1, Quantity: 2, PriceAtAdd: 5000},
		},
	}, nil)
	f.orders.On("Save", mock.AnythingOfType("*domain.Order")).Return(nil).Run(func(args mock.Arguments) {
		args.Get(0).(*domain.Order).ID = 5
	})
	f.orders.On("FindByID", uint64(5)).Return(&domain.Order{
		ID: 5, OrderNumber: "ORD-abcd1234", Status: domain.StatusPending, Total: 10000,
	}, nil)

	w := f.doJSON(t, http.MethodPost, "/api/checkout", map[string]any{
		"cartCode":     "ED-2222",
		"customerName": "Ada",
	}, false)

	assert.Equal(t, http.StatusCreated, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "pending", body["status"])
}

func TestSendCartEmailStub(t *testing.T) {
	f := setup(t)
	f.mail.On("SendCartEmail", mock.Anything, mock.Anything).Return(nil)

	w := f.doJSON(t, http.MethodPost, "/api/send-cart-email", map[string]any{
		"email":    "shopper@example.com",
		"cartCode": "ED-2222",
		"items": []map[string]any{
			{"name": "Gold Hoops", "productNumber": "PRD-001", "quantity": 2, "price": 5000},
		},
		"total": 10000,
	}, false)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, decodeBody(t, w)["success"])
	f.mail.AssertExpectations(t)
}
