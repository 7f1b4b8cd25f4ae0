package http

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"storefront-service/internal/domain"
	"storefront-service/internal/infra/mailer"
	"storefront-service/internal/middleware"
	"storefront-service/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
)

const savedCartsCacheKey = "savedcarts:all"

type Handler struct {
	categories *services.CategoryService
	products   *services.ProductService
	carts      *services.SavedCartService
	orders     *services.OrderService
	mail       mailer.Sender
	rdb        *redis.Client
	verifier   middleware.CredentialVerifier
}

func NewHandler(
	categories *services.CategoryService,
	products *services.ProductService,
	carts *services.SavedCartService,
	orders *services.OrderService,
	mail mailer.Sender,
	rdb *redis.Client,
	verifier middleware.CredentialVerifier,
) *Handler {
	return &Handler{
		categories: categories,
		products:   products,
		carts:      carts,
		orders:     orders,
		mail:       mail,
		rdb:        rdb,
		verifier:   verifier,
	}
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	admin := r.Group("/api/admin", middleware.RequireAdmin(h.verifier))
	{
		admin.GET("/categories", h.ListCategories)
		admin.POST("/categories", h.CreateCategory)
		admin.PUT("/categories", h.UpdateCategory)
		admin.DELETE("/categories", h.DeleteCategory)

		admin.GET("/products", h.ListProducts)
		admin.POST("/products", h.CreateProduct)
		admin.PUT("/products", h.UpdateProduct)
		admin.DELETE("/products", h.DeleteProduct)

		admin.GET("/orders", h.ListOrders)
		admin.PUT("/orders", h.UpdateOrder)

		admin.GET("/saved-carts", h.GetSavedCarts)
		admin.POST("/saved-carts", h.CreateSavedCart)
		admin.DELETE("/saved-carts", h.DeleteSavedCart)
	}

	r.GET("/api/cart/count", h.CartCount)
	r.POST("/api/checkout", h.Checkout)
	r.POST("/api/send-cart-email", h.SendCartEmail)
}

func mapErrorToStatus(err error) int {
	switch {
	case errors.Is(err, services.ErrValidation), errors.Is(err, services.ErrConflict):
		return http.StatusBadRequest
	case errors.Is(err, services.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, services.ErrCartExpired):
		return http.StatusGone
	default:
		return http.StatusInternalServerError
	}
}

// fail translates a service error into the JSON error envelope. Store
// failures are logged server-side and masked with a generic message.
func (h *Handler) fail(c *gin.Context, err error) {
	status := mapErrorToStatus(err)
	if status == http.StatusInternalServerError {
		log.Printf("%s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		c.JSON(status, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

func queryID(c *gin.Context) (uint64, bool) {
	raw := c.Query("id")
	if raw == "" {
		return 0, false
	}
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return id, true
}

// Categories

func (h *Handler) ListCategories(c *gin.Context) {
	categories, err := h.categories.List()
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, categories)
}

func (h *Handler) CreateCategory(c *gin.Context) {
	var req CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	category, err := h.categories.Create(req.Name, req.Description)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, category)
}

func (h *Handler) UpdateCategory(c *gin.Context) {
	var req UpdateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	if req.ID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "category id is required"})
		return
	}
	category, err := h.categories.Update(req.ID, req.Name, req.Description)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, category)
}

func (h *Handler) DeleteCategory(c *gin.Context) {
	id, ok := queryID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "category id is required"})
		return
	}
	if err := h.categories.Delete(id); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "category deleted successfully"})
}

// Products

func (h *Handler) ListProducts(c *gin.Context) {
	var categoryID uint64
	if raw := c.Query("categoryId"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid categoryId"})
			return
		}
		categoryID = id
	}
	products, err := h.products.List(categoryID)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, products)
}

func (h *Handler) CreateProduct(c *gin.Context) {
	var req CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	if req.Price == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing required fields"})
		return
	}
	product, err := h.products.Create(services.CreateProductInput{
		Name:          req.Name,
		Description:   req.Description,
		ProductNumber: req.ProductNumber,
		Price:         float64(*req.Price),
		Stock:         int(req.Stock),
		CategoryID:    req.CategoryID,
		ImageURL:      req.ImageURL,
		Images:        req.Images,
		IsActive:      req.IsActive,
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, product)
}

func (h *Handler) UpdateProduct(c *gin.Context) {
	var req UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	if req.ID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "product id is required"})
		return
	}
	in := services.UpdateProductInput{
		Name:          req.Name,
		Description:   req.Description,
		ProductNumber: req.ProductNumber,
		CategoryID:    req.CategoryID,
		ImageURL:      req.ImageURL,
		Images:        req.Images,
		IsActive:      req.IsActive,
	}
	if req.Price != nil {
		price := float64(*req.Price)
		in.Price = &price
	}
	if req.Stock != nil {
		stock := int(*req.Stock)
		in.Stock = &stock
	}
	product, err := h.products.Update(req.ID, in)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

func (h *Handler) DeleteProduct(c *gin.Context) {
	id, ok := queryID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "product id is required"})
		return
	}
	if err := h.products.Delete(id); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "product deleted successfully"})
}

// Orders

func (h *Handler) ListOrders(c *gin.Context) {
	orders, err := h.orders.List()
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

func (h *Handler) UpdateOrder(c *gin.Context) {
	var req UpdateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	if req.ID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "order id is required"})
		return
	}
	order, err := h.orders.UpdateStatus(req.ID, req.Status, req.PaymentStatus)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

// Saved carts

func (h *Handler) GetSavedCarts(c *gin.Context) {
	if cartCode := c.Query("cartCode"); cartCode != "" {
		cart, err := h.carts.Lookup(cartCode)
		if err != nil {
			h.fail(c, err)
			return
		}
		c.JSON(http.StatusOK, cart)
		return
	}

	ctx := c.Request.Context()
	if h.rdb != nil {
		if cached, err := h.rdb.Get(ctx, savedCartsCacheKey).Result(); err == nil {
			var carts []domain.SavedCart
			if json.Unmarshal([]byte(cached), &carts) == nil {
				c.JSON(http.StatusOK, carts)
				return
			}
		}
	}

	carts, err := h.carts.List()
	if err != nil {
		h.fail(c, err)
		return
	}
	if h.rdb != nil {
		if data, err := json.Marshal(carts); err == nil {
			h.rdb.Set(ctx, savedCartsCacheKey, data, 10*time.Second)
		}
	}
	c.JSON(http.StatusOK, carts)
}

func (h *Handler) CreateSavedCart(c *gin.Context) {
	var req CreateSavedCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	items := make([]services.SavedCartItemInput, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, services.SavedCartItemInput{
			ProductID:  item.ProductID,
			Quantity:   item.Quantity,
			PriceAtAdd: item.PriceAtAdd,
		})
	}
	cart, err := h.carts.Create(c.Request.Context(), req.Email, items)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.invalidateSavedCartsCache()
	c.JSON(http.StatusCreated, cart)
}

func (h *Handler) DeleteSavedCart(c *gin.Context) {
	id, ok := queryID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "cart id is required"})
		return
	}
	if err := h.carts.Delete(id); err != nil {
		h.fail(c, err)
		return
	}
	h.invalidateSavedCartsCache()
	c.JSON(http.StatusOK, gin.H{"message": "cart deleted successfully"})
}

func (h *Handler) invalidateSavedCartsCache() {
	if h.rdb != nil {
		h.rdb.Del(context.Background(), savedCartsCacheKey)
	}
}

// Cart count answers the storefront badge for guests; any failure
// degrades to zero rather than an error.
func (h *Handler) CartCount(c *gin.Context) {
	guestID, err := c.Cookie("guestId")
	if err != nil || guestID == "" {
		c.JSON(http.StatusOK, gin.H{"count": 0})
		return
	}

	ctx := c.Request.Context()
	cacheKey := "cartcount:" + guestID
	if h.rdb != nil {
		if cached, err := h.rdb.Get(ctx, cacheKey).Result(); err == nil {
			if count, err := strconv.Atoi(cached); err == nil {
				c.JSON(http.StatusOK, gin.H{"count": count})
				return
			}
		}
	}

	count, err := h.carts.GuestItemCount(guestID)
	if err != nil {
		log.Printf("cart count for %s: %v", guestID, err)
		c.JSON(http.StatusOK, gin.H{"count": 0})
		return
	}
	if h.rdb != nil {
		h.rdb.Set(ctx, cacheKey, strconv.Itoa(count), 30*time.Second)
	}
	c.JSON(http.StatusOK, gin.H{"count": count})
}

// Checkout stub: turns a saved cart into a pending order, nothing is
// charged.
func (h *Handler) Checkout(c *gin.Context) {
	var req CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	order, err := h.orders.Checkout(services.CheckoutInput{
		CartCode:      req.CartCode,
		CustomerName:  req.CustomerName,
		CustomerEmail: req.CustomerEmail,
		CustomerPhone: req.CustomerPhone,
		ShippingCity:  req.ShippingCity,
		ShippingState: req.ShippingState,
		PaymentMethod: req.PaymentMethod,
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, order)
}

func (h *Handler) SendCartEmail(c *gin.Context) {
	var req mailer.CartEmail
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	if err := h.mail.SendCartEmail(c.Request.Context(), req); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "email sent successfully"})
}
