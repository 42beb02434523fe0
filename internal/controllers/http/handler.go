package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"storefront-api/internal/domain"
	"storefront-api/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
)

const (
	allOrdersCacheKey  = "orders:all"
	adminStatsCacheKey = "stats:admin"
)

type Handler struct {
	orders   *services.OrderService
	stats    *services.StatsService
	products *services.ProductService
	reviews  *services.ReviewService
	users    *services.UserService
	rdb      *redis.Client
}

func NewHandler(
	orders *services.OrderService,
	stats *services.StatsService,
	products *services.ProductService,
	reviews *services.ReviewService,
	users *services.UserService,
	rdb *redis.Client,
) *Handler {
	return &Handler{
		orders:   orders,
		stats:    stats,
		products: products,
		reviews:  reviews,
		users:    users,
		rdb:      rdb,
	}
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.Use(RequestID())

	api := r.Group("/api")

	orders := api.Group("/orders")
	orders.POST("/create-checkout-session", h.CreateCheckoutSession)
	orders.POST("/confirm-payment", h.ConfirmPayment)
	orders.GET("", h.GetAllOrders)
	orders.GET("/:email", h.GetOrdersByEmail)
	orders.GET("/order/:id", h.GetOrderByID)
	orders.PATCH("/update-order-status/:id", h.UpdateOrderStatus)
	orders.DELETE("/delete-order/:id", h.DeleteOrder)

	stats := api.Group("/stats")
	stats.GET("/user-stats/:email", h.GetUserStats)
	stats.GET("/admin-stats", h.GetAdminStats)

	products := api.Group("/products")
	products.POST("/create-product", h.CreateProduct)
	products.GET("", h.ListProducts)
	products.GET("/:id", h.GetProduct)
	products.PATCH("/update-product/:id", h.UpdateProduct)
	products.DELETE("/:id", h.DeleteProduct)

	reviews := api.Group("/reviews")
	reviews.POST("/post-review", h.PostReview)
	reviews.GET("/total-review", h.TotalReviews)
	reviews.GET("/:userId", h.GetReviewsByUser)

	api.GET("/users", h.ListUsers)
}

// respondError maps service sentinels onto HTTP status codes per the error
// taxonomy: caller errors 400, missing entities 404, gateway failures 502,
// everything else 500.
func (h *Handler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrSessionIDRequired),
		errors.Is(err, services.ErrEmptyCart),
		errors.Is(err, services.ErrInvalidCartItem),
		errors.Is(err, services.ErrInvalidStatus),
		errors.Is(err, services.ErrInvalidReview):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrOrderNotFound),
		errors.Is(err, services.ErrUserNotFound),
		errors.Is(err, services.ErrProductNotFound),
		errors.Is(err, services.ErrReviewNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrGateway):
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

func (h *Handler) invalidateOrderCaches(ctx context.Context) {
	if h.rdb == nil {
		return
	}
	h.rdb.Del(ctx, allOrdersCacheKey, adminStatsCacheKey)
}

func (h *Handler) CreateCheckoutSession(c *gin.Context) {
	var req CreateCheckoutSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	cart := make([]domain.CartItem, 0, len(req.Products))
	for _, p := range req.Products {
		cart = append(cart, domain.CartItem{
			Name:     p.Name,
			Image:    p.Image,
			Price:    p.Price,
			Quantity: p.Quantity,
		})
	}

	sess, err := h.orders.CreateCheckoutSession(c.Request.Context(), cart)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, CreateCheckoutSessionResponse{ID: sess.ID})
}

func (h *Handler) ConfirmPayment(c *gin.Context) {
	var req ConfirmPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	order, err := h.orders.ConfirmPayment(c.Request.Context(), req.SessionID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	h.invalidateOrderCaches(c.Request.Context())
	c.JSON(http.StatusOK, order)
}

func (h *Handler) GetOrdersByEmail(c *gin.Context) {
	email := c.Param("email")
	orders, err := h.orders.GetOrdersByEmail(c.Request.Context(), email)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

func (h *Handler) GetOrderByID(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order id"})
		return
	}

	order, err := h.orders.GetOrderByID(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

func (h *Handler) GetAllOrders(c *gin.Context) {
	ctx := c.Request.Context()

	if h.rdb != nil {
		if b, err := h.rdb.Get(ctx, allOrdersCacheKey).Result(); err == nil {
			var orders []domain.Order
			if json.Unmarshal([]byte(b), &orders) == nil {
				c.JSON(http.StatusOK, orders)
				return
			}
		}
	}

	orders, err := h.orders.GetAllOrders(ctx)
	if err != nil {
		h.respondError(c, err)
		return
	}
	if len(orders) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"message": "no orders found", "orders": []domain.Order{}})
		return
	}

	if h.rdb != nil {
		if data, err := json.Marshal(orders); err == nil {
			h.rdb.Set(ctx, allOrdersCacheKey, data, 10*time.Second)
		}
	}
	c.JSON(http.StatusOK, orders)
}

func (h *Handler) UpdateOrderStatus(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order id"})
		return
	}

	var req UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	order, err := h.orders.UpdateOrderStatus(c.Request.Context(), id, domain.OrderStatus(req.Status))
	if err != nil {
		h.respondError(c, err)
		return
	}

	h.invalidateOrderCaches(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"message": "order updated successfully", "order": order})
}

func (h *Handler) DeleteOrder(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order id"})
		return
	}

	order, err := h.orders.DeleteOrder(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}

	h.invalidateOrderCaches(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"message": "order deleted successfully", "order": order})
}

func (h *Handler) GetUserStats(c *gin.Context) {
	email := c.Param("email")
	stats, err := h.stats.GetUserStats(c.Request.Context(), email)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (h *Handler) GetAdminStats(c *gin.Context) {
	ctx := c.Request.Context()

	if h.rdb != nil {
		if b, err := h.rdb.Get(ctx, adminStatsCacheKey).Result(); err == nil {
			var stats services.AdminStats
			if json.Unmarshal([]byte(b), &stats) == nil {
				c.JSON(http.StatusOK, stats)
				return
			}
		}
	}

	stats, err := h.stats.GetAdminStats(ctx)
	if err != nil {
		h.respondError(c, err)
		return
	}

	if h.rdb != nil {
		if data, err := json.Marshal(stats); err == nil {
			h.rdb.Set(ctx, adminStatsCacheKey, data, 30*time.Second)
		}
	}
	c.JSON(http.StatusOK, stats)
}

func (h *Handler) CreateProduct(c *gin.Context) {
	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	product := &domain.Product{
		Name:        req.Name,
		Category:    req.Category,
		Description: req.Description,
		Price:       req.Price,
		OldPrice:    req.OldPrice,
		Image:       req.Image,
		Color:       req.Color,
		AuthorID:    req.AuthorID,
	}
	if err := h.products.CreateProduct(c.Request.Context(), product); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "product created successfully", "product": product})
}

func (h *Handler) ListProducts(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	minPrice, _ := strconv.ParseFloat(c.Query("minPrice"), 64)
	maxPrice, _ := strconv.ParseFloat(c.Query("maxPrice"), 64)

	filter := domain.ProductFilter{
		Category: c.Query("category"),
		Color:    c.Query("color"),
		MinPrice: minPrice,
		MaxPrice: maxPrice,
		Page:     page,
		Limit:    limit,
	}

	pageResult, err := h.products.ListProducts(c.Request.Context(), filter)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, pageResult)
}

func (h *Handler) GetProduct(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
		return
	}

	product, reviews, err := h.products.GetProduct(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"product": product, "reviews": reviews})
}

func (h *Handler) UpdateProduct(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
		return
	}

	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	product, err := h.products.UpdateProduct(c.Request.Context(), id, &domain.Product{
		Name:        req.Name,
		Category:    req.Category,
		Description: req.Description,
		Price:       req.Price,
		OldPrice:    req.OldPrice,
		Image:       req.Image,
		Color:       req.Color,
		AuthorID:    req.AuthorID,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "product updated successfully", "product": product})
}

func (h *Handler) DeleteProduct(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
		return
	}

	if err := h.products.DeleteProduct(c.Request.Context(), id); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "product deleted successfully"})
}

func (h *Handler) PostReview(c *gin.Context) {
	var req PostReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	review, err := h.reviews.PostReview(c.Request.Context(), req.Comment, req.Rating, req.UserID, req.ProductID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "review processed successfully", "review": review})
}

func (h *Handler) TotalReviews(c *gin.Context) {
	total, err := h.reviews.TotalReviews(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"totalReviews": total})
}

func (h *Handler) GetReviewsByUser(c *gin.Context) {
	userID, err := strconv.ParseUint(c.Param("userId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	reviews, err := h.reviews.GetReviewsByUser(c.Request.Context(), userID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, reviews)
}

func (h *Handler) ListUsers(c *gin.Context) {
	users, err := h.users.ListUsers(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}
