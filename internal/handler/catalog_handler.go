package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"storefront/internal/middleware"
	"storefront/internal/repository"
	"storefront/internal/service"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const catalogPageSize = 10

type CatalogHandler struct {
	productRepo   repository.ProductRepository
	reviewService service.ReviewService
}

func NewCatalogHandler(productRepo repository.ProductRepository, reviewService service.ReviewService) *CatalogHandler {
	return &CatalogHandler{productRepo: productRepo, reviewService: reviewService}
}

func (h *CatalogHandler) RegisterRoutes(router gin.IRouter) {
	router.GET("/", h.Index)
	router.GET("/product/:id", h.Product)
	router.POST("/product/:id", middleware.RequireAuth(), h.SubmitReview)
}

// Index lists the first page of the catalog.
// GET /
func (h *CatalogHandler) Index(c *gin.Context) {
	sess := middleware.GetSession(c)

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}

	products, total, err := h.productRepo.GetAll(c.Request.Context(), page, catalogPageSize)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"products": products,
		"total":    total,
		"page":     page,
		"flashes":  sess.PopFlashes(),
	})
}

// Product shows one product with its reviews.
// GET /product/:id
func (h *CatalogHandler) Product(c *gin.Context) {
	sess := middleware.GetSession(c)

	productID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product ID"})
		return
	}

	product, err := h.productRepo.GetByID(c.Request.Context(), productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	reviews, err := h.reviewService.ListForProduct(c.Request.Context(), productID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"product": product,
		"reviews": reviews,
		"flashes": sess.PopFlashes(),
	})
}

// SubmitReview stores a review for the product and refreshes its
// average rating.
// POST /product/:id
func (h *CatalogHandler) SubmitReview(c *gin.Context) {
	sess := middleware.GetSession(c)

	productID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product ID"})
		return
	}

	rate, err := strconv.Atoi(c.PostForm("review_rate"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "review_rate must be a number"})
		return
	}
	text := c.PostForm("review_text")

	_, err = h.reviewService.Submit(c.Request.Context(), sess.UserID, productID, text, rate)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
		case errors.Is(err, service.ErrInvalidRate):
			sess.AddFlash("danger", err.Error())
			c.Redirect(http.StatusSeeOther, fmt.Sprintf("/product/%d", productID))
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	sess.AddFlash("success", "review submitted")
	c.Redirect(http.StatusSeeOther, fmt.Sprintf("/product/%d", productID))
}
