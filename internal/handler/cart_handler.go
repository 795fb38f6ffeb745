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
)

type CartHandler struct {
	cartService  service.CartService
	orderService service.OrderService
}

func NewCartHandler(cartService service.CartService, orderService service.OrderService) *CartHandler {
	return &CartHandler{cartService: cartService, orderService: orderService}
}

func (h *CartHandler) RegisterRoutes(router gin.IRouter) {
	router.GET("/cart", h.View)
	router.POST("/add/:id", h.Add)
	router.POST("/update_cart/:id", h.Update)
	router.GET("/remove_from_cart/:id", h.Remove)
	router.POST("/checkout", middleware.RequireAuth(), h.Checkout)
	router.GET("/orders", middleware.RequireAuth(), h.Orders)
}

// View prices the cart against the live catalog.
// GET /cart
func (h *CartHandler) View(c *gin.Context) {
	sess := middleware.GetSession(c)

	view, err := h.cartService.View(c.Request.Context(), sess)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"items":   view.Items,
		"total":   view.Total,
		"flashes": sess.PopFlashes(),
	})
}

// Add puts the requested quantity in the cart, then sends the browser
// back to the product page.
// POST /add/:id
func (h *CartHandler) Add(c *gin.Context) {
	sess := middleware.GetSession(c)

	productID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product ID"})
		return
	}

	quantity, err := strconv.Atoi(c.DefaultPostForm("quantity", "1"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "quantity must be a number"})
		return
	}

	name, err := h.cartService.Add(c.Request.Context(), sess, productID, quantity)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
		case errors.Is(err, service.ErrInvalidQuantity):
			sess.AddFlash("danger", "invalid quantity")
			c.Redirect(http.StatusSeeOther, fmt.Sprintf("/product/%d", productID))
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	sess.AddFlash("success", fmt.Sprintf("%q added to cart", name))
	c.Redirect(http.StatusSeeOther, fmt.Sprintf("/product/%d", productID))
}

// Update replaces a cart line's quantity.
// POST /update_cart/:id
func (h *CartHandler) Update(c *gin.Context) {
	sess := middleware.GetSession(c)

	productID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product ID"})
		return
	}

	quantity, err := strconv.Atoi(c.DefaultPostForm("quantity", "1"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "quantity must be a number"})
		return
	}

	if err := h.cartService.Update(c.Request.Context(), sess, productID, quantity); err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "not in cart"})
		case errors.Is(err, service.ErrInvalidQuantity):
			sess.AddFlash("danger", "not enough stock")
			c.Redirect(http.StatusSeeOther, "/cart")
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	sess.AddFlash("success", "cart updated")
	c.Redirect(http.StatusSeeOther, "/cart")
}

// Remove deletes a cart line.
// GET /remove_from_cart/:id
func (h *CartHandler) Remove(c *gin.Context) {
	sess := middleware.GetSession(c)

	productID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product ID"})
		return
	}

	name, err := h.cartService.Remove(sess, productID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "not in cart"})
		return
	}

	sess.AddFlash("info", fmt.Sprintf("%q removed from cart", name))
	c.Redirect(http.StatusSeeOther, "/cart")
}

// Checkout turns the cart into an order.
// POST /checkout
func (h *CartHandler) Checkout(c *gin.Context) {
	sess := middleware.GetSession(c)

	destination := c.PostForm("destination")

	order, err := h.orderService.Checkout(c.Request.Context(), sess, sess.UserID, destination)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmptyCart):
			c.JSON(http.StatusBadRequest, gin.H{"error": "cart is empty"})
		case errors.Is(err, repository.ErrInsufficientStock):
			sess.AddFlash("danger", "not enough stock to complete the order")
			c.Redirect(http.StatusSeeOther, "/cart")
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	sess.AddFlash("success", fmt.Sprintf("order %s placed", order.Reference))
	c.Redirect(http.StatusSeeOther, "/cart")
}

// Orders lists the session user's past orders.
// GET /orders
func (h *CartHandler) Orders(c *gin.Context) {
	sess := middleware.GetSession(c)

	orders, err := h.orderService.ListForUser(c.Request.Context(), sess.UserID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"orders":  orders,
		"flashes": sess.PopFlashes(),
	})
}
