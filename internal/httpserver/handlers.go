package httpserver

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"umrah-storefront/internal/currency"
	cartsvc "umrah-storefront/internal/service/cart"
	contactsvc "umrah-storefront/internal/service/contact"
	customersvc "umrah-storefront/internal/service/customer"
)

// displayCurrency picks the session's currency, then ?currency=, then the base currency.
func (h *handlers) displayCurrency(c *gin.Context) currency.Currency {
	if s := sessionFrom(c); s != nil {
		return h.deps.Currencies.Resolve(s.Currency)
	}
	return h.deps.Currencies.Resolve(c.Query("currency"))
}

func (h *handlers) createSession(c *gin.Context) {
	sess, err := h.deps.SessionSvc.Issue(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.Header(sessionHeader, sess.ID)
	c.JSON(http.StatusCreated, gin.H{"sessionId": sess.ID, "currency": sess.Currency})
}

func (h *handlers) listProducts(c *gin.Context) {
	first := 0
	if raw := c.Query("first"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "first must be a positive integer"})
			return
		}
		first = n
	}
	page, err := h.deps.ProductSvc.List(c.Request.Context(), first, c.Query("after"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toProductPageView(h.displayCurrency(c), page))
}

func (h *handlers) getProduct(c *gin.Context) {
	detail, err := h.deps.ProductSvc.Get(c.Request.Context(), c.Param("handle"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, productDetailView{
		productView:     toProductView(h.displayCurrency(c), detail.Product),
		DescriptionHTML: detail.DescriptionHTML,
	})
}

func (h *handlers) listCurrencies(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"base":       currency.Base,
		"selected":   h.displayCurrency(c).Code,
		"stale":      h.deps.Currencies.Stale(),
		"currencies": h.deps.Currencies.List(),
	})
}

type setCurrencyRequest struct {
	Code string `json:"code" binding:"required"`
}

func (h *handlers) setCurrency(c *gin.Context) {
	var req setCurrencyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "code required"})
		return
	}
	cur, ok := h.deps.Currencies.Lookup(req.Code)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unsupported currency " + strings.ToUpper(req.Code)})
		return
	}
	if _, err := h.deps.SessionSvc.SetCurrency(c.Request.Context(), sessionID(c), cur.Code); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"currency": cur})
}

func (h *handlers) writeCart(c *gin.Context, view *cartsvc.View, err error) {
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toCartView(h.displayCurrency(c), view))
}

func (h *handlers) getCart(c *gin.Context) {
	view, err := h.deps.CartSvc.Get(c.Request.Context(), sessionID(c))
	h.writeCart(c, view, err)
}

func (h *handlers) addCartItem(c *gin.Context) {
	var in cartsvc.AddInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid cart item"})
		return
	}
	view, err := h.deps.CartSvc.Add(c.Request.Context(), sessionID(c), in)
	h.writeCart(c, view, err)
}

type updateQuantityRequest struct {
	VariantID string `json:"variantId" binding:"required"`
	Quantity  *int   `json:"quantity" binding:"required"`
}

func (h *handlers) updateCartItem(c *gin.Context) {
	var req updateQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "variantId and quantity required"})
		return
	}
	view, err := h.deps.CartSvc.UpdateQuantity(c.Request.Context(), sessionID(c), req.VariantID, *req.Quantity)
	h.writeCart(c, view, err)
}

func (h *handlers) removeCartItem(c *gin.Context) {
	view, err := h.deps.CartSvc.Remove(c.Request.Context(), sessionID(c), c.Query("variantId"))
	h.writeCart(c, view, err)
}

func (h *handlers) clearCart(c *gin.Context) {
	view, err := h.deps.CartSvc.Clear(c.Request.Context(), sessionID(c))
	h.writeCart(c, view, err)
}

func (h *handlers) checkout(c *gin.Context) {
	url, err := h.deps.CartSvc.Checkout(c.Request.Context(), sessionID(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"checkoutUrl": url})
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *handlers) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email and password required"})
		return
	}
	customer, err := h.deps.CustomerSvc.Login(c.Request.Context(), sessionID(c), req.Email, req.Password)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"customer": customer})
}

func (h *handlers) register(c *gin.Context) {
	var in customersvc.RegisterInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid registration payload"})
		return
	}
	customer, err := h.deps.CustomerSvc.Register(c.Request.Context(), sessionID(c), in)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"customer": customer})
}

func (h *handlers) logout(c *gin.Context) {
	if err := h.deps.CustomerSvc.Logout(c.Request.Context(), sessionID(c)); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *handlers) account(c *gin.Context) {
	customer, err := h.deps.CustomerSvc.Profile(c.Request.Context(), sessionID(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"customer": customer})
}

func (h *handlers) orders(c *gin.Context) {
	orders, err := h.deps.CustomerSvc.Orders(c.Request.Context(), sessionID(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"orders": toOrderViews(h.displayCurrency(c), orders)})
}

func (h *handlers) bookings(c *gin.Context) {
	bookings, err := h.deps.CustomerSvc.Bookings(c.Request.Context(), sessionID(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": bookings})
}

type chatRequest struct {
	Message string `json:"message"`
}

func (h *handlers) chat(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "message required"})
		return
	}
	c.JSON(http.StatusOK, h.deps.FAQ.Match(req.Message))
}

func (h *handlers) contact(c *gin.Context) {
	var in contactsvc.Input
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, contactsvc.Result{Success: false, Message: "invalid form payload"})
		return
	}
	res, err := h.deps.ContactSvc.Submit(c.Request.Context(), in, c.ClientIP())
	if err != nil {
		status, msg := classify(err)
		if status >= http.StatusInternalServerError {
			_ = c.Error(err)
			status, msg = http.StatusBadGateway, "we could not send your message, please try again later"
		}
		if errors.Is(err, contactsvc.ErrCaptchaRejected) {
			msg = "please complete the captcha"
		}
		c.JSON(status, contactsvc.Result{Success: false, Message: msg})
		return
	}
	c.JSON(http.StatusOK, res)
}
