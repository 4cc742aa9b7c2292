package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type addToCartRequest struct {
	ItemID string `json:"itemId" binding:"required"`
}

// @Summary      Get cart
// @Description  Returns an empty list when the caller has no cart yet.
// @Tags         cart
// @Produce      json
// @Success      200  {array}   models.CartItem
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /cart [get]
// @Security     BearerAuth
func (h *Handler) getCart(c *gin.Context) {
	userID := currentUserID(c)
	items, err := h.services.Cart.Items(c.Request.Context(), userID)
	if err != nil {
		h.respondError(c, "cart_get_failed", err, "user_id", userID)
		return
	}
	c.JSON(http.StatusOK, items)
}

// @Summary      Add to cart
// @Description  Copies the catalog item into the caller's cart and returns all cart items.
// @Tags         cart
// @Accept       json
// @Produce      json
// @Param        body  body      addToCartRequest  true  "Catalog item to add"
// @Success      200   {array}   models.CartItem
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /cart [post]
// @Security     BearerAuth
func (h *Handler) addToCart(c *gin.Context) {
	var req addToCartRequest
	if ok := h.bindJSONOrBadRequest(c, &req); !ok {
		return
	}

	userID := currentUserID(c)
	items, err := h.services.Cart.Add(c.Request.Context(), userID, req.ItemID)
	if err != nil {
		h.respondError(c, "cart_add_failed", err, "user_id", userID, "item_id", req.ItemID)
		return
	}
	c.JSON(http.StatusOK, items)
}

// @Summary      Remove from cart
// @Description  Removes the cart entry with the given cart-item id. Unknown ids leave the cart unchanged.
// @Tags         cart
// @Produce      json
// @Param        itemId  path      string  true  "Cart item ID"
// @Success      200     {array}   models.CartItem
// @Failure      401     {object}  map[string]string
// @Failure      403     {object}  map[string]string
// @Failure      404     {object}  map[string]string
// @Failure      500     {object}  map[string]string
// @Router       /cart/{itemId} [delete]
// @Security     BearerAuth
func (h *Handler) removeFromCart(c *gin.Context) {
	userID := currentUserID(c)
	cartItemID := c.Param("itemId")
	items, err := h.services.Cart.Remove(c.Request.Context(), userID, cartItemID)
	if err != nil {
		h.respondError(c, "cart_remove_failed", err, "user_id", userID, "cart_item_id", cartItemID)
		return
	}
	c.JSON(http.StatusOK, items)
}
