package handlers

import (
	"math"
	"net/http"
	"strconv"

	"ecommerce_backend/internal/models"
	"ecommerce_backend/internal/service"

	"github.com/gin-gonic/gin"
)

// Request DTO for creating an item. Price is a pointer so that 0 is accepted
// while a missing price is not.
type createItemRequest struct {
	Name     string   `json:"name" binding:"required" example:"Book"`
	Price    *float64 `json:"price" binding:"required,gte=0" example:"10"`
	Category string   `json:"category" example:"books"`
	ImageURL string   `json:"imageUrl,omitempty" example:"/images/book.jpg"`
}

// Request DTO for a partial update; absent fields keep their stored value.
type updateItemRequest struct {
	Name     *string  `json:"name,omitempty" binding:"omitempty,min=1"`
	Price    *float64 `json:"price,omitempty" binding:"omitempty,gte=0"`
	Category *string  `json:"category,omitempty"`
	ImageURL *string  `json:"imageUrl,omitempty"`
}

// parseMaxPrice reads the optional maxPrice query; ok is false on a malformed value.
func parseMaxPrice(qs string) (*float64, bool) {
	if qs == "" {
		return nil, true
	}
	v, err := strconv.ParseFloat(qs, 64)
	if err != nil || math.IsNaN(v) {
		return nil, false
	}
	return &v, true
}

// @Summary      List items
// @Description  Without filters all items are returned. maxPrice is inclusive.
// @Tags         items
// @Produce      json
// @Param        category  query     string  false  "Exact category"  example(books)
// @Param        maxPrice  query     number  false  "Inclusive upper price bound"  example(100)
// @Success      200       {array}   models.Item
// @Failure      400       {object}  map[string]string
// @Failure      500       {object}  map[string]string
// @Router       /items [get]
func (h *Handler) listItems(c *gin.Context) {
	maxPrice, ok := parseMaxPrice(c.Query("maxPrice"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": errMaxPriceInvalid})
		return
	}
	filter := service.ItemFilter{
		Category: c.Query("category"),
		MaxPrice: maxPrice,
	}

	items, err := h.services.Catalog.List(c.Request.Context(), filter)
	if err != nil {
		h.respondError(c, "items_list_failed", err, "category", filter.Category)
		return
	}
	c.JSON(http.StatusOK, items)
}

// @Summary      Create item
// @Tags         items
// @Accept       json
// @Produce      json
// @Param        body  body      createItemRequest  true  "Item"
// @Success      200   {object}  models.Item
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /items [post]
// @Security     BearerAuth
func (h *Handler) createItem(c *gin.Context) {
	var req createItemRequest
	if ok := h.bindJSONOrBadRequest(c, &req); !ok {
		return
	}

	item, err := h.services.Catalog.Create(c.Request.Context(), service.ItemInput{
		Name:     req.Name,
		Price:    *req.Price,
		Category: req.Category,
		ImageURL: req.ImageURL,
	})
	if err != nil {
		h.respondError(c, "items_create_failed", err, "name", req.Name)
		return
	}
	c.JSON(http.StatusOK, item)
}

// @Summary      Update item
// @Description  Partial update; only the provided fields change.
// @Tags         items
// @Accept       json
// @Produce      json
// @Param        id    path      string             true  "Item ID"
// @Param        body  body      updateItemRequest  true  "Fields to change"
// @Success      200   {object}  models.Item
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /items/{id} [put]
// @Security     BearerAuth
func (h *Handler) updateItem(c *gin.Context) {
	id := c.Param("id")
	var req updateItemRequest
	if ok := h.bindJSONOrBadRequest(c, &req); !ok {
		return
	}

	item, err := h.services.Catalog.Update(c.Request.Context(), id, models.ItemPatch{
		Name:     req.Name,
		Price:    req.Price,
		Category: req.Category,
		ImageURL: req.ImageURL,
	})
	if err != nil {
		h.respondError(c, "items_update_failed", err, "id", id)
		return
	}
	c.JSON(http.StatusOK, item)
}

// @Summary      Delete item
// @Description  Succeeds even when the id does not exist.
// @Tags         items
// @Produce      json
// @Param        id   path      string  true  "Item ID"
// @Success      200  {object}  map[string]string  "message"
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /items/{id} [delete]
// @Security     BearerAuth
func (h *Handler) deleteItem(c *gin.Context) {
	id := c.Param("id")
	if err := h.services.Catalog.Delete(c.Request.Context(), id); err != nil {
		h.respondError(c, "items_delete_failed", err, "id", id)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": msgItemDeleted})
}
