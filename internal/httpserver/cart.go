package httpserver

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/Skotchmaster/cart_service/internal/logging"
	"github.com/Skotchmaster/cart_service/internal/mykafka"
	"github.com/Skotchmaster/cart_service/internal/service"
	"github.com/labstack/echo/v4"
)

type CartHTTP struct {
	Svc      *service.CartService
	Producer *mykafka.Producer
}

func message(c echo.Context, code int, msg string) error {
	return c.JSON(code, map[string]string{"message": msg})
}

func errorJSON(c echo.Context, code int, msg string) error {
	return c.JSON(code, map[string]string{"error": msg})
}

func (h *CartHTTP) publish(c echo.Context, event map[string]any) {
	if h.Producer == nil {
		return
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := h.Producer.PublishEvent(ctx, "cart_events", event["username"].(string), event); err != nil {
		logging.FromContext(c.Request().Context()).Error("kafka publish error", "error", err)
	}
}

func (h *CartHTTP) CreateCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "create.cart")

	username := c.Param("username")
	if username == "" {
		l.Warn("create_cart_error", "status", 400)
		return errorJSON(c, http.StatusBadRequest, "username required")
	}

	cart, err := h.Svc.CreateCart(ctx, username)
	if err != nil {
		if errors.Is(err, service.ErrCartExists) {
			l.Warn("create_cart_conflict", "status", 400, "username", username)
			return errorJSON(c, http.StatusBadRequest, "A shopping cart already exists for this user")
		}
		l.Error("create_cart_error", "status", 500, "error", err)
		return errorJSON(c, http.StatusInternalServerError, err.Error())
	}

	h.publish(c, map[string]any{
		"type":     "cart_created",
		"username": username,
		"cartID":   cart.ID,
	})

	l.Info("cart created", "username", username)
	return message(c, http.StatusCreated, "Shopping cart created successfully")
}

func (h *CartHTTP) AddItem(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "add.item")

	username := c.Param("username")
	productID, err := strconv.Atoi(c.Param("productId"))
	if err != nil || productID <= 0 {
		l.Warn("add_item_error", "status", 400)
		return errorJSON(c, http.StatusBadRequest, "invalid product id")
	}
	quantity, err := strconv.Atoi(c.Param("quantity"))
	if err != nil || quantity < 1 {
		l.Warn("add_item_error", "status", 400)
		return errorJSON(c, http.StatusBadRequest, "quantity must be a positive integer")
	}

	if err := h.Svc.AddItem(ctx, username, uint(productID), uint(quantity)); err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			l.Warn("add_item_error", "status", 404, "username", username)
			return errorJSON(c, http.StatusNotFound, "User not found")
		case errors.Is(err, service.ErrProductNotFound):
			l.Warn("add_item_error", "status", 404, "product_id", productID)
			return errorJSON(c, http.StatusNotFound, "Product not found")
		case errors.Is(err, service.ErrNoCart):
			l.Warn("add_item_error", "status", 400, "username", username)
			return errorJSON(c, http.StatusBadRequest, "User does not have a shopping cart")
		case errors.Is(err, service.ErrValidation):
			l.Warn("add_item_error", "status", 400, "error", err)
			return errorJSON(c, http.StatusBadRequest, "quantity must be a positive integer")
		default:
			l.Error("add_item_error", "status", 500, "error", err)
			return errorJSON(c, http.StatusInternalServerError, err.Error())
		}
	}

	h.publish(c, map[string]any{
		"type":      "cart_item_added",
		"username":  username,
		"productID": productID,
		"quantity":  quantity,
	})

	l.Info("item added to cart", "username", username, "product_id", productID)
	return message(c, http.StatusOK, "Product added to the shopping cart successfully")
}

func (h *CartHTTP) UpdateItem(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "update.item")

	username := c.Param("username")
	productID, err := strconv.Atoi(c.Param("productId"))
	if err != nil || productID <= 0 {
		l.Warn("update_item_error", "status", 400)
		return errorJSON(c, http.StatusBadRequest, "invalid product id")
	}

	var req struct {
		Quantity int `json:"quantity"`
	}
	if err := c.Bind(&req); err != nil {
		l.Warn("update_item_error", "status", 400, "error", err)
		return errorJSON(c, http.StatusBadRequest, "invalid body")
	}
	if req.Quantity < 1 {
		l.Warn("update_item_error", "status", 400)
		return errorJSON(c, http.StatusBadRequest, "quantity must be a positive integer")
	}

	if err := h.Svc.UpdateItemQuantity(ctx, username, uint(productID), uint(req.Quantity)); err != nil {
		if errors.Is(err, service.ErrItemNotFound) {
			l.Warn("update_item_not_found", "status", 404, "username", username, "product_id", productID)
			return errorJSON(c, http.StatusNotFound, "Product is not in the shopping cart")
		}
		l.Error("update_item_error", "status", 500, "error", err)
		return errorJSON(c, http.StatusInternalServerError, err.Error())
	}

	h.publish(c, map[string]any{
		"type":      "cart_item_updated",
		"username":  username,
		"productID": productID,
		"quantity":  req.Quantity,
	})

	l.Info("item quantity updated", "username", username, "product_id", productID)
	return message(c, http.StatusOK, "Item quantity updated in the shopping cart successfully")
}

func (h *CartHTTP) RemoveItem(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "remove.item")

	username := c.Param("username")
	productID, err := strconv.Atoi(c.Param("productId"))
	if err != nil || productID <= 0 {
		l.Warn("remove_item_error", "status", 400)
		return errorJSON(c, http.StatusBadRequest, "invalid product id")
	}

	if err := h.Svc.RemoveItem(ctx, username, uint(productID)); err != nil {
		if errors.Is(err, service.ErrItemNotFound) {
			l.Warn("remove_item_not_found", "status", 404, "username", username, "product_id", productID)
			return errorJSON(c, http.StatusNotFound, "Product is not in the shopping cart")
		}
		l.Error("remove_item_error", "status", 500, "error", err)
		return errorJSON(c, http.StatusInternalServerError, err.Error())
	}

	h.publish(c, map[string]any{
		"type":      "cart_item_removed",
		"username":  username,
		"productID": productID,
	})

	l.Info("item removed from cart", "username", username, "product_id", productID)
	return message(c, http.StatusOK, "Product removed from the shopping cart successfully")
}

func (h *CartHTTP) GetCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "get.cart")

	username := c.Param("username")

	contents, err := h.Svc.GetCart(ctx, username)
	if err != nil {
		l.Error("get_cart_error", "status", 500, "error", err)
		return errorJSON(c, http.StatusInternalServerError, err.Error())
	}

	l.Info("cart fetched", "username", username, "items", len(contents.Items))
	return c.JSON(http.StatusOK, contents)
}
