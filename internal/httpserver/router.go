package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

type Deps struct {
	CartHandler *CartHTTP
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	v1 := e.Group("/api/v1")

	carts := v1.Group("/carts")

	carts.POST("/:username", d.CartHandler.CreateCart)
	carts.GET("/:username", d.CartHandler.GetCart)
	carts.POST("/:username/items/:productId/:quantity", d.CartHandler.AddItem)
	carts.PUT("/:username/items/:productId", d.CartHandler.UpdateItem)
	carts.DELETE("/:username/items/:productId", d.CartHandler.RemoveItem)
}
