// Package handlers contains HTTP request handlers for the hello service.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// HelloMessage is the exact body served on the root route.
const HelloMessage = "Hello, World!"

// HelloHandler handles the root endpoint
func HelloHandler(c *gin.Context) {
	c.String(http.StatusOK, HelloMessage)
}
