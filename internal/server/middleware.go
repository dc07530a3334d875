package server

import "github.com/gin-gonic/gin"

const contextExportFormatKey = "export_format"

// noStore keeps artifact listings and payloads out of shared caches.
func noStore() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Cache-Control", "no-store")
		c.Next()
	}
}
