package middleware

import (
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// ConfigCORS allows the configured origins. Domains is a comma separated
// list; "*" allows everything, which is only sensible in development.
func ConfigCORS(domains string) gin.HandlerFunc {
	config := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}

	if domains == "*" {
		config.AllowAllOrigins = true
	} else {
		config.AllowOrigins = strings.Split(domains, ",")
	}

	return cors.New(config)
}
