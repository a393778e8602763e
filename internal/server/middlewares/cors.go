package middlewares

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// CORS allows browser clients from any origin. There are no credentials to protect.
func CORS() gin.HandlerFunc {
	return cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Content-Length", "Accept", "Accept-Encoding", "Cache-Control"},
		AllowMethods:     []string{"GET", "POST", "HEAD", "OPTIONS"},
		ExposeHeaders:    []string{"Content-Disposition"},
		AllowCredentials: false,
	})
}
