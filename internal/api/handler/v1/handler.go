package v1

import (
	"github.com/gin-gonic/gin"

	"github.com/oaktheatre/boxoffice/internal/api/middleware"
	"github.com/oaktheatre/boxoffice/internal/domain"
)

func getUser(ctx *gin.Context) (domain.User, bool) {
	return middleware.GetUser(ctx)
}
