package router

import "github.com/gin-gonic/gin"

// Module mounts one feature's routes. Registry decides whether rg is the
// /api group or the engine root.
type Module interface {
	Register(rg *gin.RouterGroup)
}
