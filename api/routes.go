package api

import (
	"github.com/gin-gonic/gin"

	"pdf_press/config"
	"pdf_press/service"
)

// SetupRoutes registers the document processing endpoints.
func SetupRoutes(r *gin.Engine, cfg *config.Config, proc *service.Processor) {
	apiGroup := r.Group("/api/pdf")
	{
		apiGroup.POST("/compress", func(c *gin.Context) { HandleCompress(c, cfg, proc) })
		apiGroup.POST("/merge", func(c *gin.Context) { HandleMerge(c, cfg, proc) })
		apiGroup.POST("/inspect", func(c *gin.Context) { HandleInspect(c, cfg) })
		apiGroup.POST("/resave", func(c *gin.Context) { HandleResave(c, cfg) })
		apiGroup.POST("/remove-pages", func(c *gin.Context) { HandleRemovePages(c, cfg) })
		apiGroup.GET("/jobs", func(c *gin.Context) { HandleJobs(c, proc) })
	}
}
