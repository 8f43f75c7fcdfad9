package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"track-svr/internal/observability"
	"track-svr/internal/pipeline"
)

type TrackReader interface {
	GetTrack(ctx context.Context, id string) (*pipeline.TrackingObject, error)
	GetProximities(ctx context.Context, refID string) ([]pipeline.ProximityObject, error)
}

// NewRouter expone health, métricas y consultas del último estado.
func NewRouter(reader TrackReader) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/healthz", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})
	r.GET("/metrics", gin.WrapH(observability.MetricsHandler()))

	r.GET("/tracks/:id", func(c *gin.Context) {
		tr, err := reader.GetTrack(c.Request.Context(), c.Param("id"))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		if tr == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "track not found"})
			return
		}
		c.JSON(http.StatusOK, tr)
	})

	r.GET("/proximities/:ref", func(c *gin.Context) {
		out, err := reader.GetProximities(c.Request.Context(), c.Param("ref"))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"ref_id":      c.Param("ref"),
			"proximities": out,
		})
	})

	return r
}
