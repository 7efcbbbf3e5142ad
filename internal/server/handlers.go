package server

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/ChicagoDave/skyline/pkg/config"
	"github.com/ChicagoDave/skyline/pkg/render/raster"
	"github.com/ChicagoDave/skyline/pkg/render/svg"
	"github.com/ChicagoDave/skyline/pkg/scene"
	"github.com/ChicagoDave/skyline/pkg/skyline"
	"github.com/gin-gonic/gin"
)

var errBadQuery = errors.New("bad query parameter")

const (
	maxPNGScale  = 4.0
	maxPNGPixels = 16_000_000
)

// request resolves the query parameters against the server config.
func (s *Server) request(c *gin.Context) (cacheKey, error) {
	k := cacheKey{
		width:  s.cfg.Canvas.Width,
		height: s.cfg.Canvas.Height,
		seed:   s.cfg.Seed,
		clamp:  s.cfg.ClampPerspective,
	}
	var err error
	if v := c.Query("width"); v != "" {
		if k.width, err = strconv.ParseFloat(v, 64); err != nil {
			return k, fmt.Errorf("%w: width %q", errBadQuery, v)
		}
	}
	if v := c.Query("height"); v != "" {
		if k.height, err = strconv.ParseFloat(v, 64); err != nil {
			return k, fmt.Errorf("%w: height %q", errBadQuery, v)
		}
	}
	if v := c.Query("seed"); v != "" {
		if k.seed, err = strconv.ParseUint(v, 10, 64); err != nil {
			return k, fmt.Errorf("%w: seed %q", errBadQuery, v)
		}
	}
	if v := c.Query("clamp"); v != "" {
		if k.clamp, err = strconv.ParseBool(v); err != nil {
			return k, fmt.Errorf("%w: clamp %q", errBadQuery, v)
		}
	}
	if k.width > config.MaxCanvasSide || k.height > config.MaxCanvasSide {
		return k, fmt.Errorf("%w: canvas %vx%v exceeds %v", errBadQuery, k.width, k.height, config.MaxCanvasSide)
	}
	return k, nil
}

func (s *Server) buildings(c *gin.Context) (cacheKey, []skyline.Building, bool) {
	k, err := s.request(c)
	if err == nil {
		var bs []skyline.Building
		if bs, err = s.cache.buildings(k); err == nil {
			return k, bs, true
		}
	}
	status := http.StatusInternalServerError
	if errors.Is(err, errBadQuery) || errors.Is(err, skyline.ErrInvalidArgument) {
		status = http.StatusBadRequest
	}
	c.AbortWithStatusJSON(status, gin.H{"error": err.Error()})
	return k, nil, false
}

func (s *Server) scene(c *gin.Context) (*scene.Graph, bool) {
	k, bs, ok := s.buildings(c)
	if !ok {
		return nil, false
	}
	cfg := *s.cfg
	cfg.Canvas = config.Canvas{Width: k.width, Height: k.height}
	return scene.Assemble(bs, &cfg), true
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":       "ok",
		"cached_sizes": s.cache.len(),
	})
}

func (s *Server) handleBuildings(c *gin.Context) {
	k, bs, ok := s.buildings(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"canvas":    config.Canvas{Width: k.width, Height: k.height},
		"seed":      k.seed,
		"buildings": bs,
	})
}

func (s *Server) handleScene(c *gin.Context) {
	g, ok := s.scene(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, g)
}

func (s *Server) handleValidation(c *gin.Context) {
	k, bs, ok := s.buildings(c)
	if !ok {
		return
	}
	r := scene.ValidateBuildings(bs, k.width, k.height)
	cfg := *s.cfg
	cfg.Canvas = config.Canvas{Width: k.width, Height: k.height}
	r.Merge(scene.ValidateGraph(scene.Assemble(bs, &cfg)))
	c.JSON(http.StatusOK, r)
}

func (s *Server) handleConfig(c *gin.Context) {
	c.JSON(http.StatusOK, s.cfg)
}

func (s *Server) handleSVG(c *gin.Context) {
	g, ok := s.scene(c)
	if !ok {
		return
	}
	var buf bytes.Buffer
	if err := svg.Render(&buf, g); err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Data(http.StatusOK, "image/svg+xml", buf.Bytes())
}

func (s *Server) handlePNG(c *gin.Context) {
	scale := 1.0
	if v := c.Query("scale"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil || f <= 0 || f > maxPNGScale {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
				"error": fmt.Sprintf("%v: scale %q must be in (0, %v]", errBadQuery, v, maxPNGScale),
			})
			return
		}
		scale = f
	}
	g, ok := s.scene(c)
	if !ok {
		return
	}
	cv := g.Metadata.Canvas
	if cv.Width*scale*cv.Height*scale > maxPNGPixels {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error": fmt.Sprintf("%v: image larger than %d pixels", errBadQuery, maxPNGPixels),
		})
		return
	}
	var buf bytes.Buffer
	if err := raster.EncodePNG(&buf, g, raster.Options{Scale: scale}); err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Data(http.StatusOK, "image/png", buf.Bytes())
}

func (s *Server) handleIndex(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(`<!DOCTYPE html>
<html><head><title>Skyline</title></head>
<body style="margin:0;background:#0a0a0a;height:100vh;display:flex;align-items:flex-end">
<object type="image/svg+xml" data="/skyline.svg" style="width:100%;height:55vh"></object>
</body></html>`))
}
