package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/joshuapare/propkit/internal/baseline"
	"github.com/joshuapare/propkit/pkg/detect"
	"github.com/joshuapare/propkit/propstore"
)

// open parses a fresh store for each request; the area is small and the
// parse is bounded.
func (h *handler) open() (*propstore.Store, error) {
	return propstore.Open("", h.opts.Property)
}

func errorBody(err error) gin.H {
	body := gin.H{"error": err.Error()}
	if k, ok := propstore.KindOf(err); ok {
		body["kind"] = k.String()
	}
	return body
}

func (h *handler) listProperties(c *gin.Context) {
	s, err := h.open()
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, errorBody(err))
		return
	}
	props := s.All()
	if prefix := c.Query("prefix"); prefix != "" {
		for k := range props {
			if !strings.HasPrefix(k, prefix) {
				delete(props, k)
			}
		}
	}
	c.JSON(http.StatusOK, gin.H{
		"strategy":    s.Strategy().String(),
		"fingerprint": s.Fingerprint(),
		"properties":  props,
	})
}

func (h *handler) getProperty(c *gin.Context) {
	s, err := h.open()
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, errorBody(err))
		return
	}
	key := c.Param("key")
	v, ok := s.Lookup(key)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "property not found", "key": key})
		return
	}
	c.JSON(http.StatusOK, gin.H{"key": key, "value": v})
}

func (h *handler) device(c *gin.Context) {
	s, err := h.open()
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, errorBody(err))
		return
	}
	c.JSON(http.StatusOK, s.DeviceInfo())
}

// tamper always answers 200: a store that cannot be parsed is reported as
// tampered.
func (h *handler) tamper(c *gin.Context) {
	s, err := h.open()
	body := gin.H{
		"tampered":    s.CheckForTampering(),
		"findings":    s.TamperFindings(),
		"strategy":    s.Strategy().String(),
		"fingerprint": s.Fingerprint(),
	}
	if err != nil {
		body["error"] = err.Error()
	}
	c.JSON(http.StatusOK, body)
}

func (h *handler) verdict(c *gin.Context) {
	opts := []detect.Option{detect.WithLogger(h.log)}
	if h.opts.Metrics != nil {
		opts = append(opts, detect.WithObserver(h.opts.Metrics))
	}
	v := detect.NewAggregator(h.opts.Checks, opts...).Run(c.Request.Context())
	if h.opts.Metrics != nil {
		h.opts.Metrics.RecordVerdict(v)
	}
	c.JSON(http.StatusOK, v)
}

func (h *handler) baseline(c *gin.Context) {
	if h.opts.Baseline == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "baseline store not configured"})
		return
	}
	s, err := h.open()
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, errorBody(err))
		return
	}
	snap, err := h.opts.Baseline.Latest(c.Request.Context(), s.Path())
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	rep := baseline.Compare(snap, s)
	c.JSON(http.StatusOK, gin.H{"tampered": rep.Tampered(), "report": rep})
}
