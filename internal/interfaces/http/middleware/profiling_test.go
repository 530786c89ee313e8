package middleware

import (
	"net/http"
	"runtime/pprof"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfiling_LabelsRequestContext(t *testing.T) {
	got := map[string]string{}
	router := gin.New()
	router.Use(Profiling(ProfilingConfig{Enabled: true, SkipPaths: []string{"/health"}}))
	router.GET("/api/accounts-payable/:id", func(c *gin.Context) {
		pprof.ForLabels(c.Request.Context(), func(k, v string) bool {
			got[k] = v
			return true
		})
		c.Status(http.StatusOK)
	})

	w := request(router, http.MethodGet, "/api/accounts-payable/7f1c", "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, map[string]string{
		"route":    "/api/accounts-payable/:id",
		"method":   http.MethodGet,
		"resource": "accounts-payable",
	}, got)
}

func TestProfiling_SkippedAndDisabled(t *testing.T) {
	for name, cfg := range map[string]ProfilingConfig{
		"skipped":  {Enabled: true, SkipPaths: []string{"/health"}},
		"disabled": {},
	} {
		t.Run(name, func(t *testing.T) {
			labelled := false
			router := gin.New()
			router.Use(Profiling(cfg))
			router.GET("/health", func(c *gin.Context) {
				pprof.ForLabels(c.Request.Context(), func(string, string) bool {
					labelled = true
					return false
				})
				c.Status(http.StatusOK)
			})

			assert.Equal(t, http.StatusOK, request(router, http.MethodGet, "/health", "").Code)
			assert.False(t, labelled)
		})
	}
}
