package main

import (
	"net/http"
	"testing"

	test_utils "creativeflow/internal/util/testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_ConfigureTrustedProxies_WithoutProxies_IgnoresForwardedFor(t *testing.T) {
	router := createClientIPRouter(t, nil)

	resp := requestClientIP(t, router, "198.51.100.7")

	assert.Equal(t, "192.0.2.1", resp)
}

func Test_ConfigureTrustedProxies_WithTrustedPeer_HonoursForwardedFor(t *testing.T) {
	router := createClientIPRouter(t, []string{"192.0.2.0/24"})

	resp := requestClientIP(t, router, "198.51.100.7")

	assert.Equal(t, "198.51.100.7", resp)
}

func Test_ConfigureTrustedProxies_WithInvalidProxy_ReturnsError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	assert.Error(t, configureTrustedProxies(gin.New(), []string{"not-an-ip"}))
}

func createClientIPRouter(t *testing.T, proxies []string) *gin.Engine {
	t.Helper()

	gin.SetMode(gin.TestMode)
	router := gin.New()
	require.NoError(t, configureTrustedProxies(router, proxies))

	router.GET("/ip", func(ctx *gin.Context) {
		ctx.String(http.StatusOK, ctx.ClientIP())
	})

	return router
}

func requestClientIP(t *testing.T, router *gin.Engine, forwardedFor string) string {
	t.Helper()

	resp := test_utils.MakeRequest(t, router, test_utils.RequestOptions{
		Method:         http.MethodGet,
		URL:            "/ip",
		Headers:        map[string]string{"X-Forwarded-For": forwardedFor},
		ExpectedStatus: http.StatusOK,
	})

	return string(resp.Body)
}
