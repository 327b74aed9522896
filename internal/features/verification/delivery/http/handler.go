package http

import (
	"context"
	"net"
	"net/http"
	"strings"
	"time"

	"verification-gateway-backend/internal/common/logger"

	"github.com/gin-gonic/gin"
)

// Verifier runs the verification pipeline for one callback request.
type Verifier interface {
	Verify(ctx context.Context, code, ip string) error
}

type VerificationHandler struct {
	service Verifier
	authURL string
}

// NewVerificationHandler wires the landing page and OAuth callback.
// authURL is the pre-built provider authorization URL the landing page
// links to.
func NewVerificationHandler(service Verifier, authURL string) *VerificationHandler {
	return &VerificationHandler{
		service: service,
		authURL: authURL,
	}
}

func (h *VerificationHandler) RegisterRoutes(router *gin.Engine) {
	router.SetHTMLTemplate(pages)

	router.GET("/", h.landing)
	router.GET("/callback", h.callback)
	router.GET("/health", h.health)
}

func (h *VerificationHandler) landing(c *gin.Context) {
	c.HTML(http.StatusOK, "landing", gin.H{"AuthURL": h.authURL})
}

func (h *VerificationHandler) callback(c *gin.Context) {
	code := c.Query("code")
	if code == "" {
		c.String(http.StatusBadRequest, "Authorization failed")
		return
	}

	ip := requesterIP(c.Request)

	if err := h.service.Verify(c.Request.Context(), code, ip); err != nil {
		// Generic response only; no upstream detail leaks to the caller.
		logger.Error().Err(err).Str("ip", ip).Msg("Verification failed")
		c.String(http.StatusInternalServerError, "Verification failed")
		return
	}

	// Delivery is still in flight; the browser does not wait for it.
	c.HTML(http.StatusOK, "success", nil)
}

func (h *VerificationHandler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"timestamp": time.Now().UTC(),
		"service":   "verification-gateway-backend",
	})
}

// requesterIP prefers the first entry of X-Forwarded-For, falling back to
// the transport-level peer address.
func requesterIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		return strings.TrimSpace(strings.Split(fwd, ",")[0])
	}
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}
