package geoip

import (
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"time"

	"verification-gateway-backend/internal/common/logger"
	"verification-gateway-backend/internal/features/verification/models"

	"github.com/jellydator/ttlcache/v3"
)

const (
	defaultBaseURL = "http://ip-api.com/json"

	// Fixed field set requested from the service; mirrors what the report
	// formatter consumes.
	queryFields = "status,message,country,regionName,city,isp,org,as,proxy,hosting"
)

// Client looks up geolocation/ISP/proxy data for an IP address. Lookups are
// strictly best-effort: every failure mode collapses into an "unavailable"
// GeoInfo value and never into an error, so enrichment can never fail a
// verification.
type Client struct {
	httpClient *http.Client
	baseURL    string
	cache      *ttlcache.Cache[string, models.GeoInfo]
}

func NewClient(cacheTTL time.Duration) *Client {
	cache := ttlcache.New(
		ttlcache.WithTTL[string, models.GeoInfo](cacheTTL),
		ttlcache.WithDisableTouchOnHit[string, models.GeoInfo](),
	)
	go cache.Start()

	return &Client{
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		baseURL: defaultBaseURL,
		cache:   cache,
	}
}

// Lookup resolves ip to geolocation data. The zero GeoInfo (Available() ==
// false) is the first-class "no data" result.
func (c *Client) Lookup(ctx context.Context, ip string) models.GeoInfo {
	if !publiclyRoutable(ip) {
		return models.GeoInfo{}
	}

	if item := c.cache.Get(ip); item != nil {
		return item.Value()
	}

	info := c.fetch(ctx, ip)
	if info.Available() {
		c.cache.Set(ip, info, ttlcache.DefaultTTL)
	}
	return info
}

func (c *Client) fetch(ctx context.Context, ip string) models.GeoInfo {
	endpoint := c.baseURL + "/" + ip + "?fields=" + queryFields

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		logger.Warn().Err(err).Str("ip", ip).Msg("GeoIP request build failed")
		return models.GeoInfo{}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		logger.Warn().Err(err).Str("ip", ip).Msg("GeoIP lookup failed")
		return models.GeoInfo{}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		logger.Warn().Int("status", resp.StatusCode).Str("ip", ip).Msg("GeoIP lookup returned non-200")
		return models.GeoInfo{}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		logger.Warn().Err(err).Str("ip", ip).Msg("GeoIP response read failed")
		return models.GeoInfo{}
	}

	var info models.GeoInfo
	if err := json.Unmarshal(body, &info); err != nil {
		logger.Warn().Err(err).Str("ip", ip).Msg("GeoIP response parse failed")
		return models.GeoInfo{}
	}

	// The service reports its own failures with HTTP 200 and a status field.
	if !info.Available() {
		logger.Debug().Str("ip", ip).Str("message", info.Message).Msg("GeoIP lookup unsuccessful")
	}

	return info
}

// publiclyRoutable filters out addresses the lookup service rejects anyway.
func publiclyRoutable(ip string) bool {
	parsed := net.ParseIP(ip)
	if parsed == nil {
		return false
	}
	return !parsed.IsPrivate() && !parsed.IsLoopback() && !parsed.IsUnspecified() && !parsed.IsLinkLocalUnicast()
}
