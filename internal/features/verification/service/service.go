package service

import (
	"context"
	"fmt"

	"verification-gateway-backend/internal/common/logger"
	"verification-gateway-backend/internal/features/verification/models"
)

// OAuthClient covers the provider calls the pipeline makes: code exchange,
// profile fetch and guild-list fetch.
type OAuthClient interface {
	ExchangeCode(ctx context.Context, code string) (*models.OAuthToken, error)
	FetchProfile(ctx context.Context, token *models.OAuthToken) (*models.UserProfile, error)
	FetchGuilds(ctx context.Context, token *models.OAuthToken) ([]models.Guild, error)
}

// GeoLookup is the best-effort enrichment. It never fails; the zero GeoInfo
// is the "no data" result.
type GeoLookup interface {
	Lookup(ctx context.Context, ip string) models.GeoInfo
}

// ReportDispatcher accepts a finished report for asynchronous delivery.
// Dispatch must not block.
type ReportDispatcher interface {
	Dispatch(report *models.VerificationReport)
}

// VerificationService runs the callback pipeline: exchange the code, collect
// profile and guilds, enrich with geolocation, compute the risk label and
// hand the report off for delivery.
type VerificationService struct {
	oauth    OAuthClient
	geo      GeoLookup
	notifier ReportDispatcher
}

func NewVerificationService(oauth OAuthClient, geo GeoLookup, notifier ReportDispatcher) *VerificationService {
	return &VerificationService{
		oauth:    oauth,
		geo:      geo,
		notifier: notifier,
	}
}

// Verify processes one authorization code. Any provider failure aborts the
// request; no partial report is ever dispatched. The returned error is for
// the server log only, callers surface a generic response.
func (s *VerificationService) Verify(ctx context.Context, code, ip string) error {
	token, err := s.oauth.ExchangeCode(ctx, code)
	if err != nil {
		return fmt.Errorf("exchange code: %w", err)
	}

	profile, err := s.oauth.FetchProfile(ctx, token)
	if err != nil {
		return fmt.Errorf("fetch profile: %w", err)
	}

	guilds, err := s.oauth.FetchGuilds(ctx, token)
	if err != nil {
		return fmt.Errorf("fetch guilds: %w", err)
	}

	// Enrichment is optional; an unavailable GeoInfo degrades the report
	// but never fails the verification.
	geo := s.geo.Lookup(ctx, ip)

	report := &models.VerificationReport{
		Profile: *profile,
		Guilds:  guilds,
		IP:      ip,
		Geo:     geo,
		Risk:    EvaluateRisk(len(guilds), geo.ProxyDetected()),
	}

	logger.Info().
		Str("user_id", profile.ID).
		Str("username", profile.Username).
		Int("guilds", len(guilds)).
		Str("risk", report.Risk.String()).
		Msg("Verification assembled")

	// Fire-and-forget: the HTTP response does not wait on delivery.
	s.notifier.Dispatch(report)

	return nil
}
