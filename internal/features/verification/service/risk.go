package service

import "verification-gateway-backend/internal/features/verification/models"

// Guild-count thresholds for the alt-account heuristic: accounts in very few
// guilds look freshly created.
const (
	mediumRiskGuildCount = 5
	lowRiskGuildCount    = 15
)

// EvaluateRisk maps guild count and proxy detection to a risk label. The
// count sets the base level; a detected proxy escalates Low to Medium and
// nothing else. Ordering matters: escalation is applied after the count,
// one step at most, never a downgrade.
func EvaluateRisk(guildCount int, proxyDetected bool) models.Risk {
	risk := models.RiskHigh
	switch {
	case guildCount >= lowRiskGuildCount:
		risk = models.RiskLow
	case guildCount >= mediumRiskGuildCount:
		risk = models.RiskMedium
	}

	if proxyDetected && risk == models.RiskLow {
		risk = models.RiskMedium
	}

	return risk
}
