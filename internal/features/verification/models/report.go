package models

// OAuthToken is the provider's response to the authorization-code exchange.
// It lives for the duration of a single callback request and is never stored.
type OAuthToken struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	Scope       string `json:"scope"`
	ExpiresIn   int64  `json:"expires_in"`
}

// UserProfile mirrors the provider's /users/@me payload. The ID is a numeric
// snowflake encoded as a string.
type UserProfile struct {
	ID            string `json:"id"`
	Username      string `json:"username"`
	Discriminator string `json:"discriminator"`
	Avatar        string `json:"avatar"`
}

// Guild is one entry of a user's (or the bot's) guild membership list.
type Guild struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// GeoInfo is the ip-api.com lookup result. The service reports its own
// failures with HTTP 200 and Status != "success", so callers must check
// Available before trusting the geographic fields.
type GeoInfo struct {
	Status     string `json:"status"`
	Message    string `json:"message"`
	Country    string `json:"country"`
	RegionName string `json:"regionName"`
	City       string `json:"city"`
	ISP        string `json:"isp"`
	Org        string `json:"org"`
	AS         string `json:"as"`
	Proxy      bool   `json:"proxy"`
	Hosting    bool   `json:"hosting"`
}

// Available reports whether the lookup succeeded and the geographic
// fields can be trusted.
func (g GeoInfo) Available() bool {
	return g.Status == "success"
}

// ProxyDetected reports whether the requester connected through a
// VPN/proxy or a hosting-provider address.
func (g GeoInfo) ProxyDetected() bool {
	return g.Available() && (g.Proxy || g.Hosting)
}

// Risk is the three-level alt-account risk label.
type Risk string

const (
	RiskLow    Risk = "Low"
	RiskMedium Risk = "Medium"
	RiskHigh   Risk = "High"
)

func (r Risk) String() string {
	return string(r)
}

// Color returns the embed accent color for the risk level.
func (r Risk) Color() int {
	switch r {
	case RiskLow:
		return 0x00FF00
	case RiskMedium:
		return 0xFFFF00
	default:
		return 0xFF0000
	}
}

// VerificationReport aggregates everything collected during one callback.
// It exists only for the request that produced it.
type VerificationReport struct {
	Profile UserProfile
	Guilds  []Guild
	IP      string
	Geo     GeoInfo
	Risk    Risk
}
