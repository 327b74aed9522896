package notifier

import (
	"fmt"
	"strconv"
	"strings"

	"verification-gateway-backend/internal/common/logger"
	"verification-gateway-backend/internal/features/verification/models"
	discordutil "verification-gateway-backend/internal/utils/discord"

	"github.com/bwmarrin/discordgo"
)

// Plain-text guild listings stay below the platform's 2000-character message
// ceiling with headroom for the code-block markers.
const maxChunkLen = 1900

const noServersMarker = "No servers found"

// Transport is the slice of the bot connection the notifier needs: message
// sends into a channel and the bot's own guild list.
type Transport interface {
	SendEmbed(channelID string, embed *discordgo.MessageEmbed) error
	SendMessage(channelID, content string) error
	Guilds() []models.Guild
}

// Enqueuer schedules a delivery task onto the loop owning the bot session
// without blocking the caller.
type Enqueuer interface {
	Enqueue(task func()) bool
}

// Notifier formats verification reports and delivers them to the fixed
// moderation channel. Delivery failures are logged and dropped; nothing here
// may surface into the HTTP caller.
type Notifier struct {
	transport Transport
	queue     Enqueuer
	channelID string
}

func New(transport Transport, queue Enqueuer, channelID int64) *Notifier {
	return &Notifier{
		transport: transport,
		queue:     queue,
		channelID: strconv.FormatInt(channelID, 10),
	}
}

// Dispatch schedules the report for asynchronous delivery. Never blocks.
func (n *Notifier) Dispatch(report *models.VerificationReport) {
	n.queue.Enqueue(func() {
		n.deliver(report)
	})
}

func (n *Notifier) deliver(report *models.VerificationReport) {
	embed := BuildEmbed(report, n.transport.Guilds())
	if err := n.transport.SendEmbed(n.channelID, embed); err != nil {
		logger.Error().Err(err).Str("channel_id", n.channelID).Msg("Failed to deliver verification embed")
		return
	}

	for _, chunk := range ChunkGuildLines(report.Guilds) {
		if err := n.transport.SendMessage(n.channelID, "```"+chunk+"```"); err != nil {
			logger.Error().Err(err).Str("channel_id", n.channelID).Msg("Failed to deliver guild listing")
			return
		}
	}

	logger.Info().
		Str("user_id", report.Profile.ID).
		Str("risk", report.Risk.String()).
		Msg("Verification report delivered")
}

// BuildEmbed renders the structured report message: accent color keyed to
// the risk level, avatar thumbnail when present, and one field per datum.
func BuildEmbed(report *models.VerificationReport, botGuilds []models.Guild) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title: "Member Verification",
		Color: report.Risk.Color(),
	}

	if url := discordutil.BuildAvatarURL(report.Profile.ID, report.Profile.Avatar); url != "" {
		embed.Thumbnail = &discordgo.MessageEmbedThumbnail{URL: url}
	}

	addField := func(name, value string) {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  name,
			Value: value,
		})
	}

	addField("User", report.Profile.Username+"#"+report.Profile.Discriminator)
	addField("User ID", report.Profile.ID)
	if created, err := discordutil.CreationTime(report.Profile.ID); err == nil {
		addField("Account Created", fmt.Sprintf("<t:%d:F>", created.Unix()))
	}
	addField("IP Address", report.IP)

	if report.Geo.Available() {
		addField("Location", fmt.Sprintf("%s, %s, %s",
			orUnknown(report.Geo.City), orUnknown(report.Geo.RegionName), orUnknown(report.Geo.Country)))
		addField("ISP", orUnknown(report.Geo.ISP))
		if report.Geo.ProxyDetected() {
			addField("Connection Type", "🔴 VPN/Proxy Detected")
		} else {
			addField("Connection Type", "🟢 Direct Connection")
		}
	}

	addField("Total Servers", strconv.Itoa(len(report.Guilds)))
	addField("Alt Risk Level", report.Risk.String())

	if mutual := MutualServers(botGuilds, report.Guilds); len(mutual) > 0 {
		addField("Mutual Servers", strings.Join(mutual, "\n"))
	}

	return embed
}

// MutualServers returns the names of bot guilds the verified user is also a
// member of, by string equality on guild ID.
func MutualServers(botGuilds, userGuilds []models.Guild) []string {
	userIDs := make(map[string]struct{}, len(userGuilds))
	for _, g := range userGuilds {
		userIDs[g.ID] = struct{}{}
	}

	var mutual []string
	for _, g := range botGuilds {
		if _, ok := userIDs[g.ID]; ok {
			mutual = append(mutual, g.Name)
		}
	}
	return mutual
}

// ChunkGuildLines packs "{name} ({id})" lines into blocks of at most
// maxChunkLen characters, splitting only at line boundaries. A chunk is
// flushed before a line that would push it over the limit. Zero guilds yield
// a single explicit marker block.
func ChunkGuildLines(guilds []models.Guild) []string {
	if len(guilds) == 0 {
		return []string{noServersMarker}
	}

	var chunks []string
	current := ""
	for _, g := range guilds {
		line := fmt.Sprintf("%s (%s)\n", g.Name, g.ID)
		if len(current)+len(line) > maxChunkLen {
			chunks = append(chunks, current)
			current = line
		} else {
			current += line
		}
	}
	if current != "" {
		chunks = append(chunks, current)
	}

	return chunks
}

func orUnknown(s string) string {
	if s == "" {
		return "Unknown"
	}
	return s
}
