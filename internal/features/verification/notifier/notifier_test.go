package notifier

import (
	"fmt"
	"strings"
	"testing"

	"verification-gateway-backend/internal/features/verification/models"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChunkGuildLinesEmpty(t *testing.T) {
	chunks := ChunkGuildLines(nil)
	require.Len(t, chunks, 1)
	assert.Equal(t, "No servers found", chunks[0])
}

func TestChunkGuildLinesSingleChunk(t *testing.T) {
	guilds := []models.Guild{
		{ID: "1", Name: "Alpha"},
		{ID: "2", Name: "Beta"},
	}

	chunks := ChunkGuildLines(guilds)
	require.Len(t, chunks, 1)
	assert.Equal(t, "Alpha (1)\nBeta (2)\n", chunks[0])
}

func TestChunkGuildLinesSplitsAtLineBoundaries(t *testing.T) {
	// Enough long lines to force multiple chunks.
	name := strings.Repeat("x", 120)
	var guilds []models.Guild
	for i := 0; i < 50; i++ {
		guilds = append(guilds, models.Guild{ID: fmt.Sprintf("%d", i), Name: name})
	}

	chunks := ChunkGuildLines(guilds)
	require.Greater(t, len(chunks), 1)

	for _, chunk := range chunks {
		assert.LessOrEqual(t, len(chunk), 1900)
		// Chunks end exactly on a line boundary.
		assert.True(t, strings.HasSuffix(chunk, ")\n"))
	}

	// Concatenating all chunks reproduces the original listing.
	var want strings.Builder
	for _, g := range guilds {
		fmt.Fprintf(&want, "%s (%s)\n", g.Name, g.ID)
	}
	assert.Equal(t, want.String(), strings.Join(chunks, ""))
}

func TestMutualServers(t *testing.T) {
	botGuilds := []models.Guild{
		{ID: "1", Name: "A"},
		{ID: "2", Name: "B"},
	}
	userGuilds := []models.Guild{
		{ID: "2"},
		{ID: "3"},
	}

	assert.Equal(t, []string{"B"}, MutualServers(botGuilds, userGuilds))
}

func TestMutualServersNone(t *testing.T) {
	botGuilds := []models.Guild{{ID: "1", Name: "A"}}
	userGuilds := []models.Guild{{ID: "9"}}

	assert.Empty(t, MutualServers(botGuilds, userGuilds))
}

func TestBuildEmbed(t *testing.T) {
	report := &models.VerificationReport{
		Profile: models.UserProfile{
			ID:            "175928847299117063",
			Username:      "nelly",
			Discriminator: "1337",
			Avatar:        "8342729096ea3675442027381ff50dfe",
		},
		Guilds: []models.Guild{{ID: "2", Name: "B"}},
		IP:     "203.0.113.7",
		Geo: models.GeoInfo{
			Status:     "success",
			Country:    "Norway",
			RegionName: "Oslo",
			City:       "Oslo",
			ISP:        "Telenor",
			Proxy:      true,
		},
		Risk: models.RiskHigh,
	}
	botGuilds := []models.Guild{{ID: "2", Name: "B"}}

	embed := BuildEmbed(report, botGuilds)

	assert.Equal(t, "Member Verification", embed.Title)
	assert.Equal(t, 0xFF0000, embed.Color)
	require.NotNil(t, embed.Thumbnail)
	assert.Contains(t, embed.Thumbnail.URL, "175928847299117063")

	fields := fieldMap(embed)
	assert.Equal(t, "nelly#1337", fields["User"])
	assert.Equal(t, "175928847299117063", fields["User ID"])
	// 2016-04-30 11:18:25 UTC for this snowflake.
	assert.Equal(t, "<t:1462015105:F>", fields["Account Created"])
	assert.Equal(t, "203.0.113.7", fields["IP Address"])
	assert.Equal(t, "Oslo, Oslo, Norway", fields["Location"])
	assert.Equal(t, "Telenor", fields["ISP"])
	assert.Equal(t, "🔴 VPN/Proxy Detected", fields["Connection Type"])
	assert.Equal(t, "1", fields["Total Servers"])
	assert.Equal(t, "High", fields["Alt Risk Level"])
	assert.Equal(t, "B", fields["Mutual Servers"])
}

func TestBuildEmbedGeoUnavailable(t *testing.T) {
	report := &models.VerificationReport{
		Profile: models.UserProfile{ID: "175928847299117063", Username: "nelly", Discriminator: "1337"},
		IP:      "10.0.0.1",
		Risk:    models.RiskHigh,
	}

	embed := BuildEmbed(report, nil)

	fields := fieldMap(embed)
	assert.NotContains(t, fields, "Location")
	assert.NotContains(t, fields, "ISP")
	assert.NotContains(t, fields, "Connection Type")
	assert.NotContains(t, fields, "Mutual Servers")
	assert.Nil(t, embed.Thumbnail)
	assert.Equal(t, "0", fields["Total Servers"])
}

func fieldMap(embed *discordgo.MessageEmbed) map[string]string {
	fields := make(map[string]string, len(embed.Fields))
	for _, f := range embed.Fields {
		fields[f.Name] = f.Value
	}
	return fields
}
