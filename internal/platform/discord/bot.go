package discord

import (
	"fmt"

	"verification-gateway-backend/internal/common/logger"
	"verification-gateway-backend/internal/features/verification/models"

	"github.com/bwmarrin/discordgo"
)

// Bot owns the persistent gateway session. It is idle apart from serving as
// the delivery transport for verification reports: it exposes message sends
// into a channel and its own guild list for the mutual-server computation.
type Bot struct {
	session *discordgo.Session
}

func NewBot(token string) (*Bot, error) {
	session, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}

	// Guild state is all the bot needs; no message or presence intents.
	session.Identify.Intents = discordgo.IntentsGuilds

	session.AddHandler(func(_ *discordgo.Session, r *discordgo.Ready) {
		logger.Info().
			Str("username", r.User.Username).
			Int("guilds", len(r.Guilds)).
			Msg("Bot connected to gateway")
	})

	return &Bot{session: session}, nil
}

// Open establishes the gateway connection.
func (b *Bot) Open() error {
	if err := b.session.Open(); err != nil {
		return fmt.Errorf("open gateway: %w", err)
	}
	return nil
}

func (b *Bot) Close() error {
	return b.session.Close()
}

// Guilds returns the bot's current guild list from gateway state.
func (b *Bot) Guilds() []models.Guild {
	b.session.State.RLock()
	defer b.session.State.RUnlock()

	guilds := make([]models.Guild, 0, len(b.session.State.Guilds))
	for _, g := range b.session.State.Guilds {
		guilds = append(guilds, models.Guild{ID: g.ID, Name: g.Name})
	}
	return guilds
}

func (b *Bot) SendEmbed(channelID string, embed *discordgo.MessageEmbed) error {
	_, err := b.session.ChannelMessageSendEmbed(channelID, embed)
	return err
}

func (b *Bot) SendMessage(channelID, content string) error {
	_, err := b.session.ChannelMessageSend(channelID, content)
	return err
}
