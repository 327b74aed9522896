package discord

import "fmt"

// BuildAvatarURL constructs the CDN avatar URL for a user.
// Returns an empty string if the user has no avatar hash.
func BuildAvatarURL(userID, avatarHash string) string {
	if avatarHash == "" {
		return ""
	}
	return fmt.Sprintf("https://cdn.discordapp.com/avatars/%s/%s.png", userID, avatarHash)
}
