package session

import "github.com/finnbear/moderation"

// Moderate censors a chat message's inappropriate spans before it is
// rebroadcast, mirroring the teacher's ChatHistory.Update use of
// finnbear/moderation (server/chat_history.go) minus the per-connection
// escalating-mute bookkeeping, which this arena's simpler chat model (no
// persistent accounts) has no banner-history to hang off of.
func Moderate(message string) string {
	result := moderation.Scan(message)
	if result.Is(moderation.Inappropriate) {
		censored, _ := moderation.Censor(message, moderation.Inappropriate)
		return censored
	}
	return message
}
