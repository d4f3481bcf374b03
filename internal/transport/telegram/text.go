package telegram

import (
	"strings"

	"github.com/medialib/gallerybot/internal/domain/tier"
	"github.com/medialib/gallerybot/internal/usecase/policy"
)

// Canned replies.
const (
	replyNotChatbot     = "I'm not a chatbot!"
	replyUnknownCommand = "Unknown command. Try /help."
	replyForbidden      = "You are not allowed to use this command."
	replyNoMatch        = "Not found any images by your query."
	replyInternalError  = "Something went wrong, try again later."
	replyBanned         = "You are banned."
	replyPostNotFound   = "Post not found."
	replyNotYourPost    = "That post is not yours."
	replyNoExport       = "No file available for that post in the requested format."
	replyUsageTag       = "Usage: /tag <pattern with *>"
)

// Chunked output settings for long listings.
const (
	chunkSize   = 10
	chunkLeadIn = "Too many results, splitting the output."
	chunkEnd    = "END"
)

// helpText renders the command overview for a tier.
func helpText(t tier.Tier) string {
	if t == tier.Banned {
		return replyBanned
	}

	lines := []string{
		"Send a command with an optional tag query, e.g. /safe cat and not dog.",
		"Tags with spaces use underscores; numeric tokens are tag ids.",
		"",
		"Commands:",
	}
	for _, cmd := range []policy.Command{policy.Safe, policy.Suggestive, policy.NSFW, policy.Explicit} {
		if t.AtLeast(cmd.MinTier()) {
			lines = append(lines, "/"+cmd.Name()+" <query> — random image")
		}
	}
	lines = append(lines,
		"/tag <pattern with *> — look up tags",
		"/best <post id> — download the source file of a post",
		"/webp <post id> — download the webp encoding of a post",
	)
	return strings.Join(lines, "\n")
}

// splitCommand splits a message into a command name and its argument tail.
// A trailing @botname on the command token is dropped.
func splitCommand(text string) (name, args string, ok bool) {
	if !strings.HasPrefix(text, "/") {
		return "", "", false
	}
	token, rest, _ := strings.Cut(text, " ")
	token = strings.TrimPrefix(token, "/")
	if at := strings.IndexByte(token, '@'); at >= 0 {
		token = token[:at]
	}
	if token == "" {
		return "", "", false
	}
	return strings.ToLower(token), strings.TrimSpace(rest), true
}

// chunkLines splits lines into chunks of at most size lines.
func chunkLines(lines []string, size int) [][]string {
	var chunks [][]string
	for len(lines) > size {
		chunks = append(chunks, lines[:size])
		lines = lines[size:]
	}
	if len(lines) > 0 {
		chunks = append(chunks, lines)
	}
	return chunks
}

// spoilerFor reports whether a delivery gets the spoiler cover: above-safe
// content outside private chats.
func spoilerFor(cmd policy.Command, private bool) bool {
	return !private && cmd.MinTier().AtLeast(tier.Suggestive)
}
