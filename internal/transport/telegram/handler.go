// Package telegram adapts the pipeline to the Telegram Bot API. Every
// update is one unit of work; the handler registers the caller, routes the
// command, and reports the outcome back into the chat.
package telegram

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"

	"github.com/medialib/gallerybot/internal/domain"
	"github.com/medialib/gallerybot/internal/domain/tier"
	"github.com/medialib/gallerybot/internal/logger"
	"github.com/medialib/gallerybot/internal/metrics"
	identityuc "github.com/medialib/gallerybot/internal/usecase/identity"
	pickeruc "github.com/medialib/gallerybot/internal/usecase/picker"
	"github.com/medialib/gallerybot/internal/usecase/policy"
	taginfouc "github.com/medialib/gallerybot/internal/usecase/taginfo"
	uploaderuc "github.com/medialib/gallerybot/internal/usecase/uploader"
)

// contentCommands maps command names to their rating policies.
var contentCommands = map[string]policy.Command{
	policy.Safe.Name():       policy.Safe,
	policy.Suggestive.Name(): policy.Suggestive,
	policy.NSFW.Name():       policy.NSFW,
	policy.Explicit.Name():   policy.Explicit,
}

// Handler routes Telegram updates into the usecases.
type Handler struct {
	sessions *identityuc.Service
	picker   *pickeruc.Service
	tags     *taginfouc.Service
	uploads  *uploaderuc.Service
	logger   *zap.Logger
}

// NewHandler creates an update handler.
func NewHandler(
	sessions *identityuc.Service,
	picker *pickeruc.Service,
	tags *taginfouc.Service,
	uploads *uploaderuc.Service,
	log *zap.Logger,
) *Handler {
	return &Handler{sessions: sessions, picker: picker, tags: tags, uploads: uploads, logger: log}
}

// NewBot creates the Telegram bot with the handler receiving every update.
func NewBot(token string, h *Handler) (*bot.Bot, error) {
	b, err := bot.New(token, bot.WithDefaultHandler(h.Handle))
	if err != nil {
		return nil, fmt.Errorf("create bot: %w", err)
	}
	return b, nil
}

// Handle processes one update.
func (h *Handler) Handle(ctx context.Context, b *bot.Bot, update *models.Update) {
	msg := update.Message
	if msg == nil || msg.From == nil {
		return
	}

	log := h.logger.With(zap.Int64("chat_id", msg.Chat.ID), zap.Int64("user_id", msg.From.ID))
	ctx = logger.ContextWithLogger(ctx, log)

	private := msg.Chat.Type == "private"
	sess, err := h.sessions.Begin(ctx, msg.From.ID, msg.From.Username, msg.Chat.ID, msg.Chat.Title, private)
	if err != nil {
		log.Error("register caller", zap.Error(err))
		h.sendText(ctx, b, msg.Chat.ID, replyInternalError)
		return
	}

	name, args, isCommand := splitCommand(msg.Text)
	if !isCommand {
		h.sendText(ctx, b, msg.Chat.ID, replyNotChatbot)
		return
	}

	log = log.With(zap.String("command", name))
	ctx = logger.ContextWithLogger(ctx, log)

	switch name {
	case "start", "help":
		h.sendText(ctx, b, msg.Chat.ID, helpText(sess.EffectiveTier()))
	case "tag":
		h.handleTag(ctx, b, msg.Chat.ID, sess.EffectiveTier(), args)
	case "best", "webp":
		h.handleUpload(ctx, b, msg.Chat.ID, sess.User, name, args)
	default:
		cmd, known := contentCommands[name]
		if !known {
			h.sendText(ctx, b, msg.Chat.ID, replyUnknownCommand)
			return
		}
		h.handleContent(ctx, b, msg.Chat.ID, sess, cmd, args, private)
	}
}

func (h *Handler) handleContent(
	ctx context.Context, b *bot.Bot, chatID int64,
	sess identityuc.Session, cmd policy.Command, args string, private bool,
) {
	log := logger.FromContext(ctx)

	d, err := h.picker.Pick(ctx, cmd, sess.EffectiveTier(), sess.User.ID, args)
	switch {
	case errors.Is(err, domain.ErrForbidden):
		metrics.CommandProcessed(cmd.Name(), metrics.OutcomeForbidden)
		h.sendText(ctx, b, chatID, replyForbidden)
	case errors.Is(err, domain.ErrNoMatch):
		metrics.CommandProcessed(cmd.Name(), metrics.OutcomeNoMatch)
		h.sendText(ctx, b, chatID, replyNoMatch)
	case err != nil:
		metrics.CommandProcessed(cmd.Name(), metrics.OutcomeError)
		log.Error("pick content", zap.Error(err))
		h.sendText(ctx, b, chatID, replyInternalError)
	default:
		metrics.CommandProcessed(cmd.Name(), metrics.OutcomeOK)
		h.deliver(ctx, b, chatID, d, spoilerFor(cmd, private))
	}
}

func (h *Handler) handleTag(ctx context.Context, b *bot.Bot, chatID int64, caller tier.Tier, args string) {
	if args == "" {
		h.sendText(ctx, b, chatID, replyUsageTag)
		return
	}

	lines, err := h.tags.Lookup(ctx, caller, args)
	if errors.Is(err, domain.ErrForbidden) {
		h.sendText(ctx, b, chatID, replyForbidden)
		return
	}
	if err != nil {
		logger.FromContext(ctx).Error("tag lookup", zap.Error(err))
		h.sendText(ctx, b, chatID, replyInternalError)
		return
	}

	if len(lines) <= chunkSize {
		h.sendText(ctx, b, chatID, strings.Join(lines, "\n"))
		return
	}
	h.sendText(ctx, b, chatID, chunkLeadIn)
	for _, chunk := range chunkLines(lines, chunkSize) {
		h.sendText(ctx, b, chatID, strings.Join(chunk, "\n"))
	}
	h.sendText(ctx, b, chatID, chunkEnd)
}

func (h *Handler) handleUpload(ctx context.Context, b *bot.Bot, chatID int64, user domain.User, name, args string) {
	log := logger.FromContext(ctx)

	postID, err := strconv.ParseInt(args, 10, 64)
	if err != nil {
		h.sendText(ctx, b, chatID, fmt.Sprintf("Usage: /%s <post id>", name))
		return
	}

	// Uploads go by the user's own tier even in group chats: the post was
	// delivered to the user, not to the chat.
	var path string
	if name == "best" {
		path, err = h.uploads.Best(ctx, user.Tier, user.ID, postID)
	} else {
		path, err = h.uploads.WebP(ctx, user.Tier, user.ID, postID)
	}

	switch {
	case errors.Is(err, domain.ErrForbidden):
		h.sendText(ctx, b, chatID, replyForbidden)
	case errors.Is(err, domain.ErrPostNotFound):
		h.sendText(ctx, b, chatID, replyPostNotFound)
	case errors.Is(err, domain.ErrNotYourPost):
		h.sendText(ctx, b, chatID, replyNotYourPost)
	case errors.Is(err, domain.ErrUnsupportedFormat), errors.Is(err, domain.ErrNotFound):
		h.sendText(ctx, b, chatID, replyNoExport)
	case err != nil:
		log.Error("resolve upload", zap.Error(err))
		h.sendText(ctx, b, chatID, replyInternalError)
	default:
		if err := h.sendDocument(ctx, b, chatID, path); err != nil {
			log.Error("send document", zap.String("path", path), zap.Error(err))
			h.sendText(ctx, b, chatID, replyInternalError)
		}
	}
}
