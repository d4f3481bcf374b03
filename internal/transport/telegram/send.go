package telegram

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"

	"github.com/medialib/gallerybot/internal/domain"
	"github.com/medialib/gallerybot/internal/logger"
	pickeruc "github.com/medialib/gallerybot/internal/usecase/picker"
)

// deliver sends a picked delivery: a photo with its caption, or the caption
// alone when there is no image. A photo Telegram rejects as malformed is
// retried once as plain text so the caller still gets the posting id.
func (h *Handler) deliver(ctx context.Context, b *bot.Bot, chatID int64, d pickeruc.Delivery, spoiler bool) {
	log := logger.FromContext(ctx)

	if d.Image.IsZero() {
		h.sendText(ctx, b, chatID, d.Caption)
		return
	}

	err := h.sendPhoto(ctx, b, chatID, d, spoiler)
	if errors.Is(err, domain.ErrMalformedSend) {
		log.Warn("photo rejected, falling back to text", zap.Int64("post_id", d.PostID), zap.Error(err))
		h.sendText(ctx, b, chatID, d.Caption)
		return
	}
	if err != nil {
		log.Error("send photo", zap.Int64("post_id", d.PostID), zap.Error(err))
	}
}

func (h *Handler) sendPhoto(ctx context.Context, b *bot.Bot, chatID int64, d pickeruc.Delivery, spoiler bool) error {
	var photo models.InputFile
	if d.Image.IsFile() {
		f, err := os.Open(d.Image.Path())
		if err != nil {
			return fmt.Errorf("open %s: %w", d.Image.Path(), domain.ErrMalformedSend)
		}
		defer f.Close()
		photo = &models.InputFileUpload{Filename: filepath.Base(d.Image.Path()), Data: f}
	} else {
		photo = &models.InputFileUpload{Filename: "image.webp", Data: bytes.NewReader(d.Image.Data())}
	}

	_, err := b.SendPhoto(ctx, &bot.SendPhotoParams{
		ChatID:     chatID,
		Photo:      photo,
		Caption:    d.Caption,
		HasSpoiler: spoiler,
	})
	if errors.Is(err, bot.ErrorBadRequest) {
		return fmt.Errorf("telegram rejected the photo: %w", domain.ErrMalformedSend)
	}
	if err != nil {
		return fmt.Errorf("send photo: %w", err)
	}
	return nil
}

func (h *Handler) sendDocument(ctx context.Context, b *bot.Bot, chatID int64, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	_, err = b.SendDocument(ctx, &bot.SendDocumentParams{
		ChatID:   chatID,
		Document: &models.InputFileUpload{Filename: filepath.Base(path), Data: f},
	})
	if err != nil {
		return fmt.Errorf("send document: %w", err)
	}
	return nil
}

func (h *Handler) sendText(ctx context.Context, b *bot.Bot, chatID int64, text string) {
	if text == "" {
		return
	}
	if _, err := b.SendMessage(ctx, &bot.SendMessageParams{ChatID: chatID, Text: text}); err != nil {
		logger.FromContext(ctx).Error("send message", zap.Error(err))
	}
}
