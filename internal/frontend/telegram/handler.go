package telegram

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/moviedeck/moviedeck/internal/core"
	"github.com/moviedeck/moviedeck/internal/presenter"
)

const (
	unauthorizedMsg = "Sorry, you are not authorized to use this bot."
	errorMsg        = "An error occurred while processing your request. Please try again."

	callbackPrefix = "sel:" // prefix for movie selection callback data

	maxListRows    = 10 // rows shown per list message
	maxButtonLabel = 30 // max characters in inline keyboard button label

	helpMsg = "Browse movie lists:\n" +
		"/popular - popular movies\n" +
		"/top - top rated movies\n" +
		"/nowplaying - movies in theaters\n" +
		"/upcoming - upcoming releases\n" +
		"/movie <id> - details for a TMDb ID\n" +
		"/refresh - reload the current list\n\n" +
		"Tap a movie button to see its details."
)

// commandLists maps bot commands to catalog list types.
var commandLists = map[string]core.ListType{
	"popular":    core.ListPopular,
	"top":        core.ListTopRated,
	"toprated":   core.ListTopRated,
	"nowplaying": core.ListNowPlaying,
	"upcoming":   core.ListUpcoming,
}

// handleMessage processes an incoming text message.
func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	userID := msg.From.ID
	chatID := msg.Chat.ID

	b.logger.Debug("received message",
		slog.Int64("user_id", userID),
	)

	if !b.sessions.isAllowed(userID) {
		b.sendText(chatID, unauthorizedMsg)
		return
	}

	text := strings.TrimSpace(msg.Text)
	if text == "" {
		return
	}

	switch {
	case text == "/start":
		b.sendText(chatID, "Welcome to MovieDeck! "+helpMsg)
	case text == "/help":
		b.sendText(chatID, helpMsg)
	case text == "/refresh":
		b.sendMovieList(ctx, chatID, b.sessions.currentList(chatID))
	case strings.HasPrefix(text, "/movie"):
		b.handleMovieCommand(ctx, chatID, text)
	default:
		list, ok := parseListCommand(text)
		if !ok {
			b.sendText(chatID, helpMsg)
			return
		}
		b.sendMovieList(ctx, chatID, list)
	}
}

// parseListCommand resolves a command or bare list name to a list type.
func parseListCommand(text string) (core.ListType, bool) {
	name := strings.ToLower(strings.TrimPrefix(text, "/"))
	if list, ok := commandLists[name]; ok {
		return list, true
	}
	return core.ParseListType(name)
}

// handleMovieCommand handles "/movie <id>".
func (b *Bot) handleMovieCommand(ctx context.Context, chatID int64, text string) {
	arg := strings.TrimSpace(strings.TrimPrefix(text, "/movie"))
	id, err := strconv.Atoi(arg)
	if err != nil || id <= 0 {
		b.sendText(chatID, "Usage: /movie <tmdb-id>, e.g. /movie 550")
		return
	}
	b.sendMovieDetails(ctx, chatID, id)
}

// handleCallback processes inline keyboard callback queries.
func (b *Bot) handleCallback(ctx context.Context, cq *tgbotapi.CallbackQuery) {
	userID := cq.From.ID
	chatID := cq.Message.Chat.ID

	b.logger.Debug("received callback",
		slog.Int64("user_id", userID),
		slog.String("data", cq.Data),
	)

	// Acknowledge the callback immediately.
	callback := tgbotapi.NewCallback(cq.ID, "")
	b.api.Send(callback) //nolint:errcheck // best-effort ack

	if !b.sessions.isAllowed(userID) {
		return
	}

	movieID, ok := parseSelectionCallback(cq.Data)
	if !ok {
		return
	}

	b.sendMovieDetails(ctx, chatID, movieID)
}

// parseSelectionCallback extracts the movie ID from callback data like "sel:550".
func parseSelectionCallback(data string) (int, bool) {
	if !strings.HasPrefix(data, callbackPrefix) {
		return 0, false
	}
	id, err := strconv.Atoi(strings.TrimPrefix(data, callbackPrefix))
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// sendMovieList fetches a catalog list and sends it with a selection keyboard.
func (b *Bot) sendMovieList(ctx context.Context, chatID int64, list core.ListType) {
	typing := tgbotapi.NewChatAction(chatID, tgbotapi.ChatTyping)
	b.api.Send(typing) //nolint:errcheck // best-effort typing indicator

	movies, err := b.catalog.MovieList(ctx, list)
	if err != nil {
		b.logger.Error("movie list fetch failed",
			slog.String("list", string(list)),
			slog.String("error", err.Error()),
		)
		b.sendText(chatID, errorMsg)
		return
	}

	rows := presenter.BuildMovieRows(movies, b.imageConfig())
	if len(rows) > maxListRows {
		rows = rows[:maxListRows]
	}
	if len(rows) == 0 {
		b.sendText(chatID, "No movies found in this list right now.")
		return
	}

	b.sessions.rememberList(chatID, list)

	msg := tgbotapi.NewMessage(chatID, FormatMovieList(list, rows))
	msg.ParseMode = tgbotapi.ModeMarkdownV2
	msg.ReplyMarkup = buildSelectionKeyboard(rows)
	if _, err := b.api.Send(msg); err != nil {
		b.logger.Warn("failed to send markdown, retrying plain",
			slog.String("error", err.Error()),
		)
		b.sendText(chatID, plainMovieList(list, rows))
	}
}

// sendMovieDetails fetches details for a movie and sends them, poster first.
func (b *Bot) sendMovieDetails(ctx context.Context, chatID int64, movieID int) {
	typing := tgbotapi.NewChatAction(chatID, tgbotapi.ChatTyping)
	b.api.Send(typing) //nolint:errcheck

	details, err := b.details.MovieDetails(ctx, movieID)
	if err != nil {
		b.logger.Error("movie details fetch failed",
			slog.Int("movie_id", movieID),
			slog.String("error", err.Error()),
		)
		b.sendText(chatID, errorMsg)
		return
	}

	rows := presenter.BuildDetailRows(details, b.imageConfig())

	for _, row := range rows {
		if row.Kind == presenter.RowKindImage {
			b.sendPoster(chatID, row.ImageURL, details.Title)
			break
		}
	}

	msg := tgbotapi.NewMessage(chatID, FormatMovieDetails(details.Title, rows))
	msg.ParseMode = tgbotapi.ModeMarkdownV2
	if _, err := b.api.Send(msg); err != nil {
		b.logger.Warn("failed to send markdown, retrying plain",
			slog.String("error", err.Error()),
		)
		b.sendText(chatID, plainMovieDetails(details.Title, rows))
	}
}

// buildSelectionKeyboard builds one button per list row, callback data
// carrying the movie ID.
func buildSelectionKeyboard(rows []presenter.MovieRow) *tgbotapi.InlineKeyboardMarkup {
	var kbRows [][]tgbotapi.InlineKeyboardButton
	for i, row := range rows {
		label := row.Title
		if len(label) > maxButtonLabel {
			label = label[:maxButtonLabel] + "…"
		}
		btn := tgbotapi.NewInlineKeyboardButtonData(
			fmt.Sprintf("%d. %s", i+1, label),
			callbackPrefix+strconv.Itoa(row.ID),
		)
		kbRows = append(kbRows, tgbotapi.NewInlineKeyboardRow(btn))
	}

	kb := tgbotapi.NewInlineKeyboardMarkup(kbRows...)
	return &kb
}

// sendText sends a plain text message (no parse mode).
func (b *Bot) sendText(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := b.api.Send(msg); err != nil {
		b.logger.Error("failed to send message",
			slog.Int64("chat_id", chatID),
			slog.String("error", err.Error()),
		)
	}
}

// sendPoster sends a poster photo with a caption. Telegram fetches the URL
// itself, so a broken URL degrades to a failed photo, not a failed reply.
func (b *Bot) sendPoster(chatID int64, url, caption string) {
	if url == "" || url == presenter.PlaceholderPosterURL {
		return
	}

	photo := tgbotapi.NewPhoto(chatID, tgbotapi.FileURL(url))
	photo.Caption = caption
	if _, err := b.api.Send(photo); err != nil {
		b.logger.Debug("failed to send poster",
			slog.String("url", url),
			slog.String("error", err.Error()),
		)
	}
}

// imageConfig returns the current remote image configuration or the default.
func (b *Bot) imageConfig() *core.ImageConfig {
	if cfg := b.config.Current(); cfg != nil {
		return cfg
	}
	return &presenter.DefaultImageConfig
}

// plainMovieList renders a list without MarkdownV2, used as a send fallback.
func plainMovieList(list core.ListType, rows []presenter.MovieRow) string {
	var sb strings.Builder
	sb.WriteString(ListTitle(list))
	sb.WriteString("\n\n")
	for i, row := range rows {
		sb.WriteString(fmt.Sprintf("%d. %s", i+1, row.Title))
		if row.ReleaseDate != "" {
			sb.WriteString(fmt.Sprintf(" (%s)", row.ReleaseDate))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// plainMovieDetails renders details without MarkdownV2, used as a send fallback.
func plainMovieDetails(title string, rows []presenter.DetailRow) string {
	var sb strings.Builder
	sb.WriteString(title)
	for _, row := range rows {
		switch row.Kind {
		case presenter.RowKindDescription:
			sb.WriteString("\n\n")
			sb.WriteString(row.Text)
		case presenter.RowKindTitleValue:
			sb.WriteString("\n")
			sb.WriteString(row.Title)
			sb.WriteString(": ")
			sb.WriteString(row.Value)
		}
	}
	return sb.String()
}
