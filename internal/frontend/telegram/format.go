package telegram

import (
	"fmt"
	"strings"

	"github.com/moviedeck/moviedeck/internal/core"
	"github.com/moviedeck/moviedeck/internal/presenter"
)

// mdV2Replacer escapes special characters for Telegram MarkdownV2.
var mdV2Replacer = strings.NewReplacer(
	`\`, `\\`,
	"_", "\\_",
	"*", "\\*",
	"[", "\\[",
	"]", "\\]",
	"(", "\\(",
	")", "\\)",
	"~", "\\~",
	"`", "\\`",
	">", "\\>",
	"#", "\\#",
	"+", "\\+",
	"-", "\\-",
	"=", "\\=",
	"|", "\\|",
	"{", "\\{",
	"}", "\\}",
	".", "\\.",
	"!", "\\!",
)

// EscapeMdV2 escapes a string for safe use in Telegram MarkdownV2.
func EscapeMdV2(s string) string {
	return mdV2Replacer.Replace(s)
}

// FormatBold returns MarkdownV2 bold text.
func FormatBold(s string) string {
	return "*" + EscapeMdV2(s) + "*"
}

// FormatItalic returns MarkdownV2 italic text.
func FormatItalic(s string) string {
	return "_" + EscapeMdV2(s) + "_"
}

// listTitles maps list types to user-facing headings.
var listTitles = map[core.ListType]string{
	core.ListPopular:    "Popular Movies",
	core.ListTopRated:   "Top Rated Movies",
	core.ListNowPlaying: "Now Playing",
	core.ListUpcoming:   "Upcoming Movies",
}

// ListTitle returns the display heading for a list type.
func ListTitle(list core.ListType) string {
	if title, ok := listTitles[list]; ok {
		return title
	}
	return string(list)
}

// FormatMovieList renders list rows as a numbered MarkdownV2 message.
func FormatMovieList(list core.ListType, rows []presenter.MovieRow) string {
	var sb strings.Builder
	sb.WriteString(FormatBold(ListTitle(list)))
	sb.WriteString("\n\n")
	for i, row := range rows {
		line := fmt.Sprintf("%d. %s", i+1, row.Title)
		if row.ReleaseDate != "" {
			line += fmt.Sprintf(" (%s)", row.ReleaseDate)
		}
		sb.WriteString(EscapeMdV2(line))
		sb.WriteString("\n")
	}
	return sb.String()
}

// FormatMovieDetails renders detail rows as a MarkdownV2 message. Image rows
// are skipped; posters are delivered separately as photos.
func FormatMovieDetails(title string, rows []presenter.DetailRow) string {
	var sb strings.Builder
	sb.WriteString(FormatBold(title))
	for _, row := range rows {
		switch row.Kind {
		case presenter.RowKindDescription:
			sb.WriteString("\n\n")
			sb.WriteString(EscapeMdV2(row.Text))
		case presenter.RowKindTitleValue:
			sb.WriteString("\n\n")
			sb.WriteString(FormatBold(row.Title + ":"))
			sb.WriteString(" ")
			sb.WriteString(EscapeMdV2(row.Value))
		}
	}
	return sb.String()
}
