package format

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"cloudgallery/internal/types"
)

var sizeUnits = []string{"Б", "КБ", "МБ", "ГБ", "ТБ"}

var monthsShort = []string{
	"янв.", "февр.", "мар.", "апр.", "мая", "июн.",
	"июл.", "авг.", "сент.", "окт.", "нояб.", "дек.",
}

var monthsLong = []string{
	"января", "февраля", "марта", "апреля", "мая", "июня",
	"июля", "августа", "сентября", "октября", "ноября", "декабря",
}

// FileSize renders a byte count in the largest unit keeping the scaled value
// in [1, 1024) where possible, with at most two decimal places and trailing
// zeros trimmed. Zero is a special case: "0 Б".
func FileSize(bytes int64) string {
	if bytes <= 0 {
		return "0 Б"
	}

	i := int(math.Floor(math.Log(float64(bytes)) / math.Log(1024)))
	if i >= len(sizeUnits) {
		i = len(sizeUnits) - 1
	}

	value := float64(bytes) / math.Pow(1024, float64(i))
	rounded := math.Round(value*100) / 100

	return strconv.FormatFloat(rounded, 'f', -1, 64) + " " + sizeUnits[i]
}

// Category maps a MIME type to a display category by prefix and substring
// rules. Anything unmatched falls back to CategoryFile.
func Category(mimeType string) types.Category {
	switch {
	case strings.HasPrefix(mimeType, "image/"):
		return types.CategoryImage
	case strings.HasPrefix(mimeType, "video/"):
		return types.CategoryVideo
	case strings.HasPrefix(mimeType, "audio/"):
		return types.CategoryAudio
	case strings.Contains(mimeType, "pdf"):
		return types.CategoryPDF
	case strings.Contains(mimeType, "word"), strings.Contains(mimeType, "document"), mimeType == "text/plain":
		return types.CategoryDoc
	case strings.Contains(mimeType, "sheet"), strings.Contains(mimeType, "excel"):
		return types.CategorySheet
	case strings.Contains(mimeType, "zip"), strings.Contains(mimeType, "rar"), strings.Contains(mimeType, "archive"):
		return types.CategoryArchive
	default:
		return types.CategoryFile
	}
}

// DateTime renders a full timestamp, e.g. "2 янв. 2026 г., 15:04".
func DateTime(t time.Time) string {
	return fmt.Sprintf("%d %s %d г., %02d:%02d",
		t.Day(), monthsShort[t.Month()-1], t.Year(), t.Hour(), t.Minute())
}

// DayBucket classifies a timestamp against the current date by calendar day:
// "Сегодня", "Вчера", or a day-and-month label like "2 января". Time of day
// is ignored.
func DayBucket(t, now time.Time) string {
	if sameDay(t, now) {
		return "Сегодня"
	}
	if sameDay(t, now.AddDate(0, 0, -1)) {
		return "Вчера"
	}
	return fmt.Sprintf("%d %s", t.Day(), monthsLong[t.Month()-1])
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
