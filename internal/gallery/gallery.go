package gallery

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"cloudgallery/internal/format"
	"cloudgallery/internal/types"
	"cloudgallery/internal/uploader"
)

// Group is one day bucket of the gallery, in first-appearance order.
type Group struct {
	Label string
	Items []types.Media
}

// GroupByDay buckets media by calendar day relative to now. Bucket order
// follows first appearance in the input; items keep their relative order
// within a bucket.
func GroupByDay(medias []types.Media, now time.Time) []Group {
	var groups []Group
	index := make(map[string]int)

	for _, media := range medias {
		label := format.DayBucket(media.CreatedAt, now)
		i, ok := index[label]
		if !ok {
			i = len(groups)
			index[label] = i
			groups = append(groups, Group{Label: label})
		}
		groups[i].Items = append(groups[i].Items, media)
	}

	return groups
}

// Split separates photo/video records, which go into the day-grouped
// gallery, from everything else, which renders as a flat file list.
func Split(medias []types.Media) (mediaItems, fileItems []types.Media) {
	for _, m := range medias {
		if strings.HasPrefix(m.MimeType, "image/") || strings.HasPrefix(m.MimeType, "video/") {
			mediaItems = append(mediaItems, m)
		} else {
			fileItems = append(fileItems, m)
		}
	}
	return mediaItems, fileItems
}

// Render writes the full gallery view: day-grouped photos and videos first,
// then the remaining files under their own section.
func Render(w io.Writer, medias []types.Media, now time.Time) {
	if len(medias) == 0 {
		fmt.Fprintln(w, "Нет файлов")
		fmt.Fprintln(w, "Загрузите фото, видео или документы")
		return
	}

	mediaItems, fileItems := Split(medias)

	for _, group := range GroupByDay(mediaItems, now) {
		fmt.Fprintln(w, strings.ToUpper(group.Label))
		writeRows(w, group.Items)
		fmt.Fprintln(w)
	}

	if len(fileItems) > 0 {
		fmt.Fprintln(w, "ФАЙЛЫ")
		writeRows(w, fileItems)
	}
}

func writeRows(w io.Writer, medias []types.Media) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, m := range medias {
		fmt.Fprintf(tw, "  %s\t%s\t[%s]\t%s\t%s\n",
			m.ID,
			m.Filename,
			format.Category(m.MimeType),
			format.FileSize(m.Size),
			format.DateTime(m.CreatedAt))
	}
	tw.Flush()
}

// RenderQueue writes the upload tray: one line per queue item with its
// status, size or error text, and progress.
func RenderQueue(w io.Writer, items []uploader.Item) {
	for _, item := range items {
		detail := format.FileSize(item.Source.Size)
		if item.Error != "" {
			detail = item.Error
		}
		fmt.Fprintf(w, "%s %s (%s) %d%%\n", statusMarker(item.Status), item.Source.Name, detail, item.Progress)
	}
}

func statusMarker(status uploader.Status) string {
	switch status {
	case uploader.StatusDone:
		return "[ok]"
	case uploader.StatusError:
		return "[!!]"
	case uploader.StatusUploading:
		return "[..]"
	default:
		return "[  ]"
	}
}
