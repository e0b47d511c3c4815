package format

import (
	"testing"
	"time"

	"cloudgallery/internal/types"
)

func TestFileSize(t *testing.T) {
	cases := []struct {
		bytes int64
		want  string
	}{
		{0, "0 Б"},
		{1, "1 Б"},
		{512, "512 Б"},
		{1023, "1023 Б"},
		{1024, "1 КБ"},
		{1536, "1.5 КБ"},
		{50 * 1024 * 1024, "50 МБ"},
		{1 << 30, "1 ГБ"},
		{1 << 40, "1 ТБ"},
		{2620, "2.56 КБ"},
	}

	for _, tc := range cases {
		got := FileSize(tc.bytes)
		if got != tc.want {
			t.Errorf("FileSize(%d) = %q, want %q", tc.bytes, got, tc.want)
		}
	}
}

func TestCategory(t *testing.T) {
	cases := []struct {
		mimeType string
		want     types.Category
	}{
		{"image/png", types.CategoryImage},
		{"image/jpeg", types.CategoryImage},
		{"video/mp4", types.CategoryVideo},
		{"audio/mpeg", types.CategoryAudio},
		{"application/pdf", types.CategoryPDF},
		{"application/msword", types.CategoryDoc},
		{"application/vnd.openxmlformats-officedocument.wordprocessingml.document", types.CategoryDoc},
		{"text/plain", types.CategoryDoc},
		{"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", types.CategorySheet},
		{"application/vnd.ms-excel", types.CategorySheet},
		{"application/zip", types.CategoryArchive},
		{"application/vnd.rar", types.CategoryArchive},
		{"text/unknown-xyz", types.CategoryFile},
		{"application/octet-stream", types.CategoryFile},
	}

	for _, tc := range cases {
		got := Category(tc.mimeType)
		if got != tc.want {
			t.Errorf("Category(%q) = %q, want %q", tc.mimeType, got, tc.want)
		}
	}
}

func TestDayBucket(t *testing.T) {
	now := time.Date(2026, time.March, 15, 18, 30, 0, 0, time.UTC)

	cases := []struct {
		name string
		t    time.Time
		want string
	}{
		{"same day morning", time.Date(2026, time.March, 15, 0, 1, 0, 0, time.UTC), "Сегодня"},
		{"one calendar day earlier", time.Date(2026, time.March, 14, 23, 59, 0, 0, time.UTC), "Вчера"},
		{"two days earlier", time.Date(2026, time.March, 13, 12, 0, 0, 0, time.UTC), "13 марта"},
		{"previous year", time.Date(2025, time.December, 2, 9, 0, 0, 0, time.UTC), "2 декабря"},
	}

	for _, tc := range cases {
		got := DayBucket(tc.t, now)
		if got != tc.want {
			t.Errorf("%s: DayBucket = %q, want %q", tc.name, got, tc.want)
		}
	}
}

func TestDayBucketMonthBoundary(t *testing.T) {
	// Yesterday across a month boundary must still compare calendar dates.
	now := time.Date(2026, time.March, 1, 8, 0, 0, 0, time.UTC)
	got := DayBucket(time.Date(2026, time.February, 28, 20, 0, 0, 0, time.UTC), now)
	if got != "Вчера" {
		t.Errorf("DayBucket across month boundary = %q, want %q", got, "Вчера")
	}
}

func TestDateTime(t *testing.T) {
	got := DateTime(time.Date(2026, time.January, 2, 15, 4, 0, 0, time.UTC))
	want := "2 янв. 2026 г., 15:04"
	if got != want {
		t.Errorf("DateTime = %q, want %q", got, want)
	}
}
