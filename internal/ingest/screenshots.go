package ingest

import (
	"errors"
	"flowweb/internal/domain/content"
	"fmt"
	"strings"
)

var (
	ErrIncompleteRecord = errors.New("incomplete screenshot record")
	ErrDuplicateField   = errors.New("field set twice in one screenshot record")
)

type screenshotRecord struct {
	title, imageMin, imageBig, url string
}

func (r *screenshotRecord) set(key, value string) error {
	var field *string
	switch key {
	case "title":
		field = &r.title
	case "image_min":
		field = &r.imageMin
	case "image_big":
		field = &r.imageBig
	case "url":
		field = &r.url
	default:
		return nil
	}
	if *field != "" {
		return ErrDuplicateField
	}
	*field = value
	return nil
}

func (r screenshotRecord) empty() bool {
	return r == screenshotRecord{}
}

// ParseScreenshots reads one screenshot description file. The gallery
// header (screenshots_title, screenshots_url) holds until it is set again
// and does not carry over to other files. A record is emitted as soon as
// its four fields and both header fields are non-empty, whatever the line
// order.
func ParseScreenshots(path string, raw []byte) ([]content.Screenshot, error) {
	var (
		out         []content.Screenshot
		galleryName string
		galleryURL  string
		rec         screenshotRecord
	)
	for i, line := range SplitLines(raw) {
		if line == "" {
			continue
		}
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			return nil, fmt.Errorf("parse %s: line %d %q: %w", path, i+1, line, ErrMalformedLine)
		}
		value = strings.TrimSpace(value)
		switch key {
		case "screenshots_title":
			galleryName = value
		case "screenshots_url":
			galleryURL = value
		default:
			if err := rec.set(key, value); err != nil {
				return nil, fmt.Errorf("parse %s: line %d %q: %w", path, i+1, key, err)
			}
		}

		if rec.title != "" && rec.imageMin != "" && rec.imageBig != "" && rec.url != "" &&
			galleryName != "" && galleryURL != "" {
			out = append(out, content.Screenshot{
				Title:         rec.title,
				ThumbnailPath: rec.imageMin,
				ImagePath:     rec.imageBig,
				URL:           rec.url,
				GalleryName:   galleryName,
				GalleryURL:    galleryURL,
			})
			rec = screenshotRecord{}
		}
	}
	if !rec.empty() {
		return nil, fmt.Errorf("parse %s: %w (title %q)", path, ErrIncompleteRecord, rec.title)
	}
	return out, nil
}
