package importer

import (
	"fmt"
	"strings"
)

// uploadPathPrefix is where bare media filenames are assumed to live
const uploadPathPrefix = "/uploads/products/"

// mediaLists extracts the Image 1..10 and Video 1..2 columns into dense,
// column-ordered URL lists. Full http(s) URLs pass through unchanged; any
// other non-blank value is treated as an uploaded filename and rewritten to
// the upload directory path. No existence check is performed.
func mediaLists(row map[string]string) (images, videos []string) {
	for i := 1; i <= 10; i++ {
		if url := normalizeMediaURL(row[fmt.Sprintf("Image %d", i)]); url != "" {
			images = append(images, url)
		}
	}
	for i := 1; i <= 2; i++ {
		if url := normalizeMediaURL(row[fmt.Sprintf("Video %d", i)]); url != "" {
			videos = append(videos, url)
		}
	}
	return images, videos
}

func normalizeMediaURL(value string) string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return ""
	}
	if strings.HasPrefix(trimmed, "http://") || strings.HasPrefix(trimmed, "https://") {
		return trimmed
	}
	return uploadPathPrefix + trimmed
}
