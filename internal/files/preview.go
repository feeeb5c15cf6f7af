package files

import (
	"strings"
)

// Preview kinds understood by clients
const (
	PreviewImage = "image"
	PreviewVideo = "video"
	PreviewAudio = "audio"
	PreviewPDF   = "pdf"
	PreviewText  = "text"
	PreviewOther = "other"
)

// PreviewKind maps a MIME type to the preview renderer a client should use
func PreviewKind(mimeType string) string {
	mimeType = strings.ToLower(strings.TrimSpace(mimeType))
	if mimeType == "" {
		return PreviewOther
	}

	switch {
	case strings.HasPrefix(mimeType, "image/"):
		return PreviewImage
	case strings.HasPrefix(mimeType, "video/"):
		return PreviewVideo
	case strings.HasPrefix(mimeType, "audio/"):
		return PreviewAudio
	case mimeType == "application/pdf":
		return PreviewPDF
	case strings.HasPrefix(mimeType, "text/"),
		mimeType == "application/json",
		mimeType == "application/xml",
		mimeType == "application/javascript":
		return PreviewText
	default:
		return PreviewOther
	}
}
