package files

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPreviewKind(t *testing.T) {
	tests := []struct {
		mimeType string
		want     string
	}{
		{"image/png", PreviewImage},
		{"image/svg+xml", PreviewImage},
		{"video/mp4", PreviewVideo},
		{"audio/mpeg", PreviewAudio},
		{"application/pdf", PreviewPDF},
		{"text/plain", PreviewText},
		{"text/markdown", PreviewText},
		{"application/json", PreviewText},
		{"application/xml", PreviewText},
		{"application/javascript", PreviewText},
		{"application/zip", PreviewOther},
		{"application/octet-stream", PreviewOther},
		{"", PreviewOther},
		{"  IMAGE/JPEG  ", PreviewImage},
	}

	for _, tt := range tests {
		t.Run(tt.mimeType, func(t *testing.T) {
			assert.Equal(t, tt.want, PreviewKind(tt.mimeType))
		})
	}
}
