package storage

import (
	"testing"
)

func TestGetContentType(t *testing.T) {
	tests := []struct {
		filePath string
		wantType string
	}{
		{"video.mp4", "video/mp4"},
		{"video.mov", "video/quicktime"},
		{"video.avi", "video/x-msvideo"},
		{"video.mkv", "video/x-matroska"},
		{"recording.webm", "video/webm"},
		{"audio.wav", "audio/wav"},
		{"frame.jpg", "image/jpeg"},
		{"frame.jpeg", "image/jpeg"},
		{"unknown.xyz", "application/octet-stream"},
	}

	for _, tt := range tests {
		t.Run(tt.filePath, func(t *testing.T) {
			contentType := getContentType(tt.filePath)
			if contentType != tt.wantType {
				t.Errorf("getContentType(%q) = %q, want %q", tt.filePath, contentType, tt.wantType)
			}
		})
	}
}

func TestVideoKey(t *testing.T) {
	key := VideoKey("video_abc123", "pitch.webm")
	want := "videos/video_abc123/original/pitch.webm"
	if key != want {
		t.Errorf("VideoKey() = %q, want %q", key, want)
	}
}
