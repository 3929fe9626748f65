package analysis

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

// FFmpeg wraps the ffmpeg and ffprobe binaries for audio extraction and
// frame sampling.
type FFmpeg struct {
	ffmpegPath  string
	ffprobePath string
}

// NewFFmpeg creates a new FFmpeg instance
func NewFFmpeg(ffmpegPath, ffprobePath string) *FFmpeg {
	return &FFmpeg{
		ffmpegPath:  ffmpegPath,
		ffprobePath: ffprobePath,
	}
}

type probeOutput struct {
	Format struct {
		FormatName string `json:"format_name"`
		Duration   string `json:"duration"`
	} `json:"format"`
}

// DetectFormat returns the container format name reported by ffprobe
func (f *FFmpeg) DetectFormat(ctx context.Context, inputPath string) (string, error) {
	args := []string{
		"-v", "quiet",
		"-print_format", "json",
		"-show_format",
		inputPath,
	}

	cmd := exec.CommandContext(ctx, f.ffprobePath, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("ffprobe failed: %w, stderr: %s", err, stderr.String())
	}

	var probe probeOutput
	if err := json.Unmarshal(stdout.Bytes(), &probe); err != nil {
		return "", fmt.Errorf("failed to parse ffprobe output: %w", err)
	}

	return probe.Format.FormatName, nil
}

// ProbeDuration returns the media duration in seconds
func (f *FFmpeg) ProbeDuration(ctx context.Context, inputPath string) (float64, error) {
	args := []string{
		"-v", "quiet",
		"-print_format", "json",
		"-show_format",
		inputPath,
	}

	cmd := exec.CommandContext(ctx, f.ffprobePath, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return 0, fmt.Errorf("ffprobe failed: %w, stderr: %s", err, stderr.String())
	}

	var probe probeOutput
	if err := json.Unmarshal(stdout.Bytes(), &probe); err != nil {
		return 0, fmt.Errorf("failed to parse ffprobe output: %w", err)
	}

	duration, err := strconv.ParseFloat(probe.Format.Duration, 64)
	if err != nil {
		return 0, fmt.Errorf("failed to parse duration %q: %w", probe.Format.Duration, err)
	}

	return duration, nil
}

// ExtractAudio extracts mono 16kHz PCM audio to a wav file next to the
// input. Browser recordings arrive in a mix of containers, so the primary
// command sniffs the container first and a fallback ladder handles files
// the straightforward invocation cannot read.
func (f *FFmpeg) ExtractAudio(ctx context.Context, videoPath string) (string, error) {
	audioPath := strings.TrimSuffix(videoPath, filepath.Ext(videoPath)) + ".wav"

	var args []string
	if format, err := f.DetectFormat(ctx, videoPath); err == nil {
		if strings.Contains(format, "webm") || strings.Contains(format, "matroska") {
			args = append(args, "-f", "webm")
		}
	}
	args = append(args,
		"-i", videoPath,
		"-vn",
		"-acodec", "pcm_s16le",
		"-ar", "16000",
		"-ac", "1",
		"-y",
		audioPath,
	)

	cmd := exec.CommandContext(ctx, f.ffmpegPath, args...)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err == nil {
		if info, statErr := os.Stat(audioPath); statErr == nil && info.Size() >= 1000 {
			return audioPath, nil
		}
	}

	if path, err := f.extractAudioFallback(ctx, videoPath, audioPath); err == nil {
		return path, nil
	}

	return "", fmt.Errorf("audio extraction failed: %s", stderr.String())
}

// extractAudioFallback retries extraction with progressively more
// permissive ffmpeg invocations.
func (f *FFmpeg) extractAudioFallback(ctx context.Context, videoPath, audioPath string) (string, error) {
	attempts := [][]string{
		{"-f", "webm", "-i", videoPath,
			"-vn", "-acodec", "pcm_s16le", "-ar", "16000", "-ac", "1", "-y", audioPath},
		{"-f", "lavfi", "-i", fmt.Sprintf("amovie=%s", videoPath),
			"-ar", "16000", "-ac", "1", "-y", audioPath},
		{"-err_detect", "ignore_err", "-i", videoPath,
			"-vn", "-acodec", "pcm_s16le", "-ar", "16000", "-ac", "1", "-y", audioPath},
	}

	for _, args := range attempts {
		cmd := exec.CommandContext(ctx, f.ffmpegPath, args...)
		if err := cmd.Run(); err != nil {
			continue
		}
		if info, err := os.Stat(audioPath); err == nil && info.Size() >= 1000 {
			return audioPath, nil
		}
	}

	return "", fmt.Errorf("all fallback extraction attempts failed")
}

// ExtractFrames samples frames at the given rate as JPEGs and returns
// their raw bytes, capped at maxFrames.
func (f *FFmpeg) ExtractFrames(ctx context.Context, videoPath string, fps, maxFrames int) ([][]byte, error) {
	if fps <= 0 {
		fps = 2
	}
	if maxFrames <= 0 {
		maxFrames = 60
	}

	frameDir, err := os.MkdirTemp(filepath.Dir(videoPath), "frames-")
	if err != nil {
		return nil, fmt.Errorf("failed to create frame dir: %w", err)
	}
	defer os.RemoveAll(frameDir)

	args := []string{
		"-i", videoPath,
		"-vf", fmt.Sprintf("fps=%d", fps),
		"-vframes", strconv.Itoa(maxFrames),
		"-q:v", "5",
		"-y",
		filepath.Join(frameDir, "frame_%04d.jpg"),
	}

	cmd := exec.CommandContext(ctx, f.ffmpegPath, args...)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("frame extraction failed: %w, stderr: %s", err, stderr.String())
	}

	entries, err := os.ReadDir(frameDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read frame dir: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if strings.HasSuffix(entry.Name(), ".jpg") {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)

	frames := make([][]byte, 0, len(names))
	for _, name := range names {
		data, err := os.ReadFile(filepath.Join(frameDir, name))
		if err != nil {
			return nil, fmt.Errorf("failed to read frame: %w", err)
		}
		frames = append(frames, data)
	}

	return frames, nil
}
