package analysis

import (
	"encoding/binary"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyzeSpeakingRate(t *testing.T) {
	transcript := "one two three four five six seven eight nine ten"
	rate := AnalyzeSpeakingRate(transcript, 4.0) // 10 words in 4 seconds

	assert.Equal(t, 10, rate.WordCount)
	assert.Equal(t, 150.0, rate.WPM)
	assert.Contains(t, rate.Calculation, "10 words")
	assert.Contains(t, rate.Benchmark, "140-160")
}

func TestAnalyzeSpeakingRate_ZeroDuration(t *testing.T) {
	rate := AnalyzeSpeakingRate("some words here", 0)
	assert.Equal(t, 0.0, rate.WPM)
}

func TestDetectPauses(t *testing.T) {
	words := []Word{
		{Word: "first", Start: 0.0, End: 0.5},
		{Word: "second", Start: 0.6, End: 1.0},  // 0.1s gap, ignored
		{Word: "third", Start: 1.5, End: 2.0},   // 0.5s gap, brief
		{Word: "fourth", Start: 3.5, End: 4.0},  // 1.5s gap, strategic
		{Word: "fifth", Start: 6.5, End: 7.0},   // 2.5s gap, long
	}

	pauses := DetectPauses(words)
	require.Len(t, pauses, 3)

	assert.Equal(t, "brief", pauses[0].Type)
	assert.Equal(t, 0.5, pauses[0].Duration)
	assert.Equal(t, "strategic", pauses[1].Type)
	assert.Equal(t, "long", pauses[2].Type)
}

func TestDetectFillerWords(t *testing.T) {
	words := []Word{
		{Word: "Um,", Start: 0.0, End: 0.3},
		{Word: "welcome", Start: 0.4, End: 0.8},
		{Word: "everyone", Start: 0.9, End: 1.4},
		{Word: "so", Start: 1.5, End: 1.7},
		{Word: "basically", Start: 1.8, End: 2.3},
		{Word: "we", Start: 2.4, End: 2.5},
		{Word: "shipped", Start: 2.6, End: 3.0},
		{Word: "it", Start: 3.1, End: 60.0},
	}

	analysis := DetectFillerWords(words)

	assert.Equal(t, 3, analysis.Count)
	assert.Equal(t, "um", analysis.Fillers[0].Word)
	assert.Equal(t, "so", analysis.Fillers[1].Word)
	assert.Equal(t, "basically", analysis.Fillers[2].Word)
	// Clip spans 1 minute, so the rate equals the count
	assert.Equal(t, 3.0, analysis.RatePerMinute)
}

func TestDetectFillerWords_Empty(t *testing.T) {
	analysis := DetectFillerWords(nil)
	assert.Equal(t, 0, analysis.Count)
	assert.Equal(t, 0.0, analysis.RatePerMinute)
}

func TestAnalyzeSentenceClarity(t *testing.T) {
	transcript := "Short one. " +
		"This sentence has exactly eleven words in it which makes it medium. " +
		"This extremely long sentence keeps going and going with clause after clause until it has well over twenty words in total for sure."

	analysis := AnalyzeSentenceClarity(transcript)
	require.Len(t, analysis, 3)

	assert.Equal(t, "concise", analysis[0].ClarityRating)
	assert.Equal(t, "ok", analysis[1].ClarityRating)
	assert.Equal(t, "long", analysis[2].ClarityRating)
}

func TestAnalyzeSentenceClarity_CapsAtTen(t *testing.T) {
	transcript := ""
	for i := 0; i < 15; i++ {
		transcript += "A sentence. "
	}

	analysis := AnalyzeSentenceClarity(transcript)
	assert.Len(t, analysis, 10)
}

func writeTestWav(t *testing.T, samples []int16) string {
	t.Helper()

	dataSize := len(samples) * 2
	buf := make([]byte, 44+dataSize)
	copy(buf[0:4], "RIFF")
	binary.LittleEndian.PutUint32(buf[4:8], uint32(36+dataSize))
	copy(buf[8:12], "WAVE")
	copy(buf[12:16], "fmt ")
	binary.LittleEndian.PutUint32(buf[16:20], 16)
	binary.LittleEndian.PutUint16(buf[20:22], 1) // PCM
	binary.LittleEndian.PutUint16(buf[22:24], 1) // mono
	binary.LittleEndian.PutUint32(buf[24:28], 16000)
	binary.LittleEndian.PutUint32(buf[28:32], 32000)
	binary.LittleEndian.PutUint16(buf[32:34], 2)
	binary.LittleEndian.PutUint16(buf[34:36], 16)
	copy(buf[36:40], "data")
	binary.LittleEndian.PutUint32(buf[40:44], uint32(dataSize))
	for i, s := range samples {
		binary.LittleEndian.PutUint16(buf[44+i*2:46+i*2], uint16(s))
	}

	path := filepath.Join(t.TempDir(), "test.wav")
	require.NoError(t, os.WriteFile(path, buf, 0o644))
	return path
}

func TestAnalyzeVocalMetrics(t *testing.T) {
	// Constant-amplitude sine wave: non-zero mean loudness, near-zero spread
	samples := make([]int16, 16000)
	for i := range samples {
		samples[i] = int16(10000 * math.Sin(2*math.Pi*220*float64(i)/16000))
	}

	m := AnalyzeVocalMetrics(writeTestWav(t, samples))

	assert.Empty(t, m.Error)
	assert.Greater(t, m.LoudnessMean, 0.0)
	assert.Less(t, m.LoudnessStability, 0.05)
}

func TestAnalyzeVocalMetrics_MissingFile(t *testing.T) {
	m := AnalyzeVocalMetrics("/nonexistent/audio.wav")
	assert.NotEmpty(t, m.Error)
	assert.Equal(t, "Unavailable", m.Benchmark)
}

func TestSampleFrames(t *testing.T) {
	frames := make([][]byte, 30)
	for i := range frames {
		frames[i] = []byte{byte(i)}
	}

	sampled := sampleFrames(frames, 10)
	assert.LessOrEqual(t, len(sampled), 10)
	assert.Equal(t, []byte{0}, sampled[0])

	few := sampleFrames(frames[:5], 10)
	assert.Len(t, few, 5)
}
