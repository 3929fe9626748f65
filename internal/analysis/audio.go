package analysis

import (
	"encoding/binary"
	"fmt"
	"math"
	"os"
	"regexp"
	"strings"

	"github.com/epquotient/epq/pkg/models"
)

// Word is one transcribed word with its timestamps.
type Word struct {
	Word  string  `json:"word"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

// fillerWords are the patterns counted against delivery. Matching is per
// transcribed word, lowercased with punctuation stripped.
var fillerWords = []string{
	"um", "uh", "like", "you know", "actually",
	"basically", "literally", "so", "i mean", "right",
}

// AnalyzeSpeakingRate computes words per minute with the arithmetic
// spelled out for display.
func AnalyzeSpeakingRate(transcript string, duration float64) models.SpeakingRate {
	wordCount := len(strings.Fields(transcript))
	minutes := duration / 60.0

	var wpm float64
	if minutes > 0 {
		wpm = float64(wordCount) / minutes
	}

	return models.SpeakingRate{
		WPM:             round1(wpm),
		Calculation:     fmt.Sprintf("%d words ÷ %.2f minutes = %.0f WPM", wordCount, minutes, wpm),
		Benchmark:       "Ideal presentation pace: 140-160 WPM (based on public speaking research)",
		WordCount:       wordCount,
		DurationMinutes: round2(minutes),
	}
}

// DetectPauses finds inter-word gaps longer than 300ms and classifies
// them: brief under 1s, strategic under 2s, long otherwise.
func DetectPauses(words []Word) []models.Pause {
	var pauses []models.Pause

	for i := 0; i < len(words)-1; i++ {
		gap := words[i+1].Start - words[i].End
		if gap <= 0.3 {
			continue
		}

		pauseType := "long"
		if gap < 1.0 {
			pauseType = "brief"
		} else if gap < 2.0 {
			pauseType = "strategic"
		}

		pauses = append(pauses, models.Pause{
			Start:    round2(words[i].End),
			End:      round2(words[i+1].Start),
			Duration: round2(gap),
			Type:     pauseType,
		})
	}

	return pauses
}

var punctTrim = regexp.MustCompile(`^[^a-z']+|[^a-z']+$`)

// DetectFillerWords flags filler occurrences with timestamps and the
// per-minute rate over the clip.
func DetectFillerWords(words []Word) models.FillerAnalysis {
	fillers := []models.FillerWord{}

	for _, w := range words {
		cleaned := punctTrim.ReplaceAllString(strings.ToLower(strings.TrimSpace(w.Word)), "")
		for _, filler := range fillerWords {
			if cleaned == filler {
				fillers = append(fillers, models.FillerWord{
					Timestamp: round2(w.Start),
					Word:      cleaned,
					Type:      "filler",
				})
				break
			}
		}
	}

	durationMinutes := 1.0
	if len(words) > 0 {
		durationMinutes = words[len(words)-1].End / 60.0
	}

	var rate float64
	if durationMinutes > 0 {
		rate = float64(len(fillers)) / durationMinutes
	}

	return models.FillerAnalysis{
		Fillers:       fillers,
		Count:         len(fillers),
		RatePerMinute: round2(rate),
		Benchmark:     "Ideal: <2 fillers per minute for executive presence",
	}
}

var sentenceSplit = regexp.MustCompile(`[.!?]+`)

// AnalyzeSentenceClarity rates sentences by length, capped at ten entries.
func AnalyzeSentenceClarity(transcript string) []models.SentenceClarity {
	sentences := sentenceSplit.Split(transcript, -1)

	var analysis []models.SentenceClarity
	for _, sentence := range sentences {
		sentence = strings.TrimSpace(sentence)
		if sentence == "" {
			continue
		}

		wordCount := len(strings.Fields(sentence))

		var rating, suggestion string
		switch {
		case wordCount < 10:
			rating = "concise"
			suggestion = "Good - concise and clear"
		case wordCount < 20:
			rating = "ok"
			suggestion = "Consider breaking into shorter sentences for impact"
		default:
			rating = "long"
			suggestion = "Break this into 2-3 shorter sentences for better clarity"
		}

		analysis = append(analysis, models.SentenceClarity{
			Sentence:      sentence,
			WordCount:     wordCount,
			ClarityRating: rating,
			Suggestion:    suggestion,
		})

		if len(analysis) == 10 {
			break
		}
	}

	return analysis
}

// AnalyzeVocalMetrics computes RMS loudness statistics over the extracted
// 16-bit PCM wav. Errors degrade to zeroed metrics rather than failing
// the whole analysis.
func AnalyzeVocalMetrics(audioPath string) models.VocalMetrics {
	samples, err := readWavSamples(audioPath)
	if err != nil {
		return models.VocalMetrics{
			Benchmark: "Unavailable",
			Error:     err.Error(),
		}
	}

	const windowSize = 2048
	var rmsValues []float64
	for start := 0; start+windowSize <= len(samples); start += windowSize {
		var sum float64
		for _, s := range samples[start : start+windowSize] {
			v := float64(s) / 32768.0
			sum += v * v
		}
		rmsValues = append(rmsValues, math.Sqrt(sum/windowSize))
	}

	if len(rmsValues) == 0 {
		return models.VocalMetrics{
			Benchmark: "Unavailable",
			Error:     "audio too short for loudness analysis",
		}
	}

	var mean float64
	for _, v := range rmsValues {
		mean += v
	}
	mean /= float64(len(rmsValues))

	var variance float64
	for _, v := range rmsValues {
		variance += (v - mean) * (v - mean)
	}
	stddev := math.Sqrt(variance / float64(len(rmsValues)))

	return models.VocalMetrics{
		LoudnessMean:      round4(mean),
		LoudnessStability: round4(stddev),
		Benchmark:         "Steady loudness with controlled variation signals vocal command",
	}
}

// readWavSamples reads 16-bit little-endian PCM samples from a wav file,
// skipping chunks until the data chunk.
func readWavSamples(path string) ([]int16, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read wav: %w", err)
	}
	if len(data) < 44 || string(data[0:4]) != "RIFF" || string(data[8:12]) != "WAVE" {
		return nil, fmt.Errorf("not a wav file")
	}

	offset := 12
	for offset+8 <= len(data) {
		chunkID := string(data[offset : offset+4])
		chunkSize := int(binary.LittleEndian.Uint32(data[offset+4 : offset+8]))
		if chunkID == "data" {
			end := offset + 8 + chunkSize
			if end > len(data) {
				end = len(data)
			}
			raw := data[offset+8 : end]
			samples := make([]int16, len(raw)/2)
			for i := range samples {
				samples[i] = int16(binary.LittleEndian.Uint16(raw[i*2 : i*2+2]))
			}
			return samples, nil
		}
		offset += 8 + chunkSize
		if chunkSize%2 == 1 {
			offset++
		}
	}

	return nil, fmt.Errorf("no data chunk found")
}

func round1(v float64) float64 { return math.Round(v*10) / 10 }
func round2(v float64) float64 { return math.Round(v*100) / 100 }
func round4(v float64) float64 { return math.Round(v*10000) / 10000 }
