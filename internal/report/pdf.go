// Package report renders analysis reports as downloadable PDF documents.
package report

import (
	"bytes"
	"fmt"
	"math"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/epquotient/epq/pkg/models"
)

const (
	pageMargin = 20.0
	footerH    = 15.0
)

type rgb struct{ r, g, b int }

var (
	gold     = rgb{212, 175, 55}
	darkText = rgb{15, 23, 42}
	grayText = rgb{100, 116, 139}
	lightBg  = rgb{248, 250, 252}
	green    = rgb{34, 197, 94}
	amber    = rgb{245, 158, 11}
	red      = rgb{239, 68, 68}
)

// Render produces the full assessment PDF for one report.
func Render(report *models.Report) ([]byte, error) {
	pdf := build(report)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("rendering report pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// Filename returns the suggested download name for a report's PDF.
func Filename(report *models.Report) string {
	return fmt.Sprintf("EP_Report_%s.pdf", report.CreatedAt.Format("2006_01_02"))
}

func build(report *models.Report) *gofpdf.Fpdf {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pageW, pageH := pdf.GetPageSize()
	contentW := pageW - 2*pageMargin

	pdf.SetFooterFunc(func() {
		setFill(pdf, gold)
		pdf.Rect(0, pageH-footerH, pageW, footerH, "F")
		pdf.SetFont("Helvetica", "", 9)
		pdf.SetTextColor(255, 255, 255)
		pdf.Text(pageMargin, pageH-6, "EP Quotient | AI-Powered Executive Presence Assessment")
		pageLabel := fmt.Sprintf("Page %d", pdf.PageNo())
		pdf.Text(pageW-pageMargin-pdf.GetStringWidth(pageLabel), pageH-6, pageLabel)
	})
	pdf.SetAutoPageBreak(true, footerH+10)
	pdf.AddPage()

	// Header bar.
	setFill(pdf, gold)
	pdf.Rect(0, 0, pageW, 35, "F")
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Helvetica", "B", 18)
	pdf.Text(pageMargin, 15, "EXECUTIVE PRESENCE QUOTIENT")
	pdf.SetFont("Helvetica", "", 11)
	pdf.Text(pageMargin, 25, "AI-Powered Leadership Assessment Report")

	reportDate := report.CreatedAt
	if reportDate.IsZero() {
		reportDate = time.Now()
	}
	dateText := reportDate.Format("January 2, 2006")
	pdf.SetFont("Helvetica", "", 10)
	pdf.Text(pageW-pageMargin-pdf.GetStringWidth(dateText), 25, dateText)

	y := 55.0

	// Overall score card.
	label, labelColor := scoreLabel(report.OverallScore)
	setFill(pdf, lightBg)
	pdf.RoundedRect(pageMargin, y, contentW, 50, 5, "1234", "F")
	setDraw(pdf, gold)
	pdf.SetLineWidth(1)
	pdf.RoundedRect(pageMargin, y, contentW, 50, 5, "1234", "D")

	setText(pdf, gold)
	pdf.SetFont("Helvetica", "B", 42)
	pdf.Text(pageMargin+30, y+32, formatScore(report.OverallScore))
	setText(pdf, grayText)
	pdf.SetFont("Helvetica", "", 10)
	pdf.Text(pageMargin+30, y+42, "Overall EP Score")

	setText(pdf, labelColor)
	pdf.SetFont("Helvetica", "B", 24)
	pdf.Text(pageMargin+100, y+20, label)
	setText(pdf, grayText)
	pdf.SetFont("Helvetica", "", 10)
	pdf.Text(pageMargin+100, y+30, "Performance Level")
	benchmark := "Opportunities identified for improvement"
	if report.OverallScore >= 60 {
		benchmark = "Above industry average for executive communication"
	}
	pdf.Text(pageMargin+100, y+42, benchmark)

	y += 65

	// Dimension breakdown.
	setText(pdf, darkText)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Text(pageMargin, y, "DIMENSION BREAKDOWN")
	y += 10

	boxW := (contentW - 30) / 4
	scoreBox(pdf, "Gravitas (25%)", &report.GravitasScore, pageMargin, y, boxW)
	scoreBox(pdf, "Communication (35%)", &report.CommunicationScore, pageMargin+boxW+10, y, boxW)
	scoreBox(pdf, "Presence (25%)", &report.PresenceScore, pageMargin+2*(boxW+10), y, boxW)
	scoreBox(pdf, "Storytelling (15%)", report.StorytellingScore, pageMargin+3*(boxW+10), y, boxW)
	y += 40

	metrics := report.DetailedMetrics

	// Communication.
	y = sectionHeader(pdf, "Communication Analysis", y, contentW)
	comm := metrics.Communication
	y = metricLine(pdf, y,
		fmt.Sprintf("Speaking Rate: %.0f WPM", comm.SpeakingRate.WPM),
		"Benchmark: 120-150 WPM ideal for executive communication")
	y = metricLine(pdf, y,
		fmt.Sprintf("Filler Words: %d detected (%.1f/min)", comm.FillerWords.Count, comm.FillerWords.RatePerMinute),
		"Research: Excessive fillers reduce perceived competence by up to 35% (Journal of Communication)")
	y = metricLine(pdf, y,
		fmt.Sprintf("Strategic Pauses: %d detected", len(comm.Pauses)),
		"Benchmark: Well-placed pauses increase message retention and authority")
	y += 5

	// Presence.
	y = sectionHeader(pdf, "Presence Analysis", y, contentW)
	pres := metrics.Presence
	y = metricLine(pdf, y,
		fmt.Sprintf("Posture Score: %.0f%%", pres.PostureScore),
		"Upright posture correlates with authority perception")
	y = metricLine(pdf, y,
		fmt.Sprintf("Eye Contact Ratio: %.0f%%", pres.EyeContactRatio*100),
		"60-70% eye contact is optimal for trust (MIT Sloan)")
	y = metricLine(pdf, y,
		fmt.Sprintf("Gesture Rate: %.1f/min", pres.GestureRate),
		"Natural gestures enhance message delivery")
	y = metricLine(pdf, y,
		fmt.Sprintf("First Impression: %.0f", pres.FirstImpressionScore),
		"First 7 seconds are critical for perception")
	y += 5

	// Gravitas sub-scores laid out in two columns.
	y = sectionHeader(pdf, "Gravitas Analysis", y, contentW)
	grav := metrics.Gravitas
	gravItems := []struct {
		label string
		score float64
	}{
		{"Commanding Presence", grav.CommandingPresence},
		{"Decisiveness", grav.Decisiveness},
		{"Poise Under Pressure", grav.PoiseUnderPressure},
		{"Emotional Intelligence", grav.EmotionalIntelligence},
		{"Vision Articulation", grav.VisionArticulation},
	}
	setText(pdf, darkText)
	pdf.SetFont("Helvetica", "", 11)
	for i, item := range gravItems {
		x := pageMargin + 5 + float64(i%2)*85
		rowY := y + float64(i/2)*12
		pdf.Text(x, rowY, fmt.Sprintf("%s: %.0f", item.label, item.score))
	}
	y += 40

	if y > pageH-80 {
		pdf.AddPage()
		y = pageMargin
	}

	// Storytelling.
	y = sectionHeader(pdf, "Storytelling Analysis", y, contentW)
	story := metrics.Storytelling
	if !story.HasStory || report.StorytellingScore == nil {
		setText(pdf, amber)
		pdf.SetFont("Helvetica", "", 11)
		pdf.Text(pageMargin+5, y, "No clear story structure detected in this video.")
		setText(pdf, grayText)
		pdf.SetFont("Helvetica", "", 9)
		pdf.Text(pageMargin+5, y+8, "Recommendation: Include personal anecdotes or challenge-resolution narratives")
		y += 20
	} else {
		storyItems := []struct {
			label string
			score *float64
		}{
			{"Narrative Structure", story.NarrativeStructure},
			{"Authenticity", story.Authenticity},
			{"Concreteness", story.Concreteness},
			{"Pacing", story.Pacing},
		}
		setText(pdf, darkText)
		pdf.SetFont("Helvetica", "", 11)
		for i, item := range storyItems {
			x := pageMargin + 5 + float64(i%2)*85
			rowY := y + float64(i/2)*12
			text := item.label + ": N/A"
			if item.score != nil {
				text = fmt.Sprintf("%s: %.0f", item.label, *item.score)
			}
			pdf.Text(x, rowY, text)
		}
		y += 30
	}

	// Coaching recommendations.
	if y > pageH-60 {
		pdf.AddPage()
		y = pageMargin
	}
	y = sectionHeader(pdf, "Coaching Recommendations", y, contentW)

	tips := report.CoachingTips
	if len(tips) == 0 {
		tips = []string{
			"Practice strategic pauses before key points to build anticipation",
			"Reduce filler words by pausing instead of using \"um\" or \"uh\"",
			"Maintain consistent eye contact with the camera to build connection",
			"Include more concrete examples and data to strengthen your narrative",
		}
	}
	pdf.SetFont("Helvetica", "", 10)
	setText(pdf, darkText)
	tipW := contentW - 10
	for i, tip := range tips {
		numbered := fmt.Sprintf("%d. %s", i+1, tip)
		lines := pdf.SplitText(numbered, tipW)
		tipH := float64(len(lines)) * 5
		if y+tipH > pageH-footerH-10 {
			pdf.AddPage()
			y = pageMargin
			pdf.SetFont("Helvetica", "", 10)
			setText(pdf, darkText)
		}
		pdf.SetXY(pageMargin+5, y-4)
		pdf.MultiCell(tipW, 5, numbered, "", "L", false)
		y += tipH + 8
	}

	return pdf
}

// sectionHeader draws the light banded title with the gold corner accent and
// returns the y position for the section body.
func sectionHeader(pdf *gofpdf.Fpdf, title string, y, contentW float64) float64 {
	setFill(pdf, lightBg)
	pdf.Rect(pageMargin, y-5, contentW, 12, "F")
	setDraw(pdf, gold)
	pdf.SetLineWidth(0.5)
	pdf.Line(pageMargin, y-5, pageMargin+3, y-5)
	pdf.Line(pageMargin, y-5, pageMargin, y+7)
	setText(pdf, darkText)
	pdf.SetFont("Helvetica", "B", 14)
	pdf.Text(pageMargin+5, y+3, title)
	return y + 18
}

// metricLine draws one measurement with its benchmark caption beneath.
func metricLine(pdf *gofpdf.Fpdf, y float64, value, caption string) float64 {
	setText(pdf, darkText)
	pdf.SetFont("Helvetica", "", 11)
	pdf.Text(pageMargin+5, y, value)
	setText(pdf, grayText)
	pdf.SetFont("Helvetica", "", 9)
	pdf.Text(pageMargin+5, y+6, caption)
	return y + 15
}

func scoreBox(pdf *gofpdf.Fpdf, label string, score *float64, x, y, w float64) {
	pdf.SetFillColor(255, 255, 255)
	setDraw(pdf, gold)
	pdf.SetLineWidth(0.5)
	pdf.RoundedRect(x, y, w, 25, 3, "1234", "FD")

	setText(pdf, grayText)
	pdf.SetFont("Helvetica", "", 9)
	pdf.Text(x+(w-pdf.GetStringWidth(label))/2, y+8, label)

	text := "N/A"
	color := grayText
	if score != nil {
		text = fmt.Sprintf("%.0f", math.Round(*score))
		switch {
		case *score >= 70:
			color = green
		case *score >= 50:
			color = gold
		default:
			color = red
		}
	}
	setText(pdf, color)
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Text(x+(w-pdf.GetStringWidth(text))/2, y+18, text)
}

// scoreLabel maps the overall score to its qualitative performance level.
func scoreLabel(score float64) (string, rgb) {
	switch {
	case score >= 90:
		return "Exceptional", green
	case score >= 80:
		return "Excellent", green
	case score >= 70:
		return "Strong", gold
	case score >= 60:
		return "Developing", gold
	case score >= 50:
		return "Emerging", amber
	default:
		return "Needs Focus", red
	}
}

func formatScore(score float64) string {
	if score == math.Trunc(score) {
		return fmt.Sprintf("%.0f", score)
	}
	return fmt.Sprintf("%.1f", score)
}

func setFill(pdf *gofpdf.Fpdf, c rgb) { pdf.SetFillColor(c.r, c.g, c.b) }
func setDraw(pdf *gofpdf.Fpdf, c rgb) { pdf.SetDrawColor(c.r, c.g, c.b) }
func setText(pdf *gofpdf.Fpdf, c rgb) { pdf.SetTextColor(c.r, c.g, c.b) }
