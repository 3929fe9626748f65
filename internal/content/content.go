package content

import "time"

// Scenario is one timed practice prompt in the simulator.
type Scenario struct {
	ID         int      `json:"id"`
	Title      string   `json:"title"`
	Difficulty string   `json:"difficulty"`
	Duration   string   `json:"duration"`
	Situation  string   `json:"situation"`
	Prompt     string   `json:"prompt"`
	Focus      []string `json:"focus"`
}

// Module is one entry in the weekly training catalogue.
type Module struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Duration    string `json:"duration"`
	Difficulty  string `json:"difficulty"`
	FocusArea   string `json:"focus_area"`
}

// Tip is one daily learning byte.
type Tip struct {
	Category string `json:"category"`
	Tip      string `json:"tip"`
}

// TEDTalk is a curated external talk recommendation.
type TEDTalk struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Speaker  string `json:"speaker"`
	Duration string `json:"duration"`
	Views    string `json:"views"`
	Link     string `json:"link"`
}

// ScenarioSet is the simulator payload for the current rotation period.
type ScenarioSet struct {
	Scenarios    []Scenario   `json:"scenarios"`
	RotationInfo RotationInfo `json:"rotation_info"`
	PoolName     string       `json:"pool_name"`
}

// ModuleSet is the training catalogue payload for the current week.
type ModuleSet struct {
	Modules      []Module     `json:"modules"`
	RotationInfo RotationInfo `json:"rotation_info"`
	WeekTheme    string       `json:"week_theme"`
	WeekNumber   int          `json:"week_number"`
}

// DailyTip is the learning byte payload for the current day.
type DailyTip struct {
	Tip          string       `json:"tip"`
	Category     string       `json:"category"`
	RotationInfo RotationInfo `json:"rotation_info"`
	TipNumber    int          `json:"tip_number"`
	TotalTips    int          `json:"total_tips"`
}

// CurrentScenarios returns the scenario pool active at now.
func CurrentScenarios(now time.Time) ScenarioSet {
	info := periodInfo(now, ScenarioPeriodDays)
	poolIndex := info.PeriodNumber % len(scenarioPools)
	return ScenarioSet{
		Scenarios:    scenarioPools[poolIndex],
		RotationInfo: info,
		PoolName:     poolNames[poolIndex],
	}
}

// CurrentModules returns the training modules for the week active at now.
func CurrentModules(now time.Time) ModuleSet {
	info := periodInfo(now, ModulePeriodDays)
	poolIndex := info.PeriodNumber % len(modulePools)
	return ModuleSet{
		Modules:      modulePools[poolIndex],
		RotationInfo: info,
		WeekTheme:    weekThemes[poolIndex],
		WeekNumber:   poolIndex + 1,
	}
}

// CurrentTip returns the learning byte for the day active at now.
func CurrentTip(now time.Time) DailyTip {
	info := periodInfo(now, TipPeriodDays)
	tipIndex := info.PeriodNumber % len(learningTips)
	tip := learningTips[tipIndex]
	return DailyTip{
		Tip:          tip.Tip,
		Category:     tip.Category,
		RotationInfo: info,
		TipNumber:    tipIndex + 1,
		TotalTips:    len(learningTips),
	}
}

// TEDTalks returns the curated talk list. The list is static.
func TEDTalks() []TEDTalk {
	return tedTalks
}

var poolNames = []string{"Scenario Set 1", "Scenario Set 2", "Scenario Set 3", "Scenario Set 4"}

var weekThemes = []string{
	"Communication Fundamentals",
	"Presence & Body Language",
	"Gravitas Building",
	"Storytelling & Narrative",
}

var scenarioPools = [][]Scenario{
	{
		{ID: 1, Title: "Board Crisis Response", Difficulty: "High", Duration: "2-3 min",
			Situation: "Your company's stock dropped 15% overnight due to a competitor announcement. The board wants immediate answers.",
			Prompt:    "Address the board: What is your strategic response? How will you stabilize the situation and regain competitive advantage?",
			Focus:     []string{"Decisiveness", "Strategic Thinking", "Poise Under Pressure"}},
		{ID: 2, Title: "Investor Pitch Under Scrutiny", Difficulty: "High", Duration: "2-3 min",
			Situation: "You're pitching to investors who just heard concerns about your burn rate and timeline to profitability.",
			Prompt:    "Present your financial strategy and growth projections. Address their concerns with confidence and data.",
			Focus:     []string{"Vision Articulation", "Financial Acumen", "Credibility"}},
		{ID: 3, Title: "Hostile Media Interview", Difficulty: "High", Duration: "2-3 min",
			Situation: "A journalist is questioning your company's ethics after a whistleblower leak.",
			Prompt:    "Respond to tough questions while protecting company reputation and showing accountability.",
			Focus:     []string{"Composure", "Message Control", "Authenticity"}},
		{ID: 4, Title: "Emergency Shareholder Meeting", Difficulty: "High", Duration: "2-3 min",
			Situation: "A major product recall has triggered an emergency shareholder meeting. Shareholders are demanding explanations and accountability.",
			Prompt:    "Present your crisis management plan, address liability concerns, and restore shareholder confidence.",
			Focus:     []string{"Transparency", "Risk Management", "Executive Presence"}},
		{ID: 5, Title: "Regulatory Investigation Response", Difficulty: "High", Duration: "2-3 min",
			Situation: "Your company faces a regulatory investigation. You must address the executive team about compliance and next steps.",
			Prompt:    "Outline your response strategy while maintaining team morale and demonstrating leadership during uncertainty.",
			Focus:     []string{"Legal Awareness", "Team Leadership", "Crisis Communication"}},
	},
	{
		{ID: 1, Title: "Stakeholder Conflict Resolution", Difficulty: "Medium", Duration: "2-3 min",
			Situation: "Two key departments are in conflict over resource allocation, impacting delivery timelines.",
			Prompt:    "Present your resolution approach. How will you balance competing needs while maintaining team morale?",
			Focus:     []string{"Emotional Intelligence", "Diplomacy", "Leadership"}},
		{ID: 2, Title: "Executive Town Hall", Difficulty: "Medium", Duration: "2-3 min",
			Situation: "Company-wide layoffs were just announced. Remaining employees are anxious about job security and direction.",
			Prompt:    "Address the company with transparency, empathy, and a clear path forward. Rebuild trust and confidence.",
			Focus:     []string{"Authenticity", "Empathy", "Vision Communication"}},
		{ID: 3, Title: "Performance Review Challenge", Difficulty: "Low", Duration: "2-3 min",
			Situation: "A high-performing team member is demanding a promotion that isn't aligned with company structure.",
			Prompt:    "Deliver constructive feedback while retaining this valuable employee. Balance honesty with encouragement.",
			Focus:     []string{"Coaching", "Honest Communication", "Retention Strategy"}},
		{ID: 4, Title: "Team Morale Crisis", Difficulty: "Medium", Duration: "2-3 min",
			Situation: "Your team's productivity has dropped 30% after a failed project. Team members are demoralized and questioning leadership.",
			Prompt:    "Address the team to rebuild morale, acknowledge the failure, and reestablish momentum and trust.",
			Focus:     []string{"Motivational Leadership", "Vulnerability", "Resilience"}},
		{ID: 5, Title: "C-Suite Promotion Pitch", Difficulty: "High", Duration: "2-3 min",
			Situation: "You're presenting to the CEO for a promotion to the C-suite. They want to know why you're ready for this level of responsibility.",
			Prompt:    "Articulate your leadership journey, strategic vision, and what unique value you'll bring to executive leadership.",
			Focus:     []string{"Self-Promotion", "Strategic Vision", "Executive Readiness"}},
	},
	{
		{ID: 1, Title: "Strategic Pivot Announcement", Difficulty: "Medium", Duration: "2-3 min",
			Situation: "Your company is pivoting strategy after 2 years. Some key stakeholders are skeptical.",
			Prompt:    "Announce the pivot with conviction. Explain the reasoning, mitigate concerns, and rally support.",
			Focus:     []string{"Change Management", "Strategic Vision", "Persuasion"}},
		{ID: 2, Title: "Merger Integration Address", Difficulty: "High", Duration: "2-3 min",
			Situation: "Your company just acquired a competitor. Teams from both companies are uncertain about their futures.",
			Prompt:    "Address combined teams about integration plans, culture, and opportunities. Unite two cultures.",
			Focus:     []string{"Unification", "Vision", "Cultural Leadership"}},
		{ID: 3, Title: "Board Budget Defense", Difficulty: "High", Duration: "2-3 min",
			Situation: "The board wants to cut your department's budget by 30%. You need to justify your spending.",
			Prompt:    "Present ROI data and strategic importance. Make a compelling case for your resources.",
			Focus:     []string{"Data-Driven Argumentation", "Strategic Value", "Negotiation"}},
		{ID: 4, Title: "Q4 Earnings Call", Difficulty: "High", Duration: "2-3 min",
			Situation: "Your company missed Q4 targets by 12%. Analysts on the earnings call are pressing for explanations and future outlook.",
			Prompt:    "Address analyst concerns with honesty while maintaining market confidence and presenting the path to recovery.",
			Focus:     []string{"Financial Communication", "Market Confidence", "Forward Vision"}},
		{ID: 5, Title: "Customer Crisis Communication", Difficulty: "Medium", Duration: "2-3 min",
			Situation: "A data breach has affected 50,000 customers. You must address them directly about the breach and remediation.",
			Prompt:    "Communicate the breach details, actions taken, and customer protection measures with transparency and accountability.",
			Focus:     []string{"Crisis Communication", "Customer Trust", "Accountability"}},
	},
	{
		{ID: 1, Title: "Innovation Initiative Launch", Difficulty: "Medium", Duration: "2-3 min",
			Situation: "You're launching a new innovation lab but the executive team is skeptical about ROI.",
			Prompt:    "Present your vision for innovation, expected outcomes, and why now is the right time.",
			Focus:     []string{"Visionary Leadership", "Persuasion", "Innovation Mindset"}},
		{ID: 2, Title: "International Expansion Pitch", Difficulty: "High", Duration: "2-3 min",
			Situation: "You're proposing expansion into a new international market with significant risks.",
			Prompt:    "Present market opportunity, risk mitigation strategies, and resource requirements.",
			Focus:     []string{"Global Thinking", "Risk Assessment", "Strategic Planning"}},
		{ID: 3, Title: "Digital Transformation Address", Difficulty: "Medium", Duration: "2-3 min",
			Situation: "Your organization needs to undergo digital transformation. Many employees fear job losses.",
			Prompt:    "Present the transformation roadmap with empathy. Address fears while inspiring change.",
			Focus:     []string{"Change Leadership", "Empathy", "Future Vision"}},
		{ID: 4, Title: "IPO Roadshow Pitch", Difficulty: "High", Duration: "2-3 min",
			Situation: "Your company is going public. You're presenting to institutional investors who will determine your valuation.",
			Prompt:    "Present your company's growth story, competitive advantages, and vision with conviction and clarity.",
			Focus:     []string{"Storytelling", "Market Positioning", "Financial Confidence"}},
		{ID: 5, Title: "Sustainability Initiative Pitch", Difficulty: "Medium", Duration: "2-3 min",
			Situation: "You're proposing a major sustainability initiative that requires significant investment but uncertain short-term ROI.",
			Prompt:    "Make the business case for sustainability, balancing environmental responsibility with stakeholder value.",
			Focus:     []string{"Purpose-Driven Leadership", "Long-term Thinking", "Stakeholder Balance"}},
	},
}

var modulePools = [][]Module{
	{
		{ID: "strategic-pauses", Title: "Strategic Pauses", Description: "Master the art of using silence to enhance authority", Duration: "8 min", Difficulty: "Beginner", FocusArea: "Communication"},
		{ID: "filler-elimination", Title: "Eliminating Filler Words", Description: "Remove 'um', 'uh', and other verbal fillers", Duration: "10 min", Difficulty: "Beginner", FocusArea: "Communication"},
		{ID: "speaking-rate", Title: "Optimal Speaking Rate", Description: "Find your ideal pace for maximum impact", Duration: "7 min", Difficulty: "Beginner", FocusArea: "Communication"},
		{ID: "vocal-variety", Title: "Vocal Variety & Modulation", Description: "Use pitch, pace, and volume for engagement", Duration: "9 min", Difficulty: "Intermediate", FocusArea: "Communication"},
	},
	{
		{ID: "lens-eye-contact", Title: "Camera Lens Eye Contact", Description: "Develop consistent camera presence", Duration: "6 min", Difficulty: "Beginner", FocusArea: "Presence"},
		{ID: "power-posture", Title: "Power Posture Techniques", Description: "Project confidence through body language", Duration: "8 min", Difficulty: "Beginner", FocusArea: "Presence"},
		{ID: "gesture-mastery", Title: "Gesture Mastery", Description: "Use hand gestures to emphasize key points", Duration: "10 min", Difficulty: "Intermediate", FocusArea: "Presence"},
		{ID: "first-impressions", Title: "First Impressions", Description: "Command attention in the first 7 seconds", Duration: "7 min", Difficulty: "Beginner", FocusArea: "Presence"},
	},
	{
		{ID: "decision-framing", Title: "Executive Decision Framing", Description: "Structure decisions with clarity and conviction", Duration: "10 min", Difficulty: "Intermediate", FocusArea: "Gravitas"},
		{ID: "commanding-presence", Title: "Commanding Presence", Description: "Project authority without arrogance", Duration: "12 min", Difficulty: "Advanced", FocusArea: "Gravitas"},
		{ID: "poise-under-pressure", Title: "Poise Under Pressure", Description: "Stay calm when challenged or questioned", Duration: "9 min", Difficulty: "Intermediate", FocusArea: "Gravitas"},
		{ID: "vision-articulation", Title: "Vision Articulation", Description: "Communicate strategic vision clearly", Duration: "11 min", Difficulty: "Advanced", FocusArea: "Gravitas"},
	},
	{
		{ID: "story-structure", Title: "Story Structure Basics", Description: "Build compelling narratives with arc", Duration: "10 min", Difficulty: "Beginner", FocusArea: "Storytelling"},
		{ID: "personal-anecdotes", Title: "Personal Anecdotes", Description: "Use your experiences to connect", Duration: "8 min", Difficulty: "Intermediate", FocusArea: "Storytelling"},
		{ID: "data-storytelling", Title: "Data Storytelling", Description: "Make numbers memorable and meaningful", Duration: "12 min", Difficulty: "Advanced", FocusArea: "Storytelling"},
		{ID: "emotional-hooks", Title: "Emotional Hooks", Description: "Create lasting impressions with emotion", Duration: "9 min", Difficulty: "Intermediate", FocusArea: "Storytelling"},
	},
}

var learningTips = []Tip{
	{Category: "Communication", Tip: "Practice the 'power pause' - a 2-3 second silence before your key message makes it 40% more memorable. Use it before important points in your next presentation."},
	{Category: "Presence", Tip: "The 'triangle gaze' technique: When speaking, shift your eye contact between three points in your audience (or camera lens corners) to appear engaged yet commanding."},
	{Category: "Gravitas", Tip: "Replace 'I think' with 'I believe' or 'My recommendation is' - this single word swap increases perceived confidence by 35% according to leadership studies."},
	{Category: "Storytelling", Tip: "Start your next presentation with 'Let me share what happened...' - stories are 22x more memorable than facts alone."},
	{Category: "Communication", Tip: "The 10-second rule: Your first 10 seconds set the tone. Open with a bold statement, surprising fact, or thought-provoking question."},
	{Category: "Presence", Tip: "Before important meetings, do a 2-minute 'power pose' in private - research shows it increases testosterone and decreases cortisol."},
	{Category: "Gravitas", Tip: "When challenged, pause before responding. This 3-second pause signals thoughtfulness and prevents defensive reactions."},
	{Category: "Storytelling", Tip: "Use the 'hero's journey' mini-version: Challenge → Action → Result. Even a 30-second story following this structure captivates."},
	{Category: "Communication", Tip: "Mirror your audience's speaking pace initially, then gradually slow down. This builds rapport and gives you control of the room."},
	{Category: "Presence", Tip: "Position your camera at eye level and ensure your face fills 60% of the frame. This creates optimal virtual presence."},
	{Category: "Gravitas", Tip: "End meetings with a clear 'next step' statement. Leaders who do this are perceived as 50% more decisive."},
	{Category: "Storytelling", Tip: "Include one specific sensory detail in your stories ('the cold conference room', 'the 3am email'). Specificity creates believability."},
	{Category: "Communication", Tip: "Practice 'bottom-line up front' (BLUF): State your conclusion first, then provide supporting details. Executives prefer this 3:1."},
	{Category: "Presence", Tip: "Keep your chin parallel to the ground - tilting up appears arrogant, tilting down appears submissive. Neutral conveys confidence."},
}

var tedTalks = []TEDTalk{
	{ID: "1", Title: "How great leaders inspire action", Speaker: "Simon Sinek", Duration: "18:04", Views: "52M", Link: "https://www.ted.com/talks/simon_sinek_how_great_leaders_inspire_action"},
	{ID: "2", Title: "The power of vulnerability", Speaker: "Brené Brown", Duration: "20:03", Views: "60M", Link: "https://www.ted.com/talks/brene_brown_the_power_of_vulnerability"},
	{ID: "3", Title: "Your body language may shape who you are", Speaker: "Amy Cuddy", Duration: "20:55", Views: "47M", Link: "https://www.ted.com/talks/amy_cuddy_your_body_language_may_shape_who_you_are"},
	{ID: "4", Title: "How to speak so that people want to listen", Speaker: "Julian Treasure", Duration: "9:59", Views: "15M", Link: "https://www.ted.com/talks/julian_treasure_how_to_speak_so_that_people_want_to_listen"},
	{ID: "5", Title: "The skill of self-confidence", Speaker: "Dr. Ivan Joseph", Duration: "13:40", Views: "6.2M", Link: "https://www.ted.com/talks/ivan_joseph_the_skill_of_self_confidence"},
}
