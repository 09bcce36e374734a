// Package content serves the static event information shown on the
// hackathon landing page: schedule, challenge tracks, and judging
// criteria.
package content

// TimelinePhase is one entry in the event schedule.
type TimelinePhase struct {
	Title       string `json:"title"`
	Date        string `json:"date"`
	Description string `json:"description"`
}

// Round1Challenge is an online qualifier challenge.
type Round1Challenge struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Input       string `json:"input"`
	Output      string `json:"output"`
	Teams       string `json:"teams"`
}

// Round2Challenge is an on-site final challenge.
type Round2Challenge struct {
	Title        string `json:"title"`
	Problem      string `json:"problem"`
	Solution     string `json:"solution"`
	Deliverables string `json:"deliverables"`
	Teams        string `json:"teams"`
}

// JudgingCriterion is one scored dimension of the final evaluation.
type JudgingCriterion struct {
	Name        string `json:"name"`
	Points      int    `json:"points"`
	Description string `json:"description"`
}

// EventInfo aggregates everything the landing page renders.
type EventInfo struct {
	Name             string             `json:"name"`
	Timeline         []TimelinePhase    `json:"timeline"`
	Round1Challenges []Round1Challenge  `json:"round1_challenges"`
	Round2Challenges []Round2Challenge  `json:"round2_challenges"`
	JudgingCriteria  []JudgingCriterion `json:"judging_criteria"`
}

var eventInfo = EventInfo{
	Name: "Nxzen Hackathon 2025",
	Timeline: []TimelinePhase{
		{
			Title:       "Registration Opens",
			Date:        "October 30, 2025",
			Description: "Start forming your teams and register for the hackathon",
		},
		{
			Title:       "Round 1 (Online)",
			Date:        "November 5-8, 2025",
			Description: "3-4 days to complete online challenges and submit your solutions",
		},
		{
			Title:       "Results Announcement",
			Date:        "November 10, 2025",
			Description: "Shortlisted teams for Round 2 will be announced",
		},
		{
			Title:       "Round 2 (Offline)",
			Date:        "November 15-16, 2025",
			Description: "24-hour final hackathon with live presentations and judging",
		},
	},
	Round1Challenges: []Round1Challenge{
		{
			Title:       "Graph Isolation – Utility Outage Detection",
			Description: "Implement C/C++ algorithm to detect isolated zones when a node (substation/pipeline) fails",
			Input:       "Network topology file (nodes, edges)",
			Output:      "List of disconnected zones + demand lost",
			Teams:       "10 teams (~20 students)",
		},
		{
			Title:       "Anomaly Detection – Meter Tamper Identification",
			Description: "Implement C/C++ algorithm for anomaly detection in time-series meter readings",
			Input:       "Meter readings file",
			Output:      "Flagged anomalies with timestamps",
			Teams:       "10 teams (~20 students)",
		},
		{
			Title:       "Integration Mini-App",
			Description: "Wrap the C/C++ code into a FastAPI service and create a React UI",
			Input:       "CSV upload functionality",
			Output:      "Results displayed in table or chart format",
			Teams:       "5 teams (~10 students)",
		},
	},
	Round2Challenges: []Round2Challenge{
		{
			Title:        "Urban Digital Twin Simulator",
			Problem:      "Substation trips → cascading failures across electricity, water, and gas",
			Solution:     "Interactive outage simulator with node-click, cascading animation, restore option",
			Deliverables: "C++ graph traversal + FastAPI outage simulation + React map + Postgres topology DB",
			Teams:        "2 teams",
		},
		{
			Title:        "Cross-Utility Fraud & Tamper Radar",
			Problem:      "Households tamper meters (electricity zero, but water/gas active)",
			Solution:     "Fraud radar dashboard with anomaly scores, comparisons, red flags",
			Deliverables: "C++ anomaly detection + FastAPI fraud API + React dashboard + Postgres readings DB",
			Teams:        "2 teams",
		},
		{
			Title:        "Microgrid Optimizer",
			Problem:      "EV charging overloads transformers despite available solar & batteries",
			Solution:     "Optimizer app for EV + battery scheduling; interactive sliders for solar/battery",
			Deliverables: "C++ optimization logic + FastAPI scheduling API + React line charts + Postgres demand DB",
			Teams:        "2 teams",
		},
		{
			Title:        "Utility Catastrophe Early-Warning",
			Problem:      "Heatwaves cause overloads, bursts, and gas failures",
			Solution:     "Risk dashboard with zone-wise heatmap, temperature slider, and drilldown reports",
			Deliverables: "C++ regression/correlation + FastAPI risk scoring API + React heatmap + Postgres weather/incidents DB",
			Teams:        "1-2 teams",
		},
		{
			Title:        "Smart Consumer Coach",
			Problem:      "Consumers struggle with high bills and unclear tariffs",
			Solution:     "Bill coach app with tariff comparison, what-if analysis (solar/load shifting)",
			Deliverables: "C++ tariff calculator + FastAPI bill APIs + React bill breakdown + Postgres tariff DB",
			Teams:        "1-2 teams",
		},
	},
	JudgingCriteria: []JudgingCriterion{
		{Name: "Algorithm (C/C++)", Points: 25, Description: "Code quality, efficiency, and problem-solving approach"},
		{Name: "API & Integration (Python)", Points: 25, Description: "Backend architecture, FastAPI implementation, and integration"},
		{Name: "Database (PostgreSQL)", Points: 15, Description: "Data modeling, query optimization, and schema design"},
		{Name: "Frontend (React)", Points: 15, Description: "UI/UX design, responsiveness, and user experience"},
		{Name: "Innovation & Storytelling", Points: 20, Description: "Creativity, impact, presentation, and problem solution fit"},
	},
}

// Event returns the landing page data.
func Event() EventInfo {
	return eventInfo
}
