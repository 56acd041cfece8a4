package models

// Onboarding steps in canonical order.
const (
	StepWelcome      = "welcome"
	StepGmailConnect = "gmail-connect"
	StepScanning     = "scanning"
	StepResults      = "results"
	StepGaps         = "gaps"
	StepSuccess      = "success"
)

// OnboardingSteps is the canonical linear step order. The manual path skips
// the Gmail-only steps, the skip path jumps straight to success.
var OnboardingSteps = []string{
	StepWelcome,
	StepGmailConnect,
	StepScanning,
	StepResults,
	StepGaps,
	StepSuccess,
}

// Onboarding paths selectable at the welcome step.
const (
	PathGmail  = "gmail"
	PathManual = "manual"
	PathSkip   = "skip"
)

// Completion marker values persisted under the well-known local key.
const (
	CompletionDone    = "done"
	CompletionSkipped = "skipped"
)

// ScannedData counts the travel records detected during an automated scan.
type ScannedData struct {
	Hotels      int `json:"hotels"`
	Flights     int `json:"flights"`
	Restaurants int `json:"restaurants"`
	Activities  int `json:"activities"`
}

// OnboardingState is the per-user wizard state. It is mutated exclusively
// through the onboarding service's transition operations.
type OnboardingState struct {
	CurrentStep          string             `json:"current_step"`
	SelectedPath         string             `json:"selected_path,omitempty"`
	IsComplete           bool               `json:"is_complete"`
	ScannedData          ScannedData        `json:"scanned_data"`
	DetectedPreferences  *UserPreferences   `json:"detected_preferences,omitempty"`
	TemporaryPreferences PreferenceOverride `json:"temporary_preferences"`
	IsScanning           bool               `json:"is_scanning"`
	ScanProgress         float64            `json:"scan_progress"`
}
