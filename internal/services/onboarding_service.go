package services

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/danaingraham/wanderplan-sub002/internal/localstore"
	"github.com/danaingraham/wanderplan-sub002/internal/models"
)

// ScanNotifier receives scan lifecycle events for delivery to connected
// clients. The websocket hub implements it.
type ScanNotifier interface {
	NotifyScanProgress(userID int64, progress float64, message string, found models.ScannedData)
	NotifyScanComplete(userID int64, detected *models.UserPreferences, found models.ScannedData)
}

// Progress messages emitted at each 12.5% threshold of the scan range.
var scanStageMessages = []string{
	"Connecting to your inbox...",
	"Scanning hotel confirmations...",
	"Scanning flight itineraries...",
	"Scanning restaurant reservations...",
	"Scanning activity bookings...",
	"Weighing recent trips...",
	"Inferring your travel style...",
	"Finalizing your travel profile...",
}

const scanStageStep = 12.5

// OnboardingService is the wizard's state machine. All state lives here and
// is mutated only through these transition operations; the completion
// marker persists in the local store under a fixed unscoped key.
type OnboardingService struct {
	local    snapshotStore
	notifier ScanNotifier
	driver   ScanDriver

	// advanceDelay is the pause between a finished scan and the automatic
	// advance to the results step. Zero advances synchronously.
	advanceDelay time.Duration

	mu     sync.Mutex
	states map[int64]*models.OnboardingState
	stages map[int64]int
	stops  map[int64]func()
}

func NewOnboardingService(local snapshotStore, notifier ScanNotifier, driver ScanDriver, advanceDelay time.Duration) *OnboardingService {
	return &OnboardingService{
		local:        local,
		notifier:     notifier,
		driver:       driver,
		advanceDelay: advanceDelay,
		states:       make(map[int64]*models.OnboardingState),
		stages:       make(map[int64]int),
		stops:        make(map[int64]func()),
	}
}

// State returns a copy of the user's wizard state, initializing it on first
// access. A persisted completion marker loads as an already-complete state.
func (s *OnboardingService) State(userID int64) models.OnboardingState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return *s.stateLocked(userID)
}

// ShouldShowOnboarding is the gate the application shell asks on each
// render: authenticated, not complete, not already at the success step.
func (s *OnboardingService) ShouldShowOnboarding(userID int64) bool {
	if userID <= 0 {
		return false
	}
	state := s.State(userID)
	return !state.IsComplete && state.CurrentStep != models.StepSuccess
}

// SelectPath records the chosen path and applies the shortcut rules:
// manual jumps to gaps, skip jumps to success and completes immediately.
func (s *OnboardingService) SelectPath(userID int64, path string) (models.OnboardingState, error) {
	switch path {
	case models.PathGmail, models.PathManual, models.PathSkip:
	default:
		return models.OnboardingState{}, fmt.Errorf("unknown onboarding path %q", path)
	}

	s.mu.Lock()
	state := s.stateLocked(userID)
	state.SelectedPath = path
	switch path {
	case models.PathGmail:
		state.CurrentStep = models.StepGmailConnect
	case models.PathManual:
		state.CurrentStep = models.StepGaps
	case models.PathSkip:
		state.CurrentStep = models.StepSuccess
		state.IsComplete = true
	}
	result := *state
	s.mu.Unlock()

	if path == models.PathSkip {
		s.persistMarker(models.CompletionSkipped)
	}
	return result, nil
}

// NextStep advances one position in the canonical step order.
func (s *OnboardingService) NextStep(userID int64) models.OnboardingState {
	s.mu.Lock()
	defer s.mu.Unlock()
	state := s.stateLocked(userID)
	if index := stepIndex(state.CurrentStep); index >= 0 && index < len(models.OnboardingSteps)-1 {
		state.CurrentStep = models.OnboardingSteps[index+1]
	}
	return *state
}

// PreviousStep retreats one position, except that gaps on the manual path
// returns to welcome, mirroring the forward shortcut past the Gmail steps.
func (s *OnboardingService) PreviousStep(userID int64) models.OnboardingState {
	s.mu.Lock()
	defer s.mu.Unlock()
	state := s.stateLocked(userID)
	if state.CurrentStep == models.StepGaps && state.SelectedPath == models.PathManual {
		state.CurrentStep = models.StepWelcome
		return *state
	}
	if index := stepIndex(state.CurrentStep); index > 0 {
		state.CurrentStep = models.OnboardingSteps[index-1]
	}
	return *state
}

// UpdateScanProgress clamps and stores the scan progress.
func (s *OnboardingService) UpdateScanProgress(userID int64, progress float64) models.OnboardingState {
	s.mu.Lock()
	defer s.mu.Unlock()
	state := s.stateLocked(userID)
	state.ScanProgress = clampProgress(progress)
	return *state
}

// UpdateTemporaryPreferences stores the manual-path draft gathered by the
// gap-filling step. The draft is merged and persisted only on completion.
func (s *OnboardingService) UpdateTemporaryPreferences(userID int64, draft models.PreferenceOverride) models.OnboardingState {
	s.mu.Lock()
	defer s.mu.Unlock()
	state := s.stateLocked(userID)
	state.TemporaryPreferences = draft
	return *state
}

// StartScan moves the user to the scanning step and runs the progress
// driver. A scan already in flight is stopped and replaced.
func (s *OnboardingService) StartScan(userID int64) (models.OnboardingState, error) {
	s.mu.Lock()
	state := s.stateLocked(userID)
	if state.SelectedPath != models.PathGmail {
		s.mu.Unlock()
		return models.OnboardingState{}, fmt.Errorf("scan requires the gmail path, selected %q", state.SelectedPath)
	}
	if stop, running := s.stops[userID]; running {
		stop()
	}
	state.CurrentStep = models.StepScanning
	state.IsScanning = true
	state.ScanProgress = 0
	state.ScannedData = models.ScannedData{}
	state.DetectedPreferences = nil
	s.stages[userID] = 0
	result := *state
	s.mu.Unlock()

	stop := s.driver.Start(func(event ScanEvent) {
		s.applyScanEvent(userID, event)
	})

	s.mu.Lock()
	s.stops[userID] = stop
	s.mu.Unlock()

	return result, nil
}

// StopScan halts any running scan driver for the user.
func (s *OnboardingService) StopScan(userID int64) {
	s.mu.Lock()
	stop, running := s.stops[userID]
	if running {
		delete(s.stops, userID)
	}
	state, tracked := s.states[userID]
	if tracked {
		state.IsScanning = false
	}
	s.mu.Unlock()
	if running {
		stop()
	}
}

// CompleteOnboarding finishes the wizard and persists the done marker so it
// does not reappear in future sessions.
func (s *OnboardingService) CompleteOnboarding(userID int64) models.OnboardingState {
	return s.complete(userID, models.CompletionDone)
}

// SkipOnboarding finishes the wizard with a distinguishable skipped marker.
func (s *OnboardingService) SkipOnboarding(userID int64) models.OnboardingState {
	return s.complete(userID, models.CompletionSkipped)
}

// ResetOnboarding clears the persisted marker and reinitializes the state.
func (s *OnboardingService) ResetOnboarding(userID int64) models.OnboardingState {
	s.StopScan(userID)
	if err := s.local.Remove(localstore.OnboardingMarkerKey); err != nil {
		log.Printf("remove onboarding marker: %v", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.states[userID] = freshState()
	s.stages[userID] = 0
	return *s.states[userID]
}

// StartWithGmail resets the wizard with the Gmail path pre-selected,
// jumping straight to the connect step.
func (s *OnboardingService) StartWithGmail(userID int64) models.OnboardingState {
	s.ResetOnboarding(userID)
	s.mu.Lock()
	defer s.mu.Unlock()
	state := s.stateLocked(userID)
	state.SelectedPath = models.PathGmail
	state.CurrentStep = models.StepGmailConnect
	return *state
}

// CompletionMarker reports the persisted marker value, if any.
func (s *OnboardingService) CompletionMarker() (string, bool) {
	value, found, err := s.local.Get(localstore.OnboardingMarkerKey)
	if err != nil {
		log.Printf("read onboarding marker: %v", err)
		return "", false
	}
	if !found {
		return "", false
	}
	return string(value), true
}

func (s *OnboardingService) complete(userID int64, marker string) models.OnboardingState {
	s.StopScan(userID)
	s.mu.Lock()
	state := s.stateLocked(userID)
	state.IsComplete = true
	state.CurrentStep = models.StepSuccess
	result := *state
	s.mu.Unlock()

	s.persistMarker(marker)
	return result
}

func (s *OnboardingService) applyScanEvent(userID int64, event ScanEvent) {
	s.mu.Lock()
	state := s.stateLocked(userID)
	if !state.IsScanning {
		// The scan was abandoned; ignore late events.
		s.mu.Unlock()
		return
	}
	state.ScanProgress = clampProgress(event.Progress)
	state.ScannedData = event.Found

	var messages []string
	for stage := s.stages[userID]; stage < len(scanStageMessages); stage++ {
		if state.ScanProgress < float64(stage)*scanStageStep {
			break
		}
		messages = append(messages, scanStageMessages[stage])
		s.stages[userID] = stage + 1
	}

	var detected *models.UserPreferences
	if event.Done {
		detected = detectPreferences(userID, event.Found)
		state.DetectedPreferences = detected
		state.IsScanning = false
		state.ScanProgress = 100
	}
	progress := state.ScanProgress
	found := state.ScannedData
	s.mu.Unlock()

	if s.notifier != nil {
		for _, message := range messages {
			s.notifier.NotifyScanProgress(userID, progress, message, found)
		}
	}

	if event.Done {
		if s.notifier != nil {
			s.notifier.NotifyScanComplete(userID, detected, found)
		}
		if s.advanceDelay > 0 {
			time.AfterFunc(s.advanceDelay, func() { s.advanceAfterScan(userID) })
		} else {
			s.advanceAfterScan(userID)
		}
	}
}

// advanceAfterScan moves scanning -> results once the scan has finished,
// unless the wizard moved on (or was reset) in the meantime.
func (s *OnboardingService) advanceAfterScan(userID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	state := s.stateLocked(userID)
	if state.CurrentStep == models.StepScanning && !state.IsScanning {
		state.CurrentStep = models.StepResults
	}
}

// detectPreferences turns raw scan counts into a detected preference draft.
func detectPreferences(userID int64, found models.ScannedData) *models.UserPreferences {
	detected := models.DefaultPreferences(userID)

	if found.Hotels > 0 {
		detected.AccommodationStyle = []models.AccommodationEntry{{
			Style:      "hotel",
			Confidence: countConfidence(found.Hotels),
			Count:      found.Hotels,
		}}
	}
	if found.Restaurants > 0 {
		detected.ActivityTypes = append(detected.ActivityTypes, models.ActivityType{
			Type:       "dining",
			Confidence: countConfidence(found.Restaurants),
			Count:      found.Restaurants,
		})
	}
	if found.Activities > 0 {
		detected.ActivityTypes = append(detected.ActivityTypes, models.ActivityType{
			Type:       "sightseeing",
			Confidence: countConfidence(found.Activities),
			Count:      found.Activities,
		})
	}

	switch {
	case found.Activities >= 8:
		detected.PacePreference = models.PacePacked
	case found.Activities >= 3:
		detected.PacePreference = models.PaceModerate
	case found.Hotels+found.Flights > 0:
		detected.PacePreference = models.PaceRelaxed
	}

	models.TouchCalculated(detected, 1)
	return detected
}

func countConfidence(count int) float64 {
	confidence := float64(count) / 10
	if confidence > 1 {
		return 1
	}
	return confidence
}

func (s *OnboardingService) persistMarker(marker string) {
	if err := s.local.Set(localstore.OnboardingMarkerKey, []byte(marker)); err != nil {
		log.Printf("persist onboarding marker: %v", err)
	}
}

func (s *OnboardingService) stateLocked(userID int64) *models.OnboardingState {
	if state, ok := s.states[userID]; ok {
		return state
	}
	state := freshState()
	if _, found := s.completionMarkerQuiet(); found {
		state.IsComplete = true
		state.CurrentStep = models.StepSuccess
	}
	s.states[userID] = state
	return state
}

func (s *OnboardingService) completionMarkerQuiet() (string, bool) {
	value, found, err := s.local.Get(localstore.OnboardingMarkerKey)
	if err != nil || !found {
		return "", false
	}
	return string(value), true
}

func freshState() *models.OnboardingState {
	return &models.OnboardingState{CurrentStep: models.StepWelcome}
}

func stepIndex(step string) int {
	for i, name := range models.OnboardingSteps {
		if name == step {
			return i
		}
	}
	return -1
}

func clampProgress(progress float64) float64 {
	if progress < 0 {
		return 0
	}
	if progress > 100 {
		return 100
	}
	return progress
}
