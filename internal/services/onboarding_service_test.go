package services

import (
	"sync"
	"testing"

	"github.com/danaingraham/wanderplan-sub002/internal/localstore"
	"github.com/danaingraham/wanderplan-sub002/internal/models"
)

type recordingNotifier struct {
	mu        sync.Mutex
	messages  []string
	completes int
	detected  *models.UserPreferences
}

func (r *recordingNotifier) NotifyScanProgress(_ int64, _ float64, message string, _ models.ScannedData) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages = append(r.messages, message)
}

func (r *recordingNotifier) NotifyScanComplete(_ int64, detected *models.UserPreferences, _ models.ScannedData) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.completes++
	r.detected = detected
}

func newTestOnboarding(t *testing.T, driver ScanDriver) (*OnboardingService, *recordingNotifier) {
	t.Helper()
	notifier := &recordingNotifier{}
	if driver == nil {
		driver = &InstantScanDriver{}
	}
	return NewOnboardingService(newMemorySnapshotStore(), notifier, driver, 0), notifier
}

func TestInitialStateStartsAtWelcome(t *testing.T) {
	service, _ := newTestOnboarding(t, nil)

	state := service.State(7)
	if state.CurrentStep != models.StepWelcome {
		t.Fatalf("expected welcome, got %q", state.CurrentStep)
	}
	if state.IsComplete || state.IsScanning {
		t.Fatalf("expected a fresh state, got %+v", state)
	}
	if !service.ShouldShowOnboarding(7) {
		t.Fatal("fresh state should show onboarding")
	}
	if service.ShouldShowOnboarding(0) {
		t.Fatal("unauthenticated users never see onboarding")
	}
}

func TestSelectPathShortcuts(t *testing.T) {
	tests := []struct {
		path     string
		wantStep string
		complete bool
	}{
		{models.PathGmail, models.StepGmailConnect, false},
		{models.PathManual, models.StepGaps, false},
		{models.PathSkip, models.StepSuccess, true},
	}

	for _, tc := range tests {
		t.Run(tc.path, func(t *testing.T) {
			service, _ := newTestOnboarding(t, nil)
			state, err := service.SelectPath(7, tc.path)
			if err != nil {
				t.Fatalf("SelectPath: %v", err)
			}
			if state.CurrentStep != tc.wantStep {
				t.Fatalf("expected step %q, got %q", tc.wantStep, state.CurrentStep)
			}
			if state.IsComplete != tc.complete {
				t.Fatalf("expected complete=%v, got %v", tc.complete, state.IsComplete)
			}
		})
	}
}

func TestSelectPathRejectsUnknownPath(t *testing.T) {
	service, _ := newTestOnboarding(t, nil)
	if _, err := service.SelectPath(7, "teleport"); err == nil {
		t.Fatal("expected an error for an unknown path")
	}
}

func TestSkipPathPersistsSkippedMarker(t *testing.T) {
	service, _ := newTestOnboarding(t, nil)

	if _, err := service.SelectPath(7, models.PathSkip); err != nil {
		t.Fatalf("SelectPath: %v", err)
	}
	marker, found := service.CompletionMarker()
	if !found || marker != models.CompletionSkipped {
		t.Fatalf("expected skipped marker, got %q found=%v", marker, found)
	}
	if service.ShouldShowOnboarding(7) {
		t.Fatal("skipped onboarding should not reappear")
	}
}

func TestCompletionMarkerSuppressesFutureSessions(t *testing.T) {
	local := newMemorySnapshotStore()
	first := NewOnboardingService(local, nil, &InstantScanDriver{}, 0)
	first.CompleteOnboarding(7)

	marker, found := first.CompletionMarker()
	if !found || marker != models.CompletionDone {
		t.Fatalf("expected done marker, got %q found=%v", marker, found)
	}

	// A new service over the same store models a later session.
	second := NewOnboardingService(local, nil, &InstantScanDriver{}, 0)
	state := second.State(7)
	if !state.IsComplete || state.CurrentStep != models.StepSuccess {
		t.Fatalf("expected persisted completion to load, got %+v", state)
	}
	if second.ShouldShowOnboarding(7) {
		t.Fatal("completed onboarding should not reappear")
	}
}

func TestResetClearsMarkerAndState(t *testing.T) {
	service, _ := newTestOnboarding(t, nil)
	service.SkipOnboarding(7)

	state := service.ResetOnboarding(7)
	if state.CurrentStep != models.StepWelcome || state.IsComplete {
		t.Fatalf("expected a fresh state after reset, got %+v", state)
	}
	if _, found := service.CompletionMarker(); found {
		t.Fatal("expected reset to clear the persisted marker")
	}
	if !service.ShouldShowOnboarding(7) {
		t.Fatal("onboarding should show again after reset")
	}
}

func TestNextAndPreviousFollowStepOrder(t *testing.T) {
	service, _ := newTestOnboarding(t, nil)

	state := service.NextStep(7)
	if state.CurrentStep != models.StepGmailConnect {
		t.Fatalf("expected gmail-connect after welcome, got %q", state.CurrentStep)
	}
	state = service.PreviousStep(7)
	if state.CurrentStep != models.StepWelcome {
		t.Fatalf("expected welcome after back, got %q", state.CurrentStep)
	}
	// Backing past the first step stays put.
	state = service.PreviousStep(7)
	if state.CurrentStep != models.StepWelcome {
		t.Fatalf("expected welcome to be a floor, got %q", state.CurrentStep)
	}
}

func TestPreviousFromGapsOnManualPathReturnsToWelcome(t *testing.T) {
	service, _ := newTestOnboarding(t, nil)

	if _, err := service.SelectPath(7, models.PathManual); err != nil {
		t.Fatalf("SelectPath: %v", err)
	}
	state := service.PreviousStep(7)
	if state.CurrentStep != models.StepWelcome {
		t.Fatalf("expected the manual shortcut to reverse, got %q", state.CurrentStep)
	}
}

func TestScanProgressClamps(t *testing.T) {
	service, _ := newTestOnboarding(t, nil)

	if state := service.UpdateScanProgress(7, 150); state.ScanProgress != 100 {
		t.Fatalf("expected clamp to 100, got %v", state.ScanProgress)
	}
	if state := service.UpdateScanProgress(7, -5); state.ScanProgress != 0 {
		t.Fatalf("expected clamp to 0, got %v", state.ScanProgress)
	}
}

func TestStartScanRequiresGmailPath(t *testing.T) {
	service, _ := newTestOnboarding(t, nil)

	if _, err := service.StartScan(7); err == nil {
		t.Fatal("expected scan start to fail off the gmail path")
	}
}

func TestInstantScanRunsToCompletion(t *testing.T) {
	driver := &InstantScanDriver{Found: models.ScannedData{
		Hotels:      4,
		Flights:     2,
		Restaurants: 6,
		Activities:  9,
	}}
	service, notifier := newTestOnboarding(t, driver)

	if _, err := service.SelectPath(7, models.PathGmail); err != nil {
		t.Fatalf("SelectPath: %v", err)
	}
	if _, err := service.StartScan(7); err != nil {
		t.Fatalf("StartScan: %v", err)
	}

	state := service.State(7)
	if state.IsScanning {
		t.Fatal("expected the scan to have finished")
	}
	if state.ScanProgress != 100 {
		t.Fatalf("expected progress 100, got %v", state.ScanProgress)
	}
	if state.CurrentStep != models.StepResults {
		t.Fatalf("expected auto-advance to results, got %q", state.CurrentStep)
	}
	if state.ScannedData.Hotels != 4 || state.ScannedData.Activities != 9 {
		t.Fatalf("expected scanned counts retained, got %+v", state.ScannedData)
	}

	detected := state.DetectedPreferences
	if detected == nil {
		t.Fatal("expected detected preferences")
	}
	if len(detected.AccommodationStyle) != 1 || detected.AccommodationStyle[0].Style != "hotel" {
		t.Fatalf("expected a hotel accommodation signal, got %+v", detected.AccommodationStyle)
	}
	if detected.PacePreference != models.PacePacked {
		t.Fatalf("expected a packed pace from nine activities, got %q", detected.PacePreference)
	}
	if detected.LastCalculatedAt == nil {
		t.Fatal("expected detection to stamp the calculation time")
	}

	notifier.mu.Lock()
	defer notifier.mu.Unlock()
	if len(notifier.messages) != len(scanStageMessages) {
		t.Fatalf("expected all %d stage messages at 100%%, got %d", len(scanStageMessages), len(notifier.messages))
	}
	if notifier.completes != 1 {
		t.Fatalf("expected one completion notification, got %d", notifier.completes)
	}
	if notifier.detected == nil {
		t.Fatal("expected the detected draft in the completion notification")
	}
}

func TestStopScanIgnoresLateEvents(t *testing.T) {
	service, _ := newTestOnboarding(t, nil)

	if _, err := service.SelectPath(7, models.PathGmail); err != nil {
		t.Fatalf("SelectPath: %v", err)
	}
	service.StopScan(7)
	service.applyScanEvent(7, ScanEvent{Progress: 60})

	if state := service.State(7); state.ScanProgress != 0 {
		t.Fatalf("expected late events to be ignored, got progress %v", state.ScanProgress)
	}
}

func TestTemporaryPreferencesDraftIsStored(t *testing.T) {
	service, _ := newTestOnboarding(t, nil)

	budget := models.BudgetShoestring
	state := service.UpdateTemporaryPreferences(7, models.PreferenceOverride{BudgetType: &budget})
	if state.TemporaryPreferences.BudgetType == nil || *state.TemporaryPreferences.BudgetType != models.BudgetShoestring {
		t.Fatalf("expected the draft retained, got %+v", state.TemporaryPreferences)
	}
}

func TestStartWithGmailResetsAndPreselects(t *testing.T) {
	service, _ := newTestOnboarding(t, nil)
	service.CompleteOnboarding(7)

	state := service.StartWithGmail(7)
	if state.CurrentStep != models.StepGmailConnect || state.SelectedPath != models.PathGmail {
		t.Fatalf("expected a fresh gmail-connect state, got %+v", state)
	}
	if state.IsComplete {
		t.Fatal("expected the restart to clear completion")
	}
	if _, found := service.CompletionMarker(); found {
		t.Fatal("expected the restart to clear the marker")
	}
}

func TestMarkerKeyIsUnscoped(t *testing.T) {
	local := newMemorySnapshotStore()
	service := NewOnboardingService(local, nil, &InstantScanDriver{}, 0)
	service.CompleteOnboarding(7)

	if _, found, _ := local.Get(localstore.OnboardingMarkerKey); !found {
		t.Fatalf("expected the marker under %q", localstore.OnboardingMarkerKey)
	}
}
