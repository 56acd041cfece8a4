package services

import (
	"context"
	"log"
	"sync"

	"github.com/danaingraham/wanderplan-sub002/internal/localstore"
	"github.com/danaingraham/wanderplan-sub002/internal/models"
)

type remotePreferenceStore interface {
	Get(ctx context.Context, userID int64) (*models.UserPreferences, error)
	Update(ctx context.Context, userID int64, patch models.PreferencePatch) (*models.UserPreferences, error)
	Delete(ctx context.Context, userID int64) error
}

type snapshotStore interface {
	Get(key string) ([]byte, bool, error)
	Set(key string, value []byte) error
	Remove(key string) error
}

const preferenceSnapshotName = "preferences"

// PreferenceService is the local-first accessor: reads prefer the persisted
// local snapshot and reconcile against the remote store in the background,
// writes land locally first and persist remotely without blocking. Remote
// failures degrade to local-only operation and are recorded per user, never
// surfaced as blocking errors.
//
// Every local write bumps a per-user revision; a remote response is applied
// only if the revision it started from is still current, so a stale response
// can never overwrite a newer local edit.
type PreferenceService struct {
	remote remotePreferenceStore
	local  snapshotStore

	mu       sync.Mutex
	revs     map[int64]int64
	syncErrs map[int64]error
	pending  sync.WaitGroup
}

func NewPreferenceService(remote remotePreferenceStore, local snapshotStore) *PreferenceService {
	return &PreferenceService{
		remote:   remote,
		local:    local,
		revs:     make(map[int64]int64),
		syncErrs: make(map[int64]error),
	}
}

// Load returns the user's preferences. A local snapshot is returned
// immediately with a background reconciliation against the remote store;
// without one the remote fetch happens synchronously, degrading to defaults
// on failure.
func (s *PreferenceService) Load(ctx context.Context, userID int64) (*models.UserPreferences, error) {
	if userID <= 0 {
		return nil, nil
	}

	if snapshot := s.readSnapshot(userID); snapshot != nil {
		s.reconcile(userID)
		return snapshot, nil
	}

	prefs, err := s.remote.Get(ctx, userID)
	if err != nil {
		s.recordSyncError(userID, err)
		log.Printf("preference load falling back to defaults for user %d: %v", userID, err)
		return models.DefaultPreferences(userID), nil
	}
	s.clearSyncError(userID)
	s.writeSnapshot(userID, s.revision(userID), prefs)
	return prefs, nil
}

// Save writes the optimistic merged snapshot locally and persists remotely
// in the background. The returned record is the optimistic merge; it stays
// authoritative for the session if the remote write fails.
func (s *PreferenceService) Save(ctx context.Context, userID int64, patch models.PreferencePatch) (*models.UserPreferences, error) {
	if userID <= 0 {
		return nil, nil
	}

	current := s.readSnapshot(userID)
	if current == nil {
		current = models.DefaultPreferences(userID)
	}
	merged := models.Normalize(models.ApplyPatch(current, patch))

	s.mu.Lock()
	s.revs[userID]++
	rev := s.revs[userID]
	s.mu.Unlock()

	s.writeSnapshot(userID, rev, merged)

	s.pending.Add(1)
	go func() {
		defer s.pending.Done()
		authoritative, err := s.remote.Update(context.Background(), userID, patch)
		if err != nil {
			s.recordSyncError(userID, err)
			log.Printf("preference save continuing local-only for user %d: %v", userID, err)
			return
		}
		s.clearSyncError(userID)
		// Reconcile server-assigned fields only if no newer local write
		// happened while the remote call was in flight.
		s.writeSnapshot(userID, rev, authoritative)
	}()

	return merged, nil
}

// Erase removes the record everywhere: remote store, cache (via the store)
// and the local snapshot.
func (s *PreferenceService) Erase(ctx context.Context, userID int64) error {
	if userID <= 0 {
		return nil
	}
	if err := s.remote.Delete(ctx, userID); err != nil {
		return err
	}
	s.mu.Lock()
	s.revs[userID]++
	delete(s.syncErrs, userID)
	s.mu.Unlock()
	if err := s.local.Remove(localstore.UserKey(userID, preferenceSnapshotName)); err != nil {
		log.Printf("remove local preference snapshot for user %d: %v", userID, err)
	}
	return nil
}

// SyncError reports the last remote synchronization failure for a user, or
// nil when the last sync succeeded.
func (s *PreferenceService) SyncError(userID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.syncErrs[userID]
}

func (s *PreferenceService) recordSyncError(userID int64, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.syncErrs[userID] = err
}

func (s *PreferenceService) clearSyncError(userID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.syncErrs, userID)
}

// Flush blocks until all in-flight remote writes and reconciliations have
// settled. Used on shutdown and in tests.
func (s *PreferenceService) Flush() {
	s.pending.Wait()
}

func (s *PreferenceService) reconcile(userID int64) {
	rev := s.revision(userID)
	s.pending.Add(1)
	go func() {
		defer s.pending.Done()
		prefs, err := s.remote.Get(context.Background(), userID)
		if err != nil {
			s.recordSyncError(userID, err)
			log.Printf("preference reconciliation failed for user %d: %v", userID, err)
			return
		}
		s.clearSyncError(userID)
		s.writeSnapshot(userID, rev, prefs)
	}()
}

func (s *PreferenceService) revision(userID int64) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.revs[userID]
}

func (s *PreferenceService) readSnapshot(userID int64) *models.UserPreferences {
	raw, found, err := s.local.Get(localstore.UserKey(userID, preferenceSnapshotName))
	if err != nil {
		log.Printf("read local preference snapshot for user %d: %v", userID, err)
		return nil
	}
	if !found {
		return nil
	}
	prefs, err := models.DecodeSnapshot(raw)
	if err != nil {
		log.Printf("discarding malformed local snapshot for user %d: %v", userID, err)
		return nil
	}
	return prefs
}

// writeSnapshot persists prefs locally unless a newer local revision exists.
// The revision check runs under the lock so a snapshot write and the rev
// bump of a concurrent save cannot interleave.
func (s *PreferenceService) writeSnapshot(userID, rev int64, prefs *models.UserPreferences) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.revs[userID] != rev {
		return
	}
	raw, err := models.EncodeSnapshot(prefs)
	if err != nil {
		log.Printf("encode local preference snapshot for user %d: %v", userID, err)
		return
	}
	if err := s.local.Set(localstore.UserKey(userID, preferenceSnapshotName), raw); err != nil {
		log.Printf("write local preference snapshot for user %d: %v", userID, err)
	}
}
