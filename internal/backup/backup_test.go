package backup

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/julianstephens/smokefree/internal/constants"
	"github.com/julianstephens/smokefree/internal/models"
	"github.com/julianstephens/smokefree/internal/storage"
	"github.com/julianstephens/smokefree/internal/storage/sqlite"
)

func testProfile(name string) models.Profile {
	return models.Profile{
		Name:              name,
		StartDate:         time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		CigarettesPerDay:  20,
		CostPerPack:       10,
		CigarettesPerPack: 20,
		Currency:          models.CurrencyUSD,
	}
}

func setupSQLite(t *testing.T, name string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "smokefree.db")
	store := sqlite.NewStore(path)
	if err := store.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	if err := store.SaveProfile(testProfile(name)); err != nil {
		t.Fatalf("SaveProfile failed: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	return path
}

func profileName(t *testing.T, store storage.Provider) string {
	t.Helper()
	if err := store.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	defer store.Close()
	p, err := store.GetProfile()
	if err != nil {
		t.Fatalf("GetProfile failed: %v", err)
	}
	return p.Name
}

// tickingClock returns a clock that advances one minute per call
func tickingClock(start time.Time) func() time.Time {
	cur := start
	return func() time.Time {
		t := cur
		cur = cur.Add(time.Minute)
		return t
	}
}

func TestCreateSQLiteBackup(t *testing.T) {
	path := setupSQLite(t, "Sam")
	mgr := NewManager(path)

	backupPath, err := mgr.Create()
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if filepath.Dir(backupPath) != filepath.Join(filepath.Dir(path), constants.BackupDirName) {
		t.Errorf("backup written to %s", backupPath)
	}
	if got := profileName(t, sqlite.NewStore(backupPath)); got != "Sam" {
		t.Errorf("backup profile name = %q, want Sam", got)
	}
}

func TestCreateWithoutStore(t *testing.T) {
	mgr := NewManager(filepath.Join(t.TempDir(), "missing.db"))
	if _, err := mgr.Create(); err == nil {
		t.Fatal("expected error when the store does not exist")
	}
}

func TestNameCollisions(t *testing.T) {
	path := setupSQLite(t, "Sam")
	mgr := NewManager(path)
	fixed := time.Date(2026, 3, 4, 5, 6, 7, 0, time.Local)
	mgr.now = func() time.Time { return fixed }

	var paths []string
	for i := 0; i < 3; i++ {
		p, err := mgr.Create()
		if err != nil {
			t.Fatalf("Create #%d failed: %v", i, err)
		}
		paths = append(paths, filepath.Base(p))
	}

	want := []string{
		"smokefree-20260304-0506.db",
		"smokefree-20260304-050607.db",
		"smokefree-20260304-050607-1.db",
	}
	for i := range want {
		if paths[i] != want[i] {
			t.Errorf("backup %d = %s, want %s", i, paths[i], want[i])
		}
	}

	backups, err := mgr.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(backups) != 3 {
		t.Errorf("List() returned %d backups, want 3", len(backups))
	}
}

func TestRotation(t *testing.T) {
	path := setupSQLite(t, "Sam")
	mgr := NewManager(path)
	mgr.now = tickingClock(time.Date(2026, 3, 4, 5, 0, 0, 0, time.Local))

	for i := 0; i < constants.MaxBackups+5; i++ {
		if _, err := mgr.Create(); err != nil {
			t.Fatalf("Create #%d failed: %v", i, err)
		}
	}

	backups, err := mgr.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(backups) != constants.MaxBackups {
		t.Fatalf("expected %d backups after rotation, got %d", constants.MaxBackups, len(backups))
	}
	for i := 1; i < len(backups); i++ {
		if backups[i].Timestamp.After(backups[i-1].Timestamp) {
			t.Errorf("backups not sorted newest first at %d", i)
		}
	}
	// The five oldest were removed
	oldest := time.Date(2026, 3, 4, 5, 5, 0, 0, time.Local)
	if !backups[len(backups)-1].Timestamp.Equal(oldest) {
		t.Errorf("oldest kept backup = %v, want %v", backups[len(backups)-1].Timestamp, oldest)
	}
}

func TestListIgnoresForeignFiles(t *testing.T) {
	path := setupSQLite(t, "Sam")
	mgr := NewManager(path)
	if err := os.MkdirAll(mgr.BackupDir(), 0700); err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"notes.txt", "smokefree-garbage.db", "smokefree-20260101-1200.json"} {
		if err := os.WriteFile(filepath.Join(mgr.BackupDir(), name), []byte("x"), 0600); err != nil {
			t.Fatal(err)
		}
	}

	backups, err := mgr.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(backups) != 0 {
		t.Errorf("expected foreign files to be ignored, got %+v", backups)
	}
}

func TestRestoreSQLite(t *testing.T) {
	path := setupSQLite(t, "Before")
	mgr := NewManager(path)
	mgr.now = tickingClock(time.Date(2026, 3, 4, 5, 0, 0, 0, time.Local))

	backupPath, err := mgr.Create()
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	store := sqlite.NewStore(path)
	if err := store.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if err := store.SaveProfile(testProfile("After")); err != nil {
		t.Fatalf("SaveProfile failed: %v", err)
	}
	store.Close()

	safety, err := mgr.Restore(backupPath)
	if err != nil {
		t.Fatalf("Restore failed: %v", err)
	}
	if got := profileName(t, sqlite.NewStore(path)); got != "Before" {
		t.Errorf("restored profile name = %q, want Before", got)
	}
	if safety == "" {
		t.Fatal("expected a safety backup of the replaced store")
	}
	if got := profileName(t, sqlite.NewStore(safety)); got != "After" {
		t.Errorf("safety backup profile name = %q, want After", got)
	}
}

func TestRestoreRejectsInvalidBackup(t *testing.T) {
	path := setupSQLite(t, "Sam")
	mgr := NewManager(path)

	bogus := filepath.Join(t.TempDir(), "smokefree-20260101-1200.db")
	if err := os.WriteFile(bogus, []byte("definitely not sqlite"), 0600); err != nil {
		t.Fatal(err)
	}
	if _, err := mgr.Restore(bogus); err == nil {
		t.Fatal("expected restore of a corrupt backup to fail")
	}
	if got := profileName(t, sqlite.NewStore(path)); got != "Sam" {
		t.Errorf("store changed after failed restore: %q", got)
	}

	if _, err := mgr.Restore(filepath.Join(t.TempDir(), "missing.db")); err == nil {
		t.Fatal("expected restore of a missing backup to fail")
	}
}

func TestJSONBackupAndRestore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "smokefree.json")
	store := storage.NewJSONStore(path)
	if err := store.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	if err := store.SaveProfile(testProfile("Before")); err != nil {
		t.Fatalf("SaveProfile failed: %v", err)
	}

	mgr := NewManager(path)
	mgr.now = tickingClock(time.Date(2026, 3, 4, 5, 0, 0, 0, time.Local))
	backupPath, err := mgr.Create()
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if filepath.Ext(backupPath) != ".json" {
		t.Errorf("json backup has extension %s", filepath.Ext(backupPath))
	}

	if err := store.SaveProfile(testProfile("After")); err != nil {
		t.Fatalf("SaveProfile failed: %v", err)
	}
	if _, err := mgr.Restore(backupPath); err != nil {
		t.Fatalf("Restore failed: %v", err)
	}
	if got := profileName(t, storage.NewJSONStore(path)); got != "Before" {
		t.Errorf("restored profile name = %q, want Before", got)
	}

	bogus := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(bogus, []byte("{not json"), 0600); err != nil {
		t.Fatal(err)
	}
	if _, err := mgr.Restore(bogus); err == nil {
		t.Error("expected restore of invalid JSON to fail")
	}
}
