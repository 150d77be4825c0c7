package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/julianstephens/smokefree/internal/logger"
	"github.com/julianstephens/smokefree/internal/models"
)

const jsonStoreVersion = 1

// document is the on-disk layout. Each section decodes independently so a
// damaged section does not take the others down with it.
type document struct {
	Version      int                        `json:"version"`
	Profile      *models.Profile            `json:"profile"`
	Cravings     []models.CravingEvent      `json:"cravings"`
	Achievements []models.AchievementRecord `json:"achievements"`
}

type rawDocument struct {
	Version      int               `json:"version"`
	Profile      json.RawMessage   `json:"profile"`
	Cravings     []json.RawMessage `json:"cravings"`
	Achievements json.RawMessage   `json:"achievements"`
}

// JSONStore keeps every record in one JSON file, rewritten in full on each
// change.
type JSONStore struct {
	path string
	doc  *document
}

func NewJSONStore(path string) *JSONStore {
	return &JSONStore{
		path: path,
	}
}

func (s *JSONStore) Init() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if _, err := os.Stat(s.path); err == nil {
		return s.Load()
	}

	s.doc = &document{Version: jsonStoreVersion}
	return s.save()
}

func (s *JSONStore) Load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return ErrNotInitialized
		}
		return fmt.Errorf("failed to read storage: %w", err)
	}

	doc, err := decodeDocument(data)
	if err != nil {
		// Keep the unreadable file around for inspection and start empty
		aside := fmt.Sprintf("%s.corrupt-%s", s.path, time.Now().Format("20060102-150405"))
		logger.Warn("Storage file is corrupt, moving it aside", "path", s.path, "moved_to", aside, "error", err)
		if renameErr := os.Rename(s.path, aside); renameErr != nil {
			return fmt.Errorf("failed to move corrupt storage aside: %w", renameErr)
		}
		s.doc = &document{Version: jsonStoreVersion}
		return s.save()
	}

	s.doc = doc
	return nil
}

func decodeDocument(data []byte) (*document, error) {
	var raw rawDocument
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	doc := &document{Version: raw.Version}

	if len(raw.Profile) > 0 && string(raw.Profile) != "null" {
		var p models.Profile
		if err := json.Unmarshal(raw.Profile, &p); err != nil || p.StartDate.IsZero() {
			logger.Warn("Ignoring unreadable profile section", "error", err)
		} else {
			doc.Profile = &p
		}
	}

	for i, item := range raw.Cravings {
		var e models.CravingEvent
		if err := json.Unmarshal(item, &e); err != nil {
			logger.Warn("Ignoring unreadable craving entry", "index", i, "error", err)
			continue
		}
		doc.Cravings = append(doc.Cravings, e)
	}

	if len(raw.Achievements) > 0 {
		if err := json.Unmarshal(raw.Achievements, &doc.Achievements); err != nil {
			logger.Warn("Ignoring unreadable achievements section", "error", err)
			doc.Achievements = nil
		}
	}

	return doc, nil
}

func (s *JSONStore) Close() error {
	return nil
}

func (s *JSONStore) save() error {
	s.doc.Version = jsonStoreVersion
	data, err := json.MarshalIndent(s.doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize storage: %w", err)
	}

	// Write-then-rename so a crash never leaves a half-written file
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("failed to write storage: %w", err)
	}

	return nil
}

func (s *JSONStore) GetProfile() (models.Profile, error) {
	if s.doc == nil {
		return models.Profile{}, ErrNotLoaded
	}
	if s.doc.Profile == nil {
		return models.Profile{}, ErrNotFound
	}
	return *s.doc.Profile, nil
}

func (s *JSONStore) SaveProfile(p models.Profile) error {
	if s.doc == nil {
		return ErrNotLoaded
	}
	s.doc.Profile = &p
	return s.save()
}

func (s *JSONStore) AppendCraving(e models.CravingEvent, p models.Profile) error {
	if s.doc == nil {
		return ErrNotLoaded
	}
	for _, existing := range s.doc.Cravings {
		if existing.ID == e.ID {
			return fmt.Errorf("craving %s already recorded", e.ID)
		}
	}
	s.doc.Cravings = append(s.doc.Cravings, e)
	s.doc.Profile = &p
	return s.save()
}

func (s *JSONStore) GetCravings() ([]models.CravingEvent, error) {
	if s.doc == nil {
		return nil, ErrNotLoaded
	}
	out := make([]models.CravingEvent, len(s.doc.Cravings))
	copy(out, s.doc.Cravings)
	return out, nil
}

func (s *JSONStore) GetAchievements() ([]models.AchievementRecord, error) {
	if s.doc == nil {
		return nil, ErrNotLoaded
	}
	out := make([]models.AchievementRecord, len(s.doc.Achievements))
	copy(out, s.doc.Achievements)
	return out, nil
}

func (s *JSONStore) AddAchievements(records ...models.AchievementRecord) error {
	if s.doc == nil {
		return ErrNotLoaded
	}

	have := make(map[string]bool, len(s.doc.Achievements))
	for _, r := range s.doc.Achievements {
		have[r.ID] = true
	}

	added := 0
	for _, r := range records {
		if have[r.ID] {
			continue
		}
		have[r.ID] = true
		s.doc.Achievements = append(s.doc.Achievements, r)
		added++
	}
	if added == 0 {
		return nil
	}
	return s.save()
}

func (s *JSONStore) Reset() error {
	if s.doc == nil {
		return ErrNotLoaded
	}
	s.doc = &document{Version: jsonStoreVersion}
	return s.save()
}

func (s *JSONStore) GetConfigPath() string {
	return s.path
}

// IsNotFound reports whether err means no quit attempt is stored
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
