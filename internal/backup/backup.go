// Package backup snapshots every slot of a storage medium to timestamped
// files and restores them.
package backup

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/julianstephens/daybook/internal/constants"
	"github.com/julianstephens/daybook/internal/logger"
	"github.com/julianstephens/daybook/internal/storage"
)

const snapshotVersion = 1

// Format selects the snapshot encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

func (f Format) suffix() string {
	return "." + string(f)
}

// ParseFormat accepts "json", "yaml" or "yml".
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "", "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("unknown backup format %q (want json or yaml)", s)
}

// Snapshot holds the raw JSON of every slot at a point in time.
type Snapshot struct {
	Version   int               `json:"version" yaml:"version"`
	CreatedAt time.Time         `json:"created_at" yaml:"created_at"`
	Source    string            `json:"source" yaml:"source"`
	Slots     map[string]string `json:"slots" yaml:"slots"`
}

// BackupInfo contains information about a backup file
type BackupInfo struct {
	Path      string
	Timestamp time.Time
	Size      int64
	Format    Format
}

// Manager handles backup operations
type Manager struct {
	medium    storage.Medium
	backupDir string
	now       func() time.Time
}

// NewManager stores backups under configDir/backups.
func NewManager(medium storage.Medium, configDir string) *Manager {
	return &Manager{
		medium:    medium,
		backupDir: filepath.Join(configDir, constants.BackupDirName),
		now:       time.Now,
	}
}

// GetBackupDir returns the backup directory path
func (m *Manager) GetBackupDir() string {
	return m.backupDir
}

// Capture reads every slot from the medium.
func (m *Manager) Capture() (Snapshot, error) {
	return m.capture(m.now())
}

func (m *Manager) capture(now time.Time) (Snapshot, error) {
	keys, err := m.medium.Keys()
	if err != nil {
		return Snapshot{}, fmt.Errorf("failed to list slots: %w", err)
	}

	snap := Snapshot{
		Version:   snapshotVersion,
		CreatedAt: now.UTC().Truncate(time.Second),
		Source:    m.medium.GetConfigPath(),
		Slots:     make(map[string]string, len(keys)),
	}
	for _, key := range keys {
		value, ok, err := m.medium.Get(key)
		if err != nil {
			return Snapshot{}, err
		}
		if ok {
			snap.Slots[key] = value
		}
	}
	return snap, nil
}

// CreateBackup writes a snapshot of the medium and rotates old backups.
func (m *Manager) CreateBackup(format Format) (string, error) {
	return m.createBackup(format, false)
}

// createBackup skips rotation when called from RestoreBackup so the
// safety copy can never push out the snapshot being restored.
func (m *Manager) createBackup(format Format, skipRotation bool) (string, error) {
	if err := os.MkdirAll(m.backupDir, 0700); err != nil {
		return "", fmt.Errorf("failed to create backup directory: %w", err)
	}

	now := m.now()
	snap, err := m.capture(now)
	if err != nil {
		return "", err
	}

	data, err := encode(snap, format)
	if err != nil {
		return "", err
	}

	backupPath, err := m.uniquePath(now, format)
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(backupPath, data, 0600); err != nil {
		return "", fmt.Errorf("failed to write backup: %w", err)
	}

	if !skipRotation {
		if err := m.rotateBackups(); err != nil {
			logger.Warn("Failed to rotate old backups", "error", err)
		}
	}
	return backupPath, nil
}

func (m *Manager) uniquePath(now time.Time, format Format) (string, error) {
	candidate := func(stamp string) string {
		return filepath.Join(m.backupDir, constants.BackupFilePrefix+stamp+format.suffix())
	}

	path := candidate(now.Format("20060102-1504"))
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return path, nil
	}

	stamp := now.Format("20060102-150405")
	path = candidate(stamp)
	for counter := 1; ; counter++ {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return path, nil
		}
		if counter > 100 {
			return "", fmt.Errorf("failed to generate unique backup filename")
		}
		path = candidate(fmt.Sprintf("%s-%d", stamp, counter))
	}
}

func encode(snap Snapshot, format Format) ([]byte, error) {
	switch format {
	case FormatYAML:
		return yaml.Marshal(snap)
	default:
		return json.MarshalIndent(snap, "", "  ")
	}
}

// ReadSnapshot decodes a backup file, choosing the format by extension.
func ReadSnapshot(path string) (Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Snapshot{}, fmt.Errorf("failed to read backup: %w", err)
	}

	var snap Snapshot
	switch formatOf(path) {
	case FormatYAML:
		err = yaml.Unmarshal(data, &snap)
	default:
		err = json.Unmarshal(data, &snap)
	}
	if err != nil {
		return Snapshot{}, fmt.Errorf("backup file is corrupted or invalid: %w", err)
	}
	if snap.Version != snapshotVersion {
		return Snapshot{}, fmt.Errorf("unsupported backup version %d", snap.Version)
	}
	return snap, nil
}

func formatOf(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// ListBackups returns a list of all available backups, sorted by timestamp (newest first)
func (m *Manager) ListBackups() ([]BackupInfo, error) {
	entries, err := os.ReadDir(m.backupDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []BackupInfo{}, nil
		}
		return nil, fmt.Errorf("failed to read backup directory: %w", err)
	}

	var backups []BackupInfo
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		format := formatOf(name)
		if !strings.HasPrefix(name, constants.BackupFilePrefix) || !strings.HasSuffix(name, format.suffix()) {
			continue
		}

		timestamp, ok := parseStamp(strings.TrimSuffix(strings.TrimPrefix(name, constants.BackupFilePrefix), format.suffix()))
		if !ok {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			continue
		}
		backups = append(backups, BackupInfo{
			Path:      filepath.Join(m.backupDir, name),
			Timestamp: timestamp,
			Size:      info.Size(),
			Format:    format,
		})
	}

	sort.SliceStable(backups, func(i, j int) bool {
		if backups[i].Timestamp.Equal(backups[j].Timestamp) {
			return backups[i].Path > backups[j].Path
		}
		return backups[i].Timestamp.After(backups[j].Timestamp)
	})
	return backups, nil
}

// parseStamp reads YYYYMMDD-HHMM or YYYYMMDD-HHMMSS, ignoring a trailing -N counter.
func parseStamp(s string) (time.Time, bool) {
	parts := strings.Split(s, "-")
	if len(parts) == 3 {
		s = parts[0] + "-" + parts[1]
	}
	for _, layout := range []string{"20060102-1504", "20060102-150405"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// rotateBackups removes old backups beyond the retention limit
func (m *Manager) rotateBackups() error {
	backups, err := m.ListBackups()
	if err != nil {
		return err
	}
	for i := constants.MaxBackups; i < len(backups); i++ {
		if err := os.Remove(backups[i].Path); err != nil {
			return fmt.Errorf("failed to remove old backup %s: %w", backups[i].Path, err)
		}
	}
	return nil
}

// RestoreBackup replaces every slot with the snapshot's contents, except
// that purchases are merged rather than replaced. The current state is
// saved first; its path is returned.
func (m *Manager) RestoreBackup(backupPath string) (string, error) {
	snap, err := ReadSnapshot(backupPath)
	if err != nil {
		return "", err
	}

	safety, err := m.createBackup(formatOf(backupPath), true)
	if err != nil {
		return "", fmt.Errorf("failed to backup current state before restore: %w", err)
	}

	current, err := m.medium.Keys()
	if err != nil {
		return safety, fmt.Errorf("failed to list slots: %w", err)
	}
	for _, key := range current {
		if _, keep := snap.Slots[key]; keep || purchaseSlot(key) {
			continue
		}
		if err := m.medium.Delete(key); err != nil {
			return safety, fmt.Errorf("failed to clear slot %s: %w", key, err)
		}
	}

	keys := make([]string, 0, len(snap.Slots))
	for key := range snap.Slots {
		if !purchaseSlot(key) {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	for _, key := range keys {
		if err := m.medium.Set(key, snap.Slots[key]); err != nil {
			return safety, fmt.Errorf("failed to restore slot %s: %w", key, err)
		}
	}

	for _, key := range []string{constants.SlotPurchasedThemes, constants.SlotPurchasedStickers} {
		if err := m.mergePurchases(key, snap.Slots[key]); err != nil {
			return safety, err
		}
	}
	return safety, nil
}

func purchaseSlot(key string) bool {
	return key == constants.SlotPurchasedThemes || key == constants.SlotPurchasedStickers
}

// mergePurchases writes the union of the owned keys and the snapshot's.
// Purchases survive a restore from a snapshot taken before them.
func (m *Manager) mergePurchases(key, raw string) error {
	slot := storage.NewSlot(m.medium, key, func() []string { return []string{} })
	owned, err := slot.Load()
	if err != nil {
		return err
	}

	var restored []string
	if raw != "" {
		if err := json.Unmarshal([]byte(raw), &restored); err != nil {
			logger.Warn("Ignoring malformed purchases in backup", "slot", key, "error", err)
			restored = nil
		}
	}

	union := slices.Clone(owned)
	for _, k := range restored {
		if !slices.Contains(union, k) {
			union = append(union, k)
		}
	}
	if len(union) == len(owned) {
		return nil
	}
	sort.Strings(union)
	return slot.Save(union)
}
