package checkpoint

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"devscout/pkg/logger"
	"devscout/pkg/models"

	"github.com/google/uuid"
)

const currentVersion = 1

// Checkpoint is the saved state of an interrupted aggregation run
type Checkpoint[T models.Record] struct {
	RunID      string    `json:"run_id"`
	Kind       string    `json:"kind"`
	NextCursor int       `json:"next_cursor"`
	Total      int       `json:"total"`
	Records    []T       `json:"records"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
	Version    int       `json:"version"`
}

// Resumable reports whether the checkpoint belongs to a run over total
// sources that still has sources left
func (c *Checkpoint[T]) Resumable(total int) bool {
	return c != nil && c.Total == total && c.NextCursor > 0 && c.NextCursor < total
}

// Manager handles checkpoint operations for one run kind
type Manager[T models.Record] struct {
	kind           string
	checkpointPath string
	logger         logger.Logger
}

// NewManager creates a manager storing the checkpoint for kind under the
// platform data directory
func NewManager[T models.Record](kind string) (*Manager[T], error) {
	dataDir, err := getDataDirectory()
	if err != nil {
		return nil, fmt.Errorf("failed to get data directory: %w", err)
	}

	checkpointsDir := filepath.Join(dataDir, "checkpoints")
	if err := os.MkdirAll(checkpointsDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create checkpoints directory: %w", err)
	}

	return &Manager[T]{
		kind:           kind,
		checkpointPath: filepath.Join(checkpointsDir, fmt.Sprintf("%s.checkpoint.json", kind)),
		logger:         logger.GetLogger(),
	}, nil
}

// Path returns the checkpoint file path
func (m *Manager[T]) Path() string {
	return m.checkpointPath
}

// Create starts a new checkpoint for a run over total sources and saves it
func (m *Manager[T]) Create(total int) (*Checkpoint[T], error) {
	now := time.Now()
	checkpoint := &Checkpoint[T]{
		RunID:     uuid.NewString(),
		Kind:      m.kind,
		Total:     total,
		CreatedAt: now,
		UpdatedAt: now,
		Version:   currentVersion,
	}

	if err := m.Save(checkpoint); err != nil {
		return nil, fmt.Errorf("failed to save initial checkpoint: %w", err)
	}

	m.logger.InfoWithFields("Checkpoint created", map[string]interface{}{
		"kind":   m.kind,
		"run_id": checkpoint.RunID,
		"path":   m.checkpointPath,
	})

	return checkpoint, nil
}

// Load loads an existing checkpoint. It returns nil, nil when there is none.
func (m *Manager[T]) Load() (*Checkpoint[T], error) {
	file, err := os.Open(m.checkpointPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to open checkpoint file: %w", err)
	}
	defer file.Close()

	var checkpoint Checkpoint[T]
	if err := json.NewDecoder(file).Decode(&checkpoint); err != nil {
		return nil, fmt.Errorf("failed to decode checkpoint: %w", err)
	}
	if checkpoint.Version > currentVersion {
		return nil, fmt.Errorf("checkpoint version %d is newer than supported version %d", checkpoint.Version, currentVersion)
	}

	m.logger.InfoWithFields("Checkpoint loaded", map[string]interface{}{
		"kind":        checkpoint.Kind,
		"run_id":      checkpoint.RunID,
		"next_cursor": checkpoint.NextCursor,
		"records":     len(checkpoint.Records),
		"updated_at":  checkpoint.UpdatedAt,
	})

	return &checkpoint, nil
}

// Save saves the checkpoint to disk atomically
func (m *Manager[T]) Save(checkpoint *Checkpoint[T]) error {
	checkpoint.UpdatedAt = time.Now()

	tempPath := m.checkpointPath + ".tmp"
	file, err := os.Create(tempPath)
	if err != nil {
		return fmt.Errorf("failed to create temporary checkpoint file: %w", err)
	}

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(checkpoint); err != nil {
		file.Close()
		os.Remove(tempPath)
		return fmt.Errorf("failed to encode checkpoint: %w", err)
	}

	if err := file.Sync(); err != nil {
		file.Close()
		os.Remove(tempPath)
		return fmt.Errorf("failed to sync checkpoint file: %w", err)
	}

	if err := file.Close(); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("failed to close checkpoint file: %w", err)
	}

	if err := os.Rename(tempPath, m.checkpointPath); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("failed to replace checkpoint file: %w", err)
	}

	m.logger.DebugWithFields("Checkpoint saved", map[string]interface{}{
		"kind":        checkpoint.Kind,
		"next_cursor": checkpoint.NextCursor,
		"records":     len(checkpoint.Records),
	})

	return nil
}

// UpdateProgress records the ranked accumulator and the cursor to resume
// from. It is meant to be called from the aggregator's partial callback.
func (m *Manager[T]) UpdateProgress(checkpoint *Checkpoint[T], records []T, nextCursor int) error {
	checkpoint.Records = records
	checkpoint.NextCursor = nextCursor
	return m.Save(checkpoint)
}

// Delete removes the checkpoint file
func (m *Manager[T]) Delete() error {
	if err := os.Remove(m.checkpointPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete checkpoint: %w", err)
	}

	m.logger.DebugWithFields("Checkpoint deleted", map[string]interface{}{"kind": m.kind})
	return nil
}

// Exists checks if a checkpoint file exists
func (m *Manager[T]) Exists() bool {
	_, err := os.Stat(m.checkpointPath)
	return err == nil
}

// Info returns a summary of the stored checkpoint, or nil when there is none
func (m *Manager[T]) Info() (map[string]interface{}, error) {
	checkpoint, err := m.Load()
	if err != nil || checkpoint == nil {
		return nil, err
	}

	return map[string]interface{}{
		"kind":        checkpoint.Kind,
		"run_id":      checkpoint.RunID,
		"next_cursor": checkpoint.NextCursor,
		"total":       checkpoint.Total,
		"records":     len(checkpoint.Records),
		"created_at":  checkpoint.CreatedAt,
		"updated_at":  checkpoint.UpdatedAt,
		"age":         time.Since(checkpoint.UpdatedAt),
	}, nil
}

// Backup copies the current checkpoint next to it with a .backup suffix.
// A forced restart calls this before discarding the old run.
func (m *Manager[T]) Backup() error {
	if !m.Exists() {
		return nil
	}

	src, err := os.Open(m.checkpointPath)
	if err != nil {
		return fmt.Errorf("failed to open checkpoint for backup: %w", err)
	}
	defer src.Close()

	dst, err := os.Create(m.checkpointPath + ".backup")
	if err != nil {
		return fmt.Errorf("failed to create backup file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return fmt.Errorf("failed to copy checkpoint to backup: %w", err)
	}

	m.logger.Debug("Checkpoint backed up")
	return nil
}

// getDataDirectory returns the appropriate data directory for the current OS
func getDataDirectory() (string, error) {
	var dataDir string

	switch runtime.GOOS {
	case "linux":
		if xdgDataHome := os.Getenv("XDG_DATA_HOME"); xdgDataHome != "" {
			dataDir = filepath.Join(xdgDataHome, "devscout")
		} else {
			home, err := os.UserHomeDir()
			if err != nil {
				return "", err
			}
			dataDir = filepath.Join(home, ".local", "share", "devscout")
		}
	case "darwin":
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		dataDir = filepath.Join(home, "Library", "Application Support", "devscout")
	case "windows":
		appData := os.Getenv("APPDATA")
		if appData == "" {
			return "", fmt.Errorf("APPDATA environment variable not set")
		}
		dataDir = filepath.Join(appData, "devscout")
	default:
		return "", fmt.Errorf("unsupported operating system: %s", runtime.GOOS)
	}

	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create data directory: %w", err)
	}

	return dataDir, nil
}
