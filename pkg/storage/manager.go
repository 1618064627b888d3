package storage

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"
)

// timestampLayout sorts lexically in time order
const timestampLayout = "20060102-150405"

// Manager writes run exports and reports into an output directory and
// keeps an index of the exports already there
type Manager struct {
	outputDir string
	exports   map[string][]string // kind -> file names, oldest first
	mu        sync.RWMutex
}

// NewManager creates the output directory if needed and indexes the
// exports it already holds
func NewManager(outputDir string) (*Manager, error) {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	manager := &Manager{
		outputDir: outputDir,
		exports:   make(map[string][]string),
	}

	if err := manager.scanExistingFiles(); err != nil {
		return nil, fmt.Errorf("failed to scan existing files: %w", err)
	}

	return manager, nil
}

// ExportName returns the file name of an export of kind taken at t
func ExportName(kind string, t time.Time) string {
	return fmt.Sprintf("%s-%s.json", kind, t.UTC().Format(timestampLayout))
}

// parseExportName splits "{kind}-{timestamp}.json"; ok is false for any
// other file
func parseExportName(name string) (kind string, ok bool) {
	base, found := strings.CutSuffix(name, ".json")
	if !found || len(base) < len(timestampLayout)+2 {
		return "", false
	}
	cut := len(base) - len(timestampLayout)
	if base[cut-1] != '-' {
		return "", false
	}
	if _, err := time.Parse(timestampLayout, base[cut:]); err != nil {
		return "", false
	}
	return base[:cut-1], true
}

func (m *Manager) scanExistingFiles() error {
	entries, err := os.ReadDir(m.outputDir)
	if err != nil {
		return fmt.Errorf("failed to read directory: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if kind, ok := parseExportName(entry.Name()); ok {
			m.exports[kind] = append(m.exports[kind], entry.Name())
		}
	}
	for kind := range m.exports {
		slices.Sort(m.exports[kind])
	}
	return nil
}

// ExportJSON writes v as indented JSON to "{kind}-{timestamp}.json" and
// returns the file path
func (m *Manager) ExportJSON(kind string, v interface{}, at time.Time) (string, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode %s export: %w", kind, err)
	}

	name := ExportName(kind, at)
	if err := m.WriteFile(name, bytes.NewReader(data)); err != nil {
		return "", err
	}

	m.mu.Lock()
	if !slices.Contains(m.exports[kind], name) {
		m.exports[kind] = append(m.exports[kind], name)
		slices.Sort(m.exports[kind])
	}
	m.mu.Unlock()

	return filepath.Join(m.outputDir, name), nil
}

// WriteFile atomically writes the contents of r to name in the output
// directory
func (m *Manager) WriteFile(name string, r io.Reader) error {
	filename := filepath.Join(m.outputDir, name)

	tempFile := filename + ".tmp"
	out, err := os.Create(tempFile)
	if err != nil {
		return fmt.Errorf("failed to create temporary file: %w", err)
	}

	_, err = io.Copy(out, r)
	closeErr := out.Close()

	if err != nil {
		os.Remove(tempFile)
		return fmt.Errorf("failed to write %s: %w", name, err)
	}

	if closeErr != nil {
		os.Remove(tempFile)
		return fmt.Errorf("failed to close file: %w", closeErr)
	}

	if err := os.Rename(tempFile, filename); err != nil {
		os.Remove(tempFile)
		return fmt.Errorf("failed to rename temporary file: %w", err)
	}

	return nil
}

// Latest returns the path of the newest export of kind, or "" when there
// is none
func (m *Manager) Latest(kind string) string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	names := m.exports[kind]
	if len(names) == 0 {
		return ""
	}
	return filepath.Join(m.outputDir, names[len(names)-1])
}

// LoadJSON decodes the export at path into v
func LoadJSON(path string, v interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read export: %w", err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to decode export %s: %w", filepath.Base(path), err)
	}
	return nil
}

// GetOutputDir returns the output directory path
func (m *Manager) GetOutputDir() string {
	return m.outputDir
}

// ExportCount returns the number of exports of kind
func (m *Manager) ExportCount(kind string) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.exports[kind])
}
