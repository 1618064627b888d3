// Package checkpoint saves and resumes interrupted aggregation runs.
//
// A checkpoint holds the run id, the cursor of the next source to fetch and
// the records accumulated so far. The aggregator never touches it; the CLI
// updates it from the partial-results callback and deletes it once the run
// completes.
//
// Checkpoints are stored in platform-specific data directories:
//   - Linux: $XDG_DATA_HOME/devscout/checkpoints/ or ~/.local/share/devscout/checkpoints/
//   - macOS: ~/Library/Application Support/devscout/checkpoints/
//   - Windows: %APPDATA%/devscout/checkpoints/
//
// Files are written to a temporary path and renamed into place.
package checkpoint
