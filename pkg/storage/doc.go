// Package storage writes the results of finished runs to the output
// directory.
//
// Exports are indented JSON files named "{kind}-{timestamp}.json"; the
// timestamp sorts lexically, so the Manager's index can answer "latest
// export of a kind" without reading file contents. Every write goes to a
// temporary file first and is renamed into place.
//
//	manager, err := storage.NewManager(cfg.Output.Directory)
//	if err != nil {
//	    return err
//	}
//	path, err := manager.ExportJSON("posts", result.Records, time.Now())
package storage
