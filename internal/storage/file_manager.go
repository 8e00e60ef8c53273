package storage

import (
	"errors"
	json "github.com/goccy/go-json"
	"os"
	"stash/internal/providers"
)

const snapshotVersion = 1

// Snapshot is the on-disk envelope of the whole client-state store.
type Snapshot struct {
	Version int               `json:"version"`
	Entries map[string]string `json:"entries"`
}

type FileManager struct {
	store      KeyValueStore
	compressor CompressorInterface
	logger     providers.Logger
}

func NewFileManager(compressor CompressorInterface, store KeyValueStore, logger providers.Logger) *FileManager {
	return &FileManager{
		compressor: compressor,
		store:      store,
		logger:     logger,
	}
}

func (f *FileManager) SaveToFile(fileName string) error {
	entries, generation := f.store.Snapshot()
	snapshot := Snapshot{
		Version: snapshotVersion,
		Entries: entries,
	}

	jsonData, err := json.Marshal(snapshot)
	if err != nil {
		return err
	}
	data, err := f.compressor.Compress(jsonData)
	if err != nil {
		return err
	}

	tmpFile := fileName + ".tmp"
	file, err := os.Create(tmpFile)
	if err != nil {
		return err
	}

	_, err = file.Write(data)
	if err != nil {
		file.Close()
		os.Remove(tmpFile)
		return err
	}

	if err = file.Sync(); err != nil {
		file.Close()
		os.Remove(tmpFile)
		return err
	}

	if err = file.Close(); err != nil {
		os.Remove(tmpFile)
		return err
	}

	if err = os.Rename(tmpFile, fileName); err != nil {
		return err
	}
	f.store.MarkClean(generation)
	return nil
}

func (f *FileManager) Close() {
	f.compressor.Close()
}

// LoadFromFile restores the store. A missing file leaves the store empty.
// Besides the versioned snapshot it accepts a flat key/value object, which
// is how a browser storage export looks.
func (f *FileManager) LoadFromFile(fileName string) error {
	data, err := os.ReadFile(fileName)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}

	decompressedData, err := f.compressor.Decompress(data)
	if err != nil {
		return err
	}

	var snapshot Snapshot
	if err := json.Unmarshal(decompressedData, &snapshot); err == nil && snapshot.Version > 0 && snapshot.Entries != nil {
		f.store.Load(snapshot.Entries)
		return nil
	}

	f.logger.Warnf(providers.TypeApp, "Unversioned state file found, trying flat key/value import")
	var flat map[string]string
	if err := json.Unmarshal(decompressedData, &flat); err != nil {
		f.logger.Warnf(providers.TypeApp, "State import failed")
		return err
	}
	f.store.Load(flat)
	f.logger.Warnf(providers.TypeApp, "Imported %d entries from flat state file", len(flat))
	return nil
}
