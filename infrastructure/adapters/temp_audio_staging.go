package adapters

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/Bigmatrix2/Dreammaker/application/ports/outbound"
	"github.com/Bigmatrix2/Dreammaker/domain"
	"github.com/google/uuid"
)

// tempAudioStaging copies uploads into uniquely named files under dir so that
// concurrent requests never share storage.
type tempAudioStaging struct {
	dir    string
	logger outbound.LoggerPort
}

func NewTempAudioStaging(dir string, logger outbound.LoggerPort) outbound.AudioStagingPort {
	if dir == "" {
		dir = os.TempDir()
	}
	return &tempAudioStaging{
		dir:    dir,
		logger: logger,
	}
}

func (t *tempAudioStaging) Stage(_ context.Context, filename string, content io.Reader) (*outbound.StagedAudio, error) {
	path := filepath.Join(t.dir, "dream-"+uuid.New().String()+filepath.Ext(filename))

	file, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_EXCL, 0o600)
	if err != nil {
		return nil, fmt.Errorf("failed to create temporary audio file: %w", err)
	}

	var once sync.Once
	release := func() {
		once.Do(func() {
			if err := file.Close(); err != nil {
				t.logger.ErrorWithFields(err, "Failed to close temporary audio file", map[string]interface{}{"path": path})
			}
			if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
				t.logger.ErrorWithFields(err, "Failed to remove temporary audio file", map[string]interface{}{"path": path})
			}
		})
	}

	written, err := io.Copy(file, content)
	if err != nil {
		release()
		return nil, fmt.Errorf("failed to stage audio: %w", err)
	}
	if written == 0 {
		release()
		return nil, domain.ErrEmptyAudio
	}
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		release()
		return nil, fmt.Errorf("failed to rewind staged audio: %w", err)
	}

	t.logger.DebugWithFields("Audio staged", map[string]interface{}{
		"filename": filename,
		"path":     path,
		"bytes":    written,
	})

	return &outbound.StagedAudio{
		Clip:    domain.NewAudioClip(filename, file),
		Release: release,
	}, nil
}
