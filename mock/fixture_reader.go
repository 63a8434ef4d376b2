package mock_generator

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/Bigmatrix2/Dreammaker/application/ports/outbound"
)

type FixtureReader interface {
	Read(fileName string) (*Fixture, error)
}

type fileFixtureReader struct {
	logger outbound.LoggerPort
}

func NewFileFixtureReader(logger outbound.LoggerPort) FixtureReader {
	return &fileFixtureReader{
		logger: logger,
	}
}

func (f *fileFixtureReader) Read(fileName string) (*Fixture, error) {
	file, err := os.Open(fileName)
	if err != nil {
		return nil, err
	}
	defer func(file *os.File) {
		err := file.Close()
		if err != nil {
			f.logger.Error(err, "failed to close file")
		}
	}(file)

	var fixture Fixture
	if err := json.NewDecoder(file).Decode(&fixture); err != nil {
		f.logger.Error(err, "failed to decode json")
		return nil, fmt.Errorf("failed to decode fixture %s: %w", fileName, err)
	}

	return &fixture, nil
}
