package source

import (
	"fmt"
	"strings"

	"github.com/thushan/holocron/internal/core/constants"
	"github.com/thushan/holocron/internal/core/ports"
	"github.com/thushan/holocron/internal/logger"
)

// NewSource picks the record source implementation for cfg.Type
func NewSource(cfg Config, log *logger.StyledLogger) (ports.RecordSource, error) {
	switch strings.ToLower(cfg.Type) {
	case "", constants.SourceTypeSWAPI:
		return NewHTTPSource(cfg, log), nil
	case constants.SourceTypeFile:
		if cfg.File == "" {
			return nil, fmt.Errorf("source type %q requires a file path", cfg.Type)
		}
		src, err := NewFileSource(cfg.File, log).WithRecordsPath(cfg.RecordsPath)
		if err != nil {
			return nil, err
		}
		return src, nil
	default:
		return nil, fmt.Errorf("unknown source type %q", cfg.Type)
	}
}
