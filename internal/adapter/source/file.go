package source

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/PaesslerAG/gval"
	"github.com/PaesslerAG/jsonpath"
	"gopkg.in/yaml.v3"

	"github.com/thushan/holocron/internal/core/domain"
	"github.com/thushan/holocron/internal/core/ports"
	"github.com/thushan/holocron/internal/logger"
	"github.com/thushan/holocron/internal/util"
)

const (
	NameFile = "file"

	formatYAML = "yaml"
)

// FileSource serves records from a local JSON or YAML file, either a bare
// list or a SWAPI shaped page with a results key. JSON documents of any other
// shape can name their record list with a JSONPath records path.
type FileSource struct {
	logger      *logger.StyledLogger
	selector    gval.Evaluable
	path        string
	recordsPath string
}

var _ ports.RecordSource = (*FileSource)(nil)

func NewFileSource(path string, log *logger.StyledLogger) *FileSource {
	return &FileSource{path: path, logger: log}
}

// WithRecordsPath selects the record list inside a JSON document, e.g.
// "$.data.allPeople.people". An empty expression restores the default.
func (s *FileSource) WithRecordsPath(expr string) (*FileSource, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		s.selector, s.recordsPath = nil, ""
		return s, nil
	}

	selector, err := jsonpath.New(expr)
	if err != nil {
		return nil, fmt.Errorf("invalid records path %q: %w", expr, err)
	}
	s.selector, s.recordsPath = selector, expr
	return s, nil
}

func (s *FileSource) Name() string {
	return NameFile
}

func (s *FileSource) FetchAll(ctx context.Context) ([]domain.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, &domain.FetchError{Err: err, Source: s.Name(), Operation: opFetchAll, URL: s.path, Attempts: 1}
	}

	var records []domain.Record
	switch strings.ToLower(filepath.Ext(s.path)) {
	case ".yaml", ".yml":
		records, err = parseYAMLPeople(data)
	default:
		if s.selector != nil {
			records, err = s.selectRecords(ctx, data)
			break
		}
		var page *peoplePage
		if page, err = parsePeople(data); err == nil {
			records = page.Records
		}
	}
	if err != nil {
		return nil, &domain.FetchError{Err: err, Source: s.Name(), Operation: opFetchAll, URL: s.path, Attempts: 1}
	}

	s.logger.InfoWithPath(fmt.Sprintf("Loaded %d records from", len(records)), s.path)
	return records, nil
}

// FetchOne matches id against the record url, its trailing id or its name
func (s *FileSource) FetchOne(ctx context.Context, id string) (domain.Record, error) {
	records, err := s.FetchAll(ctx)
	if err != nil {
		return domain.Record{}, err
	}

	for _, r := range records {
		if r.ID() == id || r.Name == id || (r.URL != "" && util.LastPathSegment(r.URL) == strings.Trim(id, "/")) {
			return r, nil
		}
	}
	return domain.Record{}, &domain.FetchError{
		Err:        &domain.ClientError{URL: s.path, StatusCode: 404},
		Source:     s.Name(),
		Operation:  opFetchOne,
		URL:        s.path,
		StatusCode: 404,
		Attempts:   1,
	}
}

func (s *FileSource) selectRecords(ctx context.Context, data []byte) ([]domain.Record, error) {
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, &domain.ParseError{Format: formatJSON, Err: err}
	}

	selected, err := s.selector(ctx, doc)
	if err != nil {
		return nil, &domain.ParseError{Format: formatJSON, Err: fmt.Errorf("records path %s: %w", s.recordsPath, err)}
	}
	if _, ok := selected.([]any); !ok {
		return nil, &domain.ParseError{Format: formatJSON, Err: fmt.Errorf("records path %s does not select a list", s.recordsPath)}
	}

	raw, err := json.MarshalToString(selected)
	if err != nil {
		return nil, &domain.ParseError{Format: formatJSON, Err: err}
	}
	return decodeRecords(raw)
}

func parseYAMLPeople(data []byte) ([]domain.Record, error) {
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, &domain.ParseError{Format: formatYAML, Err: err}
	}
	if len(node.Content) == 0 {
		return []domain.Record{}, nil
	}

	doc := node.Content[0]
	records := make([]domain.Record, 0)
	switch doc.Kind {
	case yaml.SequenceNode:
		if err := doc.Decode(&records); err != nil {
			return nil, &domain.ParseError{Format: formatYAML, Err: err}
		}
	case yaml.MappingNode:
		var page struct {
			Results []domain.Record `yaml:"results"`
		}
		if err := doc.Decode(&page); err != nil {
			return nil, &domain.ParseError{Format: formatYAML, Err: err}
		}
		if page.Results != nil {
			records = page.Results
		}
	default:
		return nil, &domain.ParseError{Format: formatYAML, Err: fmt.Errorf("unexpected document kind %v", doc.Kind)}
	}
	return records, nil
}
