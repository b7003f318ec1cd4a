package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/KaramelBytes/revlens-cli/internal/analysis"
	"github.com/KaramelBytes/revlens-cli/internal/parser"
	"github.com/KaramelBytes/revlens-cli/internal/review"
	"github.com/KaramelBytes/revlens-cli/internal/utils"
)

const sessionFileName = "session.json"

// ErrNotFound is returned when a session directory has no session.json.
var ErrNotFound = errors.New("session not found")

// Session is a saved analysis over one dataset. TopWords is the word list
// produced by the last pass and fed back into the next one.
type Session struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Dataset string `json:"dataset"`
	// Input options used to read Dataset.
	Delimiter  string `json:"delimiter,omitempty"`
	SheetName  string `json:"sheet_name,omitempty"`
	SheetIndex int    `json:"sheet_index,omitempty"`

	Criteria  analysis.Criteria    `json:"criteria"`
	Sort      analysis.SortSpec    `json:"sort"`
	TopWords  []analysis.WordEntry `json:"top_words"`
	Passes    int                  `json:"passes"`
	CreatedAt time.Time            `json:"created_at"`
	UpdatedAt time.Time            `json:"updated_at"`

	rootDir string
}

// New constructs an in-memory session. Call Save to persist.
func New(name, dataset, rootDir string) *Session {
	now := time.Now()
	return &Session{
		ID:        uuid.NewString(),
		Name:      name,
		Dataset:   dataset,
		Criteria:  analysis.DefaultCriteria(),
		Sort:      analysis.DefaultSort(),
		TopWords:  []analysis.WordEntry{},
		CreatedAt: now,
		UpdatedAt: now,
		rootDir:   rootDir,
	}
}

// ValidName rejects names that cannot be used as a directory.
func ValidName(name string) error {
	if strings.TrimSpace(name) == "" {
		return errors.New("session name is required")
	}
	if name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("invalid session name %q", name)
	}
	return nil
}

// Dir returns the directory of the named session under sessionsDir.
func Dir(sessionsDir, name string) string { return filepath.Join(sessionsDir, name) }

// Load reads session.json from dir.
func Load(dir string) (*Session, error) {
	path := filepath.Join(dir, sessionFileName)
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w at %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("read session: %w", err)
	}
	var s Session
	if err := json.Unmarshal(b, &s); err != nil {
		return nil, fmt.Errorf("parse session: %w", err)
	}
	if s.TopWords == nil {
		s.TopWords = []analysis.WordEntry{}
	}
	s.rootDir = dir
	return &s, nil
}

// Open loads the named session from sessionsDir.
func Open(sessionsDir, name string) (*Session, error) {
	if err := ValidName(name); err != nil {
		return nil, err
	}
	return Load(Dir(sessionsDir, name))
}

// Exists reports whether a session with this name has been saved.
func Exists(sessionsDir, name string) bool {
	_, err := os.Stat(filepath.Join(Dir(sessionsDir, name), sessionFileName))
	return err == nil
}

// List loads every session under sessionsDir, sorted by name. Directories
// without a readable session.json are skipped.
func List(sessionsDir string) ([]*Session, error) {
	entries, err := os.ReadDir(sessionsDir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read sessions dir: %w", err)
	}
	var out []*Session
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		s, err := Load(filepath.Join(sessionsDir, e.Name()))
		if err != nil {
			continue
		}
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// RootDir returns the on-disk session directory.
func (s *Session) RootDir() string { return s.rootDir }

// Save writes session.json using an atomic write.
func (s *Session) Save() error {
	if s.rootDir == "" {
		return errors.New("session root directory not set")
	}
	s.UpdatedAt = time.Now()
	data, err := utils.PrettyJSON(s)
	if err != nil {
		return err
	}
	return utils.SafeWriteFile(filepath.Join(s.rootDir, sessionFileName), data)
}

// ParserOptions returns the options used to read the dataset.
func (s *Session) ParserOptions() (parser.Options, error) {
	d, err := parser.ParseDelimiter(s.Delimiter)
	if err != nil {
		return parser.Options{}, err
	}
	return parser.Options{Delimiter: d, SheetName: s.SheetName, SheetIndex: s.SheetIndex}, nil
}

// Reviews reads and normalizes the dataset.
func (s *Session) Reviews() ([]*review.Review, error) {
	opt, err := s.ParserOptions()
	if err != nil {
		return nil, err
	}
	recs, err := parser.ReadFile(s.Dataset, opt)
	if err != nil {
		return nil, err
	}
	return review.Normalize(recs), nil
}

// Query returns the stored criteria and sort.
func (s *Session) Query() analysis.Query {
	return analysis.Query{Criteria: s.Criteria, Sort: s.Sort}
}

// Reset replaces the carried word list with a full count over all reviews,
// as done when the dataset is first loaded.
func (s *Session) Reset(p *analysis.Pipeline, all []*review.Review) {
	s.TopWords = p.Baseline(all)
	s.Passes = 0
}

// Apply runs one pass with q, feeding the stored word list in as the
// previous list, and records q and the new list.
func (s *Session) Apply(p *analysis.Pipeline, all []*review.Review, q analysis.Query) analysis.Result {
	res := p.Run(all, q, s.TopWords)
	s.Criteria = q.Criteria
	s.Sort = q.Sort
	s.TopWords = res.Words
	s.Passes++
	return res
}
