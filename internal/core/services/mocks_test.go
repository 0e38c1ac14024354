package services

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/Sidharth1743/File-Search/internal/core/domain"
	"github.com/Sidharth1743/File-Search/internal/core/ports/driven"
)

// Hand-written fakes shared by the tests in this package. Each fake
// exposes canned values plus recorded calls so tests can assert
// interactions without a real remote service.

// fakeFileSearch implements driven.FileSearchService.
type fakeFileSearch struct {
	mu sync.Mutex

	stores    []domain.Store
	listErr   error
	listCalls int

	createErr   error
	createCalls int

	uploads   []driven.UploadRequest
	uploadErr map[string]error  // keyed by base filename
	uploadOp  *domain.Operation // canned submit result, overrides the default

	opStates   []domain.Operation // consumed one per GetOperation call
	neverDone  bool               // operations stay pending forever
	getOpErr   error
	getOpCalls int

	docPages      [][]domain.DocumentRecord
	listDocsErr   error
	listDocsCalls int

	deleted   []string
	deleteErr error

	answer       domain.Answer
	generateErr  error
	lastQuestion string
	lastStores   []string
}

func (f *fakeFileSearch) ListStores(_ context.Context) ([]domain.Store, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listCalls++
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.stores, nil
}

func (f *fakeFileSearch) CreateStore(_ context.Context, displayName string, _ domain.ChunkingPolicy) (domain.Store, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.createCalls++
	if f.createErr != nil {
		return domain.Store{}, f.createErr
	}
	store := domain.Store{
		Name:        "fileSearchStores/" + displayName,
		DisplayName: displayName,
	}
	f.stores = append(f.stores, store)
	return store, nil
}

func (f *fakeFileSearch) Upload(_ context.Context, req driven.UploadRequest) (domain.Operation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.uploads = append(f.uploads, req)
	base := filepath.Base(req.FilePath)
	if err, ok := f.uploadErr[base]; ok {
		return domain.Operation{}, err
	}
	if f.uploadOp != nil {
		return *f.uploadOp, nil
	}
	if f.neverDone || len(f.opStates) > 0 {
		// Hand back a pending operation; GetOperation advances it.
		return domain.Operation{Name: "operations/" + base, Done: false}, nil
	}
	return domain.Operation{Name: "operations/" + base, Done: true}, nil
}

func (f *fakeFileSearch) GetOperation(_ context.Context, name string) (domain.Operation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.getOpCalls++
	if f.getOpErr != nil {
		return domain.Operation{}, f.getOpErr
	}
	if f.neverDone {
		return domain.Operation{Name: name, Done: false}, nil
	}
	if len(f.opStates) == 0 {
		return domain.Operation{Name: name, Done: true}, nil
	}
	op := f.opStates[0]
	f.opStates = f.opStates[1:]
	if op.Name == "" {
		op.Name = name
	}
	return op, nil
}

func (f *fakeFileSearch) ListDocuments(_ context.Context, _ string, pageToken string) ([]domain.DocumentRecord, string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listDocsCalls++
	if f.listDocsErr != nil {
		return nil, "", f.listDocsErr
	}
	if len(f.docPages) == 0 {
		return nil, "", nil
	}
	idx := 0
	if pageToken != "" {
		idx, _ = strconv.Atoi(strings.TrimPrefix(pageToken, "page-"))
	}
	next := ""
	if idx+1 < len(f.docPages) {
		next = fmt.Sprintf("page-%d", idx+1)
	}
	return f.docPages[idx], next, nil
}

func (f *fakeFileSearch) DeleteDocument(_ context.Context, documentName string, _ bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = append(f.deleted, documentName)
	return nil
}

func (f *fakeFileSearch) GenerateGrounded(_ context.Context, question string, storeNames []string) (domain.Answer, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastQuestion = question
	f.lastStores = storeNames
	if f.generateErr != nil {
		return domain.Answer{}, f.generateErr
	}
	return f.answer, nil
}

// fakeTextGen implements driven.TextGenerator.
type fakeTextGen struct {
	reply   string
	err     error
	prompts []string

	fileReply   string
	fileErr     error
	filePaths   []string
	filePrompts []string
}

func (g *fakeTextGen) Generate(_ context.Context, prompt string) (string, error) {
	g.prompts = append(g.prompts, prompt)
	if g.err != nil {
		return "", g.err
	}
	return g.reply, nil
}

func (g *fakeTextGen) GenerateWithFile(_ context.Context, filePath, prompt string) (string, error) {
	g.filePaths = append(g.filePaths, filePath)
	g.filePrompts = append(g.filePrompts, prompt)
	if g.fileErr != nil {
		return "", g.fileErr
	}
	return g.fileReply, nil
}

// fakeGraphStore implements driven.GraphStore.
type fakeGraphStore struct {
	elements []domain.GraphElement
	addErr   error
	closed   bool
}

func (s *fakeGraphStore) AddGraphElements(_ context.Context, elements []domain.GraphElement) error {
	if s.addErr != nil {
		return s.addErr
	}
	s.elements = append(s.elements, elements...)
	return nil
}

func (s *fakeGraphStore) Close(_ context.Context) error {
	s.closed = true
	return nil
}

// fakePrompts implements driven.PromptStore.
type fakePrompts struct {
	prompts map[string]string
	loadErr error
}

func newFakePrompts() *fakePrompts {
	return &fakePrompts{prompts: map[string]string{
		driven.PromptMetadataInference: "Return JSON with the document title and id.",
		driven.PromptGraphExtraction:   "Extract graph literals from this passage:\n%s",
		driven.PromptQuerySuffix:       "(answer concisely)",
	}}
}

func (p *fakePrompts) Load(name string) (string, error) {
	if p.loadErr != nil {
		return "", p.loadErr
	}
	prompt, ok := p.prompts[name]
	if !ok {
		return "", fmt.Errorf("prompt %s not found", name)
	}
	return prompt, nil
}

func (p *fakePrompts) Reload() {}

// fakeScanner implements driven.FolderScanner.
type fakeScanner struct {
	validateErr error
	files       []string
	listErr     error
	lastPattern string
}

func (s *fakeScanner) Validate(_ string) error {
	return s.validateErr
}

func (s *fakeScanner) ListFiles(_, pattern string) ([]string, error) {
	s.lastPattern = pattern
	if s.listErr != nil {
		return nil, s.listErr
	}
	return s.files, nil
}

// fakeExtractor implements driven.TextExtractor.
type fakeExtractor struct {
	supports bool
	text     string
	err      error
}

func (e *fakeExtractor) Supports(_ string) bool {
	return e.supports
}

func (e *fakeExtractor) Extract(_ context.Context, _ string) (string, error) {
	if e.err != nil {
		return "", e.err
	}
	return e.text, nil
}

// fakeConfigStore implements driven.ConfigStore over a plain map.
type fakeConfigStore struct {
	values map[string]any
	setErr error
}

func newFakeConfigStore() *fakeConfigStore {
	return &fakeConfigStore{values: make(map[string]any)}
}

func (s *fakeConfigStore) Get(key string) (any, bool) {
	value, ok := s.values[key]
	return value, ok
}

func (s *fakeConfigStore) GetString(key string) string {
	str, _ := s.values[key].(string)
	return str
}

func (s *fakeConfigStore) GetInt(key string) int {
	switch v := s.values[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	default:
		return 0
	}
}

func (s *fakeConfigStore) GetBool(key string) bool {
	b, _ := s.values[key].(bool)
	return b
}

func (s *fakeConfigStore) Set(key string, value any) error {
	if s.setErr != nil {
		return s.setErr
	}
	s.values[key] = value
	return nil
}

func (s *fakeConfigStore) Path() string {
	return "fake://config"
}

// fakeWatcher implements driven.FolderWatcher.
type fakeWatcher struct {
	events   chan driven.FileEvent
	errs     chan error
	watchErr error
}

func newFakeWatcher() *fakeWatcher {
	return &fakeWatcher{
		events: make(chan driven.FileEvent, 8),
		errs:   make(chan error, 1),
	}
}

func (w *fakeWatcher) Watch(_ context.Context, _, _ string) (<-chan driven.FileEvent, <-chan error, error) {
	if w.watchErr != nil {
		return nil, nil, w.watchErr
	}
	return w.events, w.errs, nil
}

// Test fixture helpers.

func testStoreSettings() domain.StoreSettings {
	return domain.StoreSettings{
		Abstracts:   "abstracts_store",
		Manuscripts: "manuscripts_store",
	}
}

func testIngestionSettings() domain.IngestionSettings {
	settings := domain.DefaultAppSettings().Ingestion
	settings.PollInterval = time.Millisecond
	settings.UploadTimeout = 5 * time.Second
	return settings
}

func newTestRegistry(fileSearch *fakeFileSearch) *StoreRegistry {
	return NewStoreRegistry(fileSearch, testStoreSettings(), domain.DefaultChunkingPolicy())
}
