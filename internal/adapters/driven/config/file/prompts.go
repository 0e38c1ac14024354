package file

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/Sidharth1743/File-Search/internal/core/ports/driven"
)

// Ensure PromptStore implements the interface.
var _ driven.PromptStore = (*PromptStore)(nil)

// PromptStore loads text-generation prompts from user-editable files on disk.
// Prompts are loaded from a configurable directory with fallback to embedded defaults.
//
// The store uses lazy initialisation - files are only created when first accessed,
// not in the constructor. This makes testing easier and avoids unexpected I/O.
type PromptStore struct {
	mu        sync.RWMutex
	promptDir string
	cache     map[string]string
	initOnce  sync.Once
	initErr   error
}

// defaultPrompts contains embedded default prompts.
// These are used when user files don't exist and as the initial content for new files.
//
//nolint:lll // Prompt content is intentionally long and should not be wrapped.
var defaultPrompts = map[string]string{
	driven.PromptMetadataInference: `Analyze this PDF. Return JSON: {"title": "Title", "id": "ID or N/A"}`,

	driven.PromptGraphExtraction: `You are tasked with extracting entities (nodes) and relationships from historical spine science texts and traditional medicine documents, then structuring them into Node and Relationship objects. Whatever the language of the documents, your extracted nodes and relationships should be translated in English.

Node Extraction:
For each identified entity, create a Node object.
Each Node object should have a unique identifier (id) and a type (type).
Node types should be one of the following:
- ClinicalObservation (signs, symptoms, disease presentations)
- TherapeuticOutcome (treatment responses, recovery patterns)
- ContextualFactor (environmental, behavioral, constitutional factors)
- MechanisticConcept (traditional explanatory models, processes)
- TherapeuticApproach (interventions, remedies, methods)
- SourceText (reference to original documents or authors)

Relationship Extraction:
Identify relationships between extracted entities in the content.
For each relationship, create a Relationship object with a subject (subj) and an object (obj) which are Node objects.
Each relationship should have a type (type) from the following options:
- co_occurs_with (between related clinical observations)
- preceded_by/followed_by (temporal relationships)
- modified_by (how contexts affect observations)
- responds_to (observation responses to treatments)
- associated_with (contextual associations with observations)
- results_in (effects produced by treatments)
- described_in (attribution to source texts)
- contradicts/corroborates (consistency relationships)

Output Formatting:
Strictly follow the format shown in the example output. Do not wrap the output in lists or dictionaries, and do not add any additional information.

Example Output:
Nodes:
Node(id='paralysis_spinal_blood_congestion', type='ClinicalObservation')
Node(id='blood_accumulation_spinal_veins', type='MechanisticConcept')
Node(id='spontaneous_resolution', type='TherapeuticOutcome')
Node(id='Ollivier', type='SourceText')

Relationships:
Relationship(subj=Node(id='blood_accumulation_spinal_veins', type='MechanisticConcept'), obj=Node(id='paralysis_spinal_blood_congestion', type='ClinicalObservation'), type='associated_with')
Relationship(subj=Node(id='paralysis_spinal_blood_congestion', type='ClinicalObservation'), obj=Node(id='spontaneous_resolution', type='TherapeuticOutcome'), type='results_in')
Relationship(subj=Node(id='paralysis_spinal_blood_congestion', type='ClinicalObservation'), obj=Node(id='Ollivier', type='SourceText'), type='described_in')

Content:
%s`,

	driven.PromptQuerySuffix: `(Return answer in concise markdown)`,
}

// NewPromptStore creates a new file-based prompt store.
// If promptDir is empty, defaults to ~/.filesearch/prompts/.
//
// The constructor does not perform any I/O - directory creation and
// file writes happen lazily on first Load() call.
func NewPromptStore(promptDir string) (*PromptStore, error) {
	if promptDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("get home directory: %w", err)
		}
		promptDir = filepath.Join(home, ".filesearch", "prompts")
	}

	return &PromptStore{
		promptDir: promptDir,
		cache:     make(map[string]string),
	}, nil
}

// Load returns the prompt template for the given name.
// On first call, initialises the prompt directory and creates default files.
// Returns cached value if available, otherwise loads from file.
// Falls back to embedded default if file doesn't exist.
func (s *PromptStore) Load(name string) (string, error) {
	// Ensure directory and defaults exist (lazy init)
	s.initOnce.Do(s.initialise)
	if s.initErr != nil {
		// Fall back to embedded defaults if init failed
		if prompt, ok := defaultPrompts[name]; ok {
			return prompt, nil
		}
		return "", fmt.Errorf("prompt store init failed: %w", s.initErr)
	}

	// Check cache first (read lock)
	s.mu.RLock()
	if prompt, ok := s.cache[name]; ok {
		s.mu.RUnlock()
		return prompt, nil
	}
	s.mu.RUnlock()

	// Load from file (no lock held during I/O)
	prompt, err := s.loadFromFile(name)
	if err != nil {
		// Fall back to embedded default
		if defaultPrompt, ok := defaultPrompts[name]; ok {
			return defaultPrompt, nil
		}
		return "", fmt.Errorf("load prompt %q: %w", name, err)
	}

	// Cache the result (write lock)
	// Use double-check pattern to avoid overwriting concurrent loads
	s.mu.Lock()
	if _, ok := s.cache[name]; !ok {
		s.cache[name] = prompt
	} else {
		// Another goroutine loaded it first, use their value
		prompt = s.cache[name]
	}
	s.mu.Unlock()

	return prompt, nil
}

// Reload clears the prompt cache, forcing fresh loads from disk.
func (s *PromptStore) Reload() {
	s.mu.Lock()
	s.cache = make(map[string]string)
	s.mu.Unlock()
}

// Dir returns the prompt directory path.
func (s *PromptStore) Dir() string {
	return s.promptDir
}

// initialise creates the prompt directory and default files.
// Called once via sync.Once on first Load().
func (s *PromptStore) initialise() {
	// Create directory
	if err := os.MkdirAll(s.promptDir, 0700); err != nil {
		s.initErr = fmt.Errorf("create prompt directory: %w", err)
		return
	}

	// Create default prompt files (only if they don't exist)
	for name, content := range defaultPrompts {
		path := filepath.Join(s.promptDir, name+".txt")
		if _, err := os.Stat(path); os.IsNotExist(err) {
			if err := os.WriteFile(path, []byte(content), 0600); err != nil {
				s.initErr = fmt.Errorf("create default prompt %q: %w", name, err)
				return
			}
		}
	}

	// Create README
	if err := s.createReadme(); err != nil {
		s.initErr = err
	}
}

// loadFromFile reads a prompt from disk.
func (s *PromptStore) loadFromFile(name string) (string, error) {
	path := filepath.Join(s.promptDir, name+".txt")
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

// createReadme writes a README file explaining the prompts directory.
func (s *PromptStore) createReadme() error {
	path := filepath.Join(s.promptDir, "README.md")
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		return nil // Already exists or stat error (ignore)
	}

	content := `# File Search Prompts

This directory contains customisable prompts used by the pipeline's
text-generation features.

## Files

- ` + "`metadata_inference.txt`" + ` - Infers a document's title and identifier
- ` + "`graph_extraction.txt`" + ` - Extracts knowledge-graph literals from text
- ` + "`query_suffix.txt`" + ` - Appended to grounded questions to shape answers

## Customisation

Edit any file to customise behaviour. Changes take effect on the next
command.

## Format Placeholders

Some prompts use Go fmt placeholders:
- ` + "`%s`" + ` - String (e.g., the passage to extract from)

Ensure customised prompts maintain placeholders in the correct positions.
`
	return os.WriteFile(path, []byte(content), 0600)
}
