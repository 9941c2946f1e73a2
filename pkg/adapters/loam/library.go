package loam

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/aretw0/cssmachine/pkg/adapters/file"
	"github.com/aretw0/cssmachine/pkg/domain"
	"github.com/aretw0/loam"
)

// Library adapts a Loam repository to the MachineLibrary interface.
// Each document (Markdown with frontmatter, JSON, or YAML) holds one machine;
// a Markdown body serves as the description when the frontmatter has none.
type Library struct {
	Repo *loam.TypedRepository[MachineMetadata]
}

// New creates a new Loam adapter.
func New(repo *loam.TypedRepository[MachineMetadata]) *Library {
	return &Library{
		Repo: repo,
	}
}

// Open initializes a read-only Loam repository at path.
// Strict mode makes every adapter return json.Number for numerics, so tape lengths
// decode the same from Markdown, JSON, and YAML documents.
func Open(path string) (*Library, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("invalid path: %w", err)
	}
	repo, err := loam.Init(absPath,
		loam.WithStrict(true),
		loam.WithReadOnly(true),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize loam: %w", err)
	}
	return New(loam.NewTypedRepository[MachineMetadata](repo)), nil
}

type entry struct {
	id          string
	path        string
	description string
	machine     domain.MachineConfig
}

// Get retrieves a machine by ID.
// A direct lookup is tried first; documents whose frontmatter overrides the ID are
// found through the listing.
func (l *Library) Get(ctx context.Context, id string) (domain.MachineConfig, error) {
	if doc, err := l.Repo.Get(ctx, id); err == nil {
		e, err := decode(doc.ID, doc.Data, doc.Content)
		if err != nil {
			return domain.MachineConfig{}, err
		}
		if e.id == id {
			return e.machine, nil
		}
	}

	entries, err := l.entries(ctx)
	if err != nil {
		return domain.MachineConfig{}, err
	}
	for _, e := range entries {
		if e.id == id {
			return e.machine, nil
		}
	}
	return domain.MachineConfig{}, fmt.Errorf("%w: %s", domain.ErrMachineNotFound, id)
}

// List returns a summary of every machine, sorted by ID.
func (l *Library) List(ctx context.Context) ([]domain.MachineSummary, error) {
	entries, err := l.entries(ctx)
	if err != nil {
		return nil, err
	}

	list := make([]domain.MachineSummary, 0, len(entries))
	for _, e := range entries {
		list = append(list, domain.MachineSummary{
			ID:          e.id,
			Name:        e.machine.Name,
			Description: e.description,
			States:      len(e.machine.States),
			TapeLength:  e.machine.TapeLength,
		})
	}
	return list, nil
}

func (l *Library) entries(ctx context.Context) ([]entry, error) {
	docs, err := l.Repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loam list failed: %w", err)
	}

	seen := make(map[string]string, len(docs))
	entries := make([]entry, 0, len(docs))
	for _, doc := range docs {
		e, err := decode(doc.ID, doc.Data, doc.Content)
		if err != nil {
			return nil, err
		}
		if existingPath, ok := seen[e.id]; ok {
			return nil, fmt.Errorf("collision detected: ID '%s' is defined in both '%s' and '%s'", e.id, existingPath, e.path)
		}
		seen[e.id] = e.path
		entries = append(entries, e)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].id < entries[j].id })
	return entries, nil
}

func decode(docID string, meta MachineMetadata, content string) (entry, error) {
	rawID := meta.ID
	if rawID == "" {
		rawID = docID
	}
	id := trimExtension(rawID)

	doc, err := file.DecodeDocument(meta.raw(id))
	if err != nil {
		return entry{}, fmt.Errorf("machine %s: %w", docID, err)
	}
	if doc.Machine.Name == "" {
		doc.Machine.Name = id
	}

	description := meta.Description
	if description == "" {
		description = summary(content)
	}
	return entry{id: id, path: docID, description: description, machine: doc.Machine}, nil
}

// summary returns the first non-heading line of a Markdown body.
func summary(content string) string {
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		return line
	}
	return ""
}

func trimExtension(id string) string {
	ext := filepath.Ext(id)
	if ext != "" {
		return filepath.ToSlash(strings.TrimSuffix(id, ext))
	}
	return filepath.ToSlash(id)
}
