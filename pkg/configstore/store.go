// Package configstore implements candidate/active configuration management
// with commit and rollback support on top of the configtree engine.
package configstore

import (
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/psaab/vyconf/pkg/configtree"
)

// Store manages the candidate and active configuration trees. Trees are
// single-owner; the store serializes all access with its own lock.
type Store struct {
	mu         sync.RWMutex
	active     *configtree.Tree
	candidate  *configtree.Tree
	history    *History
	dirty      bool
	configMode bool
	filePath   string
	observers  []configtree.MutationFunc
}

// New creates a new config store backed by the given file path. An empty
// path disables persistence.
func New(filePath string) *Store {
	return &Store{
		active:   configtree.New(),
		history:  NewHistory(50),
		filePath: filePath,
	}
}

// Observe registers a mutation observer attached to every candidate tree
// the store hands mutations to. Must be called before EnterConfigure.
func (s *Store) Observe(hook configtree.MutationFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observers = append(s.observers, hook)
}

// Load loads the configuration from disk. A missing file leaves the store
// with an empty active tree.
func (s *Store) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // start with empty config
		}
		return fmt.Errorf("read config: %w", err)
	}

	tree, err := configtree.Parse(string(data))
	if err != nil {
		return fmt.Errorf("parse config: %w", err)
	}

	s.active = tree
	return nil
}

// Save persists the active configuration to disk, version banner included.
func (s *Store) Save() error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.filePath == "" {
		return nil
	}
	return os.WriteFile(s.filePath, []byte(s.active.ToText(true)), 0644)
}

// EnterConfigure enters configuration mode by cloning the active config.
func (s *Store) EnterConfigure() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.candidate = s.freshCandidate()
	s.configMode = true
	s.dirty = false
}

// ExitConfigure exits configuration mode, discarding the candidate.
func (s *Store) ExitConfigure() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.candidate = nil
	s.configMode = false
	s.dirty = false
}

// freshCandidate clones the active tree and wires the registered
// observers onto the clone. Callers must hold the lock.
func (s *Store) freshCandidate() *configtree.Tree {
	candidate := s.active.Clone()
	for _, hook := range s.observers {
		candidate.Observe(hook)
	}
	return candidate
}

// InConfigMode returns true if currently in configuration mode.
func (s *Store) InConfigMode() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.configMode
}

// IsDirty returns true if the candidate has uncommitted changes.
func (s *Store) IsDirty() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.dirty
}

// Set stores a value at the path in the candidate configuration.
func (s *Store) Set(path []string, value string, replace bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.candidate == nil {
		return fmt.Errorf("not in configuration mode")
	}
	if err := s.candidate.Set(path, value, replace); err != nil {
		return err
	}
	s.dirty = true
	return nil
}

// SetValueless ensures a valueless node exists at the path in the
// candidate configuration.
func (s *Store) SetValueless(path []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.candidate == nil {
		return fmt.Errorf("not in configuration mode")
	}
	if err := s.candidate.SetValueless(path); err != nil {
		return err
	}
	s.dirty = true
	return nil
}

// Delete removes the node or subtree at the path from the candidate
// configuration. Deleting an absent path is a no-op.
func (s *Store) Delete(path []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.candidate == nil {
		return fmt.Errorf("not in configuration mode")
	}
	if err := s.candidate.Delete(path); err != nil {
		return err
	}
	s.dirty = true
	return nil
}

// DeleteValue removes a single value from the node at the path in the
// candidate configuration.
func (s *Store) DeleteValue(path []string, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.candidate == nil {
		return fmt.Errorf("not in configuration mode")
	}
	if err := s.candidate.DeleteValue(path, value); err != nil {
		return err
	}
	s.dirty = true
	return nil
}

// LoadOverride replaces the candidate with a configuration parsed from
// hierarchical text.
func (s *Store) LoadOverride(text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.candidate == nil {
		return fmt.Errorf("not in configuration mode")
	}
	tree, err := configtree.Parse(text)
	if err != nil {
		return fmt.Errorf("load override: %w", err)
	}
	for _, hook := range s.observers {
		tree.Observe(hook)
	}
	s.candidate = tree
	s.dirty = true
	return nil
}

// LoadMerge merges a configuration parsed from hierarchical text into the
// candidate. Existing nodes are kept; values on shared leaves concatenate.
func (s *Store) LoadMerge(text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.candidate == nil {
		return fmt.Errorf("not in configuration mode")
	}
	tree, err := configtree.Parse(text)
	if err != nil {
		return fmt.Errorf("load merge: %w", err)
	}
	merged := configtree.Union(s.candidate, tree)
	for _, hook := range s.observers {
		merged.Observe(hook)
	}
	s.candidate = merged
	s.dirty = true
	return nil
}

// Commit promotes the candidate to active, pushes the previous active
// onto the rollback history, and persists to disk.
func (s *Store) Commit(comment string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.candidate == nil {
		return fmt.Errorf("not in configuration mode")
	}

	s.history.Push(&HistoryEntry{
		Config:    s.active.Clone(),
		Timestamp: time.Now(),
		Comment:   comment,
	})

	s.active = s.candidate.Clone()
	s.candidate = s.freshCandidate()
	s.dirty = false

	if s.filePath != "" {
		if err := os.WriteFile(s.filePath, []byte(s.active.ToText(true)), 0644); err != nil {
			// Non-fatal: the commit itself succeeded.
			fmt.Fprintf(os.Stderr, "warning: failed to save config: %v\n", err)
		}
	}
	return nil
}

// Rollback reverts the candidate to a previous configuration. n=0 reverts
// to active; n>0 reverts to the nth previous commit.
func (s *Store) Rollback(n int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.candidate == nil {
		return fmt.Errorf("not in configuration mode")
	}

	if n == 0 {
		s.candidate = s.freshCandidate()
		s.dirty = false
		return nil
	}

	entry, err := s.history.Get(n - 1)
	if err != nil {
		return err
	}
	s.candidate = entry.Config.Clone()
	for _, hook := range s.observers {
		s.candidate.Observe(hook)
	}
	s.dirty = true
	return nil
}

// History returns the rollback history.
func (s *Store) History() *History {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.history
}

// ShowCandidate returns the candidate configuration as hierarchical text.
func (s *Store) ShowCandidate() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.candidate != nil {
		return s.candidate.ToText(true)
	}
	return ""
}

// ShowActive returns the active configuration as hierarchical text.
func (s *Store) ShowActive() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.active.ToText(true)
}

// ShowCandidateCommands returns the candidate configuration as flat set
// commands.
func (s *Store) ShowCandidateCommands() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.candidate != nil {
		return s.candidate.ToCommands("set")
	}
	return ""
}

// ShowCompare returns the minimal command script that transforms the
// active configuration into the candidate: deletions first, then sets.
func (s *Store) ShowCompare() (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.candidate == nil {
		return "", fmt.Errorf("not in configuration mode")
	}

	dt, err := configtree.NewDiffTree(nil, s.active, s.candidate)
	if err != nil {
		return "", fmt.Errorf("compare: %w", err)
	}
	cmds := dt.Commands()
	if cmds == "" {
		return "[no changes]\n", nil
	}
	return cmds, nil
}

// Active returns a deep copy of the active tree.
func (s *Store) Active() *configtree.Tree {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.active.Clone()
}

// Candidate returns a deep copy of the candidate tree, or nil outside
// configuration mode.
func (s *Store) Candidate() *configtree.Tree {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.candidate == nil {
		return nil
	}
	return s.candidate.Clone()
}
