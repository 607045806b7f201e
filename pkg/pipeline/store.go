package pipeline

import (
	"fmt"
	"sort"
	"strings"
)

// Store is the run-scoped named-result store. Each completed stage or
// group writes its content exactly once under its own name; later stages
// read by name. Values are stored and returned as the structured value
// the stage produced, never re-encoded, so consumers do not need any
// "deserialize if string" handling.
//
// Group joins happen before any later stage reads, so the store needs no
// locking: all writes come from the sequential driver loop.
type Store struct {
	results map[string]map[string]any
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{results: make(map[string]map[string]any)}
}

// MissingDependencyError reports that a stage's upstream dependency is
// absent, malformed, or itself an error.
type MissingDependencyError struct {
	Stage  string
	Reason string
}

func (e *MissingDependencyError) Error() string {
	return fmt.Sprintf("missing dependency on stage %q: %s", e.Stage, e.Reason)
}

// Get returns the content stored for a top-level stage or group name.
func (s *Store) Get(name string) (map[string]any, bool) {
	content, ok := s.results[name]
	return content, ok
}

// GetFromGroup returns the content a group member stored under its own
// name inside the group's result. Absent group or absent member both
// report false.
func (s *Store) GetFromGroup(group, member string) (map[string]any, bool) {
	groupContent, ok := s.results[group]
	if !ok {
		return nil, false
	}
	content, ok := groupContent[member].(map[string]any)
	return content, ok
}

// Require returns the named content after validating that it exists,
// carries no error marker, and contains every required key. This is the
// fail-fast gate every consuming stage runs before doing work.
func (s *Store) Require(name string, keys ...string) (map[string]any, error) {
	content, ok := s.results[name]
	if !ok {
		return nil, &MissingDependencyError{Stage: name, Reason: "stage never completed"}
	}
	return validateContent(name, content, keys)
}

// RequireFromGroup is Require with two-level group/member addressing.
func (s *Store) RequireFromGroup(group, member string, keys ...string) (map[string]any, error) {
	groupContent, ok := s.results[group]
	if !ok {
		return nil, &MissingDependencyError{Stage: group, Reason: "group never completed"}
	}
	raw, ok := groupContent[member]
	if !ok {
		return nil, &MissingDependencyError{
			Stage:  member,
			Reason: fmt.Sprintf("no result inside group %q", group),
		}
	}
	content, ok := raw.(map[string]any)
	if !ok {
		return nil, &MissingDependencyError{
			Stage:  member,
			Reason: fmt.Sprintf("result inside group %q is not a mapping", group),
		}
	}
	return validateContent(member, content, keys)
}

func validateContent(name string, content map[string]any, keys []string) (map[string]any, error) {
	if content == nil {
		return nil, &MissingDependencyError{Stage: name, Reason: "stage produced no content"}
	}
	if msg, ok := content[ErrorKey].(string); ok {
		return nil, &MissingDependencyError{Stage: name, Reason: "stage failed: " + msg}
	}
	var missing []string
	for _, key := range keys {
		if _, ok := content[key]; !ok {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		return nil, &MissingDependencyError{
			Stage:  name,
			Reason: "missing required fields: " + strings.Join(missing, ", "),
		}
	}
	return content, nil
}

// Names lists all completed stage and group names, sorted.
func (s *Store) Names() []string {
	names := make([]string, 0, len(s.results))
	for name := range s.results {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// put records a stage's content. Results are write-once.
func (s *Store) put(name string, content map[string]any) error {
	if _, exists := s.results[name]; exists {
		return fmt.Errorf("stage %q already has a result", name)
	}
	s.results[name] = content
	return nil
}
