// Package funcs implements the user-defined function registry. Definitions
// carry a parameter list and an uninterpreted textual body; the executor is
// responsible for interpreting bodies. The registry persists as a flat record
// list under the global partition.
package funcs

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"sync"

	"go.uber.org/zap"

	"mathcli/internal/operror"
	"mathcli/internal/persist"
)

// UserFunction is one named user-defined function.
type UserFunction struct {
	Name       string
	Parameters []string
	Body       string
	Help       string
}

// Signature renders "name(p1, p2)" for listings.
func (f UserFunction) Signature() string {
	sig := f.Name + "("
	for i, p := range f.Parameters {
		if i > 0 {
			sig += ", "
		}
		sig += p
	}
	return sig + ")"
}

// Record is the durable/export JSON shape of a function.
type Record struct {
	Name       string   `json:"name"`
	Parameters []string `json:"parameters"`
	Body       string   `json:"body"`
	Help       string   `json:"help,omitempty"`
}

// Registry holds user-defined functions keyed by unique name. Mutations are
// serialized and flushed to durable storage synchronously.
type Registry struct {
	mu   sync.Mutex
	fns  map[string]UserFunction
	port persist.Port
	log  *zap.Logger
}

// NewRegistry creates a registry backed by port and loads any persisted
// definitions.
func NewRegistry(port persist.Port, log *zap.Logger) (*Registry, error) {
	if log == nil {
		log = zap.NewNop()
	}
	r := &Registry{
		fns:  make(map[string]UserFunction),
		port: port,
		log:  log,
	}
	if err := r.load(); err != nil {
		return nil, err
	}
	return r, nil
}

// Define upserts a function by name and flushes.
func (r *Registry) Define(name string, parameters []string, body, help string) error {
	if name == "" {
		return operror.InvalidValue("function name cannot be empty")
	}
	if body == "" {
		return operror.InvalidValue("function body cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.fns[name] = UserFunction{
		Name:       name,
		Parameters: append([]string(nil), parameters...),
		Body:       body,
		Help:       help,
	}
	return r.flushLocked()
}

// Undefine removes a function and flushes. Missing names fail
// FunctionNotFound.
func (r *Registry) Undefine(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.fns[name]; !ok {
		return operror.FunctionNotFound(name)
	}
	delete(r.fns, name)
	return r.flushLocked()
}

// Get returns the function named name.
func (r *Registry) Get(name string) (UserFunction, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	fn, ok := r.fns[name]
	return fn, ok
}

// Has reports whether name is defined.
func (r *Registry) Has(name string) bool {
	_, ok := r.Get(name)
	return ok
}

// List returns all functions sorted by name.
func (r *Registry) List() []UserFunction {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]UserFunction, 0, len(r.fns))
	for _, fn := range r.fns {
		out = append(out, fn)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Count returns the number of defined functions.
func (r *Registry) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.fns)
}

// Export returns all functions as records, name-sorted.
func (r *Registry) Export() []Record {
	fns := r.List()
	records := make([]Record, len(fns))
	for i, fn := range fns {
		records[i] = Record(fn)
	}
	return records
}

// Import upserts well-formed records. Records missing name, parameters, or
// body are skipped rather than failing the whole import. Without merge,
// existing definitions are cleared first.
func (r *Registry) Import(records []Record, merge bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !merge {
		r.fns = make(map[string]UserFunction)
	}
	for _, rec := range records {
		if rec.Name == "" || rec.Parameters == nil || rec.Body == "" {
			r.log.Debug("Skipping malformed function record", zap.String("name", rec.Name))
			continue
		}
		r.fns[rec.Name] = UserFunction(rec)
	}
	return r.flushLocked()
}

// Clear removes all definitions and flushes.
func (r *Registry) Clear() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.fns = make(map[string]UserFunction)
	return r.flushLocked()
}

func (r *Registry) flushLocked() error {
	if r.port == nil {
		return nil
	}
	records := make([]Record, 0, len(r.fns))
	for _, fn := range r.fns {
		records = append(records, Record(fn))
	}
	sort.Slice(records, func(i, j int) bool { return records[i].Name < records[j].Name })

	payload, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("failed to encode functions: %w", err)
	}
	if err := r.port.SavePartition(persist.GlobalSession, persist.KindFunctions, payload); err != nil {
		r.log.Error("Function flush failed", zap.Error(err))
		return err
	}
	return nil
}

func (r *Registry) load() error {
	if r.port == nil {
		return nil
	}
	payload, err := r.port.LoadPartition(persist.GlobalSession, persist.KindFunctions)
	if errors.Is(err, persist.ErrNoPartition) {
		return nil
	}
	if err != nil {
		return err
	}
	var records []Record
	if err := json.Unmarshal(payload, &records); err != nil {
		return fmt.Errorf("corrupt function partition: %w", err)
	}
	for _, rec := range records {
		if rec.Name == "" || rec.Body == "" {
			continue
		}
		r.fns[rec.Name] = UserFunction(rec)
	}
	return nil
}
