// Package session holds the questionnaire record, its JSON persistence,
// and the stage driver that runs a scripted workflow front to back.
package session

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// QA stores a free-form answer together with the question that produced it
// and the model's interpretation or summary of the response.
type QA struct {
	Question       string `json:"question"`
	Response       string `json:"response"`
	Interpretation string `json:"interpretation,omitempty"`
}

// Record accumulates all collected answers for one subject run. It is built
// incrementally, field by field; a failed field is simply never set, there is
// no rollback. The dialogue flow is the only writer, but the dashboard reads
// concurrently, hence the lock.
type Record struct {
	mu sync.RWMutex

	id        string
	createdAt time.Time

	// identity names the section/field that must exist before the record
	// may be persisted (e.g. personal_info.name).
	identitySection string
	identityField   string

	sections map[string]map[string]any
	root     map[string]any
}

// NewRecord creates a record with the given pre-declared sections.
func NewRecord(sections ...string) *Record {
	r := &Record{
		id:        uuid.New().String(),
		createdAt: time.Now(),
		sections:  make(map[string]map[string]any, len(sections)),
		root:      make(map[string]any),
	}
	for _, s := range sections {
		r.sections[s] = make(map[string]any)
	}
	return r
}

// ID returns the record's unique identifier.
func (r *Record) ID() string {
	return r.id
}

// SetIdentityField declares which field holds the subject's identity.
func (r *Record) SetIdentityField(section, field string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.identitySection = section
	r.identityField = field
}

// Identity returns the subject identity value, or "" when it has not been
// collected yet.
func (r *Record) Identity() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	sec, ok := r.sections[r.identitySection]
	if !ok {
		return ""
	}
	v, ok := sec[r.identityField]
	if !ok {
		return ""
	}
	s, _ := v.(string)
	return s
}

// Set stores a field value, creating the section if needed.
func (r *Record) Set(section, field string, value any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	sec, ok := r.sections[section]
	if !ok {
		sec = make(map[string]any)
		r.sections[section] = sec
	}
	sec[field] = value
}

// SetQA stores a question/response/interpretation triple as a field value.
func (r *Record) SetQA(section, field string, qa QA) {
	r.Set(section, field, qa)
}

// SetRoot stores a top-level field outside any section (e.g. the final
// assessment summary or closing comments).
func (r *Record) SetRoot(field string, value any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.root[field] = value
}

// Get returns a field value.
func (r *Record) Get(section, field string) (any, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	sec, ok := r.sections[section]
	if !ok {
		return nil, false
	}
	v, ok := sec[field]
	return v, ok
}

// GetString returns a field value as a string, or "" when absent or not
// a string.
func (r *Record) GetString(section, field string) string {
	v, ok := r.Get(section, field)
	if !ok {
		return ""
	}
	s, _ := v.(string)
	return s
}

// Snapshot returns a serializable copy of the record: all sections plus the
// top-level fields.
func (r *Record) Snapshot() map[string]any {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(map[string]any, len(r.sections)+len(r.root))
	for name, sec := range r.sections {
		cp := make(map[string]any, len(sec))
		for k, v := range sec {
			cp[k] = v
		}
		out[name] = cp
	}
	for k, v := range r.root {
		out[k] = v
	}
	return out
}
