package document

import (
	"sync"

	"github.com/y4jaiops/y4j-YouthScan/internal/types"
)

// Selection holds the single active document. Setting a document from any source replaces
// whatever was selected before, so a stale Drive download can never shadow a newer upload.
type Selection struct {
	mu     sync.Mutex
	active *types.DocumentBlob
}

// Set makes doc the active document and returns the source it replaced, if any.
func (s *Selection) Set(doc types.DocumentBlob) (replaced types.Source, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.active != nil {
		replaced, ok = s.active.Source, true
	}
	s.active = &doc
	return replaced, ok
}

// Active returns the active document.
func (s *Selection) Active() (types.DocumentBlob, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.active == nil {
		return types.DocumentBlob{}, false
	}
	return *s.active, true
}

// Clear drops the active document.
func (s *Selection) Clear() {
	s.mu.Lock()
	s.active = nil
	s.mu.Unlock()
}
