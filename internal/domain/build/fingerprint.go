package build

import (
	"crypto/sha256"
	"encoding/hex"
	"sort"
	"sync"
)

// Fingerprint records the content hash of every file written to the output
// directory. Two runs over the same inputs must produce the same Sum.
type Fingerprint struct {
	mu    sync.Mutex
	files map[string]string
}

func NewFingerprint() *Fingerprint {
	return &Fingerprint{files: make(map[string]string)}
}

// Record stores the hash of data under rel, replacing an earlier record.
func (f *Fingerprint) Record(rel string, data []byte) {
	sum := sha256.Sum256(data)
	f.mu.Lock()
	f.files[rel] = hex.EncodeToString(sum[:])
	f.mu.Unlock()
}

func (f *Fingerprint) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.files)
}

// Hash returns the recorded hash of rel.
func (f *Fingerprint) Hash(rel string) (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	h, ok := f.files[rel]
	return h, ok
}

// Sum folds every (path, hash) pair, in path order, into one digest.
func (f *Fingerprint) Sum() string {
	f.mu.Lock()
	paths := make([]string, 0, len(f.files))
	for p := range f.files {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	h := sha256.New()
	for _, p := range paths {
		h.Write([]byte(p))
		h.Write([]byte{0})
		h.Write([]byte(f.files[p]))
		h.Write([]byte{'\n'})
	}
	f.mu.Unlock()
	return hex.EncodeToString(h.Sum(nil))
}
