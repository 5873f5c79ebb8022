package render

import "log/slog"

// releaseStack owns GPU objects in creation order and releases them in
// exact reverse order.
type releaseStack struct {
	entries []stackEntry
	log     *slog.Logger
}

type stackEntry struct {
	name    string
	release func()
}

func (s *releaseStack) push(name string, release func()) {
	s.entries = append(s.entries, stackEntry{name: name, release: release})
}

func (s *releaseStack) pushReleaser(name string, r Releaser) {
	s.push(name, r.Destroy)
}

// mark returns a position that unwindTo can later return to.
func (s *releaseStack) mark() int {
	return len(s.entries)
}

// unwindTo releases every entry pushed after mark, newest first.
func (s *releaseStack) unwindTo(mark int) {
	for len(s.entries) > mark {
		last := len(s.entries) - 1
		entry := s.entries[last]
		s.entries = s.entries[:last]

		if s.log != nil {
			s.log.Debug("releasing", "object", entry.name)
		}
		entry.release()
	}
}

func (s *releaseStack) unwind() {
	s.unwindTo(0)
}
