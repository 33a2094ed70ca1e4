package secrets

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

const previewRunes = 3

// Status is the only view of a secret that may leave the process.
type Status struct {
	Loaded  bool    `json:"loaded"`
	Length  int     `json:"length"`
	Preview *string `json:"preview"`
}

type entry struct {
	value string
	ok    bool
	err   error
}

// Cache holds the outcome of one load pass.  It is built by Load and is
// read-only afterwards, so it is safe for concurrent readers.
type Cache struct {
	names    []Name
	entries  map[Name]entry
	loadedAt time.Time
}

// Names returns the secrets in load order.
func (c *Cache) Names() []Name {
	return append([]Name(nil), c.names...)
}

// LoadedAt reports when the load pass finished.
func (c *Cache) LoadedAt() time.Time { return c.loadedAt }

// Value returns the plaintext secret for in-process consumers.  Never
// serialize it.
func (c *Cache) Value(n Name) (string, bool) {
	e := c.entries[n]
	return e.value, e.ok
}

// Loaded reports whether n was retrieved.
func (c *Cache) Loaded(n Name) bool { return c.entries[n].ok }

// Failure returns the retrieval error for n, or nil when it loaded.  Names
// outside the load set report ErrNotFound.
func (c *Cache) Failure(n Name) error {
	e, ok := c.entries[n]
	if !ok {
		return ErrNotFound
	}
	return e.err
}

// Status masks the value: length in characters and a short preview.  An
// empty secret counts as loaded but has no preview.
func (c *Cache) Status(n Name) Status {
	e := c.entries[n]
	if !e.ok {
		return Status{}
	}
	st := Status{Loaded: true, Length: utf8.RuneCountInString(e.value)}
	if e.value != "" {
		p := preview(e.value)
		st.Preview = &p
	}
	return st
}

// LoadedCount is the number of secrets retrieved successfully.
func (c *Cache) LoadedCount() int {
	n := 0
	for _, e := range c.entries {
		if e.ok {
			n++
		}
	}
	return n
}

// String keeps plaintext out of %v and %+v.
func (c *Cache) String() string {
	parts := make([]string, 0, len(c.names))
	for _, n := range c.names {
		parts = append(parts, fmt.Sprintf("%s:%s", n, reason(c.entries[n].err)))
	}
	return "secrets.Cache{" + strings.Join(parts, " ") + "}"
}

func preview(s string) string {
	i, count := 0, 0
	for i < len(s) && count < previewRunes {
		_, size := utf8.DecodeRuneInString(s[i:])
		i += size
		count++
	}
	return s[:i] + "..."
}
