package phiguard

import "sort"

// Catalog holds the ordered set of detection patterns consumed by a
// Detector.
//
// A Catalog is populated at startup and read-only afterwards; once every
// AddPattern call has returned, the catalog is safe for concurrent use
// without locking. Registration is not synchronized with scanning: finish
// building the catalog before handing it to a Sanitizer.
type Catalog struct {
	patterns []*Pattern
	byName   map[string]*Pattern
	nextSeq  int
}

// NewCatalog creates an empty pattern catalog.
func NewCatalog() *Catalog {
	return &Catalog{byName: make(map[string]*Pattern)}
}

// AddPattern compiles and registers a pattern. Fails with a configuration
// error if a pattern with the same name is already registered or the
// pattern itself is malformed.
func (c *Catalog) AddPattern(p Pattern) error {
	if _, exists := c.byName[p.Name]; exists {
		return NewDuplicatePatternError(p.Name)
	}
	if err := p.compile(); err != nil {
		return err
	}

	p.seq = c.nextSeq
	c.nextSeq++

	stored := &p
	c.patterns = append(c.patterns, stored)
	c.byName[p.Name] = stored
	return nil
}

// RemovePattern removes a pattern by name. Returns false if no pattern with
// that name is registered.
func (c *Catalog) RemovePattern(name string) bool {
	if _, exists := c.byName[name]; !exists {
		return false
	}
	delete(c.byName, name)
	for i, p := range c.patterns {
		if p.Name == name {
			c.patterns = append(c.patterns[:i], c.patterns[i+1:]...)
			break
		}
	}
	return true
}

// Patterns returns the registered patterns ordered by descending priority;
// priority ties keep insertion order (first registered wins).
func (c *Catalog) Patterns() []*Pattern {
	out := make([]*Pattern, len(c.patterns))
	copy(out, c.patterns)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Priority != out[j].Priority {
			return out[i].Priority > out[j].Priority
		}
		return out[i].seq < out[j].seq
	})
	return out
}

// PatternByName returns the registered pattern with the given name, or nil
// if absent.
func (c *Catalog) PatternByName(name string) *Pattern {
	return c.byName[name]
}

// Len returns the number of registered patterns.
func (c *Catalog) Len() int {
	return len(c.patterns)
}
