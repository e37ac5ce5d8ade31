package domain

const (
	StatusConnected = "Connected to Database"
	StatusFallback  = "Using Demo Data (Database Connection Failed)"
)

// Catalog is the ordered list of sessions offered to the user. It is built
// once and only read afterwards, so it can be shared without locking.
type Catalog struct {
	sessions      []SessionRecord
	usingFallback bool
}

func NewCatalog(sessions []SessionRecord, usingFallback bool) *Catalog {
	owned := make([]SessionRecord, len(sessions))
	copy(owned, sessions)

	return &Catalog{
		sessions:      owned,
		usingFallback: usingFallback,
	}
}

// Sessions returns a copy of the records in display order.
func (c *Catalog) Sessions() []SessionRecord {
	out := make([]SessionRecord, len(c.sessions))
	copy(out, c.sessions)
	return out
}

func (c *Catalog) Len() int {
	return len(c.sessions)
}

func (c *Catalog) At(idx int) (SessionRecord, bool) {
	if idx < 0 || idx >= len(c.sessions) {
		return SessionRecord{}, false
	}
	return c.sessions[idx], true
}

func (c *Catalog) UsingFallback() bool {
	return c.usingFallback
}

func (c *Catalog) Status() string {
	if c.usingFallback {
		return StatusFallback
	}
	return StatusConnected
}
