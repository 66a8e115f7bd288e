package catalog

import (
	"fmt"
	"time"

	"github.com/robinvdvleuten/contrato/normalize"
	"github.com/robinvdvleuten/contrato/record"
	"github.com/robinvdvleuten/contrato/render"
)

// DefaultNoticeTTL is how long an insertion notice stays visible.
const DefaultNoticeTTL = 5 * time.Second

// Notice tells the user a variable could not be inserted.
type Notice struct {
	Key       string    `json:"key"`
	Message   string    `json:"message"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Expired reports whether the notice should no longer be shown at now.
func (n *Notice) Expired(now time.Time) bool {
	return n == nil || !now.Before(n.ExpiresAt)
}

// Source is the selected record a variable is inserted from.
type Source struct {
	Scope   Scope
	Values  map[string]string
	Address record.Address
}

// CompanySource returns the insertion source for a company, or nil when c is nil.
func CompanySource(c *record.Company) *Source {
	if c == nil {
		return nil
	}
	return &Source{Scope: CompanyScope, Values: CompanyValues(c), Address: c.Address}
}

// IndividualSource returns the insertion source for an individual, or nil when i is nil.
func IndividualSource(i *record.Individual) *Source {
	if i == nil {
		return nil
	}
	return &Source{Scope: IndividualScope, Values: IndividualValues(i), Address: i.Address}
}

// Available reports whether the source has a value for key. Full addresses need at
// least a street and a number; every other key needs a non-blank value.
func (s *Source) Available(key string) bool {
	if s == nil {
		return false
	}
	if isAddressKey(s.Scope, key) {
		return !normalize.IsBlank(s.Address.Street) && !normalize.IsBlank(s.Address.Number)
	}
	return !normalize.IsBlank(s.Values[key])
}

func isAddressKey(scope Scope, key string) bool {
	switch scope {
	case CompanyScope:
		return key == CompanyAddressKey
	case IndividualScope:
		return key == IndividualAddressKey
	}
	return false
}

// Insertion is the outcome of a guarded insertion.
type Insertion struct {
	Body     string
	Inserted bool
	Notice   *Notice
}

// Guard validates variable insertions into a free-form draft body.
//
// Configure the guard using functional options passed to NewGuard:
//
//	guard := NewGuard(WithNoticeTTL(10 * time.Second))
type Guard struct {
	ttl time.Duration
	now func() time.Time
}

// GuardOption configures a Guard.
type GuardOption func(*Guard)

// WithNoticeTTL sets how long notices stay visible.
func WithNoticeTTL(ttl time.Duration) GuardOption {
	return func(g *Guard) {
		if ttl > 0 {
			g.ttl = ttl
		}
	}
}

// WithClock sets the clock used to stamp notices.
func WithClock(now func() time.Time) GuardOption {
	return func(g *Guard) {
		g.now = now
	}
}

// NewGuard creates a Guard with the given options.
func NewGuard(opts ...GuardOption) *Guard {
	g := &Guard{
		ttl: DefaultNoticeTTL,
		now: time.Now,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// TTL returns the notice lifetime.
func (g *Guard) TTL() time.Duration {
	return g.ttl
}

// Insert appends the token for key to body when src has a value for it. With no
// source or no key nothing happens. When the value is unavailable the body is
// returned unchanged together with an expiring notice.
func (g *Guard) Insert(body string, src *Source, key string) Insertion {
	if src == nil || key == "" {
		return Insertion{Body: body}
	}

	if !src.Available(key) {
		return Insertion{
			Body: body,
			Notice: &Notice{
				Key:       key,
				Message:   fmt.Sprintf("Variável %q não encontrada. Verifique o cadastro do cliente.", key),
				ExpiresAt: g.now().Add(g.ttl),
			},
		}
	}

	return Insertion{Body: body + render.Token(key), Inserted: true}
}
