// Package directory caches the operators a completed record can be attributed
// to.
package directory

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/five82/ledgerdesk/internal/ledger"
	"github.com/five82/ledgerdesk/internal/metrics"
)

// Source is the subset of the ledger API the directory needs.
type Source interface {
	ListOperators(ctx context.Context, role ledger.Role) ([]ledger.Operator, error)
	AddOperator(ctx context.Context, name string, channels []string) (int64, error)
}

// Directory holds the operator list for one session. It is safe for
// concurrent use.
type Directory struct {
	mu        sync.RWMutex
	src       Source
	role      ledger.Role
	logger    *slog.Logger
	metrics   *metrics.Metrics
	operators []ledger.Operator
}

// New returns an empty directory reading the listing for role.
func New(src Source, role ledger.Role, logger *slog.Logger) *Directory {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if role == "" {
		role = ledger.RoleCustomer
	}
	return &Directory{src: src, role: role, logger: logger}
}

// WithMetrics reports the cache size to m.
func (d *Directory) WithMetrics(m *metrics.Metrics) *Directory {
	d.metrics = m
	return d
}

// Role returns the role the directory lists operators for.
func (d *Directory) Role() ledger.Role {
	return d.role
}

// Load replaces the cache with the server's list. On failure the cache is
// reset to empty and the error is logged and returned; callers may ignore it.
func (d *Directory) Load(ctx context.Context) error {
	ops, err := d.src.ListOperators(ctx, d.role)

	d.mu.Lock()
	if err != nil {
		d.operators = nil
	} else {
		d.operators = cloneOperators(ops)
	}
	n := len(d.operators)
	d.mu.Unlock()

	d.metrics.SetOperatorsCached(n)
	if err != nil {
		d.logger.Warn("operator list unavailable", "role", d.role, "err", err)
		return err
	}
	d.logger.Debug("operators loaded", "role", d.role, "count", n)
	return nil
}

// ValidateName trims name and rejects it when empty.
func ValidateName(name string) (string, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return "", ledger.Validation("operator name is required")
	}
	return trimmed, nil
}

// Save creates an operator and appends it to the cache. When channels were
// requested the list is re-read so the new operator carries its channel ids;
// if that read fails the appended entry is kept.
func (d *Directory) Save(ctx context.Context, name string, channels ...string) (int64, error) {
	trimmed, err := ValidateName(name)
	if err != nil {
		return 0, err
	}
	wanted := cleanChannels(channels)

	id, err := d.src.AddOperator(ctx, trimmed, wanted)
	if err != nil {
		d.logger.Warn("add operator failed", "name", trimmed, "kind", ledger.Classify(err).String(), "err", err)
		return 0, err
	}

	d.mu.Lock()
	d.operators = append(d.operators, ledger.Operator{ID: id, Name: trimmed, Channels: []ledger.Channel{}})
	n := len(d.operators)
	d.mu.Unlock()
	d.metrics.SetOperatorsCached(n)
	d.logger.Info("operator added", "operator_id", id, "name", trimmed, "channels", len(wanted))

	if len(wanted) > 0 {
		if ops, err := d.src.ListOperators(ctx, d.role); err == nil {
			d.mu.Lock()
			d.operators = cloneOperators(ops)
			n = len(d.operators)
			d.mu.Unlock()
			d.metrics.SetOperatorsCached(n)
		} else {
			d.logger.Debug("operator list refresh after add failed", "err", err)
		}
	}
	return id, nil
}

// Operators returns a copy of the cache.
func (d *Directory) Operators() []ledger.Operator {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return cloneOperators(d.operators)
}

// Get looks up a cached operator by id.
func (d *Directory) Get(id int64) (ledger.Operator, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	for _, op := range d.operators {
		if op.ID == id {
			return cloneOperator(op), true
		}
	}
	return ledger.Operator{}, false
}

func cleanChannels(channels []string) []string {
	var out []string
	for _, ch := range channels {
		if ch = strings.TrimSpace(ch); ch != "" {
			out = append(out, ch)
		}
	}
	return out
}

func cloneOperators(ops []ledger.Operator) []ledger.Operator {
	if len(ops) == 0 {
		return nil
	}
	dup := make([]ledger.Operator, len(ops))
	for i, op := range ops {
		dup[i] = cloneOperator(op)
	}
	return dup
}

func cloneOperator(op ledger.Operator) ledger.Operator {
	if op.Channels != nil {
		channels := make([]ledger.Channel, len(op.Channels))
		copy(channels, op.Channels)
		op.Channels = channels
	}
	return op
}
