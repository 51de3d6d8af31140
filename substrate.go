package substrate

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/aretw0/substrate/internal/runtime"
	"github.com/aretw0/substrate/pkg/domain"
)

// Designer is the high-level entry point for one editing session.
// It wraps the internal runtime and adds logging and lifecycle hooks.
type Designer struct {
	machine  *runtime.Machine
	hooks    domain.LifecycleHooks
	logger   *slog.Logger
	gridSize int
	clock    func() time.Time
	Name     string
}

// Option defines a functional option for configuring the Designer.
type Option func(*Designer)

// WithGridSize sets the side length of the grid (odd, default 15).
func WithGridSize(n int) Option {
	return func(d *Designer) {
		d.gridSize = n
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(d *Designer) {
		d.hooks = hooks
	}
}

// WithLogger sets a custom structured logger for the designer.
func WithLogger(logger *slog.Logger) Option {
	return func(d *Designer) {
		d.logger = logger
	}
}

// WithName labels the session in logs and events.
func WithName(name string) Option {
	return func(d *Designer) {
		d.Name = name
	}
}

// New initializes an empty Designer resting in Idle.
func New(opts ...Option) (*Designer, error) {
	d := &Designer{
		gridSize: domain.DefaultGridSize,
		clock:    time.Now,
	}
	for _, opt := range opts {
		opt(d)
	}

	space, err := domain.NewSpace(d.gridSize)
	if err != nil {
		return nil, err
	}
	d.machine = runtime.NewMachine(space)

	if d.logger == nil {
		d.logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	if d.Name != "" {
		d.logger = d.logger.With("session", d.Name)
	}
	return d, nil
}

// OnGridClick feeds a click on cell (x, y) to the interaction state machine.
// It returns a *domain.CoordinateError (ErrInvalidCoordinate) for cells outside the
// grid and leaves the session unchanged in that case. All other clicks succeed.
func (d *Designer) OnGridClick(ctx context.Context, x, y int) error {
	from := d.machine.Mode()
	out, err := d.machine.Click(domain.C(x, y))
	if err != nil {
		d.logger.Warn("Click rejected", "x", x, "y", y, "err", err)
		return err
	}

	d.logger.Debug("Click", "x", x, "y", y, "outcome", out.Kind)
	base := d.event(domain.EventClick)
	if d.hooks.OnClick != nil {
		d.hooks.OnClick(ctx, &domain.ClickEvent{EventBase: base, Outcome: out})
	}

	switch out.Kind {
	case domain.OutcomeNodeAdded, domain.OutcomeNodeRemoved:
		if d.hooks.OnNodeToggle != nil {
			d.hooks.OnNodeToggle(ctx, &domain.NodeEvent{
				EventBase: d.event(domain.EventNodeToggle),
				Role:      out.Role,
				Coord:     out.Coord,
				Added:     out.Kind == domain.OutcomeNodeAdded,
			})
		}
	case domain.OutcomeConnectionAdded, domain.OutcomeConnectionRemoved:
		if d.hooks.OnConnectionToggle != nil {
			d.hooks.OnConnectionToggle(ctx, &domain.ConnectionEvent{
				EventBase:  d.event(domain.EventConnectionToggle),
				Connection: out.Connection,
				Added:      out.Kind == domain.OutcomeConnectionAdded,
			})
		}
	}

	d.modeChanged(ctx, from)
	return nil
}

// OnArmPlacement arms placement of a node of role for the next click.
// It is accepted from any state and abandons a pending endpoint.
func (d *Designer) OnArmPlacement(ctx context.Context, role domain.Role) error {
	from := d.machine.Mode()
	changed, err := d.machine.Arm(role)
	if err != nil {
		d.logger.Warn("Arm rejected", "role", role, "err", err)
		return err
	}
	if changed {
		d.logger.Debug("Placement armed", "role", role)
		d.modeChanged(ctx, from)
	}
	return nil
}

func (d *Designer) modeChanged(ctx context.Context, from domain.Mode) {
	to := d.machine.Mode()
	if from == to || d.hooks.OnModeChange == nil {
		return
	}
	d.hooks.OnModeChange(ctx, &domain.ModeEvent{
		EventBase: d.event(domain.EventModeChange),
		From:      from,
		To:        to,
	})
}

func (d *Designer) event(t domain.EventType) domain.EventBase {
	return domain.EventBase{Timestamp: d.clock(), Type: t, Session: d.Name}
}

// Space returns the grid the designer accepts clicks from.
func (d *Designer) Space() domain.Space {
	return d.machine.Space()
}

// Inputs returns the input nodes in insertion order.
func (d *Designer) Inputs() []domain.Coord {
	return d.machine.Inputs()
}

// Outputs returns the output nodes in insertion order.
func (d *Designer) Outputs() []domain.Coord {
	return d.machine.Outputs()
}

// Hidden returns the derived hidden nodes (unordered).
func (d *Designer) Hidden() []domain.Coord {
	return d.machine.Hidden()
}

// Connections returns the connections in insertion order.
func (d *Designer) Connections() []domain.Connection {
	return d.machine.Connections()
}

// Mode returns the current interaction state.
func (d *Designer) Mode() domain.Mode {
	return d.machine.Mode()
}

// IsSelected reports whether (x, y) is the pending first endpoint.
func (d *Designer) IsSelected(x, y int) bool {
	return d.machine.IsSelected(domain.C(x, y))
}

// ArmedRole returns the armed placement role, if any.
func (d *Designer) ArmedRole() (domain.Role, bool) {
	return d.machine.ArmedRole()
}

// Cell classifies cell (x, y) for highlighting.
func (d *Designer) Cell(x, y int) domain.Cell {
	return d.machine.Cell(domain.C(x, y))
}

// Snapshot returns all collections and the mode, consistent with each other.
func (d *Designer) Snapshot() domain.Snapshot {
	return d.machine.Snapshot()
}
