package engine

import "fmt"

// Context is the in-memory bag of artifact metadata that metrics read from.
// The engine never looks inside it. Metrics must treat it as read-only.
type Context map[string]any

// Scope returns the named sub-mapping, or nil when it is absent or not a mapping.
func (c Context) Scope(name string) map[string]any {
	switch v := c[name].(type) {
	case map[string]any:
		return v
	case Context:
		return v
	case map[string]float64:
		out := make(map[string]any, len(v))
		for k, f := range v {
			out[k] = f
		}
		return out
	case map[string]bool:
		out := make(map[string]any, len(v))
		for k, b := range v {
			out[k] = b
		}
		return out
	case map[string]string:
		out := make(map[string]any, len(v))
		for k, s := range v {
			out[k] = s
		}
		return out
	default:
		return nil
	}
}

// Params is what the runner hands to a metric besides the context.
type Params struct {
	// Options is the operationalization's opaque params mapping.
	Options map[string]any
	// Threshold is the resolved metric-local pass/fail threshold.
	Threshold float64
}

// Metric is a pluggable scoring strategy.
type Metric interface {
	// ID returns the identifier operationalizations refer to.
	ID() string
	// Compute scores the context. It must not modify c.
	Compute(c Context, p Params) (MetricResult, error)
}

// Factory constructs a fresh Metric.
type Factory func() Metric

// Registry maps metric ids to factories. Build it once, then only read from it.
type Registry struct {
	factories map[string]Factory
	order     []string
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

// Register adds a factory under id. Registering the same id twice is an error.
func (r *Registry) Register(id string, f Factory) error {
	if id == "" {
		return fmt.Errorf("%w: empty metric id", ErrInvalidConfiguration)
	}
	if f == nil {
		return fmt.Errorf("%w: nil factory for metric %q", ErrInvalidConfiguration, id)
	}
	if _, exists := r.factories[id]; exists {
		return fmt.Errorf("%w: metric %q registered twice", ErrInvalidConfiguration, id)
	}
	r.factories[id] = f
	r.order = append(r.order, id)
	return nil
}

// MustRegister is Register for static plans; it panics on error.
func (r *Registry) MustRegister(id string, f Factory) {
	if err := r.Register(id, f); err != nil {
		panic(err)
	}
}

// Resolve returns the factory for id.
func (r *Registry) Resolve(id string) (Factory, error) {
	f, ok := r.factories[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownMetric, id)
	}
	return f, nil
}

// Has reports whether id is registered.
func (r *Registry) Has(id string) bool {
	_, ok := r.factories[id]
	return ok
}

// IDs returns registered ids in registration order.
func (r *Registry) IDs() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// Len returns the number of registered metrics.
func (r *Registry) Len() int { return len(r.factories) }

