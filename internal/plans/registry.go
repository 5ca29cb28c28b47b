package plans

import (
	"embed"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed config/*.yaml
var configFiles embed.FS

// DefaultPlanID is the tier assigned to freshly bootstrapped profiles.
const DefaultPlanID = "free"

// Registry manages the plan tiers loaded from the embedded YAML file.
type Registry struct {
	plans map[string]*Plan
	order []string
	mu    sync.RWMutex
}

// NewRegistry creates a new plan registry and loads the embedded YAML file
func NewRegistry() (*Registry, error) {
	r := &Registry{
		plans: make(map[string]*Plan),
	}
	if err := r.loadFile("plans"); err != nil {
		return nil, fmt.Errorf("failed to load plans: %w", err)
	}
	if _, ok := r.plans[DefaultPlanID]; !ok {
		return nil, fmt.Errorf("plan file does not define the %q tier", DefaultPlanID)
	}
	return r, nil
}

func (r *Registry) loadFile(name string) error {
	filename := fmt.Sprintf("config/%s.yaml", name)
	data, err := configFiles.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", filename, err)
	}

	var file planFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("failed to unmarshal %s: %w", filename, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range file.Plans {
		p := &file.Plans[i]
		if p.ID == "" {
			return fmt.Errorf("%s: plan %d has no id", filename, i)
		}
		r.plans[p.ID] = p
		r.order = append(r.order, p.ID)
	}
	return nil
}

// Get returns the plan for the given tier id.
func (r *Registry) Get(id string) (*Plan, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.plans[id]
	if !ok {
		return nil, fmt.Errorf("unknown plan: %s", id)
	}
	return p, nil
}

// List returns all plans in the order the YAML defines them.
func (r *Registry) List() []Plan {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Plan, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, *r.plans[id])
	}
	return out
}
