package registry

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"strings"
	"sync"

	"github.com/loupecli/loupe/internal/dao"
	"github.com/loupecli/loupe/internal/render"
)

// ServiceResource uniquely identifies a resource type within an AWS service.
// For example, ServiceResource{Service: "ecs", Resource: "tasks"} represents
// the ECS Tasks resource type.
type ServiceResource struct {
	Service  string // AWS service name (e.g., "ecs", "s3")
	Resource string // Resource type within the service (e.g., "tasks", "buckets")
}

func (sr ServiceResource) String() string {
	return fmt.Sprintf("%s/%s", sr.Service, sr.Resource)
}

// Entry holds the factory functions for creating DAO and Renderer instances
// for a specific resource type. Both factories are called lazily when the
// resource is accessed.
type Entry struct {
	DAOFactory      dao.Factory    // Creates a DAO for data access operations
	RendererFactory render.Factory // Creates a Renderer for display formatting
}

// Registry manages service/resource registrations. Resource packages register
// themselves from init() via RegisterCustom on the Global instance.
type Registry struct {
	mu           sync.RWMutex
	entries      map[ServiceResource]Entry
	services     map[string][]string // service -> resource types
	displayNames map[string]string   // service -> display name for UI
	userDefaults map[string]string   // user-configured default resources per service
}

// New creates a new Registry
func New() *Registry {
	return &Registry{
		entries:      make(map[ServiceResource]Entry),
		services:     make(map[string][]string),
		displayNames: defaultDisplayNames(),
	}
}

// defaultDisplayNames returns the official display names for services
func defaultDisplayNames() map[string]string {
	return map[string]string{
		"ecs": "ECS",
		"s3":  "S3",
	}
}

// GetDisplayName returns the display name for a service
// Falls back to the service name if no display name is registered
func (r *Registry) GetDisplayName(service string) string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if name, ok := r.displayNames[service]; ok {
		return name
	}
	return service
}

// RegisterCustom registers a resource implementation
func (r *Registry) RegisterCustom(service, resource string, entry Entry) {
	r.mu.Lock()
	defer r.mu.Unlock()

	sr := ServiceResource{Service: service, Resource: resource}
	r.entries[sr] = entry
	r.addService(service, resource)
}

func (r *Registry) addService(service, resource string) {
	resources := r.services[service]
	if slices.Contains(resources, resource) {
		return
	}
	r.services[service] = append(resources, resource)
}

// Get retrieves the entry for a service/resource
func (r *Registry) Get(service, resource string) (Entry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entry, ok := r.entries[ServiceResource{Service: service, Resource: resource}]
	return entry, ok
}

// HasResource returns true if the service/resource is registered
func (r *Registry) HasResource(service, resource string) bool {
	_, ok := r.Get(service, resource)
	return ok
}

// GetDAO creates a DAO instance for the given service/resource
func (r *Registry) GetDAO(ctx context.Context, service, resource string) (dao.DAO, error) {
	entry, ok := r.Get(service, resource)
	if !ok {
		return nil, fmt.Errorf("no DAO registered for %s/%s", service, resource)
	}
	if entry.DAOFactory == nil {
		return nil, fmt.Errorf("no DAO factory for %s/%s", service, resource)
	}
	return entry.DAOFactory(ctx)
}

// GetRenderer creates a Renderer instance for the given service/resource
func (r *Registry) GetRenderer(service, resource string) (render.Renderer, error) {
	entry, ok := r.Get(service, resource)
	if !ok {
		return nil, fmt.Errorf("no renderer registered for %s/%s", service, resource)
	}
	if entry.RendererFactory == nil {
		return nil, fmt.Errorf("no renderer factory for %s/%s", service, resource)
	}
	return entry.RendererFactory(), nil
}

// ListServices returns all registered service names (sorted alphabetically)
func (r *Registry) ListServices() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	services := slices.Collect(maps.Keys(r.services))
	slices.Sort(services)
	return services
}

// ListResources returns all resource types for a service (sorted alphabetically)
func (r *Registry) ListResources(service string) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	resources := slices.Clone(r.services[service])
	slices.Sort(resources)
	return resources
}

// defaultResources maps service names to their preferred default resource type.
// When a service is accessed without specifying a resource type, this resource
// is used instead of alphabetically first.
var defaultResources = map[string]string{
	"ecs": "clusters",
	"s3":  "buckets",
}

// DefaultResource returns the preferred default resource type for a service.
// Falls back to alphabetically first resource if no default is configured.
func (r *Registry) DefaultResource(service string) string {
	r.mu.RLock()
	userDefault := r.userDefaults[service]
	r.mu.RUnlock()

	if userDefault != "" {
		if _, exists := r.Get(service, userDefault); exists {
			return userDefault
		}
	}
	if def, ok := defaultResources[service]; ok {
		if _, exists := r.Get(service, def); exists {
			return def
		}
	}
	resources := r.ListResources(service)
	if len(resources) > 0 {
		return resources[0]
	}
	return ""
}

// SetDefaultResource allows overriding the default resource for a service.
// User-configured defaults take precedence over built-in defaults.
func (r *Registry) SetDefaultResource(service, resource string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.userDefaults == nil {
		r.userDefaults = make(map[string]string)
	}
	r.userDefaults[service] = resource
}

// ParseServiceResource resolves an input like "ecs", "ecs/tasks" or "ecs/"
// to a registered service and resource type. A bare service name (or a
// trailing slash) resolves to the service's default resource.
func (r *Registry) ParseServiceResource(input string) (service, resource string, err error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return "", "", fmt.Errorf("empty service name")
	}

	parts := strings.Split(input, "/")
	if len(parts) > 2 || parts[0] == "" {
		return "", "", fmt.Errorf("invalid service path: %s (expected service or service/resource)", input)
	}

	service = parts[0]
	if len(r.ListResources(service)) == 0 {
		return "", "", fmt.Errorf("unknown service: %s (available: %s)", service, strings.Join(r.ListServices(), ", "))
	}

	if len(parts) == 2 && parts[1] != "" {
		resource = parts[1]
		if !r.HasResource(service, resource) {
			return "", "", fmt.Errorf("unknown resource %s for service %s (available: %s)", resource, service, strings.Join(r.ListResources(service), ", "))
		}
		return service, resource, nil
	}

	return service, r.DefaultResource(service), nil
}

// Global is the default global registry
var Global = New()
