package dao

import (
	"context"
)

// Resource represents a generic AWS resource
type Resource interface {
	GetID() string
	GetName() string
	GetARN() string
	GetTags() map[string]string
	Raw() any
}

// DAO defines the interface for data access operations on AWS resources
type DAO interface {
	// ServiceName returns the AWS service name (e.g., "ecs", "s3")
	ServiceName() string

	// ResourceType returns the resource type (e.g., "tasks", "buckets")
	ResourceType() string

	// List retrieves all resources of this type
	List(ctx context.Context) ([]Resource, error)

	// Get retrieves a single resource by ID
	Get(ctx context.Context, id string) (Resource, error)

	// Delete removes a resource by ID (if supported)
	Delete(ctx context.Context, id string) error

	// Supports returns whether this DAO supports the given operation
	Supports(op Operation) bool
}

// Operation represents a supported operation type
type Operation string

const (
	OpList   Operation = "list"
	OpGet    Operation = "get"
	OpDelete Operation = "delete"
)

// BaseResource provides a default implementation of Resource
type BaseResource struct {
	ID   string
	Name string
	ARN  string
	Tags map[string]string
	Data any
}

func (r *BaseResource) GetID() string              { return r.ID }
func (r *BaseResource) GetName() string            { return r.Name }
func (r *BaseResource) GetARN() string             { return r.ARN }
func (r *BaseResource) GetTags() map[string]string { return r.Tags }
func (r *BaseResource) Raw() any                   { return r.Data }

// BaseDAO provides common DAO functionality.
// Embed this in your DAO struct to get default implementations.
type BaseDAO struct {
	service  string
	resource string
}

// NewBaseDAO creates a new BaseDAO with the given service and resource names.
func NewBaseDAO(service, resource string) BaseDAO {
	return BaseDAO{service: service, resource: resource}
}

func (d *BaseDAO) ServiceName() string  { return d.service }
func (d *BaseDAO) ResourceType() string { return d.resource }

// Supports returns true for List and Get operations by default.
// Override this method if your DAO has different capabilities.
func (d *BaseDAO) Supports(op Operation) bool {
	switch op {
	case OpList, OpGet:
		return true
	default:
		return false
	}
}

// Factory creates DAO instances
type Factory func(ctx context.Context) (DAO, error)

// Mergeable is an optional interface for resources that need to preserve
// fields from List() when refreshed via Get(). This is useful when Get()
// returns a new resource that lacks some fields only available from List()
// (e.g., S3 bucket CreationDate is only in ListBuckets response).
type Mergeable interface {
	Resource
	// MergeFrom copies fields from the original resource that are not
	// available in the Get() response. Called after Get() refresh.
	MergeFrom(original Resource)
}

type clusterAwareResource interface {
	ClusterArn() string
}

// GetResourceClusterArn returns the owning ECS cluster ARN for resources that
// carry one (services, tasks), or "" otherwise.
func GetResourceClusterArn(res Resource) string {
	if cr, ok := res.(clusterAwareResource); ok {
		return cr.ClusterArn()
	}
	return ""
}

// Context key types for filter values
type filterContextKey string

const filterPrefix filterContextKey = "dao_filter_"

// WithFilter adds a filter value to the context
func WithFilter(ctx context.Context, key, value string) context.Context {
	return context.WithValue(ctx, filterPrefix+filterContextKey(key), value)
}

// GetFilterFromContext retrieves a filter value from the context
func GetFilterFromContext(ctx context.Context, key string) string {
	if v := ctx.Value(filterPrefix + filterContextKey(key)); v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}
