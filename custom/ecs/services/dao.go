package services

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/service/ecs"
	"github.com/aws/aws-sdk-go-v2/service/ecs/types"
	"golang.org/x/sync/errgroup"

	appaws "github.com/loupecli/loupe/internal/aws"
	"github.com/loupecli/loupe/internal/dao"
)

// Clusters are described concurrently in the all-clusters view; this caps the
// number of in-flight ECS calls.
const listClustersConcurrency = 4

// servicesAPI is the subset of the ECS client used by ServiceDAO.
// Satisfied by *ecs.Client; tests inject a fake.
type servicesAPI interface {
	ListClusters(ctx context.Context, params *ecs.ListClustersInput, optFns ...func(*ecs.Options)) (*ecs.ListClustersOutput, error)
	ListServices(ctx context.Context, params *ecs.ListServicesInput, optFns ...func(*ecs.Options)) (*ecs.ListServicesOutput, error)
	DescribeServices(ctx context.Context, params *ecs.DescribeServicesInput, optFns ...func(*ecs.Options)) (*ecs.DescribeServicesOutput, error)
}

// ServiceDAO provides data access for ECS services
type ServiceDAO struct {
	dao.BaseDAO
	client servicesAPI
}

// NewServiceDAO creates a new ServiceDAO
func NewServiceDAO(ctx context.Context) (dao.DAO, error) {
	cfg, err := appaws.NewConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("new %s dao: %w", ServiceResourcePath, err)
	}
	return newServiceDAO(ecs.NewFromConfig(cfg)), nil
}

func newServiceDAO(client servicesAPI) *ServiceDAO {
	return &ServiceDAO{
		BaseDAO: dao.NewBaseDAO("ecs", "services"),
		client:  client,
	}
}

func (d *ServiceDAO) List(ctx context.Context) ([]dao.Resource, error) {
	// Get cluster name from filter context
	clusterName := dao.GetFilterFromContext(ctx, "ClusterName")
	if clusterName == "" {
		// List services from all clusters
		return d.listAllServices(ctx)
	}

	return d.listServicesInCluster(ctx, clusterName)
}

func (d *ServiceDAO) listAllServices(ctx context.Context) ([]dao.Resource, error) {
	// First get all clusters
	clusterArns, err := appaws.Paginate(ctx, func(token *string) ([]string, *string, error) {
		output, err := d.client.ListClusters(ctx, &ecs.ListClustersInput{NextToken: token})
		if err != nil {
			return nil, nil, fmt.Errorf("list clusters: %w", err)
		}
		return output.ClusterArns, output.NextToken, nil
	})
	if err != nil {
		return nil, err
	}

	// Fan out per cluster. Any cluster failing fails the whole listing; a
	// partial cross-cluster result would be indistinguishable from a complete
	// one in the table.
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(listClustersConcurrency)

	perCluster := make([][]dao.Resource, len(clusterArns))
	for i, clusterArn := range clusterArns {
		g.Go(func() error {
			clusterServices, err := d.listServicesInCluster(ctx, clusterArn)
			if err != nil {
				return fmt.Errorf("cluster %s: %w", appaws.ExtractResourceName(clusterArn), err)
			}
			perCluster[i] = clusterServices
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var resources []dao.Resource
	for _, clusterServices := range perCluster {
		resources = append(resources, clusterServices...)
	}

	return resources, nil
}

func (d *ServiceDAO) listServicesInCluster(ctx context.Context, cluster string) ([]dao.Resource, error) {
	serviceArns, err := appaws.Paginate(ctx, func(token *string) ([]string, *string, error) {
		output, err := d.client.ListServices(ctx, &ecs.ListServicesInput{
			Cluster:   &cluster,
			NextToken: token,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("list services: %w", err)
		}
		return output.ServiceArns, output.NextToken, nil
	})
	if err != nil {
		return nil, err
	}

	if len(serviceArns) == 0 {
		return nil, nil
	}

	// DescribeServices accepts at most 10 ARNs per call. A failed batch fails
	// the listing; partially described results are never returned.
	resources := make([]dao.Resource, 0, len(serviceArns))
	for _, batch := range appaws.Chunk(serviceArns, appaws.DescribeServicesBatchSize) {
		descOutput, err := d.client.DescribeServices(ctx, &ecs.DescribeServicesInput{
			Cluster:  &cluster,
			Services: batch,
		})
		if err != nil {
			return nil, fmt.Errorf("describe services: %w", err)
		}

		for _, svc := range descOutput.Services {
			resources = append(resources, NewServiceResource(svc))
		}
	}

	return resources, nil
}

func (d *ServiceDAO) Get(ctx context.Context, id string) (dao.Resource, error) {
	clusterName := dao.GetFilterFromContext(ctx, "ClusterName")
	if clusterName == "" {
		return nil, fmt.Errorf("cluster name filter required")
	}

	input := &ecs.DescribeServicesInput{
		Cluster:  &clusterName,
		Services: []string{id},
	}

	output, err := d.client.DescribeServices(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("describe service %s: %w", id, err)
	}

	if len(output.Services) == 0 {
		return nil, fmt.Errorf("service not found: %s", id)
	}

	return NewServiceResource(output.Services[0]), nil
}

// Delete is required by dao.DAO; service deletion is not supported.
func (d *ServiceDAO) Delete(ctx context.Context, id string) error {
	return fmt.Errorf("delete is not supported for %s", ServiceResourcePath)
}

// ServiceResource wraps an ECS service
type ServiceResource struct {
	dao.BaseResource
	Item types.Service
}

// NewServiceResource creates a new ServiceResource
func NewServiceResource(svc types.Service) *ServiceResource {
	return &ServiceResource{
		BaseResource: dao.BaseResource{
			ID:   appaws.Str(svc.ServiceName),
			Name: appaws.Str(svc.ServiceName),
			ARN:  appaws.Str(svc.ServiceArn),
			Data: svc,
		},
		Item: svc,
	}
}

// Status returns the service status
func (r *ServiceResource) Status() string {
	return appaws.Str(r.Item.Status)
}

// DesiredCount returns the desired task count
func (r *ServiceResource) DesiredCount() int32 {
	return r.Item.DesiredCount
}

// RunningCount returns the running task count
func (r *ServiceResource) RunningCount() int32 {
	return r.Item.RunningCount
}

// PendingCount returns the pending task count
func (r *ServiceResource) PendingCount() int32 {
	return r.Item.PendingCount
}

// LaunchType returns the launch type
func (r *ServiceResource) LaunchType() string {
	return string(r.Item.LaunchType)
}

// TaskDefinition returns the task definition ARN
func (r *ServiceResource) TaskDefinition() string {
	return appaws.Str(r.Item.TaskDefinition)
}

// ClusterArn returns the cluster ARN
func (r *ServiceResource) ClusterArn() string {
	return appaws.Str(r.Item.ClusterArn)
}

// Deployments returns the deployments
func (r *ServiceResource) Deployments() []types.Deployment {
	return r.Item.Deployments
}

// LoadBalancers returns the load balancers
func (r *ServiceResource) LoadBalancers() []types.LoadBalancer {
	return r.Item.LoadBalancers
}

// CreatedAt returns the service creation time
func (r *ServiceResource) CreatedAt() string {
	if r.Item.CreatedAt != nil {
		return r.Item.CreatedAt.Format("2006-01-02 15:04:05")
	}
	return ""
}

// CreatedBy returns the principal that created the service
func (r *ServiceResource) CreatedBy() string {
	return appaws.Str(r.Item.CreatedBy)
}

// EnableExecuteCommand returns whether ECS Exec is enabled
func (r *ServiceResource) EnableExecuteCommand() bool {
	return r.Item.EnableExecuteCommand
}

// SchedulingStrategy returns the scheduling strategy (REPLICA or DAEMON)
func (r *ServiceResource) SchedulingStrategy() string {
	return string(r.Item.SchedulingStrategy)
}

// NetworkConfiguration returns the network configuration
func (r *ServiceResource) NetworkConfiguration() *types.NetworkConfiguration {
	return r.Item.NetworkConfiguration
}

// ServiceRegistries returns the service discovery registries
func (r *ServiceResource) ServiceRegistries() []types.ServiceRegistry {
	return r.Item.ServiceRegistries
}

// Events returns the latest service events
func (r *ServiceResource) Events() []types.ServiceEvent {
	return r.Item.Events
}

// HealthCheckGracePeriodSeconds returns the health check grace period
func (r *ServiceResource) HealthCheckGracePeriodSeconds() int32 {
	if r.Item.HealthCheckGracePeriodSeconds != nil {
		return *r.Item.HealthCheckGracePeriodSeconds
	}
	return 0
}

// CapacityProviderStrategy returns the capacity provider strategy
func (r *ServiceResource) CapacityProviderStrategy() []types.CapacityProviderStrategyItem {
	return r.Item.CapacityProviderStrategy
}

// PlatformVersion returns the Fargate platform version
func (r *ServiceResource) PlatformVersion() string {
	return appaws.Str(r.Item.PlatformVersion)
}
