package tasks

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/service/ecs"
	"github.com/aws/aws-sdk-go-v2/service/ecs/types"

	appaws "github.com/loupecli/loupe/internal/aws"
	"github.com/loupecli/loupe/internal/dao"
	apperrors "github.com/loupecli/loupe/internal/errors"
)

// tasksAPI is the subset of the ECS client used by TaskDAO.
// Satisfied by *ecs.Client; tests inject a fake.
type tasksAPI interface {
	ListClusters(ctx context.Context, params *ecs.ListClustersInput, optFns ...func(*ecs.Options)) (*ecs.ListClustersOutput, error)
	ListTasks(ctx context.Context, params *ecs.ListTasksInput, optFns ...func(*ecs.Options)) (*ecs.ListTasksOutput, error)
	DescribeTasks(ctx context.Context, params *ecs.DescribeTasksInput, optFns ...func(*ecs.Options)) (*ecs.DescribeTasksOutput, error)
	StopTask(ctx context.Context, params *ecs.StopTaskInput, optFns ...func(*ecs.Options)) (*ecs.StopTaskOutput, error)
}

// TaskDAO provides data access for ECS tasks
type TaskDAO struct {
	dao.BaseDAO
	client tasksAPI
}

// NewTaskDAO creates a new TaskDAO
func NewTaskDAO(ctx context.Context) (dao.DAO, error) {
	cfg, err := appaws.NewConfig(ctx)
	if err != nil {
		return nil, apperrors.Wrap(err, "new "+ServiceResourcePath+" dao")
	}
	return newTaskDAO(ecs.NewFromConfig(cfg)), nil
}

func newTaskDAO(client tasksAPI) *TaskDAO {
	return &TaskDAO{
		BaseDAO: dao.NewBaseDAO("ecs", "tasks"),
		client:  client,
	}
}

func (d *TaskDAO) List(ctx context.Context) ([]dao.Resource, error) {
	clusterName := dao.GetFilterFromContext(ctx, "ClusterName")
	if clusterName == "" {
		// List tasks from all clusters
		return d.listAllTasks(ctx)
	}

	return d.listTasksInCluster(ctx, clusterName)
}

func (d *TaskDAO) listAllTasks(ctx context.Context) ([]dao.Resource, error) {
	// First get all clusters
	clusterArns, err := appaws.Paginate(ctx, func(token *string) ([]string, *string, error) {
		output, err := d.client.ListClusters(ctx, &ecs.ListClustersInput{NextToken: token})
		if err != nil {
			return nil, nil, apperrors.Wrap(err, "list clusters")
		}
		return output.ClusterArns, output.NextToken, nil
	})
	if err != nil {
		return nil, err
	}

	serviceName := dao.GetFilterFromContext(ctx, "ServiceName")

	resources := make([]dao.Resource, 0, len(clusterArns))
	for _, clusterArn := range clusterArns {
		clusterTasks, err := d.listTasksInCluster(ctx, clusterArn)
		if err != nil {
			// A service lives in exactly one cluster; the others answer
			// "service not found" when the filter names it.
			if serviceName != "" && apperrors.IsNotFound(err) {
				continue
			}
			return nil, apperrors.Wrapf(err, "cluster %s", appaws.ExtractResourceName(clusterArn))
		}
		resources = append(resources, clusterTasks...)
	}

	return resources, nil
}

func (d *TaskDAO) listTasksInCluster(ctx context.Context, cluster string) ([]dao.Resource, error) {
	serviceName := dao.GetFilterFromContext(ctx, "ServiceName")

	taskArns, err := appaws.Paginate(ctx, func(token *string) ([]string, *string, error) {
		input := &ecs.ListTasksInput{
			Cluster:   &cluster,
			NextToken: token,
		}
		if serviceName != "" {
			input.ServiceName = &serviceName
		}
		output, err := d.client.ListTasks(ctx, input)
		if err != nil {
			return nil, nil, apperrors.Wrap(err, "list tasks")
		}
		return output.TaskArns, output.NextToken, nil
	})
	if err != nil {
		return nil, err
	}

	if len(taskArns) == 0 {
		return nil, nil
	}

	// DescribeTasks accepts at most 100 ARNs per call. A failed batch fails
	// the listing; partially described results are never returned.
	resources := make([]dao.Resource, 0, len(taskArns))
	for _, batch := range appaws.Chunk(taskArns, appaws.DescribeTasksBatchSize) {
		descOutput, err := d.client.DescribeTasks(ctx, &ecs.DescribeTasksInput{
			Cluster: &cluster,
			Tasks:   batch,
		})
		if err != nil {
			return nil, apperrors.Wrap(err, "describe tasks")
		}

		for _, task := range descOutput.Tasks {
			resources = append(resources, NewTaskResource(task))
		}
	}

	return resources, nil
}

func (d *TaskDAO) Get(ctx context.Context, id string) (dao.Resource, error) {
	clusterName := dao.GetFilterFromContext(ctx, "ClusterName")
	if clusterName == "" {
		return nil, fmt.Errorf("cluster name filter required")
	}

	input := &ecs.DescribeTasksInput{
		Cluster: &clusterName,
		Tasks:   []string{id},
	}

	output, err := d.client.DescribeTasks(ctx, input)
	if err != nil {
		return nil, apperrors.Wrapf(err, "describe task %s", id)
	}

	if len(output.Tasks) == 0 {
		return nil, fmt.Errorf("task not found: %s", id)
	}

	return NewTaskResource(output.Tasks[0]), nil
}

func (d *TaskDAO) Delete(ctx context.Context, id string) error {
	clusterName := dao.GetFilterFromContext(ctx, "ClusterName")
	if clusterName == "" {
		return fmt.Errorf("cluster name filter required")
	}

	input := &ecs.StopTaskInput{
		Cluster: &clusterName,
		Task:    &id,
		Reason:  appaws.StringPtr("Stopped via loupe"),
	}

	_, err := d.client.StopTask(ctx, input)
	if err != nil {
		return apperrors.Wrapf(err, "stop task %s", id)
	}

	return nil
}

// TaskResource wraps an ECS task
type TaskResource struct {
	dao.BaseResource
	Item types.Task
}

// NewTaskResource creates a new TaskResource
func NewTaskResource(task types.Task) *TaskResource {
	// Extract task ID from ARN
	taskArn := appaws.Str(task.TaskArn)
	taskID := taskArn
	if parts := splitArn(taskArn); len(parts) > 0 {
		taskID = parts[len(parts)-1]
	}

	return &TaskResource{
		BaseResource: dao.BaseResource{
			ID:   taskID,
			Name: taskID,
			ARN:  taskArn,
			Data: task,
		},
		Item: task,
	}
}

func splitArn(arn string) []string {
	var parts []string
	current := ""
	for _, c := range arn {
		if c == '/' {
			if current != "" {
				parts = append(parts, current)
			}
			current = ""
		} else {
			current += string(c)
		}
	}
	if current != "" {
		parts = append(parts, current)
	}
	return parts
}

// LastStatus returns the last known status
func (r *TaskResource) LastStatus() string {
	return appaws.Str(r.Item.LastStatus)
}

// DesiredStatus returns the desired status
func (r *TaskResource) DesiredStatus() string {
	return appaws.Str(r.Item.DesiredStatus)
}

// LaunchType returns the launch type
func (r *TaskResource) LaunchType() string {
	return string(r.Item.LaunchType)
}

// TaskDefinitionArn returns the task definition ARN
func (r *TaskResource) TaskDefinitionArn() string {
	return appaws.Str(r.Item.TaskDefinitionArn)
}

// CPU returns the CPU units
func (r *TaskResource) CPU() string {
	return appaws.Str(r.Item.Cpu)
}

// Memory returns the memory
func (r *TaskResource) Memory() string {
	return appaws.Str(r.Item.Memory)
}

// Containers returns the containers
func (r *TaskResource) Containers() []types.Container {
	return r.Item.Containers
}

// StartedAt returns when the task started
func (r *TaskResource) StartedAt() string {
	if r.Item.StartedAt != nil {
		return r.Item.StartedAt.Format("2006-01-02 15:04:05")
	}
	return ""
}

// StoppedReason returns why the task stopped
func (r *TaskResource) StoppedReason() string {
	return appaws.Str(r.Item.StoppedReason)
}

// HealthStatus returns the health status
func (r *TaskResource) HealthStatus() string {
	return string(r.Item.HealthStatus)
}

// ClusterArn returns the cluster ARN
func (r *TaskResource) ClusterArn() string {
	return appaws.Str(r.Item.ClusterArn)
}

// Group returns the task group
func (r *TaskResource) Group() string {
	return appaws.Str(r.Item.Group)
}

// FirstContainerName returns the name of the first container (for ECS Exec)
func (r *TaskResource) FirstContainerName() string {
	if len(r.Item.Containers) > 0 && r.Item.Containers[0].Name != nil {
		return *r.Item.Containers[0].Name
	}
	return ""
}

// EnableExecuteCommand returns whether execute command is enabled for this task
func (r *TaskResource) EnableExecuteCommand() bool {
	return r.Item.EnableExecuteCommand
}
