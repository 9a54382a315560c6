package taskdefinitions

import (
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/service/ecs"
	"github.com/aws/aws-sdk-go-v2/service/ecs/types"

	appaws "github.com/loupecli/loupe/internal/aws"
	"github.com/loupecli/loupe/internal/dao"
	apperrors "github.com/loupecli/loupe/internal/errors"
)

// taskDefinitionsAPI is the subset of the ECS client used by
// TaskDefinitionDAO. Satisfied by *ecs.Client; tests inject a fake.
type taskDefinitionsAPI interface {
	ListTaskDefinitions(ctx context.Context, params *ecs.ListTaskDefinitionsInput, optFns ...func(*ecs.Options)) (*ecs.ListTaskDefinitionsOutput, error)
	DescribeTaskDefinition(ctx context.Context, params *ecs.DescribeTaskDefinitionInput, optFns ...func(*ecs.Options)) (*ecs.DescribeTaskDefinitionOutput, error)
}

type TaskDefinitionDAO struct {
	dao.BaseDAO
	client taskDefinitionsAPI
}

func NewTaskDefinitionDAO(ctx context.Context) (dao.DAO, error) {
	cfg, err := appaws.NewConfig(ctx)
	if err != nil {
		return nil, apperrors.Wrap(err, "new "+ServiceResourcePath+" dao")
	}
	return newTaskDefinitionDAO(ecs.NewFromConfig(cfg)), nil
}

func newTaskDefinitionDAO(client taskDefinitionsAPI) *TaskDefinitionDAO {
	return &TaskDefinitionDAO{
		BaseDAO: dao.NewBaseDAO("ecs", "task-definitions"),
		client:  client,
	}
}

func (d *TaskDefinitionDAO) List(ctx context.Context) ([]dao.Resource, error) {
	// Navigating from a service or task scopes to one family:revision
	if taskDef := dao.GetFilterFromContext(ctx, "TaskDefinition"); taskDef != "" {
		resource, err := d.Get(ctx, taskDef)
		if err != nil {
			return nil, err
		}
		return []dao.Resource{resource}, nil
	}

	taskDefArns, err := appaws.Paginate(ctx, func(token *string) ([]string, *string, error) {
		output, err := d.client.ListTaskDefinitions(ctx, &ecs.ListTaskDefinitionsInput{
			Status:    types.TaskDefinitionStatusActive,
			Sort:      types.SortOrderDesc,
			NextToken: token,
		})
		if err != nil {
			return nil, nil, apperrors.Wrap(err, "list task definitions")
		}
		return output.TaskDefinitionArns, output.NextToken, nil
	})
	if err != nil {
		return nil, err
	}

	// ARNs arrive newest-first; keep only the latest revision per family
	seenFamilies := make(map[string]bool)
	var latestArns []string
	for _, arn := range taskDefArns {
		family := extractFamilyFromArn(arn)
		if !seenFamilies[family] {
			seenFamilies[family] = true
			latestArns = append(latestArns, arn)
		}
	}

	resources := make([]dao.Resource, 0, len(latestArns))
	for _, arn := range latestArns {
		output, err := d.client.DescribeTaskDefinition(ctx, &ecs.DescribeTaskDefinitionInput{
			TaskDefinition: &arn,
		})
		if err != nil {
			return nil, apperrors.Wrapf(err, "describe task definition %s", arn)
		}
		if output.TaskDefinition != nil {
			resources = append(resources, NewTaskDefinitionResource(*output.TaskDefinition))
		}
	}

	return resources, nil
}

func (d *TaskDefinitionDAO) Get(ctx context.Context, id string) (dao.Resource, error) {
	output, err := d.client.DescribeTaskDefinition(ctx, &ecs.DescribeTaskDefinitionInput{
		TaskDefinition: &id,
	})
	if err != nil {
		return nil, apperrors.Wrapf(err, "describe task definition %s", id)
	}

	if output.TaskDefinition == nil {
		return nil, fmt.Errorf("task definition not found: %s", id)
	}

	return NewTaskDefinitionResource(*output.TaskDefinition), nil
}

// Delete is required by dao.DAO; task definition deregistration is not supported.
func (d *TaskDefinitionDAO) Delete(ctx context.Context, id string) error {
	return fmt.Errorf("delete is not supported for %s", ServiceResourcePath)
}

func extractFamilyFromArn(arn string) string {
	parts := strings.Split(arn, "/")
	if len(parts) < 2 {
		return arn
	}
	familyRevision := parts[len(parts)-1]
	colonIdx := strings.LastIndex(familyRevision, ":")
	if colonIdx == -1 {
		return familyRevision
	}
	return familyRevision[:colonIdx]
}

type TaskDefinitionResource struct {
	dao.BaseResource
	Item types.TaskDefinition
}

func NewTaskDefinitionResource(td types.TaskDefinition) *TaskDefinitionResource {
	family := appaws.Str(td.Family)
	revision := td.Revision
	id := fmt.Sprintf("%s:%d", family, revision)

	return &TaskDefinitionResource{
		BaseResource: dao.BaseResource{
			ID:   id,
			Name: family,
			ARN:  appaws.Str(td.TaskDefinitionArn),
			Data: td,
		},
		Item: td,
	}
}

func (r *TaskDefinitionResource) Family() string {
	return appaws.Str(r.Item.Family)
}

func (r *TaskDefinitionResource) Revision() int32 {
	return r.Item.Revision
}

func (r *TaskDefinitionResource) Status() string {
	return string(r.Item.Status)
}

func (r *TaskDefinitionResource) CPU() string {
	return appaws.Str(r.Item.Cpu)
}

func (r *TaskDefinitionResource) Memory() string {
	return appaws.Str(r.Item.Memory)
}

func (r *TaskDefinitionResource) NetworkMode() string {
	return string(r.Item.NetworkMode)
}

func (r *TaskDefinitionResource) RequiresCompatibilities() []types.Compatibility {
	return r.Item.RequiresCompatibilities
}

func (r *TaskDefinitionResource) ContainerDefinitions() []types.ContainerDefinition {
	return r.Item.ContainerDefinitions
}

func (r *TaskDefinitionResource) TaskRoleArn() string {
	return appaws.Str(r.Item.TaskRoleArn)
}

func (r *TaskDefinitionResource) ExecutionRoleArn() string {
	return appaws.Str(r.Item.ExecutionRoleArn)
}

func (r *TaskDefinitionResource) Volumes() []types.Volume {
	return r.Item.Volumes
}

func (r *TaskDefinitionResource) RuntimePlatform() *types.RuntimePlatform {
	return r.Item.RuntimePlatform
}
