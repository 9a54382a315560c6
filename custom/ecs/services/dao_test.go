package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ecs"
	"github.com/aws/aws-sdk-go-v2/service/ecs/types"

	"github.com/loupecli/loupe/internal/action"
	"github.com/loupecli/loupe/internal/dao"
)

// fakeServicesAPI scripts ECS responses and records the calls made.
// Safe for the concurrent all-clusters fan-out.
type fakeServicesAPI struct {
	mu sync.Mutex

	clusterArns    []string
	servicesByArn  map[string][]string // cluster -> service ARNs
	listServiceErr map[string]error    // cluster -> error

	describeBatches [][]string
	describeErrOn   int // 1-based call number that fails, 0 = never
}

func (f *fakeServicesAPI) ListClusters(ctx context.Context, params *ecs.ListClustersInput, optFns ...func(*ecs.Options)) (*ecs.ListClustersOutput, error) {
	return &ecs.ListClustersOutput{ClusterArns: f.clusterArns}, nil
}

func (f *fakeServicesAPI) ListServices(ctx context.Context, params *ecs.ListServicesInput, optFns ...func(*ecs.Options)) (*ecs.ListServicesOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	cluster := aws.ToString(params.Cluster)
	if err := f.listServiceErr[cluster]; err != nil {
		return nil, err
	}
	return &ecs.ListServicesOutput{ServiceArns: f.servicesByArn[cluster]}, nil
}

func (f *fakeServicesAPI) DescribeServices(ctx context.Context, params *ecs.DescribeServicesInput, optFns ...func(*ecs.Options)) (*ecs.DescribeServicesOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.describeBatches = append(f.describeBatches, params.Services)
	if f.describeErrOn > 0 && len(f.describeBatches) == f.describeErrOn {
		return nil, errors.New("describe services throttled")
	}
	svcs := make([]types.Service, 0, len(params.Services))
	for _, arn := range params.Services {
		svcs = append(svcs, types.Service{
			ServiceArn:  aws.String(arn),
			ServiceName: aws.String(arn[len(arn)-5:]),
			Status:      aws.String("ACTIVE"),
		})
	}
	return &ecs.DescribeServicesOutput{Services: svcs}, nil
}

func serviceArns(cluster string, n int) []string {
	arns := make([]string, n)
	for i := range arns {
		arns[i] = fmt.Sprintf("arn:aws:ecs:us-east-1:123456789012:service/%s/svc%02d", cluster, i)
	}
	return arns
}

func TestServiceDAO_List_BatchesOfTen(t *testing.T) {
	fake := &fakeServicesAPI{
		servicesByArn: map[string][]string{"demo": serviceArns("demo", 25)},
	}
	d := newServiceDAO(fake)

	ctx := dao.WithFilter(context.Background(), "ClusterName", "demo")
	resources, err := d.List(ctx)
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}

	if len(resources) != 25 {
		t.Errorf("expected 25 resources, got %d", len(resources))
	}

	wantSizes := []int{10, 10, 5}
	if len(fake.describeBatches) != len(wantSizes) {
		t.Fatalf("expected %d DescribeServices calls, got %d", len(wantSizes), len(fake.describeBatches))
	}
	for i, want := range wantSizes {
		if len(fake.describeBatches[i]) != want {
			t.Errorf("describe call %d: expected %d ARNs, got %d", i, want, len(fake.describeBatches[i]))
		}
	}
}

func TestServiceDAO_List_EmptyCluster(t *testing.T) {
	fake := &fakeServicesAPI{servicesByArn: map[string][]string{}}
	d := newServiceDAO(fake)

	ctx := dao.WithFilter(context.Background(), "ClusterName", "demo")
	resources, err := d.List(ctx)
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}
	if len(resources) != 0 {
		t.Errorf("expected no resources, got %d", len(resources))
	}
	if len(fake.describeBatches) != 0 {
		t.Errorf("expected no DescribeServices calls, got %d", len(fake.describeBatches))
	}
}

func TestServiceDAO_List_DescribeFailureAborts(t *testing.T) {
	fake := &fakeServicesAPI{
		servicesByArn: map[string][]string{"demo": serviceArns("demo", 25)},
		describeErrOn: 2,
	}
	d := newServiceDAO(fake)

	ctx := dao.WithFilter(context.Background(), "ClusterName", "demo")
	resources, err := d.List(ctx)
	if err == nil {
		t.Fatal("expected error from failing describe batch")
	}
	if resources != nil {
		t.Errorf("expected no partial results, got %d resources", len(resources))
	}
}

func TestServiceDAO_List_AllClusters_FailurePropagates(t *testing.T) {
	sentinel := errors.New("access denied")
	fake := &fakeServicesAPI{
		clusterArns: []string{
			"arn:aws:ecs:us-east-1:123456789012:cluster/alpha",
			"arn:aws:ecs:us-east-1:123456789012:cluster/beta",
		},
		servicesByArn: map[string][]string{
			"arn:aws:ecs:us-east-1:123456789012:cluster/alpha": serviceArns("alpha", 3),
		},
		listServiceErr: map[string]error{
			"arn:aws:ecs:us-east-1:123456789012:cluster/beta": sentinel,
		},
	}
	d := newServiceDAO(fake)

	_, err := d.List(context.Background())
	if !errors.Is(err, sentinel) {
		t.Errorf("expected wrapped sentinel error, got %v", err)
	}
}

func TestServiceDAO_List_AllClusters_Aggregates(t *testing.T) {
	fake := &fakeServicesAPI{
		clusterArns: []string{
			"arn:aws:ecs:us-east-1:123456789012:cluster/alpha",
			"arn:aws:ecs:us-east-1:123456789012:cluster/beta",
		},
		servicesByArn: map[string][]string{
			"arn:aws:ecs:us-east-1:123456789012:cluster/alpha": serviceArns("alpha", 3),
			"arn:aws:ecs:us-east-1:123456789012:cluster/beta":  serviceArns("beta", 2),
		},
	}
	d := newServiceDAO(fake)

	resources, err := d.List(context.Background())
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}
	if len(resources) != 5 {
		t.Errorf("expected 5 resources across clusters, got %d", len(resources))
	}
	// Cluster order is preserved even though clusters are fetched concurrently
	if got := resources[0].GetARN(); got != serviceArns("alpha", 3)[0] {
		t.Errorf("first resource = %s, want alpha service", got)
	}
}

func TestServiceDAO_Get_RequiresClusterScope(t *testing.T) {
	d := newServiceDAO(&fakeServicesAPI{})
	if _, err := d.Get(context.Background(), "web"); err == nil {
		t.Error("expected error without ClusterName filter")
	}
}

func TestNewServiceResource(t *testing.T) {
	svc := types.Service{
		ServiceArn:   aws.String("arn:aws:ecs:us-east-1:123456789012:service/demo/web"),
		ServiceName:  aws.String("web"),
		Status:       aws.String("ACTIVE"),
		DesiredCount: 3,
		RunningCount: 2,
		PendingCount: 1,
		LaunchType:   types.LaunchTypeFargate,
		ClusterArn:   aws.String("arn:aws:ecs:us-east-1:123456789012:cluster/demo"),
	}

	r := NewServiceResource(svc)

	if r.GetName() != "web" {
		t.Errorf("GetName() = %q", r.GetName())
	}
	if r.Status() != "ACTIVE" {
		t.Errorf("Status() = %q", r.Status())
	}
	if r.DesiredCount() != 3 || r.RunningCount() != 2 || r.PendingCount() != 1 {
		t.Errorf("counts = %d/%d/%d", r.DesiredCount(), r.RunningCount(), r.PendingCount())
	}
	if r.LaunchType() != "FARGATE" {
		t.Errorf("LaunchType() = %q", r.LaunchType())
	}
}

func TestServiceActions_NoneRegistered(t *testing.T) {
	for _, a := range action.Global.Get("ecs", "services") {
		t.Errorf("unexpected action registered for ecs/services: %q", a.Name)
	}
	if action.Global.GetExecutor("ecs", "services") != nil {
		t.Error("unexpected executor registered for ecs/services")
	}
}

func TestServiceDAO_Delete_NotSupported(t *testing.T) {
	d := newServiceDAO(&fakeServicesAPI{})

	if d.Supports(dao.OpDelete) {
		t.Error("Supports(OpDelete) = true, want false")
	}
	if err := d.Delete(context.Background(), "web"); err == nil {
		t.Fatal("Delete() expected error, got nil")
	}
}
