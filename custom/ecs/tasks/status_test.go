package tasks

import (
	"slices"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ecs/types"

	"github.com/loupecli/loupe/internal/dao"
)

func tasksWithStatuses(statuses ...string) []dao.Resource {
	resources := make([]dao.Resource, 0, len(statuses))
	for i, s := range statuses {
		resources = append(resources, NewTaskResource(types.Task{
			TaskArn:    aws.String("arn:aws:ecs:us-east-1:123456789012:task/demo/" + string(rune('a'+i))),
			LastStatus: aws.String(s),
		}))
	}
	return resources
}

func TestCountByStatus(t *testing.T) {
	counts := CountByStatus(tasksWithStatuses("RUNNING", "RUNNING", "PENDING", "STOPPED", "RUNNING"))

	want := map[string]int{"RUNNING": 3, "PENDING": 1, "STOPPED": 1}
	if len(counts) != len(want) {
		t.Fatalf("expected %d statuses, got %v", len(want), counts)
	}
	for status, n := range want {
		if counts[status] != n {
			t.Errorf("counts[%s] = %d, want %d", status, counts[status], n)
		}
	}
}

func TestCountByStatus_OpenDomain(t *testing.T) {
	// Statuses outside the known lifecycle are still counted
	counts := CountByStatus(tasksWithStatuses("RUNNING", "WEIRD_NEW_STATE", "WEIRD_NEW_STATE"))

	if counts["WEIRD_NEW_STATE"] != 2 {
		t.Errorf("counts[WEIRD_NEW_STATE] = %d, want 2", counts["WEIRD_NEW_STATE"])
	}
}

func TestCountByStatus_Empty(t *testing.T) {
	if counts := CountByStatus(nil); len(counts) != 0 {
		t.Errorf("expected empty map, got %v", counts)
	}
}

func TestStatusOrder(t *testing.T) {
	counts := map[string]int{
		"STOPPED":  1,
		"ZEBRA":    1,
		"RUNNING":  3,
		"AARDVARK": 1,
		"PENDING":  2,
	}

	got := StatusOrder(counts)
	want := []string{"PENDING", "RUNNING", "STOPPED", "AARDVARK", "ZEBRA"}
	if !slices.Equal(got, want) {
		t.Errorf("StatusOrder() = %v, want %v", got, want)
	}
}

func TestFormatStatusSummary(t *testing.T) {
	counts := map[string]int{"RUNNING": 3, "PENDING": 1, "STOPPED": 1}

	got := FormatStatusSummary(counts)
	want := "pending:1 running:3 stopped:1"
	if got != want {
		t.Errorf("FormatStatusSummary() = %q, want %q", got, want)
	}

	if FormatStatusSummary(nil) != "" {
		t.Error("expected empty string for no counts")
	}
}
