package buckets

import (
	"context"
	"testing"

	"github.com/loupecli/loupe/internal/dao"
)

func TestBucketDAO_Delete_NotSupported(t *testing.T) {
	d := &BucketDAO{BaseDAO: dao.NewBaseDAO("s3", "buckets")}

	if d.Supports(dao.OpDelete) {
		t.Error("Supports(OpDelete) = true, want false")
	}
	if err := d.Delete(context.Background(), "my-bucket"); err == nil {
		t.Fatal("Delete() expected error, got nil")
	}
}
