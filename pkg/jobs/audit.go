package jobs

import (
	"context"

	"github.com/robfig/cron/v3"

	"github.com/promptframe/promptframe-api/pkg/gallery_api/services"
	"github.com/promptframe/promptframe-api/pkg/tools"
)

// ScheduleDailyAudit sets up a cron job that cross-checks the image table
// against the storage bucket every day. The audit reports orphaned blobs and
// dead public URLs; it never deletes anything.
func ScheduleDailyAudit(ctx context.Context, svc *services.ImagesAPIService) *cron.Cron {
	c := cron.New()
	_, _ = c.AddFunc("@daily", func() {
		tools.Dispatch(context.Background(), "storage_audit", func(ctx context.Context) error {
			_, err := svc.AuditStorage(ctx)
			return err
		})
	})
	c.Start()

	go func() {
		<-ctx.Done()
		c.Stop()
	}()
	return c
}
