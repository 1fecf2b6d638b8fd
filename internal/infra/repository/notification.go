package repository

import (
	"context"
	"time"

	"petcare-hub/internal/infra"
	"petcare-hub/internal/pkg/pgconv"
	"petcare-hub/internal/usecase/commands"

	"github.com/jackc/pgx/v5"
)

// NotificationRepository enqueues outbound notification jobs in the same
// transaction as the booking change, so a job exists iff the change committed.
type NotificationRepository struct{}

func NewNotificationRepository() commands.NotificationRepository {
	return &NotificationRepository{}
}

func (r *NotificationRepository) CreateJob(ctx context.Context, tx pgx.Tx, kind, topic string, payload []byte, runAt time.Time) error {
	_, err := tx.Exec(ctx, `
		INSERT INTO notification_jobs (kind, topic, payload, run_at)
		VALUES ($1, $2, $3, $4)`,
		kind, topic, payload, pgconv.TimeToPgtype(runAt),
	)
	if err != nil {
		return infra.WrapRepoErr("create notification job", err)
	}
	return nil
}
