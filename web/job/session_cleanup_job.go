// Package job holds the cron jobs scheduled by the web server.
package job

import (
	"time"

	"boardhub/logger"
	"boardhub/web/service"
)

// SessionCleanupJob prunes session rows that expired more than a day ago.
// Session resolution checks expiry itself, so this only keeps the table from
// growing without bound.
type SessionCleanupJob struct {
	authService *service.AuthService
}

func NewSessionCleanupJob(authService *service.AuthService) *SessionCleanupJob {
	return &SessionCleanupJob{authService: authService}
}

func (j *SessionCleanupJob) Run() {
	if err := j.authService.DeleteExpiredSessions(24 * time.Hour); err != nil {
		logger.Warning("session cleanup failed:", err)
	}
}
