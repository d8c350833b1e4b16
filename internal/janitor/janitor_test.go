package janitor

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"forumd/pkg/config"
	"forumd/pkg/models"
	"forumd/pkg/store"
)

func TestStartDisabledIsNoop(t *testing.T) {
	cancel, err := Start(context.Background(), config.MaintenanceConfig{Enabled: false})
	require.NoError(t, err)
	require.NotNil(t, cancel)
	cancel()
}

func TestStartRejectsInvalidCron(t *testing.T) {
	_, err := Start(context.Background(), config.MaintenanceConfig{Enabled: true, Cron: "not a cron"})
	require.Error(t, err)
}

func TestStartAcceptsValidCron(t *testing.T) {
	cancel, err := Start(context.Background(), config.MaintenanceConfig{Enabled: true, Cron: "*/5 * * * *"})
	require.NoError(t, err)
	cancel()
}

func TestSweepWithOpenStore(t *testing.T) {
	require.NoError(t, store.Open(t.TempDir()))
	t.Cleanup(func() { _ = store.Close() })

	require.NoError(t, store.SaveQuestion(models.Question{ID: 1, Content: "q"}))
	require.NoError(t, store.SaveReply(models.Reply{ID: 1, QuestionID: 1, Content: "r"}))

	// refreshes gauges from the store; must not fail with records present
	Sweep()
}
