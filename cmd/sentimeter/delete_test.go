package main_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/fwojciec/sentimeter"
	main "github.com/fwojciec/sentimeter/cmd/sentimeter"
	"github.com/fwojciec/sentimeter/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeleteCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("requires --force", func(t *testing.T) {
		t.Parallel()

		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: &bytes.Buffer{},
			Stderr: stderr,
			Runs: &mock.RunService{
				DeleteRunFn: func(context.Context, string) error {
					t.Fatal("DeleteRun must not be called without --force")
					return nil
				},
			},
		}

		err := (&main.DeleteCmd{ID: "run-123"}).Run(deps)

		require.Error(t, err)
		assert.Equal(t, sentimeter.EINVALID, sentimeter.ErrorCode(err))
		assert.Contains(t, stderr.String(), "--force")
	})

	t.Run("deletes run", func(t *testing.T) {
		t.Parallel()

		var deletedID string
		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: stdout,
			Stderr: &bytes.Buffer{},
			Runs: &mock.RunService{
				DeleteRunFn: func(_ context.Context, id string) error {
					deletedID = id
					return nil
				},
			},
		}

		err := (&main.DeleteCmd{ID: "run-123", Force: true}).Run(deps)

		require.NoError(t, err)
		assert.Equal(t, "run-123", deletedID)
		assert.Contains(t, stdout.String(), "Deleted run run-123")
	})

	t.Run("reports missing run", func(t *testing.T) {
		t.Parallel()

		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: &bytes.Buffer{},
			Stderr: stderr,
			Runs: &mock.RunService{
				DeleteRunFn: func(context.Context, string) error {
					return sentimeter.Errorf(sentimeter.ENOTFOUND, "run not found")
				},
			},
		}

		err := (&main.DeleteCmd{ID: "nope", Force: true}).Run(deps)

		require.Error(t, err)
		assert.Contains(t, stderr.String(), `run "nope" not found`)
	})
}
