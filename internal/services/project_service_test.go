package services

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProjectService(t *testing.T) {
	svc := NewProjectService(zerolog.Nop())
	ctx := context.Background()

	projects := svc.List(ctx)
	require.Len(t, projects, 3)

	project, err := svc.Get(ctx, "p-2")
	require.NoError(t, err)
	assert.Equal(t, "todo.html", project.Link)

	_, err = svc.Get(ctx, "p-9")
	assert.ErrorIs(t, err, ErrProjectNotFound)
}
