package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runoshun/tasklist/internal/domain"
	"github.com/runoshun/tasklist/internal/testutil"
)

func TestInitConfig_Execute_Defaults(t *testing.T) {
	manager := &testutil.MockConfigManager{Info: domain.ConfigInfo{Path: "/cfg/config.toml"}}
	uc := NewInitConfig(manager)

	out, err := uc.Execute(context.Background(), InitConfigInput{})

	require.NoError(t, err)
	assert.Equal(t, "/cfg/config.toml", out.Path)
	require.NotNil(t, manager.Initialized)
	assert.Equal(t, domain.DefaultBackend, manager.Initialized.Store.Backend)
}

func TestInitConfig_Execute_AlreadyExists(t *testing.T) {
	manager := &testutil.MockConfigManager{InitErr: domain.ErrConfigExists}

	_, err := NewInitConfig(manager).Execute(context.Background(), InitConfigInput{})

	assert.ErrorIs(t, err, domain.ErrConfigExists)
}
