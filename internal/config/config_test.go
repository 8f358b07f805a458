package config

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
)

func TestInitConfigDefaults(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	InitConfig()

	require.Equal(t, "./inbox", SourceDir)
	require.Equal(t, "./shelf", DestDir)
	require.Equal(t, "./bookjan.db", DatabaseFile)
	require.Equal(t, 5, ScanWindow)
	require.Equal(t, "end", ScanAnchor)
	require.Equal(t, 200, RenderDPI)
	require.False(t, MoveFiles)
}

func TestInitConfigFromViper(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	viper.Set("sourcedir", "/scans")
	viper.Set("scan.window", 3)
	viper.Set("scan.anchor", "first")

	InitConfig()

	require.Equal(t, "/scans", SourceDir)
	require.Equal(t, 3, ScanWindow)
	require.Equal(t, "first", ScanAnchor)
}

func TestSetMoveFiles(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	InitConfig()
	SetMoveFiles(true)
	require.True(t, MoveFiles)
}
