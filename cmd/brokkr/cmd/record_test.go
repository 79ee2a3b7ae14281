package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ssargent/brokkr/pkg/codec"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectRecord(t *testing.T) {
	t.Run("by size", func(t *testing.T) {
		kind, err := detectRecord("", codec.FileHeaderSize)
		require.NoError(t, err)
		assert.Equal(t, kindHeader, kind)

		kind, err = detectRecord("", codec.DeviceDescriptorSize)
		require.NoError(t, err)
		assert.Equal(t, kindDevice, kind)

		kind, err = detectRecord("", codec.DeviceManagerSize)
		require.NoError(t, err)
		assert.Equal(t, kindManager, kind)
	})

	t.Run("by flag", func(t *testing.T) {
		// The flag wins even when the size is ambiguous.
		kind, err := detectRecord("manager", codec.DeviceManagerSize+512)
		require.NoError(t, err)
		assert.Equal(t, kindManager, kind)
	})

	t.Run("ambiguous size", func(t *testing.T) {
		_, err := detectRecord("", 100)
		assert.Error(t, err)
	})

	t.Run("unknown flag", func(t *testing.T) {
		_, err := detectRecord("partition", codec.FileHeaderSize)
		assert.Error(t, err)
	})
}

func TestStampAndVerifyCommands(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "brokkr_cmd_test")
	require.NoError(t, err)
	defer os.RemoveAll(tmpDir)

	path := filepath.Join(tmpDir, "header.bin")

	// An unstamped header image fails verification.
	img := make([]byte, codec.FileHeaderSize)
	codec.WriteU32(img, 0, codec.HeaderMagic)
	img[4] = 1
	img[135] = 0xFF
	require.NoError(t, os.WriteFile(path, img, 0644))

	rootCmd.SetArgs([]string{"verify", path})
	assert.Error(t, rootCmd.Execute())

	// Stamping in place makes it pass.
	rootCmd.SetArgs([]string{"stamp", path})
	require.NoError(t, rootCmd.Execute())

	rootCmd.SetArgs([]string{"verify", path})
	assert.NoError(t, rootCmd.Execute())

	stamped, err := os.ReadFile(path)
	require.NoError(t, err)
	ok, err := codec.VerifyHeader(stamped)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestInspectCommand(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "brokkr_cmd_test")
	require.NoError(t, err)
	defer os.RemoveAll(tmpDir)

	h := &codec.FileHeader{Magic: codec.HeaderMagic, Version: codec.Version{Major: 1, Minor: 0}}
	img, err := codec.NewRecordCodec().EncodeHeader(h)
	require.NoError(t, err)

	path := filepath.Join(tmpDir, "header.bin")
	require.NoError(t, os.WriteFile(path, img, 0644))

	rootCmd.SetArgs([]string{"inspect", path})
	assert.NoError(t, rootCmd.Execute())
}

func TestLayoutCommand(t *testing.T) {
	rootCmd.SetArgs([]string{"layout", "FileHeader"})
	assert.NoError(t, rootCmd.Execute())

	rootCmd.SetArgs([]string{"layout", "NoSuchRecord"})
	assert.Error(t, rootCmd.Execute())
}
