package link_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/arthur-debert/envup/pkg/link"
	"github.com/arthur-debert/envup/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var stamp = time.Date(2024, 3, 9, 14, 5, 6, 0, time.UTC)

func TestLinkCreatesSymlink(t *testing.T) {
	env := testutil.NewEnv(t)
	source := env.WriteRepoFile("vim/vimrc", "set number\n")
	dest := env.HomePath(".vimrc")

	mgr := link.NewManager(stamp)
	res, err := mgr.Link(source, dest)

	require.NoError(t, err)
	assert.Equal(t, link.StatusLinked, res.Status)

	target, err := os.Readlink(dest)
	require.NoError(t, err)
	assert.Equal(t, source, target)
}

func TestLinkIsIdempotent(t *testing.T) {
	env := testutil.NewEnv(t)
	source := env.WriteRepoFile("vim/vimrc", "set number\n")
	dest := env.HomePath(".vimrc")

	mgr := link.NewManager(stamp)
	_, err := mgr.Link(source, dest)
	require.NoError(t, err)

	res, err := mgr.Link(source, dest)
	require.NoError(t, err)
	assert.Equal(t, link.StatusAlreadyLinked, res.Status)
	assert.Empty(t, res.Backup)

	// No backups accumulate on re-run.
	entries, err := os.ReadDir(env.Home)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestLinkBacksUpExistingFile(t *testing.T) {
	env := testutil.NewEnv(t)
	source := env.WriteRepoFile("vim/vimrc", "set number\n")
	dest := env.WriteHomeFile(".vimrc", "X")

	mgr := link.NewManager(stamp)
	res, err := mgr.Link(source, dest)

	require.NoError(t, err)
	assert.Equal(t, link.StatusReplaced, res.Status)
	assert.Equal(t, dest+".bak.20240309-140506", res.Backup)

	// Original content survives in the backup.
	content, err := os.ReadFile(res.Backup)
	require.NoError(t, err)
	assert.Equal(t, "X", string(content))

	target, err := os.Readlink(dest)
	require.NoError(t, err)
	assert.Equal(t, source, target)
}

func TestLinkBacksUpForeignSymlink(t *testing.T) {
	env := testutil.NewEnv(t)
	source := env.WriteRepoFile("vim/vimrc", "set number\n")
	other := env.WriteRepoFile("vim/other", "other\n")
	dest := env.HomePath(".vimrc")
	require.NoError(t, os.Symlink(other, dest))

	mgr := link.NewManager(stamp)
	res, err := mgr.Link(source, dest)

	require.NoError(t, err)
	assert.Equal(t, link.StatusReplaced, res.Status)

	// The backup is still a symlink to the old target.
	backupTarget, err := os.Readlink(res.Backup)
	require.NoError(t, err)
	assert.Equal(t, other, backupTarget)

	target, err := os.Readlink(dest)
	require.NoError(t, err)
	assert.Equal(t, source, target)
}

func TestLinkSkipsMissingSource(t *testing.T) {
	env := testutil.NewEnv(t)
	dest := env.WriteHomeFile(".vimrc", "untouched")

	mgr := link.NewManager(stamp)
	res, err := mgr.Link(filepath.Join(env.Root, "vim/vimrc"), dest)

	require.NoError(t, err)
	assert.Equal(t, link.StatusSkipped, res.Status)

	content, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, "untouched", string(content))
}

func TestLinkCreatesParentDirs(t *testing.T) {
	env := testutil.NewEnv(t)
	source := env.WriteRepoFile("nvim/init.lua", "-- init\n")
	dest := env.HomePath(".config/nvim/init.lua")

	mgr := link.NewManager(stamp)
	res, err := mgr.Link(source, dest)

	require.NoError(t, err)
	assert.Equal(t, link.StatusLinked, res.Status)
	assert.FileExists(t, dest)
}

func TestCheckPredictsWithoutMutating(t *testing.T) {
	env := testutil.NewEnv(t)
	source := env.WriteRepoFile("vim/vimrc", "set number\n")
	dest := env.WriteHomeFile(".vimrc", "X")

	mgr := link.NewManager(stamp)
	status, err := mgr.Check(source, dest)

	require.NoError(t, err)
	assert.Equal(t, link.StatusReplaced, status)

	// Dest is still the original regular file.
	info, err := os.Lstat(dest)
	require.NoError(t, err)
	assert.True(t, info.Mode().IsRegular())

	missing, err := mgr.Check(filepath.Join(env.Root, "nope"), dest)
	require.NoError(t, err)
	assert.Equal(t, link.StatusSkipped, missing)
}
