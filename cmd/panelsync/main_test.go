package main

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Flag variables are file-scoped package state; reset them around each test
// so cases don't leak into each other.
func resetDiaryFlags() {
	diaryTitle = ""
	diaryBody = ""
	diaryBodyFile = ""
	diaryImages = nil
	diaryPublishAt = ""
}

func TestRunDiary_BodyFlagsMutuallyExclusive(t *testing.T) {
	resetDiaryFlags()
	diaryTitle = "本日の出勤"
	diaryBody = "text"
	diaryBodyFile = "body.txt"

	err := runDiary(diaryCmd, nil)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "mutually exclusive")
}

func TestRunDiary_BodyRequired(t *testing.T) {
	resetDiaryFlags()
	diaryTitle = "本日の出勤"

	err := runDiary(diaryCmd, nil)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "either --body or --body-file")
}

func TestRunDiary_InvalidPublishAt(t *testing.T) {
	resetDiaryFlags()
	diaryTitle = "本日の出勤"
	diaryBody = "text"
	diaryPublishAt = "tomorrow"

	err := runDiary(diaryCmd, nil)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "publish-at")
}

func TestRunDiary_MissingImage(t *testing.T) {
	resetDiaryFlags()
	diaryTitle = "本日の出勤"
	diaryBody = "text"
	diaryImages = []string{"/nonexistent/photo.jpg"}

	err := runDiary(diaryCmd, nil)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "image not found")
}

func TestRunCast_FileNotFound(t *testing.T) {
	castFile = "/nonexistent/cast.json"

	err := runCast(castCmd, nil)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read cast profile")
}

func TestRunCast_InvalidJSON(t *testing.T) {
	tmpFile := filepath.Join(t.TempDir(), "cast.json")
	require.NoError(t, os.WriteFile(tmpFile, []byte("{ not json"), 0644))
	castFile = tmpFile

	err := runCast(castCmd, nil)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse cast profile JSON")
}

func TestRunSchedule_FileNotFound(t *testing.T) {
	scheduleFile = "/nonexistent/schedule.json"

	err := runSchedule(scheduleCmd, nil)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read schedule")
}

func TestResolveTargets_ParsesUUIDs(t *testing.T) {
	a := &app{}

	ids, err := a.resolveTargets(context.Background(),
		[]string{"550e8400-e29b-41d4-a716-446655440000", " 6ba7b810-9dad-11d1-80b4-00c04fd430c8 "})
	require.NoError(t, err)
	require.Len(t, ids, 2)
	assert.Equal(t, "550e8400-e29b-41d4-a716-446655440000", ids[0].String())
}

func TestResolveTargets_InvalidUUID(t *testing.T) {
	a := &app{}

	_, err := a.resolveTargets(context.Background(), []string{"heaven-net"})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid target id")
}

func TestRunVaultKeygen(t *testing.T) {
	err := runVaultKeygen(vaultKeygenCmd, nil)
	assert.NoError(t, err)
}

func TestRunVaultEncrypt_MissingKey(t *testing.T) {
	t.Setenv("VAULT_KEY", "")
	vaultIdentifier = "shopadmin"
	vaultSecret = "hunter2"

	err := runVaultEncrypt(vaultEncryptCmd, nil)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "VAULT_KEY")
}

func TestRunVaultEncrypt_Succeeds(t *testing.T) {
	t.Setenv("VAULT_KEY", strings.Repeat("ab", 32))
	vaultIdentifier = "shopadmin"
	vaultSecret = "hunter2"

	err := runVaultEncrypt(vaultEncryptCmd, nil)
	assert.NoError(t, err)
}
