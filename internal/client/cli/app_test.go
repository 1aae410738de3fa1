package cli

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/dmitrijs2005/rememberme/internal/client/client"
	"github.com/dmitrijs2005/rememberme/internal/client/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClient mimics the server: one user per secret.
type fakeClient struct {
	secret    string
	valid     map[string]string
	revokeErr error
	closed    bool
}

func newFakeClient() *fakeClient {
	return &fakeClient{valid: map[string]string{}}
}

func (f *fakeClient) Issue(_ context.Context, userID string) (string, error) {
	f.secret = "secret-for-" + userID
	f.valid[f.secret] = userID
	return "digest-" + userID, nil
}

func (f *fakeClient) Verify(context.Context) (string, error) {
	u, ok := f.valid[f.secret]
	if !ok {
		return "", client.ErrUnauthorized
	}
	return u, nil
}

func (f *fakeClient) Revoke(context.Context) error {
	delete(f.valid, f.secret)
	f.secret = ""
	return f.revokeErr
}

func (f *fakeClient) Secret() string     { return f.secret }
func (f *fakeClient) SetSecret(s string) { f.secret = s }
func (f *fakeClient) Close() error       { f.closed = true; return nil }

func newTestApp(t *testing.T, fc *fakeClient) (*App, *bytes.Buffer, string) {
	t.Helper()
	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.StateDir = filepath.Join(t.TempDir(), "state")
	cfg.RequestTimeout = time.Second

	var out bytes.Buffer
	return newApp(cfg, fc, &out), &out, filepath.Join(cfg.StateDir, secretFileName)
}

func TestRun_IssuePersistsSecret(t *testing.T) {
	fc := newFakeClient()
	app, out, path := newTestApp(t, fc)

	require.NoError(t, app.Run(context.Background(), []string{"issue", "u1"}))
	assert.Contains(t, out.String(), "digest-u1")
	assert.NotContains(t, out.String(), "secret-for-u1")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "secret-for-u1", string(data))
}

func TestRun_VerifyUsesStoredSecret(t *testing.T) {
	fc := newFakeClient()
	app, out, _ := newTestApp(t, fc)
	require.NoError(t, app.Run(context.Background(), []string{"issue", "u1"}))

	fc.secret = "" // new process: only the file remembers
	require.NoError(t, app.Run(context.Background(), []string{"verify"}))
	assert.Contains(t, out.String(), "remembered as u1")
}

func TestRun_VerifyWithoutSecret(t *testing.T) {
	app, _, _ := newTestApp(t, newFakeClient())
	assert.ErrorIs(t, app.Run(context.Background(), []string{"verify"}), client.ErrUnauthorized)
}

func TestRun_RevokeRemovesSecretEvenOnError(t *testing.T) {
	fc := newFakeClient()
	app, _, path := newTestApp(t, fc)
	require.NoError(t, app.Run(context.Background(), []string{"issue", "u1"}))

	fc.revokeErr = errors.New("unavailable")
	assert.Error(t, app.Run(context.Background(), []string{"revoke"}))

	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestRun_Usage(t *testing.T) {
	app, out, _ := newTestApp(t, newFakeClient())

	assert.ErrorIs(t, app.Run(context.Background(), nil), ErrUsage)
	assert.ErrorIs(t, app.Run(context.Background(), []string{"issue"}), ErrUsage)
	assert.ErrorIs(t, app.Run(context.Background(), []string{"dance"}), ErrUsage)

	require.NoError(t, app.Run(context.Background(), []string{"help"}))
	assert.Contains(t, out.String(), "usage")
}

func TestClose(t *testing.T) {
	fc := newFakeClient()
	app, _, _ := newTestApp(t, fc)
	require.NoError(t, app.Close())
	assert.True(t, fc.closed)
}
