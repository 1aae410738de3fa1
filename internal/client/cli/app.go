package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/rememberme/internal/client/client"
	"github.com/dmitrijs2005/rememberme/internal/client/config"
	"github.com/dmitrijs2005/rememberme/internal/filex"
)

const secretFileName = "secret"

// ErrUsage reports a malformed command line.
var ErrUsage = errors.New("usage: client [flags] issue <user-id> | verify | revoke")

// RememberMeClient is the part of client.GRPCClient the CLI uses.
type RememberMeClient interface {
	Issue(ctx context.Context, userID string) (string, error)
	Verify(ctx context.Context) (string, error)
	Revoke(ctx context.Context) error
	Secret() string
	SetSecret(string)
	Close() error
}

type App struct {
	config *config.Config
	client RememberMeClient
	out    io.Writer
}

func NewApp(cfg *config.Config, out io.Writer) (*App, error) {
	c, err := client.NewGRPCClient(cfg.ServerEndpointAddr, cfg.CookieName)
	if err != nil {
		return nil, err
	}
	c.SetIssuerKey(cfg.IssuerKey)
	return newApp(cfg, c, out), nil
}

func newApp(cfg *config.Config, c RememberMeClient, out io.Writer) *App {
	return &App{config: cfg, client: c, out: out}
}

func (a *App) Close() error {
	return a.client.Close()
}

// Run executes one command. args are the positional arguments.
func (a *App) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return ErrUsage
	}

	ctx, cancel := context.WithTimeout(ctx, a.config.RequestTimeout)
	defer cancel()

	path, err := a.secretPath()
	if err != nil {
		return err
	}
	if err := a.loadSecret(path); err != nil {
		return err
	}

	switch strings.ToLower(args[0]) {
	case "issue":
		if len(args) != 2 {
			return ErrUsage
		}
		return a.issue(ctx, path, args[1])
	case "verify":
		return a.verify(ctx)
	case "revoke", "logout":
		return a.revoke(ctx, path)
	case "help":
		fmt.Fprintln(a.out, ErrUsage.Error())
		return nil
	default:
		return ErrUsage
	}
}

func (a *App) issue(ctx context.Context, path, userID string) error {
	digest, err := a.client.Issue(ctx, userID)
	if err != nil {
		return err
	}
	if err := filex.WritePrivateFile(path, []byte(a.client.Secret())); err != nil {
		return fmt.Errorf("save secret: %w", err)
	}
	fmt.Fprintf(a.out, "issued credential %s for %s\n", digest, userID)
	return nil
}

func (a *App) verify(ctx context.Context) error {
	if a.client.Secret() == "" {
		return client.ErrUnauthorized
	}
	userID, err := a.client.Verify(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "remembered as %s\n", userID)
	return nil
}

// revoke forgets the local secret even when the server call fails.
func (a *App) revoke(ctx context.Context, path string) error {
	err := a.client.Revoke(ctx)
	if rmErr := filex.RemoveIfExists(path); rmErr != nil && err == nil {
		err = fmt.Errorf("remove secret: %w", rmErr)
	}
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, "credential revoked")
	return nil
}

func (a *App) secretPath() (string, error) {
	dir, err := filex.EnsureSubdDir(a.config.StateDir)
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, secretFileName), nil
}

func (a *App) loadSecret(path string) error {
	data, ok, err := filex.ReadFileIfExists(path)
	if err != nil {
		return fmt.Errorf("load secret: %w", err)
	}
	if ok {
		a.client.SetSecret(strings.TrimSpace(string(data)))
	}
	return nil
}
