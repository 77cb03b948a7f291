package command

import (
	"bufio"
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"runtime/debug"
	"strings"

	"golang.org/x/term"

	"businessCard/internal/auth"
	"businessCard/internal/config"
	"businessCard/internal/db"
)

type configKey struct{}

// env is what every command needs once configuration is resolved.
type env struct {
	cfg    *config.Config
	logger *slog.Logger
	db     *db.DB
	hasher auth.Hasher
}

// loadEnv resolves configuration and opens the database, applying pending
// migrations unless migrate is false.
func loadEnv(ctx context.Context, migrate bool) (*env, error) {
	cfg, ok := ctx.Value(configKey{}).(*config.Config)
	if !ok {
		return nil, errors.New("config resolution failed")
	}
	hasher, err := auth.NewHasher(cfg.Auth.PasswordScheme)
	if err != nil {
		return nil, err
	}
	logger := slog.Default()
	open := db.Connect
	if migrate {
		open = func(ctx context.Context, driver, dsn string) (*db.DB, error) {
			return db.Open(ctx, logger, driver, dsn)
		}
	}
	d, err := open(ctx, cfg.Database.Driver, cfg.Database.DSN)
	if err != nil {
		return nil, err
	}
	return &env{cfg: cfg, logger: logger, db: d, hasher: hasher}, nil
}

// prompt writes msg to stderr when stdin is a terminal and reads one line.
// With mask set, terminal echo is disabled.
func prompt(msg string, mask bool) (string, error) {
	fd := int(os.Stdin.Fd())
	tty := term.IsTerminal(fd)
	if tty {
		if _, err := os.Stderr.WriteString(msg); err != nil {
			return "", err
		}
	}
	if mask && tty {
		b, err := term.ReadPassword(fd)
		_, _ = os.Stderr.WriteString("\n")
		return string(b), err
	}
	return readLine(os.Stdin)
}

func readLine(r io.Reader) (string, error) {
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func version() string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return "unknown-dev"
	}
	ver := "unknown"
	dirty := false
	for _, setting := range info.Settings {
		switch setting.Key {
		case "vcs.revision":
			ver = setting.Value
		case "vcs.modified":
			dirty = setting.Value == "true"
		}
	}
	if dirty {
		ver += "-dev"
	}
	return ver
}
