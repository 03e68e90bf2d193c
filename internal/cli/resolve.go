package cli

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/spf13/cobra"

	"github.com/dmitrymomot/authclient/pkg/authsession"
	"github.com/dmitrymomot/authclient/pkg/cache"
	"github.com/dmitrymomot/authclient/pkg/config"
	"github.com/dmitrymomot/authclient/pkg/logger"
	"github.com/dmitrymomot/authclient/pkg/redis"
	"github.com/dmitrymomot/authclient/pkg/requestid"
	"github.com/dmitrymomot/authclient/pkg/resolver"
)

// passwordEnv is read when --password-stdin is not given.
const passwordEnv = "AUTH_PASSWORD"

var (
	errNoUser         = errors.New("--user is required")
	errNoPassword     = errors.New("no password: set " + passwordEnv + " or use --password-stdin")
	errUnknownBackend = errors.New("unknown cache backend")
)

type resolveOptions struct {
	users         []string
	passwordStdin bool
	requestID     string
	metrics       bool
}

func newResolveCommand(a *app) *cobra.Command {
	o := &resolveOptions{}

	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "Print the user information record for one or more users",
		Long: `Log in as each user, fetch the user information record, log out and
print the record as JSON, one object per line.

All users share the same password. Repeating a user returns the cached record
without contacting the service again.

Examples:
  authclient resolve --user alice
  authclient resolve --user alice --user bob --metrics`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runResolve(cmd, o)
		},
	}

	cmd.Flags().StringArrayVarP(&o.users, "user", "u", nil, "user to resolve (repeatable)")
	cmd.Flags().BoolVar(&o.passwordStdin, "password-stdin", false, "read the password from stdin")
	cmd.Flags().StringVar(&o.requestID, "request-id", "", "request id sent with every request (default: generated)")
	cmd.Flags().BoolVar(&o.metrics, "metrics", false, "print resolver metrics to stderr when done")

	return cmd
}

func (a *app) runResolve(cmd *cobra.Command, o *resolveOptions) error {
	if len(o.users) == 0 {
		return errNoUser
	}
	password, err := readPassword(cmd.InOrStdin(), o.passwordStdin)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if o.requestID != "" {
		ctx = requestid.WithContext(ctx, o.requestID)
	}
	ctx, _ = requestid.Ensure(ctx)

	var sessionCfg authsession.Config
	if err := config.Load(&sessionCfg); err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	session, err := authsession.New(sessionCfg, authsession.WithLogger(a.log))
	if err != nil {
		return err
	}

	store, closeStore, err := a.openCache(ctx)
	if err != nil {
		return err
	}
	defer closeStore()

	reg := prometheus.NewRegistry()
	r := resolver.New(session,
		resolver.WithCache(store),
		resolver.WithLogger(a.log),
		resolver.WithMetrics(resolver.NewMetrics(reg)),
	)

	enc := json.NewEncoder(cmd.OutOrStdout())
	var failed []string
	for _, user := range o.users {
		info, err := r.ResolveUser(ctx, user, password).Await()
		if info == nil {
			a.log.ErrorContext(ctx, "user not resolved", logger.Identity(user), logger.Error(err))
			failed = append(failed, user)
			continue
		}
		if err := enc.Encode(info); err != nil {
			return err
		}
	}
	r.Wait()

	if o.metrics {
		if err := writeMetrics(cmd.ErrOrStderr(), reg); err != nil {
			return err
		}
	}

	if len(failed) > 0 {
		return fmt.Errorf("%w: %s", resolver.ErrNotResolved, strings.Join(failed, ", "))
	}
	return nil
}

func (a *app) openCache(ctx context.Context) (resolver.Cache, func(), error) {
	switch a.cfg.CacheBackend {
	case "", CacheMemory:
		return cache.NewMemory[authsession.UserInfo](), func() {}, nil
	case CacheRedis:
		var redisCfg redis.Config
		if err := config.Load(&redisCfg); err != nil {
			return nil, nil, fmt.Errorf("loading config: %w", err)
		}
		client, err := redis.Connect(ctx, redisCfg)
		if err != nil {
			return nil, nil, err
		}
		store := cache.NewRedis[authsession.UserInfo](client, cache.WithPrefix(redisCfg.KeyPrefix))
		return store, func() { _ = client.Close() }, nil
	default:
		return nil, nil, fmt.Errorf("%w: %q", errUnknownBackend, a.cfg.CacheBackend)
	}
}

func readPassword(stdin io.Reader, fromStdin bool) (string, error) {
	if !fromStdin {
		if p, ok := os.LookupEnv(passwordEnv); ok {
			return p, nil
		}
		return "", errNoPassword
	}

	line, err := bufio.NewReader(stdin).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("reading password: %w", err)
	}
	line = strings.TrimRight(line, "\r\n")
	if line == "" {
		return "", errNoPassword
	}
	return line, nil
}

func writeMetrics(w io.Writer, g prometheus.Gatherer) error {
	families, err := g.Gather()
	if err != nil {
		return err
	}
	enc := expfmt.NewEncoder(w, expfmt.NewFormat(expfmt.TypeTextPlain))
	for _, mf := range families {
		if err := enc.Encode(mf); err != nil {
			return err
		}
	}
	return nil
}
