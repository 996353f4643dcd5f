package main

import (
	"HyperAdmin/config"
	"HyperAdmin/pkg/apiclient"
	"HyperAdmin/pkg/client"
	"HyperAdmin/pkg/confirm"
	"HyperAdmin/pkg/log"
	"HyperAdmin/pkg/notify"
	"HyperAdmin/pkg/session"
	"HyperAdmin/service"
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

// adminCLI 各子命令共享的依赖，在 Before 中初始化
type adminCLI struct {
	in  *bufio.Reader
	out io.Writer
	yes bool

	sessions  session.Provider
	migrator  *session.Migrator
	resources service.IResourceService
	points    service.IPointService
	reviews   service.IReviewService
}

func main() {
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "dev"
	}

	a := &adminCLI{in: bufio.NewReader(os.Stdin), out: os.Stdout}
	cliApp := &cli.App{
		Name:  "admin-cli",
		Usage: "HyperAdmin 运营命令行",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Value: fmt.Sprintf("configs/config.%s.yaml", env), Usage: "配置文件路径"},
			&cli.BoolFlag{Name: "yes", Aliases: []string{"y"}, Usage: "跳过二次确认"},
			&cli.BoolFlag{Name: "debug", Usage: "输出 debug 日志"},
		},
		Before: a.setup,
		Commands: []*cli.Command{
			a.sessionCommand(),
			a.pointsCommand(),
			a.reviewsCommand(),
			a.browseCommand(),
		},
	}
	if err := cliApp.Run(os.Args); err != nil {
		color.New(color.FgRed).Fprintln(os.Stderr, service.UserMessage(err))
		os.Exit(1)
	}
}

func (a *adminCLI) setup(c *cli.Context) error {
	cfg := config.New(c.String("config"))
	if c.Bool("debug") || cfg.Debug() {
		log.SetDebug(true)
	} else {
		log.L = log.New(zap.WarnLevel)
	}
	a.yes = c.Bool("yes")

	store := client.NewSessionStore(client.NewRedisClient(cfg))
	keys := client.NewSessionKeys(cfg)
	a.migrator = client.NewSessionMigrator(store, keys)
	if _, err := a.migrator.Run(c.Context); err != nil {
		return fmt.Errorf("session migration: %w", err)
	}

	sessions := client.NewSessionManager(store, keys)
	sessions.Subscribe(func(ev session.Event) {
		if ev.Kind == session.EventCleared {
			color.New(color.FgYellow).Fprintln(a.out, "会话已清除")
		}
	})
	a.sessions = sessions

	api := apiclient.New(cfg.Backend, sessions)
	sink := &consoleSink{out: a.out}
	resources := &service.ResourceService{Client: api, Notifier: sink}
	reviews := &service.ReviewService{Config: cfg, Client: api, Notifier: sink}
	a.resources = resources
	a.reviews = reviews
	a.points = &service.PointService{Client: api, Notifier: sink}
	return nil
}

func (a *adminCLI) prompter() confirm.Prompter {
	if a.yes {
		return confirm.Static(true)
	}
	return &confirm.Terminal{In: a.in, Out: a.out}
}

// operatorCtx 带上当前登录管理员，未登录时直接报错
func (a *adminCLI) operatorCtx(ctx context.Context) (context.Context, error) {
	profile, err := a.sessions.Profile(ctx)
	if err != nil {
		return nil, err
	}
	return service.WithOperator(ctx, service.Operator{ID: profile.AdminID, Name: profile.Name}), nil
}

// consoleSink 终端通知
type consoleSink struct {
	out io.Writer
}

func (s *consoleSink) Notify(_ context.Context, kind notify.Kind, msg string) {
	attr := color.FgCyan
	switch kind {
	case notify.Success:
		attr = color.FgGreen
	case notify.Error:
		attr = color.FgRed
	}
	color.New(attr).Fprintln(s.out, msg)
}
