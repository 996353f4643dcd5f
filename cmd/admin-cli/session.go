package main

import (
	"HyperAdmin/pkg/session"
	"errors"
	"fmt"
	"strings"

	"github.com/gosuri/uitable"
	"github.com/urfave/cli/v2"
)

func (a *adminCLI) sessionCommand() *cli.Command {
	return &cli.Command{
		Name:  "session",
		Usage: "管理登录会话",
		Subcommands: []*cli.Command{
			{
				Name:  "login",
				Usage: "保存 OTP 登录后获得的 access token",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "token", Required: true, Usage: "access token"},
				},
				Action: func(c *cli.Context) error {
					token := strings.TrimSpace(strings.TrimPrefix(c.String("token"), "Bearer "))
					if err := a.sessions.SetSession(c.Context, token, nil); err != nil {
						return err
					}
					profile, err := a.sessions.Profile(c.Context)
					if err != nil {
						return err
					}
					fmt.Fprintf(a.out, "已登录：%s <%s>\n", profile.Name, profile.Email)
					return nil
				},
			},
			{
				Name:  "logout",
				Usage: "清除本地会话",
				Action: func(c *cli.Context) error {
					return a.sessions.ClearSession(c.Context)
				},
			},
			{
				Name:  "whoami",
				Usage: "显示当前登录管理员",
				Action: func(c *cli.Context) error {
					profile, err := a.sessions.Profile(c.Context)
					if errors.Is(err, session.ErrNoSession) {
						fmt.Fprintln(a.out, "未登录")
						return nil
					}
					if err != nil {
						return err
					}
					table := uitable.New()
					table.AddRow("admin_id", profile.AdminID)
					table.AddRow("name", profile.Name)
					table.AddRow("email", profile.Email)
					table.AddRow("role", profile.Role)
					fmt.Fprintln(a.out, table)
					return nil
				},
			},
			{
				Name:  "migrate",
				Usage: "显示会话存储版本（迁移在每次启动时自动执行）",
				Action: func(c *cli.Context) error {
					v, err := a.migrator.Version(c.Context)
					if err != nil {
						return err
					}
					fmt.Fprintf(a.out, "session schema version: %d/%d\n", v, len(session.Migrations))
					return nil
				},
			},
		},
	}
}
