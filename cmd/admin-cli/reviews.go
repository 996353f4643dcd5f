package main

import (
	"HyperAdmin/pkg/changediff"
	"HyperAdmin/pkg/listctl"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/urfave/cli/v2"
)

func (a *adminCLI) reviewsCommand() *cli.Command {
	return &cli.Command{
		Name:  "reviews",
		Usage: "资料变更审核",
		Subcommands: []*cli.Command{
			{
				Name:  "list",
				Usage: "变更申请列表，默认只列待审核",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "status", Usage: "pending | approved | rejected"},
					&cli.IntFlag{Name: "page", Value: 1},
					&cli.IntFlag{Name: "limit", Value: 20},
				},
				Action: func(c *cli.Context) error {
					ctx, err := a.operatorCtx(c.Context)
					if err != nil {
						return err
					}
					req := listctl.PageRequest{Page: c.Int("page"), PageSize: c.Int("limit")}
					if s := c.String("status"); s != "" {
						if _, err := changediff.ParseStatus(s); err != nil {
							return err
						}
						req.Filters = map[string]string{"status": s}
					}
					st, err := a.reviews.List(ctx, req)
					if err != nil {
						return err
					}
					table := uitable.New()
					table.AddRow("ID", "USER", "TYPE", "STATUS", "CREATED")
					for _, cr := range st.Items {
						table.AddRow(cr.ID, cr.UserID, cr.Type, cr.Status, cr.CreatedAt)
					}
					fmt.Fprintln(a.out, table)
					fmt.Fprintln(a.out, pageFooter(st.CurrentPage, st.TotalPages, st.TotalItems))
					return nil
				},
			},
			{
				Name:      "show",
				Usage:     "查看变更字段",
				ArgsUsage: "<id>",
				Action: func(c *cli.Context) error {
					id, err := strconv.ParseUint(c.Args().First(), 10, 64)
					if err != nil {
						return fmt.Errorf("invalid change request id %q", c.Args().First())
					}
					ctx, err := a.operatorCtx(c.Context)
					if err != nil {
						return err
					}
					d, err := a.reviews.Diff(ctx, id)
					if err != nil {
						return err
					}
					fmt.Fprintf(a.out, "#%d 用户 %d %s [%s]\n", d.ID, d.UserID, d.Type, d.Status)
					if len(d.Entries) == 0 {
						fmt.Fprintln(a.out, "无字段变化")
						return nil
					}
					table := uitable.New()
					table.MaxColWidth = 60
					table.Wrap = true
					table.AddRow("FIELD", "KIND", "CURRENT", "REQUESTED")
					for _, e := range d.Entries {
						table.AddRow(e.Field, e.Kind, formatValue(e.OldValue), color.GreenString(formatValue(e.NewValue)))
					}
					fmt.Fprintln(a.out, table)
					return nil
				},
			},
			{
				Name:      "decide",
				Usage:     "通过或驳回（需确认）",
				ArgsUsage: "<id>",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "approve"},
					&cli.BoolFlag{Name: "reject"},
					&cli.StringFlag{Name: "notes", Usage: "审核备注"},
				},
				Action: func(c *cli.Context) error {
					id, err := strconv.ParseUint(c.Args().First(), 10, 64)
					if err != nil {
						return fmt.Errorf("invalid change request id %q", c.Args().First())
					}
					if c.Bool("approve") == c.Bool("reject") {
						return errors.New("exactly one of --approve or --reject is required")
					}
					review := changediff.Review{Status: changediff.Approved, Notes: c.String("notes")}
					if c.Bool("reject") {
						review.Status = changediff.Rejected
					}
					ctx, err := a.operatorCtx(c.Context)
					if err != nil {
						return err
					}
					return a.reviews.Review(ctx, id, review, a.prompter())
				},
			},
		},
	}
}

// formatValue 缺失字段显示为 -，结构化字段显示为 JSON
func formatValue(v any) string {
	switch x := v.(type) {
	case nil:
		return "-"
	case string:
		return x
	case map[string]any, []any:
		raw, err := json.Marshal(x)
		if err != nil {
			return fmt.Sprint(x)
		}
		return string(raw)
	default:
		return fmt.Sprint(x)
	}
}
