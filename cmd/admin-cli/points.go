package main

import (
	"HyperAdmin/pkg/listctl"
	"HyperAdmin/pkg/points"
	"fmt"
	"strconv"

	"github.com/gosuri/uitable"
	"github.com/shopspring/decimal"
	"github.com/urfave/cli/v2"
)

var adjustFlags = []cli.Flag{
	&cli.StringFlag{Name: "direction", Value: string(points.Add), Usage: "add | subtract"},
	&cli.StringFlag{Name: "amount", Required: true, Usage: "调整数量"},
	&cli.StringFlag{Name: "reason", Required: true, Usage: "原因码: signin_bonus, order_refund, compensation, manual_correction, fraud_reversal, custom"},
	&cli.StringFlag{Name: "reason-text", Usage: "reason=custom 时的原因说明"},
	&cli.StringFlag{Name: "notes", Usage: "备注"},
}

func userIDArg(c *cli.Context) (uint64, error) {
	id, err := strconv.ParseUint(c.Args().First(), 10, 64)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid user id %q", c.Args().First())
	}
	return id, nil
}

func adjustmentFromFlags(c *cli.Context) (points.AdjustmentRequest, error) {
	amount, err := decimal.NewFromString(c.String("amount"))
	if err != nil {
		return points.AdjustmentRequest{}, &points.ValidationError{Field: "amount", Msg: err.Error()}
	}
	return points.AdjustmentRequest{
		Direction:      points.Direction(c.String("direction")),
		Amount:         amount,
		ReasonCode:     c.String("reason"),
		FreeformReason: c.String("reason-text"),
		Notes:          c.String("notes"),
	}, nil
}

func (a *adminCLI) pointsCommand() *cli.Command {
	return &cli.Command{
		Name:  "points",
		Usage: "积分账户",
		Subcommands: []*cli.Command{
			{
				Name:      "show",
				Usage:     "查看积分账户",
				ArgsUsage: "<user_id>",
				Action: func(c *cli.Context) error {
					userID, err := userIDArg(c)
					if err != nil {
						return err
					}
					ctx, err := a.operatorCtx(c.Context)
					if err != nil {
						return err
					}
					acc, err := a.points.Account(ctx, userID)
					if err != nil {
						return err
					}
					table := uitable.New()
					table.AddRow("user_id", acc.UserID)
					table.AddRow("nickname", acc.Nickname)
					table.AddRow("balance", acc.Balance)
					table.AddRow("total_earned", acc.TotalEarned)
					table.AddRow("total_used", acc.TotalUsed)
					fmt.Fprintln(a.out, table)
					return nil
				},
			},
			{
				Name:      "history",
				Usage:     "积分流水",
				ArgsUsage: "<user_id>",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "page", Value: 1},
					&cli.IntFlag{Name: "limit", Value: 20},
				},
				Action: func(c *cli.Context) error {
					userID, err := userIDArg(c)
					if err != nil {
						return err
					}
					ctx, err := a.operatorCtx(c.Context)
					if err != nil {
						return err
					}
					st, err := a.points.History(ctx, userID, listctl.PageRequest{Page: c.Int("page"), PageSize: c.Int("limit")})
					if err != nil {
						return err
					}
					table := uitable.New()
					table.AddRow("ID", "AMOUNT", "BALANCE", "REASON", "OPERATOR", "TIME")
					for _, e := range st.Items {
						table.AddRow(e.ID, e.Amount, e.Balance, e.Reason, e.Operator, e.CreatedAt)
					}
					fmt.Fprintln(a.out, table)
					fmt.Fprintln(a.out, pageFooter(st.CurrentPage, st.TotalPages, st.TotalItems))
					return nil
				},
			},
			{
				Name:      "preview",
				Usage:     "计算调整后的余额，不提交",
				ArgsUsage: "<user_id>",
				Flags:     adjustFlags,
				Action: func(c *cli.Context) error {
					userID, err := userIDArg(c)
					if err != nil {
						return err
					}
					req, err := adjustmentFromFlags(c)
					if err != nil {
						return err
					}
					ctx, err := a.operatorCtx(c.Context)
					if err != nil {
						return err
					}
					adj, err := a.points.Preview(ctx, userID, req)
					if err != nil {
						return err
					}
					fmt.Fprintln(a.out, adj.Summary())
					return nil
				},
			},
			{
				Name:      "adjust",
				Usage:     "调整积分（需确认）",
				ArgsUsage: "<user_id>",
				Flags:     adjustFlags,
				Action: func(c *cli.Context) error {
					userID, err := userIDArg(c)
					if err != nil {
						return err
					}
					req, err := adjustmentFromFlags(c)
					if err != nil {
						return err
					}
					ctx, err := a.operatorCtx(c.Context)
					if err != nil {
						return err
					}
					_, err = a.points.Adjust(ctx, userID, req, a.prompter())
					return err
				},
			},
		},
	}
}
