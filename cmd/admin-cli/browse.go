package main

import (
	"HyperAdmin/pkg/apiclient"
	"HyperAdmin/pkg/listctl"
	"HyperAdmin/service"
	"HyperAdmin/types"
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/urfave/cli/v2"
)

const browseHelp = "n 下一页  p 上一页  g N 跳页  s 关键词 搜索  f k=v 筛选  r 刷新  q 退出"

func (a *adminCLI) browseCommand() *cli.Command {
	names := make([]string, 0, len(types.Resources))
	for _, r := range types.Resources {
		names = append(names, r.Name)
	}
	return &cli.Command{
		Name:      "browse",
		Usage:     "交互式浏览资源列表",
		ArgsUsage: "<" + strings.Join(names, "|") + ">",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "limit", Value: 10},
			&cli.StringFlag{Name: "search"},
		},
		Action: func(c *cli.Context) error {
			res, ok := types.LookupResource(c.Args().First())
			if !ok {
				return fmt.Errorf("unknown resource %q, expected one of %s", c.Args().First(), strings.Join(names, ", "))
			}
			ctx, err := a.operatorCtx(c.Context)
			if err != nil {
				return err
			}
			ctrl := a.resources.Controller(res, listctl.PageRequest{Page: 1, PageSize: c.Int("limit"), Search: c.String("search")})
			return runBrowser(ctx, ctrl, res, a.in, a.out)
		},
	}
}

// runBrowser 读一行命令驱动一次控制器操作，然后重绘
func runBrowser(ctx context.Context, ctrl *listctl.Controller[types.Record], res types.Resource, in *bufio.Reader, out io.Writer) error {
	if err := ctrl.Load(ctx); err != nil && !browseRecoverable(err) {
		return err
	}
	for {
		renderPage(out, res, ctrl.State())
		fmt.Fprint(out, "> ")

		line, err := in.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return err
		}
		eof := errors.Is(err, io.EOF)
		line = strings.TrimSpace(line)
		if line == "" && eof {
			return nil
		}

		cmd, arg, _ := strings.Cut(line, " ")
		arg = strings.TrimSpace(arg)
		cur := ctrl.State().CurrentPage

		switch cmd {
		case "q":
			return nil
		case "n":
			err = ctrl.GoToPage(ctx, cur+1)
		case "p":
			err = ctrl.GoToPage(ctx, cur-1)
		case "g":
			n, convErr := strconv.Atoi(arg)
			if convErr != nil {
				fmt.Fprintln(out, "用法: g <页码>")
				continue
			}
			err = ctrl.GoToPage(ctx, n)
		case "s":
			err = ctrl.SetSearch(ctx, arg)
		case "f":
			k, v, ok := strings.Cut(arg, "=")
			if !ok || strings.TrimSpace(k) == "" {
				fmt.Fprintln(out, "用法: f key=value（value 为空时移除）")
				continue
			}
			err = ctrl.SetFilter(ctx, strings.TrimSpace(k), strings.TrimSpace(v))
		case "r":
			err = ctrl.Refresh(ctx)
		default:
			fmt.Fprintln(out, browseHelp)
			err = nil
		}
		if err != nil && !browseRecoverable(err) {
			return err
		}
		if eof {
			return nil
		}
	}
}

// browseRecoverable 出错后继续交互，登录失效时退出
func browseRecoverable(err error) bool {
	return !errors.Is(err, apiclient.ErrUnauthorized) && !errors.Is(err, context.Canceled)
}

func renderPage(out io.Writer, res types.Resource, st listctl.State[types.Record]) {
	fmt.Fprintf(out, "\n%s", res.Label)
	req := st.Request
	if req.HasSearch() {
		fmt.Fprintf(out, "  搜索: %q", req.Search)
	}
	for _, k := range slices.Sorted(maps.Keys(req.Filters)) {
		fmt.Fprintf(out, "  %s=%s", k, req.Filters[k])
	}
	fmt.Fprintln(out)

	if st.Err != nil {
		color.New(color.FgRed).Fprintln(out, service.UserMessage(st.Err))
	}
	if st.Empty() {
		fmt.Fprintln(out, "暂无数据")
	} else {
		table := uitable.New()
		table.MaxColWidth = 40
		header := make([]any, 0, len(res.Columns))
		for _, col := range res.Columns {
			header = append(header, strings.ToUpper(col))
		}
		table.AddRow(header...)
		for _, rec := range st.Items {
			row := make([]any, 0, len(res.Columns))
			for _, col := range res.Columns {
				row = append(row, formatValue(rec[col]))
			}
			table.AddRow(row...)
		}
		fmt.Fprintln(out, table)
	}
	fmt.Fprintln(out, pageFooter(st.CurrentPage, st.TotalPages, st.TotalItems))
}

// pageFooter 形如 "1 … 4 [5] 6 … 10  共 96 条"
func pageFooter(current, total, items int) string {
	var b strings.Builder
	for i, p := range listctl.PageWindow(current, total, 1) {
		if i > 0 {
			b.WriteByte(' ')
		}
		switch p {
		case listctl.Ellipsis:
			b.WriteString("…")
		case current:
			fmt.Fprintf(&b, "[%d]", p)
		default:
			b.WriteString(strconv.Itoa(p))
		}
	}
	fmt.Fprintf(&b, "  共 %d 条", items)
	return b.String()
}
