package confirm

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrDeclined 操作人未确认
var ErrDeclined = errors.New("confirm: action declined")

type Prompter interface {
	Confirm(ctx context.Context, title, body string) (bool, error)
}

// Static 固定答复。HTTP 场景下由请求体中的 confirmed 字段决定。
type Static bool

func (s Static) Confirm(context.Context, string, string) (bool, error) {
	return bool(s), nil
}

// Terminal 在终端提示 y/N
type Terminal struct {
	In  *bufio.Reader
	Out io.Writer
}

func NewTerminal(in io.Reader, out io.Writer) *Terminal {
	return &Terminal{In: bufio.NewReader(in), Out: out}
}

func (t *Terminal) Confirm(ctx context.Context, title, body string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	if _, err := fmt.Fprintf(t.Out, "%s\n%s\n确认执行? [y/N]: ", title, body); err != nil {
		return false, err
	}
	line, err := t.In.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, err
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true, nil
	}
	return false, nil
}

// Require 未确认时返回 ErrDeclined
func Require(ctx context.Context, p Prompter, title, body string) error {
	ok, err := p.Confirm(ctx, title, body)
	if err != nil {
		return err
	}
	if !ok {
		return ErrDeclined
	}
	return nil
}
