// Package console 在终端上与操作者交互
//
// 启动时询问运行参数，初始化自动步骤失败时等待操作者手动处理后按回车。
package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/zoeyai/heartclicker/pkg/config"
)

// Prompter 基于行输入的提示器
//
// 输入由一个后台 goroutine 逐行读取，这样等待回车时也能响应 ctx 取消。
type Prompter struct {
	out   io.Writer
	lines chan string
}

// New 创建提示器
func New(in io.Reader, out io.Writer) *Prompter {
	p := &Prompter{
		out:   out,
		lines: make(chan string),
	}
	go p.read(in)
	return p
}

func (p *Prompter) read(in io.Reader) {
	defer close(p.lines)
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		p.lines <- scanner.Text()
	}
}

// readLine 读取一行，输入结束返回 io.EOF
func (p *Prompter) readLine(ctx context.Context) (string, error) {
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case line, ok := <-p.lines:
		if !ok {
			return "", io.EOF
		}
		return strings.TrimSpace(line), nil
	}
}

func (p *Prompter) ask(ctx context.Context, prompt string) (string, error) {
	fmt.Fprint(p.out, prompt)
	return p.readLine(ctx)
}

// AskURL 询问目标地址，空输入时重新询问
func (p *Prompter) AskURL(ctx context.Context) (string, error) {
	for {
		line, err := p.ask(ctx, "请输入目标地址: ")
		if err != nil {
			return "", err
		}
		if line != "" {
			return line, nil
		}
	}
}

// AskColor 询问心形颜色，直到输入 grey 或 pink
func (p *Prompter) AskColor(ctx context.Context) (string, error) {
	for {
		line, err := p.ask(ctx, "选择要点击的心形颜色 (grey/pink): ")
		if err != nil {
			return "", err
		}
		switch strings.ToLower(line) {
		case config.ColorGrey, "gray":
			return config.ColorGrey, nil
		case config.ColorPink:
			return config.ColorPink, nil
		}
	}
}

// AskPositiveInt 询问正整数，格式错误或非正数时提示后重新询问
func (p *Prompter) AskPositiveInt(ctx context.Context, prompt string) (int, error) {
	for {
		line, err := p.ask(ctx, prompt+": ")
		if err != nil {
			return 0, err
		}
		n, err := strconv.Atoi(line)
		if err != nil {
			fmt.Fprintln(p.out, "请输入有效的数字")
			continue
		}
		if n <= 0 {
			fmt.Fprintln(p.out, "请输入大于 0 的数字")
			continue
		}
		return n, nil
	}
}

// WaitForManual 打印提示并等待回车
func (p *Prompter) WaitForManual(ctx context.Context, message string) error {
	fmt.Fprintln(p.out, message)
	_, err := p.ask(ctx, "准备好后按回车继续...")
	return err
}
