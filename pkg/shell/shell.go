// Package shell 提供一个逐行执行命令的解释器，直接作用于内存中的 Store
package shell

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"objvault/pkg/objectstore"
	"objvault/pkg/types"
)

// ErrUnterminatedQuote 表示一行里的引号没有闭合
var ErrUnterminatedQuote = errors.New("unterminated quote")

const helpText = `Commands:
  add <name> <object...>    stage an object
  commit <message...>       commit staged objects
  get <name>                read an object from HEAD
  rm <name>                 remove an object from HEAD
  checkout <hash>           reset history to a commit
  log                       show history, newest first
  head                      show the latest commit
  status                    show staged objects
  branch                    list branches
  branch create <name>      create an empty branch
  branch fork <name>        create a branch from current history
  branch checkout <name>    switch branch
  branch rm <name>          remove a branch
  help                      show this help
  exit                      quit`

// Shell 解释执行命令，每条命令的 Result 消息写到 out
type Shell struct {
	store  *objectstore.Store
	out    io.Writer
	logger *slog.Logger
}

func New(store *objectstore.Store, out io.Writer, logger *slog.Logger) *Shell {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Shell{store: store, out: out, logger: logger}
}

// Run 逐行读取并执行，遇到 EOF、exit 或 ctx 取消时返回
func (sh *Shell) Run(ctx context.Context, r io.Reader) error {
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		lineNo++

		stop, err := sh.Exec(scanner.Text())
		if err != nil {
			// 单行出错不影响后续命令
			sh.logger.Debug("command failed", slog.Int("line", lineNo), slog.String("err", err.Error()))
			fmt.Fprintf(sh.out, "error: %v\n", err)
			continue
		}
		if stop {
			return nil
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read input: %w", err)
	}
	return nil
}

// Exec 执行一行命令；返回 stop=true 表示应当退出
func (sh *Shell) Exec(line string) (stop bool, err error) {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return false, nil
	}

	args, err := Tokenize(line)
	if err != nil {
		return false, err
	}
	cmd, args := args[0], args[1:]

	switch cmd {
	case "exit", "quit":
		return true, nil
	case "help":
		fmt.Fprintln(sh.out, helpText)
		return false, nil
	case "add":
		if len(args) < 2 {
			return false, usage("add <name> <object...>")
		}
		sh.print(sh.store.Add(args[0], strings.Join(args[1:], " ")))
	case "commit":
		if len(args) == 0 {
			return false, usage("commit <message...>")
		}
		sh.print(sh.store.Commit(strings.Join(args, " ")))
	case "get":
		if len(args) != 1 {
			return false, usage("get <name>")
		}
		sh.print(sh.store.Get(args[0]))
	case "rm":
		if len(args) != 1 {
			return false, usage("rm <name>")
		}
		sh.print(sh.store.Remove(args[0]))
	case "checkout":
		if len(args) != 1 {
			return false, usage("checkout <hash>")
		}
		sh.print(sh.store.Checkout(types.Hash(args[0])))
	case "log":
		sh.print(sh.store.Log())
	case "head":
		sh.print(sh.store.Head())
	case "status":
		sh.print(sh.store.Status())
	case "branch":
		return false, sh.branch(args)
	default:
		return false, fmt.Errorf("unknown command %q (try 'help')", cmd)
	}
	return false, nil
}

func (sh *Shell) branch(args []string) error {
	bm := sh.store.Branch()
	if len(args) == 0 {
		sh.print(bm.List())
		return nil
	}
	if len(args) != 2 {
		return usage("branch [create|fork|checkout|rm] <name>")
	}

	name := types.BranchName(args[1])
	switch args[0] {
	case "create":
		sh.print(bm.Create(name))
	case "fork":
		sh.print(bm.Fork(name))
	case "checkout":
		sh.print(bm.Checkout(name))
	case "rm":
		sh.print(bm.Remove(name))
	default:
		return fmt.Errorf("unknown branch subcommand %q", args[0])
	}
	return nil
}

func (sh *Shell) print(res objectstore.Result) {
	fmt.Fprintln(sh.out, res.Message)
}

func usage(s string) error {
	return fmt.Errorf("usage: %s", s)
}

// Tokenize 按空白切分一行，单引号或双引号内的空白不切分
func Tokenize(line string) ([]string, error) {
	var (
		tokens  []string
		cur     strings.Builder
		quote   rune
		inToken bool
	)

	for _, r := range line {
		switch {
		case quote != 0:
			if r == quote {
				quote = 0
				continue
			}
			cur.WriteRune(r)
		case r == '"' || r == '\'':
			quote = r
			inToken = true
		case r == ' ' || r == '\t':
			if inToken {
				tokens = append(tokens, cur.String())
				cur.Reset()
				inToken = false
			}
		default:
			cur.WriteRune(r)
			inToken = true
		}
	}

	if quote != 0 {
		return nil, ErrUnterminatedQuote
	}
	if inToken {
		tokens = append(tokens, cur.String())
	}
	return tokens, nil
}
