package main

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"
	"github.com/viant/vecplot/internal/app"
	"github.com/viant/vecplot/vecerr"
)

const exploreHelp = `commands:
  axes                      list configured axes
  project <axis>            apply a configured axis
  pair <a> <b>              apply a single reference pair axis
  neighbors <name> [k]      list neighbours of a token
  analogy <a> <b> <c> [k]   a is to b as c is to ?
  extent                    bounding box of the visible points
  help                      show this help
  quit                      leave the shell`

func newExploreCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "explore",
		Short: "Start an interactive shell over one loaded space",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			p := printer{out: out, format: c.format}
			session, err := app.Open(cmd.Context(), c.cfg, p)
			if err != nil {
				return err
			}

			rl, err := readline.NewEx(&readline.Config{
				Prompt: "vecplot> ",
				Stdin:  io.NopCloser(cmd.InOrStdin()),
				Stdout: out,
				Stderr: cmd.ErrOrStderr(),
			})
			if err != nil {
				return err
			}
			defer func() {
				_ = rl.Close()
			}()

			sh := &shell{cli: c, session: session, out: p}
			for {
				line, err := rl.Readline()
				if err != nil { // io.EOF or interrupt
					return nil
				}
				done, err := sh.exec(strings.Fields(line))
				if err != nil {
					fmt.Fprintln(out, "error:", err)
				}
				if done {
					return nil
				}
			}
		},
	}
}

type shell struct {
	cli     *cli
	session *app.Session
	out     printer
}

var errUsage = errors.New("wrong number of arguments, try help")

// exec runs one shell command and reports whether the shell should exit.
func (s *shell) exec(args []string) (bool, error) {
	if len(args) == 0 {
		return false, nil
	}
	switch cmd, rest := args[0], args[1:]; cmd {
	case "quit", "exit":
		return true, nil
	case "help":
		_, err := fmt.Fprintln(s.out.out, exploreHelp)
		return false, err
	case "axes":
		for _, name := range s.cli.cfg.AxisNames() {
			fmt.Fprintf(s.out.out, "%s\t%s\n", name, s.cli.cfg.Axes[name].Kind)
		}
		return false, nil
	case "project":
		if len(rest) != 1 {
			return false, errUsage
		}
		return false, s.session.Project(rest[0])
	case "pair":
		if len(rest) != 2 {
			return false, errUsage
		}
		return false, s.session.ProjectAxis("pair", pairAxis(rest[0], rest[1]))
	case "neighbors":
		if len(rest) < 1 || len(rest) > 2 {
			return false, errUsage
		}
		k, err := optionalK(rest[1:])
		if err != nil {
			return false, err
		}
		ns, err := s.session.Neighbors(rest[0], k)
		if err != nil {
			return false, err
		}
		return false, s.out.printNeighbors(ns)
	case "analogy":
		if len(rest) < 3 || len(rest) > 4 {
			return false, errUsage
		}
		k, err := optionalK(rest[3:])
		if err != nil {
			return false, err
		}
		ns, err := s.session.Analogy(rest[0], rest[1], rest[2], k)
		if err != nil {
			return false, err
		}
		return false, s.out.printNeighbors(ns)
	case "extent":
		e := s.session.Board().Extent()
		_, err := fmt.Fprintf(s.out.out, "x [%s, %s]  y [%s, %s]\n",
			formatFloat(e.MinX), formatFloat(e.MaxX), formatFloat(e.MinY), formatFloat(e.MaxY))
		return false, err
	default:
		return false, vecerr.New(vecerr.CodeCLIInputInvalid, "unknown command, try help", vecerr.FieldName(cmd))
	}
}

func optionalK(args []string) (int, error) {
	if len(args) == 0 {
		return 0, nil
	}
	k, err := strconv.Atoi(args[0])
	if err != nil || k < 0 {
		return 0, vecerr.New(vecerr.CodeCLIInputInvalid, "k must be a non-negative integer", vecerr.Field("k", args[0]))
	}
	return k, nil
}
