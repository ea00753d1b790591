// Package pipeline parses and spawns the external-process work-body shape:
// a chain of commands piped into one another, with an optional redirect of
// the final stage's stdout to a file.
package pipeline

import (
	"context"
	"fmt"
	"os"
	"strings"
)

// Stage is one command in a pipeline: argv[0] plus its arguments.
type Stage struct {
	Program string
	Args    []string
}

// Redirect captures the trailing "> file" or ">> file" clause.
type Redirect struct {
	Path   string
	Append bool
}

// Pipeline is the parsed form of a pipeline string: `stage ( | stage )*
// ( > file | >> file )?`. Stages are whitespace-split; quoting is not
// honored, matching the grammar's explicit disclaimer.
type Pipeline struct {
	Stages   []Stage
	Redirect *Redirect
}

// Parse parses a pipeline string. Redirection, if present, applies only to
// the final stage.
func Parse(s string) (*Pipeline, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return nil, fmt.Errorf("%w: empty pipeline", ErrInvalidPipeline)
	}

	segments := strings.Split(trimmed, "|")
	last := strings.TrimSpace(segments[len(segments)-1])

	var redirect *Redirect
	if idx := strings.LastIndex(last, ">>"); idx >= 0 {
		redirect = &Redirect{Path: strings.TrimSpace(last[idx+2:]), Append: true}
		last = strings.TrimSpace(last[:idx])
	} else if idx := strings.LastIndex(last, ">"); idx >= 0 {
		redirect = &Redirect{Path: strings.TrimSpace(last[idx+1:]), Append: false}
		last = strings.TrimSpace(last[:idx])
	}
	if redirect != nil && redirect.Path == "" {
		return nil, fmt.Errorf("%w: redirect with no filename in %q", ErrInvalidPipeline, s)
	}
	segments[len(segments)-1] = last

	stages := make([]Stage, 0, len(segments))
	for _, seg := range segments {
		fields := strings.Fields(seg)
		if len(fields) == 0 {
			return nil, fmt.Errorf("%w: empty stage in %q", ErrInvalidPipeline, s)
		}
		stages = append(stages, Stage{Program: fields[0], Args: fields[1:]})
	}

	return &Pipeline{Stages: stages, Redirect: redirect}, nil
}

// Instance is one spawned run of a Pipeline: the linked exec.Cmd chain and,
// if a redirect was present, the open output file.
type Instance struct {
	cmds []*command
	file *os.File
}

// Spawn starts every stage, wiring stdout of stage k into stdin of stage
// k+1, and the final stage's stdout either to the redirect file or to this
// process's stdout. Spawn failures kill any stages already started.
func (p *Pipeline) Spawn(ctx context.Context) (*Instance, error) {
	cmds := make([]*command, len(p.Stages))
	for i, st := range p.Stages {
		cmds[i] = newCommand(ctx, st.Program, st.Args)
	}

	for i := 1; i < len(cmds); i++ {
		pipe, err := cmds[i-1].stdoutPipe()
		if err != nil {
			return nil, fmt.Errorf("%w: %s", ErrSpawnFailure, err)
		}
		cmds[i].setStdin(pipe)
	}

	var file *os.File
	if p.Redirect != nil {
		flags := os.O_CREATE | os.O_WRONLY
		if p.Redirect.Append {
			flags |= os.O_APPEND
		} else {
			flags |= os.O_TRUNC
		}
		f, err := os.OpenFile(p.Redirect.Path, flags, 0o644)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", ErrSpawnFailure, err)
		}
		file = f
		cmds[len(cmds)-1].setStdout(f)
	} else {
		cmds[len(cmds)-1].setStdout(os.Stdout)
	}

	for i, cmd := range cmds {
		if err := cmd.start(); err != nil {
			for j := 0; j < i; j++ {
				cmds[j].kill()
			}
			if file != nil {
				_ = file.Close()
			}
			return nil, fmt.Errorf("%w: %s", ErrSpawnFailure, err)
		}
	}

	return &Instance{cmds: cmds, file: file}, nil
}

// Wait blocks until every stage has exited, returning the first
// non-nil error encountered, and closes the redirect file if any.
func (in *Instance) Wait() error {
	var firstErr error
	for _, cmd := range in.cmds {
		if err := cmd.wait(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	if in.file != nil {
		_ = in.file.Close()
	}
	return firstErr
}

// Cancel kills every stage still running and closes the redirect file.
// Best-effort and idempotent: killing an already-exited process is a no-op
// error that Cancel swallows.
func (in *Instance) Cancel() error {
	for _, cmd := range in.cmds {
		cmd.kill()
	}
	if in.file != nil {
		_ = in.file.Close()
	}
	return nil
}
