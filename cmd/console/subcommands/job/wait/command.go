package wait

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/cheggaaa/pb/v3"
	cerr "github.com/opst/cloudconsole/cmd/console/errors"
	"github.com/opst/cloudconsole/cmd/console/subcommands/common"
	apijobs "github.com/opst/cloudconsole/pkg/api/types/jobs"
	"github.com/opst/cloudconsole/pkg/console/jobs"
	"github.com/opst/cloudconsole/pkg/console/notice"
	"github.com/opst/cloudconsole/pkg/console/resource"
	"github.com/opst/cloudconsole/pkg/rest"
	"github.com/youta-t/flarc"
)

// ErrTerminated is returned when some of waited jobs are terminated.
var ErrTerminated = errors.New("job is terminated")

type Flags struct{}

const ARG_JOB_ID = "JOB_ID"

func New() (flarc.Command, error) {
	return flarc.NewCommand(
		"Wait for Jobs to be finished.",
		Flags{},
		flarc.Args{
			{
				Name: ARG_JOB_ID, Required: true, Repeatable: true,
				Help: "Job Id to be waited",
			},
		},
		common.NewTask(Task()),
		flarc.WithDescription(`
Wait for Jobs to be finished or terminated, showing progress on stderr.

When some of Jobs are terminated, it exits with error.
`),
	)
}

func Task() common.Task[Flags] {
	return func(
		ctx context.Context,
		logger *log.Logger,
		client rest.Client,
		cl flarc.Commandline[Flags],
		params []any,
	) error {
		targets := []Target{}
		for _, id := range cl.Args()[ARG_JOB_ID] {
			targets = append(targets, Target{Ref: apijobs.Ref{JobID: id}})
		}
		result, err := Track(ctx, logger, client, cl.Stderr(), targets)
		if dumpErr := common.Dump(cl.Stdout(), result); dumpErr != nil {
			logger.Panicf("fail to dump jobs: %s", dumpErr)
		}
		return err
	}
}

// Target is a job to be tracked.
type Target struct {
	Ref  apijobs.Ref
	Kind resource.Kind
}

const template pb.ProgressBarTemplate = `{{with string . "prefix"}}{{.}} {{end}}{{counters . }} {{bar . }} {{etime . }}`

// Track polls jobs until all of them get terminal. Progress is shown on progressOut.
//
// Targets without job ids are ignored.
//
// # Returns
//
// - []jobs.Tracked: the jobs at their ends.
//
// - error: ErrTerminated if some of jobs are terminated, or ctx.Err().
func Track(
	ctx context.Context,
	logger *log.Logger,
	client rest.Client,
	progressOut io.Writer,
	targets []Target,
) ([]jobs.Tracked, error) {
	ids := []string{}

	bar := pb.New(0)
	bar.SetTemplate(template)
	bar.SetWriter(progressOut)
	bar.Set("prefix", "jobs")
	if err := bar.Err(); err != nil {
		return nil, err
	}

	tracker := jobs.New(
		client,
		jobs.WithLogger(logger),
		jobs.WithNotifier(notice.NotifierFunc(func(n notice.Notice) {
			logger.Println(n.Message)
		})),
		jobs.WithOnFinish(func(jobs.Tracked) { bar.Increment() }),
	)
	for _, t := range targets {
		if tracker.Queue(t.Ref, t.Kind) {
			ids = append(ids, t.Ref.JobID)
		}
	}
	if len(ids) == 0 {
		return []jobs.Tracked{}, nil
	}
	bar.SetTotal(int64(len(ids)))

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go tracker.Run(ctx)

	bar.Start()
	result, err := tracker.Wait(ctx, ids...)
	bar.Finish()
	if err != nil {
		return nil, err
	}

	terminated := []string{}
	for _, j := range result {
		if j.Status == apijobs.Terminated {
			msg := j.JobID
			if j.LastError != "" {
				msg += " (" + j.LastError + ")"
			}
			terminated = append(terminated, msg)
		}
	}
	if 0 < len(terminated) {
		return result, cerr.NewCuiError(
			fmt.Sprintf("%d of %d jobs are terminated", len(terminated), len(result)),
			cerr.WithCause(fmt.Errorf("%w: %s", ErrTerminated, strings.Join(terminated, ", "))),
		)
	}
	return result, nil
}

// Follow dumps ref to stdout, or, when wait is true, the job of ref after it gets terminal.
func Follow(
	ctx context.Context,
	logger *log.Logger,
	client rest.Client,
	stdout io.Writer,
	stderr io.Writer,
	ref apijobs.Ref,
	kind resource.Kind,
	wait bool,
) error {
	if !wait || ref.JobID == "" {
		return common.Dump(stdout, ref)
	}

	result, err := Track(ctx, logger, client, stderr, []Target{{Ref: ref, Kind: kind}})
	if len(result) == 0 {
		if dumpErr := common.Dump(stdout, ref); dumpErr != nil {
			return dumpErr
		}
		return err
	}
	if dumpErr := common.Dump(stdout, result[0]); dumpErr != nil {
		return dumpErr
	}
	return err
}
