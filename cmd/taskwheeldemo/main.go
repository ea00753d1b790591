// Command taskwheeldemo registers one asynchronous task and one
// process-pipeline task against a single Scheduler, after the original
// project's demo_async_std example: a print job on a repeating cycle and a
// shell pipeline job. Partway through, the print job's live instances are
// cancelled and the pipeline job is removed.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/taskwheel/taskwheel"
	"github.com/taskwheel/taskwheel/recurrence"
)

func main() {
	logger, err := taskwheel.NewZapLogger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "taskwheeldemo: failed to build logger: %s\n", err)
		os.Exit(1)
	}

	sched, err := taskwheel.New(taskwheel.WithLogger(logger))
	if err != nil {
		fmt.Fprintf(os.Stderr, "taskwheeldemo: failed to start scheduler: %s\n", err)
		os.Exit(1)
	}
	defer sched.Stop()

	printTask, err := buildAsyncPrintTask()
	if err != nil {
		fmt.Fprintf(os.Stderr, "taskwheeldemo: %s\n", err)
		os.Exit(1)
	}
	if err := sched.AddTask(printTask); err != nil {
		fmt.Fprintf(os.Stderr, "taskwheeldemo: %s\n", err)
		os.Exit(1)
	}

	pipelineTask, err := buildPipelineTask()
	if err != nil {
		fmt.Fprintf(os.Stderr, "taskwheeldemo: %s\n", err)
		os.Exit(1)
	}
	if err := sched.AddTask(pipelineTask); err != nil {
		fmt.Fprintf(os.Stderr, "taskwheeldemo: %s\n", err)
		os.Exit(1)
	}

	// Let both tasks fire a few times before tearing one down.
	time.Sleep(8 * time.Second)

	// Best-effort: the print task's instance may already have completed by
	// now, in which case CancelAllByTask has nothing to cancel.
	_ = sched.CancelAllByTask(printTask.ID)

	if err := sched.RemoveTask(pipelineTask.ID); err != nil {
		fmt.Fprintf(os.Stderr, "taskwheeldemo: %s\n", err)
	}

	fmt.Println("taskwheeldemo: run", uuid.New(), "complete")
}

func buildAsyncPrintTask() (taskwheel.Task, error) {
	schedule, err := recurrence.ParseCron("*/6 * * * * * *")
	if err != nil {
		return taskwheel.Task{}, err
	}
	return taskwheel.NewTask(1).
		Recurring(schedule).
		MaxParallel(2).
		AsyncBody(func(ctx context.Context) error {
			fmt.Println("taskwheeldemo: print job starting")
			select {
			case <-time.After(3 * time.Second):
			case <-ctx.Done():
				return ctx.Err()
			}
			fmt.Println("taskwheeldemo: print job done")
			return nil
		}).
		Build()
}

func buildPipelineTask() (taskwheel.Task, error) {
	schedule, err := recurrence.Secondly()
	if err != nil {
		return taskwheel.Task{}, err
	}
	return taskwheel.NewTask(3).
		Recurring(schedule).
		MaxRunningTime(10 * time.Second).
		MaxParallel(1).
		PipelineBody("echo taskwheeldemo-heartbeat >> ./taskwheeldemo.log").
		Build()
}
