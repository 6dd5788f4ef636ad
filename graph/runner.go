package graph

import (
	"context"
	"time"

	"github.com/factorysh/solsta/pubsub"
	"github.com/factorysh/solsta/store"
	"github.com/factorysh/solsta/task"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// Runner executes the steps of a graph, one after the other
type Runner struct {
	Pubsub  *pubsub.PubSub
	History *store.History // optional
	Log     log.FieldLogger
}

func NewRunner(logger log.FieldLogger, history *store.History) *Runner {
	if logger == nil {
		logger = log.StandardLogger()
	}
	return &Runner{
		Pubsub:  pubsub.NewPubSub(),
		History: history,
		Log:     logger,
	}
}

// Run all the steps. It stops at the first failure, a cancelled ctx stops
// before the next step. Returns the tags built by the steps.
func (r *Runner) Run(ctx context.Context, g *Graph) (task.TagMap, error) {
	job := task.NewJobContext(g.BaseDir, r.Log)
	tags := make(task.TagMap)
	for _, step := range g.Steps {
		if err := ctx.Err(); err != nil {
			return tags, err
		}
		err := r.runStep(job, step, tags)
		if err != nil {
			return tags, errors.Wrapf(err, "node %s", step.Node)
		}
	}
	return tags, nil
}

func (r *Runner) runStep(job *task.JobContext, step Step, tags task.TagMap) error {
	record := &store.Record{
		Id:      uuid.New(),
		Job:     job.Id,
		Node:    step.Node,
		Element: step.Element,
		Status:  task.Running,
		Start:   time.Now(),
	}
	l := job.Log.WithFields(log.Fields{
		"node":    step.Node,
		"element": step.Element,
	})
	r.publish(record)

	products := task.NewFileSet()
	err := step.Task.Execute(job, products, tags)
	record.Finish = time.Now()
	if err != nil {
		record.Status = task.Error
		record.Error = err.Error()
		l.WithError(err).Error("Task failed")
	} else {
		record.Status = task.Done
		for _, f := range products.Sorted() {
			record.Products = append(record.Products, f.String())
		}
		for _, tag := range step.Task.FindProducedTagNames() {
			tags.FindOrAdd(tag).Union(products)
		}
		l.WithField("duration", record.Finish.Sub(record.Start)).Info("Task done")
	}

	if r.History != nil {
		if errPut := r.History.Put(record); errPut != nil {
			l.WithError(errPut).Error("Can't record the task")
		}
	}
	r.publish(record)
	return err
}

func (r *Runner) publish(record *store.Record) {
	if r.Pubsub == nil {
		return
	}
	r.Pubsub.Publish(pubsub.Event{
		Action:  record.Status.String(),
		Id:      record.Id,
		Node:    record.Node,
		Element: record.Element,
		Error:   record.Error,
	})
}
