// Package poller implements the incremental poll of a Drive folder: load the checkpoint, list
// the spreadsheets modified since then, export and relay each one, and advance the checkpoint.
//
// Relay delivery is at-least-once: the checkpoint is only advanced after the folder has been
// listed and every match has been attempted, so a failed run re-delivers on the next run.
package poller

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/mjsigg/tkd-project-poller/checkpoint"
	"github.com/mjsigg/tkd-project-poller/gdrive"
	"github.com/mjsigg/tkd-project-poller/relay"
)

var (
	ErrQuery      = errors.New("folder query failed")
	ErrCheckpoint = errors.New("checkpoint update failed")
)

type Checkpoints interface {
	Load(ctx context.Context) (time.Time, error)
	Save(ctx context.Context, checkpoint time.Time) error
}

type Folder interface {
	List(ctx context.Context, since time.Time) ([]gdrive.File, error)
	Export(ctx context.Context, id string) (string, error)
}

type Sink interface {
	Relay(ctx context.Context, payload relay.Payload) error
}

type Poller struct {
	checkpoints Checkpoints
	folder      Folder
	sink        Sink
	log         *slog.Logger
	now         func() time.Time
}

type Option func(*Poller)

func WithLogger(logger *slog.Logger) Option {
	return func(p *Poller) {
		if logger != nil {
			p.log = logger
		}
	}
}

// WithClock replaces the wall clock used to advance the checkpoint.
func WithClock(now func() time.Time) Option {
	return func(p *Poller) {
		if now != nil {
			p.now = now
		}
	}
}

func New(checkpoints Checkpoints, folder Folder, sink Sink, options ...Option) *Poller {
	p := Poller{
		checkpoints: checkpoints,
		folder:      folder,
		sink:        sink,
		log:         slog.Default(),
		now:         time.Now,
	}

	for _, option := range options {
		option(&p)
	}

	return &p
}

// Summary describes the outcome of a single run.
type Summary struct {
	Run      string
	Since    time.Time
	Next     time.Time
	Found    int
	Exported int
	Relayed  int
	Skipped  int
	Failed   int
	Advanced bool
}

func (s Summary) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("run", s.Run),
		slog.String("since", checkpoint.Format(s.Since)),
		slog.Int("found", s.Found),
		slog.Int("exported", s.Exported),
		slog.Int("relayed", s.Relayed),
		slog.Int("skipped", s.Skipped),
		slog.Int("failed", s.Failed),
		slog.Bool("advanced", s.Advanced),
	)
}

// Run executes one poll. Failing to read the checkpoint is not fatal (the poll starts from the
// epoch), nor is failing to export or relay an individual spreadsheet. Failing to list the
// folder or to save the checkpoint aborts the run and is returned to the caller.
func (p *Poller) Run(ctx context.Context) (Summary, error) {
	summary := Summary{
		Run: uuid.NewString(),
	}

	log := p.log.With("run", summary.Run)

	since, err := p.checkpoints.Load(ctx)
	if errors.Is(err, checkpoint.ErrNotFound) {
		log.Info("no checkpoint recorded, polling from epoch")
		since = checkpoint.Epoch
	} else if err != nil {
		log.Warn("unable to read checkpoint, polling from epoch", "error", err)
		since = checkpoint.Epoch
	}

	summary.Since = since
	summary.Next = since

	log.Debug("polling folder", "since", checkpoint.Format(since))

	files, err := p.folder.List(ctx, since)
	if err != nil {
		return summary, fmt.Errorf("%w: %w", ErrQuery, err)
	}

	summary.Found = len(files)
	if len(files) == 0 {
		log.Info("no new or modified spreadsheets", "since", checkpoint.Format(since))
		return summary, nil
	}

	log.Info("found new or modified spreadsheets", "count", len(files))

	for _, file := range files {
		if p.forward(ctx, log, file, &summary) {
			summary.Relayed++
		}
	}

	next := p.now().UTC()
	if next.Before(since) {
		log.Warn("clock is behind checkpoint, keeping checkpoint", "now", checkpoint.Format(next), "checkpoint", checkpoint.Format(since))
		next = since
	}

	if err := p.checkpoints.Save(ctx, next); err != nil {
		return summary, fmt.Errorf("%w: %w", ErrCheckpoint, err)
	}

	summary.Next = next
	summary.Advanced = true

	log.Info("poll complete", "summary", summary, "checkpoint", checkpoint.Format(next))

	return summary, nil
}

func (p *Poller) forward(ctx context.Context, log *slog.Logger, file gdrive.File, summary *Summary) bool {
	log = log.With("file", file.ID, "name", file.Name)

	csv, err := p.folder.Export(ctx, file.ID)
	if err != nil {
		log.Warn("export failed, skipping spreadsheet", "error", err)
		summary.Skipped++
		return false
	}

	summary.Exported++

	payload := relay.Payload{
		FileID:     file.ID,
		FileName:   file.Name,
		CSVContent: csv,
	}

	if err := p.sink.Relay(ctx, payload); err != nil {
		log.Error("relay failed", "error", err)
		summary.Failed++
		return false
	}

	log.Info("relayed spreadsheet", "bytes", len(csv))

	return true
}
