// Package app wires configuration, storage and the training services into a
// single handle shared by the CLI and the TUI.
package app

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
	"go.uber.org/multierr"

	"github.com/maragym/gymlog/internal/backup"
	"github.com/maragym/gymlog/internal/config"
	"github.com/maragym/gymlog/internal/kvstore"
	"github.com/maragym/gymlog/internal/kvstore/redisstore"
	"github.com/maragym/gymlog/internal/kvstore/sqlite"
	"github.com/maragym/gymlog/internal/log"
	"github.com/maragym/gymlog/internal/routine"
	"github.com/maragym/gymlog/internal/tracing"
	"github.com/maragym/gymlog/internal/training"
)

var (
	ErrUnknownExercise = errors.New("unknown exercise")
	ErrUnknownEntry    = errors.New("unknown entry")
	ErrS3NotConfigured = errors.New("backup.s3.bucket is not configured")
)

// ObjectStore is the remote backup destination.
type ObjectStore interface {
	Upload(ctx context.Context, name string, data []byte) (string, error)
	Download(ctx context.Context, key string) ([]byte, error)
}

// App owns the storage backend and the services built on it.
type App struct {
	Exercises *training.ExerciseRegistry
	Entries   *training.EntryLedger

	cfg     config.Config
	backend kvstore.Backend
	now     func() time.Time
	openS3  func(ctx context.Context, cfg config.S3Config) (ObjectStore, error)
	tracer  trace.Tracer

	closeOnce sync.Once
	closers   []func() error
}

type options struct {
	tracer trace.Tracer
}

// Option customizes an App built by Open or New.
type Option func(*options)

// WithTracer records spans for storage calls and backups. Storage spans
// opened by Open are parented on the span in its context.
func WithTracer(tracer trace.Tracer) Option {
	return func(o *options) {
		o.tracer = tracer
	}
}

func buildOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Open builds the backend described by cfg and loads the services from it.
func Open(ctx context.Context, cfg config.Config, opts ...Option) (*App, error) {
	backend, err := OpenBackend(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if tracer := buildOptions(opts).tracer; tracer != nil {
		backend = kvstore.NewTracedBackend(ctx, backend, tracer)
	}
	a, err := New(backend, cfg, opts...)
	if err != nil {
		_ = backend.Close()
		return nil, err
	}
	return a, nil
}

// OpenBackend opens the configured storage driver, wrapped in the
// read-through cache when enabled.
func OpenBackend(ctx context.Context, cfg config.Config) (kvstore.Backend, error) {
	var backend kvstore.Backend
	switch cfg.Storage.Driver {
	case config.DriverSQLite:
		db, err := sqlite.NewDB(cfg.Storage.Path)
		if err != nil {
			return nil, fmt.Errorf("opening sqlite store: %w", err)
		}
		backend = db.Backend()
	case config.DriverRedis:
		rb, err := redisstore.Open(ctx, redisstore.Config{
			Addr:     cfg.Storage.Redis.Addr,
			Password: cfg.Storage.Redis.Password,
			DB:       cfg.Storage.Redis.DB,
		})
		if err != nil {
			return nil, err
		}
		backend = rb
	case config.DriverMemory:
		backend = kvstore.NewMemoryBackend()
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}

	if cfg.Cache.Enabled {
		log.Debug(log.CatCache, "read-through cache enabled", "ttl", cfg.Cache.TTL)
		backend = kvstore.NewCachedBackend(backend, cfg.Cache.TTL)
	}
	return backend, nil
}

// New loads the exercise registry and entry ledger from backend.
// The App takes ownership of backend.
func New(backend kvstore.Backend, cfg config.Config, opts ...Option) (*App, error) {
	store := kvstore.New(backend, cfg.Storage.Prefix)

	exercises, err := training.NewExerciseRegistry(store)
	if err != nil {
		return nil, fmt.Errorf("loading exercises: %w", err)
	}
	entries, err := training.NewEntryLedger(store)
	if err != nil {
		exercises.Close()
		return nil, fmt.Errorf("loading entries: %w", err)
	}

	a := &App{
		Exercises: exercises,
		Entries:   entries,
		cfg:       cfg,
		backend:   backend,
		now:       time.Now,
		openS3: func(ctx context.Context, c config.S3Config) (ObjectStore, error) {
			return backup.NewS3Store(ctx, backup.S3Config{
				Bucket:    c.Bucket,
				Region:    c.Region,
				Endpoint:  c.Endpoint,
				PathStyle: c.PathStyle,
				Prefix:    c.Prefix,
			})
		},
		tracer: buildOptions(opts).tracer,
	}
	if a.tracer == nil {
		a.tracer = noop.NewTracerProvider().Tracer(tracing.DefaultServiceName)
	}
	return a, nil
}

// Config returns the configuration the App was built with.
func (a *App) Config() config.Config {
	return a.cfg
}

// Now returns the current time as seen by the App.
func (a *App) Now() time.Time {
	return a.now()
}

// AddExercise validates name and creates the exercise if it does not exist.
func (a *App) AddExercise(name, muscleGroup string) (training.Exercise, error) {
	if err := training.ValidateExerciseName(name); err != nil {
		return training.Exercise{}, err
	}
	return a.Exercises.Add(name, muscleGroup)
}

// EditExercise renames or regroups an existing exercise.
func (a *App) EditExercise(id, name, muscleGroup string) (training.Exercise, error) {
	if _, ok := a.Exercises.Get(id); !ok {
		return training.Exercise{}, fmt.Errorf("%w: %s", ErrUnknownExercise, id)
	}
	if name != "" {
		if err := training.ValidateExerciseName(name); err != nil {
			return training.Exercise{}, err
		}
	}
	if err := a.Exercises.Update(training.Exercise{ID: id, Name: name, MuscleGroup: muscleGroup}); err != nil {
		return training.Exercise{}, err
	}
	updated, _ := a.Exercises.Get(id)
	return updated, nil
}

// ClearMuscleGroup removes the muscle group of an exercise.
func (a *App) ClearMuscleGroup(id string) (training.Exercise, error) {
	if _, ok := a.Exercises.Get(id); !ok {
		return training.Exercise{}, fmt.Errorf("%w: %s", ErrUnknownExercise, id)
	}
	if err := a.Exercises.SetMuscleGroup(id, ""); err != nil {
		return training.Exercise{}, err
	}
	updated, _ := a.Exercises.Get(id)
	return updated, nil
}

// DeleteExercise removes an exercise. Its entries are kept unless
// clearEntries is set.
func (a *App) DeleteExercise(id string, clearEntries bool) error {
	if _, ok := a.Exercises.Get(id); !ok {
		return fmt.Errorf("%w: %s", ErrUnknownExercise, id)
	}
	if err := a.Exercises.Remove(id); err != nil {
		return err
	}
	if clearEntries {
		return a.Entries.ClearForExercise(id)
	}
	return nil
}

// LogEntry validates payload and records it against an existing exercise.
func (a *App) LogEntry(payload training.NewEntry) (training.TrainingEntry, error) {
	payload, err := training.ValidateNewEntry(payload, a.now())
	if err != nil {
		return training.TrainingEntry{}, err
	}
	if _, ok := a.Exercises.Get(payload.ExerciseID); !ok {
		return training.TrainingEntry{}, fmt.Errorf("%w: %s", ErrUnknownExercise, payload.ExerciseID)
	}
	return a.Entries.Add(payload)
}

// QuickLog records payload against the exercise called name, creating the
// exercise first when needed. New exercises take their muscle group from the
// routine when the name is part of it.
func (a *App) QuickLog(name string, payload training.NewEntry) (training.Exercise, training.TrainingEntry, error) {
	if err := training.ValidateExerciseName(name); err != nil {
		return training.Exercise{}, training.TrainingEntry{}, err
	}
	// check weight and date before creating the exercise
	candidate := payload
	candidate.ExerciseID = name
	if _, err := training.ValidateNewEntry(candidate, a.now()); err != nil {
		return training.Exercise{}, training.TrainingEntry{}, err
	}

	ex, ok := a.Exercises.FindByName(name)
	if !ok {
		var group string
		if prescribed, found := routine.Find(name); found {
			group = prescribed.MuscleGroup
		}
		var err error
		ex, err = a.Exercises.Add(name, group)
		if err != nil {
			return training.Exercise{}, training.TrainingEntry{}, err
		}
	}

	payload.ExerciseID = ex.ID
	entry, err := a.LogEntry(payload)
	if err != nil {
		return ex, training.TrainingEntry{}, err
	}
	return ex, entry, nil
}

// EditEntry replaces the weight, reps or date of an entry. Empty values keep
// the current ones.
func (a *App) EditEntry(id string, weight, reps training.Quantity, date string) (training.TrainingEntry, error) {
	current, ok := a.Entries.Get(id)
	if !ok {
		return training.TrainingEntry{}, fmt.Errorf("%w: %s", ErrUnknownEntry, id)
	}
	payload := training.NewEntry{
		ExerciseID: current.ExerciseID,
		Weight:     current.Weight,
		Reps:       current.Reps,
		Date:       current.Date,
	}
	if weight != "" {
		payload.Weight = weight
	}
	if reps != "" {
		payload.Reps = reps
	}
	if date != "" {
		payload.Date = date
	}
	payload, err := training.ValidateNewEntry(payload, a.now())
	if err != nil {
		return training.TrainingEntry{}, err
	}

	updated := training.TrainingEntry{
		ID:         id,
		ExerciseID: payload.ExerciseID,
		Weight:     payload.Weight,
		Reps:       payload.Reps,
		Date:       payload.Date,
	}
	if err := a.Entries.Update(updated); err != nil {
		return training.TrainingEntry{}, err
	}
	return updated, nil
}

// DeleteEntry removes an entry.
func (a *App) DeleteEntry(id string) error {
	if _, ok := a.Entries.Get(id); !ok {
		return fmt.Errorf("%w: %s", ErrUnknownEntry, id)
	}
	return a.Entries.Remove(id)
}

// HistoryExercises returns the exercises sorted for the history view.
func (a *App) HistoryExercises() []training.Exercise {
	return training.HistoryExercises(a.Exercises.Exercises(), a.locale())
}

// Histories returns one history row per exercise, name-sorted.
func (a *App) Histories() []training.ExerciseHistory {
	return training.BuildHistories(a.HistoryExercises(), a.Entries.Entries())
}

func (a *App) locale() string {
	if a.cfg.Locale == "" {
		return training.DefaultLocale
	}
	return a.cfg.Locale
}

// Snapshot captures the current state in backup form.
func (a *App) Snapshot() backup.Backup {
	return backup.New(a.Exercises.Exercises(), a.Entries.Entries())
}

// Restore replaces both collections with b. If the entries cannot be
// written the previous exercises are put back.
func (a *App) Restore(b backup.Backup) error {
	previous := a.Exercises.Exercises()
	if err := a.Exercises.ReplaceAll(b.Exercises); err != nil {
		return fmt.Errorf("restoring exercises: %w", err)
	}
	if err := a.Entries.ReplaceAll(b.Entries); err != nil {
		if rbErr := a.Exercises.ReplaceAll(previous); rbErr != nil {
			log.ErrorErr(log.CatBackup, "rollback of exercises failed", rbErr)
			err = multierr.Append(err, rbErr)
		}
		return fmt.Errorf("restoring entries: %w", err)
	}
	log.Info(log.CatBackup, "restored backup", "exercises", len(b.Exercises), "entries", len(b.Entries))
	return nil
}

// Import decodes a backup document and restores it. Invalid documents leave
// the state untouched.
func (a *App) Import(data []byte) error {
	b, err := backup.Decode(data)
	if err != nil {
		return err
	}
	return a.Restore(b)
}

// Export writes the current state as a JSON backup.
func (a *App) Export(w io.Writer) error {
	return backup.Encode(w, a.Snapshot())
}

// ExportXLSX writes the current state as a spreadsheet.
func (a *App) ExportXLSX(w io.Writer) error {
	return backup.WriteXLSX(w, a.Snapshot())
}

// BackupToS3 uploads a JSON backup and returns its object key.
func (a *App) BackupToS3(ctx context.Context) (key string, err error) {
	ctx, span := a.tracer.Start(ctx, tracing.SpanPrefixBackup+"s3.upload")
	defer func() {
		span.SetAttributes(attribute.String(tracing.AttrBackupKey, key))
		tracing.End(span, err)
	}()

	store, err := a.s3Store(ctx)
	if err != nil {
		return "", err
	}
	snap := a.Snapshot()
	var buf bytes.Buffer
	if err := backup.Encode(&buf, snap); err != nil {
		return "", err
	}
	span.SetAttributes(
		attribute.Int(tracing.AttrBackupExercises, len(snap.Exercises)),
		attribute.Int(tracing.AttrBackupEntries, len(snap.Entries)),
		attribute.Int(tracing.AttrBackupBytes, buf.Len()),
	)
	return store.Upload(ctx, backup.DefaultName(a.now()), buf.Bytes())
}

// RestoreFromS3 downloads the backup at key and imports it.
func (a *App) RestoreFromS3(ctx context.Context, key string) (err error) {
	ctx, span := a.tracer.Start(ctx, tracing.SpanPrefixBackup+"s3.restore",
		trace.WithAttributes(attribute.String(tracing.AttrBackupKey, key)))
	defer func() { tracing.End(span, err) }()

	store, err := a.s3Store(ctx)
	if err != nil {
		return err
	}
	data, err := store.Download(ctx, key)
	if err != nil {
		return err
	}
	span.SetAttributes(attribute.Int(tracing.AttrBackupBytes, len(data)))
	return a.Import(data)
}

func (a *App) s3Store(ctx context.Context) (ObjectStore, error) {
	if !a.cfg.Backup.S3.Enabled() {
		return nil, ErrS3NotConfigured
	}
	return a.openS3(ctx, a.cfg.Backup.S3)
}

// OnClose registers fn to run when the App is closed, before the backend.
func (a *App) OnClose(fn func() error) {
	a.closers = append(a.closers, fn)
}

// Close stops change notifications and releases the backend. It is safe to
// call more than once.
func (a *App) Close() error {
	var err error
	a.closeOnce.Do(func() {
		a.Exercises.Close()
		a.Entries.Close()
		for _, fn := range a.closers {
			err = multierr.Append(err, fn())
		}
		err = multierr.Append(err, a.backend.Close())
	})
	return err
}
