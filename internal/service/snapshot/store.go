// Package snapshot caches the dashboard's entity collections. A fetch batch loads the
// collections concurrently; a collection that fails to load is published empty and its
// error recorded, so one broken endpoint never blanks the whole dashboard.
package snapshot

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/cmlabs-hris/opsboard-backend-go/internal/domain/client"
	"github.com/cmlabs-hris/opsboard-backend-go/internal/domain/dashboard"
	"github.com/cmlabs-hris/opsboard-backend-go/internal/domain/department"
	"github.com/cmlabs-hris/opsboard-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/opsboard-backend-go/internal/domain/project"
	"github.com/cmlabs-hris/opsboard-backend-go/internal/domain/task"
	"github.com/cmlabs-hris/opsboard-backend-go/internal/domain/ticket"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

type Options struct {
	// TTL after which Current fetches a new batch. Zero keeps a snapshot until invalidated.
	TTL time.Duration
	// FetchTimeout bounds one collection load. Zero means no extra bound.
	FetchTimeout time.Duration
	Now          func() time.Time
	Logger       *slog.Logger
}

type Store struct {
	source dashboard.Source
	opts   Options
	logger *slog.Logger
	group  singleflight.Group

	mu        sync.Mutex
	current   *dashboard.Snapshot
	started   uint64                          // generation of the most recently started batch
	published uint64                          // generation of the published snapshot
	stale     map[dashboard.Collection]uint64 // collection -> generation started before invalidation
}

func NewStore(source dashboard.Source, opts Options) *Store {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &Store{
		source: source,
		opts:   opts,
		logger: opts.Logger.With("component", "snapshot"),
		stale:  make(map[dashboard.Collection]uint64),
	}
}

var _ dashboard.SnapshotStore = (*Store)(nil)

// Current implements dashboard.SnapshotStore. Concurrent callers share one fetch.
func (s *Store) Current(ctx context.Context) (*dashboard.Snapshot, error) {
	s.mu.Lock()
	snap, missing := s.current, s.missingLocked()
	s.mu.Unlock()

	if snap != nil && len(missing) == 0 {
		return snap, nil
	}

	// The shared fetch outlives any single caller; each caller only stops waiting on its own ctx.
	fetchCtx := context.WithoutCancel(ctx)
	ch := s.group.DoChan("current", func() (any, error) {
		s.mu.Lock()
		missing := s.missingLocked()
		s.mu.Unlock()
		if len(missing) == 0 {
			return s.snapshot(), nil
		}
		return s.fetch(fetchCtx, missing)
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*dashboard.Snapshot), nil
	}
}

// Refresh implements dashboard.SnapshotStore.
func (s *Store) Refresh(ctx context.Context) (*dashboard.Snapshot, error) {
	return s.fetch(ctx, dashboard.Collections)
}

// Invalidate implements dashboard.Invalidator. Batches already running when this is
// called do not clear the mark.
func (s *Store) Invalidate(collections ...dashboard.Collection) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range collections {
		s.stale[c] = s.started
	}
	s.logger.Debug("collections invalidated", "collections", collections)
}

func (s *Store) snapshot() *dashboard.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// missingLocked lists the collections the next Current call has to load. Collections that
// failed in the published snapshot are retried.
func (s *Store) missingLocked() []dashboard.Collection {
	if s.current == nil {
		return dashboard.Collections
	}
	if s.opts.TTL > 0 && s.opts.Now().Sub(s.current.FetchedAt) > s.opts.TTL {
		return dashboard.Collections
	}
	var missing []dashboard.Collection
	for _, c := range dashboard.Collections {
		_, stale := s.stale[c]
		_, failed := s.current.Failures[c]
		if stale || failed {
			missing = append(missing, c)
		}
	}
	return missing
}

// fetch loads the given collections as one batch and publishes the result unless a batch
// started later has already been published.
func (s *Store) fetch(ctx context.Context, collections []dashboard.Collection) (*dashboard.Snapshot, error) {
	s.mu.Lock()
	s.started++
	gen := s.started
	s.mu.Unlock()

	fresh := &dashboard.Snapshot{Failures: make(map[dashboard.Collection]string)}
	errs := make([]error, len(collections))

	var g errgroup.Group
	for i, c := range collections {
		g.Go(func() error {
			loadCtx := ctx
			if s.opts.FetchTimeout > 0 {
				var cancel context.CancelFunc
				loadCtx, cancel = context.WithTimeout(ctx, s.opts.FetchTimeout)
				defer cancel()
			}
			errs[i] = s.load(loadCtx, fresh, c)
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	for i, c := range collections {
		if errs[i] == nil {
			continue
		}
		s.logger.Warn("collection fetch failed", "collection", c, "generation", gen, "error", errs[i])
		fresh.Failures[c] = errs[i].Error()
		setEmpty(fresh, c)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if gen < s.published {
		s.logger.Debug("discarding superseded batch", "generation", gen, "published", s.published)
		return s.current, nil
	}

	next := merge(s.current, fresh, collections)
	next.ID = uuid.New()
	next.Generation = gen
	next.FetchedAt = s.opts.Now()
	s.current = next
	s.published = gen

	for _, c := range collections {
		if mark, ok := s.stale[c]; ok && mark < gen {
			delete(s.stale, c)
		}
	}

	s.logger.Info("snapshot published",
		"id", next.ID,
		"generation", gen,
		"collections", len(collections),
		"failures", len(fresh.Failures),
	)
	return next, nil
}

func (s *Store) load(ctx context.Context, snap *dashboard.Snapshot, c dashboard.Collection) error {
	var err error
	switch c {
	case dashboard.CollectionEmployees:
		snap.Employees, err = s.source.Employees(ctx)
	case dashboard.CollectionDepartments:
		snap.Departments, err = s.source.Departments(ctx)
	case dashboard.CollectionClients:
		snap.Clients, err = s.source.Clients(ctx)
	case dashboard.CollectionProjects:
		snap.Projects, err = s.source.Projects(ctx)
	case dashboard.CollectionTasks:
		snap.Tasks, err = s.source.Tasks(ctx)
	case dashboard.CollectionTickets:
		snap.Tickets, err = s.source.Tickets(ctx)
	}
	return err
}

func setEmpty(snap *dashboard.Snapshot, c dashboard.Collection) {
	switch c {
	case dashboard.CollectionEmployees:
		snap.Employees = []employee.Employee{}
	case dashboard.CollectionDepartments:
		snap.Departments = []department.Department{}
	case dashboard.CollectionClients:
		snap.Clients = []client.Client{}
	case dashboard.CollectionProjects:
		snap.Projects = []project.Project{}
	case dashboard.CollectionTasks:
		snap.Tasks = []task.Task{}
	case dashboard.CollectionTickets:
		snap.Tickets = []ticket.Ticket{}
	}
}

// merge builds a new snapshot from base with the given collections taken from fresh.
// Neither input is modified.
func merge(base, fresh *dashboard.Snapshot, collections []dashboard.Collection) *dashboard.Snapshot {
	next := &dashboard.Snapshot{Failures: make(map[dashboard.Collection]string)}
	if base != nil {
		*next = *base
		next.Failures = make(map[dashboard.Collection]string, len(base.Failures))
		for c, msg := range base.Failures {
			next.Failures[c] = msg
		}
	}
	for _, c := range collections {
		delete(next.Failures, c)
		if msg, failed := fresh.Failures[c]; failed {
			next.Failures[c] = msg
		}
		switch c {
		case dashboard.CollectionEmployees:
			next.Employees = fresh.Employees
		case dashboard.CollectionDepartments:
			next.Departments = fresh.Departments
		case dashboard.CollectionClients:
			next.Clients = fresh.Clients
		case dashboard.CollectionProjects:
			next.Projects = fresh.Projects
		case dashboard.CollectionTasks:
			next.Tasks = fresh.Tasks
		case dashboard.CollectionTickets:
			next.Tickets = fresh.Tickets
		}
	}
	// A first batch may have loaded only some collections; the rest stay empty, not nil.
	for _, c := range dashboard.Collections {
		if isNil(next, c) {
			setEmpty(next, c)
		}
	}
	return next
}

func isNil(snap *dashboard.Snapshot, c dashboard.Collection) bool {
	switch c {
	case dashboard.CollectionEmployees:
		return snap.Employees == nil
	case dashboard.CollectionDepartments:
		return snap.Departments == nil
	case dashboard.CollectionClients:
		return snap.Clients == nil
	case dashboard.CollectionProjects:
		return snap.Projects == nil
	case dashboard.CollectionTasks:
		return snap.Tasks == nil
	case dashboard.CollectionTickets:
		return snap.Tickets == nil
	}
	return false
}
