package training

import (
	"context"
	"slices"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/maragym/gymlog/internal/kvstore"
	"github.com/maragym/gymlog/internal/log"
	"github.com/maragym/gymlog/internal/pubsub"
)

// ExercisesKey is the store key the registry owns.
const ExercisesKey = "exercises"

// ExerciseRegistry owns the exercise list and mirrors it to the store after
// every mutation. The in-memory list only changes once the write succeeded.
type ExerciseRegistry struct {
	mu     sync.RWMutex
	store  *kvstore.Store
	list   []Exercise
	broker *pubsub.Broker[[]Exercise]
	newID  func() string
}

// NewExerciseRegistry loads the persisted exercises from store.
func NewExerciseRegistry(store *kvstore.Store) (*ExerciseRegistry, error) {
	list, err := kvstore.ReadList[Exercise](store, ExercisesKey)
	if err != nil {
		return nil, err
	}
	log.Debug(log.CatRegistry, "loaded exercises", "count", len(list))
	return &ExerciseRegistry{
		store:  store,
		list:   list,
		broker: pubsub.NewBroker[[]Exercise](),
		newID:  uuid.NewString,
	}, nil
}

// Exercises returns the exercises in insertion order.
func (r *ExerciseRegistry) Exercises() []Exercise {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.list)
}

// Get returns the exercise with id.
func (r *ExerciseRegistry) Get(id string) (Exercise, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	i := slices.IndexFunc(r.list, func(e Exercise) bool { return e.ID == id })
	if i < 0 {
		return Exercise{}, false
	}
	return r.list[i], true
}

// FindByName looks an exercise up by trimmed, case-insensitive name.
func (r *ExerciseRegistry) FindByName(name string) (Exercise, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return findByName(r.list, name)
}

func findByName(list []Exercise, name string) (Exercise, bool) {
	name = strings.TrimSpace(name)
	for _, e := range list {
		if strings.EqualFold(e.Name, name) {
			return e, true
		}
	}
	return Exercise{}, false
}

// Add creates an exercise unless one with the same name already exists, in
// which case the existing record is returned unchanged.
func (r *ExerciseRegistry) Add(name, muscleGroup string) (Exercise, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Exercise{}, ErrNameRequired
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := findByName(r.list, name); ok {
		return existing, nil
	}

	created := Exercise{
		ID:          r.newID(),
		Name:        name,
		MuscleGroup: strings.TrimSpace(muscleGroup),
	}
	next := append(slices.Clone(r.list), created)
	if err := r.persist(next, pubsub.CreatedEvent); err != nil {
		return Exercise{}, err
	}
	log.Info(log.CatRegistry, "added exercise", "id", created.ID, "name", created.Name)
	return created, nil
}

// Update merges the non-empty name and muscle group of updated into the
// exercise with the same id. Unknown ids change nothing but the list is still
// written.
func (r *ExerciseRegistry) Update(updated Exercise) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	next := slices.Clone(r.list)
	for i, item := range next {
		if item.ID != updated.ID {
			continue
		}
		if name := strings.TrimSpace(updated.Name); name != "" {
			item.Name = name
		}
		if group := strings.TrimSpace(updated.MuscleGroup); group != "" {
			item.MuscleGroup = group
		}
		next[i] = item
	}
	return r.persist(next, pubsub.UpdatedEvent)
}

// SetMuscleGroup overwrites the muscle group of the exercise with id; an
// empty group clears it. Unknown ids change nothing and write nothing.
func (r *ExerciseRegistry) SetMuscleGroup(id, group string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := slices.IndexFunc(r.list, func(e Exercise) bool { return e.ID == id })
	if i < 0 {
		return nil
	}
	next := slices.Clone(r.list)
	next[i].MuscleGroup = strings.TrimSpace(group)
	return r.persist(next, pubsub.UpdatedEvent)
}

// Remove deletes the exercise with id. Entries that reference it are kept.
func (r *ExerciseRegistry) Remove(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	next := slices.DeleteFunc(slices.Clone(r.list), func(e Exercise) bool { return e.ID == id })
	return r.persist(next, pubsub.DeletedEvent)
}

// ReplaceAll overwrites the registry. Duplicate names are accepted.
func (r *ExerciseRegistry) ReplaceAll(list []Exercise) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if list == nil {
		list = []Exercise{}
	}
	return r.persist(slices.Clone(list), pubsub.ReplacedEvent)
}

// Subscribe returns a channel of exercise list snapshots, one per mutation.
func (r *ExerciseRegistry) Subscribe(ctx context.Context) <-chan pubsub.Event[[]Exercise] {
	return r.broker.Subscribe(ctx)
}

// Close stops change notifications.
func (r *ExerciseRegistry) Close() {
	r.broker.Close()
}

// persist must be called with mu held.
func (r *ExerciseRegistry) persist(next []Exercise, event pubsub.EventType) error {
	if err := r.store.Write(ExercisesKey, next); err != nil {
		log.ErrorErr(log.CatRegistry, "failed to persist exercises", err)
		return err
	}
	r.list = next
	r.broker.Publish(event, slices.Clone(next))
	return nil
}
