// Copyright 2025 Beyond Binary
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package httpapi

import (
	"context"
	"sort"
	"sync"

	"github.com/beyondbinary/buddeee/core"
	"github.com/beyondbinary/buddeee/storage"
)

// memoryEventRepository is an in-memory storage.EventRepository used across
// the handler tests.
type memoryEventRepository struct {
	mu     sync.Mutex
	nextID int64
	events map[int64]*core.Event
}

func newMemoryEventRepository(events ...*core.Event) *memoryEventRepository {
	repo := &memoryEventRepository{
		nextID: 1,
		events: make(map[int64]*core.Event),
	}
	for _, event := range events {
		repo.events[event.ID] = event
		if event.ID >= repo.nextID {
			repo.nextID = event.ID + 1
		}
	}
	return repo
}

func (m *memoryEventRepository) ListEvents(ctx context.Context, eventType string, limit int) ([]*core.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var events []*core.Event
	for _, event := range m.events {
		if eventType != "" && event.EventType != eventType {
			continue
		}
		events = append(events, event)
	}
	sort.Slice(events, func(i, j int) bool { return events[i].ID < events[j].ID })
	if limit > 0 && len(events) > limit {
		events = events[:limit]
	}
	return events, nil
}

func (m *memoryEventRepository) ListAllEvents(ctx context.Context) ([]*core.Event, error) {
	return m.ListEvents(ctx, "", 0)
}

func (m *memoryEventRepository) GetEvent(ctx context.Context, id int64) (*core.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	event, ok := m.events[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return event, nil
}

func (m *memoryEventRepository) CreateEvent(ctx context.Context, event *core.Event) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := m.nextID
	m.nextID++
	stored := *event
	stored.ID = id
	m.events[id] = &stored
	return id, nil
}

func (m *memoryEventRepository) UpdateEvent(ctx context.Context, id int64, patch *storage.EventPatch) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	event, ok := m.events[id]
	if !ok {
		return storage.ErrNotFound
	}
	if patch.Title != nil {
		event.Title = *patch.Title
	}
	if patch.Location != nil {
		event.Location = *patch.Location
	}
	if patch.CurrentParticipants != nil {
		event.CurrentParticipants = *patch.CurrentParticipants
	}
	if patch.MaxParticipants != nil {
		event.MaxParticipants = *patch.MaxParticipants
	}
	if patch.EventType != nil {
		event.EventType = *patch.EventType
	}
	return nil
}

func (m *memoryEventRepository) DeleteEvent(ctx context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.events[id]; !ok {
		return storage.ErrNotFound
	}
	delete(m.events, id)
	return nil
}

func (m *memoryEventRepository) GetParticipantCounts(ctx context.Context, ids []int64) (map[int64]core.ParticipantCounts, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	counts := make(map[int64]core.ParticipantCounts)
	for _, id := range ids {
		if event, ok := m.events[id]; ok {
			counts[id] = core.ParticipantCounts{
				Current: event.CurrentParticipants,
				Max:     event.MaxParticipants,
			}
		}
	}
	return counts, nil
}

func (m *memoryEventRepository) GetStats(ctx context.Context) (*core.Stats, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	types := make(map[string]bool)
	stats := &core.Stats{}
	for _, event := range m.events {
		stats.TotalEvents++
		stats.TotalParticipants += event.CurrentParticipants
		types[event.EventType] = true
	}
	stats.EventTypes = len(types)
	return stats, nil
}

// memoryUserRepository is an in-memory storage.UserRepository.
type memoryUserRepository struct {
	mu     sync.Mutex
	nextID int64
	users  map[int64]*core.User
}

func newMemoryUserRepository() *memoryUserRepository {
	return &memoryUserRepository{nextID: 1, users: make(map[int64]*core.User)}
}

func (m *memoryUserRepository) CreateUser(ctx context.Context, email, passwordHash string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, user := range m.users {
		if user.Email == email {
			return 0, storage.ErrDuplicateEmail
		}
	}
	id := m.nextID
	m.nextID++
	m.users[id] = &core.User{ID: id, Email: email, PasswordHash: passwordHash}
	return id, nil
}

func (m *memoryUserRepository) GetUserByEmail(ctx context.Context, email string) (*core.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, user := range m.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, storage.ErrNotFound
}

func (m *memoryUserRepository) GetUser(ctx context.Context, id int64) (*core.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	user, ok := m.users[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return user, nil
}

func (m *memoryUserRepository) UpdateUserProfile(ctx context.Context, id int64, patch *storage.UserPatch) (*core.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	user, ok := m.users[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	if patch.Bio != nil {
		user.Bio = patch.Bio
	}
	if patch.Username != nil {
		user.Username = patch.Username
	}
	return user, nil
}

func (m *memoryUserRepository) ListUserEvents(ctx context.Context, userID int64) ([]*core.Event, error) {
	return nil, nil
}

// memoryInteractionRepository is an in-memory storage.InteractionRepository.
type memoryInteractionRepository struct {
	mu           sync.Mutex
	nextID       int64
	interactions []*core.Interaction
}

func newMemoryInteractionRepository() *memoryInteractionRepository {
	return &memoryInteractionRepository{nextID: 1}
}

func (m *memoryInteractionRepository) AddInteraction(ctx context.Context, userID, eventID int64, interactionType string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := m.nextID
	m.nextID++
	m.interactions = append(m.interactions, &core.Interaction{
		ID:              id,
		UserID:          userID,
		EventID:         eventID,
		InteractionType: interactionType,
	})
	return id, nil
}

func (m *memoryInteractionRepository) ListUserInteractions(ctx context.Context, userID int64) ([]*core.Interaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var result []*core.Interaction
	for _, it := range m.interactions {
		if it.UserID == userID {
			result = append(result, it)
		}
	}
	return result, nil
}
