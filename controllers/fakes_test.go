package controllers_test

import (
	"context"
	"math"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/roomhunt/room_rental_system/backend/models"
	"github.com/roomhunt/room_rental_system/backend/store"
)

// In-memory stand-ins for the Mongo stores. The session fake owns a
// controllable clock so TTL expiry can be simulated without waiting.

const sessionTTL = 24 * time.Hour

type memSessions struct {
	mu       sync.Mutex
	now      func() time.Time
	sessions map[string]*models.Session
}

func newMemSessions() *memSessions {
	return &memSessions{
		now:      time.Now,
		sessions: make(map[string]*models.Session),
	}
}

func (s *memSessions) Create(ctx context.Context, userID primitive.ObjectID) (*models.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session := &models.Session{
		ID:        primitive.NewObjectID(),
		User:      userID,
		CreatedAt: s.now(),
	}
	s.sessions[session.Token()] = session
	return session, nil
}

func (s *memSessions) Get(ctx context.Context, token string) (*models.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.sessions[token]
	if !ok {
		return nil, store.ErrSessionNotFound
	}
	// The real store deletes expired sessions via a TTL index.
	if s.now().Sub(session.CreatedAt) >= sessionTTL {
		delete(s.sessions, token)
		return nil, store.ErrSessionNotFound
	}
	copied := *session
	return &copied, nil
}

func (s *memSessions) Delete(ctx context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[token]; !ok {
		return store.ErrSessionNotFound
	}
	delete(s.sessions, token)
	return nil
}

type memUsers struct {
	mu    sync.Mutex
	users map[primitive.ObjectID]*models.User
}

func newMemUsers() *memUsers {
	return &memUsers{users: make(map[primitive.ObjectID]*models.User)}
}

func (s *memUsers) Create(ctx context.Context, user *models.User) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.users {
		if existing.Email == user.Email {
			return nil, store.ErrDuplicateEmail
		}
	}
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	if user.Rooms == nil {
		user.Rooms = []primitive.ObjectID{}
	}
	if user.SavedRooms == nil {
		user.SavedRooms = []primitive.ObjectID{}
	}
	copied := *user
	s.users[user.ID] = &copied
	return user, nil
}

func (s *memUsers) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, user := range s.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, store.ErrUserNotFound
}

func (s *memUsers) FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[id]
	if !ok {
		return nil, store.ErrUserNotFound
	}
	copied := *user
	return &copied, nil
}

func (s *memUsers) UpdateProfile(ctx context.Context, id primitive.ObjectID, update store.ProfileUpdate) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[id]
	if !ok {
		return nil, store.ErrUserNotFound
	}
	user.Email = update.Email
	user.Name = update.Name
	user.LastName = update.LastName
	user.Phone = update.Phone
	copied := *user
	return &copied, nil
}

func (s *memUsers) AddRoom(ctx context.Context, userID, roomID primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[userID]
	if !ok {
		return store.ErrUserNotFound
	}
	user.Rooms = append(user.Rooms, roomID)
	return nil
}

func (s *memUsers) RemoveRoom(ctx context.Context, userID, roomID primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[userID]
	if !ok {
		return store.ErrUserNotFound
	}
	user.Rooms = removeID(user.Rooms, roomID)
	return nil
}

func (s *memUsers) SaveRoom(ctx context.Context, userID, roomID primitive.ObjectID) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[userID]
	if !ok {
		return nil, store.ErrUserNotFound
	}
	if !user.HasSaved(roomID) {
		user.SavedRooms = append(user.SavedRooms, roomID)
	}
	copied := *user
	return &copied, nil
}

func (s *memUsers) UnsaveRoom(ctx context.Context, userID, roomID primitive.ObjectID) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[userID]
	if !ok {
		return nil, store.ErrUserNotFound
	}
	user.SavedRooms = removeID(user.SavedRooms, roomID)
	copied := *user
	return &copied, nil
}

func removeID(ids []primitive.ObjectID, target primitive.ObjectID) []primitive.ObjectID {
	out := ids[:0]
	for _, id := range ids {
		if id != target {
			out = append(out, id)
		}
	}
	return out
}

type memRooms struct {
	mu    sync.Mutex
	rooms map[primitive.ObjectID]*models.Room
}

func newMemRooms() *memRooms {
	return &memRooms{rooms: make(map[primitive.ObjectID]*models.Room)}
}

func (s *memRooms) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.rooms)
}

func (s *memRooms) Insert(ctx context.Context, room *models.Room) (*models.Room, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if room.ID.IsZero() {
		room.ID = primitive.NewObjectID()
	}
	copied := *room
	s.rooms[room.ID] = &copied
	return room, nil
}

func (s *memRooms) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Room, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	room, ok := s.rooms[id]
	if !ok {
		return nil, store.ErrRoomNotFound
	}
	copied := *room
	return &copied, nil
}

func (s *memRooms) FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Room, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []models.Room{}
	for _, id := range ids {
		if room, ok := s.rooms[id]; ok {
			out = append(out, *room)
		}
	}
	return out, nil
}

func (s *memRooms) FindAll(ctx context.Context) ([]models.Room, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []models.Room{}
	for _, room := range s.rooms {
		out = append(out, *room)
	}
	return out, nil
}

func (s *memRooms) FindByOwner(ctx context.Context, ownerID primitive.ObjectID) ([]models.Room, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []models.Room{}
	for _, room := range s.rooms {
		if room.PublishedBy == ownerID {
			out = append(out, *room)
		}
	}
	return out, nil
}

func (s *memRooms) Search(ctx context.Context, filter store.RoomFilter) ([]models.Room, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []models.Room{}
	for _, room := range s.rooms {
		if !room.IsAdActive {
			continue
		}
		if filter.Location != "" && room.Location != filter.Location {
			continue
		}
		if filter.HasPrice {
			if room.Price < filter.MinPrice {
				continue
			}
			if !math.IsInf(filter.MaxPrice, 1) && room.Price > filter.MaxPrice {
				continue
			}
		}
		if filter.IsDouble != nil && room.IsDouble != *filter.IsDouble {
			continue
		}
		out = append(out, *room)
	}
	return out, nil
}

func (s *memRooms) Update(ctx context.Context, id primitive.ObjectID, fields map[string]interface{}) (*models.Room, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	room, ok := s.rooms[id]
	if !ok {
		return nil, store.ErrRoomNotFound
	}
	for key, value := range fields {
		switch key {
		case "image":
			room.Image = value.(string)
		case "title":
			room.Title = value.(string)
		case "location":
			room.Location = value.(string)
		case "description":
			room.Description = value.(string)
		case "price":
			room.Price = value.(float64)
		case "isDouble":
			room.IsDouble = value.(bool)
		case "bathrooms":
			room.Bathrooms = value.(int)
		case "totalRooms":
			room.TotalRooms = value.(int)
		case "area":
			room.Area = value.(float64)
		case "isAdActive":
			room.IsAdActive = value.(bool)
		case "isRented":
			room.IsRented = value.(bool)
		}
	}
	copied := *room
	return &copied, nil
}

func (s *memRooms) Delete(ctx context.Context, id primitive.ObjectID) (*models.Room, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	room, ok := s.rooms[id]
	if !ok {
		return nil, store.ErrRoomNotFound
	}
	delete(s.rooms, id)
	return room, nil
}

// recordCleaner records removed asset ids instead of talking to storage.
type recordCleaner struct {
	mu      sync.Mutex
	removed []string
}

func (c *recordCleaner) Remove(ctx context.Context, assetID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.removed = append(c.removed, assetID)
	return nil
}

func (c *recordCleaner) removedAssets() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.removed...)
}

type memCache struct {
	mu      sync.Mutex
	entries map[string][]byte
}

func newMemCache() *memCache {
	return &memCache{entries: make(map[string][]byte)}
}

func (c *memCache) Get(ctx context.Context, key string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	data, ok := c.entries[key]
	return data, ok
}

func (c *memCache) Set(ctx context.Context, key string, payload []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = payload
}

func (c *memCache) Invalidate(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string][]byte)
}
