package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/cppla/prepmeter/models"
)

// ErrNotFound means the user has no document yet.
var ErrNotFound = errors.New("state document not found")

// Cache is an optional byte cache in front of the table. Implementations swallow their own
// failures.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, value []byte)
	Delete(ctx context.Context, key string)
}

// CacheKey is the cache key of a user's document.
func CacheKey(userID uint) string {
	return "state:doc:" + strconv.FormatUint(uint64(userID), 10)
}

// DocumentStore keeps each user's aggregate as one JSON row.
type DocumentStore struct {
	db     *gorm.DB
	cache  Cache
	logger *zap.Logger
}

// NewDocumentStore builds a store over db. cache may be nil.
func NewDocumentStore(db *gorm.DB, cache Cache, logger *zap.Logger) *DocumentStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DocumentStore{db: db, cache: cache, logger: logger}
}

// Read loads the user's document, or ErrNotFound.
func (s *DocumentStore) Read(ctx context.Context, userID uint) (models.UserState, error) {
	if s.cache != nil {
		if b, ok := s.cache.Get(ctx, CacheKey(userID)); ok {
			var state models.UserState
			if err := json.Unmarshal(b, &state); err == nil {
				return state, nil
			}
			s.logger.Warn("discarding undecodable cached state", zap.Uint("user_id", userID))
			s.cache.Delete(ctx, CacheKey(userID))
		}
	}

	var doc models.StateDocument
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&doc).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.UserState{}, ErrNotFound
	}
	if err != nil {
		return models.UserState{}, fmt.Errorf("read state document: %w", err)
	}

	var state models.UserState
	if err := json.Unmarshal(doc.Body, &state); err != nil {
		return models.UserState{}, fmt.Errorf("decode state document: %w", err)
	}
	if s.cache != nil {
		s.cache.Set(ctx, CacheKey(userID), doc.Body)
	}
	return state, nil
}

// Write replaces the user's whole document. Last write wins.
func (s *DocumentStore) Write(ctx context.Context, userID uint, state models.UserState) error {
	body, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("encode state document: %w", err)
	}
	doc := models.StateDocument{UserID: userID, Body: datatypes.JSON(body)}
	err = s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"body", "updated_at"}),
	}).Create(&doc).Error
	if err != nil {
		if s.cache != nil {
			s.cache.Delete(ctx, CacheKey(userID))
		}
		return fmt.Errorf("write state document: %w", err)
	}
	if s.cache != nil {
		s.cache.Set(ctx, CacheKey(userID), body)
	}
	return nil
}

// Create inserts the default document for a new account and returns it. When a document already
// exists it is returned unchanged.
func (s *DocumentStore) Create(ctx context.Context, id models.Identity, now time.Time) (models.UserState, error) {
	state := models.NewUserState(id, now)
	body, err := json.Marshal(state)
	if err != nil {
		return models.UserState{}, fmt.Errorf("encode state document: %w", err)
	}
	doc := models.StateDocument{UserID: id.UserID, Body: datatypes.JSON(body)}
	res := s.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&doc)
	if res.Error != nil {
		return models.UserState{}, fmt.Errorf("create state document: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return s.Read(ctx, id.UserID)
	}
	if s.cache != nil {
		s.cache.Set(ctx, CacheKey(id.UserID), body)
	}
	return state, nil
}

// Delete removes the user's document.
func (s *DocumentStore) Delete(ctx context.Context, userID uint) error {
	if s.cache != nil {
		s.cache.Delete(ctx, CacheKey(userID))
	}
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&models.StateDocument{}).Error; err != nil {
		return fmt.Errorf("delete state document: %w", err)
	}
	return nil
}
